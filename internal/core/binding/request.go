package binding

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/example/hexmaker/internal/core/naming"
	"github.com/example/hexmaker/internal/core/property"
)

// Options are the recognized generation flags.
type Options struct {
	Factory           bool   // emit a factory beside a write-command handler
	WithTests         bool   // emit matching tests
	WithRepository    bool   // entity: also emit repository interface and adapter
	WithIDValueObject bool   // entity: also emit an identifier value object
	WithWorkflow      bool   // controller: emit the form, use case, input and command chain
	WithSubscriber    bool   // domain event: also emit a subscriber
	Layer             Layer  // subscriber layer
	Route             string // explicit controller route
	RoutePrefix       string // CRUD route prefix
	Entity            string // explicit entity name, overriding prefix stripping
	TestType          TestType
	TestTarget        string // class under test, relative to the path namespace or fully qualified
	Force             bool   // overwrite existing files
	SkipExisting      bool   // skip existing files instead of failing
	DryRun            bool   // render and diff, touch nothing
}

// Request is a validated generation request.
type Request struct {
	Kind       ArtifactKind
	Path       naming.Path
	Name       string
	Properties []property.Spec
	Options    Options
}

// NewRequest normalizes and validates the raw inputs of a generation request.
// All input problems are reported together.
func NewRequest(kind ArtifactKind, rawPath, rawName, rootNamespace string, props []property.Spec, opts Options) (Request, error) {
	req := Request{
		Kind:       kind,
		Path:       naming.NewPath(rawPath, rootNamespace),
		Name:       naming.Normalize(rawName),
		Properties: props,
		Options:    opts,
	}
	if req.Options.Layer == "" {
		req.Options.Layer = LayerApplication
	}
	if req.Options.TestType == "" {
		req.Options.TestType = TestUnit
	}
	if req.Options.Entity != "" {
		req.Options.Entity = naming.Normalize(req.Options.Entity)
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks the request's invariants.
func (r Request) Validate() error {
	var result *multierror.Error

	if _, err := ParseKind(string(r.Kind)); err != nil {
		result = multierror.Append(result, err)
	}
	if r.Path.IsEmpty() {
		result = multierror.Append(result, fmt.Errorf("path is required"))
	}
	if !naming.IsIdentifier(r.Name) {
		result = multierror.Append(result, fmt.Errorf("name %q is not a valid class name", r.Name))
	}
	if r.Options.Entity != "" && !naming.IsIdentifier(r.Options.Entity) {
		result = multierror.Append(result, fmt.Errorf("entity %q is not a valid class name", r.Options.Entity))
	}
	if r.Options.Layer != "" && !r.Options.Layer.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown layer %q (valid: application, infrastructure)", r.Options.Layer))
	}
	if r.Options.TestType != "" && !r.Options.TestType.Valid() {
		result = multierror.Append(result, fmt.Errorf("unknown test type %q (valid: unit, integration, functional)", r.Options.TestType))
	}
	if r.Options.Route != "" && !strings.HasPrefix(r.Options.Route, "/") {
		result = multierror.Append(result, fmt.Errorf("route %q must start with /", r.Options.Route))
	}
	if r.Options.RoutePrefix != "" && !strings.HasPrefix(r.Options.RoutePrefix, "/") {
		result = multierror.Append(result, fmt.Errorf("route prefix %q must start with /", r.Options.RoutePrefix))
	}
	if r.Options.Force && r.Options.SkipExisting {
		result = multierror.Append(result, fmt.Errorf("force and skip-existing are mutually exclusive"))
	}
	if len(r.Properties) > 0 && !r.Kind.AcceptsProperties() {
		result = multierror.Append(result, fmt.Errorf("kind %s does not accept properties", r.Kind))
	}

	seen := make(map[string]bool, len(r.Properties))
	for _, p := range r.Properties {
		if seen[p.Name] {
			result = multierror.Append(result, fmt.Errorf("duplicate property %q", p.Name))
		}
		seen[p.Name] = true
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return result
}

// listFormat renders aggregated errors as "a; b; c".
func listFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
