// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"fmt"

	"github.com/example/hexmaker/internal/core/binding"
	"github.com/example/hexmaker/internal/core/property"
)

// MakerService defines the primary port for artifact generation.
type MakerService interface {
	// Generate renders and writes every artifact the request implies, then
	// applies its configuration changes. On a mid-run failure the response
	// describes what succeeded and the error is *PartialGenerationError.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest contains parameters for a generation run.
type GenerateRequest struct {
	Kind       string
	Path       string
	Name       string
	Properties []property.Spec
	Options    binding.Options
}

// ArtifactStatus is the outcome for one file.
type ArtifactStatus string

// Artifact outcomes.
const (
	ArtifactCreated     ArtifactStatus = "created"
	ArtifactOverwritten ArtifactStatus = "overwritten"
	ArtifactSkipped     ArtifactStatus = "skipped"
	ArtifactPreviewed   ArtifactStatus = "previewed"
)

// ArtifactResult reports one file of a run.
type ArtifactResult struct {
	TemplateID string
	Path       string
	Status     ArtifactStatus
	Exists     bool   // dry run: destination already present
	Diff       string // dry run: difference against the existing file
}

// ConfigResult reports one configuration change of a run.
type ConfigResult struct {
	File       string
	SectionKey string
	Applied    bool // the file was modified (dry run: would be modified)
}

// GenerateResponse contains the result of a generation run.
type GenerateResponse struct {
	RunID     string
	DryRun    bool
	Artifacts []ArtifactResult
	Config    []ConfigResult
}

// ConfigModified reports, per configuration file, whether the run changed it.
func (r *GenerateResponse) ConfigModified() map[string]bool {
	out := make(map[string]bool)
	for _, c := range r.Config {
		out[c.File] = out[c.File] || c.Applied
	}
	return out
}

// PartialGenerationError reports a run that stopped after some work succeeded.
type PartialGenerationError struct {
	Succeeded int    // files and patches completed before the failure
	Total     int    // files and patches planned
	Failed    string // the file or section that failed
	Err       error
}

func (e *PartialGenerationError) Error() string {
	return fmt.Sprintf("generation stopped after %d of %d steps at %s: %v", e.Succeeded, e.Total, e.Failed, e.Err)
}

func (e *PartialGenerationError) Unwrap() error { return e.Err }
