package secondary

import (
	"context"

	"github.com/example/hexmaker/internal/core/effects"
)

// TemplateStore defines the secondary port for template lookup.
type TemplateStore interface {
	// Lookup returns the body of the template with the given id.
	// Returns *TemplateNotFoundError when no layer provides it.
	Lookup(id string) (string, error)

	// IDs returns every known template id, sorted.
	IDs() []string

	// Source names the layer that provides the template ("embedded" or an override directory).
	Source(id string) string
}

// EmitRequest describes one file to render.
type EmitRequest struct {
	TemplateID  string
	Destination string // relative to the project root, "/"-separated
	Vars        map[string]any
	Overwrite   bool
}

// WriteResult reports a written file.
type WriteResult struct {
	Path        string
	Bytes       int
	Overwritten bool
}

// PreviewResult reports what Emit would do, without touching the filesystem.
type PreviewResult struct {
	Path    string
	Content string
	Exists  bool
	Diff    string // empty when the destination is absent or already identical
}

// FileEmitter defines the secondary port for rendering templates to files.
type FileEmitter interface {
	// Emit renders the template and writes it to the destination, creating
	// parent directories. An existing non-empty destination is refused with
	// *DestinationExistsError unless Overwrite is set. Nothing is written when
	// rendering fails.
	Emit(ctx context.Context, req EmitRequest) (*WriteResult, error)

	// Preview renders the template and diffs it against the destination.
	Preview(ctx context.Context, req EmitRequest) (*PreviewResult, error)
}

// ConfigPatcher defines the secondary port for structured configuration updates.
type ConfigPatcher interface {
	// Exists reports whether the change's section key is already registered.
	Exists(ctx context.Context, change effects.ConfigChange) (bool, error)

	// Apply merges the change into its target file. It reports whether the
	// file was modified; applying an already-applied change is a no-op. On
	// failure the file is restored to its prior content.
	Apply(ctx context.Context, change effects.ConfigChange) (bool, error)

	// Location returns the target's file path relative to the project root.
	Location(target effects.TargetFile) string
}

// TemplateValidator checks that every known template parses.
type TemplateValidator interface {
	// Check returns every parse failure aggregated into one error, or nil.
	Check() error
}
