package secondary

import "context"

// HistoryRepository defines the secondary port for generation history persistence.
type HistoryRepository interface {
	// CreateRun persists a new run.
	CreateRun(ctx context.Context, run *RunRecord) error

	// FinishRun records the final status of a run.
	FinishRun(ctx context.Context, id, status, errMsg string) error

	// AddArtifact records a file written, skipped or previewed by a run.
	AddArtifact(ctx context.Context, artifact *ArtifactRecord) error

	// AddConfigPatch records a configuration change evaluated by a run.
	AddConfigPatch(ctx context.Context, patch *ConfigPatchRecord) error

	// GetRun retrieves a run by its ID.
	GetRun(ctx context.Context, id string) (*RunRecord, error)

	// ListRuns retrieves runs matching the given filters, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*RunRecord, error)

	// ListArtifacts retrieves the artifacts of a run in recording order.
	ListArtifacts(ctx context.Context, runID string) ([]*ArtifactRecord, error)

	// ListConfigPatches retrieves the configuration changes of a run in recording order.
	ListConfigPatches(ctx context.Context, runID string) ([]*ConfigPatchRecord, error)
}

// RunRecord represents a generation run as stored in persistence.
type RunRecord struct {
	ID         string
	Kind       string
	Path       string
	Name       string
	Properties string // the property list as given
	Status     string // running, succeeded, failed
	Error      string
	CreatedAt  string
	FinishedAt string
}

// ArtifactRecord represents one file of a run.
type ArtifactRecord struct {
	RunID      string
	TemplateID string
	Path       string
	Status     string // created, overwritten, skipped, previewed
}

// ConfigPatchRecord represents one configuration change of a run.
type ConfigPatchRecord struct {
	RunID      string
	File       string
	SectionKey string
	Applied    bool
}

// RunFilters contains filter options for querying runs.
type RunFilters struct {
	Kind   string
	Status string
	Limit  int
}
