package primary

import "context"

// HistoryService defines the primary port for browsing past generation runs.
type HistoryService interface {
	// ListRuns lists runs with optional filters, newest first.
	ListRuns(ctx context.Context, filters RunFilters) ([]*Run, error)

	// GetRun retrieves a run with its artifacts and configuration changes.
	GetRun(ctx context.Context, runID string) (*RunDetail, error)
}

// Run represents a generation run at the port boundary.
type Run struct {
	ID         string
	Kind       string
	Path       string
	Name       string
	Properties string
	Status     string
	Error      string
	CreatedAt  string
	FinishedAt string
}

// RunDetail is a run with everything it touched.
type RunDetail struct {
	Run       *Run
	Artifacts []ArtifactResult
	Config    []ConfigResult
}

// RunFilters contains filter options for listing runs.
type RunFilters struct {
	Kind   string
	Status string
	Limit  int
}
