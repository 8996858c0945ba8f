package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/hexmaker/internal/ports/primary"
)

// HistoryAdapter translates history commands to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List lists past runs, newest first.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.RunFilters) error {
	runs, err := a.service.ListRuns(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-36s %-10s %-16s %-20s %s\n", "ID", "STATUS", "KIND", "CREATED", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────────────────")
	for _, r := range runs {
		fmt.Fprintf(a.out, "%-36s %-10s %-16s %-20s %s/%s\n", r.ID, r.Status, r.Kind, r.CreatedAt, r.Path, r.Name)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints one run with everything it touched.
func (a *HistoryAdapter) Show(ctx context.Context, runID string) (*primary.RunDetail, error) {
	detail, err := a.service.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run := detail.Run
	fmt.Fprintf(a.out, "\nRun: %s\n", run.ID)
	fmt.Fprintf(a.out, "Kind: %s\n", run.Kind)
	fmt.Fprintf(a.out, "Target: %s/%s\n", run.Path, run.Name)
	if run.Properties != "" {
		fmt.Fprintf(a.out, "Properties: %s\n", run.Properties)
	}
	fmt.Fprintf(a.out, "Status: %s\n", run.Status)
	if run.Error != "" {
		fmt.Fprintf(a.out, "Error: %s\n", run.Error)
	}
	fmt.Fprintf(a.out, "Started: %s\n", run.CreatedAt)
	if run.FinishedAt != "" {
		fmt.Fprintf(a.out, "Finished: %s\n", run.FinishedAt)
	}

	if len(detail.Artifacts) > 0 {
		fmt.Fprintln(a.out, "\nArtifacts:")
		printArtifacts(a.out, detail.Artifacts)
	}
	if len(detail.Config) > 0 {
		fmt.Fprintln(a.out, "\nConfig:")
		printConfig(a.out, detail.Config)
	}
	fmt.Fprintln(a.out)

	return detail, nil
}
