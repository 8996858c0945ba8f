package app

import (
	"context"
	"fmt"

	"github.com/example/hexmaker/internal/ports/primary"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
}

var _ primary.HistoryService = (*HistoryServiceImpl)(nil)

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(historyRepo secondary.HistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{historyRepo: historyRepo}
}

// ListRuns lists runs with optional filters, newest first.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error) {
	records, err := s.historyRepo.ListRuns(ctx, secondary.RunFilters{
		Kind:   filters.Kind,
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		runs[i] = s.recordToRun(r)
	}
	return runs, nil
}

// GetRun retrieves a run with its artifacts and configuration changes.
func (s *HistoryServiceImpl) GetRun(ctx context.Context, runID string) (*primary.RunDetail, error) {
	record, err := s.historyRepo.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	artifacts, err := s.historyRepo.ListArtifacts(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	patches, err := s.historyRepo.ListConfigPatches(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list config patches: %w", err)
	}

	detail := &primary.RunDetail{Run: s.recordToRun(record)}
	for _, a := range artifacts {
		detail.Artifacts = append(detail.Artifacts, primary.ArtifactResult{
			TemplateID: a.TemplateID,
			Path:       a.Path,
			Status:     primary.ArtifactStatus(a.Status),
		})
	}
	for _, p := range patches {
		detail.Config = append(detail.Config, primary.ConfigResult{
			File:       p.File,
			SectionKey: p.SectionKey,
			Applied:    p.Applied,
		})
	}
	return detail, nil
}

func (s *HistoryServiceImpl) recordToRun(r *secondary.RunRecord) *primary.Run {
	return &primary.Run{
		ID:         r.ID,
		Kind:       r.Kind,
		Path:       r.Path,
		Name:       r.Name,
		Properties: r.Properties,
		Status:     r.Status,
		Error:      r.Error,
		CreatedAt:  r.CreatedAt,
		FinishedAt: r.FinishedAt,
	}
}
