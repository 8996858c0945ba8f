package cli

import (
	"context"

	"github.com/fatih/color"

	"github.com/example/hexmaker/internal/ports/primary"
)

func init() {
	// Assertions compare plain text.
	color.NoColor = true
}

// mockMakerService implements primary.MakerService for testing
type mockMakerService struct {
	generateFn func(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error)

	lastReq primary.GenerateRequest
}

func (m *mockMakerService) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	m.lastReq = req
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return &primary.GenerateResponse{RunID: "run-1"}, nil
}

// mockHistoryService implements primary.HistoryService for testing
type mockHistoryService struct {
	listRunsFn func(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error)
	getRunFn   func(ctx context.Context, runID string) (*primary.RunDetail, error)

	lastFilters primary.RunFilters
}

func (m *mockHistoryService) ListRuns(ctx context.Context, filters primary.RunFilters) ([]*primary.Run, error) {
	m.lastFilters = filters
	if m.listRunsFn != nil {
		return m.listRunsFn(ctx, filters)
	}
	return []*primary.Run{}, nil
}

func (m *mockHistoryService) GetRun(ctx context.Context, runID string) (*primary.RunDetail, error) {
	if m.getRunFn != nil {
		return m.getRunFn(ctx, runID)
	}
	return &primary.RunDetail{Run: &primary.Run{ID: runID, Status: "succeeded"}}, nil
}

// mockTemplateService implements primary.TemplateService for testing
type mockTemplateService struct {
	templates []*primary.TemplateInfo
	checkErr  error
}

func (m *mockTemplateService) ListTemplates(ctx context.Context) ([]*primary.TemplateInfo, error) {
	return m.templates, nil
}

func (m *mockTemplateService) CheckTemplates(ctx context.Context) error {
	return m.checkErr
}

var (
	_ primary.MakerService    = (*mockMakerService)(nil)
	_ primary.HistoryService  = (*mockHistoryService)(nil)
	_ primary.TemplateService = (*mockTemplateService)(nil)
)
