package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/hexmaker/internal/core/effects"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.TemplateStore     = (*mockTemplateStore)(nil)
	_ secondary.FileEmitter       = (*mockFileEmitter)(nil)
	_ secondary.ConfigPatcher     = (*mockConfigPatcher)(nil)
	_ secondary.HistoryRepository = (*mockHistoryRepository)(nil)
)

// mockTemplateStore knows every template except those listed in missing.
type mockTemplateStore struct {
	missing map[string]bool
}

func newMockTemplateStore(missing ...string) *mockTemplateStore {
	m := &mockTemplateStore{missing: make(map[string]bool)}
	for _, id := range missing {
		m.missing[id] = true
	}
	return m
}

func (m *mockTemplateStore) Lookup(id string) (string, error) {
	if m.missing[id] {
		return "", &secondary.TemplateNotFoundError{ID: id}
	}
	return "body", nil
}

func (m *mockTemplateStore) IDs() []string { return nil }

func (m *mockTemplateStore) Source(id string) string {
	if m.missing[id] {
		return ""
	}
	return "mock"
}

// mockFileEmitter records emitted destinations. Files listed in existing are
// refused unless the request overwrites them; failOn fails a destination.
type mockFileEmitter struct {
	emitted  []string
	previews []string
	existing map[string]bool
	failOn   map[string]error
}

func newMockFileEmitter() *mockFileEmitter {
	return &mockFileEmitter{
		existing: make(map[string]bool),
		failOn:   make(map[string]error),
	}
}

func (m *mockFileEmitter) Emit(ctx context.Context, req secondary.EmitRequest) (*secondary.WriteResult, error) {
	if err := m.failOn[req.Destination]; err != nil {
		return nil, err
	}
	if m.existing[req.Destination] && !req.Overwrite {
		return nil, &secondary.DestinationExistsError{Path: req.Destination}
	}
	m.emitted = append(m.emitted, req.Destination)
	return &secondary.WriteResult{Path: req.Destination, Overwritten: m.existing[req.Destination]}, nil
}

func (m *mockFileEmitter) Preview(ctx context.Context, req secondary.EmitRequest) (*secondary.PreviewResult, error) {
	m.previews = append(m.previews, req.Destination)
	return &secondary.PreviewResult{Path: req.Destination, Exists: m.existing[req.Destination]}, nil
}

// mockConfigPatcher tracks applied section identities.
type mockConfigPatcher struct {
	applied  map[string]bool
	order    []string
	applyErr error
}

func newMockConfigPatcher() *mockConfigPatcher {
	return &mockConfigPatcher{applied: make(map[string]bool)}
}

func (m *mockConfigPatcher) Exists(ctx context.Context, change effects.ConfigChange) (bool, error) {
	return m.applied[change.Identity()], nil
}

func (m *mockConfigPatcher) Apply(ctx context.Context, change effects.ConfigChange) (bool, error) {
	if m.applyErr != nil {
		return false, m.applyErr
	}
	if m.applied[change.Identity()] {
		return false, nil
	}
	m.applied[change.Identity()] = true
	m.order = append(m.order, change.Identity())
	return true, nil
}

func (m *mockConfigPatcher) Location(target effects.TargetFile) string {
	return "config/" + target.DefaultLocation()
}

// mockHistoryRepository implements secondary.HistoryRepository in memory.
type mockHistoryRepository struct {
	runs      map[string]*secondary.RunRecord
	runOrder  []string
	artifacts map[string][]*secondary.ArtifactRecord
	patches   map[string][]*secondary.ConfigPatchRecord
	createErr error
	listErr   error
}

func newMockHistoryRepository() *mockHistoryRepository {
	return &mockHistoryRepository{
		runs:      make(map[string]*secondary.RunRecord),
		artifacts: make(map[string][]*secondary.ArtifactRecord),
		patches:   make(map[string][]*secondary.ConfigPatchRecord),
	}
}

func (m *mockHistoryRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.runs[run.ID] = run
	m.runOrder = append(m.runOrder, run.ID)
	return nil
}

func (m *mockHistoryRepository) FinishRun(ctx context.Context, id, status, errMsg string) error {
	run, ok := m.runs[id]
	if !ok {
		return fmt.Errorf("run %s not found", id)
	}
	run.Status = status
	run.Error = errMsg
	return nil
}

func (m *mockHistoryRepository) AddArtifact(ctx context.Context, artifact *secondary.ArtifactRecord) error {
	m.artifacts[artifact.RunID] = append(m.artifacts[artifact.RunID], artifact)
	return nil
}

func (m *mockHistoryRepository) AddConfigPatch(ctx context.Context, patch *secondary.ConfigPatchRecord) error {
	m.patches[patch.RunID] = append(m.patches[patch.RunID], patch)
	return nil
}

func (m *mockHistoryRepository) GetRun(ctx context.Context, id string) (*secondary.RunRecord, error) {
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, errors.New("run not found")
}

func (m *mockHistoryRepository) ListRuns(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.RunRecord
	for i := len(m.runOrder) - 1; i >= 0; i-- {
		r := m.runs[m.runOrder[i]]
		if filters.Kind != "" && r.Kind != filters.Kind {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockHistoryRepository) ListArtifacts(ctx context.Context, runID string) ([]*secondary.ArtifactRecord, error) {
	return m.artifacts[runID], nil
}

func (m *mockHistoryRepository) ListConfigPatches(ctx context.Context, runID string) ([]*secondary.ConfigPatchRecord, error) {
	return m.patches[runID], nil
}
