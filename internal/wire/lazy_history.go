package wire

import (
	"context"

	"github.com/example/hexmaker/internal/adapters/sqlite"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// lazyHistory opens the history database on first use.
type lazyHistory struct {
	open func() (*sqlite.HistoryRepository, error)
}

var _ secondary.HistoryRepository = (*lazyHistory)(nil)

func (l *lazyHistory) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	repo, err := l.open()
	if err != nil {
		return err
	}
	return repo.CreateRun(ctx, run)
}

func (l *lazyHistory) FinishRun(ctx context.Context, id, status, errMsg string) error {
	repo, err := l.open()
	if err != nil {
		return err
	}
	return repo.FinishRun(ctx, id, status, errMsg)
}

func (l *lazyHistory) AddArtifact(ctx context.Context, artifact *secondary.ArtifactRecord) error {
	repo, err := l.open()
	if err != nil {
		return err
	}
	return repo.AddArtifact(ctx, artifact)
}

func (l *lazyHistory) AddConfigPatch(ctx context.Context, patch *secondary.ConfigPatchRecord) error {
	repo, err := l.open()
	if err != nil {
		return err
	}
	return repo.AddConfigPatch(ctx, patch)
}

func (l *lazyHistory) GetRun(ctx context.Context, id string) (*secondary.RunRecord, error) {
	repo, err := l.open()
	if err != nil {
		return nil, err
	}
	return repo.GetRun(ctx, id)
}

func (l *lazyHistory) ListRuns(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	repo, err := l.open()
	if err != nil {
		return nil, err
	}
	return repo.ListRuns(ctx, filters)
}

func (l *lazyHistory) ListArtifacts(ctx context.Context, runID string) ([]*secondary.ArtifactRecord, error) {
	repo, err := l.open()
	if err != nil {
		return nil, err
	}
	return repo.ListArtifacts(ctx, runID)
}

func (l *lazyHistory) ListConfigPatches(ctx context.Context, runID string) ([]*secondary.ConfigPatchRecord, error) {
	repo, err := l.open()
	if err != nil {
		return nil, err
	}
	return repo.ListConfigPatches(ctx, runID)
}
