package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/example/hexmaker/internal/core/artifact"
	"github.com/example/hexmaker/internal/core/binding"
	"github.com/example/hexmaker/internal/core/effects"
	"github.com/example/hexmaker/internal/ctxutil"
	"github.com/example/hexmaker/internal/ports/primary"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// Run statuses recorded in history.
const (
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// MakerSettings are the project-level inputs of the maker service.
type MakerSettings struct {
	ProjectRoot   string
	RootNamespace string
	SourceDir     string
}

// MakerServiceImpl implements the MakerService interface.
type MakerServiceImpl struct {
	settings MakerSettings
	binder   *binding.Binder
	store    secondary.TemplateStore
	emitter  secondary.FileEmitter
	patcher  secondary.ConfigPatcher
	history  secondary.HistoryRepository // nil disables recording
	logger   *slog.Logger
}

var _ primary.MakerService = (*MakerServiceImpl)(nil)

// NewMakerService creates a new MakerService with injected dependencies.
// history may be nil.
func NewMakerService(
	settings MakerSettings,
	binder *binding.Binder,
	store secondary.TemplateStore,
	emitter secondary.FileEmitter,
	patcher secondary.ConfigPatcher,
	history secondary.HistoryRepository,
	logger *slog.Logger,
) *MakerServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &MakerServiceImpl{
		settings: settings,
		binder:   binder,
		store:    store,
		emitter:  emitter,
		patcher:  patcher,
		history:  history,
		logger:   logger,
	}
}

// Generate validates the request, plans every file and configuration change
// up front, then executes the plan in order.
func (s *MakerServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	kind, err := binding.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	breq, err := binding.NewRequest(kind, req.Path, req.Name, s.settings.RootNamespace, req.Properties, req.Options)
	if err != nil {
		return nil, err
	}

	plan, err := s.binder.Plan(breq)
	if err != nil {
		return nil, fmt.Errorf("failed to plan generation: %w", err)
	}

	guard := artifact.CanGenerate(s.projectContext(plan))
	if !guard.Allowed {
		return nil, guard.Error()
	}

	runID := uuid.NewString()
	ctx = ctxutil.WithRunID(ctx, runID)
	dryRun := breq.Options.DryRun
	record := s.history != nil && !dryRun

	if record {
		record = s.startRun(ctx, runID, breq)
	}

	resp := &primary.GenerateResponse{RunID: runID, DryRun: dryRun}
	executor := s.executor(dryRun)
	total := len(plan.Flatten())
	done := 0

	s.logger.Debug("starting generation", "run", runID, "kind", breq.Kind, "path", breq.Path.String(), "name", breq.Name, "steps", total)

	err = executor.Execute(ctx, plan.Effects, func(o Outcome) {
		done++
		switch {
		case o.Artifact != nil:
			resp.Artifacts = append(resp.Artifacts, *o.Artifact)
			if record {
				s.recordArtifact(ctx, runID, o.Artifact)
			}
		case o.Config != nil:
			resp.Config = append(resp.Config, *o.Config)
			if record {
				s.recordConfig(ctx, runID, o.Config)
			}
		}
	})
	if err != nil {
		failed := ""
		cause := err
		var step *StepError
		if errors.As(err, &step) {
			failed, cause = step.Target, step.Err
		}
		perr := &primary.PartialGenerationError{Succeeded: done, Total: total, Failed: failed, Err: cause}
		if record {
			s.finishRun(ctx, runID, RunFailed, perr.Error())
		}
		return resp, perr
	}

	if record {
		s.finishRun(ctx, runID, RunSucceeded, "")
	}
	return resp, nil
}

func (s *MakerServiceImpl) executor(dryRun bool) EffectExecutor {
	if dryRun {
		return NewPreviewExecutor(s.emitter, s.patcher)
	}
	return NewEffectExecutor(s.emitter, s.patcher)
}

func (s *MakerServiceImpl) projectContext(plan effects.CompositeEffect) artifact.ProjectContext {
	pc := artifact.ProjectContext{
		Root:      s.settings.ProjectRoot,
		SourceDir: s.settings.SourceDir,
	}
	if info, err := os.Stat(s.settings.ProjectRoot); err == nil {
		pc.RootExists = true
		pc.RootIsDir = info.IsDir()
	}
	for _, id := range binding.TemplateIDs(plan) {
		if s.store.Source(id) == "" {
			pc.MissingIDs = append(pc.MissingIDs, id)
		}
	}
	return pc
}

// startRun records the run. A history failure never stops generation; it
// disables recording for the rest of the run.
func (s *MakerServiceImpl) startRun(ctx context.Context, runID string, req binding.Request) bool {
	props := make([]string, len(req.Properties))
	for i, p := range req.Properties {
		props[i] = p.String()
	}

	err := s.history.CreateRun(ctx, &secondary.RunRecord{
		ID:         runID,
		Kind:       string(req.Kind),
		Path:       req.Path.String(),
		Name:       req.Name,
		Properties: strings.Join(props, ","),
		Status:     RunRunning,
	})
	if err != nil {
		s.logger.Warn("failed to record run", "run", runID, "error", err)
		return false
	}
	return true
}

func (s *MakerServiceImpl) recordArtifact(ctx context.Context, runID string, a *primary.ArtifactResult) {
	err := s.history.AddArtifact(ctx, &secondary.ArtifactRecord{
		RunID:      runID,
		TemplateID: a.TemplateID,
		Path:       a.Path,
		Status:     string(a.Status),
	})
	if err != nil {
		s.logger.Warn("failed to record artifact", "run", runID, "path", a.Path, "error", err)
	}
}

func (s *MakerServiceImpl) recordConfig(ctx context.Context, runID string, c *primary.ConfigResult) {
	err := s.history.AddConfigPatch(ctx, &secondary.ConfigPatchRecord{
		RunID:      runID,
		File:       c.File,
		SectionKey: c.SectionKey,
		Applied:    c.Applied,
	})
	if err != nil {
		s.logger.Warn("failed to record config patch", "run", runID, "file", c.File, "error", err)
	}
}

func (s *MakerServiceImpl) finishRun(ctx context.Context, runID, status, errMsg string) {
	if err := s.history.FinishRun(ctx, runID, status, errMsg); err != nil {
		s.logger.Warn("failed to finish run", "run", runID, "error", err)
	}
}
