// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/hexmaker/internal/core/effects"
	"github.com/example/hexmaker/internal/ports/primary"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place generation I/O happens.
type EffectExecutor interface {
	// Execute runs effs in sequence, reporting each completed leaf effect to
	// observe. It stops at the first failure with a *StepError.
	Execute(ctx context.Context, effs []effects.Effect, observe func(Outcome)) error
}

// Outcome is the result of one executed leaf effect. Exactly one of Artifact
// and Config is set.
type Outcome struct {
	Artifact *primary.ArtifactResult
	Config   *primary.ConfigResult
}

// StepError reports the effect an execution stopped at.
type StepError struct {
	Target string // destination file or configuration section
	Err    error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Target, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }

// DefaultEffectExecutor implements EffectExecutor over the file emitter and
// config patcher. In preview mode it renders and diffs but writes nothing.
type DefaultEffectExecutor struct {
	emitter secondary.FileEmitter
	patcher secondary.ConfigPatcher
	preview bool
}

// NewEffectExecutor creates an executor that writes files and patches config.
func NewEffectExecutor(emitter secondary.FileEmitter, patcher secondary.ConfigPatcher) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{emitter: emitter, patcher: patcher}
}

// NewPreviewExecutor creates an executor that only reports what would change.
func NewPreviewExecutor(emitter secondary.FileEmitter, patcher secondary.ConfigPatcher) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{emitter: emitter, patcher: patcher, preview: true}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect, observe func(Outcome)) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff, observe); err != nil {
			return err
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect, observe func(Outcome)) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		result, err := e.executeFile(ctx, typed)
		if err != nil {
			return &StepError{Target: typed.Destination, Err: err}
		}
		observe(Outcome{Artifact: result})
		return nil
	case effects.ConfigChange:
		result, err := e.executeConfig(ctx, typed)
		if err != nil {
			return &StepError{Target: e.patcher.Location(typed.Target) + " " + typed.SectionKey, Err: err}
		}
		observe(Outcome{Config: result})
		return nil
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects, observe)
	default:
		return &StepError{Target: eff.EffectType(), Err: fmt.Errorf("unknown effect type: %T", eff)}
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) (*primary.ArtifactResult, error) {
	req := secondary.EmitRequest{
		TemplateID:  eff.TemplateID,
		Destination: eff.Destination,
		Vars:        eff.Vars,
		Overwrite:   eff.Overwrite,
	}
	result := &primary.ArtifactResult{TemplateID: eff.TemplateID, Path: eff.Destination}

	if e.preview {
		preview, err := e.emitter.Preview(ctx, req)
		if err != nil {
			return nil, err
		}
		result.Status = primary.ArtifactPreviewed
		result.Exists = preview.Exists
		result.Diff = preview.Diff
		return result, nil
	}

	written, err := e.emitter.Emit(ctx, req)
	var exists *secondary.DestinationExistsError
	switch {
	case errors.As(err, &exists) && eff.SkipExisting:
		result.Status = primary.ArtifactSkipped
		result.Exists = true
	case err != nil:
		return nil, err
	case written.Overwritten:
		result.Status = primary.ArtifactOverwritten
		result.Exists = true
	default:
		result.Status = primary.ArtifactCreated
	}
	return result, nil
}

func (e *DefaultEffectExecutor) executeConfig(ctx context.Context, change effects.ConfigChange) (*primary.ConfigResult, error) {
	result := &primary.ConfigResult{File: e.patcher.Location(change.Target), SectionKey: change.SectionKey}

	if e.preview {
		exists, err := e.patcher.Exists(ctx, change)
		if err != nil {
			return nil, err
		}
		result.Applied = !exists
		return result, nil
	}

	applied, err := e.patcher.Apply(ctx, change)
	if err != nil {
		return nil, err
	}
	result.Applied = applied
	return result, nil
}
