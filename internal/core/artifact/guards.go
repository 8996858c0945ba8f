// Package artifact contains the pure business logic for writing generated artifacts.
// Guards are pure functions that evaluate preconditions without side effects.
package artifact

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// WriteContext provides context for file write guards.
type WriteContext struct {
	Path      string
	Exists    bool
	IsDir     bool
	Empty     bool // the existing file has no content
	Overwrite bool
}

// CanWrite evaluates whether a generated file may be written.
// Rules:
// - A directory is never replaced
// - A missing or empty file may always be written
// - A non-empty file requires Overwrite
func CanWrite(ctx WriteContext) GuardResult {
	if ctx.IsDir {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is a directory", ctx.Path),
		}
	}

	if !ctx.Exists || ctx.Empty || ctx.Overwrite {
		return GuardResult{Allowed: true}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("%s already exists", ctx.Path),
	}
}

// ProjectContext provides context for project-level guards.
type ProjectContext struct {
	Root       string
	RootExists bool
	RootIsDir  bool
	SourceDir  string
	MissingIDs []string // templates the run renders that no layer provides
}

// CanGenerate evaluates whether a run may start in the project.
// All violations are reported together.
// Rules:
// - The project root must be an existing directory
// - The source directory must be relative
// - Every template the run renders must be available
func CanGenerate(ctx ProjectContext) GuardResult {
	var result *multierror.Error

	if !ctx.RootExists {
		result = multierror.Append(result, fmt.Errorf("project root %s does not exist", ctx.Root))
	} else if !ctx.RootIsDir {
		result = multierror.Append(result, fmt.Errorf("project root %s is not a directory", ctx.Root))
	}

	if strings.HasPrefix(ctx.SourceDir, "/") {
		result = multierror.Append(result, fmt.Errorf("source directory %s must be relative to the project root", ctx.SourceDir))
	}

	for _, id := range ctx.MissingIDs {
		result = multierror.Append(result, fmt.Errorf("template %q not found", id))
	}

	if result == nil {
		return GuardResult{Allowed: true}
	}

	result.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return GuardResult{Allowed: false, Reason: result.Error()}
}
