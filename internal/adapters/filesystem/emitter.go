// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/google/go-cmp/cmp"

	"github.com/example/hexmaker/internal/core/artifact"
	"github.com/example/hexmaker/internal/ctxutil"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// ParseFunc parses a template body.
type ParseFunc func(id, body string) (*template.Template, error)

// FileEmitter implements secondary.FileEmitter by rendering templates from a
// store into files under a project root.
type FileEmitter struct {
	root   string
	store  secondary.TemplateStore
	parse  ParseFunc
	logger *slog.Logger
}

var _ secondary.FileEmitter = (*FileEmitter)(nil)

// NewFileEmitter creates a new file emitter rooted at root.
func NewFileEmitter(root string, store secondary.TemplateStore, parse ParseFunc, logger *slog.Logger) *FileEmitter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &FileEmitter{root: root, store: store, parse: parse, logger: logger}
}

// Emit renders the template and writes it to the destination.
func (e *FileEmitter) Emit(ctx context.Context, req secondary.EmitRequest) (*secondary.WriteResult, error) {
	content, err := e.render(req)
	if err != nil {
		return nil, err
	}

	full := e.abs(req.Destination)
	existing, err := e.inspect(full)
	if err != nil {
		return nil, &secondary.IOError{Op: "stat", Path: req.Destination, Err: err}
	}

	guard := artifact.CanWrite(artifact.WriteContext{
		Path:      req.Destination,
		Exists:    existing.exists,
		IsDir:     existing.isDir,
		Empty:     existing.exists && len(existing.content) == 0,
		Overwrite: req.Overwrite,
	})
	if !guard.Allowed {
		if existing.isDir {
			return nil, &secondary.IOError{Op: "write", Path: req.Destination, Err: guard.Error()}
		}
		return nil, &secondary.DestinationExistsError{Path: req.Destination}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return nil, &secondary.IOError{Op: "create directory for", Path: req.Destination, Err: err}
	}
	if err := os.WriteFile(full, content, 0644); err != nil {
		return nil, &secondary.IOError{Op: "write", Path: req.Destination, Err: err}
	}

	e.logger.Debug("wrote file",
		"run", ctxutil.RunIDFromContext(ctx),
		"template", req.TemplateID,
		"path", req.Destination,
		"bytes", len(content),
	)

	return &secondary.WriteResult{
		Path:        req.Destination,
		Bytes:       len(content),
		Overwritten: existing.exists && len(existing.content) > 0,
	}, nil
}

// Preview renders the template and diffs it against the destination.
func (e *FileEmitter) Preview(ctx context.Context, req secondary.EmitRequest) (*secondary.PreviewResult, error) {
	content, err := e.render(req)
	if err != nil {
		return nil, err
	}

	existing, err := e.inspect(e.abs(req.Destination))
	if err != nil {
		return nil, &secondary.IOError{Op: "stat", Path: req.Destination, Err: err}
	}

	result := &secondary.PreviewResult{
		Path:    req.Destination,
		Content: string(content),
		Exists:  existing.exists,
	}
	if existing.exists && !existing.isDir {
		result.Diff = cmp.Diff(string(existing.content), string(content))
	}
	return result, nil
}

// render looks up and executes the template. Nothing touches the filesystem
// until rendering has succeeded.
func (e *FileEmitter) render(req secondary.EmitRequest) ([]byte, error) {
	body, err := e.store.Lookup(req.TemplateID)
	if err != nil {
		return nil, err
	}

	tmpl, err := e.parse(req.TemplateID, body)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req.Vars); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", req.TemplateID, err)
	}
	return buf.Bytes(), nil
}

type fileState struct {
	exists  bool
	isDir   bool
	content []byte
}

func (e *FileEmitter) inspect(full string) (fileState, error) {
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return fileState{}, nil
	}
	if err != nil {
		return fileState{}, err
	}
	if info.IsDir() {
		return fileState{exists: true, isDir: true}, nil
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return fileState{}, err
	}
	return fileState{exists: true, content: content}, nil
}

func (e *FileEmitter) abs(dest string) string {
	return filepath.Join(e.root, filepath.FromSlash(dest))
}
