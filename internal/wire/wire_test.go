package wire

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/example/hexmaker/internal/config"
	"github.com/example/hexmaker/internal/core/binding"
	"github.com/example/hexmaker/internal/ports/primary"
)

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, false).Info("hidden")
	NewLogger(&buf, false).Warn("shown")
	NewLogger(&buf, true).Debug("verbose")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("info logged without verbose: %q", got)
	}
	for _, want := range []string{"shown", "verbose"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestContainer_GenerateRecordsHistory(t *testing.T) {
	is := is.New(t)
	root := t.TempDir()
	c := New(Settings{ProjectRoot: root, Stderr: &bytes.Buffer{}})
	t.Cleanup(func() { c.Close() })

	maker, err := c.MakerService()
	is.NoErr(err)
	resp, err := maker.Generate(context.Background(), primary.GenerateRequest{
		Kind: "exception", Path: "sales/order", Name: "OrderNotFound",
	})
	is.NoErr(err)
	is.Equal(len(resp.Artifacts), 1)

	_, err = os.Stat(filepath.Join(root, config.StateDir, "history.db"))
	is.NoErr(err)

	history, err := c.HistoryService()
	is.NoErr(err)
	runs, err := history.ListRuns(context.Background(), primary.RunFilters{})
	is.NoErr(err)
	is.Equal(len(runs), 1)
	is.Equal(runs[0].ID, resp.RunID)
}

func TestContainer_DryRunLeavesNoState(t *testing.T) {
	is := is.New(t)
	root := t.TempDir()
	c := New(Settings{ProjectRoot: root, Stderr: &bytes.Buffer{}})
	t.Cleanup(func() { c.Close() })

	maker, err := c.MakerService()
	is.NoErr(err)
	_, err = maker.Generate(context.Background(), primary.GenerateRequest{
		Kind: "exception", Path: "sales/order", Name: "OrderNotFound",
		Options: binding.Options{DryRun: true},
	})
	is.NoErr(err)

	_, err = os.Stat(filepath.Join(root, config.StateDir))
	is.True(os.IsNotExist(err))
}

func TestContainer_HistoryDisabled(t *testing.T) {
	is := is.New(t)
	root := t.TempDir()
	cfg := config.Default()
	cfg.History = false
	is.NoErr(config.Save(root, cfg))

	c := New(Settings{ProjectRoot: root, Stderr: &bytes.Buffer{}})
	t.Cleanup(func() { c.Close() })

	maker, err := c.MakerService()
	is.NoErr(err)
	resp, err := maker.Generate(context.Background(), primary.GenerateRequest{
		Kind: "exception", Path: "sales/order", Name: "OrderNotFound",
	})
	is.NoErr(err)
	is.Equal(resp.RunID != "", true)

	_, err = os.Stat(filepath.Join(root, config.StateDir, "history.db"))
	is.True(os.IsNotExist(err))
}

func TestContainer_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, config.FileName), []byte("root_namespace: 1nvalid\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(Settings{ProjectRoot: root, Stderr: &bytes.Buffer{}})
	if _, err := c.MakerService(); err == nil {
		t.Fatal("expected error")
	}
	if _, err := c.TemplatesAdapter(&bytes.Buffer{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestContainer_InputErrorLeavesNoState(t *testing.T) {
	root := t.TempDir()
	c := New(Settings{ProjectRoot: root, Stderr: &bytes.Buffer{}})
	t.Cleanup(func() { c.Close() })

	maker, err := c.MakerService()
	if err != nil {
		t.Fatalf("MakerService() error = %v", err)
	}
	if _, err := maker.Generate(context.Background(), primary.GenerateRequest{
		Kind: "entity", Path: "sales/order", Name: "9Order",
	}); err == nil {
		t.Fatal("expected error")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("project touched: %v", entries)
	}
}
