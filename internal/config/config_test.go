package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"

	"github.com/example/hexmaker/internal/core/binding"
)

func writeFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load(t.TempDir())
	is.NoErr(err)
	is.Equal(cfg, Default())
}

func TestLoad_EmptyFileYieldsDefaults(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "")

	cfg, err := Load(dir)
	is.NoErr(err)
	is.Equal(cfg, Default())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, `root_namespace: 'Acme\Shop'
history: false
verbs:
    create: [make, open]
buses:
    command:
        name: messenger.bus.commands
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.RootNamespace = `Acme\Shop`
	want.History = false
	want.Verbs.Create = []string{"make", "open"}
	want.Buses.Command.Name = "messenger.bus.commands"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "root_namspace: Acme\n")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_ReportsEveryViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, `root_namespace: 'Acme\1Shop'
source_dir: /var/www/src
tests_dir: ../tests
verbs:
    delete: []
`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, want := range []string{
		`root_namespace "Acme\\1Shop" is not a valid namespace`,
		`source_dir "/var/www/src" must be relative to the project root`,
		`tests_dir "../tests" must be relative to the project root`,
		"verbs.delete must not be empty",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not contain %q: %v", want, err)
		}
	}
}

func TestSaveThenLoad(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	cfg := Default()
	cfg.SourceDir = "app/src"
	cfg.TemplateDir = ""
	is.NoErr(Save(dir, cfg))

	loaded, err := Load(dir)
	is.NoErr(err)
	is.Equal(loaded, cfg)
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.RootNamespace = ""

	dir := t.TempDir()
	if err := Save(dir, cfg); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Error("invalid config was written")
	}
}

func TestTemplateOverrideDir(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	abs := filepath.Join(string(filepath.Separator), "shared", "templates")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"disabled", "", ""},
		{"relative", ".hexmaker/templates", filepath.Join(root, ".hexmaker", "templates")},
		{"absolute", abs, abs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.TemplateDir = tt.dir
			if got := cfg.TemplateOverrideDir(root); got != tt.want {
				t.Errorf("TemplateOverrideDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHistoryPath(t *testing.T) {
	got := Default().HistoryPath("/project")
	if got != filepath.Join("/project", ".hexmaker", "history.db") {
		t.Errorf("HistoryPath() = %q", got)
	}
}

func TestBinderSettings(t *testing.T) {
	if diff := cmp.Diff(binding.DefaultSettings(), Default().BinderSettings()); diff != "" {
		t.Errorf("BinderSettings() mismatch (-want +got):\n%s", diff)
	}
}
