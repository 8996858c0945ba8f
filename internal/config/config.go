// Package config loads and saves the project's hexmaker.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/example/hexmaker/internal/core/binding"
	"github.com/example/hexmaker/internal/core/naming"
)

// FileName is the project configuration file, relative to the project root.
const FileName = "hexmaker.yaml"

// StateDir holds hexmaker's own files inside a project.
const StateDir = ".hexmaker"

// Config represents the project configuration.
type Config struct {
	RootNamespace string      `yaml:"root_namespace" validate:"required,namespace"`
	SourceDir     string      `yaml:"source_dir" validate:"required,relpath"`
	TestsDir      string      `yaml:"tests_dir" validate:"required,relpath"`
	ConfigDir     string      `yaml:"config_dir" validate:"required,relpath"`
	TemplateDir   string      `yaml:"template_dir"`
	History       bool        `yaml:"history"`
	Verbs         VerbsConfig `yaml:"verbs"`
	Buses         BusesConfig `yaml:"buses"`
}

// VerbsConfig lists the leading words that select each command pattern.
type VerbsConfig struct {
	Create []string `yaml:"create" validate:"min=1,dive,required,alpha"`
	Update []string `yaml:"update" validate:"min=1,dive,required,alpha"`
	Delete []string `yaml:"delete" validate:"min=1,dive,required,alpha"`
}

// BusesConfig names the message buses and their middleware.
type BusesConfig struct {
	Command BusConfig `yaml:"command"`
	Query   BusConfig `yaml:"query"`
	Event   BusConfig `yaml:"event"`
}

// BusConfig is one message bus.
type BusConfig struct {
	Name       string   `yaml:"name" validate:"required"`
	Middleware []string `yaml:"middleware,omitempty" validate:"dive,required"`
}

// Default returns the configuration used when a project has no hexmaker.yaml.
func Default() *Config {
	settings := binding.DefaultSettings()
	return &Config{
		RootNamespace: "App",
		SourceDir:     settings.SourceDir,
		TestsDir:      settings.TestsDir,
		ConfigDir:     "config",
		TemplateDir:   filepath.ToSlash(filepath.Join(StateDir, "templates")),
		History:       true,
		Verbs: VerbsConfig{
			Create: settings.Verbs.Create,
			Update: settings.Verbs.Update,
			Delete: settings.Verbs.Delete,
		},
		Buses: BusesConfig{
			Command: BusConfig{Name: settings.CommandBus, Middleware: settings.CommandMiddleware},
			Query:   BusConfig{Name: settings.QueryBus, Middleware: settings.QueryMiddleware},
			Event:   BusConfig{Name: settings.EventBus},
		},
	}
}

// Load reads hexmaker.yaml from dir over the defaults. A missing file yields
// the defaults. Unknown keys are rejected.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes cfg to hexmaker.yaml in dir.
func Save(dir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks every field and reports all violations together.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	result := &multierror.Error{ErrorFormat: listFormat}
	for _, fe := range fieldErrs {
		result = multierror.Append(result, describe(fe))
	}
	return result.ErrorOrNil()
}

// HistoryPath returns the generation history database for the project at root.
func (c *Config) HistoryPath(root string) string {
	return filepath.Join(root, StateDir, "history.db")
}

// TemplateOverrideDir returns the absolute template override directory, or ""
// when overrides are disabled.
func (c *Config) TemplateOverrideDir(root string) string {
	if c.TemplateDir == "" {
		return ""
	}
	if filepath.IsAbs(c.TemplateDir) {
		return c.TemplateDir
	}
	return filepath.Join(root, filepath.FromSlash(c.TemplateDir))
}

// BinderSettings converts the configuration into binder settings.
func (c *Config) BinderSettings() binding.Settings {
	return binding.Settings{
		SourceDir: c.SourceDir,
		TestsDir:  c.TestsDir,
		Verbs: binding.Verbs{
			Create: c.Verbs.Create,
			Update: c.Verbs.Update,
			Delete: c.Verbs.Delete,
		},
		CommandBus:        c.Buses.Command.Name,
		QueryBus:          c.Buses.Query.Name,
		EventBus:          c.Buses.Event.Name,
		CommandMiddleware: c.Buses.Command.Middleware,
		QueryMiddleware:   c.Buses.Query.Middleware,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("namespace", func(fl validator.FieldLevel) bool {
		return isNamespace(fl.Field().String())
	})
	_ = v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		return isRelativePath(fl.Field().String())
	})
	return v
}

// isNamespace reports whether s is a backslash-separated list of identifiers.
func isNamespace(s string) bool {
	for _, seg := range strings.Split(s, naming.NamespaceSeparator) {
		if !naming.IsIdentifier(seg) {
			return false
		}
	}
	return true
}

// isRelativePath reports whether s stays inside the project root.
func isRelativePath(s string) bool {
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(s))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}

func describe(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "namespace":
		return fmt.Errorf("%s %q is not a valid namespace", field, fe.Value())
	case "relpath":
		return fmt.Errorf("%s %q must be relative to the project root", field, fe.Value())
	case "min":
		return fmt.Errorf("%s must not be empty", field)
	case "alpha":
		return fmt.Errorf("%s %q must contain only letters", field, fe.Value())
	default:
		return fmt.Errorf("%s failed %s validation", field, fe.Tag())
	}
}

func listFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
