// Package scaffold provides the templates for generated artifacts and the
// layered store that resolves them. Project overrides shadow the embedded set.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/hashicorp/go-multierror"

	"github.com/example/hexmaker/internal/core/naming"
	"github.com/example/hexmaker/internal/ports/secondary"
)

//go:embed */*.tmpl
var scaffoldTemplates embed.FS

// Ext is the file extension of template files.
const Ext = ".tmpl"

// EmbeddedSource names the built-in template layer.
const EmbeddedSource = "embedded"

// Layer is one source of templates.
type Layer struct {
	Name string
	FS   fs.FS
}

// Embedded returns the built-in template layer.
func Embedded() Layer {
	return Layer{Name: EmbeddedSource, FS: scaffoldTemplates}
}

// Store resolves template ids against an ordered list of layers.
type Store struct {
	layers []Layer
}

var _ secondary.TemplateStore = (*Store)(nil)

// NewStore creates a store that looks in overrideDir first, then in the
// embedded templates. An empty overrideDir disables the override layer.
func NewStore(overrideDir string) *Store {
	if overrideDir == "" {
		return NewStoreFS(Embedded())
	}
	return NewStoreFS(Layer{Name: overrideDir, FS: os.DirFS(overrideDir)}, Embedded())
}

// NewStoreFS creates a store over the given layers, highest priority first.
func NewStoreFS(layers ...Layer) *Store {
	return &Store{layers: layers}
}

// Lookup returns the body of the template with the given id.
func (s *Store) Lookup(id string) (string, error) {
	for _, l := range s.layers {
		content, err := fs.ReadFile(l.FS, id+Ext)
		if err == nil {
			return string(content), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to read template %s from %s: %w", id, l.Name, err)
		}
	}
	return "", &secondary.TemplateNotFoundError{ID: id}
}

// Source names the layer that provides the template, or "" if none does.
func (s *Store) Source(id string) string {
	for _, l := range s.layers {
		if _, err := fs.Stat(l.FS, id+Ext); err == nil {
			return l.Name
		}
	}
	return ""
}

// IDs returns every template id any layer provides, sorted.
func (s *Store) IDs() []string {
	seen := make(map[string]bool)
	for _, l := range s.layers {
		_ = fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// A missing override directory simply contributes nothing.
				return fs.SkipDir
			}
			if !d.IsDir() && strings.HasSuffix(p, Ext) {
				seen[strings.TrimSuffix(p, Ext)] = true
			}
			return nil
		})
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Check parses every template and reports all failures together.
func (s *Store) Check() error {
	var result *multierror.Error
	for _, id := range s.IDs() {
		body, err := s.Lookup(id)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, err := Parse(id, body); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Missing returns the ids among ids that no layer provides.
func (s *Store) Missing(ids []string) []string {
	var missing []string
	for _, id := range ids {
		if s.Source(id) == "" {
			missing = append(missing, id)
		}
	}
	return missing
}

// Parse parses a template body with the scaffold function map. Missing
// variables are errors at execution time.
func Parse(id, body string) (*template.Template, error) {
	tmpl, err := template.New(path.Base(id)).Funcs(TemplateFuncs()).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", id, err)
	}
	return tmpl, nil
}

// TemplateFuncs returns the template function map for scaffold templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
		"title":      capitalize,
		"camel":      naming.ToCamelCase,
		"snake":      naming.ToSnakeCase,
		"kebab":      naming.ToKebabCase,
		"plural":     naming.Pluralize,
		"join":       strings.Join,
		"hasSuffix":  strings.HasSuffix,
		"trimSuffix": strings.TrimSuffix,
		"replace":    strings.ReplaceAll,
		"phpString":  phpString,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
	}
}

// phpString escapes s for use inside a single-quoted PHP string.
// e.g., it's -> it\'s
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// capitalize returns the string with the first letter uppercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
