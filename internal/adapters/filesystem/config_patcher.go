package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/hexmaker/internal/core/effects"
	"github.com/example/hexmaker/internal/ctxutil"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// BackupSuffix is appended to a configuration file's name while it is being patched.
const BackupSuffix = ".backup"

// ConfigPatcher implements secondary.ConfigPatcher over YAML files. It edits
// the document node tree, so comments and key order of untouched sections
// survive a patch.
type ConfigPatcher struct {
	root      string
	configDir string
	logger    *slog.Logger

	// writeFile writes the patched file. Tests replace it to simulate failures.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

var _ secondary.ConfigPatcher = (*ConfigPatcher)(nil)

// NewConfigPatcher creates a patcher for the configuration directory
// configDir (relative to root).
func NewConfigPatcher(root, configDir string, logger *slog.Logger) *ConfigPatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &ConfigPatcher{
		root:      root,
		configDir: configDir,
		logger:    logger,
		writeFile: os.WriteFile,
	}
}

// Location returns the target's file path relative to the project root.
func (p *ConfigPatcher) Location(target effects.TargetFile) string {
	return path.Join(p.configDir, target.DefaultLocation())
}

// Exists reports whether the change's section key is already registered.
func (p *ConfigPatcher) Exists(ctx context.Context, change effects.ConfigChange) (bool, error) {
	rel := p.Location(change.Target)
	data, err := os.ReadFile(p.abs(rel))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &secondary.IOError{Op: "read", Path: rel, Err: err}
	}

	doc, err := parseDocument(rel, data)
	if err != nil {
		return false, err
	}

	node := doc.Content[0]
	for _, key := range change.Path() {
		if node.Kind != yaml.MappingNode {
			return false, nil
		}
		if node = lookup(node, key); node == nil {
			return false, nil
		}
	}
	return true, nil
}

// Apply registers the change's section in its target file and reports
// whether the file was modified. A section key that is already present is
// left exactly as it is. The prior content is kept in a backup file while the
// new content is written, and restored if the write fails. No backup file
// remains afterwards.
func (p *ConfigPatcher) Apply(ctx context.Context, change effects.ConfigChange) (bool, error) {
	rel := p.Location(change.Target)
	full := p.abs(rel)

	exists, err := p.Exists(ctx, change)
	if err != nil {
		return false, err
	}
	if exists {
		p.logger.Debug("config unchanged", "run", ctxutil.RunIDFromContext(ctx), "file", rel, "key", change.SectionKey)
		return false, nil
	}

	original, err := os.ReadFile(full)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, &secondary.IOError{Op: "read", Path: rel, Err: err}
	}

	doc, err := parseDocument(rel, original)
	if err != nil {
		return false, err
	}

	var payload yaml.Node
	if err := payload.Encode(change.Payload); err != nil {
		return false, fmt.Errorf("failed to encode %s payload: %w", change.SectionKey, err)
	}

	if err := insertAt(doc.Content[0], change.Path(), &payload); err != nil {
		return false, fmt.Errorf("failed to patch %s: %w", rel, err)
	}

	out, err := encodeDocument(doc)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", rel, err)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return false, &secondary.IOError{Op: "create directory for", Path: rel, Err: err}
	}

	backup := full + BackupSuffix
	if existed {
		if err := os.WriteFile(backup, original, 0644); err != nil {
			return false, &secondary.IOError{Op: "back up", Path: rel, Err: err}
		}
	}

	if err := p.writeFile(full, out, 0644); err != nil {
		p.restore(full, backup, existed)
		return false, &secondary.IOError{Op: "write", Path: rel, Err: err}
	}

	if existed {
		if err := os.Remove(backup); err != nil {
			return true, &secondary.IOError{Op: "remove backup of", Path: rel, Err: err}
		}
	}

	p.logger.Debug("patched config", "run", ctxutil.RunIDFromContext(ctx), "file", rel, "key", change.SectionKey)
	return true, nil
}

// restore puts the backup back in place, or removes a file that did not
// exist before the patch.
func (p *ConfigPatcher) restore(full, backup string, existed bool) {
	if existed {
		if err := os.Rename(backup, full); err != nil {
			p.logger.Error("failed to restore config backup", "file", full, "error", err)
		}
		return
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.logger.Error("failed to remove partial config", "file", full, "error", err)
	}
}

func (p *ConfigPatcher) abs(rel string) string {
	return filepath.Join(p.root, filepath.FromSlash(rel))
}

// parseDocument parses data into a document whose root is a mapping. Empty
// input yields an empty mapping.
func parseDocument(rel string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("malformed config %s: %w", rel, err)
		}
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, HeadComment: doc.HeadComment}
		doc.Content = []*yaml.Node{newMapping()}
	}

	root := doc.Content[0]
	switch {
	case root.Kind == yaml.MappingNode:
	case isNull(root):
		doc.Content[0] = newMapping()
	default:
		return nil, fmt.Errorf("malformed config %s: top level is not a mapping", rel)
	}
	return &doc, nil
}

func encodeDocument(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// insertAt descends keys from node, creating or filling in mappings as
// needed, and adds value under the last key, which must be absent.
func insertAt(node *yaml.Node, keys []string, value *yaml.Node) error {
	for i, key := range keys {
		child := lookup(node, key)
		switch {
		case i == len(keys)-1:
			if child != nil {
				return fmt.Errorf("%s is already registered", strings.Join(keys, "."))
			}
			node.Content = append(node.Content, scalarKey(key), value)
			return nil
		case child == nil:
			child = newMapping()
			node.Content = append(node.Content, scalarKey(key), child)
		case isNull(child):
			*child = *newMapping()
		case child.Kind != yaml.MappingNode:
			return fmt.Errorf("%s is not a mapping", strings.Join(keys[:i+1], "."))
		}
		node = child
	}
	return nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}
