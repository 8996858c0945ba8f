package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/hexmaker/internal/ports/primary"
)

// TemplatesAdapter translates template commands to TemplateService calls.
type TemplatesAdapter struct {
	service primary.TemplateService
	out     io.Writer
}

// NewTemplatesAdapter creates a new TemplatesAdapter with the given service.
func NewTemplatesAdapter(service primary.TemplateService, out io.Writer) *TemplatesAdapter {
	return &TemplatesAdapter{
		service: service,
		out:     out,
	}
}

// List prints every template id with the layer that provides it.
func (a *TemplatesAdapter) List(ctx context.Context) error {
	infos, err := a.service.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(infos) == 0 {
		fmt.Fprintln(a.out, "No templates found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-28s %s\n", "TEMPLATE", "SOURCE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, info := range infos {
		fmt.Fprintf(a.out, "%-28s %s\n", info.ID, info.Source)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Check parses every template.
func (a *TemplatesAdapter) Check(ctx context.Context) error {
	if err := a.service.CheckTemplates(ctx); err != nil {
		return fmt.Errorf("template check failed: %w", err)
	}
	fmt.Fprintln(a.out, "✓ All templates parse")
	return nil
}
