package primary

import "context"

// TemplateService defines the primary port for inspecting the template set.
type TemplateService interface {
	// ListTemplates lists every template id with the layer that provides it.
	ListTemplates(ctx context.Context) ([]*TemplateInfo, error)

	// CheckTemplates parses every template and reports all failures together.
	CheckTemplates(ctx context.Context) error
}

// TemplateInfo describes one resolvable template.
type TemplateInfo struct {
	ID     string
	Source string
}
