package app

import (
	"context"

	"github.com/example/hexmaker/internal/ports/primary"
	"github.com/example/hexmaker/internal/ports/secondary"
)

// TemplateServiceImpl implements the TemplateService interface.
type TemplateServiceImpl struct {
	store     secondary.TemplateStore
	validator secondary.TemplateValidator
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(store secondary.TemplateStore, validator secondary.TemplateValidator) *TemplateServiceImpl {
	return &TemplateServiceImpl{store: store, validator: validator}
}

// ListTemplates lists every template id with the layer that provides it.
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context) ([]*primary.TemplateInfo, error) {
	ids := s.store.IDs()
	infos := make([]*primary.TemplateInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, &primary.TemplateInfo{ID: id, Source: s.store.Source(id)})
	}
	return infos, nil
}

// CheckTemplates parses every template and reports all failures together.
func (s *TemplateServiceImpl) CheckTemplates(ctx context.Context) error {
	return s.validator.Check()
}

// Ensure TemplateServiceImpl implements the interface
var _ primary.TemplateService = (*TemplateServiceImpl)(nil)
