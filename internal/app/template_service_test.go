package app

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/example/hexmaker/internal/templates/scaffold"
)

func TestTemplateService_ListTemplates(t *testing.T) {
	override := scaffold.Layer{Name: "overrides", FS: fstest.MapFS{
		"entity/model.tmpl": {Data: []byte("<?php // custom\n")},
	}}
	store := scaffold.NewStoreFS(override, scaffold.Embedded())
	service := NewTemplateService(store, store)

	infos, err := service.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(infos) != len(store.IDs()) {
		t.Fatalf("got %d templates, want %d", len(infos), len(store.IDs()))
	}

	sources := make(map[string]string)
	for _, info := range infos {
		sources[info.ID] = info.Source
	}
	if sources["entity/model"] != "overrides" {
		t.Errorf("entity/model source = %q, want overrides", sources["entity/model"])
	}
	if sources["entity/mapping"] != scaffold.EmbeddedSource {
		t.Errorf("entity/mapping source = %q, want %q", sources["entity/mapping"], scaffold.EmbeddedSource)
	}
}

func TestTemplateService_CheckTemplates(t *testing.T) {
	broken := scaffold.Layer{Name: "overrides", FS: fstest.MapFS{
		"entity/model.tmpl":   {Data: []byte("{{ .Entity ")},
		"entity/mapping.tmpl": {Data: []byte("{{ end }}")},
	}}
	store := scaffold.NewStoreFS(broken, scaffold.Embedded())

	err := NewTemplateService(store, store).CheckTemplates(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	for _, id := range []string{"entity/model", "entity/mapping"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not mention %s", err, id)
		}
	}

	embedded := scaffold.NewStoreFS(scaffold.Embedded())
	if err := NewTemplateService(embedded, embedded).CheckTemplates(context.Background()); err != nil {
		t.Errorf("embedded templates: CheckTemplates() error = %v", err)
	}
}
