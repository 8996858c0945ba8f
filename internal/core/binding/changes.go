package binding

import (
	"path"

	"github.com/example/hexmaker/internal/core/effects"
	"github.com/example/hexmaker/internal/core/naming"
)

// ConfigChanges returns the configuration registrations req implies, in
// application order. Changes are de-duplicated by target and section key.
func (b *Binder) ConfigChanges(req Request) []effects.ConfigChange {
	if req.Kind == KindCrudBundle {
		var all []effects.ConfigChange
		for _, child := range b.Expand(req) {
			all = append(all, b.ConfigChanges(child)...)
		}
		return dedupe(all)
	}

	p := req.Path
	names := DeriveNames(req, b.settings.Verbs)
	var out []effects.ConfigChange

	switch req.Kind {
	case KindEntity:
		out = append(out, b.ormMapping(p))
		if req.Options.WithRepository {
			out = append(out, b.serviceBinding(p, names))
		}
	case KindRepository:
		out = append(out, b.serviceBinding(p, names))
	case KindCommand:
		out = append(out, effects.BusChange(b.settings.CommandBus, b.settings.CommandMiddleware))
	case KindQuery:
		out = append(out, effects.BusChange(b.settings.QueryBus, b.settings.QueryMiddleware))
	case KindMessageHandler:
		out = append(out, effects.EventBusChange(b.settings.EventBus, nil))
	case KindController:
		out = append(out, b.routes(p))
		if req.Options.WithWorkflow {
			out = append(out, effects.BusChange(b.settings.CommandBus, b.settings.CommandMiddleware))
		}
	}
	return dedupe(out)
}

func (b *Binder) ormMapping(p naming.Path) effects.ConfigChange {
	dir := "%kernel.project_dir%/" + path.Join(b.moduleDir(p), DirMapping)
	return effects.ORMMappingChange(p.Alias(), dir, namespace(p, DirModel))
}

func (b *Binder) serviceBinding(p naming.Path, names Names) effects.ConfigChange {
	sep := naming.NamespaceSeparator
	return effects.ServiceBindingChange(
		namespace(p, DirRepository)+sep+names.RepositoryInterface,
		namespace(p, DirPersistence)+sep+names.RepositoryAdapter,
	)
}

// routes registers the module's controller directory. The resource path is
// relative to the configuration directory.
func (b *Binder) routes(p naming.Path) effects.ConfigChange {
	group := naming.ToSnakeCase(p.Alias()) + "_controllers"
	resource := "../" + path.Join(b.moduleDir(p), DirController) + "/"
	return effects.RouteChange(group, resource, namespace(p, DirController))
}

func dedupe(changes []effects.ConfigChange) []effects.ConfigChange {
	seen := make(map[string]bool, len(changes))
	out := changes[:0]
	for _, c := range changes {
		if seen[c.Identity()] {
			continue
		}
		seen[c.Identity()] = true
		out = append(out, c)
	}
	return out
}
