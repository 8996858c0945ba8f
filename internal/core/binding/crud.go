package binding

import (
	"github.com/example/hexmaker/internal/core/naming"
)

// Expand returns the requests a request fans out to. A CRUD request for an
// entity expands into the entity with its repository and identifier, the
// create/update/delete commands, the find/list queries, a form, the five
// controllers, a creation event and a not-found exception. Any other request
// expands to itself.
func (b *Binder) Expand(req Request) []Request {
	if req.Kind != KindCrudBundle {
		return []Request{req}
	}

	entity := req.Name
	plural := naming.Pluralize(entity)
	prefix := req.Options.RoutePrefix
	if prefix == "" {
		prefix = "/" + naming.ToKebabCase(plural)
	}

	child := func(kind ArtifactKind, name string, props bool, tweak func(*Options)) Request {
		opts := Options{
			Entity:            entity,
			WithIDValueObject: true,
			WithTests:         req.Options.WithTests,
			Force:             req.Options.Force,
			SkipExisting:      req.Options.SkipExisting,
			DryRun:            req.Options.DryRun,
			Layer:             req.Options.Layer,
			TestType:          req.Options.TestType,
		}
		if tweak != nil {
			tweak(&opts)
		}
		r := Request{Kind: kind, Path: req.Path, Name: name, Options: opts}
		if props {
			r.Properties = req.Properties
		}
		return r
	}
	route := func(r string) func(*Options) {
		return func(o *Options) { o.Route = r }
	}

	return []Request{
		child(KindEntity, entity, true, func(o *Options) { o.WithRepository = true }),
		child(KindCommand, "Create"+entity, true, func(o *Options) { o.Factory = true }),
		child(KindCommand, "Update"+entity, true, nil),
		child(KindCommand, "Delete"+entity, false, nil),
		child(KindQuery, "Find"+entity, false, nil),
		child(KindQuery, "List"+plural, false, nil),
		child(KindForm, entity, true, nil),
		child(KindController, "List"+plural, false, route(prefix)),
		child(KindController, "Create"+entity, false, route(prefix+"/new")),
		child(KindController, "Show"+entity, false, route(prefix+"/{id}")),
		child(KindController, "Update"+entity, false, route(prefix+"/{id}/edit")),
		child(KindController, "Delete"+entity, false, route(prefix+"/{id}/delete")),
		child(KindDomainEvent, entity+"Created", true, nil),
		child(KindException, entity+"NotFound", false, nil),
	}
}
