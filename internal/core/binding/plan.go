package binding

import (
	"fmt"

	"github.com/example/hexmaker/internal/core/effects"
)

// Plan returns everything req does, as effects in execution order. Each
// expanded request contributes its files followed by its configuration
// changes. A destination or configuration section reached by more than one
// expanded request appears once, at its first position.
func (b *Binder) Plan(req Request) (effects.CompositeEffect, error) {
	var plan effects.CompositeEffect
	seenFiles := make(map[string]bool)
	seenChanges := make(map[string]bool)

	for _, child := range b.Expand(req) {
		bindings, err := b.Bind(child)
		if err != nil {
			return effects.CompositeEffect{}, fmt.Errorf("failed to bind %s %s: %w", child.Kind, child.Name, err)
		}

		var step effects.CompositeEffect
		for _, bnd := range bindings {
			if seenFiles[bnd.Destination] {
				continue
			}
			seenFiles[bnd.Destination] = true
			step.Effects = append(step.Effects, bnd.FileEffect(child.Options))
		}
		for _, change := range b.ConfigChanges(child) {
			if seenChanges[change.Identity()] {
				continue
			}
			seenChanges[change.Identity()] = true
			step.Effects = append(step.Effects, change)
		}

		if len(step.Effects) > 0 {
			plan.Effects = append(plan.Effects, step)
		}
	}

	return plan, nil
}

// TemplateIDs returns the distinct templates a plan renders, in first-use order.
func TemplateIDs(plan effects.CompositeEffect) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, f := range plan.Files() {
		if !seen[f.TemplateID] {
			seen[f.TemplateID] = true
			ids = append(ids, f.TemplateID)
		}
	}
	return ids
}
