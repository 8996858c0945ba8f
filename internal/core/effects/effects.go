// Package effects defines side effects as data structures.
// Effects are pure data - they describe what should happen, not how. The core
// packages produce them; adapters interpret them.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// TargetFile identifies one of the structured configuration files the
// generator maintains.
type TargetFile string

const (
	// TargetORMMapping is the ORM mapping registry (doctrine.orm.mappings).
	TargetORMMapping TargetFile = "orm-mapping"
	// TargetMessageBus is the message-bus registry (framework.messenger.buses).
	TargetMessageBus TargetFile = "message-bus"
	// TargetServices is the service-binding registry (services).
	TargetServices TargetFile = "services"
	// TargetRoutes is the route registry.
	TargetRoutes TargetFile = "routes"
)

// Targets lists every target file.
var Targets = []TargetFile{TargetORMMapping, TargetMessageBus, TargetServices, TargetRoutes}

// SchemaPath returns the fixed top-level path under which section keys of the
// target live.
func (t TargetFile) SchemaPath() []string {
	switch t {
	case TargetORMMapping:
		return []string{"doctrine", "orm", "mappings"}
	case TargetMessageBus:
		return []string{"framework", "messenger", "buses"}
	case TargetServices:
		return []string{"services"}
	default:
		return nil
	}
}

// DefaultLocation returns the target's file path relative to the project's
// configuration directory.
func (t TargetFile) DefaultLocation() string {
	switch t {
	case TargetORMMapping:
		return "packages/doctrine.yaml"
	case TargetMessageBus:
		return "packages/messenger.yaml"
	case TargetServices:
		return "services.yaml"
	case TargetRoutes:
		return "routes.yaml"
	default:
		return ""
	}
}

// ConfigChange registers SectionKey under the target's schema path and merges
// Payload into it. Applying the same change twice is a no-op the second time.
type ConfigChange struct {
	Target     TargetFile
	SectionKey string
	Payload    map[string]any
}

func (e ConfigChange) EffectType() string { return "config" }

// Path returns the full key path of the section inside the target file.
func (e ConfigChange) Path() []string {
	return append(e.Target.SchemaPath(), e.SectionKey)
}

// Identity returns a key that identifies the change for de-duplication.
func (e ConfigChange) Identity() string {
	return string(e.Target) + "|" + e.SectionKey
}

// ORMMappingChange registers an XML mapping directory for a module.
func ORMMappingChange(alias, dir, prefix string) ConfigChange {
	return ConfigChange{
		Target:     TargetORMMapping,
		SectionKey: alias,
		Payload: map[string]any{
			"type":      "xml",
			"is_bundle": false,
			"dir":       dir,
			"prefix":    prefix,
			"alias":     alias,
		},
	}
}

// BusChange declares a message bus with an ordered middleware list.
func BusChange(bus string, middleware []string) ConfigChange {
	payload := map[string]any{}
	if len(middleware) > 0 {
		payload["middleware"] = append([]string(nil), middleware...)
	}
	return ConfigChange{Target: TargetMessageBus, SectionKey: bus, Payload: payload}
}

// EventBusChange declares a message bus that tolerates messages without handlers.
func EventBusChange(bus string, middleware []string) ConfigChange {
	change := BusChange(bus, middleware)
	change.Payload["default_middleware"] = map[string]any{
		"enabled":           true,
		"allow_no_handlers": true,
	}
	return change
}

// ServiceBindingChange binds an interface to its implementation.
func ServiceBindingChange(interfaceFQN, implementationFQN string) ConfigChange {
	return ConfigChange{
		Target:     TargetServices,
		SectionKey: interfaceFQN,
		Payload:    map[string]any{"alias": implementationFQN},
	}
}

// RouteChange registers a directory of attribute-routed controllers.
func RouteChange(group, resourceDir, namespace string) ConfigChange {
	return ConfigChange{
		Target:     TargetRoutes,
		SectionKey: group,
		Payload: map[string]any{
			"resource": map[string]any{
				"path":      resourceDir,
				"namespace": namespace,
			},
			"type": "attribute",
		},
	}
}

// FileEffect describes one rendered file: a template, the variables it is
// rendered with and where its output goes.
type FileEffect struct {
	TemplateID   string
	Destination  string // relative to the project root, "/"-separated
	Vars         map[string]any
	Overwrite    bool // replace an existing non-empty file
	SkipExisting bool // leave an existing non-empty file alone and carry on
}

func (e FileEffect) EffectType() string { return "file" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// Flatten returns the leaf effects in execution order.
func (e CompositeEffect) Flatten() []Effect {
	var out []Effect
	for _, eff := range e.Effects {
		if c, ok := eff.(CompositeEffect); ok {
			out = append(out, c.Flatten()...)
			continue
		}
		out = append(out, eff)
	}
	return out
}

// Files returns the file effects in execution order.
func (e CompositeEffect) Files() []FileEffect {
	var out []FileEffect
	for _, eff := range e.Flatten() {
		if f, ok := eff.(FileEffect); ok {
			out = append(out, f)
		}
	}
	return out
}

// ConfigChanges returns the configuration changes in execution order.
func (e CompositeEffect) ConfigChanges() []ConfigChange {
	var out []ConfigChange
	for _, eff := range e.Flatten() {
		if c, ok := eff.(ConfigChange); ok {
			out = append(out, c)
		}
	}
	return out
}
