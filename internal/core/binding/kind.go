// Package binding turns a generation request into the concrete list of
// template bindings and configuration changes it implies. Everything here is
// pure: no I/O, no templates rendered.
package binding

import (
	"fmt"
	"strings"
)

// ArtifactKind identifies what is being generated.
type ArtifactKind string

// Artifact kinds.
const (
	KindEntity          ArtifactKind = "entity"
	KindValueObject     ArtifactKind = "value-object"
	KindException       ArtifactKind = "exception"
	KindCommand         ArtifactKind = "command"
	KindQuery           ArtifactKind = "query"
	KindRepository      ArtifactKind = "repository"
	KindController      ArtifactKind = "controller"
	KindForm            ArtifactKind = "form"
	KindCliCommand      ArtifactKind = "cli-command"
	KindUseCase         ArtifactKind = "use-case"
	KindMessageHandler  ArtifactKind = "message-handler"
	KindDomainEvent     ArtifactKind = "domain-event"
	KindEventSubscriber ArtifactKind = "event-subscriber"
	KindTest            ArtifactKind = "test"
	KindCrudBundle      ArtifactKind = "crud"
)

// Kinds lists every artifact kind.
var Kinds = []ArtifactKind{
	KindEntity, KindValueObject, KindException, KindCommand, KindQuery,
	KindRepository, KindController, KindForm, KindCliCommand, KindUseCase,
	KindMessageHandler, KindDomainEvent, KindEventSubscriber, KindTest,
	KindCrudBundle,
}

// ParseKind resolves a kind name. Underscores are accepted in place of dashes.
func ParseKind(s string) (ArtifactKind, error) {
	k := ArtifactKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown artifact kind %q", s)
}

// AcceptsProperties reports whether properties given for the kind are used.
func (k ArtifactKind) AcceptsProperties() bool {
	switch k {
	case KindEntity, KindValueObject, KindCommand, KindQuery, KindUseCase,
		KindDomainEvent, KindForm, KindController, KindCrudBundle:
		return true
	}
	return false
}

// Description is a one-line summary used in help output.
func (k ArtifactKind) Description() string {
	switch k {
	case KindEntity:
		return "Domain model with its ORM mapping"
	case KindValueObject:
		return "Immutable, self-validating value object"
	case KindException:
		return "Domain exception"
	case KindCommand:
		return "Write command with its handler"
	case KindQuery:
		return "Read query with its handler and response"
	case KindRepository:
		return "Repository interface with its ORM adapter"
	case KindController:
		return "HTTP controller"
	case KindForm:
		return "Form type bound to an entity"
	case KindCliCommand:
		return "Console command"
	case KindUseCase:
		return "Application use case with its input"
	case KindMessageHandler:
		return "Asynchronous message handler"
	case KindDomainEvent:
		return "Domain event"
	case KindEventSubscriber:
		return "Event subscriber"
	case KindTest:
		return "Unit, integration or functional test"
	case KindCrudBundle:
		return "Complete create/read/update/delete slice for an entity"
	}
	return ""
}

// TestType selects the flavor of a generated test.
type TestType string

// Test types.
const (
	TestUnit        TestType = "unit"
	TestIntegration TestType = "integration"
	TestFunctional  TestType = "functional"
)

// Dir returns the directory under the tests root for the test type.
func (t TestType) Dir() string {
	switch t {
	case TestIntegration:
		return "Integration"
	case TestFunctional:
		return "Functional"
	default:
		return "Unit"
	}
}

// Valid reports whether t names a test type.
func (t TestType) Valid() bool {
	return t == TestUnit || t == TestIntegration || t == TestFunctional
}

// Layer selects where an event subscriber lives.
type Layer string

// Subscriber layers.
const (
	LayerApplication    Layer = "application"
	LayerInfrastructure Layer = "infrastructure"
)

// Valid reports whether l names a layer.
func (l Layer) Valid() bool {
	return l == LayerApplication || l == LayerInfrastructure
}

// Dir returns the source directory of the layer.
func (l Layer) Dir() string {
	if l == LayerInfrastructure {
		return "Infrastructure"
	}
	return "Application"
}
