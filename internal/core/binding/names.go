package binding

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/hexmaker/internal/core/naming"
)

// AdapterPrefix prefixes repository adapter class names.
const AdapterPrefix = "Doctrine"

// EntityPrefixes are the verb prefixes stripped from artifact names to find
// the entity they act on.
var EntityPrefixes = []string{"Create", "Update", "Delete", "Show", "List", "Search", "Find", "Get"}

// ExtractEntityName strips the longest matching verb prefix from name.
// A name consisting only of a prefix is returned unchanged.
//
//	ExtractEntityName("CreateUser")       = "User"
//	ExtractEntityName("ListInvoiceItems") = "InvoiceItems"
//	ExtractEntityName("Invoice")          = "Invoice"
func ExtractEntityName(name string) string {
	prefixes := append([]string(nil), EntityPrefixes...)
	sort.SliceStable(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			return name[len(prefix):]
		}
	}
	return name
}

// DeriveRoute returns explicit when set, otherwise "/" followed by the
// kebab-case form of name. "CreatePost" -> "/create-post".
func DeriveRoute(name, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return "/" + naming.ToKebabCase(name)
}

// Pattern is the write intent of a command.
type Pattern string

// Command patterns.
const (
	PatternCreate Pattern = "create"
	PatternUpdate Pattern = "update"
	PatternDelete Pattern = "delete"
	PatternNone   Pattern = "none"
)

// Verbs are the leading words that select each command pattern.
type Verbs struct {
	Create []string
	Update []string
	Delete []string
}

// DefaultVerbs returns the built-in verb synonyms.
func DefaultVerbs() Verbs {
	return Verbs{
		Create: []string{"create", "add", "new", "register"},
		Update: []string{"update", "edit", "modify", "change"},
		Delete: []string{"delete", "remove", "destroy"},
	}
}

// DetectPattern classifies a command name by a case-insensitive verb prefix,
// so "CreateOrder", "Create_order" and "Createorder" are all create commands.
// A verb that runs into a longer camel-case word is not a match: "AddressBook"
// is not an add command.
func DetectPattern(name string, verbs Verbs) Pattern {
	match := func(list []string) bool {
		for _, v := range list {
			if hasVerbPrefix(name, v) {
				return true
			}
		}
		return false
	}

	switch {
	case match(verbs.Create):
		return PatternCreate
	case match(verbs.Update):
		return PatternUpdate
	case match(verbs.Delete):
		return PatternDelete
	}
	return PatternNone
}

func hasVerbPrefix(name, verb string) bool {
	if verb == "" || len(name) < len(verb) || !strings.EqualFold(name[:len(verb)], verb) {
		return false
	}
	rest := name[len(verb):]
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsLower(r) {
		return true
	}
	return strings.IndexFunc(rest, unicode.IsUpper) < 0
}

// Names are the class names derived from a request. Every artifact of one
// request refers to its siblings through the same Names value.
type Names struct {
	Name                string
	Entity              string
	Route               string
	Pattern             Pattern
	RepositoryInterface string
	RepositoryAdapter   string
	IDClass             string
	FactoryClass        string
	FormClass           string
}

// DeriveNames computes the names for req.
func DeriveNames(req Request, verbs Verbs) Names {
	entity := req.Options.Entity
	if entity == "" {
		entity = req.Name
		if usesEntityPrefix(req.Kind) {
			entity = ExtractEntityName(req.Name)
		}
	}

	return Names{
		Name:                req.Name,
		Entity:              entity,
		Route:               DeriveRoute(req.Name, req.Options.Route),
		Pattern:             DetectPattern(req.Name, verbs),
		RepositoryInterface: entity + "RepositoryInterface",
		RepositoryAdapter:   AdapterPrefix + entity + "Repository",
		IDClass:             entity + "Id",
		FactoryClass:        entity + "Factory",
		FormClass:           entity + "Type",
	}
}

func usesEntityPrefix(k ArtifactKind) bool {
	switch k {
	case KindCommand, KindQuery, KindController, KindForm, KindCliCommand, KindUseCase, KindMessageHandler:
		return true
	}
	return false
}
