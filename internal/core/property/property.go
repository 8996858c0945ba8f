// Package property models the per-field property specifications of generated
// entities, commands and value objects.
package property

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/hexmaker/internal/core/naming"
)

// Kind is the declared type of a property.
type Kind string

// Recognized property kinds.
const (
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindBool     Kind = "bool"
	KindFloat    Kind = "float"
	KindDateTime Kind = "datetime"
	KindDate     Kind = "date"
	KindEmail    Kind = "email"
	KindText     Kind = "text"
)

// Kinds lists every recognized kind in declaration order.
var Kinds = []Kind{KindString, KindInt, KindBool, KindFloat, KindDateTime, KindDate, KindEmail, KindText}

// ParseKind returns the Kind named by token. Unknown tokens are rejected.
func ParseKind(token string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(token)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// IsStringLike reports whether the kind accepts length bounds.
func (k Kind) IsStringLike() bool {
	return k == KindString || k == KindEmail || k == KindText
}

// IsNumeric reports whether the kind accepts value bounds.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// kindTypes is the fixed kind -> (target type, storage type) table.
var kindTypes = map[Kind]struct {
	target  string
	storage string
}{
	KindString:   {"string", "string"},
	KindInt:      {"int", "integer"},
	KindBool:     {"bool", "boolean"},
	KindFloat:    {"float", "decimal"},
	KindDateTime: {`\DateTimeImmutable`, "datetime_immutable"},
	KindDate:     {`\DateTimeImmutable`, "date_immutable"},
	KindEmail:    {"string", "string"},
	KindText:     {"string", "text"},
}

// DefaultStringLength is the column length used for bounded string columns
// without an explicit maximum length.
const DefaultStringLength = 255

// Spec is a parsed property specification. It is immutable once parsed.
type Spec struct {
	Name      string
	Kind      Kind
	Nullable  bool
	Unique    bool
	MinLength *int // string-like kinds only
	MaxLength *int // string-like kinds only
	Min       *int // numeric kinds only
	Max       *int // numeric kinds only
}

// TargetType returns the generated source type for the property.
func (s Spec) TargetType() string {
	return kindTypes[s.Kind].target
}

// DeclaredType returns TargetType, prefixed with "?" when the property is nullable.
func (s Spec) DeclaredType() string {
	if s.Nullable {
		return "?" + s.TargetType()
	}
	return s.TargetType()
}

// StorageType returns the persistence column type tag.
func (s Spec) StorageType() string {
	return kindTypes[s.Kind].storage
}

// Length returns the column length for bounded string columns, or 0.
func (s Spec) Length() int {
	if s.Kind != KindString && s.Kind != KindEmail {
		return 0
	}
	if s.MaxLength != nil {
		return *s.MaxLength
	}
	return DefaultStringLength
}

// Variable returns the camelCase variable name of the property.
func (s Spec) Variable() string {
	return naming.ToCamelCase(s.Name)
}

// Column returns the snake_case storage column name of the property.
func (s Spec) Column() string {
	return naming.ToSnakeCase(s.Name)
}

// String renders the spec back into the mini-grammar.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(":")
	b.WriteString(string(s.Kind))

	lo, hi := s.Min, s.Max
	if s.Kind.IsStringLike() {
		lo, hi = s.MinLength, s.MaxLength
	}
	if lo != nil || hi != nil {
		b.WriteString("(")
		if lo != nil {
			b.WriteString(strconv.Itoa(*lo))
		}
		b.WriteString(",")
		if hi != nil {
			b.WriteString(strconv.Itoa(*hi))
		}
		b.WriteString(")")
	}
	if s.Nullable {
		b.WriteString(":nullable")
	}
	if s.Unique {
		b.WriteString(":unique")
	}
	return b.String()
}

// Rule identifies a validation rule.
type Rule string

// Validation rules, in the order they are emitted.
const (
	RuleNotBlank  Rule = "not_blank"
	RuleEmail     Rule = "email"
	RuleMin       Rule = "min"
	RuleMax       Rule = "max"
	RuleMinLength Rule = "min_length"
	RuleMaxLength Rule = "max_length"
)

// Validation pairs a predicate that holds when the value is invalid with the
// message reported in that case. Predicates are expressions over the property
// variable (e.g. "$age < 0").
type Validation struct {
	Rule      Rule
	Predicate string
	Message   string
}

// Validations returns the ordered validation checks for the property:
// emptiness first, then format, then bounds with the lower bound first.
func (s Spec) Validations() []Validation {
	v := "$" + s.Variable()
	var out []Validation

	add := func(rule Rule, predicate, message string) {
		if s.Nullable {
			predicate = fmt.Sprintf("null !== %s && %s", v, predicate)
		}
		out = append(out, Validation{Rule: rule, Predicate: predicate, Message: message})
	}

	if s.Kind.IsStringLike() && !s.Nullable {
		add(RuleNotBlank, fmt.Sprintf("'' === trim(%s)", v), fmt.Sprintf("%s must not be blank.", s.Name))
	}
	if s.Kind == KindEmail {
		add(RuleEmail, fmt.Sprintf("false === filter_var(%s, FILTER_VALIDATE_EMAIL)", v), fmt.Sprintf("%s must be a valid email address.", s.Name))
	}
	if s.Kind.IsNumeric() {
		if s.Min != nil {
			add(RuleMin, fmt.Sprintf("%s < %d", v, *s.Min), fmt.Sprintf("%s must be greater than or equal to %d.", s.Name, *s.Min))
		}
		if s.Max != nil {
			add(RuleMax, fmt.Sprintf("%s > %d", v, *s.Max), fmt.Sprintf("%s must be less than or equal to %d.", s.Name, *s.Max))
		}
	}
	if s.Kind.IsStringLike() {
		if s.MinLength != nil {
			add(RuleMinLength, fmt.Sprintf("mb_strlen(%s) < %d", v, *s.MinLength), fmt.Sprintf("%s must be at least %d characters long.", s.Name, *s.MinLength))
		}
		if s.MaxLength != nil {
			add(RuleMaxLength, fmt.Sprintf("mb_strlen(%s) > %d", v, *s.MaxLength), fmt.Sprintf("%s must be at most %d characters long.", s.Name, *s.MaxLength))
		}
	}
	return out
}
