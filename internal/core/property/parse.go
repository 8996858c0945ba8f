package property

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/hexmaker/internal/core/naming"
)

// ParseError reports a malformed property specification.
type ParseError struct {
	Input     string // the full spec being parsed
	Offending string // the substring at fault
	Reason    string
}

func (e *ParseError) Error() string {
	if e.Offending == "" || e.Offending == e.Input {
		return fmt.Sprintf("invalid property spec %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid property spec %q: %s (near %q)", e.Input, e.Reason, e.Offending)
}

func parseErr(input, offending, format string, args ...any) *ParseError {
	return &ParseError{Input: input, Offending: offending, Reason: fmt.Sprintf(format, args...)}
}

// Modifier tokens.
const (
	ModifierNullable = "nullable"
	ModifierUnique   = "unique"
)

// ParseList parses a comma-joined list of property specs. Order is preserved.
// Format: "age:int(0,150),email:email:unique,bio:text:nullable"
func ParseList(list string) ([]Spec, error) {
	parts, err := SplitTopLevel(list)
	if err != nil {
		return nil, err
	}

	var specs []Spec
	for _, part := range parts {
		spec, err := Parse(part)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// SplitTopLevel splits list on commas that are not enclosed in parentheses.
// Empty elements are dropped.
func SplitTopLevel(list string) ([]string, error) {
	return splitDepth(list, ',')
}

func splitDepth(s string, sep rune) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, parseErr(s, s[:i+1], "unbalanced parentheses")
			}
		case sep:
			if depth == 0 {
				parts = appendTrimmed(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, parseErr(s, s[start:], "unbalanced parentheses")
	}
	return appendTrimmed(parts, s[start:]), nil
}

func appendTrimmed(parts []string, part string) []string {
	if part = strings.TrimSpace(part); part != "" {
		parts = append(parts, part)
	}
	return parts
}

// Parse parses a single property spec.
// Format: "name[:kind[(lower,upper)]][:modifier]*"
func Parse(spec string) (Spec, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Spec{}, parseErr(spec, "", "empty property spec")
	}

	fields, err := splitDepth(spec, ':')
	if err != nil {
		return Spec{}, err
	}
	if len(fields) == 0 {
		return Spec{}, parseErr(spec, spec, "missing property name")
	}

	name := fields[0]
	if !naming.IsIdentifier(name) {
		return Spec{}, parseErr(spec, name, "property name must be an identifier")
	}

	result := Spec{Name: name, Kind: KindString}
	rest := fields[1:]

	if len(rest) > 0 && !isModifier(rest[0]) {
		if err := parseKind(spec, rest[0], &result); err != nil {
			return Spec{}, err
		}
		rest = rest[1:]
	}

	for _, mod := range rest {
		switch strings.ToLower(mod) {
		case ModifierNullable:
			result.Nullable = true
		case ModifierUnique:
			result.Unique = true
		default:
			return Spec{}, parseErr(spec, mod, "unknown modifier (valid: nullable, unique)")
		}
	}

	return result, nil
}

func isModifier(token string) bool {
	t := strings.ToLower(token)
	return t == ModifierNullable || t == ModifierUnique
}

// parseKind parses "kind" or "kind(lower,upper)" into dst.
func parseKind(spec, field string, dst *Spec) error {
	token, bounds, hasBounds := field, "", false
	if open := strings.IndexByte(field, '('); open >= 0 {
		if !strings.HasSuffix(field, ")") {
			return parseErr(spec, field, "bounds must close the kind token")
		}
		token, bounds, hasBounds = field[:open], field[open+1:len(field)-1], true
	}

	kind, ok := ParseKind(token)
	if !ok {
		return parseErr(spec, token, "unknown kind (valid: %s)", kindList())
	}
	dst.Kind = kind

	if !hasBounds {
		return nil
	}

	lo, hi, err := parseBounds(spec, bounds)
	if err != nil {
		return err
	}

	switch {
	case kind.IsStringLike():
		if (lo != nil && *lo < 0) || (hi != nil && *hi < 0) {
			return parseErr(spec, field, "length bounds must not be negative")
		}
		dst.MinLength, dst.MaxLength = lo, hi
	case kind.IsNumeric():
		dst.Min, dst.Max = lo, hi
	default:
		if lo != nil || hi != nil {
			return parseErr(spec, field, "kind %s does not accept bounds", kind)
		}
	}
	return nil
}

// parseBounds parses "lower,upper" where either side may be empty.
// A missing comma means only the lower bound is given.
func parseBounds(spec, bounds string) (lo, hi *int, err error) {
	if strings.ContainsAny(bounds, "()") {
		return nil, nil, parseErr(spec, bounds, "nested parentheses in bounds")
	}

	parts := strings.Split(bounds, ",")
	if len(parts) > 2 {
		return nil, nil, parseErr(spec, bounds, "at most two bounds allowed")
	}

	parseOne := func(s string) (*int, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, parseErr(spec, s, "bound must be an integer")
		}
		return &n, nil
	}

	if lo, err = parseOne(parts[0]); err != nil {
		return nil, nil, err
	}
	if len(parts) == 2 {
		if hi, err = parseOne(parts[1]); err != nil {
			return nil, nil, err
		}
	}
	if lo != nil && hi != nil && *lo > *hi {
		return nil, nil, parseErr(spec, bounds, "lower bound exceeds upper bound")
	}
	return lo, hi, nil
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
