// Package naming contains the pure path and identifier transformations shared by
// every generated artifact.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NamespaceSeparator joins namespace levels in generated sources.
const NamespaceSeparator = `\`

// Normalize converts a user-supplied path fragment into its canonical form.
// Each "/"-delimited segment has its dashes removed, and the segment's first
// letter plus every letter following a removed dash is upper-cased:
//
//	"user-account/profile-settings" -> "UserAccount/ProfileSettings"
//
// Backslashes are accepted as separators and empty segments are dropped, so
// Normalize is idempotent.
func Normalize(raw string) string {
	segments := splitSegments(raw)
	for i, seg := range segments {
		segments[i] = normalizeSegment(seg)
	}
	return strings.Join(compact(segments), "/")
}

func splitSegments(raw string) []string {
	raw = strings.ReplaceAll(raw, `\`, "/")
	return strings.Split(raw, "/")
}

func normalizeSegment(seg string) string {
	var b strings.Builder
	for _, piece := range strings.Split(strings.TrimSpace(seg), "-") {
		b.WriteString(capitalize(strings.TrimSpace(piece)))
	}
	return b.String()
}

func compact(segments []string) []string {
	out := segments[:0]
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Path is a normalized namespace path. The zero value is an empty path.
type Path struct {
	segments      []string
	rootNamespace string
}

// NewPath normalizes raw and binds it to rootNamespace (e.g. "App").
func NewPath(raw, rootNamespace string) Path {
	normalized := Normalize(raw)
	var segments []string
	if normalized != "" {
		segments = strings.Split(normalized, "/")
	}
	return Path{segments: segments, rootNamespace: rootNamespace}
}

// Segments returns a copy of the PascalCase segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// RootNamespace returns the namespace prefix the path is bound to.
func (p Path) RootNamespace() string {
	return p.rootNamespace
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// ToNamespace joins the root namespace, the path segments and suffix with the
// namespace separator. An empty root or suffix is omitted together with its
// separator.
func (p Path) ToNamespace(suffix string) string {
	parts := make([]string, 0, len(p.segments)+2)
	if p.rootNamespace != "" {
		parts = append(parts, p.rootNamespace)
	}
	parts = append(parts, p.segments...)
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, NamespaceSeparator)
}

// ToPath returns the segments joined with "/".
func (p Path) ToPath() string {
	return strings.Join(p.segments, "/")
}

// ToShortName returns the last segment.
func (p Path) ToShortName() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Alias returns the segments concatenated, e.g. "SalesOrder" for "Sales/Order".
// It identifies the path in configuration registries.
func (p Path) Alias() string {
	return strings.Join(p.segments, "")
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return p.ToPath()
}

// ToPascalCase converts a string to PascalCase.
func ToPascalCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = capitalize(strings.ToLower(word))
	}
	return strings.Join(words, "")
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return pascal
	}
	r, size := utf8.DecodeRuneInString(pascal)
	return string(unicode.ToLower(r)) + pascal[size:]
}

// ToSnakeCase converts a string to snake_case.
func ToSnakeCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

// ToKebabCase converts a camel-case identifier to kebab-case: a dash is
// inserted before every upper-case letter that follows a lower-case letter and
// the result is lower-cased. "CreatePost" -> "create-post".
func ToKebabCase(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteRune('-')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.ToLower(b.String())
}

// capitalize returns the string with the first letter uppercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, kebab-case).
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	// Insert space before uppercase letters in camelCase/PascalCase
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(s[i-1])
			if !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
				result.WriteRune(' ')
			}
		}
		result.WriteRune(r)
	}

	return strings.Fields(result.String())
}

// Pluralize returns a simple pluralized form of a word.
func Pluralize(s string) string {
	if s == "" {
		return s
	}

	if strings.HasSuffix(s, "s") || strings.HasSuffix(s, "x") ||
		strings.HasSuffix(s, "ch") || strings.HasSuffix(s, "sh") {
		return s + "es"
	}
	if strings.HasSuffix(s, "y") && len(s) > 1 {
		lastChar := s[len(s)-2]
		if lastChar != 'a' && lastChar != 'e' && lastChar != 'i' && lastChar != 'o' && lastChar != 'u' {
			return s[:len(s)-1] + "ies"
		}
	}
	return s + "s"
}

// IsIdentifier reports whether s is a valid class or property identifier:
// a letter followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
