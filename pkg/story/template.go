package story

import (
	"fmt"
	"strings"
)

// span is one segment of a template: either literal text or a variable
// placeholder to substitute at render time.
type span struct {
	text string
	name string // non-empty for a placeholder
}

// Template is a display string with {var} interpolation spans. Placeholders
// are never resolved at parse time; the same template is reused by every
// session with different values.
type Template struct {
	raw   string
	spans []span
}

// ParseTemplate splits raw text into literal and placeholder spans.
// A "{" always opens a placeholder; the name must be a non-empty identifier
// closed by "}".
func ParseTemplate(raw string) (Template, error) {
	t := Template{raw: raw}
	rest := raw
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			t.spans = append(t.spans, span{text: rest})
			break
		}
		if open > 0 {
			t.spans = append(t.spans, span{text: rest[:open]})
		}
		rest = rest[open+1:]
		close := strings.IndexByte(rest, '}')
		if close < 0 {
			return Template{}, fmt.Errorf("unterminated placeholder in %q", raw)
		}
		name := rest[:close]
		if !isIdentifier(name) {
			return Template{}, fmt.Errorf("invalid placeholder name %q in %q", name, raw)
		}
		t.spans = append(t.spans, span{name: name})
		rest = rest[close+1:]
	}
	return t, nil
}

// MustTemplate is a test helper that panics on a malformed template.
func MustTemplate(raw string) Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Render substitutes every placeholder with the stringified current value of
// the variable from env. Referencing an undeclared variable is an error.
func (t Template) Render(env Environment) (string, error) {
	var b strings.Builder
	for _, s := range t.spans {
		if s.name == "" {
			b.WriteString(s.text)
			continue
		}
		v, err := env.Lookup(s.name)
		if err != nil {
			return "", err
		}
		b.WriteString(v.Display())
	}
	return b.String(), nil
}

// Vars lists the placeholder names in authored order, once each.
func (t Template) Vars() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range t.spans {
		if s.name != "" && !seen[s.name] {
			seen[s.name] = true
			names = append(names, s.name)
		}
	}
	return names
}

// String returns the raw authored text, placeholders included.
func (t Template) String() string { return t.raw }

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
