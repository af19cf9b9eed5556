package render

import (
	"strings"
	"text/template"
	"unicode"
)

// funcs are the helpers available to every template. forRange mirrors the
// helper of the same name template authors already rely on: it yields the
// indices 0..n-1 for use with range.
var funcs = template.FuncMap{
	"forRange": forRange,
	"lower":    strings.ToLower,
	"upper":    strings.ToUpper,
	"title":    titleCase,
	"snake":    snakeCase,
	"kebab":    kebabCase,
	"camel":    camelCase,
	"pascal":   pascalCase,
}

func forRange(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// words splits an identifier on separators and case boundaries.
func words(s string) []string {
	var out []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.ToLower(string(current)))
			current = nil
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return out
}

func titleCase(s string) string {
	parts := words(s)
	for i, w := range parts {
		parts[i] = capitalize(w)
	}
	return strings.Join(parts, " ")
}

func snakeCase(s string) string { return strings.Join(words(s), "_") }

func kebabCase(s string) string { return strings.Join(words(s), "-") }

func camelCase(s string) string {
	parts := words(s)
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

func pascalCase(s string) string {
	parts := words(s)
	for i, w := range parts {
		parts[i] = capitalize(w)
	}
	return strings.Join(parts, "")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
