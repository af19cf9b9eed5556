package render

import (
	"strings"
	"text/template"

	"github.com/arthur-debert/skaff/pkg/errors"
)

// Render renders template text against ctx. It is a pure function: the same
// (text, ctx) pair always produces the same output. References to variables
// absent from ctx are errors, as are syntax errors; both carry the offending
// fragment.
func Render(text string, ctx Context) (string, error) {
	tmpl, err := template.New("template").
		Option("missingkey=error").
		Funcs(funcs).
		Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderSyntax,
			"template syntax error in %q", snippet(text))
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, map[string]interface{}(ctx)); err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderExec,
			"cannot render %q", snippet(text)).
			WithDetail("template", snippet(text))
	}
	return buf.String(), nil
}

// snippet truncates template text for error messages.
func snippet(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	const max = 60
	if len(text) > max {
		return text[:max] + "…"
	}
	return text
}
