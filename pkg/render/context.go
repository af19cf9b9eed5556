// Package render builds the templating context and renders template text
// against it. The same Render function serves path segments, file bodies,
// and the descriptor's notes.
package render

import (
	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/types"
)

// Context is the variable namespace templates render against. It is built
// once per invocation and never mutated afterwards.
type Context map[string]interface{}

// NewContext merges resolved parameter values with the reserved variables.
func NewContext(desc *types.Descriptor, projectName, targetDir string, values map[string]types.Value) (Context, error) {
	ctx := Context{
		types.KeyName:            projectName,
		types.KeyTargetDir:       targetDir,
		types.KeyTemplateName:    desc.Template.Name,
		types.KeyTemplateAuthor:  desc.Template.Author,
		types.KeyTemplateVersion: desc.Template.Version,
	}
	for name, value := range values {
		if types.IsReservedKey(name) {
			return nil, errors.Newf(errors.ErrConfigInvalid,
				"parameter %q collides with a reserved variable", name)
		}
		ctx[name] = value.Native()
	}
	return ctx, nil
}
