// Package descriptor loads and validates the template configuration file
// found at a template root (.scaffold.toml, or .scaffold.yaml when the TOML
// file is absent).
package descriptor

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/glob"
	"github.com/arthur-debert/skaff/pkg/logging"
	"github.com/arthur-debert/skaff/pkg/params"
	"github.com/arthur-debert/skaff/pkg/types"
)

// rawDescriptor mirrors the on-disk document before validation.
type rawDescriptor struct {
	Template   rawTemplate             `toml:"template" yaml:"template"`
	Hooks      rawHooks                `toml:"hooks" yaml:"hooks"`
	Parameters map[string]rawParameter `toml:"parameters" yaml:"parameters"`
}

type rawTemplate struct {
	Name              string   `toml:"name" yaml:"name"`
	Author            string   `toml:"author" yaml:"author"`
	Version           string   `toml:"version" yaml:"version"`
	Exclude           []string `toml:"exclude" yaml:"exclude"`
	DisableTemplating []string `toml:"disable_templating" yaml:"disable_templating"`
	Notes             string   `toml:"notes" yaml:"notes"`
}

type rawHooks struct {
	Pre  []string `toml:"pre" yaml:"pre"`
	Post []string `toml:"post" yaml:"post"`
}

type rawParameter struct {
	Type     string      `toml:"type" yaml:"type"`
	Message  string      `toml:"message" yaml:"message"`
	Required bool        `toml:"required" yaml:"required"`
	Default  interface{} `toml:"default" yaml:"default"`
	Values   []string    `toml:"values" yaml:"values"`
}

// Load reads and validates the descriptor at templateDir.
func Load(templateDir string) (*types.Descriptor, error) {
	logger := logging.GetLogger("descriptor")

	tomlPath := filepath.Join(templateDir, types.DescriptorFileTOML)
	if data, err := os.ReadFile(tomlPath); err == nil {
		logger.Debug().Str("path", tomlPath).Msg("Loading descriptor")
		raw, order, err := decodeTOML(data)
		if err != nil {
			return nil, err
		}
		return build(raw, order)
	}

	yamlPath := filepath.Join(templateDir, types.DescriptorFileYAML)
	if data, err := os.ReadFile(yamlPath); err == nil {
		logger.Debug().Str("path", yamlPath).Msg("Loading descriptor")
		raw, order, err := decodeYAML(data)
		if err != nil {
			return nil, err
		}
		return build(raw, order)
	}

	return nil, errors.Newf(errors.ErrConfigNotFound,
		"no %s (or %s) found in %s",
		types.DescriptorFileTOML, types.DescriptorFileYAML, templateDir)
}

// build turns the raw document into a validated Descriptor. order carries
// parameter names in declaration order; names the order scan missed are
// appended sorted, so the result is deterministic either way.
func build(raw *rawDescriptor, order []string) (*types.Descriptor, error) {
	desc := &types.Descriptor{
		Template: types.Metadata{
			Name:    raw.Template.Name,
			Author:  raw.Template.Author,
			Version: raw.Template.Version,
		},
		Exclude:           raw.Template.Exclude,
		DisableTemplating: raw.Template.DisableTemplating,
		Notes:             raw.Template.Notes,
		Hooks: types.Hooks{
			Pre:  raw.Hooks.Pre,
			Post: raw.Hooks.Post,
		},
	}

	if _, offending, err := glob.CompileAll(raw.Template.Exclude); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid,
			"template.exclude: invalid glob %q", offending)
	}
	if _, offending, err := glob.CompileAll(raw.Template.DisableTemplating); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid,
			"template.disable_templating: invalid glob %q", offending)
	}

	for _, name := range paramOrder(raw.Parameters, order) {
		spec, err := buildParameter(name, raw.Parameters[name])
		if err != nil {
			return nil, err
		}
		desc.Parameters = append(desc.Parameters, spec)
	}
	return desc, nil
}

func buildParameter(name string, raw rawParameter) (types.ParameterSpec, error) {
	if types.IsReservedKey(name) {
		return types.ParameterSpec{}, errors.Newf(errors.ErrConfigInvalid,
			"parameters.%s: %q is a reserved variable and may not be declared", name, name)
	}

	kind, ok := types.ParseKind(raw.Type)
	if !ok {
		return types.ParameterSpec{}, errors.Newf(errors.ErrConfigInvalid,
			"parameters.%s.type: unrecognized type %q", name, raw.Type)
	}

	spec := types.ParameterSpec{
		Name:     name,
		Kind:     kind,
		Message:  raw.Message,
		Required: raw.Required,
		Default:  raw.Default,
		Values:   raw.Values,
	}

	switch kind {
	case types.KindSelect, types.KindMultiSelect:
		if len(raw.Values) == 0 {
			return types.ParameterSpec{}, errors.Newf(errors.ErrConfigInvalid,
				"parameters.%s.values: %s parameters require a non-empty values list", name, kind)
		}
	default:
		if len(raw.Values) > 0 {
			return types.ParameterSpec{}, errors.Newf(errors.ErrConfigInvalid,
				"parameters.%s.values: values are only valid for select and multiselect", name)
		}
	}

	if spec.HasDefault() {
		if _, err := params.CoerceNative(spec, spec.Default); err != nil {
			return types.ParameterSpec{}, errors.Wrapf(err, errors.ErrConfigInvalid,
				"parameters.%s.default: default does not match type %s", name, kind)
		}
	}
	return spec, nil
}

// paramOrder reconciles the names found by the order scan with the decoded
// map, dropping stale names and appending stragglers sorted.
func paramOrder(parameters map[string]rawParameter, order []string) []string {
	names := make([]string, 0, len(parameters))
	seen := make(map[string]bool, len(parameters))
	for _, name := range order {
		if _, ok := parameters[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range parameters {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
