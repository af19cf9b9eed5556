// Package params resolves a template's declared parameters into typed
// values, from CLI overrides or interactive answers.
package params

import (
	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/logging"
	"github.com/arthur-debert/skaff/pkg/types"
	"github.com/rs/zerolog"
)

// Prompter is the interactive input/output channel. Implementations render
// a prompt and block for an answer; tests script them.
type Prompter interface {
	// Input asks for a free-form line. An empty answer means "use the
	// default" and is handled by the resolver, not the prompter.
	Input(message, defaultValue string) (string, error)
	// Confirm asks a yes/no question.
	Confirm(message string, defaultValue bool) (bool, error)
	// Select asks for one of options.
	Select(message string, options []string, defaultValue string) (string, error)
	// MultiSelect asks for a subset of options.
	MultiSelect(message string, options []string, defaults []string) ([]string, error)
}

// DefaultAttempts bounds the re-prompt loop for required values.
const DefaultAttempts = 3

// Resolver turns parameter specs plus overrides and answers into Values.
// Resolution is deterministic given deterministic overrides and a scripted
// Prompter.
type Resolver struct {
	prompter Prompter
	attempts int
	logger   zerolog.Logger
}

// NewResolver builds a Resolver. A nil prompter puts the resolver in
// non-interactive mode: parameters without an override fall back to their
// default, and required ones without a default fail.
func NewResolver(prompter Prompter, attempts int) *Resolver {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Resolver{
		prompter: prompter,
		attempts: attempts,
		logger:   logging.GetLogger("params.resolver"),
	}
}

// Resolve walks specs in declaration order and produces a value for each.
// Overrides not matching any declared parameter are passed through as string
// values so templates can consume ad hoc --param flags.
func (r *Resolver) Resolve(specs []types.ParameterSpec, overrides map[string]string) (map[string]types.Value, error) {
	values := make(map[string]types.Value, len(specs))
	seen := make(map[string]bool, len(specs))

	for _, spec := range specs {
		seen[spec.Name] = true
		value, err := r.resolveOne(spec, overrides)
		if err != nil {
			return nil, err
		}
		values[spec.Name] = value
		r.logger.Debug().
			Str("parameter", spec.Name).
			Str("kind", string(spec.Kind)).
			Str("value", value.String()).
			Msg("Parameter resolved")
	}

	for name, raw := range overrides {
		if !seen[name] {
			values[name] = types.StringValue(raw)
		}
	}
	return values, nil
}

// ResolveOne resolves a single spec outside of any descriptor, used for the
// reserved project-name parameter.
func (r *Resolver) ResolveOne(spec types.ParameterSpec) (types.Value, error) {
	return r.resolveOne(spec, nil)
}

func (r *Resolver) resolveOne(spec types.ParameterSpec, overrides map[string]string) (types.Value, error) {
	if raw, ok := overrides[spec.Name]; ok {
		return CoerceString(spec, raw)
	}

	defaultValue, hasDefault, err := specDefault(spec)
	if err != nil {
		return types.Value{}, err
	}

	if r.prompter == nil {
		return r.resolveWithoutInput(spec, defaultValue, hasDefault)
	}
	return r.prompt(spec, defaultValue, hasDefault)
}

// resolveWithoutInput picks a value when prompting is unavailable.
func (r *Resolver) resolveWithoutInput(spec types.ParameterSpec, defaultValue types.Value, hasDefault bool) (types.Value, error) {
	if hasDefault {
		return defaultValue, nil
	}
	if spec.Required {
		return types.Value{}, requiredError(spec.Name)
	}
	return zeroValue(spec), nil
}

func (r *Resolver) prompt(spec types.ParameterSpec, defaultValue types.Value, hasDefault bool) (types.Value, error) {
	switch spec.Kind {
	case types.KindBoolean:
		def := false
		if hasDefault {
			def = defaultValue.Bool
		}
		answer, err := r.prompter.Confirm(spec.Message, def)
		if err != nil {
			return types.Value{}, promptError(spec.Name, err)
		}
		return types.BoolValue(answer), nil

	case types.KindSelect:
		def := spec.Values[0]
		if hasDefault {
			def = defaultValue.Str
		}
		answer, err := r.prompter.Select(spec.Message, spec.Values, def)
		if err != nil {
			return types.Value{}, promptError(spec.Name, err)
		}
		return CoerceString(spec, answer)

	case types.KindMultiSelect:
		var def []string
		if hasDefault {
			def = defaultValue.List
		}
		answers, err := r.prompter.MultiSelect(spec.Message, spec.Values, def)
		if err != nil {
			return types.Value{}, promptError(spec.Name, err)
		}
		var filtered []string
		for _, answer := range answers {
			if !contains(spec.Values, answer) {
				return types.Value{}, choiceError(spec.Name, answer, spec.Values)
			}
			if !contains(filtered, answer) {
				filtered = append(filtered, answer)
			}
		}
		return types.Value{Kind: types.KindMultiSelect, List: filtered}, nil
	}

	// Free-text kinds share a bounded retry loop: an empty answer falls
	// back to the default, a malformed one re-prompts.
	defaultHint := ""
	if hasDefault {
		defaultHint = defaultValue.String()
	}
	for attempt := 0; attempt < r.attempts; attempt++ {
		answer, err := r.prompter.Input(spec.Message, defaultHint)
		if err != nil {
			return types.Value{}, promptError(spec.Name, err)
		}
		if answer == "" {
			if hasDefault {
				return defaultValue, nil
			}
			if !spec.Required {
				return zeroValue(spec), nil
			}
			continue
		}
		value, err := CoerceString(spec, answer)
		if err != nil {
			r.logger.Debug().Str("parameter", spec.Name).Str("answer", answer).
				Msg("Answer did not parse, re-prompting")
			continue
		}
		return value, nil
	}
	return types.Value{}, requiredError(spec.Name)
}

// specDefault validates and types the declared default, if any.
func specDefault(spec types.ParameterSpec) (types.Value, bool, error) {
	if !spec.HasDefault() {
		return types.Value{}, false, nil
	}
	value, err := CoerceNative(spec, spec.Default)
	if err != nil {
		return types.Value{}, false, err
	}
	return value, true, nil
}

// zeroValue is the value an optional, unanswered parameter resolves to.
// Select falls back to its first declared choice so the values invariant
// holds; multiselect resolves to the empty set.
func zeroValue(spec types.ParameterSpec) types.Value {
	switch spec.Kind {
	case types.KindInteger:
		return types.IntValue(0)
	case types.KindFloat:
		return types.FloatValue(0)
	case types.KindBoolean:
		return types.BoolValue(false)
	case types.KindSelect:
		return types.Value{Kind: types.KindSelect, Str: spec.Values[0]}
	case types.KindMultiSelect:
		return types.Value{Kind: types.KindMultiSelect}
	default:
		return types.StringValue("")
	}
}

func requiredError(name string) *errors.SkaffError {
	return errors.Newf(errors.ErrParamRequired,
		"parameter %q is required and no value was provided", name).
		WithDetail("parameter", name)
}

func promptError(name string, err error) *errors.SkaffError {
	return errors.Wrapf(err, errors.ErrParamRequired,
		"parameter %q: prompt aborted", name).
		WithDetail("parameter", name)
}
