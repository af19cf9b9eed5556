package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/types"
)

// CoerceString converts the string form of a parameter (a CLI override or an
// interactive answer) into a typed Value for spec's kind.
func CoerceString(spec types.ParameterSpec, raw string) (types.Value, error) {
	switch spec.Kind {
	case types.KindString:
		return types.StringValue(raw), nil

	case types.KindInteger:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return types.Value{}, coerceError(spec.Name, raw, "an integer")
		}
		return types.IntValue(i), nil

	case types.KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return types.Value{}, coerceError(spec.Name, raw, "a float")
		}
		return types.FloatValue(f), nil

	case types.KindBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "yes", "y", "1":
			return types.BoolValue(true), nil
		case "false", "no", "n", "0":
			return types.BoolValue(false), nil
		}
		return types.Value{}, coerceError(spec.Name, raw, "a boolean")

	case types.KindSelect:
		choice := strings.TrimSpace(raw)
		if !contains(spec.Values, choice) {
			return types.Value{}, choiceError(spec.Name, choice, spec.Values)
		}
		return types.Value{Kind: types.KindSelect, Str: choice}, nil

	case types.KindMultiSelect:
		var choices []string
		for _, part := range strings.Split(raw, ",") {
			choice := strings.TrimSpace(part)
			if choice == "" {
				continue
			}
			if !contains(spec.Values, choice) {
				return types.Value{}, choiceError(spec.Name, choice, spec.Values)
			}
			if !contains(choices, choice) {
				choices = append(choices, choice)
			}
		}
		return types.Value{Kind: types.KindMultiSelect, List: choices}, nil
	}

	return types.Value{}, errors.Newf(errors.ErrInternal,
		"parameter %q has unrecognized kind %q", spec.Name, spec.Kind)
}

// CoerceNative converts a value as decoded from the descriptor document (a
// declared default) into a typed Value for spec's kind.
func CoerceNative(spec types.ParameterSpec, raw interface{}) (types.Value, error) {
	switch spec.Kind {
	case types.KindString:
		if s, ok := raw.(string); ok {
			return types.StringValue(s), nil
		}

	case types.KindInteger:
		switch n := raw.(type) {
		case int64:
			return types.IntValue(n), nil
		case int:
			return types.IntValue(int64(n)), nil
		}

	case types.KindFloat:
		switch n := raw.(type) {
		case float64:
			return types.FloatValue(n), nil
		case int64:
			return types.FloatValue(float64(n)), nil
		case int:
			return types.FloatValue(float64(n)), nil
		}

	case types.KindBoolean:
		if b, ok := raw.(bool); ok {
			return types.BoolValue(b), nil
		}

	case types.KindSelect:
		if s, ok := raw.(string); ok {
			if !contains(spec.Values, s) {
				return types.Value{}, choiceError(spec.Name, s, spec.Values)
			}
			return types.Value{Kind: types.KindSelect, Str: s}, nil
		}

	case types.KindMultiSelect:
		items, ok := toStringSlice(raw)
		if !ok {
			break
		}
		var choices []string
		for _, choice := range items {
			if !contains(spec.Values, choice) {
				return types.Value{}, choiceError(spec.Name, choice, spec.Values)
			}
			if !contains(choices, choice) {
				choices = append(choices, choice)
			}
		}
		return types.Value{Kind: types.KindMultiSelect, List: choices}, nil
	}

	return types.Value{}, coerceError(spec.Name, fmt.Sprintf("%v", raw), string(spec.Kind))
}

func toStringSlice(raw interface{}) ([]string, bool) {
	switch items := raw.(type) {
	case []string:
		return items, true
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func coerceError(name, raw, want string) *errors.SkaffError {
	return errors.Newf(errors.ErrParamCoerce,
		"parameter %q: cannot parse %q as %s", name, raw, want).
		WithDetail("parameter", name).
		WithDetail("input", raw)
}

func choiceError(name, choice string, values []string) *errors.SkaffError {
	return errors.Newf(errors.ErrParamChoice,
		"parameter %q: %q is not one of [%s]", name, choice, strings.Join(values, ", ")).
		WithDetail("parameter", name).
		WithDetail("input", choice)
}
