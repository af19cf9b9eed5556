package params

import (
	"testing"

	skafferrors "github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays canned answers, making resolution deterministic without
// a terminal.
type scripted struct {
	inputs  []string
	bools   []bool
	selects []string
	multis  [][]string
}

func (s *scripted) Input(message, def string) (string, error) {
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, nil
}

func (s *scripted) Confirm(message string, def bool) (bool, error) {
	next := s.bools[0]
	s.bools = s.bools[1:]
	return next, nil
}

func (s *scripted) Select(message string, options []string, def string) (string, error) {
	next := s.selects[0]
	s.selects = s.selects[1:]
	return next, nil
}

func (s *scripted) MultiSelect(message string, options []string, defs []string) ([]string, error) {
	next := s.multis[0]
	s.multis = s.multis[1:]
	return next, nil
}

func stringSpec(name string, required bool) types.ParameterSpec {
	return types.ParameterSpec{Name: name, Kind: types.KindString, Message: name + "?", Required: required}
}

func TestOverridesWinOverPrompts(t *testing.T) {
	r := NewResolver(&scripted{}, 0)
	values, err := r.Resolve(
		[]types.ParameterSpec{stringSpec("feature", true)},
		map[string]string{"feature": "auth"},
	)
	require.NoError(t, err)
	assert.Equal(t, "auth", values["feature"].Str)
}

func TestOverrideCoercionFailureNamesParameter(t *testing.T) {
	r := NewResolver(nil, 0)
	_, err := r.Resolve(
		[]types.ParameterSpec{{Name: "limit", Kind: types.KindInteger}},
		map[string]string{"limit": "abc"},
	)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrParamCoerce, skafferrors.GetCode(err))
	assert.Contains(t, err.Error(), `"limit"`)
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestScriptedAnswers(t *testing.T) {
	specs := []types.ParameterSpec{
		stringSpec("feature", true),
		{Name: "limit", Kind: types.KindInteger, Default: int64(10)},
		{Name: "async", Kind: types.KindBoolean},
		{Name: "license", Kind: types.KindSelect, Values: []string{"MIT", "Apache-2.0"}},
		{Name: "extras", Kind: types.KindMultiSelect, Values: []string{"ci", "docker"}},
	}
	prompter := &scripted{
		inputs:  []string{"auth", ""},
		bools:   []bool{true},
		selects: []string{"Apache-2.0"},
		multis:  [][]string{{"docker"}},
	}

	r := NewResolver(prompter, 0)
	values, err := r.Resolve(specs, nil)
	require.NoError(t, err)

	assert.Equal(t, "auth", values["feature"].Str)
	assert.EqualValues(t, 10, values["limit"].Int) // empty answer fell back to default
	assert.True(t, values["async"].Bool)
	assert.Equal(t, "Apache-2.0", values["license"].Str)
	assert.Equal(t, []string{"docker"}, values["extras"].List)
}

func TestNumericReprompt(t *testing.T) {
	prompter := &scripted{inputs: []string{"abc", "4x", "21"}}
	r := NewResolver(prompter, 3)
	values, err := r.Resolve(
		[]types.ParameterSpec{{Name: "limit", Kind: types.KindInteger, Required: true}},
		nil,
	)
	require.NoError(t, err)
	assert.EqualValues(t, 21, values["limit"].Int)
}

func TestRequiredRetriesExhausted(t *testing.T) {
	prompter := &scripted{inputs: []string{"", "", ""}}
	r := NewResolver(prompter, 3)
	_, err := r.Resolve(
		[]types.ParameterSpec{stringSpec("feature", true)},
		nil,
	)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrParamRequired, skafferrors.GetCode(err))
	assert.Contains(t, err.Error(), `"feature"`)
}

func TestNonInteractiveFallsBackToDefaults(t *testing.T) {
	specs := []types.ParameterSpec{
		{Name: "limit", Kind: types.KindInteger, Default: int64(5)},
		{Name: "pick", Kind: types.KindSelect, Values: []string{"a", "b"}},
		{Name: "extras", Kind: types.KindMultiSelect, Values: []string{"x"}},
		stringSpec("note", false),
	}
	r := NewResolver(nil, 0)
	values, err := r.Resolve(specs, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 5, values["limit"].Int)
	assert.Equal(t, "a", values["pick"].Str) // first declared choice
	assert.Empty(t, values["extras"].List)
	assert.Equal(t, "", values["note"].Str)
}

func TestNonInteractiveRequiredWithoutDefaultFails(t *testing.T) {
	r := NewResolver(nil, 0)
	_, err := r.Resolve([]types.ParameterSpec{stringSpec("feature", true)}, nil)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrParamRequired, skafferrors.GetCode(err))
}

func TestUndeclaredOverridesPassThrough(t *testing.T) {
	r := NewResolver(nil, 0)
	values, err := r.Resolve(nil, map[string]string{"extra": "yes"})
	require.NoError(t, err)
	assert.Equal(t, "yes", values["extra"].Str)
	assert.Equal(t, types.KindString, values["extra"].Kind)
}

func TestScriptedSelectOutsideValuesFails(t *testing.T) {
	prompter := &scripted{selects: []string{"GPL"}}
	r := NewResolver(prompter, 0)
	_, err := r.Resolve(
		[]types.ParameterSpec{{Name: "license", Kind: types.KindSelect, Values: []string{"MIT"}}},
		nil,
	)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrParamChoice, skafferrors.GetCode(err))
}

func TestResolveOne(t *testing.T) {
	prompter := &scripted{inputs: []string{"my-project"}}
	r := NewResolver(prompter, 0)
	value, err := r.ResolveOne(types.ParameterSpec{
		Name: "name", Kind: types.KindString, Required: true, Message: "Name?",
	})
	require.NoError(t, err)
	assert.Equal(t, "my-project", value.Str)
}

func TestBadDefaultSurfaces(t *testing.T) {
	r := NewResolver(nil, 0)
	_, err := r.Resolve(
		[]types.ParameterSpec{{Name: "limit", Kind: types.KindInteger, Default: "ten"}},
		nil,
	)
	assert.Error(t, err)
}
