// Package types holds the data model shared across skaff packages:
// the template descriptor, parameter specs and values, merge modes, and
// the records produced during a generation run.
package types

import (
	"fmt"
	"strings"
)

// DescriptorFileTOML is the canonical descriptor filename at a template root.
const DescriptorFileTOML = ".scaffold.toml"

// DescriptorFileYAML is the alternate descriptor filename, consulted when the
// TOML file is absent.
const DescriptorFileYAML = ".scaffold.yaml"

// ParamKind enumerates the six recognized parameter types.
type ParamKind string

const (
	KindString      ParamKind = "string"
	KindInteger     ParamKind = "integer"
	KindFloat       ParamKind = "float"
	KindBoolean     ParamKind = "boolean"
	KindSelect      ParamKind = "select"
	KindMultiSelect ParamKind = "multiselect"
)

// ParseKind maps a descriptor "type" string to a ParamKind.
func ParseKind(s string) (ParamKind, bool) {
	switch ParamKind(strings.ToLower(s)) {
	case KindString, KindInteger, KindFloat, KindBoolean, KindSelect, KindMultiSelect:
		return ParamKind(strings.ToLower(s)), true
	}
	return "", false
}

// ParameterSpec describes one declared template parameter.
type ParameterSpec struct {
	Name     string
	Kind     ParamKind
	Message  string
	Required bool
	// Default is the raw default as decoded from the descriptor; it is
	// validated against Kind at load time. Nil means no default.
	Default interface{}
	// Values lists the allowed choices for select/multiselect.
	Values []string
}

// HasDefault reports whether a default was declared.
func (s ParameterSpec) HasDefault() bool {
	return s.Default != nil
}

// Value is a tagged parameter value matching one ParamKind. Exactly the
// field for its Kind is meaningful.
type Value struct {
	Kind  ParamKind
	Str   string   // string, select
	Int   int64    // integer
	Float float64  // float
	Bool  bool     // boolean
	List  []string // multiselect
}

// Native returns the value as the Go type used in the render context.
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBoolean:
		return v.Bool
	case KindMultiSelect:
		return v.List
	default:
		return v.Str
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBoolean:
		return fmt.Sprintf("%t", v.Bool)
	case KindMultiSelect:
		return strings.Join(v.List, ",")
	default:
		return v.Str
	}
}

// StringValue builds a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue builds an integer Value.
func IntValue(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// FloatValue builds a float Value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// BoolValue builds a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// Metadata is the descriptor's [template] table.
type Metadata struct {
	Name    string
	Author  string
	Version string
}

// Hooks holds the two ordered lists of lifecycle commands.
type Hooks struct {
	Pre  []string
	Post []string
}

// Descriptor is the validated template configuration.
type Descriptor struct {
	Template Metadata
	// Exclude holds glob patterns matched against raw relative paths.
	Exclude []string
	// DisableTemplating holds glob patterns for files copied byte-for-byte.
	DisableTemplating []string
	Notes             string
	Hooks             Hooks
	// Parameters preserves declaration order from the document.
	Parameters []ParameterSpec
}

// Parameter looks a spec up by name.
func (d *Descriptor) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// Reserved render-context keys. A parameter may not redeclare any of these.
const (
	KeyName            = "name"
	KeyTargetDir       = "target_dir"
	KeyTemplateName    = "template_name"
	KeyTemplateAuthor  = "template_author"
	KeyTemplateVersion = "template_version"
)

// ReservedKeys lists every reserved render-context key.
var ReservedKeys = []string{
	KeyName,
	KeyTargetDir,
	KeyTemplateName,
	KeyTemplateAuthor,
	KeyTemplateVersion,
}

// IsReservedKey reports whether name collides with a reserved context key.
func IsReservedKey(name string) bool {
	for _, k := range ReservedKeys {
		if name == k {
			return true
		}
	}
	return false
}

// MergeMode governs interaction with a pre-existing target directory.
type MergeMode string

const (
	// MergeCreate fails when the target exists and is non-empty.
	MergeCreate MergeMode = "create"
	// MergeForce replaces the target wholesale.
	MergeForce MergeMode = "force"
	// MergeAppend keeps pre-existing files and only adds new ones.
	MergeAppend MergeMode = "append"
)

// FileOutcome records what happened to one materialized file.
type FileOutcome string

const (
	OutcomeCreated     FileOutcome = "created"
	OutcomeOverwritten FileOutcome = "overwritten"
	OutcomeSkipped     FileOutcome = "skipped"
)

// MaterializedFile records one file processed during a run.
type MaterializedFile struct {
	// RawPath is the un-rendered path relative to the template root.
	RawPath string
	// Path is the rendered path relative to the target directory.
	Path    string
	Outcome FileOutcome
}

// ProgressFunc receives one event per processed file, in traversal order.
type ProgressFunc func(MaterializedFile)

// HookPhase identifies when a hook list runs.
type HookPhase string

const (
	HookPre  HookPhase = "pre"
	HookPost HookPhase = "post"
)

// HookInvocation records one executed hook command.
type HookInvocation struct {
	Phase    HookPhase
	Command  string
	Dir      string
	ExitCode int
}
