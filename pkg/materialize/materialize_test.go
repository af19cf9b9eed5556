package materialize

import (
	"os"
	"path/filepath"
	"testing"

	skafferrors "github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/render"
	"github.com/arthur-debert/skaff/pkg/testutil"
	"github.com/arthur-debert/skaff/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTemplate(t *testing.T, desc *types.Descriptor, ctx render.Context, mode types.MergeMode, files map[string]string, target string) (*Result, error) {
	t.Helper()
	templateDir := testutil.WriteTemplate(t, files)
	if target == "" {
		target = t.TempDir()
	}
	return Run(Options{
		TemplateDir: templateDir,
		TargetDir:   target,
		Mode:        mode,
		Descriptor:  desc,
		Context:     ctx,
	})
}

func TestRenderedPathsAndContent(t *testing.T) {
	target := t.TempDir()
	result, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{"feature": "auth"},
		types.MergeCreate,
		map[string]string{
			types.DescriptorFileTOML: "[template]\n",
			"src/{{.feature}}.rs":    "// {{.feature}} module\n",
			"README.md":              "plain\n",
		},
		target,
	)
	require.NoError(t, err)

	assert.Equal(t, "// auth module\n", testutil.ReadFile(t, target, "src/auth.rs"))
	assert.Equal(t, "plain\n", testutil.ReadFile(t, target, "README.md"))
	assert.False(t, testutil.Exists(t, target, types.DescriptorFileTOML),
		"descriptor must not materialize")
	assert.Len(t, result.Files, 2)
}

func TestExcludedSubtreeNeverAppears(t *testing.T) {
	target := t.TempDir()
	_, err := runTemplate(t,
		&types.Descriptor{Exclude: []string{"secrets", "**/*.bak"}},
		render.Context{},
		types.MergeCreate,
		map[string]string{
			"secrets/key.pem":        "private",
			"secrets/nested/dup.pem": "private",
			"src/old.bak":            "stale",
			"src/main.rs":            "fn main() {}\n",
		},
		target,
	)
	require.NoError(t, err)

	assert.False(t, testutil.Exists(t, target, "secrets"))
	assert.False(t, testutil.Exists(t, target, "secrets/nested/dup.pem"))
	assert.False(t, testutil.Exists(t, target, "src/old.bak"))
	assert.True(t, testutil.Exists(t, target, "src/main.rs"))
}

func TestExclusionMatchesRawPath(t *testing.T) {
	// The glob targets the un-rendered path; the rendered name would not
	// match it.
	target := t.TempDir()
	_, err := runTemplate(t,
		&types.Descriptor{Exclude: []string{"{{.feature}}.txt"}},
		render.Context{"feature": "auth"},
		types.MergeCreate,
		map[string]string{"{{.feature}}.txt": "x"},
		target,
	)
	require.NoError(t, err)
	assert.False(t, testutil.Exists(t, target, "auth.txt"))
}

func TestDisableTemplatingCopiesRaw(t *testing.T) {
	target := t.TempDir()
	_, err := runTemplate(t,
		&types.Descriptor{DisableTemplating: []string{"assets/**"}},
		render.Context{"feature": "auth"},
		types.MergeCreate,
		map[string]string{
			"assets/snippet.hbs": "hello {{.feature}}",
			"src/lib.rs":         "// {{.feature}}",
		},
		target,
	)
	require.NoError(t, err)

	assert.Equal(t, "hello {{.feature}}", testutil.ReadFile(t, target, "assets/snippet.hbs"))
	assert.Equal(t, "// auth", testutil.ReadFile(t, target, "src/lib.rs"))
}

func TestBinaryContentCopiesRaw(t *testing.T) {
	templateDir := t.TempDir()
	binary := []byte{0x89, 0x50, 0x4e, 0x47, 0xff, 0xfe}
	require.NoError(t, os.WriteFile(filepath.Join(templateDir, "logo.png"), binary, 0644))

	target := t.TempDir()
	_, err := Run(Options{
		TemplateDir: templateDir,
		TargetDir:   target,
		Mode:        types.MergeCreate,
		Descriptor:  &types.Descriptor{},
		Context:     render.Context{},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(target, "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, binary, got)
}

func TestCollisionFailsNamingBothSources(t *testing.T) {
	_, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{"dup": "fixed.txt"},
		types.MergeCreate,
		map[string]string{
			"fixed.txt": "first",
			"{{.dup}}":  "second",
		},
		"",
	)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrCollision, skafferrors.GetCode(err))
	assert.Contains(t, err.Error(), "fixed.txt")
	assert.Contains(t, err.Error(), "{{.dup}}")
}

func TestAppendPreservesExistingFiles(t *testing.T) {
	target := t.TempDir()
	testutil.WriteTree(t, target, map[string]string{"README.md": "mine\n"})

	result, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{},
		types.MergeAppend,
		map[string]string{
			"README.md": "template\n",
			"new.txt":   "added\n",
		},
		target,
	)
	require.NoError(t, err)

	assert.Equal(t, "mine\n", testutil.ReadFile(t, target, "README.md"))
	assert.Equal(t, "added\n", testutil.ReadFile(t, target, "new.txt"))

	outcomes := map[string]types.FileOutcome{}
	for _, f := range result.Files {
		outcomes[f.Path] = f.Outcome
	}
	assert.Equal(t, types.OutcomeSkipped, outcomes["README.md"])
	assert.Equal(t, types.OutcomeCreated, outcomes["new.txt"])
}

func TestForceOverwritesExistingFiles(t *testing.T) {
	target := t.TempDir()
	testutil.WriteTree(t, target, map[string]string{"README.md": "old\n"})

	result, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{},
		types.MergeForce,
		map[string]string{"README.md": "new\n"},
		target,
	)
	require.NoError(t, err)

	assert.Equal(t, "new\n", testutil.ReadFile(t, target, "README.md"))
	require.Len(t, result.Files, 1)
	assert.Equal(t, types.OutcomeOverwritten, result.Files[0].Outcome)
}

func TestProgressEventsAreOrdered(t *testing.T) {
	var events []string
	templateDir := testutil.WriteTemplate(t, map[string]string{
		"b.txt":     "b",
		"a.txt":     "a",
		"sub/c.txt": "c",
	})
	_, err := Run(Options{
		TemplateDir: templateDir,
		TargetDir:   t.TempDir(),
		Mode:        types.MergeCreate,
		Descriptor:  &types.Descriptor{},
		Context:     render.Context{},
		OnProgress: func(f types.MaterializedFile) {
			events = append(events, f.Path)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "sub/c.txt"}, events)
}

func TestNotesRendered(t *testing.T) {
	result, err := runTemplate(t,
		&types.Descriptor{Notes: "cd {{.name}} && make"},
		render.Context{"name": "proj"},
		types.MergeCreate,
		map[string]string{"f.txt": "x"},
		"",
	)
	require.NoError(t, err)
	assert.Equal(t, "cd proj && make", result.Notes)
}

func TestUndefinedVariableInPathFails(t *testing.T) {
	_, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{},
		types.MergeCreate,
		map[string]string{"{{.ghost}}.txt": "x"},
		"",
	)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrRenderExec, skafferrors.GetCode(err))
}

func TestPathEscapingTargetRejected(t *testing.T) {
	_, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{"up": ".."},
		types.MergeCreate,
		map[string]string{"{{.up}}/evil.txt": "x"},
		"",
	)
	require.Error(t, err)
	assert.Equal(t, skafferrors.ErrInvalidInput, skafferrors.GetCode(err))
}

func TestGitDirectorySkipped(t *testing.T) {
	target := t.TempDir()
	_, err := runTemplate(t,
		&types.Descriptor{},
		render.Context{},
		types.MergeCreate,
		map[string]string{
			".git/config": "[core]\n",
			"main.go":     "package main\n",
		},
		target,
	)
	require.NoError(t, err)
	assert.False(t, testutil.Exists(t, target, ".git"))
	assert.True(t, testutil.Exists(t, target, "main.go"))
}
