// Package scaffold orchestrates one generation run: descriptor load,
// parameter resolution, target preparation, pre hooks, materialization,
// then post hooks. Post hooks never run when materialization failed.
package scaffold

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/skaff/pkg/descriptor"
	"github.com/arthur-debert/skaff/pkg/hooks"
	"github.com/arthur-debert/skaff/pkg/logging"
	"github.com/arthur-debert/skaff/pkg/materialize"
	"github.com/arthur-debert/skaff/pkg/params"
	"github.com/arthur-debert/skaff/pkg/render"
	"github.com/arthur-debert/skaff/pkg/types"
)

// nameSpec is the reserved project-name parameter, asked first when no
// --name was given.
var nameSpec = types.ParameterSpec{
	Name:     types.KeyName,
	Kind:     types.KindString,
	Message:  "What is the name of your generated project?",
	Required: true,
}

// Options configures a run.
type Options struct {
	// TemplateDir is the local template root, as resolved by the source
	// provider.
	TemplateDir string
	// TargetDir is where the project materializes. Empty means a
	// directory named after the project under the working directory.
	TargetDir string
	// ProjectName skips the name prompt when non-empty.
	ProjectName string
	// Overrides are --param name=value pairs.
	Overrides map[string]string
	Mode      types.MergeMode
	// Prompter collects interactive answers; nil resolves from defaults
	// only.
	Prompter       params.Prompter
	PromptAttempts int
	// Stdout/Stderr receive streamed hook output.
	Stdout io.Writer
	Stderr io.Writer
	// OnProgress receives one event per materialized file.
	OnProgress types.ProgressFunc
}

// Result reports a successful run.
type Result struct {
	ProjectDir string
	Files      []types.MaterializedFile
	Notes      string
	Hooks      []types.HookInvocation
}

// Run generates a project from the template at opts.TemplateDir.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("scaffold")
	done := logging.LogOperationStart(logger, "scaffold")
	defer done()

	if opts.Mode == "" {
		opts.Mode = types.MergeCreate
	}

	desc, err := descriptor.Load(opts.TemplateDir)
	if err != nil {
		return nil, err
	}

	resolver := params.NewResolver(opts.Prompter, opts.PromptAttempts)

	name := opts.ProjectName
	if name == "" {
		value, err := resolver.ResolveOne(nameSpec)
		if err != nil {
			return nil, err
		}
		name = value.Str
	}

	values, err := resolver.Resolve(desc.Parameters, opts.Overrides)
	if err != nil {
		return nil, err
	}

	target := opts.TargetDir
	if target == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		target = filepath.Join(cwd, name)
	}

	projectDir, err := materialize.PrepareTarget(target, opts.Mode)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("project", name).Str("dir", projectDir).Msg("Generating project")

	renderCtx, err := render.NewContext(desc, name, projectDir, values)
	if err != nil {
		return nil, err
	}

	executor := hooks.NewExecutor(opts.Stdout, opts.Stderr)
	executor.Env = map[string]string{
		"SKAFF_PROJECT_NAME": name,
		"SKAFF_PROJECT_DIR":  projectDir,
	}

	result := &Result{ProjectDir: projectDir}

	invocations, err := executor.RunPhase(ctx, types.HookPre, desc.Hooks.Pre, projectDir)
	result.Hooks = append(result.Hooks, invocations...)
	if err != nil {
		return nil, err
	}

	materialized, err := materialize.Run(materialize.Options{
		TemplateDir: opts.TemplateDir,
		TargetDir:   projectDir,
		Mode:        opts.Mode,
		Descriptor:  desc,
		Context:     renderCtx,
		OnProgress:  opts.OnProgress,
	})
	if err != nil {
		return nil, err
	}
	result.Files = materialized.Files
	result.Notes = materialized.Notes

	invocations, err = executor.RunPhase(ctx, types.HookPost, desc.Hooks.Post, projectDir)
	result.Hooks = append(result.Hooks, invocations...)
	if err != nil {
		return nil, err
	}

	return result, nil
}
