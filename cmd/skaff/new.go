package main

import (
	"strings"

	"github.com/arthur-debert/skaff/pkg/config"
	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/params"
	"github.com/arthur-debert/skaff/pkg/prompt"
	"github.com/arthur-debert/skaff/pkg/provider"
	"github.com/arthur-debert/skaff/pkg/scaffold"
	"github.com/arthur-debert/skaff/pkg/types"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	newName      string
	newTarget    string
	newRef       string
	newPath      string
	newParams    []string
	newForce     bool
	newAppend    bool
	newNoInput   bool
)

var newCmd = &cobra.Command{
	Use:   "new <template> [target]",
	Short: "Generate a project from a template",
	Long:  newLong,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "Project name (skips the prompt)")
	newCmd.Flags().StringVarP(&newTarget, "target-dir", "d", "", "Target directory (default: ./<name>)")
	newCmd.Flags().StringVarP(&newRef, "ref", "t", "", "Git tag or commit hash to generate from")
	newCmd.Flags().StringVarP(&newPath, "path", "r", "", "Template directory within the repository")
	newCmd.Flags().StringArrayVar(&newParams, "param", nil, "Parameter override as name=value (repeatable)")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "Overwrite the target directory if it exists")
	newCmd.Flags().BoolVarP(&newAppend, "append", "a", false, "Add files to an existing target, never overwriting")
	newCmd.Flags().BoolVar(&newNoInput, "no-input", false, "Never prompt; missing parameters use their defaults")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupConsole(cfg)

	mode, err := mergeMode(cfg)
	if err != nil {
		return err
	}

	overrides, err := parseOverrides(newParams)
	if err != nil {
		return err
	}

	target := newTarget
	if target == "" && len(args) == 2 {
		target = args[1]
	}

	source := provider.New(cfg.CacheDir)
	templateDir, err := source.Resolve(cmd.Context(), args[0], newRef, newPath)
	if err != nil {
		return err
	}

	var prompter params.Prompter
	if !newNoInput && prompt.Interactive() {
		prompter = prompt.NewTerminal()
	}

	result, err := scaffold.Run(cmd.Context(), scaffold.Options{
		TemplateDir:    templateDir,
		TargetDir:      target,
		ProjectName:    newName,
		Overrides:      overrides,
		Mode:           mode,
		Prompter:       prompter,
		PromptAttempts: cfg.PromptAttempts,
		OnProgress:     printProgress,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Project generated at %s (%d files)",
		result.ProjectDir, len(result.Files))
	printNotes(result.Notes)
	return nil
}

func mergeMode(cfg *config.Config) (types.MergeMode, error) {
	if newForce && newAppend {
		return "", errors.New(errors.ErrInvalidInput,
			"--force and --append are mutually exclusive")
	}
	switch {
	case newForce:
		return types.MergeForce, nil
	case newAppend:
		return types.MergeAppend, nil
	default:
		return types.MergeMode(cfg.DefaultMode), nil
	}
}

func parseOverrides(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"invalid --param %q, expected name=value", pair)
		}
		overrides[name] = value
	}
	return overrides, nil
}

func printProgress(file types.MaterializedFile) {
	switch file.Outcome {
	case types.OutcomeCreated:
		pterm.Success.Printfln("create    %s", file.Path)
	case types.OutcomeOverwritten:
		pterm.Warning.Printfln("overwrite %s", file.Path)
	case types.OutcomeSkipped:
		pterm.Info.Printfln("skip      %s", file.Path)
	}
}
