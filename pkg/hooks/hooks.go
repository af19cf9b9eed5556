// Package hooks runs a template's declared lifecycle commands. Commands
// run sequentially in declaration order, in the generated project root,
// with output streamed through; the first non-zero exit aborts the phase.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/skaff/pkg/errors"
	"github.com/arthur-debert/skaff/pkg/logging"
	"github.com/arthur-debert/skaff/pkg/types"
	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

// Executor runs hook commands for one phase at a time.
type Executor struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
	// Env is overlaid on the inherited environment for every command.
	Env map[string]string
}

// NewExecutor builds an Executor streaming hook output to stdout/stderr.
// Nil writers default to the process's own streams.
func NewExecutor(stdout, stderr io.Writer) *Executor {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Executor{
		logger: logging.GetLogger("hooks"),
		stdout: stdout,
		stderr: stderr,
	}
}

// RunPhase executes the phase's commands with dir as working directory.
// It returns a record per command that ran, including the failing one.
func (e *Executor) RunPhase(ctx context.Context, phase types.HookPhase, commands []string, dir string) ([]types.HookInvocation, error) {
	var invocations []types.HookInvocation

	for _, command := range commands {
		e.logger.Info().
			Str("phase", string(phase)).
			Str("command", command).
			Str("dir", dir).
			Msg("Running hook")

		exitCode, err := e.runCommand(ctx, command, dir)
		invocations = append(invocations, types.HookInvocation{
			Phase:    phase,
			Command:  command,
			Dir:      dir,
			ExitCode: exitCode,
		})
		if err != nil {
			return invocations, err
		}
		if exitCode != 0 {
			return invocations, errors.Newf(errors.ErrHookFailed,
				"%s hook %q exited with code %d", phase, command, exitCode).
				WithDetail("phase", string(phase)).
				WithDetail("command", command).
				WithDetail("exitCode", exitCode)
		}
	}
	return invocations, nil
}

func (e *Executor) runCommand(ctx context.Context, command, dir string) (int, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrHookSplit, "cannot split hook command %q", command)
	}
	if len(argv) == 0 {
		return -1, errors.Newf(errors.ErrHookSplit, "hook command %q is empty", command)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Stdin = os.Stdin
	cmd.Env = os.Environ()
	for key, value := range e.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.Wrapf(err, errors.ErrHookFailed, "cannot run hook %q", command).
			WithDetail("command", command)
	}
	return 0, nil
}
