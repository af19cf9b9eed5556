// Package prompt provides the interactive Prompter used when parameter
// values are collected from a terminal.
package prompt

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Terminal prompts through pterm's interactive printers. It satisfies
// params.Prompter.
type Terminal struct{}

// NewTerminal returns a terminal-backed prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Interactive reports whether stdin is attached to a terminal. Callers use
// it to decide between prompting and default-only resolution.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Input asks for a free-form line of text.
func (t *Terminal) Input(message, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		Show(message)
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(message string, defaultValue bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultValue).
		Show(message)
}

// Select asks for a single choice.
func (t *Terminal) Select(message string, options []string, defaultValue string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(defaultValue).
		Show(message)
}

// MultiSelect asks for a subset of options.
func (t *Terminal) MultiSelect(message string, options []string, defaults []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultOptions(defaults).
		Show(message)
}
