package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/skaff/pkg/config"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

var notesStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

func setupConsole(cfg *config.Config) {
	if !cfg.Color || termenv.EnvNoColor() || !stdoutIsTerminal() {
		pterm.DisableColor()
	}
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// printNotes shows the template's closing notes. On a terminal they render
// as markdown in a box; otherwise they print verbatim.
func printNotes(notes string) {
	if notes == "" {
		return
	}
	if stdoutIsTerminal() {
		if rendered, err := renderMarkdown(notes); err == nil {
			fmt.Println(notesStyle.Render(rendered))
			return
		}
	}
	fmt.Println()
	fmt.Println(notes)
}

func renderMarkdown(notes string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(notes)
	if err != nil {
		return "", err
	}
	return out, nil
}
