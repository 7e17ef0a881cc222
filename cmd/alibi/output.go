package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/pipeline"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	styleStep    = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	styleLabel   = lipgloss.NewStyle().Bold(true)
)

func colorize(style lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return style.Render(text)
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(styleSuccess, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(styleError, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(styleWarning, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(styleLabel, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(styleStep, "→ "+msg))
}

func printDegradations(ds []pipeline.Degradation) {
	for _, d := range ds {
		printWarning("%s", d)
	}
}

// progressPrinter shows pipeline stages on stderr.
func progressPrinter(p pipeline.Progress) {
	if p.Stage == pipeline.StageDone {
		return
	}
	printStep("%s", p.Message)
}

// hints turns known error kinds into next steps for the user.
func hints(err error) []string {
	var missing *config.MissingKeyError
	switch {
	case errors.As(err, &missing):
		return []string{missing.Hint()}
	case errors.Is(err, pipeline.ErrValidation):
		return []string{"pass both --name and --reason"}
	}
	return nil
}
