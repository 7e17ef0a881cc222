package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{keys.Tab, keys.ShiftTab, keys.Up, keys.Down, keys.Left, keys.Right, keys.Enter, keys.Help, keys.Quit}},
		{"Excuse panel", []key.Binding{keys.Apology, keys.Favorite, keys.Download, keys.Audio, keys.Email, keys.Copy, keys.Share}},
		{"Proof / Emergency", []key.Binding{keys.Download, keys.Audio, keys.Copy}},
		{"History panel", []key.Binding{keys.Favorite, keys.History, keys.ClearHist, keys.ClearFavs}},
	}

	for _, sec := range sections {
		var lines []string
		for _, kb := range sec.bindings {
			h := kb.Help()
			lines = append(lines, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
		}

		secTitle := styleSubtitle.Render(sec.name)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, secTitle))
		b.WriteString("\n")

		box := styleBox.Copy().
			Width(50).
			Render(strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
