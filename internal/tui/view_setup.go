package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/alibi/internal/config"
)

const logo = `
 █████╗ ██╗     ██╗██████╗ ██╗
██╔══██╗██║     ██║██╔══██╗██║
███████║██║     ██║██████╔╝██║
██╔══██║██║     ██║██╔══██╗██║
██║  ██║███████╗██║██████╔╝██║
╚═╝  ╚═╝╚══════╝╚═╝╚═════╝ ╚═╝
`

func (a *App) renderSetup() string {
	switch a.state.setupStep {
	case 0:
		provider := config.GetProvider(a.state.config.Chat.Provider)
		if provider == nil {
			provider = &config.Providers[0]
		}
		return a.renderKeyEntry(*provider, a.state.chatKeyInput, "[Enter] Continue  [Esc] Quit")
	default:
		return a.renderKeyEntry(config.ImageService, a.state.imageKeyInput, "[Enter] Save (empty skips)  [Esc] Back")
	}
}

func (a *App) renderKeyEntry(provider config.ProviderInfo, input textinput.Model, help string) string {
	var b strings.Builder

	// Header
	header := styleLogo.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n")
	sub := styleSubtitle.Render("Intelligent Excuse Generator")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, sub))
	b.WriteString("\n\n")

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Render(fmt.Sprintf("Step %d/2: enter your %s API key", a.state.setupStep+1, provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Signup link
	if provider.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", provider.SignupURL))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, link))
		b.WriteString("\n")
	}
	if provider.EnvKey != "" {
		env := styleSubtitle.Render(fmt.Sprintf("or set %s in your environment or .env", provider.EnvKey))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, env))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Input
	inputBox := styleBox.Copy().
		Width(60).
		BorderForeground(colorSecondary).
		Render(input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render(help)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
