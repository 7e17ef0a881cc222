package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/alibi/internal/catalog"
)

func (a *App) renderPanels() string {
	var b strings.Builder
	width := min(76, max(a.width-4, 20))

	// Header
	title := styleLogo.Render("ALIBI") + styleSubtitle.Render("  Intelligent Excuse Generator")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.renderPills()))
	b.WriteString("\n\n")

	// Tabs
	var tabs []string
	for p := panel(0); p < panelCount; p++ {
		if p == a.state.panel {
			tabs = append(tabs, styleTabActive.Render(p.String()))
		} else {
			tabs = append(tabs, styleTab.Render(p.String()))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, tabs...)))
	b.WriteString("\n")

	var body, result, help string
	switch a.state.panel {
	case panelExcuse:
		body, result = a.renderExcusePanel()
		help = "[Enter] Excuse  [p] Apology  [f] Fav  [d] Save  [a] Audio  [e] Email  [c] Copy  [w] Share"
	case panelProof:
		body, result = a.renderProofPanel()
		help = "[Enter] Generate  [d] Download PNG"
	case panelEmergency:
		body, result = a.renderEmergencyPanel()
		help = "[Enter] Simulate  [a] Audio  [c] Copy"
	case panelHistory:
		body = a.renderHistoryPanel(width - 4)
		help = "[f] Favorite  [c] Copy  [h] Download  [x] Clear history  [X] Clear favorites"
	}

	box := styleBox.Copy().Width(width).BorderForeground(colorPrimary).Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n")

	if result != "" {
		resBox := styleBox.Copy().Width(width).BorderForeground(colorSecondary).Render(result)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resBox))
		b.WriteString("\n")
	}

	for _, w := range a.state.warnings {
		line := styleWarning.Render("⚠ " + truncate(w, width))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if a.state.notice != "" {
		line := styleNotice.Render(truncate(a.state.notice, width))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Status bar
	status := styleStatusBar.Render(help + "\n[Tab] Panels  [↑↓] Field  [←→] Value  [?] Help  [Esc] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return b.String()
}

func (a *App) renderPills() string {
	s := a.state

	chat := "🔴 Chat key missing"
	switch {
	case s.providerReady:
		chat = "🟢 Chat connected"
	case s.providerError != nil:
		chat = "🟡 Chat unreachable"
	case s.config.ChatReady():
		chat = "⚪ Chat key set"
	}

	image := "🔴 Image key missing"
	if s.config.Image.APIKey != "" {
		image = "🟢 Image key set"
	}

	pills := []string{
		stylePill.Render(fmt.Sprintf("✨ %d generated", s.sess.Generated())),
		stylePill.Render(fmt.Sprintf("⭐ %d favorites", len(s.sess.Favorites()))),
		stylePill.Render(chat),
		stylePill.Render(image),
	}
	return strings.Join(pills, " ")
}

// renderField draws one labelled row, highlighted when focused.
func renderField(focused bool, label, value string) string {
	cursor := "  "
	if focused {
		cursor = "> "
		return styleFocused.Render(fmt.Sprintf("%s%-14s ‹ %s ›", cursor, label, value))
	}
	return styleSubtitle.Render(fmt.Sprintf("%s%-14s   %s", cursor, label, value))
}

func (a *App) renderExcusePanel() (string, string) {
	s := a.state
	focus := s.focus[panelExcuse]

	autoSave := "off"
	if s.autoSave {
		autoSave = "on"
	}

	lines := []string{
		styleSubtitle.Render("💡 Smart suggestion: " + catalog.SmartSuggestion(time.Now())),
		"",
	}
	for field := 0; field < excuseFieldCount; field++ {
		if field == fieldTone {
			lines = append(lines, "")
		}
		if field == fieldAutoSave {
			lines = append(lines, renderField(focus == field, "Auto-save", autoSave))
			continue
		}
		sel := s.excuseSelector(field)
		lines = append(lines, renderField(focus == field, sel.label, sel.value()))
	}

	var result []string
	if s.excuse != nil {
		result = append(result,
			styleFocused.Render("Your excuse"),
			s.excuse.Translated,
			"",
			"Believability: "+s.excuse.Believability.Badge(),
		)
		if s.excuse.Audio != nil {
			result = append(result, styleSubtitle.Render("🔊 Audio ready: [a] to save"))
		}
	}
	if s.apology != nil {
		if len(result) > 0 {
			result = append(result, "")
		}
		result = append(result,
			styleFocused.Render(fmt.Sprintf("🙏 %s apology (%s)", s.apology.Tone, s.apology.Context)),
			s.apology.Text,
		)
	}

	return strings.Join(lines, "\n"), strings.Join(result, "\n")
}

func (a *App) renderProofPanel() (string, string) {
	s := a.state
	focus := s.focus[panelProof]

	lines := []string{
		renderField(focus == fieldProofType, s.proofType.label, s.proofType.value()),
		"",
		renderInput(focus == fieldName, "Name", s.nameInput.View()),
		renderInput(focus == fieldReason, "Reason", s.reasonInput.View()),
	}

	var result string
	if p := s.proof; p != nil {
		bounds := p.Image.Bounds()
		result = strings.Join([]string{
			styleFocused.Render(fmt.Sprintf("🖼️ %s", p.Type)),
			fmt.Sprintf("%dx%d PNG, %d KB", bounds.Dx(), bounds.Dy(), len(p.PNG)/1024),
		}, "\n")
	}
	return strings.Join(lines, "\n"), result
}

func renderInput(focused bool, label, view string) string {
	cursor := "  "
	style := styleSubtitle
	if focused {
		cursor = "> "
		style = styleFocused
	}
	return style.Render(fmt.Sprintf("%s%-14s ", cursor, label)) + view
}

func (a *App) renderEmergencyPanel() (string, string) {
	s := a.state
	focus := s.focus[panelEmergency]

	lines := []string{
		renderField(focus == fieldRelation, s.relation.label, s.relation.value()),
		renderField(focus == fieldEmergencyType, s.emergencyType.label, s.emergencyType.value()),
	}

	var result string
	if m := s.emergency; m != nil {
		result = strings.Join([]string{
			lipgloss.NewStyle().Foreground(colorError).Bold(true).Render(m.CallerLabel),
			m.SMSText,
		}, "\n")
	}
	return strings.Join(lines, "\n"), result
}

func (a *App) renderHistoryPanel(width int) string {
	s := a.state
	var lines []string

	lines = append(lines, styleFocused.Render("📜 History"))
	history := s.sess.History()
	if len(history) == 0 {
		lines = append(lines, styleSubtitle.Render("  No excuses yet."))
	}
	if s.historyCursor >= len(history) {
		s.historyCursor = max(len(history)-1, 0)
	}
	for i, h := range history {
		line := fmt.Sprintf("%d. %s", i+1, truncate(h, width-6))
		if i == s.historyCursor {
			lines = append(lines, styleFocused.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	lines = append(lines, "", styleFocused.Render("⭐ Favorites"))
	favorites := s.sess.Favorites()
	if len(favorites) == 0 {
		lines = append(lines, styleSubtitle.Render("  Turn on auto-save or press [f] on any excuse."))
	}
	for i := len(favorites) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("  %d. %s", len(favorites)-i, truncate(favorites[i], width-6)))
	}

	if len(favorites) > 1 {
		lines = append(lines, "", styleFocused.Render("🏆 Most Saved"))
		for i, fc := range s.sess.MostSaved(3) {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, truncate(fc.Text, 55)))
		}
	}

	return strings.Join(lines, "\n")
}
