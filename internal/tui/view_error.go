package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/imagegen"
	"github.com/sant0-9/alibi/internal/llm"
	"github.com/sant0-9/alibi/internal/pipeline"
)

func (a *App) renderError() string {
	var b strings.Builder

	// Error icon and title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Error message
	errMsg := "Unknown error"
	if a.state.lastErr != nil {
		errMsg = a.state.lastErr.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if suggestions := errorSuggestions(a.state.lastErr); len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	status := styleStatusBar.Render("[Enter/Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// errorSuggestions maps an error kind to what the user can do about it.
func errorSuggestions(err error) []string {
	if err == nil {
		return nil
	}

	var missing *config.MissingKeyError
	var apiErr *llm.APIError
	var status *imagegen.StatusError
	var transport *imagegen.TransportError

	switch {
	case errors.As(err, &missing):
		return []string{missing.Hint(), "Keys live in ~/.config/alibi/config.yaml or a .env file"}
	case errors.Is(err, pipeline.ErrValidation):
		return []string{"Fill in both your name and the reason on the Proof panel"}
	case errors.Is(err, imagegen.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return []string{"The service took too long", "Wait a moment and try again"}
	case errors.As(err, &apiErr):
		return statusSuggestions(apiErr.Status)
	case errors.As(err, &status):
		return statusSuggestions(status.Code)
	case errors.As(err, &transport):
		return []string{"Check your internet connection"}
	case errors.Is(err, imagegen.ErrNoArtifacts), errors.Is(err, imagegen.ErrGeneration):
		return []string{"The image service returned nothing usable", "Try a different reason or proof type"}
	}

	if strings.Contains(strings.ToLower(err.Error()), "connect") {
		return []string{"Check your internet connection", "Or set chat.provider to ollama to run offline"}
	}
	return nil
}

func statusSuggestions(code int) []string {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return []string{"Your API key was rejected", "Check it in ~/.config/alibi/config.yaml"}
	case http.StatusPaymentRequired:
		return []string{"Your account is out of credits"}
	case http.StatusTooManyRequests:
		return []string{"You've hit the API rate limit", "Wait a moment and try again"}
	default:
		if code >= 500 {
			return []string{"The service is having trouble", "Try again shortly"}
		}
		return nil
	}
}
