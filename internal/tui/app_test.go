package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/imagegen"
	"github.com/sant0-9/alibi/internal/llm"
	"github.com/sant0-9/alibi/internal/pipeline"
	"github.com/sant0-9/alibi/internal/session"
	"github.com/sant0-9/alibi/internal/writer"
)

type stubChat struct{ replies []string }

func (s *stubChat) Name() string               { return "stub" }
func (s *stubChat) Ping(context.Context) error { return nil }

func (s *stubChat) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return &llm.CompletionResponse{Content: reply}, nil
}

func newTestApp(t *testing.T, replies ...string) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Chat.APIKey = "test"

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess, err := session.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	orch := pipeline.New(pipeline.Deps{
		Chat: &stubChat{replies: replies},
		Images: func() (pipeline.ImageGenerator, error) {
			return nil, errors.New("unused")
		},
		Logger: log,
	})

	a := NewApp(Options{
		Config:       cfg,
		Session:      sess,
		Writer:       writer.NewWriter(t.TempDir()),
		Orchestrator: orch,
		Logger:       log,
	})
	a.width, a.height = 100, 40
	return a
}

func press(a *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

// runAction executes the action command started by a key press and feeds
// its result back into the app.
func runAction(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("no command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatalf("expected a batch of commands")
	}
	a.Update(batch[0]())
}

func TestSelectorWraps(t *testing.T) {
	s := selector{options: []string{"a", "b", "c"}}
	s.prev()
	if s.value() != "c" {
		t.Errorf("prev from first = %q", s.value())
	}
	s.next()
	if s.value() != "a" {
		t.Errorf("next from last = %q", s.value())
	}
	var empty selector
	empty.next()
	if empty.value() != "" {
		t.Error("empty selector has a value")
	}
}

func TestPanelNavigation(t *testing.T) {
	a := newTestApp(t, "x")
	if a.view != viewPanels {
		t.Fatalf("view = %v, want panels", a.view)
	}

	press(a, "shift+tab")
	if a.state.panel != panelHistory {
		t.Errorf("panel = %v, want history", a.state.panel)
	}
	press(a, "tab")
	press(a, "down")
	press(a, "right")
	if a.state.scenario.value() != "Missed a Deadline" {
		t.Errorf("scenario = %q", a.state.scenario.value())
	}

	press(a, "down")
	press(a, "down")
	press(a, "down")
	press(a, "right")
	if !a.state.autoSave {
		t.Error("auto-save not toggled")
	}

	press(a, "?")
	if a.view != viewHelp {
		t.Errorf("view = %v, want help", a.view)
	}
	press(a, "esc")
	if a.view != viewPanels {
		t.Errorf("view = %v, want panels", a.view)
	}
}

func TestProofInputsCaptureKeys(t *testing.T) {
	a := newTestApp(t, "x")
	press(a, "tab")
	press(a, "down")

	for _, k := range []string{"f", "?", "x"} {
		press(a, k)
	}
	if got := a.state.nameInput.Value(); got != "f?x" {
		t.Errorf("name = %q", got)
	}
	if a.view != viewPanels {
		t.Errorf("view = %v", a.view)
	}

	press(a, "esc")
	if a.state.focus[panelProof] != fieldProofType || a.quitting {
		t.Errorf("esc in input: focus=%d quitting=%v", a.state.focus[panelProof], a.quitting)
	}
}

func TestExcuseActionUpdatesState(t *testing.T) {
	a := newTestApp(t, "My laptop crashed overnight.", "Highly Believable")

	runAction(t, a, press(a, "enter"))

	if a.view != viewPanels {
		t.Fatalf("view = %v, err = %v", a.view, a.state.lastErr)
	}
	if a.state.excuse == nil || a.state.excuse.Translated != "My laptop crashed overnight." {
		t.Fatalf("excuse = %+v", a.state.excuse)
	}
	if a.state.sess.Generated() != 1 {
		t.Errorf("Generated() = %d", a.state.sess.Generated())
	}
	if !strings.Contains(a.View(), "Highly Believable") {
		t.Error("view does not show the believability badge")
	}

	// Save it from the history panel.
	press(a, "shift+tab")
	msg := press(a, "f")()
	a.Update(msg)
	if favs := a.state.sess.Favorites(); len(favs) != 1 {
		t.Errorf("Favorites() = %q", favs)
	}
	if !strings.Contains(a.state.notice, "Saved") {
		t.Errorf("notice = %q", a.state.notice)
	}
}

func TestProofValidationShowsError(t *testing.T) {
	a := newTestApp(t, "x")
	press(a, "tab")

	runAction(t, a, press(a, "enter"))

	if a.view != viewError {
		t.Fatalf("view = %v, want error", a.view)
	}
	if !errors.Is(a.state.lastErr, pipeline.ErrValidation) {
		t.Errorf("lastErr = %v", a.state.lastErr)
	}
	if !strings.Contains(a.View(), "Suggestions:") {
		t.Error("error view misses the suggestions box")
	}
}

func TestErrorSuggestions(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"missing key", config.MissingKey(config.ImageService), config.EnvImageKey},
		{"validation", pipeline.ErrValidation, "name"},
		{"timeout", imagegen.ErrTimeout, "too long"},
		{"unauthorized", &imagegen.StatusError{Code: 401}, "rejected"},
		{"rate limit", &llm.APIError{Status: 429}, "rate limit"},
		{"transport", &imagegen.TransportError{Err: errors.New("dial")}, "internet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(errorSuggestions(tt.err), "\n")
			if tt.want == "" {
				if got != "" {
					t.Errorf("suggestions = %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("suggestions = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetupShownWithoutKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a := NewApp(Options{Config: config.DefaultConfig()})
	if a.view != viewSetup {
		t.Fatalf("view = %v, want setup", a.view)
	}

	press(a, "enter")
	if a.state.setupStep != 1 {
		t.Errorf("setupStep = %d", a.state.setupStep)
	}
	press(a, "esc")
	if a.state.setupStep != 0 || a.quitting {
		t.Errorf("esc: step=%d quitting=%v", a.state.setupStep, a.quitting)
	}
}
