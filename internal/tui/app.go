package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/llm"
	"github.com/sant0-9/alibi/internal/pipeline"
	"github.com/sant0-9/alibi/internal/session"
	"github.com/sant0-9/alibi/internal/writer"
)

type view int

const (
	viewSetup view = iota
	viewPanels
	viewProcessing
	viewHelp
	viewError
)

// Options wires the app to its backends. A nil Orchestrator is built from
// Config.
type Options struct {
	Config       *config.Config
	Session      *session.Session
	Writer       *writer.Writer
	Orchestrator *pipeline.Orchestrator
	Logger       *slog.Logger
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
}

func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	s := newState(cfg)
	s.log = log
	s.sess = opts.Session
	if s.sess == nil {
		s.sess, _ = session.New(nil)
	}
	s.writer = opts.Writer
	if s.writer == nil {
		s.writer = writer.NewWriter(cfg.OutputDir)
	}

	s.orch = opts.Orchestrator
	if s.orch == nil {
		s.orch, s.providerError = buildOrchestrator(cfg, log)
	}

	// First run without any chat key goes through setup.
	s.needsSetup = !config.Exists() && !cfg.ChatReady()

	a := &App{
		view:  viewPanels,
		state: s,
	}
	if s.needsSetup {
		a.view = viewSetup
		s.chatKeyInput.Focus()
	}
	return a
}

func buildOrchestrator(cfg *config.Config, log *slog.Logger) (*pipeline.Orchestrator, error) {
	deps, err := pipeline.DepsFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return pipeline.New(deps), nil
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}
	return tea.Batch(tea.WindowSize(), a.testProvider())
}

// testProvider pings the chat backend so the status pill can show whether
// it is reachable.
func (a *App) testProvider() tea.Cmd {
	cfg := a.state.config
	if !cfg.ChatReady() {
		return nil
	}
	return func() tea.Msg {
		provider, err := llm.NewProvider(&cfg.Chat)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{}
	}
}

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{}
type providerErrorMsg struct{ error }

type progressMsg struct {
	progress pipeline.Progress
	ch       <-chan pipeline.Progress
}

type excuseDoneMsg struct {
	result *pipeline.ExcuseResult
	err    error
}

type apologyDoneMsg struct {
	result *pipeline.ApologyResult
	err    error
}

type emergencyDoneMsg struct {
	result *pipeline.EmergencyMessage
	err    error
}

type proofDoneMsg struct {
	result *pipeline.ProofImage
	err    error
}

// noticeMsg reports the outcome of a quick side action such as a download.
type noticeMsg struct {
	text string
	err  error
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case spinner.TickMsg:
		if a.state.processing {
			var cmd tea.Cmd
			a.state.spinner, cmd = a.state.spinner.Update(msg)
			return a, cmd
		}

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.orch, a.state.providerError = buildOrchestrator(a.state.config, a.state.log)
		a.view = viewPanels
		a.state.notice = "Keys saved"
		return a, a.testProvider()

	case setupErrorMsg:
		a.showError(msg.error)
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerError = msg.error
		a.state.log.Warn("chat provider unreachable", "error", msg.error)
		return a, nil

	case progressMsg:
		p := msg.progress
		a.state.progress = &p
		return a, waitForProgress(msg.ch)

	case excuseDoneMsg:
		if a.finish(msg.err) {
			a.state.excuse = msg.result
			a.state.warnings = degradationLines(msg.result.Degradations)
			if msg.result.Saved {
				a.state.notice = "⭐ Auto-saved to favorites"
			}
		}
		return a, nil

	case apologyDoneMsg:
		if a.finish(msg.err) {
			a.state.apology = msg.result
			a.state.warnings = degradationLines(msg.result.Degradations)
		}
		return a, nil

	case emergencyDoneMsg:
		if a.finish(msg.err) {
			a.state.emergency = msg.result
			a.state.warnings = degradationLines(msg.result.Degradations)
		}
		return a, nil

	case proofDoneMsg:
		if a.finish(msg.err) {
			a.state.proof = msg.result
			a.state.notice = "Proof ready: [d] to download"
		}
		return a, nil

	case noticeMsg:
		if msg.err != nil {
			a.state.notice = ""
			a.state.warnings = []string{msg.err.Error()}
			a.state.log.Warn("action failed", "error", msg.err)
		} else {
			a.state.notice = msg.text
			a.state.warnings = nil
		}
		return a, nil
	}

	// Update text inputs based on view
	if a.view == viewSetup {
		var cmd tea.Cmd
		if a.state.setupStep == 0 {
			a.state.chatKeyInput, cmd = a.state.chatKeyInput.Update(msg)
		} else {
			a.state.imageKeyInput, cmd = a.state.imageKeyInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// finish leaves the processing view. It reports whether the action
// succeeded; failures switch to the error view.
func (a *App) finish(err error) bool {
	a.state.processing = false
	a.state.progress = nil
	if err != nil {
		a.state.log.Error("action failed", "action", a.state.action, "error", err)
		a.showError(err)
		return false
	}
	a.state.notice = ""
	a.view = viewPanels
	return true
}

func (a *App) showError(err error) {
	a.state.lastErr = err
	a.view = viewError
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewProcessing:
		// Actions cannot be interrupted.
		return nil
	case viewHelp, viewError:
		if key.Matches(msg, keys.Quit) || key.Matches(msg, keys.Enter) {
			a.view = viewPanels
		}
		return nil
	}

	return a.handlePanelKey(msg)
}

func (a *App) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		if a.state.setupStep == 1 {
			a.state.setupStep = 0
			a.state.imageKeyInput.Blur()
			a.state.chatKeyInput.Focus()
			return textinput.Blink
		}
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Enter):
		if a.state.setupStep == 0 {
			a.state.setupStep = 1
			a.state.chatKeyInput.Blur()
			a.state.imageKeyInput.Focus()
			return textinput.Blink
		}
		return a.finishSetup()
	}

	var cmd tea.Cmd
	if a.state.setupStep == 0 {
		a.state.chatKeyInput, cmd = a.state.chatKeyInput.Update(msg)
	} else {
		a.state.imageKeyInput, cmd = a.state.imageKeyInput.Update(msg)
	}
	return cmd
}

// finishSetup stores the entered keys in the running config and writes a
// fresh config file holding only what the wizard collected.
func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	if k := a.state.chatKeyInput.Value(); k != "" {
		cfg.Chat.APIKey = k
	}
	if k := a.state.imageKeyInput.Value(); k != "" {
		cfg.Image.APIKey = k
	}

	file := config.DefaultConfig()
	file.Chat.Provider = cfg.Chat.Provider
	file.Chat.Model = cfg.Chat.Model
	file.Chat.APIKey = a.state.chatKeyInput.Value()
	file.Image.APIKey = a.state.imageKeyInput.Value()

	return func() tea.Msg {
		if err := file.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewProcessing:
		return a.renderProcessing()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	default:
		return a.renderPanels()
	}
}
