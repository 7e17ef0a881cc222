package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/pipeline"
	"github.com/sant0-9/alibi/internal/session"
	"github.com/sant0-9/alibi/internal/writer"
)

type panel int

const (
	panelExcuse panel = iota
	panelProof
	panelEmergency
	panelHistory
	panelCount
)

func (p panel) String() string {
	switch p {
	case panelExcuse:
		return "🎯 Excuse"
	case panelProof:
		return "🖼️ Proof"
	case panelEmergency:
		return "🚨 Emergency"
	case panelHistory:
		return "📚 History"
	default:
		return ""
	}
}

// Field positions on the excuse panel.
const (
	fieldCategory = iota
	fieldScenario
	fieldUrgency
	fieldLanguage
	fieldAutoSave
	fieldTone
	fieldApologyTo
	excuseFieldCount
)

// Field positions on the proof panel.
const (
	fieldProofType = iota
	fieldName
	fieldReason
	proofFieldCount
)

const (
	fieldRelation = iota
	fieldEmergencyType
	emergencyFieldCount
)

// selector is a left/right cycled choice.
type selector struct {
	label   string
	options []string
	index   int
}

func newSelector[T ~string](label string, values []T) selector {
	opts := make([]string, len(values))
	for i, v := range values {
		opts[i] = string(v)
	}
	return selector{label: label, options: opts}
}

func (s *selector) next() {
	if len(s.options) > 0 {
		s.index = (s.index + 1) % len(s.options)
	}
}

func (s *selector) prev() {
	if len(s.options) > 0 {
		s.index = (s.index - 1 + len(s.options)) % len(s.options)
	}
}

func (s *selector) value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

type state struct {
	// Config
	config     *config.Config
	needsSetup bool
	log        *slog.Logger

	// Setup wizard state
	setupStep     int
	chatKeyInput  textinput.Model
	imageKeyInput textinput.Model

	// Backends
	orch   *pipeline.Orchestrator
	sess   *session.Session
	writer *writer.Writer

	// Navigation
	panel panel
	focus [panelCount]int

	// Excuse panel
	category  selector
	scenario  selector
	urgency   selector
	language  selector
	autoSave  bool
	tone      selector
	apologyTo selector

	// Proof panel
	proofType   selector
	nameInput   textinput.Model
	reasonInput textinput.Model

	// Emergency panel
	relation      selector
	emergencyType selector

	// History panel
	historyCursor int

	// Results
	excuse    *pipeline.ExcuseResult
	apology   *pipeline.ApologyResult
	emergency *pipeline.EmergencyMessage
	proof     *pipeline.ProofImage

	// Processing
	processing bool
	action     string
	stages     []pipeline.Stage
	progress   *pipeline.Progress
	spinner    spinner.Model

	// Provider
	providerReady bool
	providerError error

	// Feedback
	lastErr  error
	notice   string
	warnings []string
}

func newState(cfg *config.Config) *state {
	chatKey := textinput.New()
	chatKey.Placeholder = "Paste your OpenRouter API key here..."
	chatKey.EchoMode = textinput.EchoPassword
	chatKey.CharLimit = 200
	chatKey.Width = 50

	imageKey := textinput.New()
	imageKey.Placeholder = "Paste your Stability AI key (optional)..."
	imageKey.EchoMode = textinput.EchoPassword
	imageKey.CharLimit = 200
	imageKey.Width = 50

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 80
	name.Width = 40

	reason := textinput.New()
	reason.Placeholder = "Reason, e.g. viral fever"
	reason.CharLimit = 160
	reason.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleFocused

	s := &state{
		config:        cfg,
		chatKeyInput:  chatKey,
		imageKeyInput: imageKey,

		category:  newSelector("Category", catalog.Categories),
		scenario:  newSelector("Scenario", catalog.Scenarios),
		urgency:   newSelector("Urgency", catalog.Urgencies),
		language:  newSelector("Language", catalog.Languages),
		autoSave:  cfg.AutoSave,
		tone:      newSelector("Apology tone", catalog.Tones),
		apologyTo: newSelector("Apology to", catalog.ApologyContexts),

		proofType:   newSelector("Proof type", catalog.ProofTypes),
		nameInput:   name,
		reasonInput: reason,

		relation:      newSelector("Caller", catalog.Relations),
		emergencyType: newSelector("Emergency", catalog.EmergencyTypes),

		spinner: sp,
	}

	if lang, err := catalog.ParseLanguage(cfg.Language); err == nil {
		for i, opt := range s.language.options {
			if opt == string(lang) {
				s.language.index = i
			}
		}
	}
	return s
}

// excuseSelector maps an excuse panel field to its selector. The
// auto-save toggle has none.
func (s *state) excuseSelector(field int) *selector {
	switch field {
	case fieldCategory:
		return &s.category
	case fieldScenario:
		return &s.scenario
	case fieldUrgency:
		return &s.urgency
	case fieldLanguage:
		return &s.language
	case fieldTone:
		return &s.tone
	case fieldApologyTo:
		return &s.apologyTo
	default:
		return nil
	}
}

func (s *state) selectedLanguage() catalog.Language {
	return catalog.Language(s.language.value())
}

func fieldCount(p panel) int {
	switch p {
	case panelExcuse:
		return excuseFieldCount
	case panelProof:
		return proofFieldCount
	case panelEmergency:
		return emergencyFieldCount
	default:
		return 1
	}
}
