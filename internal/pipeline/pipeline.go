package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/imagegen"
	"github.com/sant0-9/alibi/internal/llm"
	"github.com/sant0-9/alibi/internal/speech"
)

// Stage represents a pipeline stage
type Stage int

const (
	StageGenerating Stage = iota
	StageTranslating
	StageRecording
	StageRanking
	StageSaving
	StageSpeaking
	StageRendering
	StageEncoding
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageGenerating:
		return "Generating"
	case StageTranslating:
		return "Translating"
	case StageRecording:
		return "Recording"
	case StageRanking:
		return "Ranking"
	case StageSaving:
		return "Saving"
	case StageSpeaking:
		return "Speaking"
	case StageRendering:
		return "Rendering"
	case StageEncoding:
		return "Encoding"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents pipeline progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	Message     string
}

// ErrValidation is returned before any remote call when input is unusable.
var ErrValidation = errors.New("invalid input")

// Degradation records a step that failed without failing the action. The
// result carries on with a fallback value.
type Degradation struct {
	Stage Stage
	Err   error
}

func (d Degradation) String() string {
	return fmt.Sprintf("%s skipped: %v", d.Stage, d.Err)
}

type Translator interface {
	Translate(ctx context.Context, text string, lang catalog.Language) (string, error)
}

type Speaker interface {
	Synthesize(ctx context.Context, text string, lang catalog.Language) (*speech.Audio, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, req imagegen.Request) (image.Image, error)
}

// ImageFactory builds the image client on first use, so a missing image
// key only matters to the proof action.
type ImageFactory func() (ImageGenerator, error)

// Deps are the adapters an Orchestrator drives. A nil Translator or
// Speaker turns that step off.
type Deps struct {
	Chat       llm.Provider
	Translator Translator
	Speaker    Speaker
	Images     ImageFactory
	Logger     *slog.Logger
}

// Orchestrator runs the excuse, emergency, apology and proof actions.
// Steps within one action run strictly in sequence.
type Orchestrator struct {
	deps       Deps
	log        *slog.Logger
	onProgress func(Progress)
}

func New(deps Deps) *Orchestrator {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{deps: deps, log: log}
}

// SetProgressCallback sets the progress callback
func (o *Orchestrator) SetProgressCallback(fn func(Progress)) {
	o.onProgress = fn
}

func (o *Orchestrator) progress(stage Stage, index, total int, msg string) {
	o.log.Debug("pipeline stage", "stage", stage.String(), "index", index, "total", total)
	if o.onProgress != nil {
		o.onProgress(Progress{
			Stage:       stage,
			StageIndex:  index,
			TotalStages: total,
			Message:     msg,
		})
	}
}

func (o *Orchestrator) degrade(list *[]Degradation, stage Stage, err error) {
	o.log.Warn("step degraded", "stage", stage.String(), "error", err)
	*list = append(*list, Degradation{Stage: stage, Err: err})
}

// speak synthesizes text when a Speaker is configured. Failures are
// recorded, not returned.
func (o *Orchestrator) speak(ctx context.Context, text string, lang catalog.Language, degraded *[]Degradation) *speech.Audio {
	if o.deps.Speaker == nil {
		return nil
	}
	audio, err := o.deps.Speaker.Synthesize(ctx, text, lang)
	if err != nil {
		o.degrade(degraded, StageSpeaking, err)
		return nil
	}
	return audio
}

func (o *Orchestrator) ask(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if o.deps.Chat == nil {
		return "", errors.New("no chat provider configured")
	}
	return llm.Ask(ctx, o.deps.Chat, prompt, maxTokens, temperature)
}
