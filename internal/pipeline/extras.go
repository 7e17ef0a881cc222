package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/prompts"
	"github.com/sant0-9/alibi/internal/speech"
)

type EmergencyRequest struct {
	Relation catalog.Relation
	Type     catalog.EmergencyType
	Language catalog.Language
}

// EmergencyMessage is a fake incoming call plus its text message.
type EmergencyMessage struct {
	CallerLabel  string
	SMSText      string
	Body         string
	Audio        *speech.Audio
	Degradations []Degradation
}

func (o *Orchestrator) Emergency(ctx context.Context, req EmergencyRequest) (*EmergencyMessage, error) {
	o.progress(StageGenerating, 0, 2, fmt.Sprintf("Calling as %s...", req.Relation))
	text, err := o.ask(ctx, prompts.Emergency(req.Relation, req.Type), 60, 0.7)
	if err != nil {
		return nil, fmt.Errorf("generating emergency message: %w", err)
	}
	text = strings.Trim(text, "\"")

	msg := &EmergencyMessage{
		CallerLabel: "📞 Incoming Call: " + string(req.Relation),
		SMSText:     "📬 " + text,
		Body:        text,
	}

	o.progress(StageSpeaking, 1, 2, "Recording voicemail...")
	msg.Audio = o.speak(ctx, text, req.Language, &msg.Degradations)

	o.progress(StageDone, 2, 2, "Done")
	o.log.Info("emergency simulated", "relation", string(req.Relation), "type", string(req.Type))
	return msg, nil
}

type ApologyRequest struct {
	Tone     catalog.Tone
	Context  catalog.ApologyContext
	Language catalog.Language
}

type ApologyResult struct {
	Tone         catalog.Tone
	Context      catalog.ApologyContext
	Text         string
	Audio        *speech.Audio
	Degradations []Degradation
}

func (o *Orchestrator) Apology(ctx context.Context, req ApologyRequest) (*ApologyResult, error) {
	o.progress(StageGenerating, 0, 2, "Writing your apology...")
	text, err := o.ask(ctx, prompts.Apology(req.Tone, req.Context), 200, 0.7)
	if err != nil {
		return nil, fmt.Errorf("generating apology: %w", err)
	}

	res := &ApologyResult{Tone: req.Tone, Context: req.Context, Text: text}

	o.progress(StageSpeaking, 1, 2, "Recording audio...")
	res.Audio = o.speak(ctx, text, req.Language, &res.Degradations)

	o.progress(StageDone, 2, 2, "Done")
	o.log.Info("apology generated", "tone", string(req.Tone), "context", string(req.Context))
	return res, nil
}
