package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/prompts"
	"github.com/sant0-9/alibi/internal/session"
	"github.com/sant0-9/alibi/internal/speech"
)

type ExcuseRequest struct {
	Category catalog.Category
	Scenario catalog.Scenario
	Urgency  catalog.Urgency
	Language catalog.Language
	AutoSave bool
}

type ExcuseResult struct {
	Original      string
	Translated    string
	Believability catalog.Believability
	Audio         *speech.Audio
	Saved         bool
	Degradations  []Degradation
}

const excuseStages = 6

// Excuse generates, translates, records, ranks, optionally saves and voices
// one excuse. Only a chat failure on the first step is returned as an error;
// the session is untouched in that case.
func (o *Orchestrator) Excuse(ctx context.Context, sess *session.Session, req ExcuseRequest) (*ExcuseResult, error) {
	o.progress(StageGenerating, 0, excuseStages, "Writing your excuse...")
	original, err := o.ask(ctx, prompts.Excuse(req.Category, req.Scenario, req.Urgency), 300, 0.7)
	if err != nil {
		return nil, fmt.Errorf("generating excuse: %w", err)
	}

	res := &ExcuseResult{Original: original, Translated: original}

	o.progress(StageTranslating, 1, excuseStages, fmt.Sprintf("Translating to %s...", req.Language))
	if o.deps.Translator != nil {
		translated, err := o.deps.Translator.Translate(ctx, original, req.Language)
		if err != nil {
			o.degrade(&res.Degradations, StageTranslating, err)
		} else {
			res.Translated = translated
		}
	}

	o.progress(StageRecording, 2, excuseStages, "Adding to history...")
	sess.AppendHistory(res.Translated)
	sess.IncrementGenerated()
	sess.SetLast(res.Translated)

	o.progress(StageRanking, 3, excuseStages, "Rating believability...")
	res.Believability = o.rank(ctx, res.Translated, &res.Degradations)

	o.progress(StageSaving, 4, excuseStages, "Saving favorite...")
	if req.AutoSave {
		added, err := sess.AddFavorite(res.Translated)
		if err != nil {
			o.degrade(&res.Degradations, StageSaving, err)
		}
		res.Saved = added
	}

	o.progress(StageSpeaking, 5, excuseStages, "Recording audio...")
	res.Audio = o.speak(ctx, res.Translated, req.Language, &res.Degradations)

	o.progress(StageDone, excuseStages, excuseStages, "Done")
	o.log.Info("excuse generated",
		"category", string(req.Category),
		"language", string(req.Language),
		"believability", string(res.Believability),
		"degraded", len(res.Degradations))

	return res, nil
}

// rank asks the model for a believability label. Errors and replies that
// name no label fall back to SomewhatBelievable.
func (o *Orchestrator) rank(ctx context.Context, excuse string, degraded *[]Degradation) catalog.Believability {
	reply, err := o.ask(ctx, prompts.Believability(excuse), 20, 0.3)
	if err != nil {
		o.degrade(degraded, StageRanking, err)
		return catalog.SomewhatBelievable
	}

	b, ok := ParseBelievability(reply)
	if !ok {
		o.degrade(degraded, StageRanking, fmt.Errorf("unrecognised rating %q", reply))
		return catalog.SomewhatBelievable
	}
	return b
}

// ParseBelievability finds the label in a model reply such as
// "🟢 Highly Believable" or "highly believable.".
func ParseBelievability(reply string) (catalog.Believability, bool) {
	r := strings.ToLower(reply)
	for _, b := range []catalog.Believability{
		catalog.HighlyBelievable,
		catalog.LessBelievable,
		catalog.SomewhatBelievable,
	} {
		if strings.Contains(r, strings.ToLower(string(b))) {
			return b, true
		}
	}
	return "", false
}
