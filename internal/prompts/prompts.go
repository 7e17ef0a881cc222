package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sant0-9/alibi/internal/catalog"
)

//go:embed believability.md
var believabilityLabels string

//go:embed proof_note.md
var proofNote string

// Excuse asks for a short conversational excuse paragraph.
func Excuse(category catalog.Category, scenario catalog.Scenario, urgency catalog.Urgency) string {
	return fmt.Sprintf(
		"Write a realistic and believable excuse for someone dealing with '%s' "+
			"related to %s, with %s urgency. "+
			"Write it as a natural paragraph (2-4 sentences) that someone would actually say. "+
			"Make it sound genuine and conversational. Do not use bullet points or lists.",
		scenario, category, urgency)
}

// Believability asks the model to grade an excuse with exactly one label.
func Believability(excuse string) string {
	return fmt.Sprintf("Evaluate this excuse for believability:\n\n\"%s\"\n\n%s",
		excuse, strings.TrimSpace(believabilityLabels))
}

// Emergency asks for a short urgent text message from relation.
func Emergency(relation catalog.Relation, kind catalog.EmergencyType) string {
	return fmt.Sprintf(
		"Generate a realistic urgent text message from %s about a %s. "+
			"Keep it under 25 words and make it sound genuinely urgent. "+
			"Only return the message text, nothing else.",
		relation, kind)
}

func Apology(tone catalog.Tone, context catalog.ApologyContext) string {
	return fmt.Sprintf(
		"Write a %s apology message for missing a %s obligation. "+
			"Make it sincere and appropriate. Keep it 2-3 sentences.",
		strings.ToLower(string(tone)), strings.ToLower(string(context)))
}

// ProofImage describes the picture for a proof type. Unknown types get a
// generic document prompt.
func ProofImage(kind catalog.ProofType, name, reason string) string {
	note := strings.TrimSpace(proofNote)

	switch kind {
	case catalog.ProofHospitalCertificate:
		return fmt.Sprintf(
			"Professional medical certificate, hospital letterhead, "+
				"patient name '%s', diagnosis '%s', doctor signature, "+
				"hospital stamp, current date. Realistic official document layout. %s",
			name, reason, note)
	case catalog.ProofWhatsAppChat:
		return fmt.Sprintf(
			"WhatsApp conversation screenshot. Boss: 'Why aren't you at work today?' "+
				"Reply from %s: 'Sorry sir, %s. Will send certificate.' "+
				"Realistic WhatsApp UI, timestamps, green bubbles. %s",
			name, reason, note)
	case catalog.ProofLocationLog:
		return fmt.Sprintf(
			"Google Maps timeline screenshot. User %s at hospital due to %s. "+
				"Red location pin, route, timestamp, realistic phone UI. %s",
			name, reason, note)
	default:
		return fmt.Sprintf("Realistic %s document. %s", kind, note)
	}
}
