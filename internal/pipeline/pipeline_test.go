package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/imagegen"
	"github.com/sant0-9/alibi/internal/llm"
	"github.com/sant0-9/alibi/internal/session"
	"github.com/sant0-9/alibi/internal/speech"
)

// stubChat answers prompts in order; the last reply repeats.
type stubChat struct {
	replies []string
	err     error
	prompts []string
}

func (s *stubChat) Name() string { return "stub" }

func (s *stubChat) Ping(context.Context) error { return nil }

func (s *stubChat) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.prompts = append(s.prompts, req.Messages[0].Content)
	if s.err != nil {
		return nil, s.err
	}
	i := len(s.prompts) - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return &llm.CompletionResponse{Content: s.replies[i]}, nil
}

type stubTranslator struct {
	prefix string
	err    error
}

func (s stubTranslator) Translate(_ context.Context, text string, lang catalog.Language) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if lang.IsBase() {
		return text, nil
	}
	return s.prefix + text, nil
}

type stubSpeaker struct {
	err  error
	lang catalog.Language
}

func (s *stubSpeaker) Synthesize(_ context.Context, text string, lang catalog.Language) (*speech.Audio, error) {
	s.lang = lang
	if s.err != nil {
		return nil, s.err
	}
	return &speech.Audio{Data: []byte("ID3" + text), Format: "mp3"}, nil
}

type stubImages struct {
	calls int
	err   error
}

func (s *stubImages) Generate(_ context.Context, req imagegen.Request) (image.Image, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	return img, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(session.NewFavoritesFile(filepath.Join(t.TempDir(), "favorites.txt")))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func workRequest() ExcuseRequest {
	return ExcuseRequest{
		Category: catalog.CategoryWork,
		Scenario: "Missed a Deadline",
		Urgency:  catalog.UrgencyHigh,
		Language: catalog.English,
	}
}

func TestExcuseHappyPath(t *testing.T) {
	chat := &stubChat{replies: []string{"My laptop crashed overnight.", "🟢 Highly Believable"}}
	speaker := &stubSpeaker{}
	o := New(Deps{Chat: chat, Translator: stubTranslator{}, Speaker: speaker, Logger: quietLogger()})
	sess := newSession(t)

	var stages []Stage
	o.SetProgressCallback(func(p Progress) { stages = append(stages, p.Stage) })

	res, err := o.Excuse(context.Background(), sess, workRequest())
	if err != nil {
		t.Fatalf("Excuse: %v", err)
	}

	if res.Translated != "My laptop crashed overnight." || res.Original != res.Translated {
		t.Errorf("result = %+v", res)
	}
	if res.Believability != catalog.HighlyBelievable {
		t.Errorf("Believability = %q", res.Believability)
	}
	if res.Audio == nil || res.Audio.Format != "mp3" {
		t.Errorf("Audio = %+v", res.Audio)
	}
	if len(res.Degradations) != 0 {
		t.Errorf("Degradations = %v", res.Degradations)
	}
	if res.Saved {
		t.Error("saved without AutoSave")
	}

	if sess.Generated() != 1 {
		t.Errorf("Generated() = %d", sess.Generated())
	}
	if h := sess.History(); len(h) != 1 || h[0] != res.Translated {
		t.Errorf("History() = %q", h)
	}
	if sess.Last() != res.Translated {
		t.Errorf("Last() = %q", sess.Last())
	}

	if len(chat.prompts) != 2 {
		t.Fatalf("chat called %d times", len(chat.prompts))
	}
	if !strings.Contains(chat.prompts[0], "Missed a Deadline") || !strings.Contains(chat.prompts[1], "My laptop crashed overnight.") {
		t.Errorf("prompts = %q", chat.prompts)
	}
	if stages[len(stages)-1] != StageDone {
		t.Errorf("last stage = %v", stages[len(stages)-1])
	}
}

func TestExcuseSameTextTwiceKeepsOneHistoryEntry(t *testing.T) {
	chat := &stubChat{replies: []string{"Same excuse.", "Less Believable"}}
	o := New(Deps{Chat: chat, Logger: quietLogger()})
	sess := newSession(t)

	for i := 0; i < 2; i++ {
		chat.prompts = nil
		if _, err := o.Excuse(context.Background(), sess, workRequest()); err != nil {
			t.Fatal(err)
		}
	}

	if len(sess.History()) != 1 {
		t.Errorf("History() = %q", sess.History())
	}
	if sess.Generated() != 2 {
		t.Errorf("Generated() = %d", sess.Generated())
	}
}

func TestExcuseChatFailureLeavesSessionAlone(t *testing.T) {
	chat := &stubChat{err: config.MissingKey(*config.GetProvider("openrouter"))}
	o := New(Deps{Chat: chat, Logger: quietLogger()})
	sess := newSession(t)

	_, err := o.Excuse(context.Background(), sess, workRequest())
	if !errors.Is(err, config.ErrMissingKey) {
		t.Fatalf("err = %v, want ErrMissingKey", err)
	}
	if sess.Generated() != 0 || len(sess.History()) != 0 {
		t.Errorf("session changed: generated=%d history=%q", sess.Generated(), sess.History())
	}
}

func TestExcuseDegradations(t *testing.T) {
	boom := errors.New("boom")
	chat := &stubChat{replies: []string{"Traffic was terrible.", "I would say it depends."}}
	speaker := &stubSpeaker{err: boom}
	o := New(Deps{
		Chat:       chat,
		Translator: stubTranslator{err: boom},
		Speaker:    speaker,
		Logger:     quietLogger(),
	})
	sess := newSession(t)

	req := workRequest()
	req.Language = catalog.Tamil
	res, err := o.Excuse(context.Background(), sess, req)
	if err != nil {
		t.Fatalf("Excuse: %v", err)
	}

	if res.Translated != "Traffic was terrible." {
		t.Errorf("Translated = %q, want original", res.Translated)
	}
	if res.Believability != catalog.SomewhatBelievable {
		t.Errorf("Believability = %q", res.Believability)
	}
	if res.Audio != nil {
		t.Error("Audio set despite failure")
	}
	if speaker.lang != catalog.Tamil {
		t.Errorf("spoke in %q", speaker.lang)
	}

	var got []Stage
	for _, d := range res.Degradations {
		got = append(got, d.Stage)
	}
	want := []Stage{StageTranslating, StageRanking, StageSpeaking}
	if len(got) != len(want) {
		t.Fatalf("degraded stages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("degraded stages = %v, want %v", got, want)
		}
	}
}

func TestExcuseAutoSave(t *testing.T) {
	chat := &stubChat{replies: []string{"Power cut at home.", "Somewhat Believable"}}
	o := New(Deps{Chat: chat, Translator: stubTranslator{prefix: "[es] "}, Logger: quietLogger()})
	sess := newSession(t)

	req := workRequest()
	req.Language = catalog.Spanish
	req.AutoSave = true
	res, err := o.Excuse(context.Background(), sess, req)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Saved {
		t.Error("Saved = false")
	}
	if f := sess.Favorites(); len(f) != 1 || f[0] != "[es] Power cut at home." {
		t.Errorf("Favorites() = %q", f)
	}
	if !strings.Contains(chat.prompts[1], "[es] Power cut at home.") {
		t.Errorf("ranked %q, want translated text", chat.prompts[1])
	}
}

func TestParseBelievability(t *testing.T) {
	tests := []struct {
		reply string
		want  catalog.Believability
		ok    bool
	}{
		{"🟢 Highly Believable", catalog.HighlyBelievable, true},
		{"somewhat believable.", catalog.SomewhatBelievable, true},
		{"🔴 Less Believable", catalog.LessBelievable, true},
		{"Not sure", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			got, ok := ParseBelievability(tt.reply)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseBelievability(%q) = %q, %v", tt.reply, got, ok)
			}
		})
	}
}

func TestEmergency(t *testing.T) {
	chat := &stubChat{replies: []string{"Please call me back now, it's urgent!"}}
	speaker := &stubSpeaker{}
	o := New(Deps{Chat: chat, Speaker: speaker, Logger: quietLogger()})

	msg, err := o.Emergency(context.Background(), EmergencyRequest{
		Relation: "Mom",
		Type:     "medical emergency",
		Language: catalog.Hindi,
	})
	if err != nil {
		t.Fatalf("Emergency: %v", err)
	}
	if !strings.Contains(msg.CallerLabel, "Mom") {
		t.Errorf("CallerLabel = %q", msg.CallerLabel)
	}
	if !strings.Contains(msg.SMSText, "Please call me back now, it's urgent!") {
		t.Errorf("SMSText = %q", msg.SMSText)
	}
	if msg.Body != "Please call me back now, it's urgent!" {
		t.Errorf("Body = %q", msg.Body)
	}
	if msg.Audio == nil || speaker.lang != catalog.Hindi {
		t.Errorf("audio=%v lang=%q", msg.Audio, speaker.lang)
	}
}

func TestApology(t *testing.T) {
	chat := &stubChat{replies: []string{"I am truly sorry for missing class."}}
	o := New(Deps{Chat: chat, Speaker: &stubSpeaker{err: errors.New("offline")}, Logger: quietLogger()})

	res, err := o.Apology(context.Background(), ApologyRequest{Tone: catalog.ToneFormal, Context: "School"})
	if err != nil {
		t.Fatalf("Apology: %v", err)
	}
	if res.Text != "I am truly sorry for missing class." || res.Tone != catalog.ToneFormal {
		t.Errorf("result = %+v", res)
	}
	if res.Audio != nil || len(res.Degradations) != 1 {
		t.Errorf("audio=%v degradations=%v", res.Audio, res.Degradations)
	}
	if !strings.Contains(chat.prompts[0], "formal") {
		t.Errorf("prompt = %q", chat.prompts[0])
	}

	chat.err = errors.New("down")
	if _, err := o.Apology(context.Background(), ApologyRequest{Tone: catalog.ToneCasual, Context: "Friend"}); err == nil {
		t.Error("expected chat error")
	}
}

func TestProofImageValidation(t *testing.T) {
	factoryCalls := 0
	images := &stubImages{}
	o := New(Deps{
		Images: func() (ImageGenerator, error) {
			factoryCalls++
			return images, nil
		},
		Logger: quietLogger(),
	})

	for _, req := range []ProofImageRequest{
		{Type: catalog.ProofHospitalCertificate, Name: "", Reason: "flu"},
		{Type: catalog.ProofHospitalCertificate, Name: "Asha", Reason: "   "},
	} {
		if _, err := o.ProofImage(context.Background(), req); !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	}
	if factoryCalls != 0 || images.calls != 0 {
		t.Errorf("factory=%d generate=%d, want 0", factoryCalls, images.calls)
	}
}

func TestProofImage(t *testing.T) {
	images := &stubImages{}
	o := New(Deps{
		Images: func() (ImageGenerator, error) { return images, nil },
		Logger: quietLogger(),
	})

	proof, err := o.ProofImage(context.Background(), ProofImageRequest{
		Type:   catalog.ProofLocationLog,
		Name:   " Asha ",
		Reason: "fever",
	})
	if err != nil {
		t.Fatalf("ProofImage: %v", err)
	}
	if proof.Type != catalog.ProofLocationLog || proof.Image == nil {
		t.Errorf("proof = %+v", proof)
	}
	if len(proof.PNG) < 8 || string(proof.PNG[1:4]) != "PNG" {
		t.Errorf("PNG is %d bytes without a PNG header", len(proof.PNG))
	}
}

func TestProofImageMissingKey(t *testing.T) {
	o := New(Deps{
		Images: func() (ImageGenerator, error) {
			c, err := imagegen.NewClient("")
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Logger: quietLogger(),
	})

	_, err := o.ProofImage(context.Background(), ProofImageRequest{
		Type: catalog.ProofWhatsAppChat, Name: "Ravi", Reason: "accident",
	})
	var mk *config.MissingKeyError
	if !errors.As(err, &mk) || mk.EnvKey != config.EnvImageKey {
		t.Errorf("err = %v, want image MissingKeyError", err)
	}
}

func TestDepsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	deps, err := DepsFromConfig(cfg, quietLogger())
	if err != nil {
		t.Fatalf("DepsFromConfig: %v", err)
	}
	if deps.Chat.Name() != "openrouter" || deps.Translator == nil || deps.Speaker == nil {
		t.Errorf("deps = %+v", deps)
	}
	if _, err := deps.Images(); !errors.Is(err, config.ErrMissingKey) {
		t.Errorf("Images() err = %v, want ErrMissingKey", err)
	}

	cfg.Chat.Provider = "nope"
	if _, err := DepsFromConfig(cfg, quietLogger()); err == nil {
		t.Error("expected error for unknown provider")
	}
}
