package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/pipeline"
	"github.com/sant0-9/alibi/internal/writer"
)

var errNoResult = errors.New("nothing generated yet")

func (a *App) handlePanelKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state

	// Text inputs on the proof panel take every key except navigation.
	if input := a.focusedInput(); input != nil {
		switch {
		case key.Matches(msg, keys.Quit):
			s.focus[panelProof] = fieldProofType
			return a.syncInputFocus()
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.ShiftTab),
			key.Matches(msg, keys.Up), key.Matches(msg, keys.Down),
			key.Matches(msg, keys.Enter):
		default:
			var cmd tea.Cmd
			*input, cmd = input.Update(msg)
			return cmd
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil

	case key.Matches(msg, keys.Tab):
		return a.switchPanel((s.panel + 1) % panelCount)

	case key.Matches(msg, keys.ShiftTab):
		return a.switchPanel((s.panel + panelCount - 1) % panelCount)

	case key.Matches(msg, keys.Up):
		if s.panel == panelHistory {
			if s.historyCursor > 0 {
				s.historyCursor--
			}
			return nil
		}
		return a.moveFocus(-1)

	case key.Matches(msg, keys.Down):
		if s.panel == panelHistory {
			if s.historyCursor < len(s.sess.History())-1 {
				s.historyCursor++
			}
			return nil
		}
		return a.moveFocus(1)

	case key.Matches(msg, keys.Left):
		a.cycle(-1)
		return nil

	case key.Matches(msg, keys.Right):
		a.cycle(1)
		return nil
	}

	switch s.panel {
	case panelExcuse:
		return a.handleExcuseKey(msg)
	case panelProof:
		return a.handleProofKey(msg)
	case panelEmergency:
		return a.handleEmergencyKey(msg)
	case panelHistory:
		return a.handleHistoryKey(msg)
	}
	return nil
}

func (a *App) focusedInput() *textinput.Model {
	s := a.state
	if s.panel != panelProof {
		return nil
	}
	switch s.focus[panelProof] {
	case fieldName:
		return &s.nameInput
	case fieldReason:
		return &s.reasonInput
	}
	return nil
}

func (a *App) switchPanel(p panel) tea.Cmd {
	a.state.panel = p
	a.state.notice = ""
	a.state.warnings = nil
	return a.syncInputFocus()
}

func (a *App) moveFocus(delta int) tea.Cmd {
	s := a.state
	n := fieldCount(s.panel)
	s.focus[s.panel] = (s.focus[s.panel] + delta + n) % n
	return a.syncInputFocus()
}

// syncInputFocus focuses the text input under the cursor, if any.
func (a *App) syncInputFocus() tea.Cmd {
	s := a.state
	s.nameInput.Blur()
	s.reasonInput.Blur()
	if input := a.focusedInput(); input != nil {
		input.Focus()
		return textinput.Blink
	}
	return nil
}

func (a *App) cycle(delta int) {
	s := a.state
	var sel *selector

	switch s.panel {
	case panelExcuse:
		field := s.focus[panelExcuse]
		if field == fieldAutoSave {
			s.autoSave = !s.autoSave
			return
		}
		sel = s.excuseSelector(field)
	case panelProof:
		if s.focus[panelProof] == fieldProofType {
			sel = &s.proofType
		}
	case panelEmergency:
		if s.focus[panelEmergency] == fieldRelation {
			sel = &s.relation
		} else {
			sel = &s.emergencyType
		}
	}

	if sel == nil {
		return
	}
	if delta < 0 {
		sel.prev()
	} else {
		sel.next()
	}
}

func (a *App) handleExcuseKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Enter):
		return a.runExcuse()
	case key.Matches(msg, keys.Apology):
		return a.runApology()
	case key.Matches(msg, keys.Favorite):
		return a.addFavorite(s.sess.Last())
	case key.Matches(msg, keys.Download):
		return a.save(func(w *writer.Writer) (string, error) { return w.SaveExcuse(a.currentExcuse()) })
	case key.Matches(msg, keys.Email):
		return a.save(func(w *writer.Writer) (string, error) { return w.SaveEmail(a.currentExcuse()) })
	case key.Matches(msg, keys.Audio):
		return a.saveExcuseAudio()
	case key.Matches(msg, keys.Copy):
		return copyText(a.currentExcuse(), "Excuse copied")
	case key.Matches(msg, keys.Share):
		if a.currentExcuse() == "" {
			return notice("", errNoResult)
		}
		return copyText(writer.WhatsAppURL(a.currentExcuse()), "WhatsApp link copied")
	}
	return nil
}

func (a *App) handleProofKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Enter):
		return a.runProof()
	case key.Matches(msg, keys.Download):
		if s.proof == nil {
			return notice("", errNoResult)
		}
		proof := s.proof
		return a.save(func(w *writer.Writer) (string, error) { return w.SaveProof(proof.Type, proof.PNG) })
	}
	return nil
}

func (a *App) handleEmergencyKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	switch {
	case key.Matches(msg, keys.Enter):
		return a.runEmergency()
	case key.Matches(msg, keys.Audio):
		if s.emergency == nil {
			return notice("", errNoResult)
		}
		audio := s.emergency.Audio
		return a.save(func(w *writer.Writer) (string, error) { return w.SaveAudio("emergency", audio) })
	case key.Matches(msg, keys.Copy):
		if s.emergency == nil {
			return notice("", errNoResult)
		}
		return copyText(s.emergency.Body, "Message copied")
	}
	return nil
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	s := a.state
	history := s.sess.History()

	switch {
	case key.Matches(msg, keys.Favorite), key.Matches(msg, keys.Enter):
		if s.historyCursor < len(history) {
			return a.addFavorite(history[s.historyCursor])
		}
	case key.Matches(msg, keys.Copy):
		if s.historyCursor < len(history) {
			return copyText(history[s.historyCursor], "Excuse copied")
		}
	case key.Matches(msg, keys.History):
		return a.save(func(w *writer.Writer) (string, error) { return w.SaveHistory(history) })
	case key.Matches(msg, keys.ClearHist):
		s.sess.ClearHistory()
		s.historyCursor = 0
		s.notice = "History cleared"
	case key.Matches(msg, keys.ClearFavs):
		if err := s.sess.ClearFavorites(); err != nil {
			return notice("", err)
		}
		s.notice = "Favorites cleared"
	}
	return nil
}

func (a *App) currentExcuse() string {
	if a.state.excuse != nil {
		return a.state.excuse.Translated
	}
	return a.state.sess.Last()
}

func (a *App) addFavorite(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return notice("", errNoResult)
	}
	added, err := a.state.sess.AddFavorite(text)
	switch {
	case err != nil:
		return notice("", fmt.Errorf("saved in this session only: %w", err))
	case !added:
		return notice("Already in favorites", nil)
	default:
		return notice("⭐ Saved to favorites", nil)
	}
}

func (a *App) saveExcuseAudio() tea.Cmd {
	excuse, apology := a.state.excuse, a.state.apology
	if (excuse == nil || excuse.Audio == nil) && (apology == nil || apology.Audio == nil) {
		return notice("", errors.New("no audio recorded yet"))
	}
	return a.save(func(w *writer.Writer) (string, error) {
		var saved []string
		if excuse != nil && excuse.Audio != nil {
			path, err := w.SaveAudio("excuse", excuse.Audio)
			if err != nil {
				return "", err
			}
			saved = append(saved, path)
		}
		if apology != nil && apology.Audio != nil {
			path, err := w.SaveAudio("apology", apology.Audio)
			if err != nil {
				return "", err
			}
			saved = append(saved, path)
		}
		return strings.Join(saved, ", "), nil
	})
}

func (a *App) save(fn func(*writer.Writer) (string, error)) tea.Cmd {
	w := a.state.writer
	return func() tea.Msg {
		path, err := fn(w)
		if err != nil {
			return noticeMsg{err: err}
		}
		return noticeMsg{text: "Saved " + path}
	}
}

func copyText(text, done string) tea.Cmd {
	if text == "" {
		return notice("", errNoResult)
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return noticeMsg{err: fmt.Errorf("clipboard unavailable: %w", err)}
		}
		return noticeMsg{text: done}
	}
}

func notice(text string, err error) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{text: text, err: err}
	}
}

// startAction switches to the processing view and runs fn in a command.
// Stage updates reach the view through a channel that fn's command closes.
func (a *App) startAction(name string, stages []pipeline.Stage, fn func(ctx context.Context) tea.Msg) tea.Cmd {
	s := a.state
	if s.orch == nil {
		err := s.providerError
		if err == nil {
			err = errors.New("no chat provider configured")
		}
		a.showError(err)
		return nil
	}

	ch := make(chan pipeline.Progress, 16)
	s.orch.SetProgressCallback(func(p pipeline.Progress) {
		select {
		case ch <- p:
		default:
		}
	})

	s.processing = true
	s.action = name
	s.stages = stages
	s.progress = nil
	s.notice = ""
	s.warnings = nil
	a.view = viewProcessing

	run := func() tea.Msg {
		defer close(ch)
		return fn(context.Background())
	}
	return tea.Batch(run, waitForProgress(ch), s.spinner.Tick)
}

func waitForProgress(ch <-chan pipeline.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{progress: p, ch: ch}
	}
}

func (a *App) runExcuse() tea.Cmd {
	s := a.state
	req := pipeline.ExcuseRequest{
		Category: catalog.Category(s.category.value()),
		Scenario: catalog.Scenario(s.scenario.value()),
		Urgency:  catalog.Urgency(s.urgency.value()),
		Language: s.selectedLanguage(),
		AutoSave: s.autoSave,
	}
	stages := []pipeline.Stage{
		pipeline.StageGenerating, pipeline.StageTranslating, pipeline.StageRecording,
		pipeline.StageRanking, pipeline.StageSaving, pipeline.StageSpeaking,
	}
	orch, sess := s.orch, s.sess
	return a.startAction("Excuse", stages, func(ctx context.Context) tea.Msg {
		res, err := orch.Excuse(ctx, sess, req)
		return excuseDoneMsg{result: res, err: err}
	})
}

func (a *App) runApology() tea.Cmd {
	s := a.state
	req := pipeline.ApologyRequest{
		Tone:     catalog.Tone(s.tone.value()),
		Context:  catalog.ApologyContext(s.apologyTo.value()),
		Language: s.selectedLanguage(),
	}
	orch := s.orch
	return a.startAction("Apology", []pipeline.Stage{pipeline.StageGenerating, pipeline.StageSpeaking},
		func(ctx context.Context) tea.Msg {
			res, err := orch.Apology(ctx, req)
			return apologyDoneMsg{result: res, err: err}
		})
}

func (a *App) runEmergency() tea.Cmd {
	s := a.state
	req := pipeline.EmergencyRequest{
		Relation: catalog.Relation(s.relation.value()),
		Type:     catalog.EmergencyType(s.emergencyType.value()),
		Language: s.selectedLanguage(),
	}
	orch := s.orch
	return a.startAction("Emergency", []pipeline.Stage{pipeline.StageGenerating, pipeline.StageSpeaking},
		func(ctx context.Context) tea.Msg {
			res, err := orch.Emergency(ctx, req)
			return emergencyDoneMsg{result: res, err: err}
		})
}

func (a *App) runProof() tea.Cmd {
	s := a.state
	req := pipeline.ProofImageRequest{
		Type:   catalog.ProofType(s.proofType.value()),
		Name:   s.nameInput.Value(),
		Reason: s.reasonInput.Value(),
	}
	orch := s.orch
	return a.startAction("Proof", []pipeline.Stage{pipeline.StageRendering, pipeline.StageEncoding},
		func(ctx context.Context) tea.Msg {
			res, err := orch.ProofImage(ctx, req)
			return proofDoneMsg{result: res, err: err}
		})
}

func degradationLines(ds []pipeline.Degradation) []string {
	lines := make([]string, 0, len(ds))
	for _, d := range ds {
		lines = append(lines, d.String())
	}
	return lines
}
