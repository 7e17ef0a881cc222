// Package writer turns results into the files and links a user takes away:
// excuse text, email drafts, history exports, proof images, audio and share
// links.
package writer

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/speech"
)

const (
	ExcuseFile  = "excuse.txt"
	HistoryFile = "excuse_history.txt"
	EmailFile   = "excuse_email.txt"

	historySeparator = "\n\n---\n\n"
)

var ErrNothingToSave = errors.New("nothing to save")

// Writer saves artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates a new writer
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) SaveExcuse(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNothingToSave
	}
	return w.write(ExcuseFile, []byte(text))
}

func (w *Writer) SaveEmail(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNothingToSave
	}
	return w.write(EmailFile, []byte(EmailTemplate(text)))
}

func (w *Writer) SaveHistory(entries []string) (string, error) {
	if len(entries) == 0 {
		return "", ErrNothingToSave
	}
	return w.write(HistoryFile, []byte(JoinHistory(entries)))
}

func (w *Writer) SaveProof(kind catalog.ProofType, png []byte) (string, error) {
	if len(png) == 0 {
		return "", ErrNothingToSave
	}
	return w.write(ProofFilename(kind), png)
}

// SaveAudio writes audio as <name>.<format>.
func (w *Writer) SaveAudio(name string, audio *speech.Audio) (string, error) {
	if audio == nil || len(audio.Data) == 0 {
		return "", ErrNothingToSave
	}
	format := audio.Format
	if format == "" {
		format = "mp3"
	}
	return w.write(name+"."+format, audio.Data)
}

func (w *Writer) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// EmailTemplate wraps an excuse in a ready-to-send email.
func EmailTemplate(text string) string {
	return "Subject: Regarding My Absence/Delay\n\n" +
		"Dear Sir/Madam,\n\n" +
		text + "\n\n" +
		"I apologize for any inconvenience caused and appreciate your understanding.\n\n" +
		"Best regards,\n[Your Name]"
}

// WhatsAppURL is a share link that opens WhatsApp with text prefilled.
func WhatsAppURL(text string) string {
	return "https://wa.me/?text=" + url.QueryEscape(text)
}

func JoinHistory(entries []string) string {
	return strings.Join(entries, historySeparator)
}

// ProofFilename is e.g. "hospital_certificate_proof.png".
func ProofFilename(kind catalog.ProofType) string {
	name := strings.ToLower(strings.ReplaceAll(string(kind), " ", "_"))
	if name == "" {
		name = "document"
	}
	return name + "_proof.png"
}
