package writer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sant0-9/alibi/internal/catalog"
	"github.com/sant0-9/alibi/internal/speech"
)

func TestProofFilename(t *testing.T) {
	tests := map[catalog.ProofType]string{
		catalog.ProofHospitalCertificate: "hospital_certificate_proof.png",
		catalog.ProofWhatsAppChat:        "whatsapp_chat_proof.png",
		catalog.ProofLocationLog:         "location_log_proof.png",
	}
	for kind, want := range tests {
		if got := ProofFilename(kind); got != want {
			t.Errorf("ProofFilename(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestEmailTemplate(t *testing.T) {
	got := EmailTemplate("My train was cancelled.")
	if !strings.HasPrefix(got, "Subject: Regarding My Absence/Delay\n\nDear Sir/Madam,\n\nMy train was cancelled.\n\n") {
		t.Errorf("EmailTemplate() = %q", got)
	}
	if !strings.HasSuffix(got, "Best regards,\n[Your Name]") {
		t.Errorf("EmailTemplate() = %q", got)
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("Sorry, I'm late & stuck")
	want := "https://wa.me/?text=Sorry%2C+I%27m+late+%26+stuck"
	if got != want {
		t.Errorf("WhatsAppURL() = %q, want %q", got, want)
	}
}

func TestSaveFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir)

	path, err := w.SaveHistory([]string{"one", "two"})
	if err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	if filepath.Base(path) != HistoryFile {
		t.Errorf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "one\n\n---\n\ntwo" {
		t.Errorf("history = %q", data)
	}

	path, err = w.SaveAudio("apology", &speech.Audio{Data: []byte("ID3"), Format: "mp3"})
	if err != nil || filepath.Base(path) != "apology.mp3" {
		t.Errorf("SaveAudio = %q, %v", path, err)
	}

	path, err = w.SaveProof(catalog.ProofLocationLog, []byte{0x89, 'P', 'N', 'G'})
	if err != nil || filepath.Base(path) != "location_log_proof.png" {
		t.Errorf("SaveProof = %q, %v", path, err)
	}

	path, err = w.SaveEmail("Stuck in traffic.")
	if err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "Stuck in traffic.") {
		t.Errorf("email = %q", data)
	}
}

func TestSaveNothing(t *testing.T) {
	w := NewWriter(t.TempDir())
	checks := []error{}
	_, err := w.SaveExcuse("  ")
	checks = append(checks, err)
	_, err = w.SaveHistory(nil)
	checks = append(checks, err)
	_, err = w.SaveAudio("x", nil)
	checks = append(checks, err)
	_, err = w.SaveProof(catalog.ProofWhatsAppChat, nil)
	checks = append(checks, err)

	for i, err := range checks {
		if !errors.Is(err, ErrNothingToSave) {
			t.Errorf("check %d: err = %v", i, err)
		}
	}
}
