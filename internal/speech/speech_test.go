package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sant0-9/alibi/internal/catalog"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{name: "empty", text: "   ", max: 10, want: nil},
		{name: "fits", text: "call me back", max: 20, want: []string{"call me back"}},
		{name: "word boundary", text: "call me back now please", max: 10, want: []string{"call me", "back now", "please"}},
		{name: "long word", text: "abcdefghijkl xy", max: 5, want: []string{"abcde", "fghij", "kl xy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.text, tt.max)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Chunk() = %q, want %q", got, tt.want)
			}
			for _, c := range got {
				if utf8.RuneCountInString(c) > tt.max {
					t.Errorf("chunk %q longer than %d", c, tt.max)
				}
			}
		})
	}
}

func TestSynthesizeConcatenatesParts(t *testing.T) {
	var langs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_tts" {
			t.Errorf("path = %q", r.URL.Path)
		}
		langs = append(langs, r.URL.Query().Get("tl"))
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3" + r.URL.Query().Get("idx")))
	}))
	defer srv.Close()

	text := strings.Repeat("urgent ", 30) // ~210 runes -> 3 parts
	audio, err := NewClient(srv.URL).Synthesize(context.Background(), text, catalog.Hindi)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if audio.Format != "mp3" {
		t.Errorf("Format = %q", audio.Format)
	}
	if string(audio.Data) != "ID30ID31ID32" {
		t.Errorf("Data = %q", audio.Data)
	}
	for _, l := range langs {
		if l != "hi" {
			t.Errorf("tl = %q, want hi", l)
		}
	}
}

func TestSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Synthesize(context.Background(), "hello", catalog.English); err == nil {
		t.Error("expected error on 403")
	}
	if _, err := c.Synthesize(context.Background(), " ", catalog.English); !errors.Is(err, ErrNoText) {
		t.Errorf("err = %v, want ErrNoText", err)
	}
}
