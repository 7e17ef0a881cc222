// Package speech turns text into MP3 audio through the Google TTS endpoint.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sant0-9/alibi/internal/catalog"
)

const (
	DefaultBaseURL = "https://translate.google.com"

	// maxChunk is the longest text the endpoint accepts per request.
	maxChunk = 100
)

var ErrNoText = errors.New("nothing to speak")

// Audio is raw synthesized voice.
type Audio struct {
	Data   []byte
	Format string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Synthesize speaks text in lang at normal speed. Long text is sent in
// word-aligned pieces and the MP3 frames are concatenated.
func (c *Client) Synthesize(ctx context.Context, text string, lang catalog.Language) (*Audio, error) {
	chunks := Chunk(text, maxChunk)
	if len(chunks) == 0 {
		return nil, ErrNoText
	}

	var buf bytes.Buffer
	for i, chunk := range chunks {
		if err := c.fetch(ctx, &buf, chunk, lang.Code(), i, len(chunks)); err != nil {
			return nil, err
		}
	}

	return &Audio{Data: buf.Bytes(), Format: "mp3"}, nil
}

func (c *Client) fetch(ctx context.Context, w io.Writer, text, code string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", code)
	q.Set("ttsspeed", "1")
	q.Set("q", text)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(len([]rune(text))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech error (status %d) for part %d/%d", resp.StatusCode, idx+1, total)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("reading audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("speech returned no audio for part %d/%d", idx+1, total)
	}
	return nil
}

// Chunk splits text into pieces of at most max runes, breaking on spaces
// where possible.
func Chunk(text string, max int) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if s := strings.TrimSpace(string(cur)); s != "" {
			chunks = append(chunks, s)
		}
		cur = cur[:0]
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			flush()
			chunks = append(chunks, string(w[:max]))
			w = w[max:]
		}

		need := len(w)
		if len(cur) > 0 {
			need++
		}
		if len(cur)+need > max {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()

	return chunks
}
