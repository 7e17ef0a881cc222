// Package imagegen is a client for the Stability AI text-to-image API.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sant0-9/alibi/internal/config"
)

const (
	DefaultEngine  = "stable-diffusion-xl-1024-v1-0"
	DefaultTimeout = 90 * time.Second

	// maxBodyInError caps how much of a failed response ends up in StatusError.
	maxBodyInError = 300
)

var (
	ErrTimeout     = errors.New("image generation timed out")
	ErrNoArtifacts = errors.New("image service returned no artifacts")
	ErrGeneration  = errors.New("image generation failed")
)

// StatusError is a non-200 reply from the image service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image service error (status %d): %s", e.Code, e.Body)
}

// TransportError wraps a failure to reach the image service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "image service unreachable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Request describes one picture. Zero fields take the service defaults
// used by the proof generator.
type Request struct {
	Prompt   string
	Width    int
	Height   int
	CfgScale float64
	Steps    int
	Style    string
}

func (r Request) withDefaults() Request {
	if r.Width == 0 {
		r.Width = 1024
	}
	if r.Height == 0 {
		r.Height = 1024
	}
	if r.CfgScale == 0 {
		r.CfgScale = 7
	}
	if r.Steps == 0 {
		r.Steps = 30
	}
	if r.Style == "" {
		r.Style = "photographic"
	}
	return r
}

type Client struct {
	apiKey     string
	engine     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithEngine(engine string) Option {
	return func(c *Client) {
		if engine != "" {
			c.engine = engine
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient fails with a *config.MissingKeyError when apiKey is empty, so
// nothing is sent without credentials.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, config.MissingKey(config.ImageService)
	}

	c := &Client{
		apiKey:     apiKey,
		engine:     DefaultEngine,
		baseURL:    config.ImageService.BaseURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig builds a client from the image section of the config.
func NewFromConfig(cfg *config.ImageConfig) (*Client, error) {
	return NewClient(cfg.APIKey, WithEngine(cfg.Engine), WithBaseURL(cfg.BaseURL))
}

// Generate renders one image. There is exactly one attempt.
func (c *Client) Generate(ctx context.Context, req Request) (image.Image, error) {
	req = req.withDefaults()

	body, err := json.Marshal(stabilityRequest{
		TextPrompts: []textPrompt{{Text: req.Prompt, Weight: 1}},
		CfgScale:    req.CfgScale,
		Height:      req.Height,
		Width:       req.Width,
		Samples:     1,
		Steps:       req.Steps,
		StylePreset: req.Style,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/generation/%s/text-to-image", c.baseURL, c.engine)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(data), maxBodyInError)}
	}

	var sr stabilityResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrGeneration, err)
	}
	if len(sr.Artifacts) == 0 {
		return nil, ErrNoArtifacts
	}

	art := sr.Artifacts[0]
	if art.FinishReason == "ERROR" {
		return nil, fmt.Errorf("%w: service reported an error", ErrGeneration)
	}

	raw, err := base64.StdEncoding.DecodeString(art.Base64)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding base64: %v", ErrGeneration, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", ErrGeneration, err)
	}
	return img, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

type stabilityRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
	StylePreset string       `json:"style_preset,omitempty"`
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type stabilityResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		Seed         int64  `json:"seed"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}
