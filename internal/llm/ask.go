package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when the first choice has no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Ask sends prompt as a single user message and returns the trimmed text of
// the first choice. There is exactly one attempt.
func Ask(ctx context.Context, p Provider, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := p.Complete(ctx, NewRequest(prompt, maxTokens, temperature))
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
