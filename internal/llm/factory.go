package llm

import (
	"fmt"

	"github.com/sant0-9/alibi/internal/config"
)

// NewProvider creates the chat provider from config. A missing key is not an
// error here: it is reported by the first call, so the rest of the app stays
// usable without one.
func NewProvider(cfg *config.ChatConfig) (Provider, error) {
	var p *OpenAIProvider

	switch cfg.Provider {
	case "", "openrouter":
		p = NewOpenRouterProvider(cfg.APIKey, cfg.Model).OpenAIProvider

	case "openai":
		p = NewOpenAIProvider(cfg.APIKey, cfg.Model)

	case "groq":
		p = NewGroqProvider(cfg.APIKey, cfg.Model).OpenAIProvider

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("custom provider requires base_url")
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	if cfg.BaseURL != "" {
		p.WithBaseURL(cfg.BaseURL)
	}
	return p, nil
}
