package llm

import "github.com/sant0-9/alibi/internal/config"

// Routing headers OpenRouter uses to attribute traffic to an app.
const (
	AppReferer = "https://github.com/sant0-9/alibi"
	AppTitle   = "Intelligent Excuse Generator"
)

type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(apiKey, model string) *OpenRouterProvider {
	info := *config.GetProvider("openrouter")
	p := newCompatProvider(info, info.BaseURL, apiKey, model)
	p.headers["HTTP-Referer"] = AppReferer
	p.headers["X-Title"] = AppTitle
	return &OpenRouterProvider{OpenAIProvider: p}
}
