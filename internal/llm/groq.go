package llm

import "github.com/sant0-9/alibi/internal/config"

type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	info := *config.GetProvider("groq")
	return &GroqProvider{OpenAIProvider: newCompatProvider(info, info.BaseURL, apiKey, model)}
}
