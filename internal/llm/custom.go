package llm

import "github.com/sant0-9/alibi/internal/config"

type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	info := *config.GetProvider("custom")
	return &CustomProvider{OpenAIProvider: newCompatProvider(info, baseURL, apiKey, model)}
}
