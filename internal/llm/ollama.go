package llm

import "github.com/sant0-9/alibi/internal/config"

// OllamaProvider uses Ollama's OpenAI-compatible /v1 API.
type OllamaProvider struct {
	*OpenAIProvider
}

func NewOllamaProvider(host, model string) *OllamaProvider {
	info := *config.GetProvider("ollama")
	if host == "" {
		host = info.BaseURL
	}
	return &OllamaProvider{OpenAIProvider: newCompatProvider(info, host, "", model)}
}
