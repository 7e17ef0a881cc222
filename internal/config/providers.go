package config

import (
	"errors"
	"fmt"
)

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	EnvKey       string
	SignupURL    string
	BaseURL      string
	Models       []string
	DefaultModel string
}

// Providers lists the OpenAI-compatible chat backends.
var Providers = []ProviderInfo{
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		EnvKey:       EnvChatKey,
		SignupURL:    "https://openrouter.ai/keys",
		BaseURL:      "https://openrouter.ai/api/v1",
		Models:       []string{"mistralai/mixtral-8x7b-instruct", "meta-llama/llama-3.1-70b-instruct", "openai/gpt-4o-mini"},
		DefaultModel: "mistralai/mixtral-8x7b-instruct",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o family",
		NeedsAPIKey:  true,
		EnvKey:       EnvChatKey,
		SignupURL:    "https://platform.openai.com/api-keys",
		BaseURL:      "https://api.openai.com/v1",
		Models:       []string{"gpt-4o-mini", "gpt-4o"},
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Very fast, cheap",
		NeedsAPIKey:  true,
		EnvKey:       EnvChatKey,
		SignupURL:    "https://console.groq.com/keys",
		BaseURL:      "https://api.groq.com/openai/v1",
		Models:       []string{"llama-3.1-8b-instant", "mixtral-8x7b-32768"},
		DefaultModel: "llama-3.1-8b-instant",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		NeedsAPIKey:  false,
		BaseURL:      "http://localhost:11434/v1",
		Models:       []string{"llama3.1:8b", "mistral:7b"},
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint",
		NeedsAPIKey: false,
	},
}

// ImageService describes the text-to-image backend.
var ImageService = ProviderInfo{
	ID:          "stability",
	Name:        "Stability AI",
	Description: "Stable Diffusion XL",
	NeedsAPIKey: true,
	EnvKey:      EnvImageKey,
	SignupURL:   "https://platform.stability.ai/account/keys",
	BaseURL:     "https://api.stability.ai/v1",
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// ErrMissingKey matches every MissingKeyError.
var ErrMissingKey = errors.New("missing API key")

// MissingKeyError reports an unset credential together with where to get one.
type MissingKeyError struct {
	Service   string
	EnvKey    string
	SignupURL string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s is missing: set %s in your environment, .env file or config", e.Service, e.EnvKey)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Hint is the remediation shown to the user.
func (e *MissingKeyError) Hint() string {
	if e.SignupURL == "" {
		return fmt.Sprintf("Add %s to use this feature.", e.EnvKey)
	}
	return fmt.Sprintf("Add %s to use this feature. Get one at %s", e.EnvKey, e.SignupURL)
}

// MissingKey builds the error for a catalogue entry.
func MissingKey(p ProviderInfo) *MissingKeyError {
	env := p.EnvKey
	if env == "" {
		env = "api_key"
	}
	return &MissingKeyError{
		Service:   p.Name + " API key",
		EnvKey:    env,
		SignupURL: p.SignupURL,
	}
}
