package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/imagegen"
	"github.com/sant0-9/alibi/internal/llm"
	"github.com/sant0-9/alibi/internal/speech"
	"github.com/sant0-9/alibi/internal/translate"
)

// DepsFromConfig builds the real adapters. The chat provider is created
// even without a key; the key is checked when it is first used.
func DepsFromConfig(cfg *config.Config, log *slog.Logger) (Deps, error) {
	chat, err := llm.NewProvider(&cfg.Chat)
	if err != nil {
		return Deps{}, fmt.Errorf("chat provider: %w", err)
	}

	image := cfg.Image
	return Deps{
		Chat:       chat,
		Translator: translate.NewClient(cfg.Translate.BaseURL),
		Speaker:    speech.NewClient(cfg.Speech.BaseURL),
		Images: func() (ImageGenerator, error) {
			c, err := imagegen.NewFromConfig(&image)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Logger: log,
	}, nil
}
