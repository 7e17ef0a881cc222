package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables recognised on top of the config file.
const (
	EnvChatKey       = "OPENROUTER_API_KEY"
	EnvImageKey      = "STABILITY_API_KEY"
	EnvChatProvider  = "ALIBI_CHAT_PROVIDER"
	EnvChatModel     = "ALIBI_CHAT_MODEL"
	EnvLanguage      = "ALIBI_LANGUAGE"
	EnvFavoritesPath = "ALIBI_FAVORITES_PATH"
	EnvOutputDir     = "ALIBI_OUTPUT_DIR"
	EnvLogLevel      = "ALIBI_LOG_LEVEL"
	EnvAutoSave      = "ALIBI_AUTO_SAVE"
)

type Config struct {
	Chat      ChatConfig    `yaml:"chat"`
	Image     ImageConfig   `yaml:"image"`
	Translate ServiceConfig `yaml:"translate,omitempty"`
	Speech    ServiceConfig `yaml:"speech,omitempty"`

	Language      string `yaml:"language"`
	AutoSave      bool   `yaml:"auto_save"`
	FavoritesPath string `yaml:"favorites_path,omitempty"`
	OutputDir     string `yaml:"output_dir,omitempty"`

	Log LogConfig `yaml:"log"`
}

type ChatConfig struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`
}

type ImageConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Engine  string `yaml:"engine"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type ServiceConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Chat: ChatConfig{
			Provider: "openrouter",
			Model:    "mistralai/mixtral-8x7b-instruct",
		},
		Image: ImageConfig{
			Engine: "stable-diffusion-xl-1024-v1-0",
		},
		Language: "English",
		Log: LogConfig{
			Level: "info",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "alibi"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config file, fills unset fields from DefaultConfig and
// applies environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Chat.APIKey, EnvChatKey)
	setString(&c.Image.APIKey, EnvImageKey)
	if setString(&c.Chat.Provider, EnvChatProvider) && c.Chat.Provider != "openrouter" &&
		c.Chat.Model == DefaultConfig().Chat.Model {
		// the default model is an OpenRouter id; let the provider pick its own
		c.Chat.Model = ""
	}
	setString(&c.Chat.Model, EnvChatModel)
	setString(&c.Language, EnvLanguage)
	setString(&c.FavoritesPath, EnvFavoritesPath)
	setString(&c.OutputDir, EnvOutputDir)
	setString(&c.Log.Level, EnvLogLevel)

	if v, ok := os.LookupEnv(EnvAutoSave); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.AutoSave = b
		}
	}
}

func setString(dst *string, env string) bool {
	if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
		return true
	}
	return false
}

func (c *Config) fillPaths() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if c.FavoritesPath == "" {
		c.FavoritesPath = filepath.Join(dir, "favorites.txt")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dir, "alibi.log")
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}

// Save writes the config file. Keys that came from the environment are
// written too, so callers that only want to persist the setup wizard's input
// should build the Config they save themselves.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ChatReady reports whether a chat key is configured, or whether the
// provider runs without one.
func (c *Config) ChatReady() bool {
	if p := GetProvider(c.Chat.Provider); p != nil && !p.NeedsAPIKey {
		return true
	}
	return c.Chat.APIKey != ""
}

// MaskKey shortens a secret for display.
func MaskKey(key string) string {
	if key == "" {
		return "Not set"
	}
	if len(key) > 8 {
		return key[:4] + "****" + key[len(key)-4:]
	}
	return "****"
}
