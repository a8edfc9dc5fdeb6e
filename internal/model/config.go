package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AIConfig holds settings for the chat completion service.
type AIConfig struct {
	// BaseURL is the text-generation endpoint root. Overridable for
	// self-hosted gateways and tests.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	Model     string `mapstructure:"model" yaml:"model"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// DisplayConfig holds UI preferences applied at startup.
type DisplayConfig struct {
	Theme    string `mapstructure:"theme" yaml:"theme"`
	Language string `mapstructure:"language" yaml:"language"`
}

// ExportConfig controls where project exports are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SpeechConfig holds the local speech synthesis engine settings.
type SpeechConfig struct {
	// Binary is the speech synthesizer executable name or path.
	Binary string `mapstructure:"binary" yaml:"binary"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
	Speech  SpeechConfig  `mapstructure:"speech" yaml:"speech"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/learnio/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "learnio", "config.yaml")
}

// DefaultDataPath returns the default path for the preference database.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "learnio.db")
	}
	return filepath.Join(home, ".config", "learnio", "learnio.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, _ := os.UserHomeDir()
	exportDir := filepath.Join(home, "Downloads")

	return &AppConfig{
		AI: AIConfig{
			BaseURL:   "https://api.anthropic.com/v1/messages",
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 1024,
		},
		Display: DisplayConfig{
			Theme:    string(ThemeLight),
			Language: string(LanguageEnglish),
		},
		Export: ExportConfig{Dir: exportDir},
		Speech: SpeechConfig{Binary: "espeak-ng"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("ai.base_url", defaults.AI.BaseURL)
	v.SetDefault("ai.model", defaults.AI.Model)
	v.SetDefault("ai.max_tokens", defaults.AI.MaxTokens)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("display.language", defaults.Display.Language)
	v.SetDefault("export.dir", defaults.Export.Dir)
	v.SetDefault("speech.binary", defaults.Speech.Binary)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaults
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("ai", cfg.AI)
	v.Set("display", cfg.Display)
	v.Set("export", cfg.Export)
	v.Set("speech", cfg.Speech)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
