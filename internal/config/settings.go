// Package config owns the user settings document and the encrypted API
// key stored inside it.
package config

import "github.com/96-neko-96/ploterAI/internal/domain"

const (
	SettingsFile = "config.json"
	KeyFile      = "secret.key"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Settings is the persisted settings document.
type Settings struct {
	API         APIConfig `json:"api"`
	UI          UIConfig  `json:"ui"`
	LastProject *string   `json:"last_project"`
}

// APIConfig holds the generation provider parameters. EncryptedKey is the
// sealed API key; it is never shown in plaintext.
type APIConfig struct {
	EncryptedKey *string `json:"encrypted_key"`
	Provider     string  `json:"provider" validate:"oneof=gemini openai ollama"`
	Endpoint     string  `json:"endpoint,omitempty" validate:"omitempty,url"`
	Model        string  `json:"model" validate:"notblank"`
	Temperature  float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int     `json:"max_tokens" validate:"gt=0"`
	TopP         float64 `json:"top_p" validate:"gte=0,lte=1"`
}

// HasKey reports whether an encrypted key is stored.
func (c APIConfig) HasKey() bool {
	return c.EncryptedKey != nil && *c.EncryptedKey != ""
}

// UIConfig holds display preferences.
type UIConfig struct {
	ThemeMode  string `json:"theme_mode" validate:"oneof=dark light system"`
	ColorTheme string `json:"color_theme" validate:"notblank"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		API: DefaultAPIConfig(),
		UI: UIConfig{
			ThemeMode:  "dark",
			ColorTheme: "blue",
		},
	}
}

// DefaultAPIConfig returns the provider defaults.
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		Provider:    ProviderGemini,
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   4000,
		TopP:        0.9,
	}
}

// Validate checks field ranges.
func (c APIConfig) Validate() error {
	return domain.Validate(c)
}

// Validate checks theme values.
func (c UIConfig) Validate() error {
	return domain.Validate(c)
}
