package imagegen

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/tohu/internal/llm"
)

// Placeholder formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Config holds image-provider configuration.
type Config struct {
	// Provider selects the image backend.
	// Values: "gemini", "openai", "openrouter", "placeholder". Empty follows
	// the text provider when it can render images.
	Provider string `yaml:"provider"`

	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`

	// RPS caps outbound image calls per second. Zero disables the limiter.
	RPS float64 `yaml:"rps"`

	// PlaceholderFormat is "svg" (default) or "png".
	PlaceholderFormat string `yaml:"placeholder_format"`
}

var defaultModels = map[string]string{
	"gemini":     "gemini-2.5-flash-image",
	"openai":     "dall-e-3",
	"openrouter": "google/gemini-2.5-flash-image",
}

// DefaultConfig returns an image config that follows the text provider.
func DefaultConfig() Config {
	return Config{PlaceholderFormat: FormatSVG}
}

// ApplyEnv overlays TOHU_IMAGE_* environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TOHU_IMAGE_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("TOHU_IMAGE_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("TOHU_IMAGE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("TOHU_IMAGE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TOHU_IMAGE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.RPS = f
		}
	}
	if v := os.Getenv("TOHU_PLACEHOLDER_FORMAT"); v != "" {
		c.PlaceholderFormat = v
	}
}

// Inherit fills the provider, credentials and model from the text config
// where the image config leaves them unset.
func (c *Config) Inherit(text llm.Config) {
	if c.Provider == "" {
		switch text.Provider {
		case "gemini", "openai", "openrouter":
			c.Provider = text.Provider
		default:
			c.Provider = "placeholder"
		}
	}

	switch c.Provider {
	case "gemini":
		setEmpty(&c.APIKey, text.Gemini.APIKey)
	case "openai":
		setEmpty(&c.APIKey, text.OpenAI.APIKey)
		setEmpty(&c.BaseURL, text.OpenAI.BaseURL)
	case "openrouter":
		setEmpty(&c.APIKey, text.OpenRouter.APIKey)
		setEmpty(&c.BaseURL, text.OpenRouter.BaseURL)
	}
	setEmpty(&c.Model, defaultModels[c.Provider])
	setEmpty(&c.PlaceholderFormat, FormatSVG)
}

// Validate checks the provider and placeholder format. A remote provider
// without a key is not an error: every picture becomes a placeholder.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini", "openai", "openrouter", "placeholder", "":
	default:
		return fmt.Errorf("unknown image provider: %q", c.Provider)
	}
	switch c.PlaceholderFormat {
	case FormatSVG, FormatPNG, "":
	default:
		return fmt.Errorf("unknown placeholder format: %q (want svg or png)", c.PlaceholderFormat)
	}
	return nil
}

func setEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
