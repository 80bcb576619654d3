package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all text-provider configuration.
type Config struct {
	// Provider selects the text model backend.
	// Values: "gemini", "openai", "openrouter", "anthropic", "mock"
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "openai/gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 means a single attempt and no retry.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ApplyEnv overlays TOHU_* environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("TOHU_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}

	setIf(&c.Anthropic.APIKey, "TOHU_ANTHROPIC_API_KEY")
	setIf(&c.OpenAI.APIKey, "TOHU_OPENAI_API_KEY")
	setIf(&c.OpenAI.BaseURL, "TOHU_OPENAI_BASE_URL")
	setIf(&c.Gemini.APIKey, "TOHU_GEMINI_API_KEY")
	setIf(&c.OpenRouter.APIKey, "TOHU_OPENROUTER_API_KEY")
	setIf(&c.OpenRouter.BaseURL, "TOHU_OPENROUTER_BASE_URL")

	if m := os.Getenv("TOHU_TEXT_MODEL"); m != "" {
		switch c.Provider {
		case "anthropic":
			c.Anthropic.Model = m
		case "openai":
			c.OpenAI.Model = m
		case "openrouter":
			c.OpenRouter.Model = m
		default:
			c.Gemini.Model = m
		}
	}

	if v := os.Getenv("TOHU_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Retry.MaxAttempts = n
		}
	}
}

// Discover fills in a provider from the standard, unprefixed API key env
// vars (Gemini → OpenAI → Anthropic → OpenRouter) when the configured
// provider has no key yet. It reports whether a key was found.
func (c *Config) Discover() bool {
	if c.hasKey() {
		return true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		c.Provider = "gemini"
		c.Gemini.APIKey = k
		return true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		c.Provider = "openai"
		c.OpenAI.APIKey = k
		return true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		c.Provider = "anthropic"
		c.Anthropic.APIKey = k
		return true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		c.Provider = "openrouter"
		c.OpenRouter.APIKey = k
		return true
	}
	return false
}

func (c Config) hasKey() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
		if !c.hasKey() {
			return fmt.Errorf("an API key is required for the %s provider (TOHU_%s_API_KEY)", c.Provider, envName(c.Provider))
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "anthropic":
		return "ANTHROPIC"
	case "openrouter":
		return "OPENROUTER"
	default:
		return "GEMINI"
	}
}

func setIf(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
