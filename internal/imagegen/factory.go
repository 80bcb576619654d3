package imagegen

import (
	"context"
	"fmt"

	"github.com/abhisek/tohu/internal/llm"
)

// NewGenerator builds the remote generator for cfg. It returns nil, nil for
// the placeholder provider and for remote providers with no API key; the
// Client treats a nil Generator as "always placeholder".
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case "gemini":
		client, err := llm.NewGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		return newGeminiGenerator(client, cfg.Model), nil
	case "openai":
		return newOpenAIGenerator(llm.NewOpenAIClient(cfg.APIKey, cfg.BaseURL, nil), cfg.Model), nil
	case "openrouter":
		client := llm.NewOpenAIClient(cfg.APIKey, llm.OpenRouterBaseURL(cfg.BaseURL), llm.OpenRouterHTTPClient())
		return newOpenAIGenerator(client, cfg.Model), nil
	case "placeholder", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown image provider: %q", cfg.Provider)
	}
}
