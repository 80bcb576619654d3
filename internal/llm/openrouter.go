package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterReferer        = "https://tohu-kaiako.example"
	openRouterTitle          = "Tohu Kaiako"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	client := NewOpenAIClient(cfg.APIKey, OpenRouterBaseURL(cfg.BaseURL), OpenRouterHTTPClient())
	return &OpenRouterProvider{OpenAIProvider: newOpenAIProvider(client, cfg.Model)}, nil
}

// OpenRouterBaseURL returns baseURL, or the public endpoint when empty.
func OpenRouterBaseURL(baseURL string) string {
	if baseURL == "" {
		return defaultOpenRouterBaseURL
	}
	return baseURL
}

// OpenRouterHTTPClient returns an HTTP client that attaches the attribution
// headers OpenRouter uses for app rankings.
func OpenRouterHTTPClient() *http.Client {
	return &http.Client{Transport: &attributionTransport{base: http.DefaultTransport}}
}

type attributionTransport struct {
	base http.RoundTripper
}

func (t *attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(r)
}
