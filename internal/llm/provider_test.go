package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "pack-text")
	if p := PurposeFrom(ctx); p != "pack-text" {
		t.Fatalf("expected 'pack-text', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMockProvider_LastCall(t *testing.T) {
	mock := NewMockProvider(MockText("```json\n{}\n```"), MockText("{}"))
	if _, ok := mock.LastCall(); ok {
		t.Fatal("expected no call yet")
	}

	resp, _ := mock.Generate(context.Background(), Request{System: "first"})
	if string(resp.Content) != "```json\n{}\n```" {
		t.Fatalf("MockText should keep text verbatim, got %q", resp.Content)
	}
	_, _ = mock.Generate(context.Background(), Request{System: "second"})

	last, ok := mock.LastCall()
	if !ok || last.System != "second" {
		t.Fatalf("expected last call 'second', got %+v", last)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("TOHU_LLM_PROVIDER", "openrouter")
	t.Setenv("TOHU_OPENROUTER_API_KEY", "sk-or-env")
	t.Setenv("TOHU_OPENROUTER_BASE_URL", "https://proxy.example/v1")
	t.Setenv("TOHU_TEXT_MODEL", "anthropic/claude-haiku-4.5")
	t.Setenv("TOHU_LLM_MAX_ATTEMPTS", "3")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Provider != "openrouter" {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "sk-or-env" || cfg.OpenRouter.BaseURL != "https://proxy.example/v1" {
		t.Fatalf("openrouter config = %+v", cfg.OpenRouter)
	}
	if cfg.OpenRouter.Model != "anthropic/claude-haiku-4.5" {
		t.Fatalf("text model not applied to selected provider: %q", cfg.OpenRouter.Model)
	}
	if cfg.Gemini.Model != "gemini-flash" {
		t.Fatalf("gemini model should be untouched, got %q", cfg.Gemini.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
}

func TestConfig_ApplyEnvIgnoresBadAttempts(t *testing.T) {
	t.Setenv("TOHU_LLM_MAX_ATTEMPTS", "lots")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("max attempts = %d, want default 1", cfg.Retry.MaxAttempts)
	}
}

func TestConfig_Discover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	t.Run("keeps configured key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		cfg := DefaultConfig()
		cfg.Gemini.APIKey = "g-key"
		if !cfg.Discover() || cfg.Provider != "gemini" {
			t.Fatalf("expected configured gemini key to win, got %q", cfg.Provider)
		}
	})

	t.Run("falls back to bare key", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-or")
		cfg := DefaultConfig()
		if !cfg.Discover() {
			t.Fatal("expected discovery to succeed")
		}
		if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or" {
			t.Fatalf("got provider %q key %q", cfg.Provider, cfg.OpenRouter.APIKey)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		cfg := DefaultConfig()
		if cfg.Discover() {
			t.Fatal("expected discovery to fail")
		}
	})
}

func TestConfig_ValidateMessageNamesEnvVar(t *testing.T) {
	err := Config{Provider: "openrouter"}.Validate()
	if err == nil || !strings.Contains(err.Error(), "TOHU_OPENROUTER_API_KEY") {
		t.Fatalf("expected env var hint, got %v", err)
	}
}
