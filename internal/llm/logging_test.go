package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/tohu/internal/logger"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestLoggingProvider_Success(t *testing.T) {
	log, logs := observedLogger()
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 80},
	})
	p := WithLogging(mock, log)

	ctx := WithPurpose(context.Background(), "pack-text")
	if _, err := p.Generate(ctx, Request{System: "abc", Messages: []Message{{Role: RoleUser, Content: "de"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("LLM request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", logs.Len())
	}
	fields := entries[0].ContextMap()
	if fields["purpose"] != "pack-text" {
		t.Errorf("purpose = %v", fields["purpose"])
	}
	if fields["prompt_chars"] != int64(5) {
		t.Errorf("prompt_chars = %v", fields["prompt_chars"])
	}
	if fields["provider_model"] != "mock" {
		t.Errorf("provider_model = %v", fields["provider_model"])
	}
}

func TestLoggingProvider_Failure(t *testing.T) {
	log, logs := observedLogger()
	mock := NewMockProvider(MockResponse{Err: &ErrAuth{Status: 401, Err: errors.New("bad key")}})
	p := WithLogging(mock, log)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	entries := logs.FilterMessage("LLM request failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Errorf("level = %v", entries[0].Level)
	}
	if entries[0].ContextMap()["purpose"] != "unknown" {
		t.Errorf("purpose = %v", entries[0].ContextMap()["purpose"])
	}
}

func TestLookupCost(t *testing.T) {
	if LookupCost("gemini-2.5-flash") == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if LookupCost("openai/gpt-4o-mini") == nil {
		t.Fatal("expected vendor prefix to be stripped")
	}
	if LookupCost("mock") != nil {
		t.Fatal("mock has no pricing")
	}
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	if got := c.Cost(1_000_000, 200_000); got != 2 {
		t.Fatalf("Cost = %v, want 2", got)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "llama"}, nil); err == nil {
		t.Fatal("expected unknown provider error")
	}
}
