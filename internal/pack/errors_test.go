package pack

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/tohu/internal/llm"
)

func TestDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"typed auth", &GenerationError{Stage: StageRequest, Err: &llm.ErrAuth{Status: 403, Err: errors.New("forbidden")}}, DetailAuth},
		{"typed rate limit", &GenerationError{Stage: StageRequest, Err: &llm.ErrRateLimit{Err: errors.New("slow")}}, DetailRateLimit},
		{"deadline", &GenerationError{Stage: StageRequest, Err: fmt.Errorf("call: %w", context.DeadlineExceeded)}, DetailTimeout},
		{"parse stage", &GenerationError{Stage: StageParse, Err: errors.New("bad")}, DetailInvalid},
		{"shape stage", &GenerationError{Stage: StageShape, Err: errors.New("bad")}, DetailInvalid},
		{"truncated", &llm.ErrMaxTokensExceeded{}, DetailInvalid},
		{"sniff 401", errors.New("HTTP 401 from upstream"), DetailAuth},
		{"sniff Unauthorized", errors.New("Unauthorized"), DetailAuth},
		{"sniff 429", errors.New("status 429"), DetailRateLimit},
		{"sniff rate limit", errors.New("Rate Limit reached"), DetailRateLimit},
		{"sniff timeout", errors.New("i/o timeout"), DetailTimeout},
		{"sniff invalid", errors.New("Invalid text generation response"), DetailInvalid},
		{"generic", errors.New("boom"), "Generation failed: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detail(tt.err); got != tt.want {
				t.Fatalf("Detail() = %q, want %q", got, tt.want)
			}
		})
	}
	if Detail(nil) != "" {
		t.Fatal("nil error should have no detail")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```  ", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`},
		{"  ```json\n{\"a\":\n1}\n```\n", "{\"a\":\n1}"},
	}
	for _, tt := range tests {
		if got := StripFences(tt.in); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInput_NormalizeAndValidate(t *testing.T) {
	in := Input{Theme: "  Birds ", Activity: " name_the_number "}.Normalize()
	if in.Theme != "Birds" || in.Level != "ECE" || in.Subject != "language" || in.Activity != "name_the_number" {
		t.Fatalf("normalized = %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Input{Theme: "ā"}).Validate(); err == nil {
		t.Fatal("single-rune theme should fail")
	}
	if err := (Input{Theme: "ōō"}).Validate(); err != nil {
		t.Fatalf("two runes should pass: %v", err)
	}
}
