package pack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/tohu/internal/llm"
)

// Stage says where text generation failed.
type Stage string

const (
	// StageRequest: the provider call itself failed.
	StageRequest Stage = "request"
	// StageParse: the reply was not JSON after fence stripping.
	StageParse Stage = "parse"
	// StageShape: the reply was JSON but lacked the required top-level keys.
	StageShape Stage = "shape"
)

// GenerationError reports a text-model failure. It aborts the whole pack:
// there are no partial packs.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("pack generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// User-facing failure messages.
const (
	DetailAuth      = "API authentication failed. Please check your Google Generative AI API key and project billing."
	DetailRateLimit = "Rate limit exceeded. Please wait a moment and try again."
	DetailTimeout   = "Request timed out. Please try again."
	DetailInvalid   = "Invalid response from AI service. Please try again."
)

// Detail maps err to the message shown to the user. Typed errors are
// checked first; anything else is classified by its text.
func Detail(err error) string {
	if err == nil {
		return ""
	}

	var auth *llm.ErrAuth
	var rl *llm.ErrRateLimit
	var inv *llm.ErrInvalidResponse
	var maxTok *llm.ErrMaxTokensExceeded
	var gen *GenerationError
	switch {
	case errors.As(err, &auth):
		return DetailAuth
	case errors.As(err, &rl):
		return DetailRateLimit
	case errors.Is(err, context.DeadlineExceeded):
		return DetailTimeout
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return DetailInvalid
	case errors.As(err, &gen) && gen.Stage != StageRequest:
		return DetailInvalid
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "Unauthorized"):
		return DetailAuth
	case strings.Contains(msg, "429") || strings.Contains(lower, "rate limit"):
		return DetailRateLimit
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out"):
		return DetailTimeout
	case strings.Contains(msg, "Invalid") && strings.Contains(msg, "response"):
		return DetailInvalid
	default:
		return "Generation failed: " + msg
	}
}
