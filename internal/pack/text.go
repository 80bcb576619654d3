package pack

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/tohu/internal/llm"
	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/prompt"
)

// Text request parameters.
const (
	TextTemperature = 0.3
	TextMaxTokens   = 4096
)

// TextClient asks the text model for a pack draft.
type TextClient struct {
	provider llm.Provider
	timeout  time.Duration
	log      *logger.Logger
}

// NewTextClient wraps provider. A zero timeout leaves only the caller's
// deadline.
func NewTextClient(provider llm.Provider, timeout time.Duration, log *logger.Logger) *TextClient {
	return &TextClient{
		provider: provider,
		timeout:  timeout,
		log:      logger.OrNop(log).With("component", "text"),
	}
}

// Fetch makes one text call and returns the reply as a JSON object with the
// required top-level keys. Every failure is a *GenerationError.
func (c *TextClient) Fetch(ctx context.Context, in Input) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "pack-text")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      prompt.Text(in.Params()),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt.UserMessage}},
		Schema:      prompt.PackSchema,
		Temperature: TextTemperature,
		MaxTokens:   TextMaxTokens,
	})
	if err != nil {
		return nil, &GenerationError{Stage: StageRequest, Err: err}
	}

	raw := json.RawMessage(StripFences(string(resp.Content)))
	if !json.Valid(raw) {
		c.log.Warn("text reply is not JSON", "theme", in.Theme, "chars", len(resp.Content))
		return nil, &GenerationError{Stage: StageParse, Err: &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     errors.New("reply is not valid JSON"),
		}}
	}

	if err := llm.ValidateContent(prompt.PackSchema, raw); err != nil {
		c.log.Warn("text reply lacks pack shape", "theme", in.Theme, "error", err.Error())
		return nil, &GenerationError{Stage: StageShape, Err: err}
	}
	return raw, nil
}

// StripFences removes one layer of markdown code fencing: the opening
// ``` line and, when present, the closing ``` line.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
