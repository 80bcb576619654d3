package llm

import (
	"context"
	"time"

	"github.com/abhisek/tohu/internal/logger"
)

// LoggingProvider is a decorator that writes one structured log line per
// model call.
type LoggingProvider struct {
	inner Provider
	log   *logger.Logger
}

// WithLogging wraps a Provider with structured call logging. A nil logger
// discards output.
func WithLogging(p Provider, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, log: logger.OrNop(log).With("provider_model", p.ModelID())}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []any{
		"purpose", PurposeFrom(ctx),
		"latency_ms", time.Since(start).Milliseconds(),
		"prompt_chars", promptChars(req),
		"success", err == nil,
	}

	if resp != nil {
		fields = append(fields,
			"model", resp.Model,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
			"stop_reason", resp.StopReason,
		)
		if cost := LookupCost(resp.Model); cost != nil {
			fields = append(fields, "est_cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
	}

	if err != nil {
		l.log.Warn("LLM request failed", append(fields, "error", err.Error())...)
		return resp, err
	}
	l.log.Info("LLM request", fields...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func promptChars(req Request) int {
	n := len(req.System)
	for _, m := range req.Messages {
		n += len(m.Content)
	}
	return n
}
