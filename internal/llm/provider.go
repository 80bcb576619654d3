package llm

import (
	"context"
	"encoding/json"
)

// Provider is the text-generation abstraction. A pack request makes exactly
// one Generate call through it.
type Provider interface {
	// Generate sends a prompt to the model. A strict req.Schema uses the
	// provider's native structured output and validates the reply; a loose
	// one only requests JSON. Otherwise Content is the raw reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the instruction block (role, output contract, constraints).
	System string

	// Messages is the conversation. Pack generation sends one user turn.
	Messages []Message

	// Schema, when set, asks for a JSON reply. See Schema.Strict.
	Schema *Schema

	// MaxTokens caps the reply length. Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Zero means provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name identifies the schema in caches and provider calls, kebab-case.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema itself.
	Definition map[string]any

	// Strict has the provider enforce Definition server-side and the reply
	// validated before it is returned. A loose schema only switches the
	// provider into JSON output; the caller checks the shape.
	Strict bool
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON object when a strict Schema was
	// requested, otherwise the reply text verbatim (possibly fenced markdown).
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
