package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/tohu/internal/llm"
)

// OpenAIGenerator renders pictures through an OpenAI-compatible images API.
// OpenRouter is reached the same way with a different base URL.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func newOpenAIGenerator(client *openai.Client, model string) *OpenAIGenerator {
	return &OpenAIGenerator{client: client, model: model}
}

// Generate ignores Seed and Temperature; the images API takes neither.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*Image, error) {
	imgReq := openai.ImageRequest{
		Prompt: req.Prompt,
		Model:  g.model,
		N:      1,
		Size:   openai.CreateImageSize1024x1024,
	}
	// gpt-image models always answer with base64 and reject the parameter.
	if !strings.Contains(strings.ToLower(g.model), "gpt-image-") {
		imgReq.ResponseFormat = openai.CreateImageResponseFormatB64JSON
	}

	resp, err := g.client.CreateImage(ctx, imgReq)
	if err != nil {
		return nil, llm.MapOpenAIError(err)
	}
	if len(resp.Data) == 0 || strings.TrimSpace(resp.Data[0].B64JSON) == "" {
		return nil, ErrNoImage
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(resp.Data[0].B64JSON))
	if err != nil {
		return nil, fmt.Errorf("decode image base64: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoImage
	}
	return &Image{Data: raw, MIMEType: sniffMIME(raw)}, nil
}

func (g *OpenAIGenerator) ModelID() string {
	return g.model
}
