package imagegen

import (
	"context"

	"google.golang.org/genai"

	"github.com/abhisek/tohu/internal/llm"
)

// GeminiGenerator renders pictures with a Gemini image model.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func newGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Image, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
		Temperature:        genai.Ptr(float32(req.Temperature)),
		Seed:               genai.Ptr(req.Seed),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, llm.MapGeminiError(err)
	}
	return firstInlineImage(result)
}

func (g *GeminiGenerator) ModelID() string {
	return g.model
}

// firstInlineImage returns the first inline picture across all candidates.
func firstInlineImage(result *genai.GenerateContentResponse) (*Image, error) {
	if result == nil {
		return nil, ErrNoImage
	}
	for _, cand := range result.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return &Image{Data: part.InlineData.Data, MIMEType: mime}, nil
		}
	}
	return nil, ErrNoImage
}
