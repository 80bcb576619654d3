package prompt

import "github.com/abhisek/tohu/internal/llm"

// PackSchema is the minimum top-level shape a text reply must have before
// the normalizer will look at it. Everything below these keys is untrusted
// and repaired downstream, so the schema is loose: providers are asked for a
// JSON reply but the shape is checked here after fence stripping.
var PackSchema = &llm.Schema{
	Name:        "nzsl-learning-pack",
	Description: "NZSL learning pack: story prompt, activity web and semantic components",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nzsl_story_prompt": map[string]any{
				"type":        "object",
				"description": "Key signs, classifiers, facial expressions and a short story outline",
			},
			"activity_web": map[string]any{
				"type":        "array",
				"description": "Cross-curricular activities, one per category",
			},
		},
		"required": []any{"nzsl_story_prompt", "activity_web"},
	},
}
