// Package pack assembles bilingual NZSL/English learning packs: it asks the
// text model for pedagogical content, repairs whatever comes back into a
// fixed set of semantic components, renders one picture per component plus
// a whole scene, and lays the results out as a Whole-Part-Whole sequence.
package pack

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/tohu/internal/prompt"
)

// Defaults applied by Input.Normalize.
const (
	DefaultLevel   = "ECE"
	DefaultSubject = "language"
)

// Input is what a teacher asks for.
type Input struct {
	Theme    string `json:"theme"`
	Level    string `json:"level"`
	Keywords string `json:"keywords"`
	Subject  string `json:"subject"`
	Activity string `json:"activity,omitempty"`
}

// Normalize trims every field and fills in the default level and subject.
func (in Input) Normalize() Input {
	out := Input{
		Theme:    strings.TrimSpace(in.Theme),
		Level:    strings.TrimSpace(in.Level),
		Keywords: strings.TrimSpace(in.Keywords),
		Subject:  strings.TrimSpace(in.Subject),
		Activity: strings.TrimSpace(in.Activity),
	}
	if out.Level == "" {
		out.Level = DefaultLevel
	}
	if out.Subject == "" {
		out.Subject = DefaultSubject
	}
	return out
}

// Validate reports input that cannot produce a pack.
func (in Input) Validate() error {
	if n := utf8.RuneCountInString(strings.TrimSpace(in.Theme)); n < 2 {
		return fmt.Errorf("theme must be at least 2 characters, got %d", n)
	}
	return nil
}

// Mode reports whether this is a language or counting pack.
func (in Input) Mode() prompt.Mode {
	return prompt.ModeFor(in.Subject, in.Activity)
}

// Params converts the input for the prompt builder.
func (in Input) Params() prompt.Params {
	return prompt.Params{
		Theme:    in.Theme,
		Level:    in.Level,
		Keywords: in.Keywords,
		Subject:  in.Subject,
		Activity: in.Activity,
	}
}

// SemanticComponent is one piece of the scene's meaning.
type SemanticComponent struct {
	Type         string `json:"type"`
	Label        string `json:"label"`
	SignGloss    string `json:"sign_gloss"`
	SemanticRole string `json:"semantic_role,omitempty"`
}

// SentencePayload is the composed bilingual sentence plus the words it was
// built from, keyed by slot role.
type SentencePayload struct {
	English string            `json:"sentence_en"`
	NZSL    string            `json:"sentence_nzsl"`
	Labels  map[string]string `json:"labels"`
	Glosses map[string]string `json:"glosses"`
}

// ContentItem is one step of the Whole-Part-Whole sequence.
type ContentItem struct {
	Order              int    `json:"order"`
	Phase              string `json:"phase"`
	ImageRole          string `json:"image_role"`
	ImageDescription   string `json:"image_description"`
	PedagogicalPurpose string `json:"pedagogical_purpose"`
	LanguageFocus      string `json:"language_focus"`
	ImageDataURL       string `json:"image_data_url"`
}

// Pack is a finished learning pack.
type Pack struct {
	PackID      string      `json:"pack_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Theme       string      `json:"theme"`
	Level       string      `json:"level"`
	Subject     string      `json:"subject"`
	Activity    string      `json:"activity,omitempty"`
	Mode        prompt.Mode `json:"mode"`

	LanguageSteps   []string        `json:"language_steps"`
	LearningPrompts []string        `json:"learning_prompts"`
	SentenceNZSL    string          `json:"sentence_nzsl"`
	SentenceEN      string          `json:"sentence_en"`
	Sentence        SentencePayload `json:"sentence"`
	TeacherTip      string          `json:"teacher_tip"`

	PackContent []ContentItem `json:"pack_content"`

	// SceneImages maps image keys (the three slot keys plus "scene") to
	// data URIs.
	SceneImages map[string]string `json:"scene_images"`

	// ImageOrder lists SceneImages keys in print order.
	ImageOrder []string `json:"-"`

	SemanticComponents []SemanticComponent `json:"semantic_components"`

	// Passed through from the model reply untouched.
	NZSLStoryPrompt json.RawMessage `json:"nzsl_story_prompt"`
	ActivityWeb     json.RawMessage `json:"activity_web"`
	StoryScaffold   json.RawMessage `json:"story_scaffold,omitempty"`
	MathDetails     json.RawMessage `json:"math_details,omitempty"`
}
