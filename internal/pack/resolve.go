package pack

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abhisek/tohu/internal/prompt"
)

// ResolvedSlot is a canonical slot and the component chosen for it. The
// component's Label and SignGloss are always non-empty.
type ResolvedSlot struct {
	Slot
	Component SemanticComponent
	Fallback  bool
}

// ComponentSet is the three canonical slots in sentence order plus any
// other components the model supplied.
type ComponentSet struct {
	Mode   prompt.Mode
	Slots  [3]ResolvedSlot
	Extras []SemanticComponent
}

// All returns the canonical components followed by the extras.
func (cs ComponentSet) All() []SemanticComponent {
	out := make([]SemanticComponent, 0, len(cs.Slots)+len(cs.Extras))
	for _, s := range cs.Slots {
		out = append(out, s.Component)
	}
	return append(out, cs.Extras...)
}

// Resolution is everything the normalizer derives from a model reply.
type Resolution struct {
	Components      ComponentSet
	LanguageSteps   []string
	LearningPrompts []string
	TeacherTip      string

	NZSLStoryPrompt json.RawMessage
	ActivityWeb     json.RawMessage
	StoryScaffold   json.RawMessage
	MathDetails     json.RawMessage
}

// Resolve turns an untrusted model reply into a complete Resolution. It
// never fails: every missing or malformed field has a deterministic
// fallback. in must already be normalized and valid.
func Resolve(raw json.RawMessage, in Input) Resolution {
	root := gjson.ParseBytes(raw)
	mode := in.Mode()

	cs := resolveComponents(root, in.Theme, mode)
	return Resolution{
		Components:      cs,
		LanguageSteps:   languageSteps(root.Get("language_steps"), cs),
		LearningPrompts: learningPrompts(root.Get("learning_prompts"), mode),
		TeacherTip:      teacherTip(root.Get("teacher_tip"), in.Theme, mode),
		NZSLStoryPrompt: rawOrNil(root.Get("nzsl_story_prompt")),
		ActivityWeb:     rawOrNil(root.Get("activity_web")),
		StoryScaffold:   rawOrNil(root.Get("story_scaffold")),
		MathDetails:     rawOrNil(root.Get("math_details")),
	}
}

func resolveComponents(root gjson.Result, theme string, mode prompt.Mode) ComponentSet {
	// Only object entries count; the first of each type wins.
	var source []gjson.Result
	byType := map[string]gjson.Result{}
	if list := root.Get("semantic_components"); list.IsArray() {
		for _, item := range list.Array() {
			if !item.IsObject() {
				continue
			}
			source = append(source, item)
			t := strings.ToLower(strings.TrimSpace(item.Get("type").String()))
			if _, seen := byType[t]; t != "" && !seen {
				byType[t] = item
			}
		}
	}

	fallbackGloss := ""
	if ks := root.Get("nzsl_story_prompt.key_signs"); ks.IsArray() {
		if first := ks.Array(); len(first) > 0 && first[0].Type == gjson.String {
			fallbackGloss = strings.TrimSpace(first[0].Str)
		}
	}

	cs := ComponentSet{Mode: mode}
	var chosen []any
	for i, slot := range SlotsFor(mode) {
		rs := ResolvedSlot{Slot: slot}

		var src gjson.Result
		found := false
		for _, t := range slot.Types {
			if item, ok := byType[t]; ok {
				src, found = item, true
				break
			}
		}

		if found {
			chosen = append(chosen, src.Value())
			rs.Component = canonicalComponent(src, theme)
		} else {
			rs.Component = fallbackComponent(slot, theme, fallbackGloss)
			rs.Fallback = true
		}
		cs.Slots[i] = rs
	}

	for _, item := range source {
		v := item.Value()
		if containsValue(chosen, v) {
			continue
		}
		cs.Extras = append(cs.Extras, extraComponent(item))
	}
	return cs
}

func canonicalComponent(src gjson.Result, theme string) SemanticComponent {
	label := strings.TrimSpace(truthy(src.Get("label")))
	if label == "" {
		label = theme
	}
	gloss := strings.TrimSpace(glossOf(src))
	if gloss == "" {
		gloss = strings.ToUpper(label)
	}
	return SemanticComponent{
		Type:         strings.ToLower(strings.TrimSpace(src.Get("type").String())),
		Label:        label,
		SignGloss:    gloss,
		SemanticRole: strings.TrimSpace(truthy(src.Get("semantic_role"))),
	}
}

func fallbackComponent(slot Slot, theme, keySign string) SemanticComponent {
	label := theme
	if slot.Place {
		label = theme + " place"
	}
	gloss := keySign
	if gloss == "" {
		gloss = strings.ToUpper(label)
	}
	return SemanticComponent{
		Type:         slot.Types[0],
		Label:        label,
		SignGloss:    gloss,
		SemanticRole: "Fallback " + slot.Types[0],
	}
}

func extraComponent(src gjson.Result) SemanticComponent {
	label := strings.TrimSpace(truthy(src.Get("label")))
	gloss := strings.TrimSpace(glossOf(src))
	if gloss == "" {
		gloss = strings.ToUpper(label)
	}
	return SemanticComponent{
		Type:         strings.ToLower(strings.TrimSpace(src.Get("type").String())),
		Label:        label,
		SignGloss:    gloss,
		SemanticRole: strings.TrimSpace(truthy(src.Get("semantic_role"))),
	}
}

// glossOf reads sign_gloss, accepting the older nzsl_sign key too.
func glossOf(src gjson.Result) string {
	if g := truthy(src.Get("sign_gloss")); strings.TrimSpace(g) != "" {
		return g
	}
	return truthy(src.Get("nzsl_sign"))
}

// truthy renders a scalar as text, treating null, false, zero and empty
// containers as absent.
func truthy(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		if r.Num == 0 {
			return ""
		}
		return r.Raw
	case gjson.True:
		return "true"
	case gjson.JSON:
		if (r.IsArray() && len(r.Array()) == 0) || (r.IsObject() && len(r.Map()) == 0) {
			return ""
		}
		return r.Raw
	default:
		return ""
	}
}

func containsValue(list []any, v any) bool {
	for _, c := range list {
		if reflect.DeepEqual(c, v) {
			return true
		}
	}
	return false
}

func languageSteps(src gjson.Result, cs ComponentSet) []string {
	if src.IsArray() {
		items := src.Array()
		if len(items) == 3 {
			steps := make([]string, 0, 3)
			for _, it := range items {
				if it.Type != gjson.String || strings.TrimSpace(it.Str) == "" {
					break
				}
				steps = append(steps, it.Str)
			}
			if len(steps) == 3 {
				return steps
			}
		}
	}

	steps := make([]string, 0, 3)
	for _, s := range cs.Slots {
		steps = append(steps, fmt.Sprintf("%s: %s (%s)", s.StepName, s.Component.Label, s.Component.SignGloss))
	}
	return steps
}

func learningPrompts(src gjson.Result, mode prompt.Mode) []string {
	out := make([]string, 0, 3)
	if src.IsArray() {
		for _, it := range src.Array() {
			if len(out) == 3 {
				break
			}
			if it.Type != gjson.String {
				continue
			}
			if p := strings.TrimSpace(it.Str); p != "" {
				out = append(out, p)
			}
		}
	}

	for _, def := range defaultPrompts[mode] {
		if len(out) == 3 {
			break
		}
		if !contains(out, def) {
			out = append(out, def)
		}
	}
	return out
}

func teacherTip(src gjson.Result, theme string, mode prompt.Mode) string {
	if src.Type == gjson.String {
		if tip := strings.TrimSpace(src.Str); tip != "" {
			return tip
		}
	}
	tips := tipsFor(mode)
	return tips[prompt.Hash(strings.ToLower(theme))%uint32(len(tips))]
}

func rawOrNil(r gjson.Result) json.RawMessage {
	if !r.Exists() {
		return nil
	}
	return json.RawMessage(r.Raw)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
