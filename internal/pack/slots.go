package pack

import "github.com/abhisek/tohu/internal/prompt"

// Slot is one of the three canonical semantic positions of a pack.
type Slot struct {
	// Role names the slot in image prompts, pack content and the sentence
	// payload ("noun", "verb", ...).
	Role string

	// ImageKey is the slot's key in Pack.SceneImages.
	ImageKey string

	// StepName prefixes the synthesized language step.
	StepName string

	// Phase is the display name of the slot's pack-content step.
	Phase string

	// Types lists component types that can fill the slot, highest priority
	// first. The first entry names synthesized fallbacks.
	Types []string

	// Place marks setting-like slots, whose fallback label is "<theme> place".
	Place bool
}

var languageSlots = [3]Slot{
	{Role: "noun", ImageKey: "object", StepName: "Noun", Phase: "Noun Focus", Types: []string{"agent", "object"}},
	{Role: "verb", ImageKey: "action", StepName: "Verb", Phase: "Verb Focus", Types: []string{"action"}},
	{Role: "location", ImageKey: "setting", StepName: "Location", Phase: "Location Focus", Types: []string{"location", "setting"}, Place: true},
}

var mathSlots = [3]Slot{
	{Role: "number", ImageKey: "number", StepName: "Number", Phase: "Number Focus", Types: []string{"number"}},
	{Role: "object", ImageKey: "object", StepName: "Object", Phase: "Object Focus", Types: []string{"object"}},
	{Role: "setting", ImageKey: "setting", StepName: "Setting", Phase: "Setting Focus", Types: []string{"setting"}, Place: true},
}

// SlotsFor returns the canonical slots for mode, in sentence order.
func SlotsFor(mode prompt.Mode) [3]Slot {
	if mode == prompt.ModeMath {
		return mathSlots
	}
	return languageSlots
}

// Scene image key and the two whole-scene steps.
const (
	SceneKey        = "scene"
	PhaseWholeScene = "Whole Scene"
	PhaseWholeAgain = "Whole Again"
	RoleSceneIntro  = "scene_intro"
	RoleSceneReview = "scene_review"
)

var defaultPrompts = map[prompt.Mode][]string{
	prompt.ModeLanguage: {"Name the noun first.", "Add the verb next.", "Finish with where it happens."},
	prompt.ModeMath:     {"Say the number first.", "Name the object next.", "Count them together."},
}

var teacherTips = []string{
	"Sign slowly and keep your face expressive; facial grammar carries meaning in NZSL.",
	"Point to each picture as you sign it so tamariki link the sign to the thing.",
	"Invite tamariki to copy one sign at a time before putting the sentence together.",
	"Get down to the children's eye level and make sure everyone can see your hands.",
	"Repeat the sentence across the day, at kai time, outside and at mat time.",
	"Celebrate every attempt; approximations are part of learning a new language.",
	"Use the pictures as a visual cue and let children lead by pointing.",
	"Share the signs with whānau so learning carries on at home.",
}

const mathTip = "Count real objects alongside the picture, touching each one as you sign the number."

// tipsFor returns the tip list for mode. Math packs get one extra counting tip.
func tipsFor(mode prompt.Mode) []string {
	if mode == prompt.ModeMath {
		return append(append([]string(nil), teacherTips...), mathTip)
	}
	return teacherTips
}
