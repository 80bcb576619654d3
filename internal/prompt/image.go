package prompt

import (
	"fmt"
	"strings"
)

// RoleScene is the image role for the integrated whole-scene picture.
const RoleScene = "scene"

const imageBase = "Make the meaning obvious for tamariki aged 3-5. " +
	"Keep the style calm, inclusive, and storybook simple. No text. " +
	"Ground everything in everyday Aotearoa New Zealand experiences (local flora/fauna, classrooms, whānau life) so it feels familiar."

type imageGuide struct {
	clarity  string
	controls string
}

var (
	guideObject = imageGuide{
		clarity:  "Show the main thing we are naming by itself so learners can clearly see what it is.",
		controls: "Single isolated subject, neutral background, clear shapes. Keep proportions child-friendly and recognisable.",
	}
	guideAction = imageGuide{
		clarity:  "Show the same subject performing the action so learners understand what it does.",
		controls: "Same subject in motion, clean neutral background. Freeze a mid-action pose that reads instantly.",
	}
	guideSetting = imageGuide{
		clarity:  "Show where it happens without changing who the character is.",
		controls: "Environment cues only, soft warm background with depth. Use real Aotearoa details (e.g. pōhutukawa, kiwiana).",
	}
	guideNumber = imageGuide{
		clarity:  "Show exactly that many of the same simple thing so learners can count them.",
		controls: "Evenly spaced identical items on a neutral background, nothing else in frame.",
	}
	guideScene = imageGuide{
		clarity:  "Bring the subject, action, and place together in one picture that tells a short story.",
		controls: "Integrated composition. Keep characters consistent with the single-asset pictures and interactions clear.",
	}
)

func guideFor(role string) imageGuide {
	switch strings.ToLower(role) {
	case "verb", "action":
		return guideAction
	case "location", "setting":
		return guideSetting
	case "number":
		return guideNumber
	case RoleScene:
		return guideScene
	default:
		return guideObject
	}
}

// Image renders the instruction for one image. Component roles ask for a
// single isolated asset; RoleScene asks for an integrated composition of
// label, which callers pass as the comma-joined component labels. Every image
// in a pack carries the same seed.
func Image(theme, role, label, gloss string, seed int32) string {
	g := guideFor(role)

	var detail string
	if strings.EqualFold(role, RoleScene) {
		detail = fmt.Sprintf("Include: %s. Keep WHO/WHAT/WHERE clear and welcoming.", label)
		if gloss != "" {
			detail += fmt.Sprintf(" NZSL sentence: %s.", gloss)
		}
	} else {
		detail = fmt.Sprintf("%s (NZSL: %s) clearly visible.", label, gloss)
	}

	var b strings.Builder
	b.WriteString(imageBase)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Theme: %s\n", theme)
	fmt.Fprintf(&b, "Role: %s\n", strings.ToUpper(role))
	fmt.Fprintf(&b, "Semantic clarity: %s\n", g.clarity)
	fmt.Fprintf(&b, "Instructions: %s %s\n", g.controls, detail)
	b.WriteString("Image format: 1024x1024 PNG\n")
	fmt.Fprintf(&b, "Seed: %d (keep style and palette consistent across the set)", seed)
	return b.String()
}
