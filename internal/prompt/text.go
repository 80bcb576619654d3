package prompt

import (
	"fmt"
	"strings"
)

// UserMessage is the single user turn sent with the text instruction.
const UserMessage = "Create the learning pack now."

const textPreamble = `You are an expert NZSL (New Zealand Sign Language) early childhood curriculum developer in Aotearoa New Zealand.

You create engaging, developmentally appropriate learning experiences for 3-5 year olds that integrate:
- NZSL language development
- Te Whāriki (NZ ECE curriculum) principles
- Deaf culture awareness and celebration
- Play-based, child-centred learning

TASK: Create a learning pack with an NZSL story prompt, cross-curricular activities and the semantic components of one simple scene.

Return ONLY valid JSON (no markdown, no explanations) with this EXACT structure:
`

const storyPromptShape = `  "nzsl_story_prompt": {
    "key_signs": ["SIGN1", "SIGN2", "SIGN3"],
    "classifiers": ["CL:B (description)"],
    "facial_expressions": ["Happy", "Curious"],
    "story_outline": ["Step 1", "Step 2", "Step 3"]
  },
`

const activityWebShape = `  "activity_web": [
    {"category": "Art", "description": "creative activity"},
    {"category": "NZSL Language", "description": "sign language activity"},
    {"category": "Maths", "description": "numeracy activity"},
    {"category": "Deaf Culture", "description": "cultural awareness activity"}
  ],
`

const languageShape = `  "story_scaffold": {
    "theme": %q,
    "roles": [
      {"role": "AGENT", "gloss": "Character", "nzsl": "SIGN"},
      {"role": "ACTION", "gloss": "Action", "nzsl": "SIGN"},
      {"role": "LOCATION", "gloss": "Place", "nzsl": "SIGN"}
    ],
    "frames": [
      {"id": 1, "nvpair": ["AGENT", "LOCATION"], "caption_en": "Sentence.", "gloss": "SIGN SIGN"},
      {"id": 2, "nvpair": ["AGENT", "ACTION"], "caption_en": "Sentence.", "gloss": "SIGN SIGN"}
    ]
  },
  "semantic_components": [
    {"type": "agent", "label": "Character", "sign_gloss": "SIGN", "semantic_role": "Who"},
    {"type": "action", "label": "Action", "sign_gloss": "SIGN", "semantic_role": "What"},
    {"type": "setting", "label": "Place", "sign_gloss": "SIGN", "semantic_role": "Where"}
  ],
  "language_steps": [
    "Noun: NAME the key person or object (use AGENT/OBJECT)",
    "Verb: TELL the action that happens (use ACTION)",
    "Location: SHOW where it happens (use LOCATION/SETTING)"
  ],
  "learning_prompts": [
    "Name the noun first.",
    "Add the verb next.",
    "Finish with where it happens."
  ],
  "teacher_tip": "One short, practical tip for the kaiako."
`

const mathShape = `  "math_details": {
    "number": 3,
    "number_word": "three",
    "object": "Object",
    "counting_prompt": "How many can you count?"
  },
  "semantic_components": [
    {"type": "number", "label": "3", "sign_gloss": "THREE", "semantic_role": "How many"},
    {"type": "object", "label": "Object", "sign_gloss": "SIGN", "semantic_role": "What we count"},
    {"type": "setting", "label": "Place", "sign_gloss": "SIGN", "semantic_role": "Where"}
  ],
  "language_steps": [
    "Number: SAY how many there are (use NUMBER)",
    "Object: NAME what we are counting (use OBJECT)",
    "Setting: SHOW where they are (use SETTING)"
  ],
  "learning_prompts": [
    "Say the number first.",
    "Name the object next.",
    "Count them together."
  ],
  "teacher_tip": "One short, practical tip for the kaiako."
`

const languageRules = `RULES:
- Use authentic NZSL glosses in ALL CAPS (3-6 key signs, at least one feeling sign)
- semantic_components must contain one "agent" (or "object"), one "action" and one "setting" (or "location")
- Each component label is a single everyday word or short phrase tied to the theme
- The action label is a plain verb ("fly", "swim"), not an -ing form
- language_steps must be exactly 3 strings ordered: Noun, Verb, Location (each includes theme-specific words)
- activity_web has exactly 4 activities: Art, NZSL Language, Maths, Deaf Culture
- Keep it simple, joyful, age-appropriate (3-5 years)
- NZSL-first prompts (not signed English)
- Use Aotearoa NZ context where relevant (native birds, local environments, whānau life)
`

const mathRules = `RULES:
- Use authentic NZSL glosses in ALL CAPS, including the NZSL number sign
- semantic_components must contain one "number", one "object" and one "setting"
- The number is a whole number from 1 to 10 that young children can count
- The object label is what is being counted, tied to the theme
- language_steps must be exactly 3 strings ordered: Number, Object, Setting
- activity_web has exactly 4 activities: Art, NZSL Language, Maths, Deaf Culture
- Keep it concrete and hands-on; counting real or pictured objects
- Use Aotearoa NZ context where relevant (native birds, local environments, whānau life)
`

// Text renders the system instruction for the text model. The required
// component triple and extra sections depend on p.Mode().
func Text(p Params) string {
	var b strings.Builder

	b.WriteString(textPreamble)
	b.WriteString("\n{\n")
	b.WriteString(storyPromptShape)
	b.WriteString(activityWebShape)
	if p.Mode() == ModeMath {
		b.WriteString(mathShape)
	} else {
		fmt.Fprintf(&b, languageShape, p.Theme)
	}
	b.WriteString("}\n\n")

	if p.Mode() == ModeMath {
		b.WriteString(mathRules)
	} else {
		b.WriteString(languageRules)
	}

	fmt.Fprintf(&b, "\nTHEME: %q\n", p.Theme)
	fmt.Fprintf(&b, "LEVEL: %q\n", orDefault(p.Level, "ECE"))
	fmt.Fprintf(&b, "SUBJECT: %q\n", orDefault(p.Subject, "language"))
	if p.Activity != "" {
		fmt.Fprintf(&b, "ACTIVITY: %q\n", p.Activity)
	}
	fmt.Fprintf(&b, "ADDITIONAL CONTEXT: %q\n", orDefault(p.Keywords, "General early learning context"))

	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
