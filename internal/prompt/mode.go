package prompt

import "strings"

// Mode selects which semantic-component triple a pack is built around.
type Mode string

const (
	// ModeLanguage builds noun / verb / location packs.
	ModeLanguage Mode = "language"

	// ModeMath builds number / object / setting counting packs.
	ModeMath Mode = "math"
)

// ModeFor returns ModeMath only for the math subject's name_the_number
// activity. Everything else, including other math activities, is language.
func ModeFor(subject, activity string) Mode {
	if strings.EqualFold(strings.TrimSpace(subject), "math") &&
		strings.EqualFold(strings.TrimSpace(activity), "name_the_number") {
		return ModeMath
	}
	return ModeLanguage
}

// Params are the teacher-supplied inputs a pack is generated from.
type Params struct {
	Theme    string
	Level    string
	Keywords string
	Subject  string
	Activity string
}

// Mode reports the pack mode for p.
func (p Params) Mode() Mode {
	return ModeFor(p.Subject, p.Activity)
}
