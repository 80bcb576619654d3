package pack

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/tohu/internal/prompt"
)

var irregularVerbs = map[string]string{
	"be":   "is",
	"have": "has",
	"do":   "does",
	"go":   "goes",
	"wash": "washes",
}

// ThirdPerson inflects an English verb for a singular third-person subject.
// Only the first word is inflected, so "go swimming" becomes "goes swimming".
// An empty verb becomes "does".
func ThirdPerson(verb string) string {
	verb = strings.ToLower(strings.TrimSpace(verb))
	if verb == "" {
		return "does"
	}

	head, tail, _ := strings.Cut(verb, " ")
	if tail != "" {
		tail = " " + tail
	}

	if irr, ok := irregularVerbs[head]; ok {
		return irr + tail
	}

	switch {
	case len(head) > 1 && strings.HasSuffix(head, "y") && !strings.ContainsRune("aeiou", rune(head[len(head)-2])):
		return head[:len(head)-1] + "ies" + tail
	case hasAnySuffix(head, "s", "x", "z", "ch", "sh", "o"):
		return head + "es" + tail
	default:
		return head + "s" + tail
	}
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// displayCase sentence-cases a label, except that all-caps labels (usually
// glosses that leaked into the label) are title-cased instead.
func displayCase(label string) string {
	if label == "" {
		return label
	}
	if isAllCaps(label) {
		return cases.Title(language.English).String(label)
	}
	r := []rune(label)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// isAllCaps reports whether s has at least one cased letter and no
// lower-case ones.
func isAllCaps(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// locationPhrase keeps the label's own casing, title-casing only all-caps
// labels, and adds "the" unless the label already starts with it.
func locationPhrase(label, theme string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = theme + " place"
	}
	if isAllCaps(label) {
		label = cases.Title(language.English).String(label)
	}
	if strings.HasPrefix(strings.ToLower(label), "the ") {
		return label
	}
	return "the " + label
}

// Compose builds the bilingual sentence from resolved slots.
//
// Language packs read "The <noun> <verb>s in the <location>." with the three
// glosses space-joined. Counting packs read "There are <number> <theme>."
// with the number and object glosses.
func Compose(cs ComponentSet, theme string) SentencePayload {
	p := SentencePayload{
		Labels:  make(map[string]string, 3),
		Glosses: make(map[string]string, 3),
	}
	for _, s := range cs.Slots {
		p.Labels[s.Role] = s.Component.Label
		p.Glosses[s.Role] = s.Component.SignGloss
	}

	if cs.Mode == prompt.ModeMath {
		number, object := cs.Slots[0].Component, cs.Slots[1].Component
		p.English = "There are " + number.Label + " " + theme + "."
		p.NZSL = number.SignGloss + " " + object.SignGloss
		return p
	}

	noun, verb, loc := cs.Slots[0].Component, cs.Slots[1].Component, cs.Slots[2].Component
	p.English = "The " + displayCase(noun.Label) + " " + ThirdPerson(verb.Label) + " in " + locationPhrase(loc.Label, theme) + "."
	p.NZSL = noun.SignGloss + " " + verb.SignGloss + " " + loc.SignGloss
	return p
}
