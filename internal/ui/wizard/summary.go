package wizard

import (
	"fmt"
	"strings"

	"github.com/abhisek/tohu/internal/pack"
	"github.com/abhisek/tohu/internal/ui/theme"
)

// Summary renders a finished pack as a card for the terminal. outputs lists
// the files written, skipped the images left out of the handout.
func Summary(p *pack.Pack, outputs, skipped []string) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(p.Theme))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %s · %s", p.Level, p.Mode)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s%s\n", theme.Label.Render("NZSL"), theme.Gloss.Render(p.SentenceNZSL))
	fmt.Fprintf(&b, "%s%s\n\n", theme.Label.Render("English"), theme.Body.Render(p.SentenceEN))

	for _, item := range p.PackContent {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render(fmt.Sprintf("%d.", item.Order)), theme.Body.Render(item.Phase))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Tip: " + p.TeacherTip))

	placeholders := 0
	for _, uri := range p.SceneImages {
		if strings.HasPrefix(uri, "data:image/svg+xml") {
			placeholders++
		}
	}
	if placeholders > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(fmt.Sprintf("%d picture(s) are placeholders", placeholders)))
	}
	if len(skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("Not in handout: " + strings.Join(skipped, ", ")))
	}
	for _, out := range outputs {
		b.WriteString("\n")
		b.WriteString(theme.Done.Render("✓ ") + theme.Body.Render(out))
	}

	return theme.Card.Render(b.String())
}
