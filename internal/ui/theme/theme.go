package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette drawn from Aotearoa: pounamu, kōwhai, pōhutukawa.
var (
	Primary   = lipgloss.Color("#2F855A") // Pounamu green
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F6C90E") // Kōwhai yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#E53E3E") // Pōhutukawa red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Gloss renders NZSL glosses.
	Gloss = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Width(10)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)
