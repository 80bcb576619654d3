// Package wizard is the interactive front end of the generate command: it
// asks for a theme, shows progress while the pack is built, and reports the
// outcome.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tohu/internal/pack"
	"github.com/abhisek/tohu/internal/ui/theme"
)

// GenerateFunc builds a pack for in.
type GenerateFunc func(ctx context.Context, in pack.Input) (*pack.Pack, error)

// ErrCancelled is returned when the user quits before a pack is built.
var ErrCancelled = errors.New("cancelled")

type stage int

const (
	stageTheme stage = iota
	stageWorking
	stageDone
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg time.Time

type packDoneMsg struct {
	pack *pack.Pack
	err  error
}

// Model is the Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	gen    GenerateFunc

	in      pack.Input
	input   textinput.Model
	stage   stage
	frame   int
	started time.Time
	invalid string

	pack *pack.Pack
	err  error
}

// New returns a wizard that starts from in. When in already has a theme the
// prompt is pre-filled.
func New(ctx context.Context, in pack.Input, gen GenerateFunc) Model {
	ctx, cancel := context.WithCancel(ctx)
	ti := textinput.New()
	ti.Placeholder = "e.g. Birds, Kai time, At the beach"
	ti.CharLimit = 80
	ti.SetValue(in.Theme)
	ti.Focus()

	return Model{ctx: ctx, cancel: cancel, gen: gen, in: in, input: ti}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancel()
			if m.stage != stageDone {
				m.err = ErrCancelled
			}
			return m, tea.Quit
		case "enter":
			if m.stage == stageTheme {
				return m.submit()
			}
		}

	case spinnerTickMsg:
		if m.stage != stageWorking {
			return m, nil
		}
		m.frame++
		return m, tick()

	case packDoneMsg:
		m.stage = stageDone
		m.pack, m.err = msg.pack, msg.err
		return m, tea.Quit
	}

	if m.stage == stageTheme {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.input.Value())
	if utf8.RuneCountInString(name) < 2 {
		m.invalid = "Please enter a theme of at least 2 characters."
		return m, nil
	}
	m.invalid = ""
	m.in.Theme = name
	m.stage = stageWorking
	m.started = time.Now()

	return m, tea.Batch(m.build, tick())
}

// build runs the generator; it executes off the update loop as a command.
func (m Model) build() tea.Msg {
	p, err := m.gen(m.ctx, m.in)
	return packDoneMsg{pack: p, err: err}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Tohu · NZSL learning pack"))
	b.WriteString("\n\n")

	switch m.stage {
	case stageTheme:
		b.WriteString(theme.Body.Render("What is the theme?"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.invalid != "" {
			b.WriteString(theme.Failed.Render(m.invalid))
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render("Enter to generate · Esc to quit"))

	case stageWorking:
		frame := spinnerFrames[m.frame%len(spinnerFrames)]
		fmt.Fprintf(&b, "%s %s", theme.Warning.Render(frame),
			theme.Body.Render(fmt.Sprintf("Building the %q pack: story, signs and pictures…", m.in.Theme)))
		if !m.started.IsZero() {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  %ds", int(time.Since(m.started).Seconds()))))
		}

	case stageDone:
		if m.err != nil {
			b.WriteString(theme.Failed.Render(pack.Detail(m.err)))
		} else {
			b.WriteString(theme.Done.Render("Pack ready."))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Result reports the outcome once the program has exited.
func (m Model) Result() (*pack.Pack, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.pack == nil {
		return nil, ErrCancelled
	}
	return m.pack, nil
}

// Run shows the wizard until a pack is built or the user quits.
func Run(ctx context.Context, in pack.Input, gen GenerateFunc) (*pack.Pack, error) {
	final, err := tea.NewProgram(New(ctx, in, gen)).Run()
	if err != nil {
		return nil, fmt.Errorf("run wizard: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected wizard model %T", final)
	}
	m.cancel()
	return m.Result()
}
