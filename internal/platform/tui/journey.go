package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/flow"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/storage"
)

// JourneyKeyMap defines the key bindings for the journey panel.
type JourneyKeyMap struct {
	Advance key.Binding
	Play    key.Binding
	Reset   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JourneyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Play, k.Reset, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JourneyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Advance, k.Play, k.Reset}, {k.Back, k.Quit}}
}

// DefaultJourneyKeyMap returns default key bindings.
func DefaultJourneyKeyMap() JourneyKeyMap {
	return JourneyKeyMap{
		Advance: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "open chapter"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset journey"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PlayChapterMsg asks the hub to open a chapter.
type PlayChapterMsg struct {
	ID string
}

// JourneyModel walks the 17-chapter journey with its pacing gates.
type JourneyModel struct {
	opts     Options
	journey  *flow.Journey
	state    flow.State
	keys     JourneyKeyMap
	help     help.Model
	bar      progress.Model
	width    int
	height   int
	embedded bool
	quitting bool
}

// NewJourneyModel creates a journey panel at the intro stage.
func NewJourneyModel(opts Options) *JourneyModel {
	opts = opts.withDefaults()
	j := flow.NewJourney(registry.Manifest())

	bar := progress.New(
		progress.WithGradient(core.ColorTeal.Hex(), core.ColorMint.Hex()),
		progress.WithoutPercentage(),
	)

	m := &JourneyModel{
		opts:    opts,
		journey: j,
		state:   j.InitialState(),
		keys:    DefaultJourneyKeyMap(),
		help:    help.New(),
		bar:     bar,
	}
	m.resize(opts.Width, opts.Height)
	return m
}

// Embedded makes Back and Play emit messages for the hub.
func (m *JourneyModel) Embedded() *JourneyModel {
	m.embedded = true
	return m
}

func (m *JourneyModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.bar.Width = min(max(width-8, 10), 60)
}

// Init initializes the journey model.
func (m *JourneyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journey panel.
func (m *JourneyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.embedded {
				return m, func() tea.Msg { return BackToHubMsg{} }
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Advance):
			m.apply(flow.EventAdvance)

		case key.Matches(msg, m.keys.Reset):
			m.apply(flow.EventReset)

		case key.Matches(msg, m.keys.Play):
			if id, ok := m.playable(); ok && m.embedded {
				return m, func() tea.Msg { return PlayChapterMsg{ID: id} }
			}
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}

	return m, nil
}

// apply runs an event through the journey and records stage changes.
func (m *JourneyModel) apply(e flow.Event) {
	prev := m.state
	m.state = m.journey.Transition(m.state, e)
	if m.state == prev {
		return
	}

	subject := string(m.state.Stage())
	if m.state.Stage() == flow.StageChapter {
		if ch, ok := registry.Manifest().ChapterByIndex(m.state.ChapterIndex()); ok {
			subject = ch.ID
		}
	}
	m.opts.Logger.Debug("journey moved", "event", e, "stage", m.state.Stage(), "completed", m.state.Completed())
	m.opts.record(storage.KindStageReached, subject)
}

// playable returns the registered chapter at the current stage.
func (m *JourneyModel) playable() (string, bool) {
	if m.state.Stage() != flow.StageChapter {
		return "", false
	}
	ch, ok := registry.Manifest().ChapterByIndex(m.state.ChapterIndex())
	if !ok || !registry.Exists(ch.ID) {
		return "", false
	}
	return ch.ID, true
}

// View renders the journey panel.
func (m *JourneyModel) View() string {
	if m.quitting {
		return ""
	}

	c := m.journey.Contract(m.state)
	inner := min(max(m.width-8, 20), 72)

	var b strings.Builder
	b.WriteString(styles.Kicker.Render(c.Kicker))
	b.WriteString("\n")
	b.WriteString(styles.Title.Width(inner).Render(c.Title))
	b.WriteString("\n\n")
	b.WriteString(styles.Body.Width(inner).Render(c.Body))
	b.WriteString("\n\n")
	b.WriteString(styles.Signal.Width(inner).Render(c.CommercialSignal))
	b.WriteString("\n\n")
	b.WriteString(styles.Action.Render(c.ActionLabel))
	if _, ok := m.playable(); ok && m.embedded {
		b.WriteString("  ")
		b.WriteString(styles.Muted.Render("p: open this chapter"))
	}
	if note, ok := m.gateNote(); ok {
		b.WriteString("\n")
		b.WriteString(styles.Offer.Render(note))
	}
	b.WriteString("\n\n")

	ratio := 0.0
	if total := m.journey.Total(); total > 0 {
		ratio = float64(m.state.Completed()) / float64(total)
	}
	b.WriteString(m.bar.ViewAs(ratio))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(c.ProgressLabel))

	box := styles.Panel.
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, box) +
		"\n" + styles.Help.Render(m.help.View(m.keys))
}

// gateNote describes the pacing gate the journey is waiting on.
func (m *JourneyModel) gateNote() (string, bool) {
	for _, g := range m.journey.Gates() {
		if g.Stage != m.state.Stage() {
			continue
		}
		if m.journey.CanAdvance(m.state) {
			return fmt.Sprintf("Gate open: %d/%d chapters completed", m.state.Completed(), g.Threshold()), true
		}
		return fmt.Sprintf("Gate locked: %d/%d chapters completed", m.state.Completed(), g.Threshold()), true
	}
	return "", false
}

// State returns the current journey state.
func (m *JourneyModel) State() flow.State { return m.state }

// RunJourney runs the journey panel full screen.
func RunJourney(opts Options) error {
	p := tea.NewProgram(NewJourneyModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
