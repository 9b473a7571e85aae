package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/registry"
)

// HubKeyMap defines the key bindings for the chapter hub.
type HubKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Play    key.Binding
	Journey key.Binding
	Funnel  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HubKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Journey, k.Funnel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HubKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Play}, {k.Journey, k.Funnel, k.Quit}}
}

// DefaultHubKeyMap returns default key bindings.
func DefaultHubKeyMap() HubKeyMap {
	return HubKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open chapter"),
		),
		Journey: key.NewBinding(
			key.WithKeys("J", "tab"),
			key.WithHelp("tab", "journey"),
		),
		Funnel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "funnel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type hubScreen int

const (
	screenHub hubScreen = iota
	screenStory
	screenJourney
	screenFunnel
)

// HubModel is the top-level model: the chapter list plus the story, journey
// and funnel screens it opens. Each hub owns its own screens, so SSH
// sessions never share state.
type HubModel struct {
	opts    Options
	entries []registry.Entry
	table   table.Model
	keys    HubKeyMap
	help    help.Model
	width   int
	height  int

	screen   hubScreen
	returnTo hubScreen
	story    *StoryModel
	journey  *JourneyModel
	funnel   *FunnelModel
	quitting bool
}

// NewHubModel creates a hub over every registered chapter.
func NewHubModel(opts Options) *HubModel {
	opts = opts.withDefaults()
	m := &HubModel{
		opts:    opts,
		entries: registry.List(),
		keys:    DefaultHubKeyMap(),
		help:    help.New(),
		width:   opts.Width,
		height:  opts.Height,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the chapter table. Rows follow manifest order, so
// chapters of one part stay together.
func (m *HubModel) createTable() table.Model {
	titleWidth := max(m.width-44, 20)
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Part", Width: 22},
		{Title: "Chapter", Width: titleWidth},
		{Title: "Status", Width: 11},
	}

	rows := make([]table.Row, len(m.entries))
	lastPart := ""
	for i, e := range m.entries {
		part := e.PartLabel
		if part == lastPart {
			part = ""
		}
		lastPart = e.PartLabel
		rows[i] = table.Row{fmt.Sprintf("%d", e.Index), part, e.Title, string(e.Status)}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-7, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(color(core.ColorMuted)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(color(core.ColorDeepSea)).
		Background(color(core.ColorMint)).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the hub model.
func (m *HubModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the hub and routes the rest to the open
// screen.
func (m *HubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		return m, m.forward(msg)

	case BackToHubMsg:
		m.closeStory()
		if m.screen == screenStory && m.returnTo == screenJourney {
			m.screen = screenJourney
		} else {
			m.screen = screenHub
		}
		m.returnTo = screenHub
		return m, nil

	case PlayChapterMsg:
		return m, m.open(msg.ID, m.screen)

	case FrameMsg, AdvanceMsg:
		if m.screen != screenStory {
			return m, nil
		}
		return m, m.forward(msg)
	}

	if m.screen != screenHub {
		return m, m.forward(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play):
			if e, ok := m.Selected(); ok {
				return m, m.open(e.ID, screenHub)
			}
			return m, nil

		case key.Matches(msg, m.keys.Journey):
			if m.journey == nil {
				m.journey = NewJourneyModel(m.childOptions()).Embedded()
			}
			m.screen = screenJourney
			return m, m.journey.Init()

		case key.Matches(msg, m.keys.Funnel):
			m.funnel = NewFunnelModel(m.opts.Store, m.width, m.height).Embedded()
			m.screen = screenFunnel
			return m, m.funnel.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// forward passes msg to the open screen.
func (m *HubModel) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case screenStory:
		if m.story != nil {
			_, cmd = m.story.Update(msg)
		}
	case screenJourney:
		if m.journey != nil {
			_, cmd = m.journey.Update(msg)
		}
	case screenFunnel:
		if m.funnel != nil {
			_, cmd = m.funnel.Update(msg)
		}
	}
	if m.story != nil && m.story.IsQuitting() {
		m.closeStory()
	}
	return cmd
}

// open starts a story for the chapter id, replacing any open story.
func (m *HubModel) open(id string, from hubScreen) tea.Cmd {
	entry, ok := registry.Lookup(id)
	if !ok {
		m.opts.Logger.Warn("chapter not registered", "chapter", id)
		return nil
	}
	spec, err := registry.Create(id)
	if err != nil {
		m.opts.Logger.Warn("chapter unavailable", "chapter", id, "error", err)
		return nil
	}

	m.closeStory()
	m.story = NewStoryModel(entry, spec, m.childOptions()).Embedded()
	m.returnTo = from
	m.screen = screenStory
	return m.story.Init()
}

func (m *HubModel) closeStory() {
	if m.story != nil {
		m.story.Close()
		m.story = nil
	}
}

func (m *HubModel) childOptions() Options {
	o := m.opts
	o.Width, o.Height = m.width, m.height
	return o
}

// Close releases the open story, if any.
func (m *HubModel) Close() {
	m.closeStory()
}

// View renders the hub or the open screen.
func (m *HubModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenStory:
		if m.story != nil {
			return m.story.View()
		}
	case screenJourney:
		if m.journey != nil {
			return m.journey.View()
		}
	case screenFunnel:
		if m.funnel != nil {
			return m.funnel.View()
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.Kicker.Render(centerText("C H A P T E R S", m.width)))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(centerText("Select a chapter", m.width)))
	b.WriteString("\n\n")

	b.WriteString(styles.Panel.Padding(0, 1).Render(m.table.View()))
	b.WriteString("\n")

	b.WriteString(styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the highlighted chapter.
func (m *HubModel) Selected() (registry.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return registry.Entry{}, false
	}
	return m.entries[i], true
}

// Story returns the open story, or nil.
func (m *HubModel) Story() *StoryModel { return m.story }

// IsQuitting returns true if user requested to quit.
func (m *HubModel) IsQuitting() bool { return m.quitting }

// RunHub runs the hub full screen.
func RunHub(opts Options) error {
	model := NewHubModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
