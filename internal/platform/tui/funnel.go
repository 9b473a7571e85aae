package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/storage"
)

// Funnel layout constants
const (
	maxRecent = 100 // Max recent milestones to load
)

// FunnelView selects what the funnel table shows.
type FunnelView int

const (
	FunnelCounts FunnelView = iota
	FunnelRecent
)

// FunnelKeyMap defines the key bindings for the funnel screen.
type FunnelKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FunnelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k FunnelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultFunnelKeyMap returns default key bindings.
func DefaultFunnelKeyMap() FunnelKeyMap {
	return FunnelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "counts/recent"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "refresh"),
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

// FunnelModel shows recorded milestones: counts per kind and subject, or
// the most recent entries.
type FunnelModel struct {
	store    *storage.Store
	view     FunnelView
	counts   []storage.MilestoneCount
	recent   []storage.Milestone
	loadErr  error
	table    table.Model
	help     help.Model
	keys     FunnelKeyMap
	width    int
	height   int
	embedded bool
	quitting bool
}

// NewFunnelModel creates a new funnel model.
func NewFunnelModel(store *storage.Store, width, height int) *FunnelModel {
	h := help.New()
	h.ShowAll = false

	m := &FunnelModel{
		store:  store,
		keys:   DefaultFunnelKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Embedded makes Back emit BackToHubMsg instead of quitting.
func (m *FunnelModel) Embedded() *FunnelModel {
	m.embedded = true
	return m
}

// columns returns the columns of the current view.
func (m *FunnelModel) columns() []table.Column {
	tableWidth := max(m.width-6, 40)
	if m.view == FunnelRecent {
		return []table.Column{
			{Title: "When", Width: 14},
			{Title: "Kind", Width: 18},
			{Title: "Subject", Width: max(tableWidth-48, 12)},
			{Title: "Session", Width: 16},
		}
	}
	return []table.Column{
		{Title: "Kind", Width: 18},
		{Title: "Subject", Width: max(tableWidth-28, 12)},
		{Title: "Count", Width: 8},
	}
}

// createTable creates a new table for the current view.
func (m *FunnelModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(color(core.ColorInk)).
		Background(color(core.ColorDeepSea)).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads milestones for the current view.
func (m *FunnelModel) load() {
	m.counts, m.recent, m.loadErr = nil, nil, nil
	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if m.view == FunnelRecent {
			m.recent, m.loadErr = m.store.Recent(ctx, maxRecent)
		} else {
			m.counts, m.loadErr = m.store.MilestoneCounts(ctx)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded milestones.
func (m *FunnelModel) updateTableRows() {
	var rows []table.Row
	if m.view == FunnelRecent {
		rows = make([]table.Row, len(m.recent))
		for i, r := range m.recent {
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				string(r.Kind),
				r.Subject,
				r.Session,
			}
		}
	} else {
		rows = make([]table.Row, len(m.counts))
		for i, c := range m.counts {
			rows[i] = table.Row{string(c.Kind), c.Subject, fmt.Sprintf("%d", c.Count)}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the funnel model.
func (m *FunnelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the funnel.
func (m *FunnelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

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

		case key.Matches(msg, m.keys.NextView):
			if m.view == FunnelCounts {
				m.view = FunnelRecent
			} else {
				m.view = FunnelCounts
			}
			m.table = m.createTable()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the funnel.
func (m *FunnelModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "FUNNEL - milestone counts"
	if m.view == FunnelRecent {
		title = "FUNNEL - recent milestones"
	}
	b.WriteString(styles.Title.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(styles.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m *FunnelModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Milestone storage is disabled.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read milestones:\n" + m.loadErr.Error())
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("No milestones recorded yet.\nOpen a chapter to start the funnel!")
	}
	return m.table.View()
}

// Rows returns the rows currently shown.
func (m *FunnelModel) Rows() []table.Row {
	return m.table.Rows()
}

// RunFunnel runs the funnel screen full screen.
func RunFunnel(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewFunnelModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
