package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/storage"
	"github.com/vovakirdan/tui-chapters/internal/story"
)

// Story layout constants
const (
	minWidthForPanel = 80 // Minimum width to show the side panel
	panelWidth       = 34 // Width of the side panel, border included
	compactPanelRows = 4  // Rows under the viewport when the panel is hidden
)

// BackToHubMsg is emitted by an embedded story when the reader leaves it.
type BackToHubMsg struct{}

// StoryModel is the Bubble Tea model for one running chapter. It owns the
// engine and the scene session and disposes both when the reader leaves.
type StoryModel struct {
	id      uint64
	opts    Options
	entry   registry.Entry
	session *story.Session
	engine  *choreo.Engine
	host    *teaHost
	screen  *core.Screen
	keys    *KeyMapper
	help    help.Model

	width     int
	height    int
	viewport  core.Rect
	showPanel bool

	embedded  bool
	started   bool
	closed    bool
	quitting  bool
	completed bool // chapter_completed recorded for the current run

	cmds []tea.Cmd
}

// NewStoryModel creates a story for a registered chapter. The configured
// delay for the chapter's status overrides the chapter default.
func NewStoryModel(entry registry.Entry, spec story.Spec, opts Options) *StoryModel {
	opts = opts.withDefaults()
	spec.Delay = opts.delayFor(entry.Status, spec.Delay)
	if opts.Scenes != nil {
		spec.Scenes = opts.Scenes
	}

	h := help.New()
	h.ShowAll = false

	m := &StoryModel{
		id:      nextOwner(),
		opts:    opts,
		entry:   entry,
		session: story.NewSession(spec),
		keys:    NewKeyMapper(),
		help:    h,
	}
	m.layout(opts.Width, opts.Height)
	m.host = newTeaHost(opts.Settings.FPS, m.viewport.W, m.viewport.H)
	m.screen = core.NewScreen(m.viewport.W, m.viewport.H)
	m.engine = choreo.New(spec.Scenes, spec.Themes, opts.engineOptions())
	m.engine.SetScene(m.session.Index(), m.session.RequiresInteraction())
	return m
}

// Embedded makes Back emit BackToHubMsg instead of quitting.
func (m *StoryModel) Embedded() *StoryModel {
	m.embedded = true
	return m
}

// layout splits the terminal into the engine viewport, the panel and the
// help row.
func (m *StoryModel) layout(width, height int) {
	m.width, m.height = width, height
	m.showPanel = width >= minWidthForPanel

	rows := height - 1
	cols := width
	if m.showPanel {
		cols = width - panelWidth
	} else {
		rows -= compactPanelRows
	}
	m.viewport = core.NewRect(0, 0, max(cols, 1), max(rows, 1))
	m.help.Width = width
}

// Init starts the engine and its frame loop.
func (m *StoryModel) Init() tea.Cmd {
	if !m.started {
		m.started = true
		if err := m.engine.Start(m.host, m.onHotspot); err != nil {
			m.opts.Logger.Error("engine did not start", "chapter", m.entry.ID, "error", err)
		}
		m.opts.Logger.Info("chapter started", "chapter", m.entry.ID, "status", m.entry.Status)
		m.opts.record(storage.KindChapterStarted, m.entry.ID)
	}
	return m.flush()
}

// Update handles messages for the story.
func (m *StoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if p, ok := MapMouse(msg); ok && m.viewport.Contains(p.X, p.Y) {
			m.engine.PointerDown(p.X-m.viewport.X, p.Y-m.viewport.Y)
		}

	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.screen.Resize(m.viewport.W, m.viewport.H)
		m.host.resize(m.viewport.W, m.viewport.H)

	case FrameMsg:
		m.host.deliver(msg)

	case AdvanceMsg:
		if msg.Story == m.id {
			m.completeAdvance(msg.Token)
		}
	}

	return m, m.flush()
}

// handleKey processes keyboard input.
func (m *StoryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.Close()
		if m.embedded {
			return m, func() tea.Msg { return BackToHubMsg{} }
		}
		m.quitting = true
		return m, tea.Quit

	case core.ActionPrimary:
		replaying := m.session.Done() && m.session.InteractionDone()
		satisfied := m.session.InteractionDone()
		pending, ok := m.session.Fallback()
		switch {
		case ok:
			m.schedule(pending)
		case replaying:
			m.completed = false
			m.engine.Rearm()
		case !satisfied && m.session.InteractionDone():
			m.opts.Chime.Play()
		}
		m.sync()

	case core.ActionReplay:
		m.session.Replay()
		m.completed = false
		m.engine.Rearm()
		m.sync()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, m.flush()
}

// onHotspot is the engine's activation callback. It runs inside
// PointerDown on the event loop.
func (m *StoryModel) onHotspot() {
	satisfied := m.session.InteractionDone()
	pending, ok := m.session.Activate()
	if ok {
		m.schedule(pending)
	} else if !satisfied && m.session.InteractionDone() {
		m.opts.Chime.Play()
	}
	m.sync()
}

// schedule queues a scene advance.
func (m *StoryModel) schedule(p story.Pending) {
	m.opts.Chime.Play()
	m.cmds = append(m.cmds, advanceCmd(m.id, p.Token, p.Delay))
}

func (m *StoryModel) completeAdvance(token uint64) {
	if !m.session.Complete(token) {
		return
	}
	m.opts.record(storage.KindSceneReached, m.entry.ID+"/"+m.session.Scene().ID)
	m.sync()
}

// sync pushes the session's scene to the engine and records completion.
func (m *StoryModel) sync() {
	if m.closed {
		return
	}
	m.engine.SetScene(m.session.Index(), m.session.RequiresInteraction())

	if m.session.Done() && m.session.InteractionDone() && !m.completed {
		m.completed = true
		m.opts.Logger.Info("chapter completed", "chapter", m.entry.ID)
		m.opts.record(storage.KindChapterCompleted, m.entry.ID)
		if m.session.OffersVisible() {
			m.opts.record(storage.KindOffersShown, m.entry.ID)
		}
	}
}

func (m *StoryModel) flush() tea.Cmd {
	cmds := append(m.cmds, m.host.drain())
	m.cmds = nil
	return tea.Batch(cmds...)
}

// Close ends the session and releases every engine resource. Advances
// still in flight are dropped when they arrive.
func (m *StoryModel) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.session.Close()
	m.engine.Dispose()
	st := m.engine.Stats()
	m.opts.Logger.Debug("chapter closed", "chapter", m.entry.ID, "scene", m.session.Index(), "textures", st.Textures)
}

// View renders the story.
func (m *StoryModel) View() string {
	if m.quitting || m.closed {
		return ""
	}

	m.engine.Render(m.screen, core.NewRect(0, 0, m.viewport.W, m.viewport.H))
	if m.showPanel {
		progress := m.session.Progress()
		m.screen.DrawTextFG(m.viewport.W-len(progress)-1, m.viewport.H-1, progress, core.ColorMuted)
	}
	canvas := RenderScreen(m.screen)

	var body string
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.renderPanel())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, canvas, m.renderCompactPanel())
	}

	return body + "\n" + styles.Help.Render(m.help.View(m.keys.Keys()))
}

// renderPanel renders the side panel with the current scene's copy.
func (m *StoryModel) renderPanel() string {
	s := m.session
	d := s.Scene()
	inner := panelWidth - 4

	var b strings.Builder
	b.WriteString(styles.Kicker.Render(s.Kicker()))
	b.WriteString("\n")
	b.WriteString(styles.Title.Width(inner).Render(d.Title))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(s.Progress()))
	b.WriteString("\n\n")
	b.WriteString(styles.Body.Width(inner).Render(d.Narrative))
	b.WriteString("\n\n")
	b.WriteString(styles.Action.Render(s.ActionLabel()))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(m.cursorHint()))
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Width(inner).Render(d.Context))
	b.WriteString("\n")
	b.WriteString(styles.Signal.Width(inner).Render(d.Signal))

	if s.OffersVisible() {
		b.WriteString("\n\n")
		for _, o := range s.Spec().Offers {
			b.WriteString(styles.Offer.Render("▸ " + o))
			b.WriteString("\n")
		}
	}
	if notes := s.Spec().Notes; len(notes) > 0 {
		b.WriteString("\n")
		for _, n := range notes {
			b.WriteString(styles.Muted.Width(inner).Render("· " + n))
			b.WriteString("\n")
		}
	}

	return styles.Panel.
		Width(panelWidth-2).
		Height(max(m.viewport.H-2, 1)).
		MaxHeight(m.viewport.H).
		Padding(0, 1).
		Render(b.String())
}

// renderCompactPanel renders the panel for narrow terminals.
func (m *StoryModel) renderCompactPanel() string {
	s := m.session
	lines := []string{
		styles.Kicker.Render(s.Kicker()) + "  " + styles.Muted.Render(s.Progress()),
		styles.Title.Render(s.Scene().Title),
		styles.Action.Render(s.ActionLabel()),
		styles.Muted.Render(m.cursorHint()),
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(lines, "\n"))
}

func (m *StoryModel) cursorHint() string {
	if m.engine.Cursor() == choreo.CursorPointer {
		return "click the marker or press enter"
	}
	if m.session.Done() {
		return fmt.Sprintf("%s complete", m.entry.Title)
	}
	return "advancing..."
}

// Session returns the scene session.
func (m *StoryModel) Session() *story.Session { return m.session }

// Engine returns the choreography engine.
func (m *StoryModel) Engine() *choreo.Engine { return m.engine }

// Viewport returns the engine's area of the terminal.
func (m *StoryModel) Viewport() core.Rect { return m.viewport }

// IsQuitting returns true if user requested to quit.
func (m *StoryModel) IsQuitting() bool { return m.quitting }

// RunStory runs a single chapter full screen.
func RunStory(id string, opts Options) error {
	entry, ok := registry.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", registry.ErrUnknownChapter, id)
	}
	spec, err := registry.Create(id)
	if err != nil {
		return err
	}

	model := NewStoryModel(entry, spec, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
