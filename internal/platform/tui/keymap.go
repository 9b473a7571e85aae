package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// StoryKeyMap defines the key bindings for a running story.
type StoryKeyMap struct {
	Primary key.Binding
	Replay  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Back, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k StoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Primary, k.Replay},
		{k.Back, k.Quit, k.Help},
	}
}

// DefaultStoryKeyMap returns default key bindings.
func DefaultStoryKeyMap() StoryKeyMap {
	return StoryKeyMap{
		Primary: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "scene action"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay chapter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to story actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys StoryKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultStoryKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() StoryKeyMap {
	return km.keys
}

// MapKey translates a key message to a story action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Primary):
		return core.ActionPrimary
	case key.Matches(msg, km.keys.Replay):
		return core.ActionReplay
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack
	case key.Matches(msg, km.keys.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// MapMouse extracts a primary-button press. Other mouse events are ignored.
func MapMouse(msg tea.MouseMsg) (core.PointerDown, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.PointerDown{}, false
	}
	return core.PointerDown{X: msg.X, Y: msg.Y}, true
}
