package core

// Action represents a semantic story action, abstracted from physical key presses.
// This allows stories to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionPrimary        // Enter, Space - fallback for the scene hotspot
	ActionReplay         // R - replay the chapter from its first scene
	ActionBack           // B, Escape - back to the hub
	ActionQuit           // Q, Ctrl+C - exit the session
	ActionHelp           // ? - toggle full key help
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrimary:
		return "Primary"
	case ActionReplay:
		return "Replay"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// PointerDown is a primary-button press at a cell position.
type PointerDown struct {
	X, Y int
}
