// Package tui provides the Bubble Tea integration for the chapters platform.
// It hosts the choreography engine's frame loop, maps mouse and keyboard
// input, and renders stories, the journey panel and the chapter hub.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
)

// owners numbers frame hosts and stories so messages outliving their
// owner are never delivered to a successor.
var owners atomic.Uint64

func nextOwner() uint64 {
	return owners.Add(1)
}

// FrameMsg delivers one requested engine frame.
type FrameMsg struct {
	Host uint64
	ID   choreo.FrameID
	At   time.Time
}

// AdvanceMsg delivers a scheduled scene advance.
type AdvanceMsg struct {
	Story uint64
	Token uint64
}

// frameCmd returns a Bubble Tea command that delivers frame id after interval.
func frameCmd(host uint64, id choreo.FrameID, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Host: host, ID: id, At: t}
	})
}

// advanceCmd delivers token after delay.
func advanceCmd(story, token uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return AdvanceMsg{Story: story, Token: token}
	})
}
