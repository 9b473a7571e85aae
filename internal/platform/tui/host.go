package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
)

// teaHost runs engine frames on the Bubble Tea event loop. Requested frames
// become tea.Tick commands collected by drain; FrameMsg delivery and resize
// notifications happen inside Update.
type teaHost struct {
	owner    uint64
	interval time.Duration
	cols     int
	rows     int

	nextFrame choreo.FrameID
	frames    map[choreo.FrameID]choreo.FrameFunc
	last      time.Time

	nextListener int
	listeners    map[int]func(cols, rows int)

	cmds []tea.Cmd
}

func newTeaHost(fps, cols, rows int) *teaHost {
	if fps <= 0 {
		fps = 30
	}
	return &teaHost{
		owner:     nextOwner(),
		interval:  time.Second / time.Duration(fps),
		cols:      cols,
		rows:      rows,
		frames:    make(map[choreo.FrameID]choreo.FrameFunc),
		listeners: make(map[int]func(int, int)),
	}
}

func (h *teaHost) RequestFrame(fn choreo.FrameFunc) choreo.FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	h.cmds = append(h.cmds, frameCmd(h.owner, h.nextFrame, h.interval))
	return h.nextFrame
}

func (h *teaHost) CancelFrame(id choreo.FrameID) {
	delete(h.frames, id)
}

func (h *teaHost) OnResize(fn func(cols, rows int)) func() {
	h.nextListener++
	id := h.nextListener
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

func (h *teaHost) Size() (int, int) {
	return h.cols, h.rows
}

// deliver runs the frame named by msg. Cancelled, unknown and foreign
// frames are dropped.
func (h *teaHost) deliver(msg FrameMsg) {
	if msg.Host != h.owner {
		return
	}
	fn, ok := h.frames[msg.ID]
	if !ok {
		return
	}
	delete(h.frames, msg.ID)

	dt := h.interval
	if !h.last.IsZero() && msg.At.After(h.last) {
		dt = msg.At.Sub(h.last)
	}
	// Clamp stalls such as a suspended terminal.
	if dt > 250*time.Millisecond {
		dt = 250 * time.Millisecond
	}
	h.last = msg.At
	fn(dt)
}

// resize updates the viewport and notifies listeners.
func (h *teaHost) resize(cols, rows int) {
	if cols == h.cols && rows == h.rows {
		return
	}
	h.cols, h.rows = cols, rows
	for _, fn := range h.listeners {
		fn(cols, rows)
	}
}

// drain returns the commands for frames requested since the last drain.
func (h *teaHost) drain() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	cmds := h.cmds
	h.cmds = nil
	return tea.Batch(cmds...)
}

// pending reports the number of live frame requests.
func (h *teaHost) pending() int {
	return len(h.frames)
}
