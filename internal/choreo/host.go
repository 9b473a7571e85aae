package choreo

import (
	"sort"
	"time"
)

// FrameFunc is a frame-loop callback. dt is the real time elapsed since the
// previous frame.
type FrameFunc func(dt time.Duration)

// FrameID identifies a requested frame so it can be cancelled.
type FrameID uint64

// Host is the display loop the engine runs on. All callbacks are delivered
// on the host's single event goroutine.
type Host interface {
	// RequestFrame schedules fn for the next frame. A callback runs once;
	// to keep animating it must request another frame.
	RequestFrame(fn FrameFunc) FrameID
	// CancelFrame drops a pending frame. Unknown ids are ignored.
	CancelFrame(id FrameID)
	// OnResize registers a viewport size listener and returns its remover.
	OnResize(fn func(cols, rows int)) (remove func())
	// Size returns the current viewport size in cells.
	Size() (cols, rows int)
}

// ManualHost is a Host driven by explicit Step calls. Tests use it to run
// the engine deterministically.
type ManualHost struct {
	cols, rows int

	nextFrame FrameID
	frames    map[FrameID]FrameFunc

	nextListener int
	listeners    map[int]func(cols, rows int)

	// Events records cancellations and listener removals in order.
	Events []string
}

// NewManualHost creates a host with the given viewport size.
func NewManualHost(cols, rows int) *ManualHost {
	return &ManualHost{
		cols:      cols,
		rows:      rows,
		frames:    make(map[FrameID]FrameFunc),
		listeners: make(map[int]func(int, int)),
	}
}

func (h *ManualHost) RequestFrame(fn FrameFunc) FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	return h.nextFrame
}

func (h *ManualHost) CancelFrame(id FrameID) {
	if _, ok := h.frames[id]; ok {
		delete(h.frames, id)
		h.Events = append(h.Events, "cancel-frame")
	}
}

func (h *ManualHost) OnResize(fn func(cols, rows int)) func() {
	h.nextListener++
	id := h.nextListener
	h.listeners[id] = fn
	return func() {
		if _, ok := h.listeners[id]; ok {
			delete(h.listeners, id)
			h.Events = append(h.Events, "remove-resize")
		}
	}
}

func (h *ManualHost) Size() (int, int) {
	return h.cols, h.rows
}

// Step runs every frame that was pending when it was called and returns how
// many ran. Frames requested during the step wait for the next one.
func (h *ManualHost) Step(dt time.Duration) int {
	ids := make([]FrameID, 0, len(h.frames))
	for id := range h.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := h.frames[id]
		if !ok {
			continue
		}
		delete(h.frames, id)
		fn(dt)
		ran++
	}
	return ran
}

// Run steps n frames of dt each.
func (h *ManualHost) Run(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		h.Step(dt)
	}
}

// Resize changes the viewport and notifies listeners.
func (h *ManualHost) Resize(cols, rows int) {
	h.cols, h.rows = cols, rows
	for _, fn := range h.listeners {
		fn(cols, rows)
	}
}

// PendingFrames returns how many frames are scheduled.
func (h *ManualHost) PendingFrames() int {
	return len(h.frames)
}

// Listeners returns how many resize listeners are registered.
func (h *ManualHost) Listeners() int {
	return len(h.listeners)
}
