package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
)

func TestTeaHostDeliversOnce(t *testing.T) {
	h := newTeaHost(20, 80, 24)
	calls := 0
	var got time.Duration
	id := h.RequestFrame(func(dt time.Duration) {
		calls++
		got = dt
	})

	if h.drain() == nil {
		t.Fatal("drain() = nil, expected a frame command")
	}
	if h.drain() != nil {
		t.Error("second drain() should be empty")
	}

	now := time.Now()
	h.deliver(FrameMsg{Host: h.owner, ID: id, At: now})
	h.deliver(FrameMsg{Host: h.owner, ID: id, At: now.Add(time.Second)})

	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
	if got != 50*time.Millisecond {
		t.Errorf("first dt = %v, expected 50ms", got)
	}
	if h.pending() != 0 {
		t.Errorf("pending() = %d, expected 0", h.pending())
	}
}

func TestTeaHostDropsForeignFrames(t *testing.T) {
	a := newTeaHost(30, 80, 24)
	b := newTeaHost(30, 80, 24)
	ran := false
	id := a.RequestFrame(func(time.Duration) { ran = true })

	a.deliver(FrameMsg{Host: b.owner, ID: id, At: time.Now()})
	if ran {
		t.Error("frame ran for a message from another host")
	}
	if a.pending() != 1 {
		t.Errorf("pending() = %d, expected 1", a.pending())
	}
}

func TestTeaHostCancel(t *testing.T) {
	h := newTeaHost(30, 80, 24)
	ran := false
	id := h.RequestFrame(func(time.Duration) { ran = true })
	h.CancelFrame(id)
	h.CancelFrame(choreo.FrameID(999))

	h.deliver(FrameMsg{Host: h.owner, ID: id, At: time.Now()})
	if ran {
		t.Error("cancelled frame ran")
	}
}

func TestTeaHostClampsStalls(t *testing.T) {
	h := newTeaHost(30, 80, 24)
	var dts []time.Duration
	step := func(at time.Time) {
		id := h.RequestFrame(func(dt time.Duration) { dts = append(dts, dt) })
		h.deliver(FrameMsg{Host: h.owner, ID: id, At: at})
	}

	start := time.Now()
	step(start)
	step(start.Add(40 * time.Millisecond))
	step(start.Add(10 * time.Second))

	if len(dts) != 3 {
		t.Fatalf("frames = %d, expected 3", len(dts))
	}
	if dts[1] != 40*time.Millisecond {
		t.Errorf("dt = %v, expected 40ms", dts[1])
	}
	if dts[2] != 250*time.Millisecond {
		t.Errorf("stalled dt = %v, expected 250ms", dts[2])
	}
}

func TestTeaHostResize(t *testing.T) {
	h := newTeaHost(30, 80, 24)
	var cols, rows, calls int
	remove := h.OnResize(func(c, r int) {
		cols, rows = c, r
		calls++
	})

	h.resize(100, 30)
	h.resize(100, 30)
	if calls != 1 {
		t.Errorf("listener calls = %d, expected 1", calls)
	}
	if cols != 100 || rows != 30 {
		t.Errorf("listener got %dx%d, expected 100x30", cols, rows)
	}
	if c, r := h.Size(); c != 100 || r != 30 {
		t.Errorf("Size() = %dx%d, expected 100x30", c, r)
	}

	remove()
	h.resize(60, 20)
	if calls != 1 {
		t.Errorf("removed listener was called")
	}
}
