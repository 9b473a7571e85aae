package choreo

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

const frameDT = time.Second / 30

// recordingHost logs host-side teardown into a shared event list.
type recordingHost struct {
	*ManualHost
	events *[]string
}

func (h recordingHost) CancelFrame(id FrameID) {
	if _, ok := h.frames[id]; ok {
		*h.events = append(*h.events, "cancel-frame")
	}
	h.ManualHost.CancelFrame(id)
}

func (h recordingHost) OnResize(fn func(cols, rows int)) func() {
	remove := h.ManualHost.OnResize(fn)
	return func() {
		*h.events = append(*h.events, "remove-resize")
		remove()
	}
}

func startEngine(t *testing.T, n int, onActivate func()) (*Engine, *ManualHost) {
	t.Helper()
	e := New(testTable(n), nil, DefaultOptions())
	host := NewManualHost(80, 24)
	if err := e.Start(host, onActivate); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e, host
}

func settle(host *ManualHost) {
	host.Run(150, frameDT)
}

func TestEngineStartRegistersOneFrameAndOneListener(t *testing.T) {
	e, host := startEngine(t, 4, nil)
	if host.PendingFrames() != 1 {
		t.Errorf("PendingFrames() = %d, expected 1", host.PendingFrames())
	}
	if host.Listeners() != 1 {
		t.Errorf("Listeners() = %d, expected 1", host.Listeners())
	}

	host.Run(5, frameDT)
	if host.PendingFrames() != 1 {
		t.Errorf("PendingFrames() after 5 frames = %d, expected 1", host.PendingFrames())
	}

	if err := e.Start(host, nil); err != ErrStarted {
		t.Errorf("second Start() = %v, expected %v", err, ErrStarted)
	}
}

func TestEngineBlendChasesTarget(t *testing.T) {
	e, host := startEngine(t, 8, nil)

	e.SetScene(5, true)
	prev := e.Blend()
	for i := 0; i < 200; i++ {
		host.Step(frameDT)
		b := e.Blend()
		if b < prev-1e-12 || b > 5 {
			t.Fatalf("frame %d: blend %v moved away from target (prev %v)", i, b, prev)
		}
		prev = b
	}
	if math.Abs(e.Blend()-5) > 1e-3 {
		t.Errorf("Blend() = %v, expected ~5", e.Blend())
	}
}

func TestEngineBlendStaysInRange(t *testing.T) {
	e, host := startEngine(t, 8, nil)

	targets := []int{7, 0, 12, -4, 3, 7, 1}
	for _, target := range targets {
		e.SetScene(target, true)
		for i := 0; i < 7; i++ {
			host.Step(frameDT)
			if b := e.Blend(); b < 0 || b > 7 {
				t.Fatalf("Blend() = %v outside [0, 7] while chasing %d", b, target)
			}
		}
	}
}

func TestEngineVisibility(t *testing.T) {
	e, host := startEngine(t, 4, nil)
	settle(host)

	if !e.Visible(0) || e.Visible(1) {
		t.Errorf("at rest on scene 0: Visible(0) = %v, Visible(1) = %v", e.Visible(0), e.Visible(1))
	}

	e.SetScene(1, true)
	host.Run(3, frameDT)
	w := e.Weights()
	if w[0] <= 0 || w[1] <= 0 {
		t.Errorf("mid transition weights = %v, expected scenes 0 and 1 both nonzero", w)
	}
	if w[2] != 0 || w[3] != 0 {
		t.Errorf("mid transition weights = %v, expected only two nonzero", w)
	}

	settle(host)
	if e.Visible(0) || !e.Visible(1) {
		t.Errorf("at rest on scene 1: Visible(0) = %v, Visible(1) = %v", e.Visible(0), e.Visible(1))
	}
	for _, mat := range e.visuals[1].Group.Materials {
		if math.Abs(mat.Opacity-1) > 1e-3 {
			t.Errorf("scene 1 material opacity = %v, expected 1", mat.Opacity)
		}
	}
}

func TestEnginePointerActivatesOncePerScene(t *testing.T) {
	fired := 0
	e, host := startEngine(t, 3, func() { fired++ })
	e.SetScene(0, true)
	settle(host)

	x, y, ok := e.HotspotCell()
	if !ok {
		t.Fatal("HotspotCell() not on screen")
	}
	if !e.PointerDown(x, y) {
		t.Fatal("PointerDown() on hotspot = false, expected true")
	}
	for i := 0; i < 10; i++ {
		if e.PointerDown(x, y) {
			t.Errorf("extra PointerDown() #%d = true, expected false", i)
		}
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, expected 1", fired)
	}

	e.SetScene(1, true)
	settle(host)
	x, y, ok = e.HotspotCell()
	if !ok {
		t.Fatal("HotspotCell() not on screen for scene 1")
	}
	if !e.PointerDown(x, y) {
		t.Error("PointerDown() after scene change = false, expected true")
	}
	if fired != 2 {
		t.Errorf("callback fired %d times, expected 2", fired)
	}
	if e.LastActivated() != 1 {
		t.Errorf("LastActivated() = %d, expected 1", e.LastActivated())
	}
}

func TestEnginePointerMissesAndIgnoresWhenIdle(t *testing.T) {
	fired := 0
	e, host := startEngine(t, 3, func() { fired++ })
	settle(host)

	if e.PointerDown(0, 0) {
		t.Error("PointerDown() in the corner = true, expected a miss")
	}
	if e.PointerDown(-1, 5) || e.PointerDown(80, 5) {
		t.Error("PointerDown() outside the viewport = true")
	}

	e.SetScene(0, false)
	x, y, ok := e.HotspotCell()
	if !ok {
		t.Fatal("HotspotCell() not on screen")
	}
	if e.PointerDown(x, y) {
		t.Error("PointerDown() without pending interaction = true")
	}
	if fired != 0 {
		t.Errorf("callback fired %d times, expected 0", fired)
	}
}

func TestEngineCursor(t *testing.T) {
	e, _ := startEngine(t, 2, nil)
	e.SetScene(0, true)
	if e.Cursor() != CursorPointer {
		t.Errorf("Cursor() = %v, expected %v", e.Cursor(), CursorPointer)
	}
	e.SetScene(0, false)
	if e.Cursor() != CursorDefault {
		t.Errorf("Cursor() = %v, expected %v", e.Cursor(), CursorDefault)
	}
}

func TestEngineTeardownOrder(t *testing.T) {
	var events []string
	e := New(testTable(3), nil, DefaultOptions())
	e.onRelease = func(kind ResourceKind) { events = append(events, string(kind)) }

	manual := NewManualHost(60, 20)
	host := recordingHost{ManualHost: manual, events: &events}
	if err := e.Start(host, nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	manual.Run(3, frameDT)
	stats := e.Stats()

	e.Dispose()

	if len(events) < 3 || events[0] != "cancel-frame" || events[1] != "remove-resize" {
		t.Fatalf("teardown began with %v, expected cancel-frame then remove-resize", events[:min(2, len(events))])
	}
	if events[len(events)-1] != string(KindSurface) {
		t.Errorf("last release = %s, expected surface", events[len(events)-1])
	}

	rank := map[string]int{"texture": 0, "geometry": 1, "material": 2, "surface": 3}
	counts := map[string]int{}
	prev := -1
	for _, ev := range events[2:] {
		r, ok := rank[ev]
		if !ok {
			t.Fatalf("unexpected event %q after listeners were removed", ev)
		}
		if r < prev {
			t.Errorf("%s released after a later resource class", ev)
		}
		prev = r
		counts[ev]++
	}

	if counts["texture"] != stats.Textures {
		t.Errorf("released %d textures, expected %d", counts["texture"], stats.Textures)
	}
	if counts["geometry"] != stats.Geometries {
		t.Errorf("released %d geometries, expected %d", counts["geometry"], stats.Geometries)
	}
	if counts["material"] != stats.Materials {
		t.Errorf("released %d materials, expected %d", counts["material"], stats.Materials)
	}
	if counts["surface"] != 1 {
		t.Errorf("released surface %d times, expected 1", counts["surface"])
	}

	before := len(events)
	e.Dispose()
	if len(events) != before {
		t.Errorf("second Dispose() released %d more resources", len(events)-before)
	}
	if manual.PendingFrames() != 0 || manual.Listeners() != 0 {
		t.Errorf("after Dispose: %d frames, %d listeners, expected none", manual.PendingFrames(), manual.Listeners())
	}
}

func TestEngineNoWorkAfterDispose(t *testing.T) {
	fired := 0
	e, host := startEngine(t, 3, func() { fired++ })
	settle(host)
	x, y, _ := e.HotspotCell()
	blend := e.Blend()

	e.Dispose()
	e.SetScene(2, true)
	e.Step(frameDT)
	if host.Step(frameDT) != 0 {
		t.Error("a frame ran after Dispose()")
	}
	if e.Blend() != blend {
		t.Errorf("Blend() changed after Dispose(): %v -> %v", blend, e.Blend())
	}
	if e.PointerDown(x, y) || fired != 0 {
		t.Error("PointerDown() activated after Dispose()")
	}
	if err := e.Start(host, nil); err != ErrDisposed {
		t.Errorf("Start() after Dispose() = %v, expected %v", err, ErrDisposed)
	}
}

func TestEngineWithoutSurface(t *testing.T) {
	e := New(testTable(2), nil, DefaultOptions())
	host := NewManualHost(0, 0)
	if err := e.Start(host, nil); err != nil {
		t.Fatalf("Start() without a surface failed: %v", err)
	}
	host.Run(10, frameDT)

	scr := core.NewScreen(4, 2)
	e.Render(scr, core.NewRect(0, 0, 4, 2))
	if c := scr.GetCell(0, 0); c.BG != e.Pose().Background {
		t.Errorf("fallback cell BG = %v, expected background %v", c.BG, e.Pose().Background)
	}

	host.Resize(40, 12)
	host.Step(frameDT)
	scr = core.NewScreen(40, 12)
	e.Render(scr, core.NewRect(0, 0, 40, 12))
	if c := scr.GetCell(0, 0); c.Rune != halfBlock {
		t.Errorf("after resize cell rune = %q, expected half block", c.Rune)
	}
}

func TestEngineWithoutTextures(t *testing.T) {
	opts := DefaultOptions()
	opts.TextureSize = 0
	opts.Labels = false
	e := New(testTable(2), nil, opts)
	host := NewManualHost(40, 12)
	if err := e.Start(host, nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	host.Run(3, frameDT)
	if e.Stats().Textures != 0 {
		t.Errorf("Stats().Textures = %d, expected 0", e.Stats().Textures)
	}
}

func TestEngineRendersBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.DustCount = 0
	e := New(testTable(2), nil, opts)
	host := NewManualHost(80, 24)
	if err := e.Start(host, nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	settle(host)

	scr := core.NewScreen(80, 24)
	e.Render(scr, core.NewRect(0, 0, 80, 24))
	top := scr.GetCell(0, 0)
	if top.Rune != halfBlock || !top.Styled {
		t.Fatalf("top-left cell = %+v, expected styled half block", top)
	}
	if top.FG != e.Pose().Background {
		t.Errorf("top-left pixel = %v, expected background %v", top.FG, e.Pose().Background)
	}
}
