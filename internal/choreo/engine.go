// Package choreo is the scene choreography engine. It keeps one persistent
// visual group per scene, chases the host's scene index with a continuous
// blend value, and renders the cross-faded tableau into a cell surface.
// Pointer presses on the live hotspot are reported at most once per scene.
package choreo

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

// Options tunes the engine.
type Options struct {
	BlendRate      float64 // smoothing rate per second
	VisibleEpsilon float64 // groups at or below this weight are hidden
	FOV            float64 // vertical field of view in degrees
	ProxyScale     float64 // hit volume enlargement
	TextureSize    int     // topographic texture size; 0 disables it
	Labels         bool    // draw label plates
	DustCount      int
	Seed           int64
	Logger         *log.Logger
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		BlendRate:      3.2,
		VisibleEpsilon: 0.02,
		FOV:            46,
		ProxyScale:     1,
		TextureSize:    256,
		Labels:         true,
		DustCount:      160,
		Seed:           1,
	}
}

// Cursor is the pointer affordance the host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

var (
	ErrStarted  = errors.New("choreo: engine already started")
	ErrDisposed = errors.New("choreo: engine disposed")
)

// Engine owns the scene graph for one story. The host writes the target
// scene and interaction flag through SetScene; the engine alone writes the
// blend value and visual state. All methods must be called from the host's
// event goroutine.
type Engine struct {
	table  *scene.Table
	themes Themes
	opts   Options
	log    *log.Logger

	// written by the host
	target              int
	requiresInteraction bool

	// written by the engine
	blend   float64
	elapsed float64
	weights []float64
	pose    Pose
	camera  Camera

	visuals []*Visual
	cues    *cues
	floor   *floor
	dust    *dust
	res     *resources
	surface *Surface
	gate    *Gate

	host         Host
	frame        FrameID
	removeResize func()
	cols, rows   int
	started      bool
	disposed     bool

	onRelease func(kind ResourceKind)
}

// New creates an engine over table. Scenes whose theme has no builder in
// themes get the placeholder theme. Nothing is allocated until Start.
func New(table *scene.Table, themes Themes, opts Options) *Engine {
	def := DefaultOptions()
	if opts.BlendRate <= 0 {
		opts.BlendRate = def.BlendRate
	}
	if opts.VisibleEpsilon <= 0 {
		opts.VisibleEpsilon = def.VisibleEpsilon
	}
	if opts.FOV <= 0 {
		opts.FOV = def.FOV
	}
	if opts.ProxyScale <= 0 {
		opts.ProxyScale = def.ProxyScale
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		table:   table,
		themes:  themes,
		opts:    opts,
		log:     logger,
		weights: make([]float64, table.Len()),
		res:     newResources(),
	}
	e.pose = PoseAt(table, 0)
	e.camera = Camera{FOV: opts.FOV, Aspect: 1, Near: 0.1, Far: 120}
	return e
}

// Start allocates every resource and subscribes to the host's frame loop
// and resize notifications. onActivate is called when the reader hits the
// live hotspot while interaction is required.
func (e *Engine) Start(host Host, onActivate func()) error {
	if e.disposed {
		return ErrDisposed
	}
	if e.started {
		return ErrStarted
	}
	e.started = true
	e.host = host
	e.gate = NewGate(onActivate)
	e.res.onRelease = func(kind ResourceKind) {
		if e.onRelease != nil {
			e.onRelease(kind)
		}
	}

	e.cols, e.rows = host.Size()
	surface, err := NewSurface(e.cols, e.rows)
	if err != nil {
		e.log.Warn("rendering surface unavailable, drawing skipped", "cols", e.cols, "rows", e.rows, "error", err)
	} else {
		e.surface = surface
	}

	k := &Kit{res: e.res, labels: e.opts.Labels, log: e.log}

	topo, err := NewTopographicTexture(e.opts.TextureSize)
	if err != nil {
		e.log.Debug("floor texture skipped", "error", err)
	}
	e.floor = newFloor(k, e.res.trackTexture(topo))

	e.visuals = make([]*Visual, e.table.Len())
	for i := range e.visuals {
		d := e.table.At(i)
		build, ok := e.themes[d.Theme]
		if !ok {
			build = PlaceholderTheme
		}
		v := build(k, d)
		if v == nil || v.Group == nil {
			v = &Visual{Group: NewGroup()}
		}
		e.visuals[i] = v
	}
	e.cues = newCues(k)
	e.dust = newDust(k, e.opts.DustCount, rand.New(rand.NewSource(e.opts.Seed)))

	e.blend = float64(e.targetIndex())
	e.pose = PoseAt(e.table, e.blend)

	e.removeResize = host.OnResize(e.resize)
	e.frame = host.RequestFrame(e.tick)

	st := e.res.stats()
	e.log.Debug("engine started",
		"scenes", e.table.Len(),
		"geometries", st.Geometries,
		"materials", st.Materials,
		"textures", st.Textures)
	return nil
}

// SetScene is the host's write path: the controller's scene index and
// whether an interaction is still pending there.
func (e *Engine) SetScene(index int, requiresInteraction bool) {
	e.target = index
	e.requiresInteraction = requiresInteraction
}

func (e *Engine) targetIndex() int {
	return core.Clamp(e.target, 0, max(e.table.Len()-1, 0))
}

// tick is the frame callback. It re-arms itself after each frame.
func (e *Engine) tick(dt time.Duration) {
	if e.disposed {
		return
	}
	e.Step(dt)
	e.frame = e.host.RequestFrame(e.tick)
}

// Step advances the engine by dt and redraws the surface.
func (e *Engine) Step(dt time.Duration) {
	if e.disposed || !e.started {
		return
	}
	sec := dt.Seconds()
	e.elapsed += sec

	last := float64(max(e.table.Len()-1, 0))
	e.blend = core.ClampF(StepBlend(e.blend, float64(e.targetIndex()), sec, e.opts.BlendRate), 0, last)

	e.pose = PoseAt(e.table, e.blend)
	e.camera.Position = e.pose.Camera
	e.camera.Target = e.pose.LookAt

	for i, v := range e.visuals {
		w := Weight(e.blend, i)
		e.weights[i] = w
		v.Group.SetOpacity(w)
		v.Group.Visible = w > e.opts.VisibleEpsilon
		if v.Animate != nil {
			v.Animate(FrameInfo{Elapsed: e.elapsed, Delta: sec, Weight: w, Blend: e.blend, Index: i})
		}
	}

	e.cues.update(e.table.Hotspot(e.target), e.requiresInteraction, e.elapsed)
	e.dust.rise(sec, e.elapsed)
	e.draw()
}

func (e *Engine) draw() {
	s := e.surface
	if s == nil {
		return
	}
	s.clear(e.pose.Background)
	r := newRasterizer(e.camera, s)
	e.floor.draw(r)
	e.dust.draw(r)
	for _, v := range e.visuals {
		if v.Group.Visible {
			r.drawGroup(v.Group)
		}
	}
	for _, m := range e.cues.meshes() {
		r.drawMesh(m, core.Vec3{})
	}
}

func (e *Engine) resize(cols, rows int) {
	if e.disposed {
		return
	}
	e.cols, e.rows = cols, rows
	if e.surface == nil {
		s, err := NewSurface(cols, rows)
		if err != nil {
			return
		}
		e.surface = s
		e.log.Debug("rendering surface acquired", "cols", cols, "rows", rows)
		return
	}
	if err := e.surface.Resize(cols, rows); err != nil {
		e.log.Warn("rendering surface lost on resize", "cols", cols, "rows", rows, "error", err)
		e.surface.release()
		e.surface = nil
	}
}

// PointerDown handles a primary press at a viewport cell. It returns true
// when the press activated the hotspot.
func (e *Engine) PointerDown(x, y int) bool {
	if e.disposed || !e.started {
		return false
	}
	if !e.gate.Armed(e.target, e.requiresInteraction) {
		return false
	}
	if x < 0 || y < 0 || x >= e.cols || y >= e.rows {
		return false
	}

	cam := e.camera
	cam.Position = e.pose.Camera
	cam.Target = e.pose.LookAt
	cam.Aspect = float64(e.cols) / float64(e.rows*2)
	nx, ny := CellToNDC(x, y, e.cols, e.rows)
	origin, dir := cam.Ray(nx, ny)

	e.cues.update(e.table.Hotspot(e.target), e.requiresInteraction, e.elapsed)
	if !HitAny(origin, dir, e.cues.proxies(e.opts.ProxyScale)) {
		return false
	}
	e.log.Debug("hotspot activated", "scene", e.target)
	return e.gate.Activate(e.target, e.requiresInteraction)
}

// Rearm releases the interaction lock on the current scene. Hosts call it
// when the reader restarts the traversal.
func (e *Engine) Rearm() {
	if e.gate != nil {
		e.gate.Rearm()
	}
}

// HotspotCell returns the viewport cell the current hotspot projects to.
func (e *Engine) HotspotCell() (x, y int, ok bool) {
	if e.cols <= 0 || e.rows <= 0 {
		return 0, 0, false
	}
	cam := e.camera
	cam.Position = e.pose.Camera
	cam.Target = e.pose.LookAt
	cam.Aspect = float64(e.cols) / float64(e.rows*2)
	px, py, _, ok := cam.Project(e.table.Hotspot(e.target), e.cols, e.rows*2)
	if !ok {
		return 0, 0, false
	}
	x, y = int(math.Floor(px)), int(math.Floor(py))/2
	if x < 0 || y < 0 || x >= e.cols || y >= e.rows {
		return 0, 0, false
	}
	return x, y, true
}

// Render copies the last frame into dst. Without a surface the area is
// filled with the current background.
func (e *Engine) Render(dst *core.Screen, area core.Rect) {
	if e.surface == nil || e.disposed {
		for y := area.Y; y < area.Bottom(); y++ {
			for x := area.X; x < area.Right(); x++ {
				dst.SetCell(x, y, core.Cell{Rune: ' ', BG: e.pose.Background, Styled: true})
			}
		}
		return
	}
	e.surface.Blit(dst, area)
}

// Dispose stops the frame loop and resize listener, then releases every
// texture, geometry and material once, then the surface. It is safe to
// call more than once.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	if !e.started {
		return
	}

	e.host.CancelFrame(e.frame)
	if e.removeResize != nil {
		e.removeResize()
		e.removeResize = nil
	}

	e.res.releaseAll()
	if e.surface != nil {
		e.surface.release()
		e.surface = nil
		if e.onRelease != nil {
			e.onRelease(KindSurface)
		}
	}
	e.log.Debug("engine disposed", "released", e.res.released)
}

// Blend returns the current blend value.
func (e *Engine) Blend() float64 { return e.blend }

// Weights returns a copy of the per-scene weights from the last frame.
func (e *Engine) Weights() []float64 {
	out := make([]float64, len(e.weights))
	copy(out, e.weights)
	return out
}

// Visible reports whether scene i's group was drawn in the last frame.
func (e *Engine) Visible(i int) bool {
	if i < 0 || i >= len(e.visuals) {
		return false
	}
	return e.visuals[i].Group.Visible
}

// Pose returns the interpolated camera and background.
func (e *Engine) Pose() Pose { return e.pose }

// Cursor returns the pointer affordance for the current scene.
func (e *Engine) Cursor() Cursor {
	if e.requiresInteraction {
		return CursorPointer
	}
	return CursorDefault
}

// LastActivated returns the scene index of the last accepted activation.
func (e *Engine) LastActivated() int {
	if e.gate == nil {
		return -1
	}
	return e.gate.LastActivated()
}

// Stats reports tracked resource counts.
func (e *Engine) Stats() Stats { return e.res.stats() }

// Disposed reports whether Dispose has run.
func (e *Engine) Disposed() bool { return e.disposed }
