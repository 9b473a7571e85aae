package choreo

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// ErrSurfaceUnavailable is returned when the viewport has no area.
var ErrSurfaceUnavailable = errors.New("choreo: rendering surface unavailable")

// halfBlock renders two vertical pixels per cell: FG on top, BG below.
const halfBlock = '▀'

// Surface is the engine's framebuffer. Each terminal cell holds two
// pixels stacked vertically, so the pixel grid is cols x rows*2.
type Surface struct {
	cols, rows int
	w, h       int
	color      []core.Vec3
	depth      []float64
	labels     []label
	released   bool
}

type label struct {
	col, row int
	text     string
	alpha    float64
}

// NewSurface allocates a framebuffer for a cols x rows viewport.
func NewSurface(cols, rows int) (*Surface, error) {
	s := &Surface{}
	if err := s.Resize(cols, rows); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize reallocates the framebuffer.
func (s *Surface) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return ErrSurfaceUnavailable
	}
	s.cols, s.rows = cols, rows
	s.w, s.h = cols, rows*2
	s.color = make([]core.Vec3, s.w*s.h)
	s.depth = make([]float64, s.w*s.h)
	s.labels = s.labels[:0]
	return nil
}

// Size returns the viewport size in cells.
func (s *Surface) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Aspect is the pixel aspect ratio used by the camera.
func (s *Surface) Aspect() float64 {
	return float64(s.w) / float64(s.h)
}

// Released reports whether the surface has been freed.
func (s *Surface) Released() bool { return s.released }

func (s *Surface) release() {
	s.released = true
	s.color = nil
	s.depth = nil
	s.labels = nil
}

func (s *Surface) clear(bg core.RGB) {
	c := toLinear(bg)
	for i := range s.color {
		s.color[i] = c
		s.depth[i] = math.Inf(1)
	}
	s.labels = s.labels[:0]
}

// plot blends c over pixel (x, y) if it passes the depth test.
func (s *Surface) plot(x, y int, z float64, c core.Vec3, alpha float64, writeDepth bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	i := y*s.w + x
	if z >= s.depth[i] {
		return
	}
	if alpha >= 1 {
		s.color[i] = c
	} else {
		s.color[i] = s.color[i].Add(c.Sub(s.color[i]).Scale(alpha))
	}
	if writeDepth {
		s.depth[i] = z
	}
}

// PixelAt returns the color of a pixel in the cols x rows*2 grid.
func (s *Surface) PixelAt(x, y int) core.RGB {
	if x < 0 || y < 0 || x >= s.w || y >= s.h || s.color == nil {
		return core.RGB{}
	}
	return fromLinear(s.color[y*s.w+x])
}

// Blit copies the framebuffer into dst at area, two pixels per cell.
func (s *Surface) Blit(dst *core.Screen, area core.Rect) {
	if s.released {
		return
	}
	cols := min(area.W, s.cols)
	rows := min(area.H, s.rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := s.color[(cy*2)*s.w+cx]
			bottom := s.color[(cy*2+1)*s.w+cx]
			dst.SetCell(area.X+cx, area.Y+cy, core.Cell{
				Rune:   halfBlock,
				FG:     fromLinear(top),
				BG:     fromLinear(bottom),
				Styled: true,
			})
		}
	}

	for _, l := range s.labels {
		if l.row < 0 || l.row >= rows {
			continue
		}
		x := l.col - len([]rune(l.text))/2
		for i, r := range l.text {
			cx := x + i
			if cx < 0 || cx >= cols {
				continue
			}
			cell := dst.GetCell(area.X+cx, area.Y+l.row)
			bg := core.LerpRGB(cell.FG, cell.BG, 0.5)
			dst.SetCell(area.X+cx, area.Y+l.row, core.Cell{
				Rune:   r,
				FG:     core.LerpRGB(bg, core.ColorInk, l.alpha),
				BG:     bg,
				Styled: true,
			})
		}
	}
}

func toLinear(c core.RGB) core.Vec3 {
	return core.V3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func fromLinear(v core.Vec3) core.RGB {
	ch := func(f float64) uint8 {
		return uint8(math.Round(core.ClampF(f, 0, 1) * 255))
	}
	return core.RGB{R: ch(v.X), G: ch(v.Y), B: ch(v.Z)}
}

type light struct {
	dir       core.Vec3
	color     core.Vec3
	intensity float64
}

var (
	ambientLight = 0.42
	sceneLights  = []light{
		{dir: core.V3(-8, 12, 6).Normalize(), color: core.V3(1, 1, 1), intensity: 1.2},
		{dir: core.V3(7, 8, -4).Normalize(), color: toLinear(core.MustHex("#adefe7")), intensity: 1.05},
		{dir: core.V3(-2, 5, -8).Normalize(), color: toLinear(core.MustHex("#a1dcd5")), intensity: 0.72},
	}
	fogColor = toLinear(core.MustHex("#02080d"))
)

const (
	fogNear = 9.0
	fogFar  = 26.0
)

// shade lights a sample. n must face the viewer.
func shade(m *Material, n core.Vec3) core.Vec3 {
	base := toLinear(m.Color)
	if m.Unlit || n == (core.Vec3{}) {
		return base
	}
	lit := core.V3(ambientLight, ambientLight, ambientLight)
	for _, l := range sceneLights {
		d := n.Dot(l.dir)
		if d > 0 {
			lit = lit.Add(l.color.Scale(d * l.intensity * 0.5))
		}
	}
	out := base.Mul(lit)
	if m.EmissiveIntensity > 0 {
		out = out.Add(toLinear(m.Emissive).Scale(m.EmissiveIntensity))
	}
	return out
}

func fog(c core.Vec3, depth float64) core.Vec3 {
	f := core.ClampF((depth-fogNear)/(fogFar-fogNear), 0, 1)
	if f == 0 {
		return c
	}
	return c.Add(fogColor.Sub(c).Scale(f))
}

// rasterizer splats point-sampled meshes onto a surface.
type rasterizer struct {
	cam   Camera
	view  viewBasis
	s     *Surface
	focal float64
}

func newRasterizer(cam Camera, s *Surface) *rasterizer {
	cam.Aspect = s.Aspect()
	b := cam.basis()
	return &rasterizer{
		cam:   cam,
		view:  b,
		s:     s,
		focal: float64(s.h) / (2 * b.tanHalf),
	}
}

func (r *rasterizer) toPixel(p core.Vec3) (px, py, depth float64, ok bool) {
	x, y, depth := r.view.toNDC(p)
	if depth < r.cam.Near || depth > r.cam.Far {
		return 0, 0, depth, false
	}
	px = (x + 1) / 2 * float64(r.s.w)
	py = (1 - y) / 2 * float64(r.s.h)
	return px, py, depth, true
}

// drawMesh renders one mesh offset by its group position.
func (r *rasterizer) drawMesh(m *Mesh, offset core.Vec3) {
	if m.Geometry == nil || m.Material == nil || m.Geometry.released {
		return
	}
	alpha := m.Material.Opacity
	if alpha <= 0.004 {
		return
	}
	scale := m.Scale
	if scale == (core.Vec3{}) {
		scale = core.V3(1, 1, 1)
	}
	maxScale := max(scale.X, scale.Y, scale.Z)
	center := offset.Add(m.Position)
	writeDepth := alpha >= 0.5

	for _, sm := range m.Geometry.Samples {
		var p, n core.Vec3
		if m.Billboard {
			p = center.
				Add(r.view.right.Scale(sm.P.X * scale.X)).
				Add(r.view.up.Scale(sm.P.Y * scale.Y))
			if sm.N != (core.Vec3{}) {
				n = r.view.forward.Scale(-1)
			}
		} else {
			p = center.Add(sm.P.Mul(scale).RotateXYZ(m.Rotation))
			if sm.N != (core.Vec3{}) {
				n = sm.N.RotateXYZ(m.Rotation)
			}
		}

		if n != (core.Vec3{}) {
			toEye := r.view.origin.Sub(p)
			if n.Dot(toEye) < 0 {
				if !m.Geometry.DoubleSided {
					continue
				}
				n = n.Scale(-1)
			}
		}

		px, py, depth, ok := r.toPixel(p)
		if !ok {
			continue
		}
		c := fog(shade(m.Material, n), depth)

		size := 1
		if m.Geometry.Spacing > 0 {
			size = core.Clamp(int(math.Ceil(m.Geometry.Spacing*maxScale*r.focal/depth)), 1, 3)
		}
		x0 := int(px) - size/2
		y0 := int(py) - size/2
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				r.s.plot(x0+dx, y0+dy, depth, c, alpha, writeDepth)
			}
		}
	}

	if tex := m.Material.Map; tex != nil && tex.Kind == TextureLabel && !tex.released && alpha > 0.3 {
		r.label(center, tex.Text, alpha)
	}
}

func (r *rasterizer) label(at core.Vec3, text string, alpha float64) {
	px, py, depth, ok := r.toPixel(at)
	if !ok {
		return
	}
	x, y := int(px), int(py)
	if x < 0 || y < 0 || x >= r.s.w || y >= r.s.h {
		return
	}
	if depth > r.s.depth[y*r.s.w+x]+0.25 {
		return
	}
	r.s.labels = append(r.s.labels, label{col: x, row: y / 2, text: text, alpha: alpha})
}

func (r *rasterizer) drawGroup(g *Group) {
	for _, m := range g.Meshes {
		r.drawMesh(m, g.Position)
	}
}

// drawPlane fills every pixel whose view ray hits the horizontal plane
// y = level within the given half extents.
func (r *rasterizer) drawPlane(level, halfX, halfZ float64, m *Material) {
	if m == nil || m.Opacity <= 0 {
		return
	}
	tex := m.Map
	base := shade(m, core.V3(0, 1, 0))
	contour := toLinear(core.MustHex("#a1dcd5"))
	for py := 0; py < r.s.h; py++ {
		ny := 1 - (float64(py)+0.5)/float64(r.s.h)*2
		for px := 0; px < r.s.w; px++ {
			nx := (float64(px)+0.5)/float64(r.s.w)*2 - 1
			dir := r.view.ray(nx, ny)
			if dir.Y > -1e-6 {
				continue
			}
			t := (level - r.view.origin.Y) / dir.Y
			if t <= 0 {
				continue
			}
			hit := r.view.origin.Add(dir.Scale(t))
			if math.Abs(hit.X) > halfX || math.Abs(hit.Z) > halfZ {
				continue
			}
			c := base
			if tex != nil {
				u := hit.X/(2*halfX) + 0.5
				v := hit.Z/(2*halfZ) + 0.5
				if cov := tex.Sample(u, v); cov > 0 {
					c = c.Add(contour.Sub(c).Scale(cov * 0.22))
				}
			}
			depth := hit.Sub(r.view.origin).Dot(r.view.forward)
			r.s.plot(px, py, depth, fog(c, depth), m.Opacity, true)
		}
	}
}
