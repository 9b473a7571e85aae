package choreo

import (
	"math"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

var worldUp = core.V3(0, 1, 0)

// Camera is a perspective camera looking from Position at Target.
// FOV is the vertical field of view in degrees; Aspect is width over height
// in surface pixels.
type Camera struct {
	Position core.Vec3
	Target   core.Vec3
	FOV      float64
	Aspect   float64
	Near     float64
	Far      float64
}

type viewBasis struct {
	origin  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
	tanHalf float64
	aspect  float64
}

func (c Camera) basis() viewBasis {
	forward := c.Target.Sub(c.Position).Normalize()
	if forward == (core.Vec3{}) {
		forward = core.V3(0, 0, -1)
	}
	right := forward.Cross(worldUp).Normalize()
	if right == (core.Vec3{}) {
		right = core.V3(1, 0, 0)
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return viewBasis{
		origin:  c.Position,
		forward: forward,
		right:   right,
		up:      right.Cross(forward),
		tanHalf: math.Tan(c.FOV * math.Pi / 360),
		aspect:  aspect,
	}
}

// toNDC maps a world point to normalized device coordinates and view depth.
func (b viewBasis) toNDC(p core.Vec3) (x, y, depth float64) {
	d := p.Sub(b.origin)
	depth = d.Dot(b.forward)
	x = d.Dot(b.right) / (depth * b.tanHalf * b.aspect)
	y = d.Dot(b.up) / (depth * b.tanHalf)
	return x, y, depth
}

func (b viewBasis) ray(ndcX, ndcY float64) core.Vec3 {
	return b.forward.
		Add(b.right.Scale(ndcX * b.tanHalf * b.aspect)).
		Add(b.up.Scale(ndcY * b.tanHalf)).
		Normalize()
}

// Project maps a world point onto a w x h pixel grid. ok is false when the
// point is behind the near plane or beyond the far plane.
func (c Camera) Project(p core.Vec3, w, h int) (px, py, depth float64, ok bool) {
	b := c.basis()
	x, y, depth := b.toNDC(p)
	if depth < c.Near || (c.Far > 0 && depth > c.Far) {
		return 0, 0, depth, false
	}
	px = (x + 1) / 2 * float64(w)
	py = (1 - y) / 2 * float64(h)
	return px, py, depth, true
}

// Ray returns the world-space ray through the given normalized device
// coordinates, x and y in [-1, 1] with y up.
func (c Camera) Ray(ndcX, ndcY float64) (origin, dir core.Vec3) {
	b := c.basis()
	return c.Position, b.ray(ndcX, ndcY)
}

// CellToNDC converts a cell position inside a cols x rows viewport to
// normalized device coordinates, sampling the cell center.
func CellToNDC(x, y, cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	nx := (float64(x)+0.5)/float64(cols)*2 - 1
	ny := 1 - (float64(y)+0.5)/float64(rows)*2
	return nx, ny
}
