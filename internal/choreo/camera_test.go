package choreo

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

func testCamera() Camera {
	return Camera{
		Position: core.V3(0, 2, 10),
		Target:   core.V3(0, 1, -1),
		FOV:      46,
		Aspect:   2,
		Near:     0.1,
		Far:      120,
	}
}

func TestProjectLookAtIsCentered(t *testing.T) {
	cam := testCamera()
	px, py, depth, ok := cam.Project(cam.Target, 80, 40)
	if !ok {
		t.Fatal("Project(target) not visible")
	}
	if math.Abs(px-40) > 1e-6 || math.Abs(py-20) > 1e-6 {
		t.Errorf("Project(target) = (%v, %v), expected (40, 20)", px, py)
	}
	expected := cam.Target.Sub(cam.Position).Len()
	if math.Abs(depth-expected) > 1e-9 {
		t.Errorf("depth = %v, expected %v", depth, expected)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := testCamera()
	if _, _, _, ok := cam.Project(core.V3(0, 2, 20), 80, 40); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestRayRoundTrip(t *testing.T) {
	cam := testCamera()
	p := core.V3(1.2, 0.4, -0.5)
	px, py, _, ok := cam.Project(p, 80, 40)
	if !ok {
		t.Fatal("Project() not visible")
	}

	nx := px/80*2 - 1
	ny := 1 - py/40*2
	origin, dir := cam.Ray(nx, ny)

	toP := p.Sub(origin).Normalize()
	if toP.Sub(dir).Len() > 1e-9 {
		t.Errorf("Ray() = %v, expected direction %v", dir, toP)
	}
}

func TestCellToNDC(t *testing.T) {
	tests := []struct {
		x, y, cols, rows int
		nx, ny           float64
	}{
		{0, 0, 2, 2, -0.5, 0.5},
		{1, 1, 2, 2, 0.5, -0.5},
		{2, 1, 5, 3, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		nx, ny := CellToNDC(tt.x, tt.y, tt.cols, tt.rows)
		if math.Abs(nx-tt.nx) > 1e-9 || math.Abs(ny-tt.ny) > 1e-9 {
			t.Errorf("CellToNDC(%d, %d, %d, %d) = (%v, %v), expected (%v, %v)",
				tt.x, tt.y, tt.cols, tt.rows, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestSphereProxy(t *testing.T) {
	s := SphereProxy{Center: core.V3(0, 0, -5), Radius: 0.5}

	tHit, ok := s.Intersect(core.Vec3{}, core.V3(0, 0, -1))
	if !ok || math.Abs(tHit-4.5) > 1e-9 {
		t.Errorf("Intersect() = %v, %v, expected 4.5, true", tHit, ok)
	}
	if _, ok := s.Intersect(core.Vec3{}, core.V3(0, 1, 0)); ok {
		t.Error("Intersect() upward ray should miss")
	}
	if _, ok := s.Intersect(core.Vec3{}, core.V3(0, 0, 1)); ok {
		t.Error("Intersect() ray pointing away should miss")
	}
	if tIn, ok := s.Intersect(core.V3(0, 0, -5), core.V3(1, 0, 0)); !ok || math.Abs(tIn-0.5) > 1e-9 {
		t.Errorf("Intersect() from inside = %v, %v, expected 0.5, true", tIn, ok)
	}
}

func TestCylinderProxy(t *testing.T) {
	c := CylinderProxy{Center: core.V3(0, 1, -5), Radius: 0.2, Height: 1}

	if _, ok := c.Intersect(core.V3(0, 1, 0), core.V3(0, 0, -1)); !ok {
		t.Error("Intersect() through the middle should hit")
	}
	if _, ok := c.Intersect(core.V3(0, 3, 0), core.V3(0, 0, -1)); ok {
		t.Error("Intersect() above the cylinder should miss")
	}
	if _, ok := c.Intersect(core.V3(0, 5, -5), core.V3(0, -1, 0)); ok {
		t.Error("Intersect() with a vertical ray should miss")
	}
}

func TestHitAny(t *testing.T) {
	proxies := []Proxy{
		SphereProxy{Center: core.V3(5, 0, -5), Radius: 0.1},
		SphereProxy{Center: core.V3(0, 0, -5), Radius: 0.1},
	}
	if !HitAny(core.Vec3{}, core.V3(0, 0, -1), proxies) {
		t.Error("HitAny() = false, expected true")
	}
	if HitAny(core.Vec3{}, core.V3(0, 1, 0), proxies) {
		t.Error("HitAny() = true, expected false")
	}
}
