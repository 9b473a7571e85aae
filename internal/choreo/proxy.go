package choreo

import (
	"math"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// Proxy is an invisible hit volume used for pointer picking.
type Proxy interface {
	// Intersect returns the ray distance to the first hit. dir must be
	// normalized.
	Intersect(origin, dir core.Vec3) (float64, bool)
}

// SphereProxy is a sphere hit volume.
type SphereProxy struct {
	Center core.Vec3
	Radius float64
}

func (s SphereProxy) Intersect(origin, dir core.Vec3) (float64, bool) {
	oc := origin.Sub(s.Center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// CylinderProxy is a vertical cylinder hit volume centered on Center.
type CylinderProxy struct {
	Center core.Vec3
	Radius float64
	Height float64
}

func (c CylinderProxy) Intersect(origin, dir core.Vec3) (float64, bool) {
	ox, oz := origin.X-c.Center.X, origin.Z-c.Center.Z
	a := dir.X*dir.X + dir.Z*dir.Z
	if a < 1e-12 {
		return 0, false
	}
	b := 2 * (ox*dir.X + oz*dir.Z)
	cc := ox*ox + oz*oz - c.Radius*c.Radius
	disc := b*b - 4*a*cc
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	half := c.Height / 2
	for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t < 0 {
			continue
		}
		y := origin.Y + dir.Y*t
		if y >= c.Center.Y-half && y <= c.Center.Y+half {
			return t, true
		}
	}
	return 0, false
}

// HitAny reports whether the ray hits any proxy.
func HitAny(origin, dir core.Vec3, proxies []Proxy) bool {
	for _, p := range proxies {
		if _, ok := p.Intersect(origin, dir); ok {
			return true
		}
	}
	return false
}
