package choreo

import (
	"math"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// sampleStep is the target distance between surface samples in world units.
const sampleStep = 0.09

func steps(length float64) int {
	return max(1, int(math.Ceil(length/sampleStep)))
}

// quad samples the parallelogram origin + u*s + v*t, s,t in [0,1].
func quad(out []Sample, origin, u, v, n core.Vec3) []Sample {
	nu, nv := steps(u.Len()), steps(v.Len())
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			s := (float64(i) + 0.5) / float64(nu)
			t := (float64(j) + 0.5) / float64(nv)
			out = append(out, Sample{P: origin.Add(u.Scale(s)).Add(v.Scale(t)), N: n})
		}
	}
	return out
}

// triangle samples a triangle with a barycentric grid. The normal points
// away from the local origin, which holds for the convex solids built here.
func triangle(out []Sample, a, b, c core.Vec3) []Sample {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if n.Dot(a.Add(b).Add(c)) < 0 {
		n = n.Scale(-1)
	}
	k := steps(max(b.Sub(a).Len(), c.Sub(a).Len()))
	for i := 0; i <= k; i++ {
		for j := 0; j <= k-i; j++ {
			u := float64(i) / float64(k)
			v := float64(j) / float64(k)
			p := a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v))
			out = append(out, Sample{P: p, N: n})
		}
	}
	return out
}

// BoxGeometry is an axis-aligned box centered on the origin.
func BoxGeometry(w, h, d float64) *Geometry {
	hx, hy, hz := w/2, h/2, d/2
	var s []Sample
	s = quad(s, core.V3(-hx, -hy, hz), core.V3(w, 0, 0), core.V3(0, h, 0), core.V3(0, 0, 1))
	s = quad(s, core.V3(-hx, -hy, -hz), core.V3(w, 0, 0), core.V3(0, h, 0), core.V3(0, 0, -1))
	s = quad(s, core.V3(hx, -hy, -hz), core.V3(0, 0, d), core.V3(0, h, 0), core.V3(1, 0, 0))
	s = quad(s, core.V3(-hx, -hy, -hz), core.V3(0, 0, d), core.V3(0, h, 0), core.V3(-1, 0, 0))
	s = quad(s, core.V3(-hx, hy, -hz), core.V3(w, 0, 0), core.V3(0, 0, d), core.V3(0, 1, 0))
	s = quad(s, core.V3(-hx, -hy, -hz), core.V3(w, 0, 0), core.V3(0, 0, d), core.V3(0, -1, 0))
	return &Geometry{Kind: "box", Samples: s, Spacing: sampleStep}
}

// SphereGeometry is a UV sphere.
func SphereGeometry(r float64) *Geometry {
	nLat := max(4, steps(math.Pi*r))
	nLon := max(6, steps(2*math.Pi*r))
	s := make([]Sample, 0, nLat*nLon)
	for i := 0; i < nLat; i++ {
		theta := (float64(i) + 0.5) / float64(nLat) * math.Pi
		ring := max(3, int(math.Ceil(float64(nLon)*math.Sin(theta))))
		for j := 0; j < ring; j++ {
			phi := float64(j) / float64(ring) * 2 * math.Pi
			n := core.V3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			s = append(s, Sample{P: n.Scale(r), N: n})
		}
	}
	return &Geometry{Kind: "sphere", Samples: s, Spacing: sampleStep}
}

// CylinderGeometry is a Y-axis cylinder or frustum centered on the origin.
// open drops the caps.
func CylinderGeometry(rTop, rBottom, h float64, open bool) *Geometry {
	rMax := max(rTop, rBottom)
	nAround := max(6, steps(2*math.Pi*rMax))
	nUp := steps(h)
	slope := (rBottom - rTop) / h
	var s []Sample
	for j := 0; j < nUp; j++ {
		t := (float64(j) + 0.5) / float64(nUp)
		y := h/2 - t*h
		r := rTop + (rBottom-rTop)*t
		for i := 0; i < nAround; i++ {
			phi := float64(i) / float64(nAround) * 2 * math.Pi
			c, sn := math.Cos(phi), math.Sin(phi)
			n := core.V3(c, slope, sn).Normalize()
			s = append(s, Sample{P: core.V3(r*c, y, r*sn), N: n})
		}
	}
	if !open {
		s = disc(s, 0, rTop, h/2, core.V3(0, 1, 0))
		s = disc(s, 0, rBottom, -h/2, core.V3(0, -1, 0))
	}
	return &Geometry{Kind: "cylinder", Samples: s, Spacing: sampleStep, DoubleSided: open}
}

// disc samples an annulus in the plane y = at, with the given normal.
func disc(out []Sample, inner, outer, at float64, n core.Vec3) []Sample {
	if outer <= 0 {
		return out
	}
	nr := steps(outer - inner)
	for k := 0; k < nr; k++ {
		r := inner + (outer-inner)*(float64(k)+0.5)/float64(nr)
		nAround := max(6, steps(2*math.Pi*r))
		for i := 0; i < nAround; i++ {
			phi := float64(i) / float64(nAround) * 2 * math.Pi
			out = append(out, Sample{P: core.V3(r*math.Cos(phi), at, r*math.Sin(phi)), N: n})
		}
	}
	return out
}

// CapsuleGeometry is a Y-axis cylinder of the given length with
// hemispherical ends.
func CapsuleGeometry(r, length float64) *Geometry {
	g := CylinderGeometry(r, r, length, true)
	g.DoubleSided = false
	for _, sm := range SphereGeometry(r).Samples {
		offset := length / 2
		if sm.N.Y < 0 {
			offset = -offset
		}
		g.Samples = append(g.Samples, Sample{P: sm.P.Add(core.V3(0, offset, 0)), N: sm.N})
	}
	g.Kind = "capsule"
	return g
}

// ConeGeometry is a Y-axis cone with its apex up. sides below 6 produce a
// pyramid with that many faces.
func ConeGeometry(r, h float64, sides int) *Geometry {
	if sides >= 3 && sides < 6 {
		apex := core.V3(0, h/2, 0)
		var s []Sample
		for i := 0; i < sides; i++ {
			a0 := float64(i) / float64(sides) * 2 * math.Pi
			a1 := float64(i+1) / float64(sides) * 2 * math.Pi
			p0 := core.V3(r*math.Cos(a0), -h/2, r*math.Sin(a0))
			p1 := core.V3(r*math.Cos(a1), -h/2, r*math.Sin(a1))
			s = triangle(s, apex, p1, p0)
		}
		return &Geometry{Kind: "pyramid", Samples: s, Spacing: sampleStep}
	}
	g := CylinderGeometry(0, r, h, false)
	g.Kind = "cone"
	return g
}

// PlaneGeometry is a w x h rectangle in the local XY plane facing +Z.
func PlaneGeometry(w, h float64) *Geometry {
	s := quad(nil, core.V3(-w/2, -h/2, 0), core.V3(w, 0, 0), core.V3(0, h, 0), core.V3(0, 0, 1))
	return &Geometry{Kind: "plane", Samples: s, Spacing: sampleStep, DoubleSided: true}
}

// RingGeometry is an annulus in the local XY plane facing +Z.
func RingGeometry(inner, outer float64) *Geometry {
	var s []Sample
	for _, sm := range disc(nil, inner, outer, 0, core.V3(0, 0, 1)) {
		s = append(s, Sample{P: core.V3(sm.P.X, sm.P.Z, 0), N: sm.N})
	}
	return &Geometry{Kind: "ring", Samples: s, Spacing: sampleStep, DoubleSided: true}
}

// LineGeometry is an unlit polyline through points.
func LineGeometry(points ...core.Vec3) *Geometry {
	var s []Sample
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		n := steps(b.Sub(a).Len()) * 2
		for k := 0; k <= n; k++ {
			s = append(s, Sample{P: core.LerpVec3(a, b, float64(k)/float64(n))})
		}
	}
	return &Geometry{Kind: "line", Samples: s, Spacing: sampleStep / 2, DoubleSided: true}
}

// TetrahedronGeometry is a regular tetrahedron with circumradius r.
func TetrahedronGeometry(r float64) *Geometry {
	k := r / math.Sqrt(3)
	v := []core.Vec3{core.V3(k, k, k), core.V3(-k, -k, k), core.V3(-k, k, -k), core.V3(k, -k, -k)}
	var s []Sample
	s = triangle(s, v[2], v[1], v[0])
	s = triangle(s, v[0], v[3], v[2])
	s = triangle(s, v[1], v[3], v[0])
	s = triangle(s, v[2], v[3], v[1])
	return &Geometry{Kind: "tetrahedron", Samples: s, Spacing: sampleStep}
}

// OctahedronGeometry is a regular octahedron with circumradius r.
func OctahedronGeometry(r float64) *Geometry {
	px, nx := core.V3(r, 0, 0), core.V3(-r, 0, 0)
	py, ny := core.V3(0, r, 0), core.V3(0, -r, 0)
	pz, nz := core.V3(0, 0, r), core.V3(0, 0, -r)
	var s []Sample
	s = triangle(s, px, py, pz)
	s = triangle(s, pz, py, nx)
	s = triangle(s, nx, py, nz)
	s = triangle(s, nz, py, px)
	s = triangle(s, px, pz, ny)
	s = triangle(s, pz, nx, ny)
	s = triangle(s, nx, nz, ny)
	s = triangle(s, nz, px, ny)
	return &Geometry{Kind: "octahedron", Samples: s, Spacing: sampleStep}
}

// PointsGeometry is an unlit point cloud.
func PointsGeometry(points []core.Vec3) *Geometry {
	s := make([]Sample, len(points))
	for i, p := range points {
		s[i] = Sample{P: p}
	}
	return &Geometry{Kind: "points", Samples: s, Spacing: 0, DoubleSided: true}
}
