package choreo

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

const (
	floorLevel = -1.9
	floorHalfX = 30.0
	floorHalfZ = 20.0

	dustTop    = 7.8
	dustBottom = -1.3
)

// floor is the textured ground plane under every scene.
type floor struct {
	material *Material
	geometry *Geometry
}

func newFloor(k *Kit, tex *Texture) *floor {
	mat := k.Material("#081721")
	mat.Map = tex
	mat.Opacity = 1
	return &floor{
		material: mat,
		geometry: k.track(&Geometry{Kind: "floor", DoubleSided: true}),
	}
}

func (f *floor) draw(r *rasterizer) {
	r.drawPlane(floorLevel, floorHalfX, floorHalfZ, f.material)
}

// dust is a field of slowly rising particles.
type dust struct {
	mesh *Mesh
}

func newDust(k *Kit, count int, rng *rand.Rand) *dust {
	points := make([]core.Vec3, count)
	for i := range points {
		points[i] = core.V3(
			(rng.Float64()-0.5)*18,
			rng.Float64()*8.6-1.2,
			(rng.Float64()-0.5)*22,
		)
	}
	mat := k.Basic("#a1dcd5", 0.26)
	return &dust{mesh: k.Mesh(k.track(PointsGeometry(points)), mat, core.Vec3{})}
}

// rise advances every particle; speeds are per 60 Hz frame in world units.
func (d *dust) rise(dt, elapsed float64) {
	frames := dt * 60
	samples := d.mesh.Geometry.Samples
	for i := range samples {
		y := samples[i].P.Y + (0.0025+math.Sin(elapsed*0.45+float64(i))*0.0006)*frames
		if y > dustTop {
			y = dustBottom
		}
		samples[i].P.Y = y
	}
}

func (d *dust) draw(r *rasterizer) {
	r.drawMesh(d.mesh, core.Vec3{})
}
