package choreo

import (
	"math"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

const (
	cueActive = 1.0
	cueIdle   = 0.16
)

// cues are the "click here" primitives that follow the hotspot of the
// controller's current scene.
type cues struct {
	hotspot *Mesh
	ring    *Mesh
	pulse   *Mesh
	pointer *Mesh
	beam    *Mesh
}

func newCues(k *Kit) *cues {
	c := &cues{
		hotspot: k.Mesh(k.Sphere(0.19), k.Glow("#bef4ec", "#427277", 0.56), core.Vec3{}),
		ring:    k.Mesh(k.Ring(0.32, 0.48), k.Basic("#b8fff7", 0.3), core.Vec3{}),
		pulse:   k.Mesh(k.Ring(0.2, 0.3), k.Basic("#78efe3", 0.2), core.Vec3{}),
		pointer: k.Mesh(k.Cone(0.08, 0.16, 16), k.Basic("#e9fffc", 0.44), core.Vec3{}),
		beam:    k.Mesh(k.Cylinder(0.03, 0.06, 1.3, true), k.Basic("#adefe7", 0.16), core.Vec3{}),
	}
	c.hotspot.Material.Opacity = 0.42
	c.ring.Billboard = true
	c.pulse.Billboard = true
	c.pointer.Rotation = core.V3(math.Pi, 0, 0)
	return c
}

func (c *cues) meshes() []*Mesh {
	return []*Mesh{c.hotspot, c.ring, c.pulse, c.pointer, c.beam}
}

// update moves the cues to target and animates them. requiresInteraction
// selects the active or idle intensity.
func (c *cues) update(target core.Vec3, requiresInteraction bool, elapsed float64) {
	level := cueIdle
	if requiresInteraction {
		level = cueActive
	}
	pulse := math.Sin(elapsed * 3.1)

	c.hotspot.Position = target
	c.hotspot.SetScale(1 + pulse*0.08*level)
	c.hotspot.Material.Opacity = 0.2 + 0.22*level
	c.hotspot.Material.EmissiveIntensity = 0.24 + (pulse+1)*0.13*level

	c.ring.Position = target.Add(core.V3(0, -0.2, 0))
	c.ring.SetScale(1 + math.Sin(elapsed*2.2)*0.1*level)
	c.ring.Material.Opacity = 0.04 + 0.24*level

	c.pulse.Position = target
	c.pulse.SetScale(1 + math.Sin(elapsed*3)*0.14*level)
	c.pulse.Material.Opacity = 0.02 + 0.16*level

	c.pointer.Position = target.Add(core.V3(0, 0.28, 0))
	c.pointer.SetScale(1 + math.Sin(elapsed*3.8)*0.05*level)
	c.pointer.Material.Opacity = 0.08 + 0.3*level

	c.beam.Position = target.Add(core.V3(0, 0.1, 0))
	c.beam.Scale = core.V3(1, 0.95+math.Sin(elapsed*2.6)*0.06*level, 1)
	c.beam.Material.Opacity = 0.01 + 0.1*level
}

// proxies returns the hit volumes around the cues, enlarged by scale.
func (c *cues) proxies(scale float64) []Proxy {
	if scale <= 0 {
		scale = 1
	}
	return []Proxy{
		SphereProxy{Center: c.hotspot.Position, Radius: 0.19 * scale},
		SphereProxy{Center: c.ring.Position, Radius: 0.48 * scale},
		SphereProxy{Center: c.pulse.Position, Radius: 0.3 * scale},
		SphereProxy{Center: c.pointer.Position, Radius: 0.1 * scale},
		CylinderProxy{Center: c.beam.Position, Radius: 0.06 * scale, Height: 1.3},
	}
}
