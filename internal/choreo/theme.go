package choreo

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

// FrameInfo is passed to idle animations each frame.
type FrameInfo struct {
	Elapsed float64 // seconds since start
	Delta   float64 // seconds since previous frame
	Weight  float64 // the scene's current cross-fade weight
	Blend   float64
	Index   int // the scene this visual belongs to
}

// Visual is one scene's persistent group and its optional idle animation.
type Visual struct {
	Group   *Group
	Animate func(f FrameInfo)
}

// ThemeBuilder creates the visual group for a scene. All resources must
// be allocated through k so the engine can release them.
type ThemeBuilder func(k *Kit, d scene.Descriptor) *Visual

// Themes maps descriptor theme tags to builders.
type Themes map[string]ThemeBuilder

// Kit allocates tracked geometries, materials and textures.
type Kit struct {
	res    *resources
	labels bool
	log    *log.Logger
}

func (k *Kit) track(g *Geometry) *Geometry {
	return k.res.trackGeometry(g)
}

func (k *Kit) Box(w, h, d float64) *Geometry {
	return k.track(BoxGeometry(w, h, d))
}

func (k *Kit) Sphere(r float64) *Geometry {
	return k.track(SphereGeometry(r))
}

func (k *Kit) Capsule(r, length float64) *Geometry {
	return k.track(CapsuleGeometry(r, length))
}

func (k *Kit) Cylinder(rTop, rBottom, h float64, open bool) *Geometry {
	return k.track(CylinderGeometry(rTop, rBottom, h, open))
}

func (k *Kit) Cone(r, h float64, sides int) *Geometry {
	return k.track(ConeGeometry(r, h, sides))
}

func (k *Kit) Plane(w, h float64) *Geometry {
	return k.track(PlaneGeometry(w, h))
}

func (k *Kit) Ring(inner, outer float64) *Geometry {
	return k.track(RingGeometry(inner, outer))
}

func (k *Kit) Line(points ...core.Vec3) *Geometry {
	return k.track(LineGeometry(points...))
}

func (k *Kit) Tetrahedron(r float64) *Geometry {
	return k.track(TetrahedronGeometry(r))
}

func (k *Kit) Octahedron(r float64) *Geometry {
	return k.track(OctahedronGeometry(r))
}

// Material returns a lit material.
func (k *Kit) Material(hex string) *Material {
	return k.res.trackMaterial(&Material{Color: core.MustHex(hex), Opacity: 1})
}

// Glow returns a lit material with an emissive tint.
func (k *Kit) Glow(hex, emissive string, intensity float64) *Material {
	m := k.Material(hex)
	m.Emissive = core.MustHex(emissive)
	m.EmissiveIntensity = intensity
	return m
}

// Basic returns an unlit material.
func (k *Kit) Basic(hex string, opacity float64) *Material {
	return k.res.trackMaterial(&Material{Color: core.MustHex(hex), Unlit: true, Opacity: opacity})
}

// Label returns an unlit plate material carrying text, or nil when label
// textures are disabled or cannot be created.
func (k *Kit) Label(text string) *Material {
	if !k.labels {
		return nil
	}
	tex, err := NewLabelTexture(text)
	if err != nil {
		k.log.Debug("label texture skipped", "text", text, "error", err)
		return nil
	}
	m := k.Basic("#081b26", 0.82)
	m.Map = k.res.trackTexture(tex)
	return m
}

// Mesh creates a mesh at pos with unit scale.
func (k *Kit) Mesh(g *Geometry, m *Material, pos core.Vec3) *Mesh {
	return &Mesh{Geometry: g, Material: m, Position: pos, Scale: core.V3(1, 1, 1)}
}

// PlaceholderTheme builds a plinth with a glowing node under the hotspot.
// It is used for theme tags with no registered builder.
func PlaceholderTheme(k *Kit, d scene.Descriptor) *Visual {
	g := NewGroup()
	stone := k.Material("#f4f4f2")
	node := k.Glow("#adefe7", "#427277", 0.9)

	base := d.Hotspot.Add(core.V3(0, -0.9, 0))
	g.Add(k.Mesh(k.Box(1.6, 0.3, 1.2), stone, base))
	g.Add(k.Mesh(k.Box(1.1, 0.3, 0.8), stone, base.Add(core.V3(0, 0.3, 0))))
	orb := g.Add(k.Mesh(k.Sphere(0.28), node, d.Hotspot.Add(core.V3(0, -0.28, 0))))

	return &Visual{
		Group: g,
		Animate: func(f FrameInfo) {
			orb.SetScale(1 + math.Sin(f.Elapsed*2.5)*0.07*f.Weight)
		},
	}
}
