package choreo

import "github.com/vovakirdan/tui-chapters/internal/core"

// Sample is one surface point of a geometry in local space.
// A zero normal marks an unlit point (lines, particles).
type Sample struct {
	P core.Vec3
	N core.Vec3
}

// Geometry is a point-sampled surface.
type Geometry struct {
	Kind        string
	Samples     []Sample
	Spacing     float64
	DoubleSided bool

	released bool
}

// Material describes how a mesh's samples are shaded.
type Material struct {
	Color             core.RGB
	Emissive          core.RGB
	EmissiveIntensity float64
	Unlit             bool
	Opacity           float64
	Map               *Texture

	released bool
}

// Mesh places a geometry with a material inside a group.
type Mesh struct {
	Geometry *Geometry
	Material *Material
	Position core.Vec3
	Rotation core.Vec3
	Scale    core.Vec3
	// Billboard meshes keep their local XY plane facing the camera.
	Billboard bool
}

// SetScale sets a uniform scale.
func (m *Mesh) SetScale(s float64) {
	m.Scale = core.V3(s, s, s)
}

// Group is a persistent bundle of meshes. Materials lists every material
// the group owns so opacity can be applied uniformly.
type Group struct {
	Position  core.Vec3
	Visible   bool
	Meshes    []*Mesh
	Materials []*Material
}

// NewGroup creates a visible, empty group.
func NewGroup() *Group {
	return &Group{Visible: true}
}

// Add appends a mesh and registers its material with the group.
func (g *Group) Add(m *Mesh) *Mesh {
	g.Meshes = append(g.Meshes, m)
	if m.Material == nil {
		return m
	}
	for _, owned := range g.Materials {
		if owned == m.Material {
			return m
		}
	}
	g.Materials = append(g.Materials, m.Material)
	return m
}

// SetOpacity applies one opacity to every material of the group.
func (g *Group) SetOpacity(opacity float64) {
	for _, mat := range g.Materials {
		mat.Opacity = opacity
	}
}

// ResourceKind names a tracked resource class.
type ResourceKind string

const (
	KindTexture  ResourceKind = "texture"
	KindGeometry ResourceKind = "geometry"
	KindMaterial ResourceKind = "material"
	KindSurface  ResourceKind = "surface"
)

// Stats counts tracked resources.
type Stats struct {
	Textures   int
	Geometries int
	Materials  int
	Released   int
}

// resources tracks everything allocated through a Kit so it can be
// released exactly once, in a fixed order.
type resources struct {
	textures   []*Texture
	geometries []*Geometry
	materials  []*Material
	seen       map[any]bool
	released   int

	onRelease func(kind ResourceKind)
}

func newResources() *resources {
	return &resources{seen: make(map[any]bool)}
}

func (r *resources) trackTexture(t *Texture) *Texture {
	if t != nil && !r.seen[t] {
		r.seen[t] = true
		r.textures = append(r.textures, t)
	}
	return t
}

func (r *resources) trackGeometry(g *Geometry) *Geometry {
	if g != nil && !r.seen[g] {
		r.seen[g] = true
		r.geometries = append(r.geometries, g)
	}
	return g
}

func (r *resources) trackMaterial(m *Material) *Material {
	if m != nil && !r.seen[m] {
		r.seen[m] = true
		r.materials = append(r.materials, m)
	}
	return m
}

func (r *resources) stats() Stats {
	return Stats{
		Textures:   len(r.textures),
		Geometries: len(r.geometries),
		Materials:  len(r.materials),
		Released:   r.released,
	}
}

// releaseAll frees textures, then geometries, then materials.
func (r *resources) releaseAll() {
	for _, t := range r.textures {
		if !t.released {
			t.released = true
			t.data = nil
			r.note(KindTexture)
		}
	}
	for _, g := range r.geometries {
		if !g.released {
			g.released = true
			g.Samples = nil
			r.note(KindGeometry)
		}
	}
	for _, m := range r.materials {
		if !m.released {
			m.released = true
			m.Map = nil
			r.note(KindMaterial)
		}
	}
}

func (r *resources) note(kind ResourceKind) {
	r.released++
	if r.onRelease != nil {
		r.onRelease(kind)
	}
}
