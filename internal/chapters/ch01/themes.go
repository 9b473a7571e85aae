package ch01

import (
	"math"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

// Themes maps Chapter One's theme tags to their visual builders.
var Themes = choreo.Themes{
	"library-night":      libraryNight,
	"soldier-contrast":   soldierContrast,
	"tool-chaos":         toolChaos,
	"semantic-split":     semanticSplit,
	"valuation-fall":     valuationFall,
	"architecture-stack": architectureStack,
	"formula-focus":      formulaFocus,
	"fulcrum-close":      fulcrumClose,
}

const (
	accent    = "#adefe7"
	deepTeal  = "#427277"
	stone     = "#f4f4f2"
	parchment = "#f6efe6"
	mist      = "#a1dcd5"
)

var halfTurn = math.Pi / 2

// focusOn is how far the cross-fade has moved from scene from into scene to.
func focusOn(f choreo.FrameInfo, to, from int) float64 {
	return core.ClampF(choreo.Weight(f.Blend, to)-choreo.Weight(f.Blend, from)*0.2, 0, 1)
}

// addLabel places a text plate when label textures are available.
func addLabel(k *choreo.Kit, g *choreo.Group, text string, w, h float64, pos core.Vec3, billboard bool) {
	m := k.Label(text)
	if m == nil {
		return
	}
	plate := g.Add(k.Mesh(k.Plane(w, h), m, pos))
	plate.Billboard = billboard
}

func libraryNight(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()

	g.Add(k.Mesh(k.Box(8.6, 7.2, 0.34), k.Material(stone), core.V3(-2.1, 1.35, -1.8)))
	g.Add(k.Mesh(k.Box(8.95, 7.55, 0.22), k.Material("#efebe2"), core.V3(-2.1, 1.35, -1.56)))

	trim := k.Glow("#8fc9c3", deepTeal, 0.26)
	divider := k.Box(0.08, 6.9, 0.18)
	for _, x := range []float64{-4.95, -3.1, -1.25, 0.6} {
		g.Add(k.Mesh(divider, trim, core.V3(x, 1.35, -1.5)))
	}
	shelf := k.Box(7.95, 0.08, 0.18)
	for _, y := range []float64{3.9, 3.0, 2.1, 1.2, 0.3, -0.6, -1.5} {
		g.Add(k.Mesh(shelf, trim, core.V3(-2.1, y, -1.5)))
	}

	scrollMat := k.Material("#f7f2ea")
	bookMat := k.Material("#efebe3")
	scroll := k.Cylinder(0.09, 0.09, 0.44, false)
	book := k.Box(0.16, 0.52, 0.24)
	for column := 0; column < 4; column++ {
		startX := -4.5 + float64(column)*1.85
		for row := 0; row < 7; row++ {
			y := 3.55 - float64(row)*0.9
			for slot := 0; slot < 5; slot++ {
				x := startX + float64(slot)*0.32
				if (slot+row+column)%2 == 0 {
					m := g.Add(k.Mesh(scroll, scrollMat, core.V3(x, y, -1.38)))
					m.Rotation.Z = halfTurn
					continue
				}
				m := g.Add(k.Mesh(book, bookMat, core.V3(x, y, -1.36)))
				m.Rotation.Z = 0.12
				if slot%2 == 0 {
					m.Rotation.Z = -0.12
				}
			}
		}
	}

	podium := k.Material("#f8f6ef")
	for i, h := range []float64{0.18, 0.26, 0.34} {
		fi := float64(i)
		g.Add(k.Mesh(k.Box(2.15-fi*0.32, h, 1.3), podium, core.V3(1.62, -1.66+fi*0.21, -1.0-fi*0.06)))
	}

	hero := g.Add(k.Mesh(k.Cylinder(0.2, 0.2, 1.4, false), k.Material(parchment), core.V3(0.16, 0.42, -1.26)))
	hero.Rotation.Z = halfTurn

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			next := focusOn(f, f.Index+1, f.Index)
			g.Position.X = math.Sin(f.Elapsed*0.16)*0.12*f.Weight - next*0.56
			g.Position.Z = -next * 0.08
		},
	}
}

func soldierContrast(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	body := k.Glow("#8ec6c0", deepTeal, 0.26)

	g.Add(k.Mesh(k.Capsule(0.31, 1.0), body, core.V3(1.65, 0.04, -0.96)))
	g.Add(k.Mesh(k.Sphere(0.2), body, core.V3(1.65, 1.0, -0.96)))
	helmet := g.Add(k.Mesh(k.Sphere(0.24), body, core.V3(1.65, 1.12, -0.95)))
	helmet.Scale = core.V3(1, 0.55, 1)
	g.Add(k.Mesh(k.Box(0.08, 0.36, 0.2), body, core.V3(1.65, 1.34, -0.95)))

	armLeft := g.Add(k.Mesh(k.Capsule(0.08, 0.54), body, core.V3(1.32, 0.31, -0.94)))
	armLeft.Rotation.Z = -0.42
	armRight := g.Add(k.Mesh(k.Capsule(0.08, 0.58), body, core.V3(1.96, 0.3, -0.9)))
	armRight.Rotation.Z = 0.3

	leg := k.Capsule(0.1, 0.72)
	g.Add(k.Mesh(leg, body, core.V3(1.5, -0.86, -0.93)))
	g.Add(k.Mesh(leg, body, core.V3(1.8, -0.86, -0.93)))

	shield := g.Add(k.Mesh(k.Cylinder(0.38, 0.38, 0.1, false), body, core.V3(1.18, 0.12, -0.76)))
	shield.Rotation.Z = halfTurn
	sword := g.Add(k.Mesh(k.Box(0.06, 0.64, 0.08), body, core.V3(2.16, -0.02, -0.98)))
	sword.Rotation.Z = -0.24

	unreadable := g.Add(k.Mesh(k.Cylinder(0.12, 0.12, 0.88, false), k.Material(parchment), core.V3(1.46, 0.47, -0.89)))
	unreadable.Rotation.Z = halfTurn

	g.Add(k.Mesh(k.Plane(0.08, 1.92), k.Basic(mist, 0.45), core.V3(0.78, 0.28, -1.04)))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			g.Position.Y = math.Sin(f.Elapsed*0.9) * 0.05 * f.Weight
			g.Position.X = focusOn(f, f.Index, f.Index-1) * 0.18
		},
	}
}

type orbitNode struct {
	mesh   *choreo.Mesh
	angle  float64
	radius float64
}

func toolChaos(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	g.Add(k.Mesh(k.Sphere(0.34), k.Glow(accent, deepTeal, 1.1), core.V3(0, 0.82, -1)))

	block := k.Box(0.42, 0.42, 0.42)
	light := k.Material(stone)
	pale := k.Material("#d8e8e5")
	nodes := make([]orbitNode, 8)
	for i := range nodes {
		mat := light
		if i%2 != 0 {
			mat = pale
		}
		nodes[i] = orbitNode{
			mesh:   g.Add(k.Mesh(block, mat, core.Vec3{})),
			angle:  float64(i) / 8 * 2 * math.Pi,
			radius: 1.35 + float64(i%3)*0.26,
		}
	}

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			for i, n := range nodes {
				a := n.angle + f.Elapsed*(0.5+float64(i)*0.03)
				n.mesh.Position = core.V3(math.Cos(a)*n.radius, 0.82+math.Sin(a*1.4)*0.38, -1+math.Sin(a)*0.4)
				n.mesh.Rotation.X += f.Delta * 0.6
				n.mesh.Rotation.Y += f.Delta * 0.8
			}
		},
	}
}

func semanticSplit(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	hubCenter := core.V3(0, 0.5, -1.2)
	hub := g.Add(k.Mesh(k.Sphere(0.26), k.Glow(accent, deepTeal, 0.95), hubCenter))

	towerMat := k.Material(stone)
	tower := k.Box(0.54, 1, 0.54)
	link := k.Basic(mist, 0.8)
	for i, dept := range []string{"Marketing", "Sales", "Finance", "CS", "Board"} {
		angle := -1.1 + float64(i)*0.55
		x := math.Sin(angle) * 2.4
		z := -1.4 + math.Cos(angle)*0.65
		height := 0.58 + float64(i)*0.2

		t := g.Add(k.Mesh(tower, towerMat, core.V3(x, -0.98+height*0.5, z)))
		t.Scale.Y = height
		addLabel(k, g, dept, 1.08, 0.3, core.V3(x, -0.22+height, z), true)
		g.Add(k.Mesh(k.Line(hubCenter, core.V3(x, -0.18+height*0.45, z)), link, core.Vec3{}))
	}

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			hub.SetScale(1 + math.Sin(f.Elapsed*2.5)*0.07*f.Weight)
		},
	}
}

func valuationFall(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	g.Add(k.Mesh(k.Plane(5.8, 3.2), k.Material(stone), core.V3(0.2, 0.5, -1.4)))

	chart := k.Line(
		core.V3(-2.3, -0.6, -1.3),
		core.V3(-1.3, -0.15, -1.3),
		core.V3(-0.2, 0.6, -1.3),
		core.V3(0.95, 1.08, -1.3),
		core.V3(1.7, -0.78, -1.3),
		core.V3(2.3, -0.9, -1.3),
	)
	g.Add(k.Mesh(chart, k.Basic(deepTeal, 0.95), core.Vec3{}))
	g.Add(k.Mesh(k.Sphere(0.2), k.Glow(accent, deepTeal, 0.9), core.V3(0.95, 1.08, -1.26)))
	shard := g.Add(k.Mesh(k.Tetrahedron(0.42), k.Material("#8ea4a7"), core.V3(1.66, -0.35, -1.2)))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			shard.Rotation.X += f.Delta * 0.5 * f.Weight
			shard.Rotation.Y += f.Delta * 0.7 * f.Weight
		},
	}
}

func architectureStack(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	palette := []string{accent, stone, "#d8e8e5"}
	for i, name := range []string{"Semantic", "Coordination", "Tool"} {
		fi := float64(i)
		g.Add(k.Mesh(k.Box(4.6-fi*0.42, 0.5, 2.5-fi*0.24), k.Material(palette[i]), core.V3(0, -1+fi*0.63, -1.05)))
		addLabel(k, g, name, 1.2, 0.3, core.V3(0, -0.72+fi*0.63, 0.35), false)
	}
	beam := g.Add(k.Mesh(k.Cylinder(0.05, 0.11, 2.6, false), k.Basic(accent, 0.74), core.V3(0, 0.15, -1.05)))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			beam.Scale.Y = 1 + math.Sin(f.Elapsed*2.2)*0.08*f.Weight
		},
	}
}

func formulaFocus(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	addLabel(k, g, "ROI_AI = M x SC", 4.7, 1.16, core.V3(0, 1.36, -1.2), false)

	m := core.V3(-1.1, 0.54, -1.05)
	sc := core.V3(1.1, 0.54, -1.05)
	g.Add(k.Mesh(k.Sphere(0.38), k.Material(stone), m))
	coherence := g.Add(k.Mesh(k.Sphere(0.42), k.Glow(accent, deepTeal, 0.95), sc))
	g.Add(k.Mesh(k.Line(m, sc), k.Basic(mist, 0.84), core.Vec3{}))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			coherence.SetScale(1 + math.Sin(f.Elapsed*2.7)*0.09*f.Weight)
		},
	}
}

func fulcrumClose(k *choreo.Kit, _ scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	base := k.Material(stone)

	pivot := g.Add(k.Mesh(k.Cone(0.62, 1.2, 4), base, core.V3(0, -0.45, -1.2)))
	pivot.Rotation.Y = math.Pi / 4
	lever := g.Add(k.Mesh(k.Box(4.4, 0.18, 0.3), k.Material("#d7e5e3"), core.V3(0, 0.1, -1.2)))
	lever.Rotation.Z = -0.22

	weight := k.Box(0.65, 0.65, 0.65)
	g.Add(k.Mesh(weight, base, core.V3(-1.8, 0.04, -1.2)))
	g.Add(k.Mesh(weight, base, core.V3(1.8, 0.54, -1.2)))

	value := g.Add(k.Mesh(k.Octahedron(0.24), k.Glow(accent, deepTeal, 1.12), core.V3(0, 0.32, -1.2)))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			lever.Rotation.Z = -0.22 + math.Sin(f.Elapsed*1.8)*0.08*f.Weight
			value.Rotation.X += f.Delta * 0.7 * f.Weight
			value.Rotation.Y += f.Delta * 0.9 * f.Weight
		},
	}
}
