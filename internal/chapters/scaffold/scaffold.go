// Package scaffold is the shared three-scene story used by chapters that
// do not have a bespoke build yet.
package scaffold

import (
	_ "embed"
	"math"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/choreo"
	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/manifest"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/scene"
	"github.com/vovakirdan/tui-chapters/internal/story"
)

//go:embed data/scenes.yaml
var scenesYAML []byte

// AdvanceDelay is the pause between a satisfied interaction and the next
// scaffold scene.
const AdvanceDelay = 360 * time.Millisecond

// Chapters lists the manifest indexes served by the scaffold.
var Chapters = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}

var scenes = mustScenes()

func mustScenes() *scene.Table {
	t, err := scene.Parse(scenesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

func init() {
	for _, i := range Chapters {
		registry.Register(i, registry.StatusScaffolded, Spec)
	}
}

// Scenes returns the scaffold descriptor table.
func Scenes() *scene.Table {
	return scenes
}

// Themes maps scaffold theme tags to their visual builders.
var Themes = choreo.Themes{
	"scaffold-signal":    signal,
	"scaffold-mechanism": mechanism,
	"scaffold-bridge":    bridge,
}

// Spec builds the scaffold story for a chapter.
func Spec(ch manifest.Chapter) story.Spec {
	return story.Spec{
		Chapter:     ch,
		Scenes:      scenes,
		Themes:      Themes,
		Delay:       AdvanceDelay,
		ReplayLabel: "Replay " + ch.Title,
		Notes: []string{
			"Chapter source: " + ch.Source,
			"Status: scaffolded chapter system (ready for bespoke scene build).",
			"Isolated chapter module active",
			"Single-action flow + anti-skip lock + fallback panel.",
		},
	}
}

func signal(k *choreo.Kit, d scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	pillar := k.Box(0.36, 1, 0.36)
	pale := k.Material("#f4f4f2")
	for i := 0; i < 6; i++ {
		a := float64(i) / 6 * 2 * math.Pi
		h := 0.8 + float64(i%3)*0.35
		p := g.Add(k.Mesh(pillar, pale, core.V3(math.Cos(a)*2.1, -0.98+h*0.5, -1.2+math.Sin(a)*0.7)))
		p.Scale.Y = h
	}
	node := g.Add(k.Mesh(k.Sphere(0.3), k.Glow("#adefe7", "#427277", 1.0), d.Hotspot))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			node.SetScale(1 + math.Sin(f.Elapsed*2.4)*0.08*f.Weight)
		},
	}
}

func mechanism(k *choreo.Kit, d scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	cog := k.Material("#d8e8e5")
	link := k.Basic("#a1dcd5", 0.8)
	xs := []float64{-1.8, -0.6, 0.6}
	prev := core.V3(-3.0, 0.54, -1.1)
	var spinners []*choreo.Mesh
	for _, x := range xs {
		at := core.V3(x, 0.54, -1.1)
		spinners = append(spinners, g.Add(k.Mesh(k.Octahedron(0.32), cog, at)))
		g.Add(k.Mesh(k.Line(prev, at), link, core.Vec3{}))
		prev = at
	}
	g.Add(k.Mesh(k.Line(prev, d.Hotspot), link, core.Vec3{}))
	g.Add(k.Mesh(k.Sphere(0.34), k.Glow("#adefe7", "#427277", 0.95), d.Hotspot))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			for i, m := range spinners {
				dir := 1.0
				if i%2 != 0 {
					dir = -1
				}
				m.Rotation.Y += f.Delta * 0.8 * dir * f.Weight
			}
		},
	}
}

func bridge(k *choreo.Kit, d scene.Descriptor) *choreo.Visual {
	g := choreo.NewGroup()
	stone := k.Material("#f4f4f2")
	g.Add(k.Mesh(k.Box(1.6, 0.5, 1.4), stone, core.V3(-1.8, -0.2, -1.2)))
	g.Add(k.Mesh(k.Box(1.6, 0.5, 1.4), stone, core.V3(1.8, -0.2, -1.2)))
	span := g.Add(k.Mesh(k.Box(2.2, 0.12, 0.5), k.Material("#d7e5e3"), core.V3(0, 0.05, -1.2)))
	value := g.Add(k.Mesh(k.Octahedron(0.24), k.Glow("#adefe7", "#427277", 1.12), d.Hotspot))

	return &choreo.Visual{
		Group: g,
		Animate: func(f choreo.FrameInfo) {
			span.Position.Y = 0.05 + math.Sin(f.Elapsed*1.6)*0.04*f.Weight
			value.Rotation.Y += f.Delta * 0.9 * f.Weight
		},
	}
}
