// Package scene holds the static scene descriptor tables that chapter
// stories hand to the choreography engine. Tables are read-only after
// construction.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

// Descriptor is the per-scene record: where the camera sits, what it looks
// at, the backdrop color, where the hotspot is, and the copy shown with it.
type Descriptor struct {
	ID             string    `yaml:"id"`
	Theme          string    `yaml:"theme"`
	Title          string    `yaml:"title"`
	Narrative      string    `yaml:"narrative"`
	FallbackAction string    `yaml:"action"`
	Context        string    `yaml:"context"`
	Signal         string    `yaml:"signal"`
	Camera         core.Vec3 `yaml:"camera"`
	LookAt         core.Vec3 `yaml:"look_at"`
	Background     core.RGB  `yaml:"background"`
	Hotspot        core.Vec3 `yaml:"hotspot"`
}

// Fallback visual parameters for indexes outside the table.
var (
	DefaultCamera     = core.V3(0, 3, 16)
	DefaultLookAt     = core.V3(0, 2, -1)
	DefaultBackground = core.MustHex("#041018")
	DefaultHotspot    = core.V3(0, 0.3, -1.2)
)

// Table is an ordered, immutable list of scene descriptors.
type Table struct {
	scenes   []Descriptor
	fallback Descriptor
}

// NewTable builds a table. fallback is returned by At when the table is
// empty; its visual fields are replaced by the package defaults.
func NewTable(scenes []Descriptor, fallback Descriptor) *Table {
	s := make([]Descriptor, len(scenes))
	copy(s, scenes)
	fallback.Camera = DefaultCamera
	fallback.LookAt = DefaultLookAt
	fallback.Background = DefaultBackground
	fallback.Hotspot = DefaultHotspot
	return &Table{scenes: s, fallback: fallback}
}

type tableFile struct {
	Fallback Descriptor   `yaml:"fallback"`
	Scenes   []Descriptor `yaml:"scenes"`
}

// Parse decodes a YAML scene table.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: cannot parse table: %w", err)
	}
	if len(f.Scenes) == 0 {
		return nil, fmt.Errorf("scene: table has no scenes")
	}
	for i, d := range f.Scenes {
		if d.ID == "" {
			return nil, fmt.Errorf("scene: scene %d has no id", i)
		}
	}
	return NewTable(f.Scenes, f.Fallback), nil
}

// Load reads a YAML scene table from disk.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

// Len returns the number of scenes.
func (t *Table) Len() int {
	return len(t.scenes)
}

// At returns scene i. Out-of-range indexes resolve to the first scene, or
// to the fallback descriptor when the table is empty.
func (t *Table) At(i int) Descriptor {
	if i >= 0 && i < len(t.scenes) {
		return t.scenes[i]
	}
	if len(t.scenes) > 0 {
		return t.scenes[0]
	}
	return t.fallback
}

// Camera returns the camera position for scene i.
func (t *Table) Camera(i int) core.Vec3 {
	if i < 0 || i >= len(t.scenes) {
		return DefaultCamera
	}
	return t.scenes[i].Camera
}

// LookAt returns the camera target for scene i.
func (t *Table) LookAt(i int) core.Vec3 {
	if i < 0 || i >= len(t.scenes) {
		return DefaultLookAt
	}
	return t.scenes[i].LookAt
}

// Background returns the backdrop color for scene i.
func (t *Table) Background(i int) core.RGB {
	if i < 0 || i >= len(t.scenes) {
		return DefaultBackground
	}
	return t.scenes[i].Background
}

// Hotspot returns the hotspot position for scene i.
func (t *Table) Hotspot(i int) core.Vec3 {
	if i < 0 || i >= len(t.scenes) {
		return DefaultHotspot
	}
	return t.scenes[i].Hotspot
}
