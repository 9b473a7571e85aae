// Package manifest holds the book's static chapter manifest: five parts and
// seventeen chapters, loaded once from embedded YAML and never mutated.
package manifest

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/chapters.yaml
var defaultManifestYAML []byte

// Part groups consecutive chapters under one label.
type Part struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Theme string `yaml:"theme"`
}

// Chapter is one manifest entry. Index is 1-based, as printed in the book.
type Chapter struct {
	Index     int    `yaml:"index"`
	ID        string `yaml:"id"`
	PartID    string `yaml:"part"`
	PartLabel string `yaml:"-"`
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Source    string `yaml:"source"`
	Lens      string `yaml:"lens"`
}

// Manifest is the ordered, read-only chapter list.
type Manifest struct {
	Parts    []Part    `yaml:"parts"`
	Chapters []Chapter `yaml:"chapters"`
}

// PartGroup is a part with its chapters in manifest order.
type PartGroup struct {
	Part     Part
	Chapters []Chapter
}

var defaultManifest = mustParse(defaultManifestYAML)

// Default returns the process-wide embedded manifest.
func Default() *Manifest {
	return defaultManifest
}

// Load reads a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: cannot read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: cannot parse: %w", err)
	}

	labels := make(map[string]string, len(m.Parts))
	for _, p := range m.Parts {
		labels[p.ID] = p.Label
	}

	seen := make(map[string]bool, len(m.Chapters))
	for i := range m.Chapters {
		ch := &m.Chapters[i]
		label, ok := labels[ch.PartID]
		if !ok {
			return nil, fmt.Errorf("manifest: chapter %q references unknown part %q", ch.ID, ch.PartID)
		}
		if seen[ch.ID] {
			return nil, fmt.Errorf("manifest: duplicate chapter id %q", ch.ID)
		}
		seen[ch.ID] = true
		ch.PartLabel = label
	}
	return &m, nil
}

func mustParse(data []byte) *Manifest {
	m, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of chapters.
func (m *Manifest) Len() int {
	return len(m.Chapters)
}

// ChapterByIndex returns the chapter at the 0-based position.
func (m *Manifest) ChapterByIndex(i int) (Chapter, bool) {
	if i < 0 || i >= len(m.Chapters) {
		return Chapter{}, false
	}
	return m.Chapters[i], true
}

// ChapterByID looks a chapter up by its slug.
func (m *Manifest) ChapterByID(id string) (Chapter, bool) {
	for _, ch := range m.Chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chapter{}, false
}

// Groups returns chapters grouped by part, in part order.
// Parts without chapters are omitted.
func (m *Manifest) Groups() []PartGroup {
	groups := make([]PartGroup, 0, len(m.Parts))
	for _, p := range m.Parts {
		g := PartGroup{Part: p}
		for _, ch := range m.Chapters {
			if ch.PartID == p.ID {
				g.Chapters = append(g.Chapters, ch)
			}
		}
		if len(g.Chapters) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
