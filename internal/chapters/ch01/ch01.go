// Package ch01 is the Chapter One story: eight staged scenes from the
// Library of Alexandria to the fulcrum close.
package ch01

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/manifest"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/scene"
	"github.com/vovakirdan/tui-chapters/internal/story"
)

//go:embed data/scenes.yaml
var scenesYAML []byte

// AdvanceDelay is the pause between a satisfied interaction and the next
// scene.
const AdvanceDelay = 420 * time.Millisecond

var scenes = mustScenes()

func mustScenes() *scene.Table {
	t, err := scene.Parse(scenesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

func init() {
	registry.Register(1, registry.StatusReady, Spec)
}

// Scenes returns Chapter One's descriptor table.
func Scenes() *scene.Table {
	return scenes
}

// Spec builds the Chapter One story.
func Spec(ch manifest.Chapter) story.Spec {
	return story.Spec{
		Chapter:     ch,
		Scenes:      scenes,
		Themes:      Themes,
		Delay:       AdvanceDelay,
		ReplayLabel: "Replay Chapter 1",
		Offers:      []string{"Get First 3 Chapters", "Book Strategic Diagnostic"},
		Notes: []string{
			"Chapter 1 complete scene arc",
			"Story-first flow · visual cues only · fallback panel secondary",
		},
	}
}
