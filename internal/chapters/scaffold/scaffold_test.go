package scaffold

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/manifest"
	"github.com/vovakirdan/tui-chapters/internal/registry"
	"github.com/vovakirdan/tui-chapters/internal/story"
)

func TestSceneTable(t *testing.T) {
	if Scenes().Len() != 3 {
		t.Fatalf("Scenes().Len() = %d, expected 3", Scenes().Len())
	}
	for i := 0; i < Scenes().Len(); i++ {
		d := Scenes().At(i)
		if _, ok := Themes[d.Theme]; !ok {
			t.Errorf("scene %d theme %q has no builder", i, d.Theme)
		}
	}
}

func TestRegisteredAsScaffolded(t *testing.T) {
	for _, e := range registry.List() {
		if e.Index == 1 {
			continue
		}
		if e.Status != registry.StatusScaffolded {
			t.Errorf("chapter %d Status = %v, expected %v", e.Index, e.Status, registry.StatusScaffolded)
		}
	}
	if len(registry.List()) != len(Chapters) {
		t.Errorf("len(List()) = %d, expected %d", len(registry.List()), len(Chapters))
	}
}

func TestScaffoldStory(t *testing.T) {
	ch, _ := manifest.Default().ChapterByIndex(4)
	s := story.NewSession(Spec(ch))

	for i := 0; i < 2; i++ {
		p, ok := s.Activate()
		if !ok {
			t.Fatalf("Activate() at scene %d did not schedule", i)
		}
		if p.Delay != 360*time.Millisecond {
			t.Errorf("Delay = %v, expected 360ms", p.Delay)
		}
		s.Complete(p.Token)
	}
	if !s.Done() {
		t.Fatal("expected final scene after two advances")
	}
	s.Fallback()
	if s.ActionLabel() != "Replay "+ch.Title {
		t.Errorf("ActionLabel() = %q, expected %q", s.ActionLabel(), "Replay "+ch.Title)
	}
	if s.OffersVisible() {
		t.Error("scaffold chapters have no offers")
	}
}
