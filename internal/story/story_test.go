package story

import (
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/tui-chapters/internal/manifest"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

func testSpec(n int) Spec {
	scenes := make([]scene.Descriptor, n)
	for i := range scenes {
		scenes[i] = scene.Descriptor{ID: fmt.Sprintf("s%d", i), FallbackAction: fmt.Sprintf("Action %d", i)}
	}
	return Spec{
		Chapter:     manifest.Chapter{Index: 1, Title: "Test"},
		Scenes:      scene.NewTable(scenes, scene.Descriptor{}),
		Delay:       420 * time.Millisecond,
		ReplayLabel: "Replay Chapter 1",
		Offers:      []string{"Get First 3 Chapters", "Book Strategic Diagnostic"},
	}
}

func TestEightSceneEndToEnd(t *testing.T) {
	s := NewSession(testSpec(8))

	for i := 1; i <= 7; i++ {
		p, ok := s.Activate()
		if !ok {
			t.Fatalf("Activate() at scene %d did not schedule an advance", s.Index())
		}
		if p.Delay != 420*time.Millisecond {
			t.Errorf("Delay = %v, expected 420ms", p.Delay)
		}
		if !s.Complete(p.Token) {
			t.Fatalf("Complete(%d) = false", p.Token)
		}
		if s.Index() != i {
			t.Fatalf("Index() = %d, expected %d", s.Index(), i)
		}
		if s.InteractionDone() {
			t.Errorf("InteractionDone() = true after advancing to %d", i)
		}
	}

	if _, ok := s.Activate(); ok {
		t.Error("Activate() at the final scene scheduled an advance")
	}
	if s.Index() != 7 {
		t.Errorf("Index() = %d, expected 7", s.Index())
	}
	if !s.InteractionDone() || !s.OffersVisible() {
		t.Error("final interaction should be satisfied and offers visible")
	}
	if s.ActionLabel() != "Replay Chapter 1" {
		t.Errorf("ActionLabel() = %q, expected replay label", s.ActionLabel())
	}

	s.Replay()
	if s.Index() != 0 || s.InteractionDone() {
		t.Errorf("after Replay: Index() = %d, InteractionDone() = %v", s.Index(), s.InteractionDone())
	}
}

func TestAdvanceLock(t *testing.T) {
	s := NewSession(testSpec(3))
	p, ok := s.Activate()
	if !ok {
		t.Fatal("Activate() did not schedule")
	}
	for i := 0; i < 5; i++ {
		if _, ok := s.Activate(); ok {
			t.Error("Activate() while locked scheduled a second advance")
		}
	}
	if !s.Complete(p.Token) || s.Index() != 1 {
		t.Errorf("Index() = %d, expected 1", s.Index())
	}
	if s.Complete(p.Token) {
		t.Error("Complete() with a spent token = true")
	}
}

func TestStaleTokenAfterReplay(t *testing.T) {
	s := NewSession(testSpec(3))
	p, _ := s.Activate()
	s.Replay()
	if s.Complete(p.Token) {
		t.Error("Complete() after Replay applied a dropped advance")
	}
	if s.Index() != 0 {
		t.Errorf("Index() = %d, expected 0", s.Index())
	}
}

func TestCompleteAfterCloseIgnored(t *testing.T) {
	s := NewSession(testSpec(3))
	p, _ := s.Activate()
	s.Close()
	if s.Complete(p.Token) {
		t.Error("Complete() after Close() advanced the session")
	}
	if _, ok := s.Activate(); ok {
		t.Error("Activate() after Close() scheduled an advance")
	}
	if s.Index() != 0 {
		t.Errorf("Index() = %d, expected 0", s.Index())
	}
}

func TestFallbackOnFinalScene(t *testing.T) {
	s := NewSession(testSpec(2))
	p, _ := s.Fallback()
	s.Complete(p.Token)
	if !s.Done() {
		t.Fatal("expected final scene")
	}
	if s.ActionLabel() != "Action 1" {
		t.Errorf("ActionLabel() = %q, expected scene action", s.ActionLabel())
	}

	s.Fallback()
	if !s.InteractionDone() || s.Index() != 1 {
		t.Error("first Fallback() on the final scene should only mark it satisfied")
	}
	s.Fallback()
	if s.Index() != 0 {
		t.Errorf("second Fallback() Index() = %d, expected replay to 0", s.Index())
	}
}

func TestLabels(t *testing.T) {
	s := NewSession(testSpec(3))
	if s.Kicker() != "Chapter 1 · Scene 1" {
		t.Errorf("Kicker() = %q", s.Kicker())
	}
	if s.Progress() != "Scene 1/3" {
		t.Errorf("Progress() = %q", s.Progress())
	}
	if !s.RequiresInteraction() {
		t.Error("RequiresInteraction() = false on a fresh scene")
	}
}
