package choreo

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

func testTable(n int) *scene.Table {
	scenes := make([]scene.Descriptor, n)
	for i := range scenes {
		scenes[i] = scene.Descriptor{
			ID:         string(rune('a' + i)),
			Theme:      "placeholder",
			Camera:     core.V3(float64(i)*0.2, 2, 10),
			LookAt:     core.V3(float64(i)*0.2, 0.8, -1),
			Background: core.RGB{R: uint8(i * 10), G: 0x10, B: 0x18},
			Hotspot:    core.V3(float64(i)*0.2, 0.5, -1.1),
		}
	}
	return scene.NewTable(scenes, scene.Descriptor{ID: "fallback"})
}

func TestWeightAtIndexIsOne(t *testing.T) {
	for i := 0; i < 8; i++ {
		if got := Weight(float64(i), i); got != 1 {
			t.Errorf("Weight(%d, %d) = %v, expected 1", i, i, got)
		}
	}
}

func TestWeightZeroAtDistanceOne(t *testing.T) {
	tests := []struct {
		blend float64
		i     int
	}{
		{0, 1},
		{2, 0},
		{3.5, 5},
		{7, 6},
		{4.999, 6},
	}
	for _, tt := range tests {
		if got := Weight(tt.blend, tt.i); got != 0 {
			t.Errorf("Weight(%v, %d) = %v, expected 0", tt.blend, tt.i, got)
		}
	}
}

func TestWeightLinearFalloff(t *testing.T) {
	tests := []struct {
		blend    float64
		i        int
		expected float64
	}{
		{0.25, 0, 0.75},
		{0.25, 1, 0.25},
		{2.5, 2, 0.5},
		{2.5, 3, 0.5},
		{6.9, 7, 0.9},
	}
	for _, tt := range tests {
		if got := Weight(tt.blend, tt.i); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Weight(%v, %d) = %v, expected %v", tt.blend, tt.i, got, tt.expected)
		}
	}
}

func TestAtMostTwoNonzeroWeights(t *testing.T) {
	for b := 0.0; b <= 7; b += 0.037 {
		nonzero := 0
		sum := 0.0
		for i := 0; i < 8; i++ {
			w := Weight(b, i)
			if w > 0 {
				nonzero++
			}
			sum += w
		}
		if nonzero > 2 {
			t.Errorf("blend %v has %d nonzero weights, expected at most 2", b, nonzero)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("blend %v weights sum to %v, expected 1", b, sum)
		}
	}
}

func TestStepBlendNeverOvershoots(t *testing.T) {
	tests := []struct {
		blend, target, elapsed float64
	}{
		{0, 7, 1.0 / 30},
		{7, 0, 1.0 / 60},
		{3, 4, 10},
		{5, 2, 0.5},
	}
	for _, tt := range tests {
		got := StepBlend(tt.blend, tt.target, tt.elapsed, 3.2)
		lo, hi := math.Min(tt.blend, tt.target), math.Max(tt.blend, tt.target)
		if got < lo || got > hi {
			t.Errorf("StepBlend(%v, %v, %v) = %v, outside [%v, %v]", tt.blend, tt.target, tt.elapsed, got, lo, hi)
		}
	}

	if got := StepBlend(2, 6, 1, 3.2); got != 6 {
		t.Errorf("StepBlend with large elapsed = %v, expected 6", got)
	}
	if got := StepBlend(2, 6, 0, 3.2); got != 2 {
		t.Errorf("StepBlend with zero elapsed = %v, expected 2", got)
	}
}

func TestStepBlendConverges(t *testing.T) {
	for _, target := range []float64{0, 3, 7} {
		blend := 7 - target
		for frame := 0; frame < 240; frame++ {
			elapsed := 1.0 / 30
			if frame%3 == 0 {
				elapsed = 1.0 / 60
			}
			blend = StepBlend(blend, target, elapsed, 3.2)
			if blend < 0 || blend > 7 {
				t.Fatalf("blend %v left [0, 7]", blend)
			}
		}
		if math.Abs(blend-target) > 1e-4 {
			t.Errorf("blend = %v after 240 frames, expected %v", blend, target)
		}
	}
}

func TestPoseAtInterpolates(t *testing.T) {
	table := testTable(3)

	p := PoseAt(table, 0.5)
	expected := core.LerpVec3(table.Camera(0), table.Camera(1), 0.5)
	if p.Camera.Sub(expected).Len() > 1e-9 {
		t.Errorf("PoseAt(0.5).Camera = %v, expected %v", p.Camera, expected)
	}
	if p.Background != core.LerpRGB(table.Background(0), table.Background(1), 0.5) {
		t.Errorf("PoseAt(0.5).Background = %v", p.Background)
	}

	end := PoseAt(table, 2)
	if end.Camera != table.Camera(2) || end.LookAt != table.LookAt(2) {
		t.Errorf("PoseAt(2) = %+v, expected scene 2 pose", end)
	}

	clamped := PoseAt(table, 9)
	if clamped.Camera != table.Camera(2) {
		t.Errorf("PoseAt(9).Camera = %v, expected last scene", clamped.Camera)
	}
}

func TestPoseAtEmptyTable(t *testing.T) {
	table := scene.NewTable(nil, scene.Descriptor{})
	p := PoseAt(table, 0)
	if p.Camera != scene.DefaultCamera || p.Background != scene.DefaultBackground {
		t.Errorf("PoseAt on empty table = %+v, expected defaults", p)
	}
}
