package choreo

import (
	"math"

	"github.com/vovakirdan/tui-chapters/internal/core"
	"github.com/vovakirdan/tui-chapters/internal/scene"
)

// Weight is the triangular cross-fade weight of scene i at blend.
// It is 1 at blend == i and falls linearly to 0 at distance 1.
func Weight(blend float64, i int) float64 {
	return core.ClampF(1-math.Abs(blend-float64(i)), 0, 1)
}

// StepBlend moves blend toward target by exponential smoothing scaled by
// the elapsed seconds. It never overshoots.
func StepBlend(blend, target, elapsed, rate float64) float64 {
	return blend + (target-blend)*core.ClampF(elapsed*rate, 0, 1)
}

// Pose is the interpolated camera and backdrop for a blend value.
type Pose struct {
	Camera     core.Vec3
	LookAt     core.Vec3
	Background core.RGB
}

// PoseAt interpolates between the scenes either side of blend.
func PoseAt(t *scene.Table, blend float64) Pose {
	last := max(t.Len()-1, 0)
	from := core.Clamp(int(math.Floor(blend)), 0, last)
	to := core.Clamp(from+1, 0, last)
	amount := core.ClampF(blend-float64(from), 0, 1)

	return Pose{
		Camera:     core.LerpVec3(t.Camera(from), t.Camera(to), amount),
		LookAt:     core.LerpVec3(t.LookAt(from), t.LookAt(to), amount),
		Background: core.LerpRGB(t.Background(from), t.Background(to), amount),
	}
}
