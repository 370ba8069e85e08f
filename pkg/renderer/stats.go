package renderer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lumenshade/sppm/pkg/core"
)

// RenderStats summarizes one completed iteration for progress
// logging. Grounded on the teacher's PixelStats/RenderStats pair
// (pkg/renderer/stats.go),
// generalized from a hand-rolled running-variance accumulator to a
// single post-iteration pass over the frame's luminance using
// gonum/stat, since SPPM has no per-pixel adaptive sampling to track
// incrementally the way the teacher's path tracer does.
type RenderStats struct {
	Iteration        int
	Radius           float64
	PhotonsDeposited int
	MeanLuminance    float64
	LuminanceStdDev  float64
}

// computeStats summarizes the current tonemapped frame.
func computeStats(iteration int, radius float64, photonsDeposited int, frame []core.Vec3) RenderStats {
	luminances := make([]float64, len(frame))
	for i, c := range frame {
		luminances[i] = c.Luminance()
	}
	mean, variance := stat.MeanVariance(luminances, nil)
	return RenderStats{
		Iteration:        iteration,
		Radius:           radius,
		PhotonsDeposited: photonsDeposited,
		MeanLuminance:    mean,
		LuminanceStdDev:  math.Sqrt(variance),
	}
}
