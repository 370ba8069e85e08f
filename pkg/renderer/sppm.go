package renderer

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/lights"
	"github.com/lumenshade/sppm/pkg/loaders"
	"github.com/lumenshade/sppm/pkg/material"
	"github.com/lumenshade/sppm/pkg/photonmap"
)

// Scene is the read-only interface the SPPM loop needs from a scene
// container (pkg/scene.Scene satisfies this) — a narrow view kept here
// rather than importing pkg/scene directly to avoid a renderer↔scene
// import cycle (scene.Scene embeds a renderer.Camera).
type Scene interface {
	Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool
	Cam() Camera
	SceneLights() []lights.Light
	BackgroundColor() core.Vec3
	AmbientColor() core.Vec3
}

const photonEmitChunk = 100

// Renderer runs the photon-pass/eye-pass SPPM loop. Grounded on the
// teacher's ProgressiveRaytracer
// (pkg/renderer/progressive.go) for the iteration/checkpoint shape, but
// the per-iteration body is written fresh: the teacher accumulates
// adaptive path-traced samples per pixel, this accumulates photon-map
// gather estimates with a shrinking radius.
type Renderer struct {
	scene  Scene
	config Config
	logger core.Logger
	pool   *workerPool

	img        []core.Vec3 // running sum of per-iteration mean radiance
	radius     float64
	iterations int // iterations completed so far
}

// NewRenderer constructs a renderer for one fixed-resolution run.
func NewRenderer(s Scene, config Config, logger core.Logger) *Renderer {
	w, h := s.Cam().Width(), s.Cam().Height()
	return &Renderer{
		scene:  s,
		config: config,
		logger: logger,
		pool:   newWorkerPool(config.NumWorkers),
		img:    make([]core.Vec3, w*h),
		radius: config.InitialRadius,
	}
}

// Render runs config.Iterations SPPM iterations and returns the final
// tonemapped image.
func (r *Renderer) Render() ([]core.Vec3, error) {
	defer r.pool.stop()

	for i := 0; i < r.config.Iterations; i++ {
		photons := r.runPhotonPass(i)
		pmap := photonmap.Build(photons)
		r.runEyePass(i, pmap)
		r.iterations++

		stats := computeStats(i, r.radius, len(photons), r.tonemap())
		r.logger.Printf("iteration %d/%d: radius=%.5f photons=%d meanLum=%.4f stdLum=%.4f\n",
			i+1, r.config.Iterations, stats.Radius, stats.PhotonsDeposited, stats.MeanLuminance, stats.LuminanceStdDev)

		if r.config.PreviewDir != "" {
			frame := r.tonemap()
			path := filepath.Join(r.config.PreviewDir, fmt.Sprintf("%d.bmp", i))
			if err := loaders.SaveBMP(path, r.scene.Cam().Width(), r.scene.Cam().Height(), frame); err != nil {
				r.logger.Printf("warning: failed to write preview %s: %v\n", path, err)
			}
		}

		r.radius = r.radius * math.Sqrt((float64(i)+r.config.Alpha)/(float64(i)+1))
	}

	return r.tonemap(), nil
}

// tonemap returns the current running mean, gamma-corrected and
// per-pixel normalized.
func (r *Renderer) tonemap() []core.Vec3 {
	iterations := float64(max(1, r.iterations))
	out := make([]core.Vec3, len(r.img))
	for i, sum := range r.img {
		mean := sum.Multiply(1 / iterations)
		gamma := mean.GammaCorrect(r.scene.Cam().Gamma())
		out[i] = gamma.Multiply(1 / math.Max(1, gamma.MaxComponent()))
	}
	return out
}
