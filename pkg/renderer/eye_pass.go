package renderer

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
	"github.com/lumenshade/sppm/pkg/photonmap"
)

const eyePassRowChunk = 4

// runEyePass traces config.RaysPerPixel camera rays per pixel,
// accumulating the mean of those rays' radiance into r.img. A diffuse
// hit terminates the path with a photon-map gather plus
// any direct emission the hit surface carries; specular/refractive hits
// continue the path with updated throughput. Parallelized over row
// ranges — writes land in disjoint pixels, so no synchronization is
// needed between chunks.
func (r *Renderer) runEyePass(iteration int, pmap *photonmap.Map) {
	width, height := r.scene.Cam().Width(), r.scene.Cam().Height()
	radiusSq := r.radius * r.radius
	gatherNorm := 1 / (math.Pi * radiusSq * float64(r.config.PhotonCount))

	r.pool.parallelChunks(height, eyePassRowChunk, func(startRow, endRow int) {
		rng := core.NewSampler(eyePassSeed(iteration, startRow))
		for y := startRow; y < endRow; y++ {
			for x := 0; x < width; x++ {
				var sum core.Vec3
				for k := 0; k < r.config.RaysPerPixel; k++ {
					sum = sum.Add(r.traceEyeRay(x, y, rng, pmap, radiusSq, gatherNorm))
				}
				idx := y*width + x
				r.img[idx] = r.img[idx].Add(sum.Multiply(1 / float64(r.config.RaysPerPixel)))
			}
		}
	})
}

func eyePassSeed(iteration, startRow int) int64 {
	return int64(iteration)*7919 + int64(startRow)*104729 + 1
}

// traceEyeRay walks one camera ray up to config.MaxDepth bounces,
// returning its contribution to the pixel it was sampled for.
func (r *Renderer) traceEyeRay(x, y int, rng *core.Sampler, pmap *photonmap.Map, radiusSq, gatherNorm float64) core.Vec3 {
	ray := r.scene.Cam().SampleRay(x, y, rng)
	throughputSoFar := core.NewVec3(1, 1, 1)

	for depth := 0; depth < r.config.MaxDepth; depth++ {
		hit := material.NewHit()
		if !r.scene.Intersect(ray, 1e-4, &hit) {
			return throughputSoFar.MultiplyVec(r.scene.BackgroundColor())
		}

		frame := core.NewFrame(hit.Surface.ShadingNormal)
		inWorld := ray.Direction.Normalize()
		inLocal := frame.ToLocal(inWorld.Negate())

		result := hit.Material.Sample(inLocal, false, rng)

		if result.IsDiffuse {
			radiance := r.gather(hit, frame, inLocal, pmap, radiusSq, gatherNorm)
			if emitter, ok := hit.Material.(material.Emitter); ok {
				cos := math.Abs(inWorld.Negate().Dot(hit.Surface.ShadingNormal))
				radiance = radiance.Add(emitter.Emission().Multiply(cos))
			}
			return throughputSoFar.MultiplyVec(radiance)
		}

		throughput := result.Throughput
		if hit.Material.HasTexture() {
			throughput = throughput.MultiplyVec(hit.Material.TextureAt(hit.Surface.UV))
		}
		outWorld := frame.ToWorld(result.Out)
		cosOut := math.Abs(result.Out.Z)
		throughputSoFar = throughputSoFar.MultiplyVec(throughput).Multiply(cosOut / math.Max(result.PDF, 1e-6))

		if throughputSoFar.MaxComponent() < 1e-5 {
			return core.Vec3{}
		}

		ray = core.NewRay(hit.Surface.Position, outWorld)
	}

	return core.Vec3{}
}

// gather estimates outgoing radiance at a diffuse hit from the photon
// map plus a constant ambient term:
// ρ/(π·radius²·photonCount) + ambient·bsdf(in, (0,0,1), false).
func (r *Renderer) gather(hit material.Hit, frame core.Frame, inLocal core.Vec3, pmap *photonmap.Map, radiusSq, gatherNorm float64) core.Vec3 {
	var accumulated core.Vec3
	for _, p := range pmap.QueryInRange(hit.Surface.Position, radiusSq) {
		outLocal := frame.ToLocal(p.Direction.Negate())
		accumulated = accumulated.Add(p.Power.MultiplyVec(hit.Material.Bsdf(inLocal, outLocal, false)))
	}
	if hit.Material.HasTexture() {
		accumulated = accumulated.MultiplyVec(hit.Material.TextureAt(hit.Surface.UV))
	}
	density := accumulated.Multiply(gatherNorm)
	ambient := r.scene.AmbientColor().MultiplyVec(hit.Material.Bsdf(inLocal, core.NewVec3(0, 0, 1), false))
	return density.Add(ambient)
}
