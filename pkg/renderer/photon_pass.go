package renderer

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/lights"
	"github.com/lumenshade/sppm/pkg/material"
	"github.com/lumenshade/sppm/pkg/photonmap"
)

// runPhotonPass emits config.PhotonCount photons from the scene's
// lights, tracing each through up to config.MaxDepth bounces and
// depositing one photonmap.Photon per diffuse hit. Parallelized in
// chunks of photonEmitChunk photons, each chunk writing into its own
// local buffer that gets merged into a single slice once every chunk
// finishes — per-worker local buffers merged at a barrier, rather than
// a shared append under a lock.
func (r *Renderer) runPhotonPass(iteration int) []photonmap.Photon {
	sceneLights := r.scene.SceneLights()
	numLights := len(sceneLights)
	if numLights == 0 {
		return nil
	}

	numChunks := (r.config.PhotonCount + photonEmitChunk - 1) / photonEmitChunk
	buffers := make([][]photonmap.Photon, numChunks)

	r.pool.parallelChunks(r.config.PhotonCount, photonEmitChunk, func(start, end int) {
		chunk := start / photonEmitChunk
		rng := core.NewSampler(photonPassSeed(iteration, chunk))
		local := make([]photonmap.Photon, 0, end-start)
		for i := start; i < end; i++ {
			local = emitOnePhoton(r.scene, sceneLights, numLights, rng, r.config.MaxDepth, local)
		}
		buffers[chunk] = local
	})

	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	photons := make([]photonmap.Photon, 0, total)
	for _, b := range buffers {
		photons = append(photons, b...)
	}
	return photons
}

// photonPassSeed derives a deterministic, collision-free seed per
// (iteration, chunk) pair. The original renderer's seed_i =
// rng_i.uniform_int(0,n-1) + i*n formula assumes stable
// per-worker-thread identity (OpenMP thread IDs); pond's pool exposes
// no such identity, so every photon chunk is seeded independently
// instead of every worker thread (see DESIGN.md).
func photonPassSeed(iteration, chunk int) int64 {
	return int64(iteration)*1_000_003 + int64(chunk)
}

// emitOnePhoton samples one light-emission ray and traces it through the
// scene, appending a Photon for every diffuse bounce to local.
func emitOnePhoton(scene Scene, sceneLights []lights.Light, numLights int, rng *core.Sampler, maxDepth int, local []photonmap.Photon) []photonmap.Photon {
	light := sceneLights[rng.Intn(numLights)]

	sample := light.SampleRay(rng)
	if sample.PDF <= 0 {
		return local
	}
	power := sample.Power.Multiply(float64(numLights) / sample.PDF)

	ray := sample.Ray
	for depth := 0; depth < maxDepth; depth++ {
		if !power.IsFinitePositive() || power.IsZero() {
			break
		}

		hit := material.NewHit()
		if !scene.Intersect(ray, 1e-4, &hit) {
			break
		}

		frame := core.NewFrame(hit.Surface.ShadingNormal)
		inWorld := ray.Direction.Normalize()
		inLocal := frame.ToLocal(inWorld.Negate())

		result := hit.Material.Sample(inLocal, true, rng)

		if result.IsDiffuse {
			local = append(local, photonmap.Photon{
				Position:  hit.Surface.Position,
				Direction: inWorld,
				Power:     power,
			})
		}

		throughput := result.Throughput
		if hit.Material.HasTexture() {
			throughput = throughput.MultiplyVec(hit.Material.TextureAt(hit.Surface.UV))
		}

		outWorld := frame.ToWorld(result.Out)

		// Veach's shading-normal correction: the local frame is built
		// from the shading normal, but energy closure across a
		// bumped/shading normal needs the geometric normal's cosines
		// too.
		geomCosOut := math.Abs(outWorld.Dot(hit.Surface.GeometricNormal))
		geomCosIn := math.Abs(inWorld.Negate().Dot(hit.Surface.GeometricNormal))
		shadeCosIn := math.Abs(inLocal.Z)
		correction := 1.0
		if geomCosIn > 1e-9 {
			correction = geomCosOut * shadeCosIn / geomCosIn
		}

		power = power.MultiplyVec(throughput).Multiply(correction / math.Max(result.PDF, 1e-6))

		if depth >= 1 {
			survival := math.Min(power.MaxComponent(), 1)
			if survival <= 0 || rng.Float64() >= survival {
				break
			}
			power = power.Multiply(1 / survival)
		}

		ray = core.NewRay(hit.Surface.Position, outWorld)
	}

	return local
}
