package core

import (
	"math"
	"math/rand"
)

// Sampler is the per-worker RNG handed to every photon/eye-ray/material
// sampling call. It is a thin wrapper, not an interface, for the same
// reason the teacher threads a bare *rand.Rand through its raytracer
// (pkg/renderer/raytracer.go) rather than hiding it behind an interface:
// every call site needs the concrete distribution helpers below, and
// there is exactly one production implementation.
type Sampler struct {
	Rng *rand.Rand
}

// NewSampler wraps a freshly seeded RNG.
func NewSampler(seed int64) *Sampler {
	return &Sampler{Rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform sample in [0,1).
func (s *Sampler) Float64() float64 {
	return s.Rng.Float64()
}

// UniformFloat returns a uniform sample in [lo,hi).
func (s *Sampler) UniformFloat(lo, hi float64) float64 {
	return lo + (hi-lo)*s.Rng.Float64()
}

// UniformInt returns a uniform sample in the inclusive range [lo,hi],
// matching the original engine's std::uniform_int_distribution(lo,hi)
// semantics (original_source/include/utils/random_engine.hpp).
func (s *Sampler) UniformInt(lo, hi int) int {
	return lo + s.Rng.Intn(hi-lo+1)
}

// Intn returns a uniform sample in [0,n) — used for the light-id draw
// during photon emission, where the original engine's inclusive upper
// bound was a bug rather than an intended distribution.
func (s *Sampler) Intn(n int) int {
	return s.Rng.Intn(n)
}

// UnitDisk draws a point uniformly inside the unit disk by rejection
// sampling, used for thin-lens aperture sampling.
func (s *Sampler) UnitDisk() (u, v float64) {
	for {
		u = s.UniformFloat(-1, 1)
		v = s.UniformFloat(-1, 1)
		if u*u+v*v <= 1 {
			return u, v
		}
	}
}

// CosineHemisphere draws a direction in the local-frame upper hemisphere
// (+Z up) with pdf cosθ/π = t/π where t is the returned direction's Z
// component — the sampling rule every material's diffuse branch shares,
// lifted out of Lambert/Phong to avoid duplicating the phi/t
// construction in both.
func (s *Sampler) CosineHemisphere() Vec3 {
	phi := 2 * math.Pi * s.Float64()
	t := math.Sqrt(s.Float64())
	r := math.Sqrt(max(0, 1-t*t))
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), t)
}
