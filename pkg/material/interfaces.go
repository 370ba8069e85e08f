// Package material implements the BRDF sampling and shading contract
// shared by photons and eye rays. Every material operates exclusively
// in the local shading frame (core.Frame, +Z = shading normal) —
// nothing here ever sees a world-space direction.
package material

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
)

// Material is the BRDF sampling/evaluation contract every material
// variant implements. Grounded on the teacher's
// pkg/material/interfaces.go Material interface, reshaped from
// world-space Scatter/EvaluateBRDF/PDF to a local-frame bsdf/sample
// pair.
type Material interface {
	// Bsdf evaluates the BRDF for given local-frame incoming/outgoing
	// directions.
	Bsdf(inLocal, outLocal core.Vec3, fromLight bool) core.Vec3

	// Sample importance-samples an outgoing direction given a
	// local-frame incoming direction.
	Sample(inLocal core.Vec3, fromLight bool, rng *core.Sampler) SampleResult

	// HasTexture reports whether this material carries a diffuse/
	// emissive texture to modulate its throughput by.
	HasTexture() bool

	// TextureAt looks up the texture color at a uv coordinate; only
	// meaningful when HasTexture() is true.
	TextureAt(uv core.Vec2) core.Vec3
}

// Emitter is implemented by materials that emit light directly (used
// by AreaLight's underlying geometry).
type Emitter interface {
	Emission() core.Vec3
}

// SampleResult is the outcome of importance-sampling a material's BSDF.
type SampleResult struct {
	Throughput core.Vec3 // the BRDF value for Out — the caller applies the cosine and divides by PDF
	Out        core.Vec3 // local-frame outgoing direction
	PDF        float64
	IsDiffuse  bool // whether this bounce should deposit a photon / terminate the eye path with a gather
}

// HitSurface carries interpolated geometric data at an intersection
// point.
type HitSurface struct {
	Position        core.Vec3
	ShadingNormal   core.Vec3
	GeometricNormal core.Vec3
	UV              core.Vec2
	HasTexture      bool
}

// Hit is the mutable intersection result threaded through a scene's
// Intersect call. It is constructed with T=+Inf and mutated in place
// only when a strictly nearer, in-range candidate is found.
type Hit struct {
	T        float64
	Material Material
	Surface  HitSurface
}

// NewHit returns a Hit ready to be threaded through a scene traversal.
func NewHit() Hit {
	return Hit{T: math.Inf(1)}
}

// TryUpdate mutates the hit in place iff tmin <= t < h.T, returning
// whether the update happened. Every geometry Intersect implementation
// funnels its candidate through this so the "nearest so far" invariant
// lives in one place instead of being re-derived per primitive.
func (h *Hit) TryUpdate(t, tmin float64, mat Material, surface HitSurface) bool {
	if t < tmin || t >= h.T {
		return false
	}
	h.T = t
	h.Material = mat
	h.Surface = surface
	return true
}
