package material

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
)

// Transparent is a dielectric with exact Fresnel reflectance —
// deliberately not Schlick's approximation, since the original
// renderer's energy-closure tests exercise the exact s/p formulas near
// grazing angles. Grounded on
// original_source/include/renderer/material.hpp's Transparent variant.
type Transparent struct {
	Tint    core.Vec3
	IOR     float64
	Texture ColorSource
}

func NewTransparent(tint core.Vec3, ior float64) *Transparent {
	return &Transparent{Tint: tint, IOR: ior}
}

func (t *Transparent) Bsdf(inLocal, outLocal core.Vec3, fromLight bool) core.Vec3 {
	return core.Vec3{}
}

func (t *Transparent) Sample(inLocal core.Vec3, fromLight bool, rng *core.Sampler) SampleResult {
	normal := core.NewVec3(0, 0, 1)
	nin, nout := 1.0, t.IOR
	if inLocal.Z < 0 {
		normal = normal.Negate()
		nin, nout = t.IOR, 1.0
	}
	cosI := inLocal.Dot(normal)

	mu := nin / nout
	sin2T := mu * mu * (1 - cosI*cosI)
	if sin2T >= 1 {
		// Total internal reflection: the refract branch has zero
		// probability, so every sample reflects.
		return t.reflectBranch(inLocal, normal)
	}

	cosT := math.Sqrt(1 - sin2T)
	r := core.Reflectance(cosI, cosT, nout/nin)
	if rng.Float64() < r {
		return t.reflectBranch(inLocal, normal)
	}
	return t.refractBranch(inLocal, normal, nin, nout, fromLight)
}

func (t *Transparent) reflectBranch(inLocal, normal core.Vec3) SampleResult {
	out := core.Reflect(inLocal, normal)
	return SampleResult{
		Throughput: t.Tint.Multiply(1 / absComponent(out.Z)),
		Out:        out,
		PDF:        1,
		IsDiffuse:  false,
	}
}

func (t *Transparent) refractBranch(inLocal, normal core.Vec3, nin, nout float64, fromLight bool) SampleResult {
	out := core.Refract(inLocal, normal, nin, nout)
	if out.IsZero() {
		// Numerical edge case right at the critical angle; fall back to
		// reflecting rather than dropping the path.
		return t.reflectBranch(inLocal, normal)
	}
	scale := 1.0
	if !fromLight {
		// Radiance-transport scaling (Veach §5.2); photons carry power
		// and skip this factor per spec.
		eta := nin / nout
		scale = eta * eta
	}
	return SampleResult{
		Throughput: t.Tint.Multiply(scale / absComponent(out.Z)),
		Out:        out,
		PDF:        1,
		IsDiffuse:  false,
	}
}

func absComponent(v float64) float64 {
	if v < 0 {
		v = -v
	}
	if v < 1e-9 {
		v = 1e-9
	}
	return v
}

func (t *Transparent) HasTexture() bool { return t.Texture != nil }

func (t *Transparent) TextureAt(uv core.Vec2) core.Vec3 {
	if t.Texture == nil {
		return core.NewVec3(1, 1, 1)
	}
	return t.Texture.Sample(uv)
}
