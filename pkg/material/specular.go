package material

import "github.com/lumenshade/sppm/pkg/core"

// Specular is a perfect mirror: a delta BRDF, so
// Bsdf is never queried by the gather step (specular hits never
// register as diffuse) and Sample always returns the single reflected
// direction with pdf 1.
type Specular struct {
	Tint    core.Vec3
	Texture ColorSource
}

func NewSpecular(tint core.Vec3) *Specular {
	return &Specular{Tint: tint}
}

func (s *Specular) Bsdf(inLocal, outLocal core.Vec3, fromLight bool) core.Vec3 {
	return core.Vec3{}
}

func (s *Specular) Sample(inLocal core.Vec3, fromLight bool, rng *core.Sampler) SampleResult {
	out := core.Reflect(inLocal, core.NewVec3(0, 0, 1))
	absZ := out.Z
	if absZ < 0 {
		absZ = -absZ
	}
	if absZ < 1e-9 {
		absZ = 1e-9
	}
	return SampleResult{
		Throughput: s.Tint.Multiply(1 / absZ),
		Out:        out,
		PDF:        1,
		IsDiffuse:  false,
	}
}

func (s *Specular) HasTexture() bool { return s.Texture != nil }

func (s *Specular) TextureAt(uv core.Vec2) core.Vec3 {
	if s.Texture == nil {
		return core.NewVec3(1, 1, 1)
	}
	return s.Texture.Sample(uv)
}
