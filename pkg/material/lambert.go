package material

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
)

// Lambert is a perfectly diffuse BRDF. Grounded on the teacher's
// pkg/material/lambertian.go, reshaped to operate in the local shading
// frame instead of world space.
type Lambert struct {
	Albedo  core.Vec3
	Texture ColorSource
}

func NewLambert(albedo core.Vec3) *Lambert {
	return &Lambert{Albedo: albedo}
}

func (l *Lambert) Bsdf(inLocal, outLocal core.Vec3, fromLight bool) core.Vec3 {
	if outLocal.Z <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1 / math.Pi)
}

func (l *Lambert) Sample(inLocal core.Vec3, fromLight bool, rng *core.Sampler) SampleResult {
	out := rng.CosineHemisphere()
	pdf := out.Z / math.Pi
	return SampleResult{
		Throughput: l.Albedo.Multiply(1 / math.Pi),
		Out:        out,
		PDF:        pdf,
		IsDiffuse:  true,
	}
}

func (l *Lambert) HasTexture() bool { return l.Texture != nil }

func (l *Lambert) TextureAt(uv core.Vec2) core.Vec3 {
	if l.Texture == nil {
		return core.NewVec3(1, 1, 1)
	}
	return l.Texture.Sample(uv)
}
