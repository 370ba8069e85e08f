package lights

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
)

// AreaLight emits from a sampled point on an arbitrary shape's
// surface, cosine-weighted about the surface normal. Grounded on
// original_source/include/renderer/light.hpp's AreaLight::sampleRay.
type AreaLight struct {
	Shape geometry.Sampleable
	Power core.Vec3
}

func NewAreaLight(shape geometry.Sampleable, power core.Vec3) *AreaLight {
	return &AreaLight{Shape: shape, Power: power}
}

func (l *AreaLight) SampleRay(rng *core.Sampler) RaySample {
	surface, pdf := l.Shape.SamplePoint(rng)

	frame := core.NewFrame(surface.Normal)
	phi := 2 * math.Pi * rng.Float64()
	t := math.Sqrt(rng.Float64())
	r := math.Sqrt(math.Max(0, 1-t*t))

	local := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), t)
	direction := frame.ToWorld(local)

	return RaySample{
		Ray:   core.NewRay(surface.Position, direction),
		Power: l.Power.Multiply(t),
		PDF:   pdf * t / math.Pi,
	}
}
