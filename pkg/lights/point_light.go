package lights

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
)

// PointLight emits uniformly over the full sphere of directions from a
// fixed position. Grounded on
// original_source/include/renderer/light.hpp's PointLight::sampleRay.
type PointLight struct {
	Position core.Vec3
	Power    core.Vec3
}

func NewPointLight(position, power core.Vec3) *PointLight {
	return &PointLight{Position: position, Power: power}
}

func (l *PointLight) SampleRay(rng *core.Sampler) RaySample {
	phi := 2 * math.Pi * rng.Float64()
	z := rng.UniformFloat(-1, 1)
	r := math.Sqrt(math.Max(0, 1-z*z))

	direction := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)

	return RaySample{
		Ray:   core.NewRay(l.Position, direction),
		Power: l.Power,
		PDF:   1 / (4 * math.Pi),
	}
}
