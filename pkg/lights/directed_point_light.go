package lights

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
)

// DirectedPointLight is a spotlight: emission is restricted to a cone
// of half-angle Angle around Direction. Grounded on
// original_source/include/renderer/light.hpp's
// DirectedPointLight::sampleRay.
type DirectedPointLight struct {
	Position  core.Vec3
	Direction core.Vec3
	Power     core.Vec3
	Angle     float64
}

func NewDirectedPointLight(position, direction, power core.Vec3, angle float64) *DirectedPointLight {
	return &DirectedPointLight{
		Position:  position,
		Direction: direction.Normalize(),
		Power:     power,
		Angle:     angle,
	}
}

func (l *DirectedPointLight) SampleRay(rng *core.Sampler) RaySample {
	threshold := math.Cos(l.Angle)

	phi := 2 * math.Pi * rng.Float64()
	t := (1-threshold)*rng.Float64() + threshold
	r := math.Sqrt(math.Max(0, 1-t*t))

	local := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), t)
	frame := core.NewFrame(l.Direction)
	direction := frame.ToWorld(local)

	return RaySample{
		Ray:   core.NewRay(l.Position, direction),
		Power: l.Power,
		PDF:   1 / (2 * math.Pi * (1 - threshold)),
	}
}
