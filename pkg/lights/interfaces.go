// Package lights implements the light models used by the photon pass
// to seed emission rays. Every light wraps emission-only state and
// lives in a list separate from the scene's geometry group. A light's
// shape is visible to camera rays only when the same shape is also
// placed in that group with an emissive material, as NewCornellBox
// does with its ceiling panel; an AreaLight parsed from a scene file's
// Lights block is not added to the group.
//
// Grounded on original_source/include/renderer/light.hpp's Light base
// class and its three concrete subclasses.
package lights

import "github.com/lumenshade/sppm/pkg/core"

// RaySample is the result of sampling an emission ray from a light:
// the ray itself, its pdf with respect to solid angle (or area*solid
// angle for AreaLight), and the power carried along it.
type RaySample struct {
	Ray   core.Ray
	Power core.Vec3
	PDF   float64
}

// Light is implemented by every emitter a scene file's `PointLight` /
// `DirectedPointLight` / `AreaLight` directive can produce.
type Light interface {
	// SampleRay draws one emission ray for the photon pass.
	SampleRay(rng *core.Sampler) RaySample
}
