// Package photonmap implements the balanced spatial index the eye pass
// queries for nearby photons during progressive gathering. Grounded on
// original_source/include/utils/kdtree.hpp and photon/photon.hpp.
package photonmap

import "github.com/lumenshade/sppm/pkg/core"

// Photon is one deposited hit from the light-transport pass: a surface
// position, the incoming direction it arrived from, and the power it
// carries after every bounce's throughput has been folded in.
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3
	Power     core.Vec3
}

func axisComponent(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
