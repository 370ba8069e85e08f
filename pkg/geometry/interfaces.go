// Package geometry implements the primitive shapes, the octree mesh
// accelerator, and the spatial grouping used to intersect a scene.
package geometry

import (
	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Shape is the intersection contract every primitive, mesh, and group
// implements. Grounded on the teacher's pkg/geometry/interfaces.go
// Shape interface, reshaped so Intersect mutates a shared *material.Hit
// in place instead of returning a fresh *SurfaceInteraction per call —
// the photon and eye passes call this millions of times per iteration
// and the teacher's own BVH traversal already threads a single hit
// record through recursive calls for the same reason.
type Shape interface {
	// Intersect tests the shape against ray in [tMin, hit.T) and, on a
	// strictly closer hit, mutates hit via hit.TryUpdate and returns true.
	Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool

	// BoundingBox returns the shape's world-space AABB.
	BoundingBox() core.AABB
}

// SurfacePoint is a point sampled on a shape's surface, used by
// AreaLight.SampleRay.
type SurfacePoint struct {
	Position core.Vec3
	Normal   core.Vec3
}

// Sampleable is implemented by shapes that can serve as an area light's
// emitting geometry.
type Sampleable interface {
	Shape
	// SamplePoint draws a point uniformly over the shape's surface and
	// returns it with the pdf with respect to surface area.
	SamplePoint(rng *core.Sampler) (SurfacePoint, float64)
}
