package geometry

import (
	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Transform wraps a child shape with an affine transform: it
// precomputes the inverse linear map, transforms incoming rays into
// the child's local space, delegates,
// and transforms the resulting surface position/normal back to world
// space. Not grounded on any single teacher file — the teacher applies
// rotation directly to mesh vertices at load time (triangle_mesh.go's
// rotateVertex) rather than wrapping a Shape, so this is written fresh
// in its idiom (precompute once, keep the hot path allocation-free).
type Transform struct {
	Child           Shape
	Linear          core.Mat3
	Translation     core.Vec3
	inverseLinear   core.Mat3
	transposeLinear core.Mat3
	bbox            core.AABB
}

func NewTransform(child Shape, linear core.Mat3, translation core.Vec3) *Transform {
	t := &Transform{
		Child:           child,
		Linear:          linear,
		Translation:     translation,
		inverseLinear:   linear.Inverse(),
		transposeLinear: linear.Transpose(),
	}
	t.bbox = t.computeWorldBounds(child.BoundingBox())
	return t
}

func (t *Transform) computeWorldBounds(local core.AABB) core.AABB {
	corners := [8]core.Vec3{
		{X: local.Min.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Max.Z},
	}
	world := make([]core.Vec3, 8)
	for i, c := range corners {
		world[i] = t.Linear.MultiplyVec(c).Add(t.Translation)
	}
	return core.NewAABBFromPoints(world...)
}

func (t *Transform) BoundingBox() core.AABB { return t.bbox }

func (t *Transform) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	localOrigin := t.inverseLinear.MultiplyVec(ray.Origin.Subtract(t.Translation))
	localDir := t.inverseLinear.MultiplyVec(ray.Direction)
	localRay := core.NewRay(localOrigin, localDir)

	if !t.Child.Intersect(localRay, tMin, hit) {
		return false
	}

	hit.Surface.Position = ray.At(hit.T)
	hit.Surface.ShadingNormal = t.transposeLinear.MultiplyVec(hit.Surface.ShadingNormal).Normalize()
	hit.Surface.GeometricNormal = t.transposeLinear.MultiplyVec(hit.Surface.GeometricNormal).Normalize()
	return true
}
