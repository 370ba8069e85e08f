package geometry

import (
	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Group owns a flat list of shapes and folds Intersect across all of
// them, taking whichever child tightens hit.T. This is a deliberately
// simpler structure than the teacher's BVH (pkg/geometry/bvh.go): an
// explicit OR fold over children with no spatial partitioning at this
// layer, since partitioning work happens one level down (the octree
// for meshes, the photon map for gather queries). See DESIGN.md for
// the full BVH-drop rationale; the median-split recursion idiom itself
// survives in pkg/photonmap's tree build.
type Group struct {
	Shapes []Shape
	bbox   core.AABB
}

func NewGroup(shapes []Shape) *Group {
	g := &Group{Shapes: shapes}
	for i, s := range shapes {
		if i == 0 {
			g.bbox = s.BoundingBox()
		} else {
			g.bbox = g.bbox.Union(s.BoundingBox())
		}
	}
	return g
}

func (g *Group) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	found := false
	for _, s := range g.Shapes {
		if s.Intersect(ray, tMin, hit) {
			found = true
		}
	}
	return found
}

func (g *Group) BoundingBox() core.AABB {
	return g.bbox
}

// SamplePoint picks a child shape uniformly and forwards to it, scaling
// the child's pdf by 1/N. If the picked child isn't Sampleable (e.g. a
// Plane), or the group is empty, it returns pdf -1 instead of a point;
// Group does not check its members, so it satisfies Sampleable
// whatever its children are.
func (g *Group) SamplePoint(rng *core.Sampler) (SurfacePoint, float64) {
	n := len(g.Shapes)
	if n == 0 {
		return SurfacePoint{}, -1
	}
	idx := rng.Intn(n)
	sampleable, ok := g.Shapes[idx].(Sampleable)
	if !ok {
		return SurfacePoint{}, -1
	}
	point, pdf := sampleable.SamplePoint(rng)
	if pdf < 0 {
		return point, pdf
	}
	return point, pdf / float64(n)
}
