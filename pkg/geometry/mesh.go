package geometry

import (
	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Mesh is a thin façade over a triangle set and its octree: Intersect
// delegates entirely to the octree, SamplePoint picks a triangle
// uniformly at random and scales its pdf by 1/triangle_count. Grounded
// on the teacher's pkg/geometry/triangle_mesh.go field layout, with the
// internal accelerator swapped from a BVH to an octree.
type Mesh struct {
	Triangles []*Triangle
	octree    *Octree
	bbox      core.AABB
}

// NewMesh builds a mesh from already-constructed triangles (the OBJ/MTL
// loader is responsible for vertex/normal/uv interpolation and per-face
// material assignment; this constructor only builds the accelerator).
func NewMesh(tris []*Triangle) *Mesh {
	m := &Mesh{Triangles: tris, octree: BuildOctree(tris)}
	if len(tris) > 0 {
		m.bbox = tris[0].BoundingBox()
		for _, tri := range tris[1:] {
			m.bbox = m.bbox.Union(tri.BoundingBox())
		}
	}
	return m
}

func (m *Mesh) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	return m.octree.Intersect(m.Triangles, ray, tMin, hit)
}

func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// SamplePoint selects a triangle uniformly and samples a point on it,
// scaling the triangle's own area pdf by 1/triangle_count.
func (m *Mesh) SamplePoint(rng *core.Sampler) (SurfacePoint, float64) {
	if len(m.Triangles) == 0 {
		return SurfacePoint{}, -1
	}
	idx := rng.Intn(len(m.Triangles))
	point, pdf := m.Triangles[idx].SamplePoint(rng)
	return point, pdf / float64(len(m.Triangles))
}
