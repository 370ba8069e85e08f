package geometry

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Plane is the infinite plane primitive, defined implicitly by
// normal·p + offset = 0. An optional (e1, e2, origin) basis gives it a
// uv parameterization for textured floors; without one, UV is always
// (0,0).
//
// Grounded on the teacher's pkg/geometry/plane.go point/normal solve,
// reshaped to the offset form the scene grammar uses and to the shared
// Hit contract. Planes are degenerate for sample_point (infinite area)
// so they never implement Sampleable.
type Plane struct {
	Normal         core.Vec3
	Offset         float64
	E1, E2, Origin core.Vec3
	HasBasis       bool
	Material       material.Material
}

func NewPlane(normal core.Vec3, offset float64, mat material.Material) *Plane {
	return &Plane{Normal: normal.Normalize(), Offset: offset, Material: mat}
}

func NewTexturedPlane(normal core.Vec3, offset float64, e1, e2, origin core.Vec3, mat material.Material) *Plane {
	return &Plane{Normal: normal.Normalize(), Offset: offset, E1: e1, E2: e2, Origin: origin, HasBasis: true, Material: mat}
}

func (p *Plane) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < 1e-8 {
		return false
	}

	t := -(ray.Origin.Dot(p.Normal) + p.Offset) / denom
	if t < tMin || t >= hit.T {
		return false
	}

	point := ray.At(t)
	uv := core.NewVec2(0, 0)
	if p.HasBasis {
		rel := point.Subtract(p.Origin)
		uv = core.NewVec2(rel.Dot(p.E1), rel.Dot(p.E2))
	}

	return hit.TryUpdate(t, tMin, p.Material, material.HitSurface{
		Position:        point,
		ShadingNormal:   p.Normal,
		GeometricNormal: p.Normal,
		UV:              uv,
		HasTexture:      p.HasBasis && p.Material != nil && p.Material.HasTexture(),
	})
}

// BoundingBox returns a very large but finite AABB, since octrees and
// groups over a mixed scene need *some* bound to union against.
func (p *Plane) BoundingBox() core.AABB {
	const big = 1e6
	return core.NewAABB(core.NewVec3(-big, -big, -big), core.NewVec3(big, big, big))
}
