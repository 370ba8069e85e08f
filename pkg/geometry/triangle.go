package geometry

import (
	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Triangle is a single triangle, used standalone and as the octree's
// leaf primitive inside a Mesh. Grounded on the teacher's
// pkg/geometry/triangle.go Möller–Trumbore solve.
type Triangle struct {
	V0, V1, V2    core.Vec3
	N0, N1, N2    core.Vec3 // per-vertex shading normals; equal to the face normal when unsmoothed
	UV0, UV1, UV2 core.Vec2
	HasUV         bool
	Material      material.Material
	faceNormal    core.Vec3
	bbox          core.AABB
}

// NewTriangle builds a flat-shaded, untextured triangle.
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	n := faceNormalOf(v0, v1, v2)
	return NewTriangleFull(v0, v1, v2, n, n, n, core.Vec2{}, core.Vec2{}, core.Vec2{}, false, mat)
}

// NewTriangleFull builds a triangle with explicit per-vertex shading
// normals and uvs, as produced by the OBJ loader's `f v/vt/vn` faces.
func NewTriangleFull(v0, v1, v2, n0, n1, n2 core.Vec3, uv0, uv1, uv2 core.Vec2, hasUV bool, mat material.Material) *Triangle {
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n0, N1: n1, N2: n2,
		UV0: uv0, UV1: uv1, UV2: uv2, HasUV: hasUV,
		Material:   mat,
		faceNormal: faceNormalOf(v0, v1, v2),
		bbox:       core.NewAABBFromPoints(v0, v1, v2),
	}
}

func faceNormalOf(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

func (t *Triangle) BoundingBox() core.AABB { return t.bbox }

// Intersect implements Möller–Trumbore: reject |det| < 1e-6, reject
// barycentrics outside [0,1] with β+γ≤1, interpolate shading normal and
// uv from the per-vertex attributes.
func (t *Triangle) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	const epsilon = 1e-6
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return false
	}
	invDet := 1 / det

	s := ray.Origin.Subtract(t.V0)
	beta := invDet * s.Dot(h)
	if beta < 0 || beta > 1 {
		return false
	}

	q := s.Cross(edge1)
	gamma := invDet * ray.Direction.Dot(q)
	if gamma < 0 || beta+gamma > 1 {
		return false
	}

	tParam := invDet * edge2.Dot(q)
	if tParam < tMin || tParam >= hit.T {
		return false
	}

	alpha := 1 - beta - gamma
	shadingNormal := t.N0.Multiply(alpha).Add(t.N1.Multiply(beta)).Add(t.N2.Multiply(gamma)).Normalize()
	uv := core.NewVec2(beta, gamma)
	if t.HasUV {
		uv = t.UV0.Multiply(alpha).Add(t.UV1.Multiply(beta)).Add(t.UV2.Multiply(gamma))
	}

	return hit.TryUpdate(tParam, tMin, t.Material, material.HitSurface{
		Position:        ray.At(tParam),
		ShadingNormal:   shadingNormal,
		GeometricNormal: t.faceNormal,
		UV:              uv,
		HasTexture:      t.HasUV && t.Material != nil && t.Material.HasTexture(),
	})
}

// SamplePoint draws a uniform point by area: (a,b)~U(0,1)^2, reflected
// into the triangle when a+b>=1; pdf = 2/|e1 x e2|.
func (t *Triangle) SamplePoint(rng *core.Sampler) (SurfacePoint, float64) {
	a, b := rng.Float64(), rng.Float64()
	if a+b >= 1 {
		a, b = 1-a, 1-b
	}
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	point := t.V0.Add(edge1.Multiply(a)).Add(edge2.Multiply(b))
	pdf := 2 / edge1.Cross(edge2).Length()
	return SurfacePoint{Position: point, Normal: t.faceNormal}, pdf
}
