package geometry

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Sphere is the sphere primitive. Grounded on the teacher's
// pkg/geometry/sphere.go quadratic solve, adapted to normalize the ray
// direction before solving (the octree/transform wrapper may hand
// primitives an unnormalized ray) and to the shared Hit/HitSurface
// contract.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

func (s *Sphere) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	dir := ray.Direction.Normalize()
	length := ray.Direction.Length()
	if length < 1e-12 {
		return false
	}
	oc := ray.Origin.Subtract(s.Center)

	a := dir.Dot(dir)
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// root is measured along the normalized direction; tRay is the same
	// point in the caller's ray parameter, which is what hit.T holds.
	root := (-halfB - sqrtD) / a
	tRay := root / length
	if tRay < tMin || tRay >= hit.T {
		root = (-halfB + sqrtD) / a
		tRay = root / length
		if tRay < tMin || tRay >= hit.T {
			return false
		}
	}

	point := ray.Origin.Add(dir.Multiply(root))
	outwardNormal := point.Subtract(s.Center).Multiply(1 / s.Radius)

	theta := math.Acos(-outwardNormal.Y)
	phi := math.Atan2(-outwardNormal.Z, outwardNormal.X) + math.Pi
	uv := core.NewVec2(phi/(2*math.Pi), theta/math.Pi)

	return hit.TryUpdate(tRay, tMin, s.Material, material.HitSurface{
		Position:        point,
		ShadingNormal:   outwardNormal,
		GeometricNormal: outwardNormal,
		UV:              uv,
		HasTexture:      s.Material != nil && s.Material.HasTexture(),
	})
}

func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// SamplePoint draws a uniform point on the sphere's surface via
// z=2u-1, φ=2πv; pdf = 1/(4πr²).
func (s *Sphere) SamplePoint(rng *core.Sampler) (SurfacePoint, float64) {
	u, v := rng.Float64(), rng.Float64()
	z := 2*u - 1
	phi := 2 * math.Pi * v
	r := math.Sqrt(max(0, 1-z*z))
	normal := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
	point := s.Center.Add(normal.Multiply(s.Radius))
	pdf := 1 / (4 * math.Pi * s.Radius * s.Radius)
	return SurfacePoint{Position: point, Normal: normal}, pdf
}
