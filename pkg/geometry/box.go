package geometry

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// Box is the axis-aligned rectangle/box primitive — the same type
// serves as a renderable surface and as the octree's per-node test box,
// so its Intersect is written to tolerate an unnormalized ray
// direction.
//
// Grounded on original_source/include/geometry/rectangle.hpp's
// three-position (LEFT/RIGHT/MIDDLE) slab test, ported rather than the
// teacher's six-quad Box (pkg/geometry/box.go), since the octree needs
// exactly this box-vs-ray routine shared with the renderable primitive.
type Box struct {
	Min, Max core.Vec3
	Material material.Material
}

type boxPosition int

const (
	posLeft boxPosition = iota
	posRight
	posMiddle
)

// NewBox builds a Box from two opposite corners, swapping components so
// Min <= Max on every axis.
func NewBox(a, b core.Vec3, mat material.Material) *Box {
	box := &Box{Min: a, Max: b, Material: mat}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

func (b *Box) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}

// Intersect implements the tmin-adjusted three-position test from the
// original renderer: for each axis classify the ray origin as LEFT of,
// RIGHT of, or inside (MIDDLE) the box slab, track whether the origin
// is inside all three slabs, and resolve either the entry plane
// (outside) or the exit plane (inside, used by the octree's early-out
// check) via the axis with the largest/smallest candidate t.
func (b *Box) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	dir := ray.Direction.Normalize()
	length := ray.Direction.Length()
	if length < 1e-12 {
		return false
	}
	origin := ray.Origin

	inside := true
	var pos [3]boxPosition
	var candidate core.Vec3
	lo, hi := b.Min, b.Max

	for i := 0; i < 3; i++ {
		o, d := origin.At(i), dir.At(i)
		switch {
		case o < lo.At(i)-math.Max(0, tMin*d):
			pos[i] = posLeft
			inside = false
			candidate = setAxis(candidate, i, lo.At(i))
		case o > hi.At(i)+math.Max(0, -tMin*d):
			pos[i] = posRight
			inside = false
			candidate = setAxis(candidate, i, hi.At(i))
		default:
			pos[i] = posMiddle
			if d > 0 {
				candidate = setAxis(candidate, i, hi.At(i))
			} else {
				candidate = setAxis(candidate, i, lo.At(i))
			}
		}
	}

	if !inside {
		return b.intersectOutside(origin, dir, length, pos, candidate, tMin, hit)
	}
	return b.intersectInside(origin, dir, length, lo, hi, tMin, hit)
}

func (b *Box) intersectOutside(origin, dir core.Vec3, length float64, pos [3]boxPosition, candidate core.Vec3, tMin float64, hit *material.Hit) bool {
	tmax := 0.0
	maxIdx := 0
	found := false
	for i := 0; i < 3; i++ {
		if pos[i] == posMiddle {
			continue
		}
		d := dir.At(i)
		if math.Abs(d) <= 1e-6 {
			continue
		}
		t := (candidate.At(i) - origin.At(i)) / d
		if !found || tmax < t {
			tmax = t
			maxIdx = i
			found = true
		}
	}
	if !found {
		return false
	}

	tWorld := tmax / length
	if tWorld < tMin || tWorld >= hit.T {
		return false
	}

	position := origin.Add(dir.Multiply(tmax))
	for i := 0; i < 3; i++ {
		if i == maxIdx {
			continue
		}
		if position.At(i) < b.Min.At(i)-1e-6 || position.At(i) > b.Max.At(i)+1e-6 {
			return false
		}
	}

	sign := -1.0
	if pos[maxIdx] == posRight {
		sign = 1.0
	}
	normal := setAxis(core.Vec3{}, maxIdx, sign)

	return hit.TryUpdate(tWorld, tMin, b.Material, material.HitSurface{
		Position:        position,
		ShadingNormal:   normal,
		GeometricNormal: normal,
		UV:              b.faceUV(position, maxIdx, sign > 0),
		HasTexture:      b.Material != nil && b.Material.HasTexture(),
	})
}

func (b *Box) intersectInside(origin, dir core.Vec3, length float64, lo, hi core.Vec3, tMin float64, hit *material.Hit) bool {
	best := math.Inf(1)
	minIdx := -1
	for i := 0; i < 3; i++ {
		d := dir.At(i)
		if math.Abs(d) <= 1e-6 {
			continue
		}
		var c float64
		if d > 0 {
			c = hi.At(i)
		} else {
			c = lo.At(i)
		}
		t := (c - origin.At(i)) / d
		if t >= 0 && t < best {
			best = t
			minIdx = i
		}
	}
	if minIdx < 0 {
		return false
	}

	tWorld := best / length
	if tWorld < tMin || tWorld >= hit.T {
		return false
	}

	position := origin.Add(dir.Multiply(best))
	sign := 1.0
	if dir.At(minIdx) < 0 {
		sign = -1.0
	}
	normal := setAxis(core.Vec3{}, minIdx, sign)

	return hit.TryUpdate(tWorld, tMin, b.Material, material.HitSurface{
		Position:        position,
		ShadingNormal:   normal,
		GeometricNormal: normal,
		UV:              b.faceUV(position, minIdx, sign > 0),
		HasTexture:      b.Material != nil && b.Material.HasTexture(),
	})
}

// faceUV maps a box surface hit to the unfolded cross-net layout keyed
// by the axis/sign pair, ported from
// original_source/include/geometry/rectangle.hpp's getUV.
func (b *Box) faceUV(p core.Vec3, axis int, positive bool) core.Vec2 {
	size := b.Max.Subtract(b.Min)
	point := p.Subtract(b.Min)
	face := axis * 2
	if !positive {
		face++
	}
	switch face {
	case 0: // +x
		return core.NewVec2(point.Y/(2*(size.X+size.Y)), (point.Z+size.X)/(2*size.X+size.Z))
	case 1: // -x
		return core.NewVec2((2*size.Y+size.X-point.Y)/(2*(size.X+size.Y)), (point.Z+size.X)/(2*size.X+size.Z))
	case 2: // +y
		return core.NewVec2((size.Y+size.X-point.X)/(2*(size.X+size.Y)), (point.Z+size.X)/(2*size.X+size.Z))
	case 3: // -y
		return core.NewVec2((2*size.Y+size.X+point.X)/(2*(size.X+size.Y)), (point.Z+size.X)/(2*size.X+size.Z))
	case 4: // +z
		return core.NewVec2(point.Y/(2*(size.X+size.Y)), 1-point.X/(2*size.X+size.Z))
	default: // -z
		return core.NewVec2(point.Y/(2*(size.X+size.Y)), point.X/(2*size.X+size.Z))
	}
}

// SamplePoint draws a point uniformly over the box's surface area,
// weighted by each pair of opposing faces' combined area.
func (b *Box) SamplePoint(rng *core.Sampler) (SurfacePoint, float64) {
	size := b.Max.Subtract(b.Min)
	areaXY := size.X * size.Y
	areaYZ := size.Y * size.Z
	areaZX := size.Z * size.X
	total := areaXY + areaYZ + areaZX
	pdf := 1 / (2 * total)

	face := rng.Float64() * total
	switch {
	case face < areaXY:
		low := face < areaXY/2
		z := b.Max.Z
		n := 1.0
		if low {
			z, n = b.Min.Z, -1.0
		}
		p := core.NewVec3(b.Min.X+rng.Float64()*size.X, b.Min.Y+rng.Float64()*size.Y, z)
		return SurfacePoint{Position: p, Normal: core.NewVec3(0, 0, n)}, pdf
	case face < areaXY+areaYZ:
		low := face-areaXY < areaYZ/2
		x := b.Max.X
		n := 1.0
		if low {
			x, n = b.Min.X, -1.0
		}
		p := core.NewVec3(x, b.Min.Y+rng.Float64()*size.Y, b.Min.Z+rng.Float64()*size.Z)
		return SurfacePoint{Position: p, Normal: core.NewVec3(n, 0, 0)}, pdf
	default:
		low := face-areaXY-areaYZ < areaZX/2
		y := b.Max.Y
		n := 1.0
		if low {
			y, n = b.Min.Y, -1.0
		}
		p := core.NewVec3(b.Min.X+rng.Float64()*size.X, y, b.Min.Z+rng.Float64()*size.Z)
		return SurfacePoint{Position: p, Normal: core.NewVec3(0, n, 0)}, pdf
	}
}

func setAxis(v core.Vec3, axis int, value float64) core.Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
