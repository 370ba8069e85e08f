package geometry

import (
	"math"
	"sort"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

const (
	octreeMaxTriangles = 16
	octreeMaxDepth     = 8
)

// octNode is one node of the per-mesh spatial index. Grounded on
// original_source/include/utils/octree.h + src/octree.cpp, with the
// triangle-duplication bug in the original build() (which pushed the
// octant index instead of the triangle id) fixed rather than
// reproduced.
type octNode struct {
	bbox     core.AABB
	leaf     bool
	faceIDs  []int
	children [8]*octNode
}

// Octree holds faceIDs into a Mesh's Triangles slice; it never owns the
// mesh itself, avoiding a Mesh↔Octree cyclic ownership by modeling the
// relationship as composition plus index handles.
type Octree struct {
	root *octNode
}

// BuildOctree partitions triangle indices [0,len(tris)) by recursive
// 8-way bbox split. Leaves form at <= octreeMaxTriangles ids or at
// depth >= octreeMaxDepth; a triangle is duplicated into every child
// whose bbox overlaps its own AABB.
func BuildOctree(tris []*Triangle) *Octree {
	if len(tris) == 0 {
		return &Octree{}
	}
	bbox := tris[0].BoundingBox()
	ids := make([]int, len(tris))
	for i, tri := range tris {
		ids[i] = i
		bbox = bbox.Union(tri.BoundingBox())
	}
	return &Octree{root: buildOctNode(tris, bbox, ids, 0)}
}

func buildOctNode(tris []*Triangle, bbox core.AABB, ids []int, depth int) *octNode {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) <= octreeMaxTriangles || depth >= octreeMaxDepth {
		return &octNode{bbox: bbox, leaf: true, faceIDs: ids}
	}

	children := octantBoxes(bbox)
	var splitIDs [8][]int
	for _, id := range ids {
		triBox := tris[id].BoundingBox()
		for c := 0; c < 8; c++ {
			if aabbOverlaps(children[c], triBox) {
				splitIDs[c] = append(splitIDs[c], id)
			}
		}
	}

	node := &octNode{bbox: bbox, leaf: false}
	for c := 0; c < 8; c++ {
		node.children[c] = buildOctNode(tris, children[c], splitIDs[c], depth+1)
	}
	return node
}

// octantBoxes splits bbox into its 8 children at the center point.
func octantBoxes(bbox core.AABB) [8]core.AABB {
	center := bbox.Center()
	var out [8]core.AABB
	for c := 0; c < 8; c++ {
		lo, hi := bbox.Min, bbox.Max
		if c&1 != 0 {
			lo.X = center.X
		} else {
			hi.X = center.X
		}
		if c&2 != 0 {
			lo.Y = center.Y
		} else {
			hi.Y = center.Y
		}
		if c&4 != 0 {
			lo.Z = center.Z
		} else {
			hi.Z = center.Z
		}
		out[c] = core.NewAABB(lo, hi)
	}
	return out
}

func aabbOverlaps(a, b core.AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Intersect walks the tree, visiting children in ascending hit-t order
// and stopping early once a confirmed hit lies inside the
// most-recently-visited child's box.
func (o *Octree) Intersect(tris []*Triangle, ray core.Ray, tMin float64, hit *material.Hit) bool {
	if o.root == nil {
		return false
	}
	if !aabbHits(o.root.bbox, ray, tMin, hit.T) {
		return false
	}
	return traverseOctree(tris, o.root, ray, tMin, hit)
}

func traverseOctree(tris []*Triangle, node *octNode, ray core.Ray, tMin float64, hit *material.Hit) bool {
	if node == nil {
		return false
	}
	if node.leaf {
		found := false
		for _, id := range node.faceIDs {
			if tris[id].Intersect(ray, tMin, hit) {
				found = true
			}
		}
		return found
	}

	type candidate struct {
		t      float64
		octant int
	}
	var candidates []candidate
	for c := 0; c < 8; c++ {
		child := node.children[c]
		if child == nil {
			continue
		}
		if t, ok := aabbEntryT(child.bbox, ray, tMin, hit.T); ok {
			candidates = append(candidates, candidate{t: t, octant: c})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].t < candidates[j].t })

	found := false
	for _, cand := range candidates {
		child := node.children[cand.octant]
		if traverseOctree(tris, child, ray, tMin, hit) {
			found = true
			if aabbContains(child.bbox, hit.Surface.Position) {
				break
			}
		}
	}
	return found
}

// aabbEntryT returns the ray's entry parameter into box (clamped to
// tMin) and whether the ray intersects box within [tMin, tMax).
func aabbEntryT(box core.AABB, ray core.Ray, tMin, tMax float64) (float64, bool) {
	lo, hi := tMin, tMax
	for axis := 0; axis < 3; axis++ {
		origin, dir := ray.Origin.At(axis), ray.Direction.At(axis)
		minV, maxV := box.Min.At(axis), box.Max.At(axis)
		if math.Abs(dir) < 1e-12 {
			if origin < minV || origin > maxV {
				return 0, false
			}
			continue
		}
		inv := 1 / dir
		t1, t2 := (minV-origin)*inv, (maxV-origin)*inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > lo {
			lo = t1
		}
		if t2 < hi {
			hi = t2
		}
		if lo > hi {
			return 0, false
		}
	}
	return lo, true
}

func aabbHits(box core.AABB, ray core.Ray, tMin, tMax float64) bool {
	_, ok := aabbEntryT(box, ray, tMin, tMax)
	return ok
}

func aabbContains(box core.AABB, p core.Vec3) bool {
	const eps = 1e-6
	return p.X >= box.Min.X-eps && p.X <= box.Max.X+eps &&
		p.Y >= box.Min.Y-eps && p.Y <= box.Max.Y+eps &&
		p.Z >= box.Min.Z-eps && p.Z <= box.Max.Z+eps
}
