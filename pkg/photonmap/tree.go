package photonmap

import (
	"runtime"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/lumenshade/sppm/pkg/core"
)

// node is a single 3D-tree node: a splitting photon plus the axis it
// was split on (depth%3, cycling X/Y/Z), grounded on
// original_source/include/utils/kdtree.hpp's PhotonNode.
type node struct {
	photon *Photon
	axis   int
	left   *node
	right  *node
}

// Map is the balanced, median-split photon index built once per SPPM
// iteration from that iteration's emitted photons. It is read-only
// after Build returns, so concurrent gather
// queries from the eye pass's worker pool need no locking.
type Map struct {
	root    *node
	photons []Photon
}

// Build constructs the tree from photons, splitting on the median along
// a cycling axis exactly as the teacher's octree splits by bounding-box
// center — here by sorting the slice in place and recursing on the two
// halves either side of the median. The top few levels fan out across a
// worker pool the same way original_source's OpenMP build spawns tasks
// only down to log2(maxThreads) deep, since below that the recursion's
// per-call overhead dominates the benefit of another goroutine.
func Build(photons []Photon) *Map {
	if len(photons) == 0 {
		return &Map{}
	}

	pool := pond.NewPool(runtime.NumCPU())
	defer pool.StopAndWait()

	maxParallelDepth := 0
	for n := runtime.NumCPU(); n > 1; n >>= 1 {
		maxParallelDepth++
	}

	root := buildNode(pool, photons, 0, maxParallelDepth)
	return &Map{root: root, photons: photons}
}

func buildNode(pool pond.Pool, photons []Photon, depth, maxParallelDepth int) *node {
	if len(photons) == 0 {
		return nil
	}

	axis := depth % 3
	sort.Slice(photons, func(i, j int) bool {
		return axisComponent(photons[i].Position, axis) < axisComponent(photons[j].Position, axis)
	})

	mid := (len(photons) - 1) / 2
	n := &node{photon: &photons[mid], axis: axis}
	left, right := photons[:mid], photons[mid+1:]

	if depth < maxParallelDepth {
		var wg sync.WaitGroup
		wg.Add(2)
		pool.Submit(func() {
			defer wg.Done()
			n.left = buildNode(pool, left, depth+1, maxParallelDepth)
		})
		pool.Submit(func() {
			defer wg.Done()
			n.right = buildNode(pool, right, depth+1, maxParallelDepth)
		})
		wg.Wait()
	} else {
		n.left = buildNode(pool, left, depth+1, maxParallelDepth)
		n.right = buildNode(pool, right, depth+1, maxParallelDepth)
	}

	return n
}

// QueryInRange returns every photon within radiusSq of target, used by
// the eye pass's progressive gather step.
// Grounded on kdtree.hpp's searchInRange: the near-side subtree is
// always descended, and the far side only when the splitting plane
// itself is closer than the query radius.
func (m *Map) QueryInRange(target core.Vec3, radiusSq float64) []*Photon {
	var result []*Photon
	search(m.root, target, radiusSq, &result)
	return result
}

func search(n *node, target core.Vec3, radiusSq float64, result *[]*Photon) {
	if n == nil {
		return
	}

	diff := target.Subtract(n.photon.Position)
	if diff.LengthSquared() < radiusSq {
		*result = append(*result, n.photon)
	}

	axisDiff := axisComponent(target, n.axis) - axisComponent(n.photon.Position, n.axis)
	near, far := n.left, n.right
	if axisDiff >= 0 {
		near, far = n.right, n.left
	}

	search(near, target, radiusSq, result)
	if axisDiff*axisDiff < radiusSq {
		search(far, target, radiusSq, result)
	}
}

// Len returns the number of photons indexed.
func (m *Map) Len() int {
	return len(m.photons)
}
