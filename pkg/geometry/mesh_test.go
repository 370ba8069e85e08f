package geometry

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

func quadMesh(mat material.Material) *Mesh {
	tris := []*Triangle{
		NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(1, 1, 0), mat),
		NewTriangle(core.NewVec3(-1, -1, 0), core.NewVec3(1, 1, 0), core.NewVec3(-1, 1, 0), mat),
	}
	return NewMesh(tris)
}

func TestMeshIntersectDelegatesToOctree(t *testing.T) {
	mesh := quadMesh(material.NewLambert(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !mesh.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected hit through the octree-backed mesh")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("expected t=5, got %f", hit.T)
	}
}

func TestMeshIntersectMiss(t *testing.T) {
	mesh := quadMesh(material.NewLambert(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if mesh.Intersect(ray, 0.001, &hit) {
		t.Errorf("expected miss, got hit at t=%f", hit.T)
	}
}

func TestMeshSamplePointScalesByTriangleCount(t *testing.T) {
	mesh := quadMesh(material.NewLambert(core.NewVec3(1, 1, 1)))
	rng := core.NewSampler(11)
	_, pdf := mesh.SamplePoint(rng)
	// Each of the two triangles has area 2 (pdf 1/2); the mesh divides
	// by its triangle count.
	if want := 0.5 / 2; math.Abs(pdf-want) > 1e-9 {
		t.Fatalf("expected pdf=%f, got %f", want, pdf)
	}
}

func TestOctreeManyTrianglesSplitsIntoLeaves(t *testing.T) {
	var tris []*Triangle
	mat := material.NewLambert(core.NewVec3(1, 1, 1))
	for i := 0; i < 40; i++ {
		x := float64(i) * 0.1
		tris = append(tris, NewTriangle(
			core.NewVec3(x, -1, 0), core.NewVec3(x+0.05, -1, 0), core.NewVec3(x, 1, 0), mat,
		))
	}
	mesh := NewMesh(tris)
	ray := core.NewRay(core.NewVec3(0.02, 0, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !mesh.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected hit against one of the many thin triangles")
	}
}

func TestGroupIntersectFoldsOverChildren(t *testing.T) {
	mat := material.NewLambert(core.NewVec3(1, 1, 1))
	near := NewSphere(core.NewVec3(0, 0, 5), 1, mat)
	far := NewSphere(core.NewVec3(0, 0, 10), 1, mat)
	group := NewGroup([]Shape{far, near})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !group.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("group should report the nearer child's hit, got t=%f", hit.T)
	}
}

func TestGroupSamplePointScalesByChildCount(t *testing.T) {
	mat := material.NewLambert(core.NewVec3(1, 1, 1))
	a := NewSphere(core.NewVec3(0, 0, 0), 1, mat)
	b := NewSphere(core.NewVec3(5, 0, 0), 1, mat)
	group := NewGroup([]Shape{a, b})
	rng := core.NewSampler(3)
	_, pdf := group.SamplePoint(rng)
	want := 1 / (4 * math.Pi * 1 * 1) / 2
	if math.Abs(pdf-want) > 1e-9 {
		t.Errorf("expected pdf=%f, got %f", want, pdf)
	}
}
