package geometry

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

func TestTriangleIntersectCenterHit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		material.NewLambert(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, -0.3, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !tri.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("expected t=5, got %f", hit.T)
	}
}

func TestTriangleIntersectOutsideMisses(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		material.NewLambert(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if tri.Intersect(ray, 0.001, &hit) {
		t.Errorf("expected miss outside triangle, got hit at t=%f", hit.T)
	}
}

func TestTriangleIntersectParallelMisses(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		material.NewLambert(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(1, 0, 0))
	hit := material.NewHit()
	if tri.Intersect(ray, 0.001, &hit) {
		t.Errorf("expected miss for parallel ray, got hit at t=%f", hit.T)
	}
}

func TestTriangleShadingNormalInterpolation(t *testing.T) {
	tri := NewTriangleFull(
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0).Normalize(),
		core.Vec2{}, core.Vec2{}, core.Vec2{}, false,
		material.NewLambert(core.NewVec3(1, 1, 1)),
	)
	ray := core.NewRay(core.NewVec3(0, 1, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !tri.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected hit near apex vertex")
	}
	// Near the apex the shading normal should lean toward N2, away from (0,0,1).
	if hit.Surface.ShadingNormal.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("expected interpolated normal to differ from the uniform-normal case")
	}
}

func TestTriangleSamplePointPDF(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
		material.NewLambert(core.NewVec3(1, 1, 1)),
	)
	rng := core.NewSampler(9)
	_, pdf := tri.SamplePoint(rng)
	area := 2.0 // (1/2)*2*2
	want := 1 / area
	if math.Abs(pdf-want) > 1e-9 {
		t.Errorf("expected pdf=1/area=%f, got %f", want, pdf)
	}
}
