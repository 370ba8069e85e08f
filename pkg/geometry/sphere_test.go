package geometry

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

func TestSphereIntersectMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambert(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))
	hit := material.NewHit()
	if sphere.Intersect(ray, 0.001, &hit) {
		t.Fatalf("expected miss, got hit at t=%f", hit.T)
	}
}

func TestSphereIntersectHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambert(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !sphere.Intersect(ray, 0.001, &hit) {
		t.Fatalf("expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("expected t=4, got %f", hit.T)
	}
	if !hit.Surface.GeometricNormal.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("unexpected normal: %v", hit.Surface.GeometricNormal)
	}
}

func TestSphereIntersectRespectsNearerExistingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambert(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	hit.T = 3 // closer than the sphere's t=4
	if sphere.Intersect(ray, 0.001, &hit) {
		t.Fatalf("should not override a strictly nearer existing hit")
	}
}

func TestSphereBoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2.0, nil)
	box := sphere.BoundingBox()
	if !box.Min.Equals(core.NewVec3(-1, 0, 1)) || !box.Max.Equals(core.NewVec3(3, 4, 5)) {
		t.Errorf("unexpected bounding box: %v %v", box.Min, box.Max)
	}
}

func TestSphereSamplePointOnSurface(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, nil)
	rng := core.NewSampler(5)
	for i := 0; i < 50; i++ {
		p, pdf := sphere.SamplePoint(rng)
		dist := p.Position.Subtract(sphere.Center).Length()
		if math.Abs(dist-sphere.Radius) > 1e-9 {
			t.Fatalf("sampled point not on sphere surface: distance=%f", dist)
		}
		wantPDF := 1 / (4 * math.Pi * sphere.Radius * sphere.Radius)
		if math.Abs(pdf-wantPDF) > 1e-9 {
			t.Fatalf("unexpected pdf %f, want %f", pdf, wantPDF)
		}
	}
}
