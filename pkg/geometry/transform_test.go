package geometry

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

func TestTransformTranslateSphere(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambert(core.NewVec3(1, 1, 1)))
	moved := NewTransform(sphere, core.Identity3(), core.NewVec3(5, 0, 0))

	ray := core.NewRay(core.NewVec3(5, 0, -5), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !moved.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected hit against the translated sphere")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("expected t=4, got %f", hit.T)
	}
	if !hit.Surface.Position.Equals(core.NewVec3(5, 0, -1)) {
		t.Errorf("unexpected world-space hit point: %v", hit.Surface.Position)
	}
}

func TestTransformScaleSphereIntoEllipsoid(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambert(core.NewVec3(1, 1, 1)))
	stretched := NewTransform(sphere, core.Scale3(2, 1, 1), core.Vec3{})

	ray := core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0))
	hit := material.NewHit()
	if !stretched.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected hit against the stretched sphere")
	}
	if math.Abs(hit.Surface.Position.X-(-2)) > 1e-9 {
		t.Errorf("expected hit at x=-2 after 2x scale, got %v", hit.Surface.Position)
	}
}
