package renderer

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
)

func TestPerspectiveBasisIsOrthonormal(t *testing.T) {
	cam := NewPerspective(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 200, 100, 2.2, math.Pi/3)

	if math.Abs(cam.horizontal.Length()-1) > 1e-9 {
		t.Errorf("expected unit horizontal, got length %f", cam.horizontal.Length())
	}
	if math.Abs(cam.up.Length()-1) > 1e-9 {
		t.Errorf("expected unit up, got length %f", cam.up.Length())
	}
	if math.Abs(cam.horizontal.Dot(cam.up)) > 1e-9 {
		t.Errorf("expected horizontal ⟂ up, got dot=%f", cam.horizontal.Dot(cam.up))
	}
	if math.Abs(cam.horizontal.Dot(cam.direction)) > 1e-9 {
		t.Errorf("expected horizontal ⟂ direction, got dot=%f", cam.horizontal.Dot(cam.direction))
	}
}

func TestPerspectiveCenterPixelLooksForward(t *testing.T) {
	cam := NewPerspective(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 101, 101, 2.2, math.Pi/3)
	rng := core.NewSampler(1)

	ray := cam.SampleRay(50, 50, rng)
	cosAngle := ray.Direction.Normalize().Dot(core.NewVec3(0, 0, 1))
	if cosAngle < 0.99 {
		t.Errorf("expected the center pixel to look roughly forward, got cos=%f", cosAngle)
	}
}

func TestPerspectiveRayOriginatesAtCenter(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	cam := NewPerspective(center, core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 64, 64, 2.2, math.Pi/4)
	rng := core.NewSampler(5)
	ray := cam.SampleRay(10, 10, rng)
	if !ray.Origin.Equals(center) {
		t.Errorf("expected pinhole rays to originate at the camera center, got %v", ray.Origin)
	}
}

func TestThinLensRayOriginatesAtCenter(t *testing.T) {
	center := core.NewVec3(0, 0, 0)
	cam := NewThinLens(center, core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 64, 64, 2.2, math.Pi/4, 0.5, 2.0)
	rng := core.NewSampler(3)
	ray := cam.SampleRay(32, 32, rng)
	if !ray.Origin.Equals(center) {
		t.Errorf("thin-lens rays still originate at the center, lens offset is baked into direction, got %v", ray.Origin)
	}
}

func TestThinLensDirectionVariesAcrossAperture(t *testing.T) {
	cam := NewThinLens(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 64, 64, 2.2, math.Pi/4, 2.0, 3.0)
	rng := core.NewSampler(42)

	first := cam.SampleRay(32, 32, rng)
	second := cam.SampleRay(32, 32, rng)
	if first.Direction.Equals(second.Direction) {
		t.Errorf("expected aperture sampling to vary the ray direction across calls")
	}
}
