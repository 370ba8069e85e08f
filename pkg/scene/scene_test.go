package scene

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

func TestNewCornellBoxIsIntersectable(t *testing.T) {
	s := NewCornellBox()

	ray := core.NewRay(core.NewVec3(277.5, 277.5, -800), core.NewVec3(0, 0, 1))
	hit := material.NewHit()
	if !s.Intersect(ray, 0.001, &hit) {
		t.Fatal("expected a straight-down-the-axis ray to hit the back wall or sphere")
	}
	if math.IsInf(hit.T, 1) {
		t.Error("expected a finite hit distance")
	}
}

func TestNewCornellBoxHasOneLight(t *testing.T) {
	s := NewCornellBox()
	if len(s.Lights) != 1 {
		t.Fatalf("expected exactly one area light, got %d", len(s.Lights))
	}
}

func TestNewCornellBoxCameraLooksIntoBox(t *testing.T) {
	s := NewCornellBox()
	if s.Camera.Width() != 400 || s.Camera.Height() != 400 {
		t.Errorf("unexpected camera resolution: %dx%d", s.Camera.Width(), s.Camera.Height())
	}
}
