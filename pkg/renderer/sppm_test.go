package renderer

import (
	"math"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
	"github.com/lumenshade/sppm/pkg/lights"
	"github.com/lumenshade/sppm/pkg/material"
)

// fakeScene is a minimal renderer.Scene for exercising Render() end to
// end without depending on pkg/scene, which imports this package for
// the Camera type and would otherwise cycle back.
type fakeScene struct {
	root        geometry.Shape
	cam         Camera
	sceneLights []lights.Light
	background  core.Vec3
	ambient     core.Vec3
}

func (s *fakeScene) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	return s.root.Intersect(ray, tMin, hit)
}
func (s *fakeScene) Cam() Camera                 { return s.cam }
func (s *fakeScene) SceneLights() []lights.Light { return s.sceneLights }
func (s *fakeScene) BackgroundColor() core.Vec3  { return s.background }
func (s *fakeScene) AmbientColor() core.Vec3     { return s.ambient }

func newTestScene() *fakeScene {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 3), 1, material.NewLambert(core.NewVec3(0.8, 0.2, 0.2)))
	cam := NewPerspective(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 8, 8, 2.2, math.Pi/3)
	light := lights.NewPointLight(core.NewVec3(0, 2, 1), core.NewVec3(50, 50, 50))
	return &fakeScene{
		root:        sphere,
		cam:         cam,
		sceneLights: []lights.Light{light},
		background:  core.NewVec3(0.02, 0.02, 0.05),
		ambient:     core.NewVec3(0.05, 0.05, 0.05),
	}
}

func testConfig() Config {
	return Config{
		PhotonCount:   200,
		Iterations:    2,
		MaxDepth:      4,
		RaysPerPixel:  1,
		InitialRadius: 0.5,
		Alpha:         0.7,
		NumWorkers:    2,
		PreviewDir:    "",
	}
}

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

func TestRenderProducesFiniteNonNegativeRadiance(t *testing.T) {
	scene := newTestScene()
	r := NewRenderer(scene, testConfig(), nopLogger{})
	frame, err := r.Render()
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(frame) != 8*8 {
		t.Fatalf("expected %d pixels, got %d", 8*8, len(frame))
	}
	for i, c := range frame {
		if !c.IsFinitePositive() {
			t.Fatalf("pixel %d has non-finite/negative radiance: %v", i, c)
		}
	}
}

func TestRenderShrinksGatherRadius(t *testing.T) {
	scene := newTestScene()
	config := testConfig()
	config.Iterations = 5
	r := NewRenderer(scene, config, nopLogger{})
	initial := r.radius
	if _, err := r.Render(); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if r.radius >= initial {
		t.Errorf("expected the gather radius to shrink over iterations, got %f >= %f", r.radius, initial)
	}
}

func TestRenderWithNoLightsStillProducesFiniteRadiance(t *testing.T) {
	scene := newTestScene()
	scene.sceneLights = nil
	r := NewRenderer(scene, testConfig(), nopLogger{})
	frame, err := r.Render()
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	for i, c := range frame {
		if !c.IsFinitePositive() {
			t.Fatalf("pixel %d has non-finite/negative radiance with no lights: %v", i, c)
		}
	}
}

func TestRenderCountsIterationsCompleted(t *testing.T) {
	scene := newTestScene()
	config := testConfig()
	config.Iterations = 3
	r := NewRenderer(scene, config, nopLogger{})
	if _, err := r.Render(); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if r.iterations != config.Iterations {
		t.Errorf("expected iterations=%d, got %d", config.Iterations, r.iterations)
	}
}
