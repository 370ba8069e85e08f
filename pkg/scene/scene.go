// Package scene holds the external-facing container that a loader
// populates and the renderer consumes: camera, lights, materials, and
// the root intersection group.
package scene

import (
	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
	"github.com/lumenshade/sppm/pkg/lights"
	"github.com/lumenshade/sppm/pkg/material"
	"github.com/lumenshade/sppm/pkg/renderer"
)

// Scene is read-only once constructed; the renderer never mutates
// Camera, Lights, Materials, or Root.
// Grounded on the teacher's pkg/scene/scene.go, trimmed from its
// BVH/LightSampler/SamplingConfig bundle (those live in renderer.Config
// and geometry.Group/Octree here) down to the fields a scene container
// actually needs.
type Scene struct {
	Camera     renderer.Camera
	Lights     []lights.Light
	Materials  []material.Material
	Root       geometry.Shape
	Background core.Vec3
	Ambient    core.Vec3
}

// New builds a Scene, requiring every field a render needs.
func New(camera renderer.Camera, sceneLights []lights.Light, materials []material.Material, root geometry.Shape, background, ambient core.Vec3) *Scene {
	return &Scene{
		Camera:     camera,
		Lights:     sceneLights,
		Materials:  materials,
		Root:       root,
		Background: background,
		Ambient:    ambient,
	}
}

// Intersect delegates to the root group — the scene itself satisfies
// geometry.Shape so the renderer can treat "the scene" and "a shape"
// uniformly when intersecting against the scene, including lights.
func (s *Scene) Intersect(ray core.Ray, tMin float64, hit *material.Hit) bool {
	return s.Root.Intersect(ray, tMin, hit)
}

func (s *Scene) BoundingBox() core.AABB {
	return s.Root.BoundingBox()
}

// Cam, SceneLights, BackgroundColor, and AmbientColor satisfy
// renderer.Scene, the narrow view pkg/renderer needs of a scene
// container without importing pkg/scene back (this package already
// imports pkg/renderer for the Camera type, so the reverse import
// would cycle).
func (s *Scene) Cam() renderer.Camera        { return s.Camera }
func (s *Scene) SceneLights() []lights.Light { return s.Lights }
func (s *Scene) BackgroundColor() core.Vec3  { return s.Background }
func (s *Scene) AmbientColor() core.Vec3     { return s.Ambient }
