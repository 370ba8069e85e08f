package scene

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
	"github.com/lumenshade/sppm/pkg/lights"
	"github.com/lumenshade/sppm/pkg/material"
	"github.com/lumenshade/sppm/pkg/renderer"
)

// NewCornellBox builds the canonical five-wall-plus-sphere test scene:
// a box enclosing a centered white sphere, one red wall, one green
// wall, and a ceiling area light. Grounded on
// the teacher's pkg/scene/cornell.go, rebuilt on this repo's Box/Group/
// AreaLight primitives instead of the teacher's infinite Quad.
func NewCornellBox() *Scene {
	const size = 555.0
	const wallThickness = 1.0

	white := material.NewLambert(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambert(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambert(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewSpecular(core.NewVec3(0.95, 0.95, 0.95))

	floor := geometry.NewBox(core.NewVec3(0, -wallThickness, 0), core.NewVec3(size, 0, size), white)
	ceilingBase := geometry.NewBox(core.NewVec3(0, size, 0), core.NewVec3(size, size+wallThickness, size), white)
	back := geometry.NewBox(core.NewVec3(0, 0, size), core.NewVec3(size, size, size+wallThickness), white)
	left := geometry.NewBox(core.NewVec3(-wallThickness, 0, 0), core.NewVec3(0, size, size), red)
	right := geometry.NewBox(core.NewVec3(size, 0, 0), core.NewVec3(size+wallThickness, size, size), green)

	lightPanelSize := size * 0.25
	lightY0 := size - wallThickness
	lightBox := geometry.NewBox(
		core.NewVec3(size/2-lightPanelSize/2, lightY0, size/2-lightPanelSize/2),
		core.NewVec3(size/2+lightPanelSize/2, size, size/2+lightPanelSize/2),
		material.NewEmissive(white, core.NewVec3(15, 15, 15)),
	)

	sphere := geometry.NewSphere(core.NewVec3(size/2, size/4, size/2), size/4, white)

	root := geometry.NewGroup([]geometry.Shape{floor, ceilingBase, back, left, right, lightBox, sphere})

	areaLight := lights.NewAreaLight(lightBox, core.NewVec3(10, 10, 10))

	camera := renderer.NewPerspective(
		core.NewVec3(size/2, size/2, -800),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 0),
		400, 400, 2.2,
		40*math.Pi/180,
	)

	return New(camera, []lights.Light{areaLight}, []material.Material{white, red, green, mirror}, root, core.Vec3{}, core.NewVec3(0.02, 0.02, 0.02))
}
