package material

import "github.com/lumenshade/sppm/pkg/core"

// Emissive decorates another material with a constant emission term,
// used for an AreaLight's underlying geometry so the eye pass's direct
// hit on a light surface contributes `emission·|dir·n|` in addition to
// whatever the gather step finds.
//
// Not grounded on a single teacher file — the teacher models emissive
// shapes as dedicated *_light.go variants (sphere_light.go, quad_light.go)
// each embedding a shape and a color; this collapses that pattern into
// one decorator so any Sampleable shape can become an AreaLight's
// emitter without a parallel per-shape-type hierarchy (see DESIGN.md's
// note on dropping pkg/lights' shape-specific light files).
type Emissive struct {
	Material
	EmissionColor core.Vec3
}

func NewEmissive(base Material, emission core.Vec3) *Emissive {
	return &Emissive{Material: base, EmissionColor: emission}
}

func (e *Emissive) Emission() core.Vec3 {
	return e.EmissionColor
}
