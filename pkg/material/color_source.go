package material

import "github.com/lumenshade/sppm/pkg/core"

// ColorSource is anything a material's texture slot can sample — an
// image texture, a procedural one, or a constant. Grounded
// on the teacher's pkg/material/color_source.go ColorSource
// abstraction, which already separates "where the color comes from"
// from the material's BRDF math.
type ColorSource interface {
	Sample(uv core.Vec2) core.Vec3
}

// ConstantColor is a ColorSource that ignores uv. A material with no
// texture assigned keeps a nil Texture instead, and its TextureAt
// returns white.
type ConstantColor struct {
	Color core.Vec3
}

func (c ConstantColor) Sample(core.Vec2) core.Vec3 { return c.Color }
