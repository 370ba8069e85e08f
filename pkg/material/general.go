package material

import "github.com/lumenshade/sppm/pkg/core"

// GeneralParams mirrors the MTL fields parsed out of a material block
// (Ka/Kd/Ks/Ns/Ni/d/illum [+texture]).
type GeneralParams struct {
	Ka, Kd, Ks core.Vec3
	Ns, Ni, D  float64
	Illum      int
	Texture    ColorSource
}

// General is the OBJ/MTL catchall material: it dispatches to one of
// the four named BRDFs by the MTL `illum` convention (0/1 diffuse, 2
// Phong, 5 mirror, 7 transparent) and then simply forwards every call
// to that delegate. Grounded on original_source/include/renderer/
// material.hpp's per-subclass dispatch, adapted here to resolve a
// concrete BRDF once at load time rather than branching on every
// Bsdf/Sample call.
type General struct {
	delegate Material
}

// NewGeneral resolves p.Illum into a concrete material. Unknown illum
// values fall back to diffuse, matching the original parser's behavior
// of treating unrecognized illumination models as matte.
func NewGeneral(p GeneralParams) *General {
	var delegate Material
	switch p.Illum {
	case 0, 1:
		delegate = &Lambert{Albedo: p.Kd, Texture: p.Texture}
	case 2:
		delegate = &Phong{Kd: p.Kd, Ks: p.Ks, Shininess: p.Ns, Texture: p.Texture}
	case 5:
		delegate = &Specular{Tint: p.Ks, Texture: p.Texture}
	case 7:
		delegate = &Transparent{Tint: p.Kd, IOR: p.Ni, Texture: p.Texture}
	default:
		delegate = &Lambert{Albedo: p.Kd, Texture: p.Texture}
	}
	return &General{delegate: delegate}
}

func (g *General) Bsdf(inLocal, outLocal core.Vec3, fromLight bool) core.Vec3 {
	return g.delegate.Bsdf(inLocal, outLocal, fromLight)
}

func (g *General) Sample(inLocal core.Vec3, fromLight bool, rng *core.Sampler) SampleResult {
	return g.delegate.Sample(inLocal, fromLight, rng)
}

func (g *General) HasTexture() bool { return g.delegate.HasTexture() }

func (g *General) TextureAt(uv core.Vec2) core.Vec3 { return g.delegate.TextureAt(uv) }
