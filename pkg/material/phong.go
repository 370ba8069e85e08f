package material

import (
	"math"

	"github.com/lumenshade/sppm/pkg/core"
)

// Phong is the modified/normalized Phong BRDF with an explicit
// diffuse/specular/absorbed three-way split.
// Grounded on the teacher's pkg/material/phong.go energy-conserving
// split, reshaped into local-frame bsdf/sample.
type Phong struct {
	Kd, Ks    core.Vec3
	Shininess float64
	Texture   ColorSource
}

func NewPhong(kd, ks core.Vec3, shininess float64) *Phong {
	return &Phong{Kd: kd, Ks: ks, Shininess: shininess}
}

// splitProbabilities returns pR (reflect-or-absorb threshold) and pD
// (diffuse-vs-specular threshold within the reflect branch):
// pR = min(max(kd+ks), 1), pD = pR·sum(kd)/sum(kd+ks).
func (p *Phong) splitProbabilities() (pR, pD float64) {
	sum := p.Kd.Add(p.Ks)
	pR = math.Min(sum.MaxComponent(), 1)
	denom := sum.SumComponents()
	if denom <= 0 {
		return pR, 0
	}
	pD = pR * p.Kd.SumComponents() / denom
	return pR, pD
}

func (p *Phong) Bsdf(inLocal, outLocal core.Vec3, fromLight bool) core.Vec3 {
	if outLocal.Z <= 0 {
		return core.Vec3{}
	}
	diffuse := p.Kd.Multiply(1 / math.Pi)
	mirror := core.Reflect(inLocal, core.NewVec3(0, 0, 1))
	cosAngle := outLocal.Dot(mirror)
	if cosAngle <= 0 {
		return diffuse
	}
	n := p.Shininess
	specular := p.Ks.Multiply((n + 2) / (2 * math.Pi) * math.Pow(cosAngle, n))
	return diffuse.Add(specular)
}

func (p *Phong) Sample(inLocal core.Vec3, fromLight bool, rng *core.Sampler) SampleResult {
	pR, pD := p.splitProbabilities()
	u := rng.Float64()

	switch {
	case u < pD:
		out := rng.CosineHemisphere()
		return SampleResult{
			Throughput: p.Kd.Multiply(1 / math.Pi),
			Out:        out,
			PDF:        pR * out.Z / math.Pi,
			IsDiffuse:  true,
		}
	case u < pR:
		mirror := core.Reflect(inLocal, core.NewVec3(0, 0, 1))
		n := p.Shininess
		phi := 2 * math.Pi * rng.Float64()
		t := math.Pow(rng.Float64(), 1/(n+1))
		sinT := math.Sqrt(max(0, 1-t*t))
		lobe := core.NewVec3(sinT*math.Cos(phi), sinT*math.Sin(phi), t)
		frame := core.NewFrame(mirror)
		out := frame.ToWorld(lobe)
		return SampleResult{
			Throughput: p.Ks.Multiply((n + 2) / (2 * math.Pi) * math.Pow(t, n)),
			Out:        out,
			PDF:        pR * (n + 2) * math.Pow(t, n) / (2 * math.Pi),
			IsDiffuse:  true,
		}
	default:
		// Absorbed branch — zero throughput ends the path; the photon
		// pass's outer Russian roulette (or its zero-power check) then
		// stops the photon (see the open-question writeup in DESIGN.md).
		return SampleResult{Throughput: core.Vec3{}, Out: core.NewVec3(0, 0, 1), PDF: 1, IsDiffuse: false}
	}
}

func (p *Phong) HasTexture() bool { return p.Texture != nil }

func (p *Phong) TextureAt(uv core.Vec2) core.Vec3 {
	if p.Texture == nil {
		return core.NewVec3(1, 1, 1)
	}
	return p.Texture.Sample(uv)
}
