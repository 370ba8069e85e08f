package material

import (
	"image"

	"github.com/aquilax/go-perlin"
	"github.com/nfnt/resize"

	"github.com/lumenshade/sppm/pkg/core"
)

// maxTextureDim bounds how large a loaded texture is kept in memory —
// scene textures are sampled millions of times per iteration and rarely
// need to retain source resolution beyond this.
const maxTextureDim = 1024

// ImageTexture is a ColorSource backed by a decoded raster image,
// addressed by wrapping uv into [0,1) the way the original renderer's
// texel lookup does.
type ImageTexture struct {
	Width, Height int
	Pixels        []core.Vec3
}

// NewImageTexture downsamples img (via Lanczos resampling) to at most
// maxTextureDim on its longer side, then converts it to a flat Vec3
// array so texel lookups during rendering never touch image.Image's
// color-model machinery.
func NewImageTexture(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxTextureDim || h > maxTextureDim {
		var targetW, targetH uint
		if w >= h {
			targetW = maxTextureDim
		} else {
			targetH = maxTextureDim
		}
		img = resize.Resize(targetW, targetH, img, resize.Lanczos3)
		bounds = img.Bounds()
		w, h = bounds.Dx(), bounds.Dy()
	}

	pixels := make([]core.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*w+x] = core.NewVec3(float64(r)/65535, float64(g)/65535, float64(b)/65535)
		}
	}
	return &ImageTexture{Width: w, Height: h, Pixels: pixels}
}

func (t *ImageTexture) Sample(uv core.Vec2) core.Vec3 {
	u := wrap01(uv.X)
	v := wrap01(uv.Y)
	x := int(u * float64(t.Width))
	y := int((1 - v) * float64(t.Height))
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func wrap01(v float64) float64 {
	v -= float64(int(v))
	if v < 0 {
		v += 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PerlinTexture is a procedural ColorSource used by scene files that
// request a `noise { ... }` texture instead of an image path — not
// present in the original renderer, added because materials already
// take a general ColorSource slot and Perlin noise is the standard
// low-cost procedural fill for it.
type PerlinTexture struct {
	noise     *perlin.Perlin
	Frequency float64
	Low, High core.Vec3
}

// NewPerlinTexture builds a 2D Perlin generator with the classic
// (alpha=2, beta=2, n=3) persistence/octave parameters and maps its
// [-1,1] output to a Low..High color gradient.
func NewPerlinTexture(seed int64, frequency float64, low, high core.Vec3) *PerlinTexture {
	return &PerlinTexture{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		Frequency: frequency,
		Low:       low,
		High:      high,
	}
}

func (t *PerlinTexture) Sample(uv core.Vec2) core.Vec3 {
	n := t.noise.Noise2D(uv.X*t.Frequency, uv.Y*t.Frequency)
	w := (n + 1) / 2
	if w < 0 {
		w = 0
	} else if w > 1 {
		w = 1
	}
	return t.Low.Multiply(1 - w).Add(t.High.Multiply(w))
}
