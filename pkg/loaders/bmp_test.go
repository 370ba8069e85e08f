package loaders

import (
	"path/filepath"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
)

func TestSaveLoadBMPRoundTrips(t *testing.T) {
	width, height := 4, 3
	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		pixels[i] = core.NewVec3(float64(i%3)/2, 0.5, 1)
	}

	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := SaveBMP(path, width, height, pixels); err != nil {
		t.Fatalf("SaveBMP failed: %v", err)
	}

	gotW, gotH, got, err := LoadBMP(path)
	if err != nil {
		t.Fatalf("LoadBMP failed: %v", err)
	}
	if gotW != width || gotH != height {
		t.Fatalf("expected %dx%d, got %dx%d", width, height, gotW, gotH)
	}

	const tolerance = 1.0 / 255
	for i, want := range pixels {
		if abs(got[i].X-want.X) > tolerance || abs(got[i].Y-want.Y) > tolerance || abs(got[i].Z-want.Z) > tolerance {
			t.Errorf("pixel %d: expected %v, got %v", i, want, got[i])
		}
	}
}

func TestSaveBMPRejectsMismatchedPixelCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bmp")
	err := SaveBMP(path, 2, 2, []core.Vec3{{}})
	if err == nil {
		t.Error("expected an error for a mismatched pixel count")
	}
}

func TestClampColorSaturatesOutOfRangeChannels(t *testing.T) {
	c := clampColor(core.NewVec3(1.5, -0.2, 0.5))
	if c.R != 1 || c.G != 0 {
		t.Errorf("expected channels clamped to [0,1], got %v", c)
	}
}
