package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lumenshade/sppm/pkg/core"
)

// SaveBMP writes width*height Vec3 colors (already tonemapped to [0,1])
// as an uncompressed 24-bit BITMAPINFOHEADER BMP, the format the
// renderer writes both per-iteration previews (tmp/<i>.bmp) and the
// final output. Rows are bottom-to-top and padded to a 4-byte
// boundary, matching the format's on-disk layout.
//
// No teacher file writes BMP (it only emits PNG), so the header layout
// is written fresh from the BITMAPINFOHEADER format. go-colorful's
// Clamped is reused for the linear-to-unit clamp ahead of the byte
// quantization instead of a hand-rolled min/max.
func SaveBMP(path string, width, height int, pixels []core.Vec3) error {
	if len(pixels) != width*height {
		return fmt.Errorf("loaders: SaveBMP expected %d pixels, got %d", width*height, len(pixels))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("loaders: create BMP: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	rowSize := (width*3 + 3) &^ 3
	pixelDataSize := rowSize * height
	fileSize := 14 + 40 + pixelDataSize

	// BITMAPFILEHEADER
	w.WriteString("BM")
	binary.Write(w, binary.LittleEndian, uint32(fileSize))
	binary.Write(w, binary.LittleEndian, uint32(0)) // reserved
	binary.Write(w, binary.LittleEndian, uint32(14+40))

	// BITMAPINFOHEADER
	binary.Write(w, binary.LittleEndian, uint32(40))
	binary.Write(w, binary.LittleEndian, int32(width))
	binary.Write(w, binary.LittleEndian, int32(height))
	binary.Write(w, binary.LittleEndian, uint16(1))  // planes
	binary.Write(w, binary.LittleEndian, uint16(24)) // bits per pixel
	binary.Write(w, binary.LittleEndian, uint32(0))  // no compression
	binary.Write(w, binary.LittleEndian, uint32(pixelDataSize))
	binary.Write(w, binary.LittleEndian, int32(2835)) // ~72 DPI
	binary.Write(w, binary.LittleEndian, int32(2835))
	binary.Write(w, binary.LittleEndian, uint32(0))
	binary.Write(w, binary.LittleEndian, uint32(0))

	pad := make([]byte, rowSize-width*3)
	row := make([]byte, width*3)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			c := clampColor(pixels[y*width+x])
			r, g, b := c.RGB255()
			row[x*3+0] = b
			row[x*3+1] = g
			row[x*3+2] = r
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
		if len(pad) > 0 {
			if _, err := w.Write(pad); err != nil {
				return err
			}
		}
	}

	return w.Flush()
}

func clampColor(v core.Vec3) colorful.Color {
	c := colorful.Color{R: v.X, G: v.Y, B: v.Z}
	return c.Clamped()
}

// LoadBMP reads back a 24-bit uncompressed BMP written by SaveBMP, used
// by the image-codec round-trip tests.
func LoadBMP(path string) (width, height int, pixels []core.Vec3, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("loaders: open BMP: %w", err)
	}
	defer file.Close()

	var header [54]byte
	if _, err := io.ReadFull(file, header[:]); err != nil {
		return 0, 0, nil, fmt.Errorf("loaders: read BMP header: %w", err)
	}

	dataOffset := int(binary.LittleEndian.Uint32(header[10:14]))
	w := int(int32(binary.LittleEndian.Uint32(header[18:22])))
	h := int(int32(binary.LittleEndian.Uint32(header[22:26])))
	bpp := binary.LittleEndian.Uint16(header[28:30])
	if bpp != 24 {
		return 0, 0, nil, fmt.Errorf("loaders: unsupported BMP bit depth %d", bpp)
	}

	if _, err := file.Seek(int64(dataOffset), io.SeekStart); err != nil {
		return 0, 0, nil, err
	}

	rowSize := (w*3 + 3) &^ 3
	rowBuf := make([]byte, rowSize)
	pixels = make([]core.Vec3, w*h)

	for y := h - 1; y >= 0; y-- {
		if _, err := io.ReadFull(file, rowBuf); err != nil {
			return 0, 0, nil, fmt.Errorf("loaders: read BMP row: %w", err)
		}
		for x := 0; x < w; x++ {
			b := rowBuf[x*3+0]
			g := rowBuf[x*3+1]
			r := rowBuf[x*3+2]
			pixels[y*w+x] = core.NewVec3(float64(r)/255, float64(g)/255, float64(b)/255)
		}
	}

	return w, h, pixels, nil
}
