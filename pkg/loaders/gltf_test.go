package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/material"
)

// tinyGLTF is a single-triangle document with an embedded (data-URI)
// buffer: 3 VEC3 positions, a uint16 index accessor, no normals or
// uvs, built the way a minimal glTF exporter would emit a flat-shaded
// triangle.
const tinyGLTF = `{
  "asset": { "version": "2.0" },
  "buffers": [ { "byteLength": 44, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA=" } ],
  "bufferViews": [
    { "buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962 },
    { "buffer": 0, "byteOffset": 36, "byteLength": 6, "target": 34963 }
  ],
  "accessors": [
    { "bufferView": 0, "byteOffset": 0, "componentType": 5126, "count": 3, "type": "VEC3", "max": [1,1,0], "min": [0,0,0] },
    { "bufferView": 1, "byteOffset": 0, "componentType": 5123, "count": 3, "type": "SCALAR" }
  ],
  "meshes": [
    { "primitives": [ { "attributes": { "POSITION": 0 }, "indices": 1, "mode": 4 } ] }
  ]
}`

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, err := LoadGLTF("/nonexistent/path.gltf", material.NewLambert(core.NewVec3(0.8, 0.8, 0.8))); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGLTFSingleTriangle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.gltf")
	if err := os.WriteFile(path, []byte(tinyGLTF), 0644); err != nil {
		t.Fatal(err)
	}

	mat := material.NewLambert(core.NewVec3(0.8, 0.8, 0.8))
	tris, err := LoadGLTF(path, mat)
	if err != nil {
		t.Fatalf("LoadGLTF failed: %v", err)
	}
	if len(tris) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(tris))
	}
	if tris[0].Material != mat {
		t.Error("expected the fallback material to be assigned to the triangle")
	}
	box := tris[0].BoundingBox()
	if box.Min.X != 0 || box.Max.X != 1 || box.Max.Y != 1 {
		t.Errorf("unexpected bounding box %v", box)
	}
}
