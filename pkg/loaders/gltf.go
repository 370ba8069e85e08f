package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
	"github.com/lumenshade/sppm/pkg/material"
)

// LoadGLTF parses a glTF/GLB document's triangle meshes into the same
// []*geometry.Triangle shape LoadOBJ produces, so a scene-file
// `TriangleMesh { gltf_file "..." }` feeds the identical Mesh/Octree
// path as `TriangleMesh { obj_file "..." }`. fallback is the material a
// surrounding scene-file MaterialIndex assigned to the directive; a
// glTF document carries no analogue of usemtl/mtllib in this loader,
// so every triangle gets fallback. Grounded on
// taigrr-trophy/pkg/models/gltf.go's Load/processMesh, using the
// library's modeler accessor helpers instead of hand-decoding buffer
// views.
func LoadGLTF(path string, fallback material.Material) ([]*geometry.Triangle, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open %s: %w", path, err)
	}

	var tris []*geometry.Triangle
	for _, m := range doc.Meshes {
		meshTris, err := trianglesFromMesh(doc, m, fallback)
		if err != nil {
			return nil, fmt.Errorf("loaders: %s: mesh %q: %w", path, m.Name, err)
		}
		tris = append(tris, meshTris...)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("loaders: %s: no triangle primitives found", path)
	}
	return tris, nil
}

func trianglesFromMesh(doc *gltf.Document, m *gltf.Mesh, fallback material.Material) ([]*geometry.Triangle, error) {
	var tris []*geometry.Triangle
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		hasUV := len(uvs) == len(positions) && len(uvs) > 0
		hasNormals := len(normals) == len(positions) && len(normals) > 0

		for i := 0; i+2 < len(indices); i += 3 {
			ia, ib, ic := indices[i], indices[i+1], indices[i+2]
			v0 := vec3From(positions[ia])
			v1 := vec3From(positions[ib])
			v2 := vec3From(positions[ic])

			faceNormal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
			n0, n1, n2 := faceNormal, faceNormal, faceNormal
			if hasNormals {
				n0, n1, n2 = vec3From(normals[ia]), vec3From(normals[ib]), vec3From(normals[ic])
			}

			var uv0, uv1, uv2 core.Vec2
			if hasUV {
				// glTF's V=0 is the top of the image; this renderer's
				// ImageTexture samples with V=0 at the bottom.
				uv0 = core.NewVec2(float64(uvs[ia][0]), 1-float64(uvs[ia][1]))
				uv1 = core.NewVec2(float64(uvs[ib][0]), 1-float64(uvs[ib][1]))
				uv2 = core.NewVec2(float64(uvs[ic][0]), 1-float64(uvs[ic][1]))
			}

			tris = append(tris, geometry.NewTriangleFull(v0, v1, v2, n0, n1, n2, uv0, uv1, uv2, hasUV, fallback))
		}
	}
	return tris, nil
}

func vec3From(a [3]float32) core.Vec3 {
	return core.NewVec3(float64(a[0]), float64(a[1]), float64(a[2]))
}
