package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
	"github.com/lumenshade/sppm/pkg/material"
)

// LoadOBJ parses a practical OBJ/MTL subset: `v`, `vt`, `vn`,
// `f v/vt/vn v/vt/vn v/vt/vn` (vt and vn each optional), `usemtl`, and
// `mtllib`. fallback is the material a surrounding scene-file
// MaterialIndex assigned to the TriangleMesh directive; it is used for
// any face that precedes a `usemtl` line or when the file has no
// `mtllib` at all. Grounded on a line-based, whitespace-split scanner
// idiom, applied to OBJ's simple per-line grammar.
func LoadOBJ(path string, fallback material.Material, baseDir string) ([]*geometry.Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open %s: %w", path, err)
	}
	defer f.Close()

	var positions []core.Vec3
	var normals []core.Vec3
	var uvs []core.Vec2
	materials := map[string]material.Material{}
	current := fallback

	var tris []*geometry.Triangle

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %s: %w", path, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %s: %w", path, err)
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("loaders: %s: %w", path, err)
			}
			uvs = append(uvs, uv)
		case "mtllib":
			if len(fields) < 2 {
				return nil, fmt.Errorf("loaders: %s: mtllib missing filename", path)
			}
			loaded, err := loadMTL(filepath.Join(baseDir, fields[1]), baseDir)
			if err != nil {
				return nil, err
			}
			for name, mat := range loaded {
				materials[name] = mat
			}
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("loaders: %s: usemtl missing name", path)
			}
			mat, ok := materials[fields[1]]
			if !ok {
				return nil, fmt.Errorf("loaders: %s: usemtl references undefined material %q", path, fields[1])
			}
			current = mat
		case "f":
			faceTris, err := parseFace(fields[1:], positions, normals, uvs, current)
			if err != nil {
				return nil, fmt.Errorf("loaders: %s: %w", path, err)
			}
			tris = append(tris, faceTris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: %s: %w", path, err)
	}
	return tris, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

func parseVec2(fields []string) (core.Vec2, error) {
	if len(fields) < 2 {
		return core.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(u, v), nil
}

type faceVertex struct {
	pos    core.Vec3
	normal core.Vec3
	uv     core.Vec2
	hasUV  bool
}

// parseFace resolves one `f a b c ...` line into a fan of triangles
// (n-2 triangles for an n-gon), resolving each `v/vt/vn` group against
// the accumulated position/uv/normal tables. Missing vn falls back to
// the face's geometric normal once all three positions are known;
// missing vt marks the triangle untextured.
func parseFace(tokens []string, positions, normals []core.Vec3, uvs []core.Vec2, mat material.Material) ([]*geometry.Triangle, error) {
	if len(tokens) < 3 {
		return nil, fmt.Errorf("face with fewer than 3 vertices")
	}
	verts := make([]faceVertex, len(tokens))
	for i, tok := range tokens {
		parts := strings.Split(tok, "/")
		vIdx, err := resolveIndex(parts[0], len(positions))
		if err != nil {
			return nil, err
		}
		fv := faceVertex{pos: positions[vIdx]}
		if len(parts) > 1 && parts[1] != "" {
			uvIdx, err := resolveIndex(parts[1], len(uvs))
			if err != nil {
				return nil, err
			}
			fv.uv = uvs[uvIdx]
			fv.hasUV = true
		}
		if len(parts) > 2 && parts[2] != "" {
			nIdx, err := resolveIndex(parts[2], len(normals))
			if err != nil {
				return nil, err
			}
			fv.normal = normals[nIdx]
		}
		verts[i] = fv
	}

	var tris []*geometry.Triangle
	for i := 1; i < len(verts)-1; i++ {
		a, b, c := verts[0], verts[i], verts[i+1]
		faceNormal := b.pos.Subtract(a.pos).Cross(c.pos.Subtract(a.pos)).Normalize()
		n0, n1, n2 := a.normal, b.normal, c.normal
		if n0.IsZero() {
			n0 = faceNormal
		}
		if n1.IsZero() {
			n1 = faceNormal
		}
		if n2.IsZero() {
			n2 = faceNormal
		}
		hasUV := a.hasUV && b.hasUV && c.hasUV
		tris = append(tris, geometry.NewTriangleFull(a.pos, b.pos, c.pos, n0, n1, n2, a.uv, b.uv, c.uv, hasUV, mat))
	}
	return tris, nil
}

// resolveIndex converts an OBJ 1-based (or negative, relative-to-end)
// index into a 0-based slice index.
func resolveIndex(tok string, count int) (int, error) {
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	if idx < 0 {
		idx = count + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("face index %d out of range (%d available)", idx, count)
	}
	return idx, nil
}

// loadMTL parses a practical per-material subset: Ka, Kd, Ks, Ns, Ni,
// d, illum, and map_* (only map_Kd is wired to a ColorSource; the
// other map_* channels have no corresponding material field in this
// renderer).
func loadMTL(path, baseDir string) (map[string]material.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open %s: %w", path, err)
	}
	defer f.Close()

	result := map[string]material.Material{}
	var name string
	params := material.GeneralParams{Illum: 1}

	flush := func() {
		if name != "" {
			result[name] = material.NewGeneral(params)
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "newmtl":
			flush()
			name = fields[1]
			params = material.GeneralParams{Illum: 1}
		case "Ka":
			params.Ka, err = parseVec3(fields[1:])
		case "Kd":
			params.Kd, err = parseVec3(fields[1:])
		case "Ks":
			params.Ks, err = parseVec3(fields[1:])
		case "Ns":
			params.Ns, err = strconv.ParseFloat(fields[1], 64)
		case "Ni":
			params.Ni, err = strconv.ParseFloat(fields[1], 64)
		case "d":
			params.D, err = strconv.ParseFloat(fields[1], 64)
		case "illum":
			params.Illum, err = strconv.Atoi(fields[1])
		case "map_Kd":
			img, ierr := LoadImage(filepath.Join(baseDir, fields[len(fields)-1]))
			if ierr != nil {
				return nil, fmt.Errorf("loaders: %s: map_Kd: %w", path, ierr)
			}
			params.Texture = &material.ImageTexture{Width: img.Width, Height: img.Height, Pixels: img.Pixels}
		}
		if err != nil {
			return nil, fmt.Errorf("loaders: %s: %w", path, err)
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loaders: %s: %w", path, err)
	}
	return result, nil
}
