// Scene-file parsing. The grammar is a small whitespace-tokenized,
// brace-delimited format — not PBRT's named-parameter statements.
// Grounded on original_source/include/utils/scene_parser.hpp and
// src/scene_parser.cpp's getToken/readVector3f/readDouble/readInt
// token-scanner, reproduced as a Go token slice + cursor instead of the
// original's fscanf-driven stream reads.
package scene

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/geometry"
	"github.com/lumenshade/sppm/pkg/lights"
	"github.com/lumenshade/sppm/pkg/loaders"
	"github.com/lumenshade/sppm/pkg/material"
	"github.com/lumenshade/sppm/pkg/renderer"
)

// Stats reports the counts a test can check against a parsed scene:
// numLights, numMaterials, numObjects.
type Stats struct {
	NumLights    int
	NumMaterials int
	NumObjects   int
}

// ParseFile reads and parses a scene file from disk — the renderer's
// first command-line argument. Any grammar error is a configuration
// error: fatal and reported with a diagnostic, left for the caller to
// turn into os.Exit(1).
func ParseFile(path string) (*Scene, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("scene: %w", err)
	}
	defer f.Close()
	return Parse(f, filepath.Dir(path))
}

// Parse parses a scene description from r. baseDir anchors any
// relative obj_file/texture path the scene file references.
func Parse(r io.Reader, baseDir string) (*Scene, Stats, error) {
	toks, err := tokenize(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("scene: %w", err)
	}
	p := &parser{tok: toks, baseDir: baseDir}
	return p.parseTop()
}

// tokenize splits the whole input into whitespace-separated tokens,
// with '{' and '}' always standalone tokens even when not
// whitespace-delimited from their neighbors, and '"…"' quoted strings
// kept intact as one token (obj_file/texture paths).
func tokenize(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(string(data))
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			flush()
			i++
			var quoted strings.Builder
			for i < len(runes) && runes[i] != '"' {
				quoted.WriteRune(runes[i])
				i++
			}
			toks = append(toks, quoted.String())
		case c == '{' || c == '}':
			flush()
			toks = append(toks, string(c))
		case c == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return toks, nil
}

type parser struct {
	tok     []string
	pos     int
	baseDir string

	materials []material.Material
	noiseSeed int64
}

func (p *parser) errf(format string, args ...interface{}) error {
	return fmt.Errorf("scene: parse error near token %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) next() (string, error) {
	if p.pos >= len(p.tok) {
		return "", p.errf("unexpected end of input")
	}
	t := p.tok[p.pos]
	p.pos++
	return t, nil
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tok) {
		return "", false
	}
	return p.tok[p.pos], true
}

func (p *parser) expect(literal string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t != literal {
		return p.errf("expected %q, got %q", literal, t)
	}
	return nil
}

func (p *parser) float() (float64, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(t, 64)
	if perr != nil {
		return 0, p.errf("expected a number, got %q", t)
	}
	return v, nil
}

func (p *parser) int() (int, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	v, perr := strconv.Atoi(t)
	if perr != nil {
		return 0, p.errf("expected an integer, got %q", t)
	}
	return v, nil
}

func (p *parser) vec3() (core.Vec3, error) {
	x, err := p.float()
	if err != nil {
		return core.Vec3{}, err
	}
	y, err := p.float()
	if err != nil {
		return core.Vec3{}, err
	}
	z, err := p.float()
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(x, y, z), nil
}

// optionalTexture consumes an optional trailing `texture "path"`,
// `map_Kd "path"`, or `noise { ... }` clause, returning nil when
// absent. noise is accepted regardless of keyword, since any material
// slot that takes an image texture can equally take a procedural one.
func (p *parser) optionalTexture(keyword string) (material.ColorSource, error) {
	t, ok := p.peek()
	if !ok {
		return nil, nil
	}
	if t == "noise" {
		return p.parseNoiseTexture()
	}
	if t != keyword {
		return nil, nil
	}
	p.pos++
	path, err := p.next()
	if err != nil {
		return nil, err
	}
	img, err := loaders.LoadImage(filepath.Join(p.baseDir, path))
	if err != nil {
		return nil, p.errf("texture %q: %v", path, err)
	}
	return &material.ImageTexture{Width: img.Width, Height: img.Height, Pixels: img.Pixels}, nil
}

// parseNoiseTexture parses `noise { frequency f low r g b high r g b }`,
// a procedural alternative to an image texture backed by
// github.com/aquilax/go-perlin. Each occurrence gets its own
// deterministic seed so repeated renders of the same scene file are
// reproducible.
func (p *parser) parseNoiseTexture() (material.ColorSource, error) {
	p.pos++ // consume "noise"
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("frequency"); err != nil {
		return nil, err
	}
	freq, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("low"); err != nil {
		return nil, err
	}
	low, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("high"); err != nil {
		return nil, err
	}
	high, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	p.noiseSeed++
	return material.NewPerlinTexture(p.noiseSeed, freq, low, high), nil
}

// parseTop dispatches the top-level blocks in file order: camera,
// Background, Lights, Materials, Group.
func (p *parser) parseTop() (*Scene, Stats, error) {
	var cam renderer.Camera
	background := core.NewVec3(0, 0, 0)
	ambient := core.NewVec3(0, 0, 0)
	var sceneLights []lights.Light
	var root geometry.Shape

	for {
		t, ok := p.peek()
		if !ok {
			break
		}
		p.pos++
		var err error
		switch t {
		case "PerspectiveCamera":
			cam, err = p.parsePerspectiveCamera()
		case "LensCamera":
			cam, err = p.parseLensCamera()
		case "Background":
			background, ambient, err = p.parseBackground()
		case "Lights":
			sceneLights, err = p.parseLights()
		case "Materials":
			err = p.parseMaterials()
		case "Group":
			root, err = p.parseGroup()
		default:
			err = p.errf("unexpected top-level token %q", t)
		}
		if err != nil {
			return nil, Stats{}, err
		}
	}

	if cam == nil {
		return nil, Stats{}, fmt.Errorf("scene: no camera block")
	}
	if root == nil {
		root = geometry.NewGroup(nil)
	}

	stats := Stats{NumLights: len(sceneLights), NumMaterials: len(p.materials), NumObjects: countObjects(root)}
	return New(cam, sceneLights, p.materials, root, background, ambient), stats, nil
}

func countObjects(s geometry.Shape) int {
	if g, ok := s.(*geometry.Group); ok {
		return len(g.Shapes)
	}
	return 1
}

func (p *parser) parsePerspectiveCamera() (renderer.Camera, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("center"); err != nil {
		return nil, err
	}
	center, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("direction"); err != nil {
		return nil, err
	}
	direction, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("up"); err != nil {
		return nil, err
	}
	up, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("angle"); err != nil {
		return nil, err
	}
	angleDeg, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("width"); err != nil {
		return nil, err
	}
	width, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("height"); err != nil {
		return nil, err
	}
	height, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("gamma"); err != nil {
		return nil, err
	}
	gamma, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return renderer.NewPerspective(center, direction, up, width, height, gamma, angleDeg*math.Pi/180), nil
}

func (p *parser) parseLensCamera() (renderer.Camera, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("center"); err != nil {
		return nil, err
	}
	center, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("direction"); err != nil {
		return nil, err
	}
	direction, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("up"); err != nil {
		return nil, err
	}
	up, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("angle"); err != nil {
		return nil, err
	}
	angleDeg, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("width"); err != nil {
		return nil, err
	}
	width, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("height"); err != nil {
		return nil, err
	}
	height, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("gamma"); err != nil {
		return nil, err
	}
	gamma, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("aperture"); err != nil {
		return nil, err
	}
	aperture, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("focal"); err != nil {
		return nil, err
	}
	focal, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return renderer.NewThinLens(center, direction, up, width, height, gamma, angleDeg*math.Pi/180, aperture, focal), nil
}

func (p *parser) parseBackground() (background, ambient core.Vec3, err error) {
	if err = p.expect("{"); err != nil {
		return
	}
	if err = p.expect("color"); err != nil {
		return
	}
	if background, err = p.vec3(); err != nil {
		return
	}
	if err = p.expect("ambient"); err != nil {
		return
	}
	if ambient, err = p.vec3(); err != nil {
		return
	}
	err = p.expect("}")
	return
}

func (p *parser) parseLights() ([]lights.Light, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("numLights"); err != nil {
		return nil, err
	}
	n, err := p.int()
	if err != nil {
		return nil, err
	}
	result := make([]lights.Light, 0, n)
	for i := 0; i < n; i++ {
		t, terr := p.next()
		if terr != nil {
			return nil, terr
		}
		var light lights.Light
		switch t {
		case "PointLight":
			light, err = p.parsePointLight()
		case "DirectedPointLight":
			light, err = p.parseDirectedPointLight()
		case "AreaLight":
			light, err = p.parseAreaLight()
		default:
			err = p.errf("unknown light type %q", t)
		}
		if err != nil {
			return nil, err
		}
		result = append(result, light)
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *parser) parsePointLight() (lights.Light, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("position"); err != nil {
		return nil, err
	}
	pos, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("power"); err != nil {
		return nil, err
	}
	power, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return lights.NewPointLight(pos, power), nil
}

func (p *parser) parseDirectedPointLight() (lights.Light, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("position"); err != nil {
		return nil, err
	}
	pos, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("direction"); err != nil {
		return nil, err
	}
	dir, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("angle"); err != nil {
		return nil, err
	}
	angleDeg, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("power"); err != nil {
		return nil, err
	}
	power, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return lights.NewDirectedPointLight(pos, dir, power, angleDeg*math.Pi/180), nil
}

func (p *parser) parseAreaLight() (lights.Light, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("Group"); err != nil {
		return nil, err
	}
	shape, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	sampleable, ok := shape.(geometry.Sampleable)
	if !ok {
		return nil, p.errf("AreaLight's Group does not sample as one shape")
	}
	if err := p.expect("power"); err != nil {
		return nil, err
	}
	power, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return lights.NewAreaLight(sampleable, power), nil
}

func (p *parser) parseMaterials() error {
	if err := p.expect("{"); err != nil {
		return err
	}
	if err := p.expect("numMaterials"); err != nil {
		return err
	}
	n, err := p.int()
	if err != nil {
		return err
	}
	p.materials = make([]material.Material, 0, n)
	for i := 0; i < n; i++ {
		t, terr := p.next()
		if terr != nil {
			return terr
		}
		var mat material.Material
		switch t {
		case "LambertMaterial":
			mat, err = p.parseLambertMaterial()
		case "PhongMaterial":
			mat, err = p.parsePhongMaterial()
		case "MirrorMaterial":
			mat, err = p.parseMirrorMaterial()
		case "TransparentMaterial":
			mat, err = p.parseTransparentMaterial()
		case "GenericMaterial":
			mat, err = p.parseGenericMaterial()
		default:
			err = p.errf("unknown material type %q", t)
		}
		if err != nil {
			return err
		}
		p.materials = append(p.materials, mat)
	}
	return p.expect("}")
}

func (p *parser) parseLambertMaterial() (material.Material, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("color"); err != nil {
		return nil, err
	}
	color, err := p.vec3()
	if err != nil {
		return nil, err
	}
	tex, err := p.optionalTexture("texture")
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	m := material.NewLambert(color)
	m.Texture = tex
	return m, nil
}

func (p *parser) parsePhongMaterial() (material.Material, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("diffuseColor"); err != nil {
		return nil, err
	}
	kd, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("specularColor"); err != nil {
		return nil, err
	}
	ks, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("shininess"); err != nil {
		return nil, err
	}
	shininess, err := p.float()
	if err != nil {
		return nil, err
	}
	tex, err := p.optionalTexture("texture")
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	m := material.NewPhong(kd, ks, shininess)
	m.Texture = tex
	return m, nil
}

func (p *parser) parseMirrorMaterial() (material.Material, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("color"); err != nil {
		return nil, err
	}
	color, err := p.vec3()
	if err != nil {
		return nil, err
	}
	tex, err := p.optionalTexture("texture")
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	m := material.NewSpecular(color)
	m.Texture = tex
	return m, nil
}

func (p *parser) parseTransparentMaterial() (material.Material, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("color"); err != nil {
		return nil, err
	}
	color, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("index"); err != nil {
		return nil, err
	}
	index, err := p.float()
	if err != nil {
		return nil, err
	}
	tex, err := p.optionalTexture("texture")
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	m := material.NewTransparent(color, index)
	m.Texture = tex
	return m, nil
}

func (p *parser) parseGenericMaterial() (material.Material, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("Ka"); err != nil {
		return nil, err
	}
	ka, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("Kd"); err != nil {
		return nil, err
	}
	kd, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("Ks"); err != nil {
		return nil, err
	}
	ks, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("Ns"); err != nil {
		return nil, err
	}
	ns, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("Ni"); err != nil {
		return nil, err
	}
	ni, err := p.float()
	if err != nil {
		return nil, err
	}
	d, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("illum"); err != nil {
		return nil, err
	}
	illum, err := p.int()
	if err != nil {
		return nil, err
	}
	tex, err := p.optionalTexture("texture")
	if err != nil {
		return nil, err
	}
	if tex == nil {
		tex, err = p.optionalTexture("map_Kd")
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return material.NewGeneral(material.GeneralParams{Ka: ka, Kd: kd, Ks: ks, Ns: ns, Ni: ni, D: d, Illum: illum, Texture: tex}), nil
}

// parseGroup parses a `Group { numObjects K … }` block, tracking
// MaterialIndex as mutable parser state exactly as
// scene_parser.cpp's parseGroup does: a MaterialIndex directive sets
// the material every subsequent shape in the same group picks up,
// until superseded by another MaterialIndex token.
func (p *parser) parseGroup() (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("numObjects"); err != nil {
		return nil, err
	}
	n, err := p.int()
	if err != nil {
		return nil, err
	}

	currentMaterial := -1
	shapes := make([]geometry.Shape, 0, n)
	for i := 0; i < n; i++ {
		t, terr := p.next()
		if terr != nil {
			return nil, terr
		}
		if t == "MaterialIndex" {
			idx, ierr := p.int()
			if ierr != nil {
				return nil, ierr
			}
			if idx < 0 || idx >= len(p.materials) {
				return nil, p.errf("MaterialIndex %d out of range (%d materials)", idx, len(p.materials))
			}
			currentMaterial = idx
			i-- // MaterialIndex doesn't count against numObjects
			continue
		}

		var mat material.Material
		if currentMaterial >= 0 {
			mat = p.materials[currentMaterial]
		}

		var shape geometry.Shape
		switch t {
		case "Sphere":
			shape, err = p.parseSphere(mat)
		case "Plane":
			shape, err = p.parsePlane(mat)
		case "Rectangle":
			shape, err = p.parseRectangle(mat)
		case "Triangle":
			shape, err = p.parseTriangle(mat)
		case "TriangleMesh":
			shape, err = p.parseTriangleMesh(mat)
		case "Transform":
			shape, err = p.parseTransform(mat)
		case "Group":
			shape, err = p.parseGroup()
		default:
			err = p.errf("unknown shape type %q", t)
		}
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}

	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return geometry.NewGroup(shapes), nil
}

func (p *parser) parseSphere(mat material.Material) (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("center"); err != nil {
		return nil, err
	}
	center, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("radius"); err != nil {
		return nil, err
	}
	radius, err := p.float()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return geometry.NewSphere(center, radius, mat), nil
}

func (p *parser) parsePlane(mat material.Material) (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("normal"); err != nil {
		return nil, err
	}
	normal, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("offset"); err != nil {
		return nil, err
	}
	offset, err := p.float()
	if err != nil {
		return nil, err
	}
	t, hasBasis := p.peek()
	if hasBasis && t == "e1" {
		p.pos++
		e1, err := p.vec3()
		if err != nil {
			return nil, err
		}
		if err := p.expect("e2"); err != nil {
			return nil, err
		}
		e2, err := p.vec3()
		if err != nil {
			return nil, err
		}
		if err := p.expect("origin"); err != nil {
			return nil, err
		}
		origin, err := p.vec3()
		if err != nil {
			return nil, err
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		return geometry.NewTexturedPlane(normal, offset, e1, e2, origin, mat), nil
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return geometry.NewPlane(normal, offset, mat), nil
}

// parseRectangle builds a Box from the two opposite corners the
// Rectangle directive names; this codebase's Box already serves as the
// axis-aligned rectangle primitive (pkg/geometry/box.go).
func (p *parser) parseRectangle(mat material.Material) (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("a"); err != nil {
		return nil, err
	}
	a, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("b"); err != nil {
		return nil, err
	}
	b, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return geometry.NewBox(a, b, mat), nil
}

func (p *parser) parseTriangle(mat material.Material) (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	if err := p.expect("vertex0"); err != nil {
		return nil, err
	}
	v0, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("vertex1"); err != nil {
		return nil, err
	}
	v1, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("vertex2"); err != nil {
		return nil, err
	}
	v2, err := p.vec3()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return geometry.NewTriangle(v0, v1, v2, mat), nil
}

// parseTriangleMesh accepts either an `obj_file "path.obj"` clause (the
// mandated format) or a `gltf_file "path.gltf"` clause (a supplemental
// format read with github.com/qmuntal/gltf), feeding the same
// []*geometry.Triangle -> geometry.NewMesh path either way.
func (p *parser) parseTriangleMesh(mat material.Material) (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	keyword, err := p.next()
	if err != nil {
		return nil, err
	}
	path, err := p.next()
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}

	var tris []*geometry.Triangle
	switch keyword {
	case "obj_file":
		tris, err = loaders.LoadOBJ(filepath.Join(p.baseDir, path), mat, p.baseDir)
	case "gltf_file":
		tris, err = loaders.LoadGLTF(filepath.Join(p.baseDir, path), mat)
	default:
		return nil, p.errf("expected obj_file or gltf_file, got %q", keyword)
	}
	if err != nil {
		return nil, p.errf("%s %q: %v", keyword, path, err)
	}
	return geometry.NewMesh(tris), nil
}

// parseTransform folds a sequence of Scale/UniformScale/Translate/
// XRotate/YRotate/ZRotate/Rotate/Matrix4f directives into one combined
// (Mat3, translation) pair before constructing the wrapped shape,
// mirroring scene_parser.cpp's parseTransform accumulation
// (`matrix = matrix * Matrix4f::X(...)`) — this codebase's
// geometry.Transform takes a single combined transform rather than a
// directive list.
func (p *parser) parseTransform(mat material.Material) (geometry.Shape, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	linear := core.Identity3()
	translation := core.Vec3{}

	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t {
		case "Scale":
			v, err := p.vec3()
			if err != nil {
				return nil, err
			}
			linear = linear.Multiply(core.Scale3(v.X, v.Y, v.Z))
		case "UniformScale":
			s, err := p.float()
			if err != nil {
				return nil, err
			}
			linear = linear.Multiply(core.Scale3(s, s, s))
		case "Translate":
			v, err := p.vec3()
			if err != nil {
				return nil, err
			}
			translation = translation.Add(linear.MultiplyVec(v))
		case "XRotate":
			deg, err := p.float()
			if err != nil {
				return nil, err
			}
			linear = linear.Multiply(core.RotateX3(deg * math.Pi / 180))
		case "YRotate":
			deg, err := p.float()
			if err != nil {
				return nil, err
			}
			linear = linear.Multiply(core.RotateY3(deg * math.Pi / 180))
		case "ZRotate":
			deg, err := p.float()
			if err != nil {
				return nil, err
			}
			linear = linear.Multiply(core.RotateZ3(deg * math.Pi / 180))
		case "Rotate":
			axis, err := p.vec3()
			if err != nil {
				return nil, err
			}
			deg, err := p.float()
			if err != nil {
				return nil, err
			}
			linear = linear.Multiply(core.Rotate3(axis, deg*math.Pi/180))
		case "Matrix4f":
			var m core.Mat3
			var t core.Vec3
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					v, err := p.float()
					if err != nil {
						return nil, err
					}
					m[row][col] = v
				}
				v, err := p.float()
				if err != nil {
					return nil, err
				}
				switch row {
				case 0:
					t.X = v
				case 1:
					t.Y = v
				default:
					t.Z = v
				}
			}
			for i := 0; i < 4; i++ { // bottom row (0,0,0,1), unused
				if _, err := p.float(); err != nil {
					return nil, err
				}
			}
			translation = translation.Add(linear.MultiplyVec(t))
			linear = linear.Multiply(m)
		default:
			// Not a transform directive: t is the wrapped object's tag.
			var child geometry.Shape
			switch t {
			case "Sphere":
				child, err = p.parseSphere(mat)
			case "Plane":
				child, err = p.parsePlane(mat)
			case "Rectangle":
				child, err = p.parseRectangle(mat)
			case "Triangle":
				child, err = p.parseTriangle(mat)
			case "TriangleMesh":
				child, err = p.parseTriangleMesh(mat)
			case "Group":
				child, err = p.parseGroup()
			default:
				err = p.errf("unknown Transform child %q", t)
			}
			if err != nil {
				return nil, err
			}
			if err := p.expect("}"); err != nil {
				return nil, err
			}
			return geometry.NewTransform(child, linear, translation), nil
		}
	}
}
