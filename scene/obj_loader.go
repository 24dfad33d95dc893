package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"victorian-room/core"
	"victorian-room/internal/logger"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	vIdx, vtIdx, vnIdx [3]int // 0-based position / UV / normal indices (-1 = absent)
	material           int    // local material index, -1 = none
}

type objVertex struct{ v, vt, vn int }

// LoadOBJ parses a Wavefront .obj file into a single mesh. Materials from
// the referenced .mtl files are returned in declaration order; a face using
// local material i gets id materialOffset+i, faces without one get -1.
// Texture coordinates are flipped vertically.
func LoadOBJ(path string, materialOffset int) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)

	var positions []mgl32.Vec3
	var normals []mgl32.Vec3
	var uvs []mgl32.Vec2

	var materials []*Material
	materialIndex := map[string]int{}
	var faces []objFace
	current := -1

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			positions = append(positions, parseVec3(fields[1:4]))

		case "vn":
			if len(fields) < 4 {
				continue
			}
			normals = append(normals, parseVec3(fields[1:4]))

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 32)
			v, _ := strconv.ParseFloat(fields[2], 32)
			uvs = append(uvs, mgl32.Vec2{float32(u), 1 - float32(v)})

		case "usemtl":
			current = -1
			if len(fields) > 1 {
				if idx, ok := materialIndex[fields[1]]; ok {
					current = idx
				} else {
					logger.Log.Warn("obj: unknown material", zap.String("file", path), zap.String("material", fields[1]))
				}
			}

		case "mtllib":
			for _, name := range fields[1:] {
				loaded, err := loadMTL(filepath.Join(dir, name), dir)
				if err != nil {
					logger.Log.Warn("obj: material library not loaded", zap.String("file", path), zap.Error(err))
					continue
				}
				for _, m := range loaded {
					if _, dup := materialIndex[m.Name]; dup {
						continue
					}
					materialIndex[m.Name] = len(materials)
					materials = append(materials, m)
				}
			}

		case "f":
			// Fan-triangulate polygon (handles 3+ vertices)
			if len(fields) < 4 {
				continue
			}
			fverts := make([]objVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fverts = append(fverts, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			for i := 1; i+1 < len(fverts); i++ {
				f0, f1, f2 := fverts[0], fverts[i], fverts[i+1]
				faces = append(faces, objFace{
					vIdx:     [3]int{f0.v, f1.v, f2.v},
					vtIdx:    [3]int{f0.vt, f1.vt, f2.vt},
					vnIdx:    [3]int{f0.vn, f1.vn, f2.vn},
					material: current,
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj %q: %w", path, err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh := buildMeshFromOBJ(name, faces, positions, normals, uvs, materialOffset)
	return &Model{
		Name:           name,
		Mesh:           mesh,
		Materials:      materials,
		MaterialOffset: materialOffset,
	}, nil
}

func parseVec3(fields []string) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, _ := strconv.ParseFloat(fields[i], 32)
		out[i] = float32(f)
	}
	return out
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// Returns 0-based indices (-1 if absent). OBJ is 1-based; negative indices
// count back from the current end of each pool.
func parseFaceVertex(tok string, nv, nvt, nvn int) objVertex {
	parseIdx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil || i == 0:
			return -1
		case i > 0:
			return i - 1
		default:
			return n + i
		}
	}
	parts := strings.Split(tok, "/")
	res := objVertex{v: -1, vt: -1, vn: -1}
	res.v = parseIdx(parts[0], nv)
	if len(parts) > 1 {
		res.vt = parseIdx(parts[1], nvt)
	}
	if len(parts) > 2 {
		res.vn = parseIdx(parts[2], nvn)
	}
	return res
}

// buildMeshFromOBJ converts parsed face data into a deduplicated Mesh with
// one batch per material.
func buildMeshFromOBJ(
	name string,
	faces []objFace,
	positions []mgl32.Vec3,
	normals []mgl32.Vec3,
	uvs []mgl32.Vec2,
	materialOffset int,
) *Mesh {
	type key struct{ v, vt, vn, mat int }
	vertMap := map[key]uint32{}
	b := NewMeshBuilder(name)

	safePos := func(i int) mgl32.Vec3 {
		if i >= 0 && i < len(positions) {
			return positions[i]
		}
		return mgl32.Vec3{}
	}
	safeNorm := func(i int) mgl32.Vec3 {
		if i >= 0 && i < len(normals) {
			return normals[i]
		}
		return mgl32.Vec3{0, 1, 0}
	}
	safeUV := func(i int) mgl32.Vec2 {
		if i >= 0 && i < len(uvs) {
			return uvs[i]
		}
		return mgl32.Vec2{}
	}

	for _, face := range faces {
		id := -1
		if face.material >= 0 {
			id = face.material + materialOffset
		}
		var tri [3]uint32
		for c := 0; c < 3; c++ {
			k := key{face.vIdx[c], face.vtIdx[c], face.vnIdx[c], id}
			idx, ok := vertMap[k]
			if !ok {
				idx = b.AddVertex(core.Vertex{
					Position:   safePos(k.v),
					Normal:     safeNorm(k.vn),
					UV:         safeUV(k.vt),
					MaterialID: float32(id),
				})
				vertMap[k] = idx
			}
			tri[c] = idx
		}
		b.AddTriangle(id, tri[0], tri[1], tri[2])
	}

	mesh := b.Build()
	if len(normals) == 0 {
		generateNormals(mesh.Vertices, mesh.Indices)
	}
	return mesh
}

// generateNormals computes area-weighted normals and writes them to the vertex slice.
func generateNormals(vertices []core.Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		v1 := vertices[i1].Position
		v2 := vertices[i2].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}

// ── MTL loader ───────────────────────────────────────────────────────────────

// loadMTL returns the materials of an .mtl file in declaration order.
// A map_Kd that fails to load is logged and the material stays untextured.
func loadMTL(path, dir string) ([]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mats []*Material
	var cur *Material

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = DefaultMaterial()
				cur.Name = fields[1]
				mats = append(mats, cur)
			}
		case "Kd":
			if cur != nil && len(fields) >= 4 {
				cur.Diffuse = parseVec3(fields[1:4])
			}
		case "map_Kd":
			if cur != nil && len(fields) >= 2 {
				// options such as -s come first; the file name is last
				name := strings.ReplaceAll(fields[len(fields)-1], "\\", "/")
				texPath := filepath.Join(dir, filepath.FromSlash(name))
				tex, err := LoadTexture(texPath)
				if err != nil {
					logger.Log.Warn("mtl: texture not loaded", zap.String("material", cur.Name), zap.Error(err))
					continue
				}
				cur.Texture = tex
			}
		}
	}

	return mats, scanner.Err()
}
