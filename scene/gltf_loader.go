package scene

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"victorian-room/core"
	"victorian-room/internal/logger"
)

// LoadGLTF opens a .glb or .gltf file and flattens every mesh reachable
// from the scene roots into one model-space Mesh. Materials keep their
// glTF order, so primitive material i gets id materialOffset+i.
func LoadGLTF(path string, materialOffset int) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	// ── 1. Textures ───────────────────────────────────────────────────────────
	texCache := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *Texture
		if img.BufferView != nil {
			// Binary GLB: image data lives in a buffer view
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				logger.Log.Warn("gltf: image buffer view", zap.Int("image", *gt.Source), zap.Error(err))
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			tex, err = decodeImageBytes(name, raw)
			if err != nil {
				logger.Log.Warn("gltf: image decode", zap.Int("image", *gt.Source), zap.Error(err))
				continue
			}
		} else if img.URI != "" && !img.IsEmbeddedResource() {
			// External file referenced by relative URI
			tex, err = LoadTexture(filepath.Join(dir, img.URI))
			if err != nil {
				logger.Log.Warn("gltf: image file", zap.String("uri", img.URI), zap.Error(err))
				continue
			}
		}
		texCache[i] = tex
	}

	// ── 2. Materials ─────────────────────────────────────────────────────────
	materials := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := DefaultMaterial()
		mat.Name = gm.Name
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Diffuse = mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if idx < len(texCache) && texCache[idx] != nil {
					mat.Texture = texCache[idx]
				}
			}
		}
		materials[i] = mat
	}

	// ── 3. Nodes → one mesh ───────────────────────────────────────────────────
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	b := NewMeshBuilder(name)

	var visit func(idx int, parent mgl32.Mat4, depth int)
	visit = func(idx int, parent mgl32.Mat4, depth int) {
		if idx < 0 || idx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		gn := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(gn))
		if gn.Mesh != nil && *gn.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*gn.Mesh]
			for pi, prim := range gm.Primitives {
				if err := appendGLTFPrimitive(b, doc, *prim, world, materialOffset); err != nil {
					logger.Log.Warn("gltf: primitive skipped",
						zap.String("file", path), zap.String("mesh", gm.Name), zap.Int("primitive", pi), zap.Error(err))
				}
			}
		}
		for _, c := range gn.Children {
			visit(c, world, depth+1)
		}
	}
	for _, root := range gltfRoots(doc) {
		visit(root, mgl32.Ident4(), 0)
	}

	if b.VertexCount() == 0 {
		return nil, fmt.Errorf("no geometry found in %q", path)
	}
	return &Model{
		Name:           name,
		Mesh:           b.Build(),
		Materials:      materials,
		MaterialOffset: materialOffset,
	}, nil
}

// gltfRoots returns the nodes of the default scene, or every parentless
// node when the file has none.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix returns the node's local transform. Both glTF and mgl32 are column-major.
func nodeMatrix(gn *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	explicit := false
	for i, v := range gn.Matrix {
		m[i] = float32(v)
		if v != 0 {
			explicit = true
		}
	}
	if explicit && !m.ApproxEqual(mgl32.Ident4()) {
		return m
	}

	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// appendGLTFPrimitive adds one triangle-list primitive, transformed by world.
func appendGLTFPrimitive(b *MeshBuilder, doc *gltf.Document, prim gltf.Primitive, world mgl32.Mat4, materialOffset int) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range at position %d", idx, i)
		}
	}

	id := -1
	if prim.Material != nil {
		id = materialOffset + *prim.Material
	}
	normalMat := world.Mat3().Inv().Transpose()

	base := uint32(b.VertexCount())
	for i, p := range positions {
		v := core.Vertex{
			Position:   world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3(),
			Normal:     mgl32.Vec3{0, 1, 0},
			MaterialID: float32(id),
		}
		if i < len(normals) {
			n := normalMat.Mul3x1(mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]})
			if n.Len() > 0 {
				v.Normal = n.Normalize()
			}
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		b.AddVertex(v)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		b.AddTriangle(id, base+indices[i], base+indices[i+1], base+indices[i+2])
	}
	return nil
}

// decodeImageBytes decodes an embedded image into an RGBA8 scene.Texture.
func decodeImageBytes(name string, data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	rgba := toRGBA(img, MaxTextureSize)
	return &Texture{
		Name:   name,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Pixels: rgba.Pix,
	}, nil
}
