package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"victorian-room/core"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Transform returns the AABB enclosing the box's corners after m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	var out AABB
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			c[0] = b.Max.X()
		}
		if i&2 != 0 {
			c[1] = b.Max.Y()
		}
		if i&4 != 0 {
			c[2] = b.Max.Z()
		}
		p := m.Mul4x1(c.Vec4(1)).Vec3()
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out = out.extend(p)
	}
	return out
}

func (b AABB) extend(p mgl32.Vec3) AABB {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
	return b
}

// Batch is a contiguous index range drawn with one material.
type Batch struct {
	MaterialID int
	First      int // offset into Indices
	Count      int
}

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	Batches  []Batch

	// Cached local-space AABB (computed by CreateMeshFromData).
	LocalAABB    AABB
	HasLocalAABB bool

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

// CreateMeshFromData builds a single-batch Mesh and pre-computes its local-space AABB.
// The batch takes the material of the first vertex.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
		m.Batches = []Batch{{MaterialID: int(vertices[0].MaterialID), Count: len(indices)}}
	}
	return m
}

// IndexCount returns the number of indices over all batches.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

func computeLocalAABB(vertices []core.Vertex) AABB {
	box := AABB{Min: vertices[0].Position, Max: vertices[0].Position}
	for i := 1; i < len(vertices); i++ {
		box = box.extend(vertices[i].Position)
	}
	return box
}

// MeshBuilder accumulates triangles per material and emits a Mesh whose
// indices are grouped into one Batch per material id.
type MeshBuilder struct {
	name     string
	vertices []core.Vertex
	tris     map[int][]uint32
}

func NewMeshBuilder(name string) *MeshBuilder {
	return &MeshBuilder{name: name, tris: map[int][]uint32{}}
}

// AddVertex appends v and returns its index.
func (b *MeshBuilder) AddVertex(v core.Vertex) uint32 {
	b.vertices = append(b.vertices, v)
	return uint32(len(b.vertices) - 1)
}

// AddTriangle records a triangle drawn with material.
func (b *MeshBuilder) AddTriangle(material int, i0, i1, i2 uint32) {
	b.tris[material] = append(b.tris[material], i0, i1, i2)
}

// AddQuad appends four corners (counter-clockwise seen from the normal side)
// sharing one normal and material, as triangles 0-1-2 and 0-2-3.
func (b *MeshBuilder) AddQuad(material int, normal mgl32.Vec3, corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
	base := uint32(len(b.vertices))
	for i := 0; i < 4; i++ {
		b.vertices = append(b.vertices, core.Vertex{
			Position:   corners[i],
			Normal:     normal,
			UV:         uvs[i],
			MaterialID: float32(material),
		})
	}
	b.AddTriangle(material, base, base+1, base+2)
	b.AddTriangle(material, base, base+2, base+3)
}

// VertexCount returns the vertices added so far.
func (b *MeshBuilder) VertexCount() int { return len(b.vertices) }

// Build returns the mesh with batches ordered by material id.
func (b *MeshBuilder) Build() *Mesh {
	ids := make([]int, 0, len(b.tris))
	for id := range b.tris {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	m := &Mesh{Name: b.name, Vertices: b.vertices}
	for _, id := range ids {
		idx := b.tris[id]
		m.Batches = append(m.Batches, Batch{MaterialID: id, First: len(m.Indices), Count: len(idx)})
		m.Indices = append(m.Indices, idx...)
	}
	if len(m.Vertices) > 0 {
		m.LocalAABB = computeLocalAABB(m.Vertices)
		m.HasLocalAABB = true
	}
	return m
}
