package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materialsOf(m *Mesh) map[int]int {
	out := map[int]int{}
	for _, b := range m.Batches {
		out[b.MaterialID] += b.Count / 6
	}
	return out
}

func TestBuildRoomQuadCounts(t *testing.T) {
	room := BuildRoom(DefaultRoomSpec())

	assert.Len(t, room.Vertices, 18*4)
	assert.Len(t, room.Indices, 18*6)
	assert.Equal(t, map[int]int{
		MaterialWallpaper: 8, // 3 walls, 4 right-wall pieces, ceiling
		MaterialFloor:     1,
		MaterialPlinth:    4,
		MaterialCornice:   4,
		MaterialDoor:      1,
	}, materialsOf(room))
}

func TestBuildRoomBatchesCoverAllIndices(t *testing.T) {
	room := BuildRoom(DefaultRoomSpec())
	next := 0
	for _, b := range room.Batches {
		require.Equal(t, next, b.First)
		for _, idx := range room.Indices[b.First : b.First+b.Count] {
			assert.Equal(t, float32(b.MaterialID), room.Vertices[idx].MaterialID)
		}
		next += b.Count
	}
	assert.Equal(t, len(room.Indices), next)
}

func TestBuildRoomWindingMatchesNormals(t *testing.T) {
	for _, m := range []*Mesh{BuildRoom(DefaultRoomSpec()), BuildWindowPane(DefaultRoomSpec())} {
		for i := 0; i < len(m.Indices); i += 3 {
			a := m.Vertices[m.Indices[i]]
			b := m.Vertices[m.Indices[i+1]]
			c := m.Vertices[m.Indices[i+2]]
			face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()
			assert.InDelta(t, 1, face.Dot(a.Normal), 1e-5, "%s triangle %d", m.Name, i/3)
		}
	}
}

func TestBuildRoomStaysInsideBounds(t *testing.T) {
	s := DefaultRoomSpec()
	room := BuildRoom(s)
	box := room.LocalAABB
	assert.True(t, box.Min.ApproxEqual(mgl32.Vec3{-3, 0, -4}))
	assert.True(t, box.Max.ApproxEqual(mgl32.Vec3{3, 3.5, 4}))
}

func TestBuildRoomLeavesWindowOpen(t *testing.T) {
	room := BuildRoom(DefaultRoomSpec())
	// any right-wall triangle containing the window centre would close it
	center := mgl32.Vec3{3, 1.75, 0}
	for i := 0; i < len(room.Indices); i += 3 {
		a := room.Vertices[room.Indices[i]]
		if a.Normal != (mgl32.Vec3{-1, 0, 0}) {
			continue
		}
		b := room.Vertices[room.Indices[i+1]]
		c := room.Vertices[room.Indices[i+2]]
		assert.False(t, containsYZ(a.Position, b.Position, c.Position, center), "triangle %d covers the window", i/3)
	}
}

func TestBuildWindowPane(t *testing.T) {
	pane := BuildWindowPane(DefaultRoomSpec())
	require.Len(t, pane.Batches, 1)
	assert.Equal(t, MaterialGlass, pane.Batches[0].MaterialID)
	for _, v := range pane.Vertices {
		assert.InDelta(t, 2.995, v.Position.X(), 1e-6)
		assert.True(t, v.Position.Y() >= 0.75 && v.Position.Y() <= 2.75)
		assert.True(t, v.Position.Z() >= -1 && v.Position.Z() <= 1)
	}
}

func TestTallWindowDropsRightCornice(t *testing.T) {
	s := DefaultRoomSpec()
	s.Window.Height = 3.2 // top edge at 3.35, above the cornice
	assert.Equal(t, 3, materialsOf(BuildRoom(s))[MaterialCornice])
}

// containsYZ reports whether p lies strictly inside triangle abc projected on the YZ plane.
func containsYZ(a, b, c, p mgl32.Vec3) bool {
	sign := func(p1, p2, p3 mgl32.Vec3) float32 {
		return (p1.Z()-p3.Z())*(p2.Y()-p3.Y()) - (p2.Z()-p3.Z())*(p1.Y()-p3.Y())
	}
	d1, d2, d3 := sign(p, a, b), sign(p, b, c), sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
