package scene

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPropsRunsMaterialOffsets(t *testing.T) {
	dir := t.TempDir()
	writeTestOBJ(t, dir)
	writeTestGLTF(t, dir)

	reg := NewMaterialRegistry()
	specs := []PropSpec{
		{Name: "table", Path: "table.obj", Position: mgl32.Vec3{0, 0, -2}, Scale: 0.015},
		{Name: "ghost", Path: "ghost.obj", Scale: 1},
		{Name: "frame", Path: "frame.gltf", Position: mgl32.Vec3{0, 1.8, -3.999}, Scale: 0.05},
	}
	resolve := func(p string) string { return filepath.Join(dir, p) }

	props, errs := LoadProps(specs, reg, resolve)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "ghost")
	require.Len(t, props, 2)

	table, frame := props[0], props[1]
	assert.Equal(t, 9, table.Model.MaterialOffset)
	assert.Equal(t, 11, frame.Model.MaterialOffset)
	assert.Equal(t, 12, reg.Next())

	m, ok := reg.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, "brass", m.Name)
	m, ok = reg.Lookup(11)
	require.True(t, ok)
	assert.Equal(t, "paint", m.Name)
}

func TestPropBoundsFollowTransform(t *testing.T) {
	dir := t.TempDir()
	reg := NewMaterialRegistry()
	props, errs := LoadProps([]PropSpec{
		{Name: "table", Path: writeTestOBJ(t, dir), Position: mgl32.Vec3{0, 0, -2}, Scale: 2},
	}, reg, nil)
	require.Empty(t, errs)
	require.Len(t, props, 1)

	box := props[0].Bounds()
	assert.True(t, box.Min.ApproxEqual(mgl32.Vec3{0, 0, -2}))
	assert.True(t, box.Max.ApproxEqual(mgl32.Vec3{2, 2, -2}))
}
