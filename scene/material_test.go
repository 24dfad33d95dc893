package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAppendsAfterRoomMaterials(t *testing.T) {
	r := NewMaterialRegistry()
	require.NoError(t, r.Set(MaterialWallpaper, DefaultMaterial()))
	require.NoError(t, r.Set(MaterialGlass, DefaultMaterial()))
	assert.Equal(t, FirstPropMaterial, r.Next())

	table := []*Material{{Name: "wood"}, {Name: "brass"}}
	off, err := r.Append(table)
	require.NoError(t, err)
	assert.Equal(t, 9, off)
	assert.Equal(t, 11, r.Next())

	off, err = r.Append([]*Material{{Name: "velvet"}})
	require.NoError(t, err)
	assert.Equal(t, 11, off)

	m, ok := r.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, "brass", m.Name)
}

func TestRegistryLookupMisses(t *testing.T) {
	r := NewMaterialRegistry()
	require.NoError(t, r.Set(MaterialFloor, DefaultMaterial()))

	_, ok := r.Lookup(-1)
	assert.False(t, ok)
	_, ok = r.Lookup(1)
	assert.False(t, ok, "gap between fixed ids")
	_, ok = r.Lookup(40)
	assert.False(t, ok)
}

func TestRegistryOverflowKeepsOffsetsConsistent(t *testing.T) {
	r := NewMaterialRegistry()
	many := make([]*Material, 30)
	for i := range many {
		many[i] = DefaultMaterial()
	}

	off, err := r.Append(many)
	assert.Error(t, err)
	assert.Equal(t, FirstPropMaterial, off)
	assert.Equal(t, FirstPropMaterial+30, r.Next())
	assert.Equal(t, MaxMaterials, r.Len())

	_, ok := r.Lookup(MaxMaterials + 1)
	assert.False(t, ok)
}

func TestRegistryRejectsOutOfRangeSet(t *testing.T) {
	r := NewMaterialRegistry()
	assert.Error(t, r.Set(MaxMaterials, DefaultMaterial()))
	assert.Error(t, r.Set(-2, DefaultMaterial()))
}

func TestHasTexture(t *testing.T) {
	var nilMat *Material
	assert.False(t, nilMat.HasTexture())
	assert.False(t, DefaultMaterial().HasTexture())
	assert.True(t, NewTexturedMaterial("paper", NewSolidTexture("white", 255, 255, 255, 255)).HasTexture())
}
