package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

func TestLightSpaceMatrixIsDeterministic(t *testing.T) {
	sun := NewSun(mgl32.Vec3{10, 2, 3.5}, mgl32.Vec3{})
	a := sun.LightSpace(DefaultShadowFrustum())
	b := sun.LightSpace(DefaultShadowFrustum())
	require.Equal(t, a, b)
}

func TestLightSpaceMatrixDepthRange(t *testing.T) {
	f := DefaultShadowFrustum()
	sun := NewSun(mgl32.Vec3{10, 2, 3.5}, mgl32.Vec3{})
	m := sun.LightSpace(f)

	near := project(m, sun.Position.Add(sun.Direction.Mul(f.Near)))
	far := project(m, sun.Position.Add(sun.Direction.Mul(f.Far)))
	assert.InDelta(t, -1, near.Z(), 1e-4)
	assert.InDelta(t, 1, far.Z(), 1e-4)
	assert.InDelta(t, 0, near.X(), 1e-4)
	assert.InDelta(t, 0, near.Y(), 1e-4)
}

func TestDefaultSunCoversTheRoom(t *testing.T) {
	m := NewSun(mgl32.Vec3{10, 2, 3.5}, mgl32.Vec3{}).LightSpace(DefaultShadowFrustum())
	for _, x := range []float32{-3, 3} {
		for _, y := range []float32{0, 3.5} {
			for _, z := range []float32{-4, 4} {
				p := project(m, mgl32.Vec3{x, y, z})
				for i := 0; i < 3; i++ {
					assert.True(t, p[i] > -1 && p[i] < 1, "corner %v axis %d: %v", mgl32.Vec3{x, y, z}, i, p[i])
				}
			}
		}
	}
}

func TestLightSpaceMatrixHandlesOverheadSun(t *testing.T) {
	m := LightSpaceMatrix(DefaultShadowFrustum(), mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0})
	p := project(m, mgl32.Vec3{0, 0, 0})
	for i := 0; i < 3; i++ {
		assert.False(t, p[i] != p[i], "NaN in overhead light space")
	}
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
}
