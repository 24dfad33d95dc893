package opengl

import (
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"victorian-room/core"
	"victorian-room/scene"
)

func TestFramebufferStatusComplete(t *testing.T) {
	assert.NoError(t, framebufferStatusError(gl.FRAMEBUFFER_COMPLETE))
}

func TestFramebufferStatusIncomplete(t *testing.T) {
	for _, status := range []uint32{
		gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT,
		gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT,
		gl.FRAMEBUFFER_UNSUPPORTED,
	} {
		err := framebufferStatusError(status)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete")
	}
}

func TestShadowMapRejectsNonPositiveSize(t *testing.T) {
	sm, err := NewShadowMap(0)
	assert.Nil(t, sm)
	assert.Error(t, err)
}

// Without a shadow map both shadow entry points return before touching GL,
// so they are safe to call with no context at all.
func TestShadowPassWithoutMapDrawsNothing(t *testing.T) {
	r := &Renderer{}
	mesh := scene.CreateMeshFromData("tri", make([]core.Vertex, 3), []uint32{0, 1, 2})

	assert.NotPanics(t, func() {
		r.BeginShadowPass(mgl32.Ident4())
		r.DrawShadowCaster(mesh, mgl32.Ident4())
	})
	assert.Nil(t, mesh.GPUData, "mesh must not be uploaded")
}
