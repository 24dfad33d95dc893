package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"victorian-room/internal/passes"
)

// BindTarget binds the default framebuffer or the shadow map FBO.
func (r *Renderer) BindTarget(t passes.Target) {
	fbo := uint32(0)
	if t == passes.ShadowFramebuffer && r.shadowMap != nil {
		fbo = r.shadowMap.FBO
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (r *Renderer) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (r *Renderer) SetDepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

// SetCulling toggles back-face culling.
func (r *Renderer) SetCulling(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func (r *Renderer) SetBlend(b passes.Blend) {
	switch b {
	case passes.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}
}
