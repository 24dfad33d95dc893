package opengl

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"victorian-room/scene"
)

type smokeUniforms struct {
	viewProj int32
	center   int32
	right    int32
	up       int32
	alpha    int32
	tex      int32
}

// SmokeRenderer draws smoke particles as camera-facing quads, one draw call
// per particle over a shared unit quad. It implements scene.BillboardDrawer.
type SmokeRenderer struct {
	prog    uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	u       smokeUniforms
	texture *scene.Texture
	draws   int
}

// Shared quad: pos(3) + uv(2), corners at ±0.5.
var smokeQuad = []float32{
	-0.5, -0.5, 0, 0, 0,
	0.5, -0.5, 0, 1, 0,
	0.5, 0.5, 0, 1, 1,
	-0.5, 0.5, 0, 0, 1,
}

var smokeQuadIndices = []uint32{0, 1, 2, 0, 2, 3}

// newSmokeRenderer compiles the smoke program and creates the shared quad.
// A shader error is returned with a usable renderer.
func newSmokeRenderer(tex *scene.Texture) (*SmokeRenderer, error) {
	prog, progErr := newProgram(smokeVertSrc, smokeFragSrc)
	if progErr != nil {
		progErr = fmt.Errorf("smoke shader: %w", progErr)
	}

	sr := &SmokeRenderer{
		prog:    prog,
		texture: tex,
		u: smokeUniforms{
			viewProj: uniform(prog, "viewProj"),
			center:   uniform(prog, "center"),
			right:    uniform(prog, "right"),
			up:       uniform(prog, "up"),
			alpha:    uniform(prog, "alpha"),
			tex:      uniform(prog, "smokeTex"),
		},
	}

	gl.GenVertexArrays(1, &sr.vao)
	gl.GenBuffers(1, &sr.vbo)
	gl.GenBuffers(1, &sr.ebo)

	gl.BindVertexArray(sr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(smokeQuad)*4, gl.Ptr(smokeQuad), gl.STATIC_DRAW)

	const stride = int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(12))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(smokeQuadIndices)*4, gl.Ptr(smokeQuadIndices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	gl.UseProgram(prog)
	gl.Uniform1i(sr.u.tex, 0)

	if tex != nil {
		if err := UploadTexture(tex); err != nil {
			progErr = errors.Join(progErr, fmt.Errorf("smoke texture: %w", err))
		}
	}
	return sr, progErr
}

// draw renders every live particle of e. Returns the number of draw calls.
func (sr *SmokeRenderer) draw(e *scene.SmokeEmitter, eye mgl32.Vec3, viewProj mgl32.Mat4) int {
	gl.UseProgram(sr.prog)
	gl.UniformMatrix4fv(sr.u.viewProj, 1, false, &viewProj[0])
	sr.draws = 0
	e.Render(sr, eye)
	gl.BindVertexArray(0)
	return sr.draws
}

// BeginBillboards binds the shared quad and the sprite texture.
func (sr *SmokeRenderer) BeginBillboards() {
	gl.ActiveTexture(gl.TEXTURE0)
	if sr.texture != nil {
		gl.BindTexture(gl.TEXTURE_2D, sr.texture.GLID)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.BindVertexArray(sr.vao)
}

// DrawBillboard draws one particle.
func (sr *SmokeRenderer) DrawBillboard(b scene.Billboard) {
	gl.Uniform3fv(sr.u.center, 1, &b.Center[0])
	gl.Uniform3fv(sr.u.right, 1, &b.Right[0])
	gl.Uniform3fv(sr.u.up, 1, &b.Up[0])
	gl.Uniform1f(sr.u.alpha, b.Alpha)
	gl.DrawElements(gl.TRIANGLES, int32(len(smokeQuadIndices)), gl.UNSIGNED_INT, nil)
	sr.draws++
}

func (sr *SmokeRenderer) destroy() {
	gl.DeleteVertexArrays(1, &sr.vao)
	gl.DeleteBuffers(1, &sr.vbo)
	gl.DeleteBuffers(1, &sr.ebo)
	gl.DeleteProgram(sr.prog)
	DeleteTexture(sr.texture)
}
