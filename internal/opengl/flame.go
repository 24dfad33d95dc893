package opengl

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"victorian-room/scene"
)

type flameUniforms struct {
	viewProj int32
	position int32
	right    int32
	up       int32
	size     int32
	time     int32
	tex      int32
}

// FlameRenderer draws the candle flame billboard.
type FlameRenderer struct {
	prog    uint32
	vao     uint32
	vbo     uint32
	u       flameUniforms
	texture *scene.Texture
}

// 2:3 quad matching the flame sprite: pos(3) + uv(2), two triangles.
var flameQuad = []float32{
	-0.5, -0.75, 0, 0, 0,
	0.5, -0.75, 0, 1, 0,
	0.5, 0.75, 0, 1, 1,
	-0.5, -0.75, 0, 0, 0,
	0.5, 0.75, 0, 1, 1,
	-0.5, 0.75, 0, 0, 1,
}

// newFlameRenderer compiles the flame program and uploads the quad. tex
// may be nil; the flame then samples texture 0 and is discarded as fully
// transparent.
func newFlameRenderer(tex *scene.Texture) (*FlameRenderer, error) {
	prog, progErr := newProgram(flameVertSrc, flameFragSrc)
	if progErr != nil {
		progErr = fmt.Errorf("flame shader: %w", progErr)
	}

	fr := &FlameRenderer{
		prog:    prog,
		texture: tex,
		u: flameUniforms{
			viewProj: uniform(prog, "viewProj"),
			position: uniform(prog, "flamePos"),
			right:    uniform(prog, "camRight"),
			up:       uniform(prog, "camUp"),
			size:     uniform(prog, "flameSize"),
			time:     uniform(prog, "time"),
			tex:      uniform(prog, "flameTex"),
		},
	}

	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flameQuad)*4, gl.Ptr(flameQuad), gl.STATIC_DRAW)

	const stride = int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(12))
	gl.BindVertexArray(0)

	gl.UseProgram(prog)
	gl.Uniform1i(fr.u.tex, 0)

	if tex != nil {
		if err := UploadTexture(tex); err != nil {
			progErr = errors.Join(progErr, fmt.Errorf("flame texture: %w", err))
		}
	}
	return fr, progErr
}

func (fr *FlameRenderer) draw(b scene.FlameBillboard, viewProj mgl32.Mat4) {
	gl.UseProgram(fr.prog)
	gl.UniformMatrix4fv(fr.u.viewProj, 1, false, &viewProj[0])
	gl.Uniform3fv(fr.u.position, 1, &b.Position[0])
	gl.Uniform3fv(fr.u.right, 1, &b.Right[0])
	gl.Uniform3fv(fr.u.up, 1, &b.Up[0])
	gl.Uniform1f(fr.u.size, b.Size)
	gl.Uniform1f(fr.u.time, b.Time)

	gl.ActiveTexture(gl.TEXTURE0)
	if fr.texture != nil {
		gl.BindTexture(gl.TEXTURE_2D, fr.texture.GLID)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	gl.BindVertexArray(fr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(flameQuad)/5))
	gl.BindVertexArray(0)
}

func (fr *FlameRenderer) destroy() {
	gl.DeleteVertexArrays(1, &fr.vao)
	gl.DeleteBuffers(1, &fr.vbo)
	gl.DeleteProgram(fr.prog)
	DeleteTexture(fr.texture)
}
