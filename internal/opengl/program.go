package opengl

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// newProgram compiles and links a vertex/fragment pair. On failure the
// program id is still returned alongside the driver log so callers can
// log it and keep drawing with whatever the driver produced.
func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, vertErr := compileShader(vertSrc, gl.VERTEX_SHADER)
	frag, fragErr := compileShader(fragSrc, gl.FRAGMENT_SHADER)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var linkErr error
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		linkErr = fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	if vertErr != nil {
		vertErr = fmt.Errorf("vertex: %w", vertErr)
	}
	if fragErr != nil {
		fragErr = fmt.Errorf("fragment: %w", fragErr)
	}
	return prog, errors.Join(vertErr, fragErr, linkErr)
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return shader, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// uniform resolves a uniform location. -1 means the program does not use
// it; gl.Uniform* ignores -1, so absent uniforms are skipped for free.
func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
