package opengl

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// maxPolledErrors bounds CheckError; a lost context can keep reporting.
const maxPolledErrors = 16

// GLError is one code returned by glGetError.
type GLError struct {
	Label string
	Code  uint32
}

func (e *GLError) Error() string {
	return fmt.Sprintf("%s: GL error %s (0x%04X)", e.Label, glErrorName(e.Code), e.Code)
}

// CheckError drains glGetError. It returns nil when no error was pending,
// otherwise one *GLError per code joined together.
func (r *Renderer) CheckError(label string) error {
	return drainErrors(label, gl.GetError)
}

func drainErrors(label string, next func() uint32) error {
	var errs []error
	for i := 0; i < maxPolledErrors; i++ {
		code := next()
		if code == gl.NO_ERROR {
			break
		}
		errs = append(errs, &GLError{Label: label, Code: code})
	}
	return errors.Join(errs...)
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN"
	}
}
