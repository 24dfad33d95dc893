package opengl

import (
	"errors"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queue(codes ...uint32) func() uint32 {
	return func() uint32 {
		if len(codes) == 0 {
			return gl.NO_ERROR
		}
		c := codes[0]
		codes = codes[1:]
		return c
	}
}

func TestDrainErrorsClean(t *testing.T) {
	assert.NoError(t, drainErrors("draw", queue()))
}

func TestDrainErrorsCollectsEveryCode(t *testing.T) {
	err := drainErrors("smoke", queue(gl.INVALID_ENUM, gl.INVALID_OPERATION))
	require.Error(t, err)

	var glErr *GLError
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, "smoke", glErr.Label)
	assert.Equal(t, uint32(gl.INVALID_ENUM), glErr.Code)
	assert.Contains(t, err.Error(), "INVALID_OPERATION")
}

func TestDrainErrorsIsBounded(t *testing.T) {
	calls := 0
	stuck := func() uint32 {
		calls++
		return gl.OUT_OF_MEMORY
	}
	require.Error(t, drainErrors("lost", stuck))
	assert.Equal(t, maxPolledErrors, calls)
}

func TestGLErrorName(t *testing.T) {
	assert.Equal(t, "INVALID_VALUE", glErrorName(gl.INVALID_VALUE))
	assert.Equal(t, "UNKNOWN", glErrorName(0x1234))
}
