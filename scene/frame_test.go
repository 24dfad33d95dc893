package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAdjustBrightnessClamps(t *testing.T) {
	f := &FrameContext{GlobalBrightness: 3, LocalBrightness: 1}

	f.AdjustBrightness(2, -0.5)
	assert.Equal(t, MaxBrightness, f.GlobalBrightness)
	assert.Equal(t, float32(0.5), f.LocalBrightness)

	f.AdjustBrightness(-10, -10)
	assert.Zero(t, f.GlobalBrightness)
	assert.Zero(t, f.LocalBrightness)
}

func TestAdvanceComputesDelta(t *testing.T) {
	f := &FrameContext{}
	f.Advance(0.5)
	assert.Equal(t, float32(0.5), f.Delta)
	f.Advance(0.52)
	assert.InDelta(t, 0.02, f.Delta, 1e-6)
	f.Advance(0.1)
	assert.Zero(t, f.Delta, "clock going backwards")
}

func TestViewFollowsCameraAndWindow(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 1.7, 0}, mgl32.DegToRad(90), 1, 0.1, 100)
	f := &FrameContext{Camera: cam, Width: 1920, Height: 1080}

	v := f.View()
	assert.Equal(t, cam.Position, v.Eye)
	assert.InDelta(t, 1920.0/1080.0, cam.AspectRatio, 1e-6)
	assert.Equal(t, cam.GetViewMatrix(), v.View)
	assert.Equal(t, v.Projection.Mul4(v.View), v.ViewProjection())
}

func TestViewWithoutCamera(t *testing.T) {
	f := &FrameContext{Width: 10, Height: 10}
	v := f.View()
	assert.Equal(t, mgl32.Ident4(), v.View)
	assert.Equal(t, 10, v.Width)
}
