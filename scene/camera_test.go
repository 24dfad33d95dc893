package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 1.7, 0}, mgl32.DegToRad(90), 16.0/9.0, 0.1, 100)
}

func TestCameraLooksDownNegativeZ(t *testing.T) {
	c := newTestCamera()
	assert.True(t, c.Forward().ApproxEqual(mgl32.Vec3{0, 0, -1}))
	assert.True(t, c.Right().ApproxEqual(mgl32.Vec3{1, 0, 0}))

	// a point straight ahead lands on the view axis
	p := c.GetViewMatrix().Mul4x1(mgl32.Vec4{0, 1.7, -5, 1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.InDelta(t, -5, p.Z(), 1e-5)
}

func TestCameraViewMatchesLookAt(t *testing.T) {
	c := newTestCamera()
	c.Turn(0.6, -0.3)
	c.Move(1, 0.5, 0.2)

	want := mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
	assert.True(t, c.GetViewMatrix().ApproxEqualThreshold(want, 1e-5))
}

func TestCameraPitchClamped(t *testing.T) {
	c := newTestCamera()
	c.Turn(0, 10)
	assert.Equal(t, MaxPitch, c.Pitch)
	c.Turn(0, -20)
	assert.Equal(t, -MaxPitch, c.Pitch)
}

func TestCameraLeftTurnLooksLeft(t *testing.T) {
	c := newTestCamera()
	c.Turn(0.3, 0)
	assert.Less(t, c.Forward().X(), float32(0))
}

func TestCameraResetRestoresStart(t *testing.T) {
	c := newTestCamera()
	c.Turn(1, 1)
	c.Move(3, 2, 1)
	c.Reset()
	assert.Equal(t, mgl32.Vec3{0, 1.7, 0}, c.Position)
	assert.Zero(t, c.Yaw)
	assert.Zero(t, c.Pitch)
	assert.True(t, c.GetViewMatrix().ApproxEqual(mgl32.Translate3D(0, -1.7, 0)))
}
