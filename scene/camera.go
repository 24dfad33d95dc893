package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the first-person camera from flipping over.
const MaxPitch float32 = 1.5

// Camera is a first-person camera described by a position and yaw/pitch
// angles in radians. Yaw turns around +Y; positive pitch looks up.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	home mgl32.Vec3

	// Cached matrices
	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	dirty            bool
}

func NewCamera(position mgl32.Vec3, fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    position,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		home:        position,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 && width/height != c.AspectRatio {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

// Turn adds to yaw and pitch; pitch is clamped to ±MaxPitch.
func (c *Camera) Turn(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch = mgl32.Clamp(c.Pitch+deltaPitch, -MaxPitch, MaxPitch)
	c.dirty = true
}

// Move translates along the view direction, the camera right axis and world up.
func (c *Camera) Move(forward, right, up float32) {
	delta := c.Forward().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	c.Position = c.Position.Add(delta)
	c.dirty = true
}

// Reset returns to the starting position with level angles.
func (c *Camera) Reset() {
	c.Position = c.home
	c.Yaw, c.Pitch = 0, 0
	c.dirty = true
}

func (c *Camera) orientation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(c.Yaw).Mul4(mgl32.HomogRotate3DX(c.Pitch))
}

// Forward is the unit vector the camera looks along.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.orientation().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.orientation().Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

func (c *Camera) updateMatrices() {
	rotation := mgl32.HomogRotate3DX(-c.Pitch).Mul4(mgl32.HomogRotate3DY(-c.Yaw))
	translation := mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	c.viewMatrix = rotation.Mul4(translation)
	c.projectionMatrix = mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.dirty = false
}
