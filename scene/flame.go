package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PointLight is the candle light fed to the lighting pass.
type PointLight struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Flame is the candle flame billboard. Its size pulse and the light flicker
// are both driven by the same clock so they stay in phase.
type Flame struct {
	Position mgl32.Vec3
	BaseSize float32
}

var (
	flameLightColor       = mgl32.Vec3{1.0, 0.6, 0.1}
	flameLightIntensity   = float32(0.6)
	flameLightFlicker     = float32(0.15)
	flameAttenuationConst = float32(1)
	flameAttenuationLin   = float32(2)
	flameAttenuationQuad  = float32(2)
)

func NewFlame(position mgl32.Vec3, baseSize float32) *Flame {
	return &Flame{Position: position, BaseSize: baseSize}
}

// Size returns the billboard size at time t (seconds): a sum of two slow
// sines, never more than 7% away from BaseSize.
func (f *Flame) Size(t float32) float32 {
	wobble := (sin32(t*1.5)*0.5 + sin32(t*3.7)*0.2) * 0.10
	return f.BaseSize * (1 + wobble)
}

// Light returns the point light emitted by the flame at time t.
func (f *Flame) Light(t float32) PointLight {
	flicker := 1 + flameLightFlicker*sin32(t*5)
	return PointLight{
		Position:  f.Position,
		Color:     flameLightColor.Mul(flicker * flameLightIntensity),
		Constant:  flameAttenuationConst,
		Linear:    flameAttenuationLin,
		Quadratic: flameAttenuationQuad,
	}
}

// FlameBillboard is everything the flame draw needs for one frame.
type FlameBillboard struct {
	Position mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
	Size     float32
	Time     float32
}

// Billboard orients the flame with the camera axes taken from view.
func (f *Flame) Billboard(view mgl32.Mat4, t float32) FlameBillboard {
	right, up := BillboardAxes(view)
	return FlameBillboard{
		Position: f.Position,
		Right:    right,
		Up:       up,
		Size:     f.Size(t),
		Time:     t,
	}
}

// BillboardAxes extracts the camera right and up vectors from the rotation
// rows of a view matrix. Translation is ignored.
func BillboardAxes(view mgl32.Mat4) (mgl32.Vec3, mgl32.Vec3) {
	right := view.Row(0).Vec3()
	up := view.Row(1).Vec3()
	if right.Len() > 0 {
		right = right.Normalize()
	}
	if up.Len() > 0 {
		up = up.Normalize()
	}
	return right, up
}
