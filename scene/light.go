package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is the single directional shadow caster.
type Sun struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3 // unit vector the light travels along
	Color     mgl32.Vec3
	Intensity float32
}

// NewSun aims a sun at target from position.
func NewSun(position, target mgl32.Vec3) Sun {
	return Sun{
		Position:  position,
		Direction: target.Sub(position).Normalize(),
		Color:     mgl32.Vec3{1.0, 0.95, 0.8},
		Intensity: 0.8,
	}
}

// ShadowFrustum is the orthographic volume rendered into the shadow map.
type ShadowFrustum struct {
	HalfExtent float32
	Near       float32
	Far        float32
}

func DefaultShadowFrustum() ShadowFrustum {
	return ShadowFrustum{HalfExtent: 10, Near: 0.1, Far: 20}
}

// LightSpaceMatrix maps world space into the sun's clip space. It depends
// only on its arguments, so computing it twice in a frame gives the same bits.
func LightSpaceMatrix(f ShadowFrustum, position, direction mgl32.Vec3) mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(direction.Normalize().Dot(up))) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	proj := mgl32.Ortho(-f.HalfExtent, f.HalfExtent, -f.HalfExtent, f.HalfExtent, f.Near, f.Far)
	view := mgl32.LookAtV(position, position.Add(direction), up)
	return proj.Mul4(view)
}

// LightSpace is LightSpaceMatrix for this sun.
func (s Sun) LightSpace(f ShadowFrustum) mgl32.Mat4 {
	return LightSpaceMatrix(f, s.Position, s.Direction)
}

// Ambient light colour before the global brightness factor.
var AmbientColor = mgl32.Vec3{0.2, 0.2, 0.3}.Mul(0.3)

// Lighting bundles the per-frame inputs of the lighting pass.
type Lighting struct {
	Sun              Sun
	LightSpace       mgl32.Mat4
	Ambient          mgl32.Vec3
	Point            PointLight
	GlobalBrightness float32
	LocalBrightness  float32
	Debug            DebugView
	Time             float32
}
