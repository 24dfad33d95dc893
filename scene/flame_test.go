package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFlameSizeStaysNearBase(t *testing.T) {
	f := NewFlame(mgl32.Vec3{-0.44, 1.515, -1.9}, 0.12)
	lo, hi := float32(math.MaxFloat32), float32(0)
	for i := 0; i < 10000; i++ {
		s := f.Size(float32(i) * 0.013)
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	assert.GreaterOrEqual(t, lo, float32(0.12*0.93))
	assert.LessOrEqual(t, hi, float32(0.12*1.07))
	assert.Greater(t, hi-lo, float32(0.005), "size must actually pulse")
	assert.InDelta(t, 0.12, f.Size(0), 1e-7)
}

func TestFlameLightFlickersAroundWarmColor(t *testing.T) {
	f := NewFlame(mgl32.Vec3{-0.44, 1.515, -1.9}, 0.12)

	l := f.Light(0)
	assert.Equal(t, f.Position, l.Position)
	assert.True(t, l.Color.ApproxEqual(mgl32.Vec3{0.6, 0.36, 0.06}))
	assert.Equal(t, float32(1), l.Constant)
	assert.Equal(t, float32(2), l.Linear)
	assert.Equal(t, float32(2), l.Quadratic)

	peak := f.Light(math.Pi / 10) // sin(5t) = 1
	assert.InDelta(t, 0.6*1.15, peak.Color.X(), 1e-5)
	assert.Greater(t, peak.Color.X(), peak.Color.Y())
	assert.Greater(t, peak.Color.Y(), peak.Color.Z())
}

func TestBillboardAxesOrthonormalForAnyView(t *testing.T) {
	eyes := []mgl32.Vec3{{0, 1.7, 0}, {2, 0.3, 3}, {-2.5, 3.2, -3.5}, {0.1, 1, 1}}
	targets := []mgl32.Vec3{{-0.44, 1.515, -1.9}, {3, 1, 0}, {0, 0, 4}}
	for _, eye := range eyes {
		for _, target := range targets {
			view := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
			right, up := BillboardAxes(view)

			assert.InDelta(t, 1, right.Len(), 1e-5)
			assert.InDelta(t, 1, up.Len(), 1e-5)
			assert.InDelta(t, 0, right.Dot(up), 1e-5)

			forward := target.Sub(eye).Normalize()
			assert.InDelta(t, 0, right.Dot(forward), 1e-5)
			assert.InDelta(t, 0, up.Dot(forward), 1e-5)
		}
	}
}

func TestFlameBillboardSharesClockWithSize(t *testing.T) {
	f := NewFlame(mgl32.Vec3{-0.44, 1.515, -1.9}, 0.12)
	view := mgl32.LookAtV(mgl32.Vec3{0, 1.7, 0}, f.Position, mgl32.Vec3{0, 1, 0})

	b := f.Billboard(view, 2.5)
	assert.Equal(t, f.Size(2.5), b.Size)
	assert.Equal(t, float32(2.5), b.Time)
	assert.Equal(t, f.Position, b.Position)
}
