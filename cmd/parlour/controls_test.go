package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"victorian-room/internal/window"
	"victorian-room/scene"
)

type heldKeys map[int]bool

func (h heldKeys) IsKeyPressed(key int) bool { return h[key] }

func newTestContext() *scene.FrameContext {
	return &scene.FrameContext{
		Camera:           scene.NewCamera(mgl32.Vec3{0, 1.7, 0}, mgl32.DegToRad(90), 1, 0.1, 100),
		GlobalBrightness: 3,
		LocalBrightness:  1,
	}
}

var testControls = Controls{MoveSpeed: 0.54, TurnSpeed: 0.24, BrightnessRate: 0.3}

func TestEscapeQuits(t *testing.T) {
	assert.True(t, testControls.Update(heldKeys{window.KeyEscape: true}, newTestContext(), 0.016))
	assert.False(t, testControls.Update(heldKeys{}, newTestContext(), 0.016))
}

func TestMovementIsPerSecond(t *testing.T) {
	// one long frame and many short ones cover the same distance
	a, b := newTestContext(), newTestContext()
	keys := heldKeys{window.KeyW: true}

	testControls.Update(keys, a, 1)
	for i := 0; i < 100; i++ {
		testControls.Update(keys, b, 0.01)
	}
	assert.InDelta(t, -0.54, a.Camera.Position.Z(), 1e-5)
	assert.InDelta(t, a.Camera.Position.Z(), b.Camera.Position.Z(), 1e-4)
}

func TestAlternateKeysAndOpposites(t *testing.T) {
	fc := newTestContext()
	testControls.Update(heldKeys{window.KeyZ: true}, fc, 1)
	assert.InDelta(t, -0.54, fc.Camera.Position.Z(), 1e-5)

	fc = newTestContext()
	testControls.Update(heldKeys{window.KeyW: true, window.KeyS: true}, fc, 1)
	assert.Equal(t, mgl32.Vec3{0, 1.7, 0}, fc.Camera.Position)

	fc = newTestContext()
	testControls.Update(heldKeys{window.KeyLeftShift: true}, fc, 1)
	assert.InDelta(t, 1.7-0.54, fc.Camera.Position.Y(), 1e-5)
}

func TestTurnAndReset(t *testing.T) {
	fc := newTestContext()
	testControls.Update(heldKeys{window.KeyLeft: true, window.KeyUp: true}, fc, 1)
	assert.InDelta(t, 0.24, fc.Camera.Yaw, 1e-6)
	assert.InDelta(t, 0.24, fc.Camera.Pitch, 1e-6)

	testControls.Update(heldKeys{window.KeyR: true}, fc, 0.016)
	assert.Zero(t, fc.Camera.Yaw)
	assert.Zero(t, fc.Camera.Pitch)
	assert.Equal(t, mgl32.Vec3{0, 1.7, 0}, fc.Camera.Position)
}

func TestBrightnessKeysClamp(t *testing.T) {
	fc := newTestContext()
	testControls.Update(heldKeys{window.KeyP: true, window.KeyK: true}, fc, 10)
	assert.Equal(t, scene.MaxBrightness, fc.GlobalBrightness)
	assert.Zero(t, fc.LocalBrightness)

	testControls.Update(heldKeys{window.KeyO: true}, fc, 1)
	assert.InDelta(t, 3.7, fc.GlobalBrightness, 1e-5)
}

func TestDebugViewsWhileHeld(t *testing.T) {
	fc := newTestContext()
	testControls.Update(heldKeys{window.KeyN: true}, fc, 0.016)
	assert.Equal(t, scene.DebugMaterialIDs, fc.Debug)

	testControls.Update(heldKeys{window.KeyN: true, window.KeyU: true}, fc, 0.016)
	assert.Equal(t, scene.DebugUVs, fc.Debug)

	testControls.Update(heldKeys{}, fc, 0.016)
	assert.Equal(t, scene.DebugNone, fc.Debug)
}
