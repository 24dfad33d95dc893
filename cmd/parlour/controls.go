package main

import (
	"victorian-room/internal/window"
	"victorian-room/scene"
)

// KeyState is the part of the window the controls read.
type KeyState interface {
	IsKeyPressed(key int) bool
}

// Controls maps held keys onto the camera and the frame context.
// All rates are per second so motion does not depend on the frame rate.
type Controls struct {
	MoveSpeed      float32 // metres per second
	TurnSpeed      float32 // radians per second
	BrightnessRate float32 // brightness units per second
}

// axis returns +1, -1 or 0 depending on which key group is held.
func axis(keys KeyState, positive, negative []int) float32 {
	var v float32
	if anyPressed(keys, positive...) {
		v++
	}
	if anyPressed(keys, negative...) {
		v--
	}
	return v
}

func anyPressed(keys KeyState, codes ...int) bool {
	for _, k := range codes {
		if keys.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// Update applies one frame of input. It returns true when the user asked
// to quit.
func (c Controls) Update(keys KeyState, fc *scene.FrameContext, dt float32) bool {
	if keys.IsKeyPressed(window.KeyEscape) {
		return true
	}

	if cam := fc.Camera; cam != nil {
		turn := c.TurnSpeed * dt
		yaw := axis(keys, []int{window.KeyLeft}, []int{window.KeyRight})
		pitch := axis(keys, []int{window.KeyUp}, []int{window.KeyDown})
		if yaw != 0 || pitch != 0 {
			cam.Turn(yaw*turn, pitch*turn)
		}

		step := c.MoveSpeed * dt
		forward := axis(keys, []int{window.KeyW, window.KeyZ}, []int{window.KeyS})
		right := axis(keys, []int{window.KeyD, window.KeyE}, []int{window.KeyA, window.KeyQ})
		up := axis(keys, []int{window.KeyX, window.KeySpace}, []int{window.KeyC, window.KeyLeftShift})
		if forward != 0 || right != 0 || up != 0 {
			cam.Move(forward*step, right*step, up*step)
		}

		if keys.IsKeyPressed(window.KeyR) {
			cam.Reset()
		}
	}

	rate := c.BrightnessRate * dt
	global := axis(keys, []int{window.KeyP}, []int{window.KeyO})
	local := axis(keys, []int{window.KeyL}, []int{window.KeyK})
	if global != 0 || local != 0 {
		fc.AdjustBrightness(global*rate, local*rate)
	}

	switch {
	case keys.IsKeyPressed(window.KeyU):
		fc.Debug = scene.DebugUVs
	case keys.IsKeyPressed(window.KeyM):
		fc.Debug = scene.DebugNormals
	case keys.IsKeyPressed(window.KeyN):
		fc.Debug = scene.DebugMaterialIDs
	default:
		fc.Debug = scene.DebugNone
	}
	return false
}
