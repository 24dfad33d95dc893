package scene

import "github.com/go-gl/mathgl/mgl32"

// DebugView replaces shading with a diagnostic colouring.
type DebugView int

const (
	DebugNone DebugView = iota
	DebugMaterialIDs
	DebugNormals
	DebugUVs
)

func (d DebugView) String() string {
	switch d {
	case DebugMaterialIDs:
		return "material-ids"
	case DebugNormals:
		return "normals"
	case DebugUVs:
		return "uvs"
	}
	return "none"
}

// Brightness multipliers are kept within [0, MaxBrightness].
const MaxBrightness float32 = 4

// FrameContext carries the per-frame inputs handed to the renderer.
type FrameContext struct {
	Time             float32 // seconds since start
	Delta            float32 // seconds since the previous frame
	Camera           *Camera
	GlobalBrightness float32
	LocalBrightness  float32
	Debug            DebugView
	Width, Height    int
}

// AdjustBrightness adds to both brightness multipliers and clamps them.
func (f *FrameContext) AdjustBrightness(dGlobal, dLocal float32) {
	f.GlobalBrightness = mgl32.Clamp(f.GlobalBrightness+dGlobal, 0, MaxBrightness)
	f.LocalBrightness = mgl32.Clamp(f.LocalBrightness+dLocal, 0, MaxBrightness)
}

// Advance moves the clock to now and records the delta.
func (f *FrameContext) Advance(now float32) {
	f.Delta = now - f.Time
	if f.Delta < 0 {
		f.Delta = 0
	}
	f.Time = now
}

// View is the camera state a frame is drawn with.
type View struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	Width      int
	Height     int
}

// ViewProjection returns Projection * View.
func (v View) ViewProjection() mgl32.Mat4 {
	return v.Projection.Mul4(v.View)
}

// View snapshots the camera for this frame. Without a camera the identity
// view at the origin is used.
func (f *FrameContext) View() View {
	v := View{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Width:      f.Width,
		Height:     f.Height,
	}
	if f.Camera != nil {
		if f.Width > 0 && f.Height > 0 {
			f.Camera.UpdateAspectRatio(float32(f.Width), float32(f.Height))
		}
		v.View = f.Camera.GetViewMatrix()
		v.Projection = f.Camera.GetProjectionMatrix()
		v.Eye = f.Camera.Position
	}
	return v
}
