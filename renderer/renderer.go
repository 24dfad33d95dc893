package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"victorian-room/internal/logger"
	"victorian-room/internal/passes"
	"victorian-room/scene"
)

// Device is the GPU side of a frame. It also receives the fixed-function
// state changes chosen by the pass tracker.
type Device interface {
	passes.Backend

	// BeginShadowPass clears the bound shadow target and loads lightSpace.
	BeginShadowPass(lightSpace mgl32.Mat4)
	DrawShadowCaster(mesh *scene.Mesh, model mgl32.Mat4)

	// BeginMainPass clears the window and loads camera and lighting uniforms.
	BeginMainPass(v scene.View, l scene.Lighting)
	// SetMaterialPass picks which material ids the lit program keeps.
	SetMaterialPass(p passes.Pass)
	DrawMesh(mesh *scene.Mesh, model mgl32.Mat4)

	DrawSmoke(e *scene.SmokeEmitter, v scene.View) int
	DrawFlame(b scene.FlameBillboard, v scene.View)

	// CheckError reports (and clears) any pending GPU errors.
	CheckError(label string) error
}

// Scene is everything a frame draws. Window is the glass pane; it casts no
// shadow and is drawn in its own pass.
type Scene struct {
	Room    *scene.Mesh
	Window  *scene.Mesh
	Props   []*scene.Prop
	Smoke   *scene.SmokeEmitter
	Flame   *scene.Flame
	Sun     scene.Sun
	Frustum scene.ShadowFrustum
}

// Stats counts the work done by the most recent Frame.
type Stats struct {
	ShadowDraws int
	OpaqueDraws int
	GlassDraws  int
	SmokeDraws  int
	FlameDraws  int
	Culled      int
	Particles   int
	GLErrors    int
}

// RenderEngine sequences the passes of a frame over a Device.
type RenderEngine struct {
	Scene *Scene
	// FrustumCulling skips props outside the camera frustum in the lit pass.
	// Shadow casters are never culled.
	FrustumCulling bool
	// SmokeStep, when positive, advances the smoke by a fixed amount per
	// frame instead of the frame delta.
	SmokeStep float32

	dev        Device
	tracker    *passes.Tracker
	lightSpace mgl32.Mat4
	stats      Stats
	// checkDraws polls for GPU errors after every draw instead of once per
	// pass. Set per frame from the logger's debug level.
	checkDraws bool
}

func NewRenderEngine(dev Device, s *Scene) *RenderEngine {
	return &RenderEngine{
		Scene:          s,
		FrustumCulling: true,
		dev:            dev,
		tracker:        passes.NewTracker(dev),
	}
}

// Frame simulates and draws one frame: shadow, opaque, glass, smoke, flame,
// then restores the resting state. GPU errors are polled after each pass, or
// after each draw when debug logging is on. They are logged and never stop
// the frame.
func (re *RenderEngine) Frame(fc *scene.FrameContext) {
	s := re.Scene
	re.stats = Stats{}
	re.checkDraws = logger.Log.Core().Enabled(zap.DebugLevel)

	if s.Smoke != nil {
		step := fc.Delta
		if re.SmokeStep > 0 {
			step = re.SmokeStep
		}
		s.Smoke.Update(step)
		re.stats.Particles = s.Smoke.Count()
	}

	if fc.Width <= 0 || fc.Height <= 0 {
		return
	}

	view := fc.View()
	// One matrix for both the depth pass and the lighting pass.
	re.lightSpace = s.Sun.LightSpace(s.Frustum)
	lighting := scene.Lighting{
		Sun:              s.Sun,
		LightSpace:       re.lightSpace,
		Ambient:          scene.AmbientColor,
		GlobalBrightness: fc.GlobalBrightness,
		LocalBrightness:  fc.LocalBrightness,
		Debug:            fc.Debug,
		Time:             fc.Time,
	}
	if s.Flame != nil {
		lighting.Point = s.Flame.Light(fc.Time)
	}

	re.shadowPass()
	re.opaquePass(view, lighting)
	re.glassPass()
	re.smokePass(view)
	re.flamePass(view, fc.Time)

	re.tracker.Apply(passes.Rest)
}

// ── Passes ────────────────────────────────────────────────────────────────────

func (re *RenderEngine) shadowPass() {
	re.tracker.Apply(passes.Shadow)
	re.dev.BeginShadowPass(re.lightSpace)
	if re.Scene.Room != nil {
		re.dev.DrawShadowCaster(re.Scene.Room, mgl32.Ident4())
		re.stats.ShadowDraws++
		re.drawn("shadow", re.Scene.Room.Name)
	}
	for _, p := range re.Scene.Props {
		re.dev.DrawShadowCaster(p.Model.Mesh, p.ModelMatrix())
		re.stats.ShadowDraws++
		re.drawn("shadow", p.Name)
	}
	re.check("shadow")
}

func (re *RenderEngine) opaquePass(view scene.View, lighting scene.Lighting) {
	re.tracker.Apply(passes.Opaque)
	re.dev.BeginMainPass(view, lighting)
	re.dev.SetMaterialPass(passes.Opaque)

	if re.Scene.Room != nil {
		re.dev.DrawMesh(re.Scene.Room, mgl32.Ident4())
		re.stats.OpaqueDraws++
		re.drawn("opaque", re.Scene.Room.Name)
	}

	var frustum scene.Frustum
	if re.FrustumCulling {
		frustum = scene.FrustumFromVP(view.ViewProjection())
	}
	for _, p := range re.Scene.Props {
		if re.FrustumCulling && !p.Bounds().IntersectsFrustum(&frustum) {
			re.stats.Culled++
			continue
		}
		re.dev.DrawMesh(p.Model.Mesh, p.ModelMatrix())
		re.stats.OpaqueDraws++
		re.drawn("opaque", p.Name)
	}
	re.check("opaque")
}

func (re *RenderEngine) glassPass() {
	if re.Scene.Window == nil {
		return
	}
	re.tracker.Apply(passes.Glass)
	re.dev.SetMaterialPass(passes.Glass)
	re.dev.DrawMesh(re.Scene.Window, mgl32.Ident4())
	re.stats.GlassDraws++
	re.check("glass")
}

func (re *RenderEngine) smokePass(view scene.View) {
	if re.Scene.Smoke == nil || re.Scene.Smoke.Count() == 0 {
		return
	}
	re.tracker.Apply(passes.Smoke)
	re.stats.SmokeDraws = re.dev.DrawSmoke(re.Scene.Smoke, view)
	re.check("smoke")
}

func (re *RenderEngine) flamePass(view scene.View, t float32) {
	if re.Scene.Flame == nil {
		return
	}
	re.tracker.Apply(passes.Flame)
	re.dev.DrawFlame(re.Scene.Flame.Billboard(view.View, t), view)
	re.stats.FlameDraws++
	re.check("flame")
}

// drawn polls after a single draw when per-draw checking is on. The pass
// check that follows then finds the error queue already drained.
func (re *RenderEngine) drawn(pass, name string) {
	if re.checkDraws {
		re.check(pass + ":" + name)
	}
}

func (re *RenderEngine) check(label string) {
	if err := re.dev.CheckError(label); err != nil {
		re.stats.GLErrors++
		logger.Log.Warn("GL error", zap.String("pass", label), zap.Error(err))
	}
}

// ── Accessors ─────────────────────────────────────────────────────────────────

// Stats returns the counters of the most recent Frame.
func (re *RenderEngine) Stats() Stats {
	return re.stats
}

// LightSpace returns the light-space matrix used by the most recent Frame.
func (re *RenderEngine) LightSpace() mgl32.Mat4 {
	return re.lightSpace
}

// State returns the pass state the device was last left in.
func (re *RenderEngine) State() (passes.State, bool) {
	return re.tracker.Current()
}

// Invalidate forces the next frame to rewrite every piece of pass state.
func (re *RenderEngine) Invalidate() {
	re.tracker.Invalidate()
}
