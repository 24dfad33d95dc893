package opengl

import (
	"errors"
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"victorian-room/core"
	"victorian-room/internal/logger"
	"victorian-room/internal/passes"
	"victorian-room/scene"
)

// Texture units used by the lighting program.
const (
	diffuseUnit = 0
	shadowUnit  = 1
)

type mainUniforms struct {
	view       int32
	projection int32
	model      int32
	lightSpace int32

	sunDir           int32
	sunColor         int32
	sunIntensity     int32
	ambientColor     int32
	globalBrightness int32
	localBrightness  int32

	pointLightPos   int32
	pointLightColor int32
	pointLightAtten int32

	materialKd     [scene.MaxMaterials]int32
	materialHasTex [scene.MaxMaterials]int32
	diffuseTex     int32
	shadowMap      int32
	shadowEnabled  int32

	renderPass int32
	debugView  int32
}

type depthUniforms struct {
	lightSpace int32
	model      int32
}

// Config holds what the backend needs at construction time.
type Config struct {
	ShadowResolution int
	ClearColor       core.Color
	SmokeTexture     *scene.Texture // nil draws untextured quads
	FlameTexture     *scene.Texture
}

// Renderer is the OpenGL backend behind the frame orchestrator.
type Renderer struct {
	program uint32
	u       mainUniforms

	depthProg uint32
	du        depthUniforms

	shadowMap *ShadowMap
	smoke     *SmokeRenderer
	flame     *FlameRenderer

	materials  []*scene.Material
	meshes     []*scene.Mesh
	clearColor core.Color
}

// NewRenderer initialises OpenGL and builds every program.
// Must be called after the GLFW window context is made current.
//
// Only a failed gl.Init is fatal. Shader, texture and framebuffer problems
// are logged and the renderer keeps going with whatever could be built.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Log.Info("OpenGL context",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	prog, err := newProgram(mainVertSrc, mainFragSrc)
	if err != nil {
		logger.Log.Error("Main shader failed", zap.Error(err))
	}
	depthProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		logger.Log.Error("Depth shader failed", zap.Error(err))
	}

	r := &Renderer{
		program:    prog,
		depthProg:  depthProg,
		clearColor: cfg.ClearColor,

		u: mainUniforms{
			view:       uniform(prog, "view"),
			projection: uniform(prog, "projection"),
			model:      uniform(prog, "model"),
			lightSpace: uniform(prog, "lightSpace"),

			sunDir:           uniform(prog, "sunDir"),
			sunColor:         uniform(prog, "sunColor"),
			sunIntensity:     uniform(prog, "sunIntensity"),
			ambientColor:     uniform(prog, "ambientColor"),
			globalBrightness: uniform(prog, "globalBrightness"),
			localBrightness:  uniform(prog, "localBrightness"),

			pointLightPos:   uniform(prog, "pointLightPos"),
			pointLightColor: uniform(prog, "pointLightColor"),
			pointLightAtten: uniform(prog, "pointLightAtten"),

			diffuseTex:    uniform(prog, "diffuseTex"),
			shadowMap:     uniform(prog, "shadowMap"),
			shadowEnabled: uniform(prog, "shadowEnabled"),
			renderPass:    uniform(prog, "renderPass"),
			debugView:     uniform(prog, "debugView"),
		},
		du: depthUniforms{
			lightSpace: uniform(depthProg, "lightSpace"),
			model:      uniform(depthProg, "model"),
		},
	}
	for i := 0; i < scene.MaxMaterials; i++ {
		r.u.materialKd[i] = uniform(prog, fmt.Sprintf("materialKd[%d]", i))
		r.u.materialHasTex[i] = uniform(prog, fmt.Sprintf("materialHasTex[%d]", i))
	}

	gl.UseProgram(prog)
	gl.Uniform1i(r.u.diffuseTex, diffuseUnit)
	gl.Uniform1i(r.u.shadowMap, shadowUnit)

	r.shadowMap, err = NewShadowMap(cfg.ShadowResolution)
	if err != nil {
		logger.Log.Error("Shadow map unavailable, rendering unshadowed", zap.Error(err))
	}

	r.smoke, err = newSmokeRenderer(cfg.SmokeTexture)
	if err != nil {
		logger.Log.Error("Smoke renderer degraded", zap.Error(err))
	}
	r.flame, err = newFlameRenderer(cfg.FlameTexture)
	if err != nil {
		logger.Log.Error("Flame renderer degraded", zap.Error(err))
	}

	return r, nil
}

// ── Materials ─────────────────────────────────────────────────────────────────

// SetMaterials uploads the material table: every texture goes to the GPU and
// the Kd / has-texture arrays are written once. Ids without a material are
// painted magenta. A texture that fails to upload falls back to its Kd.
func (r *Renderer) SetMaterials(reg *scene.MaterialRegistry) error {
	entries := reg.Entries()
	r.materials = make([]*scene.Material, scene.MaxMaterials)

	var errs []error
	gl.UseProgram(r.program)
	for i := 0; i < scene.MaxMaterials; i++ {
		var m *scene.Material
		if i < len(entries) {
			m = entries[i]
		}
		if m == nil {
			kd := core.ColorMagenta.Vec3()
			gl.Uniform3fv(r.u.materialKd[i], 1, &kd[0])
			gl.Uniform1i(r.u.materialHasTex[i], 0)
			continue
		}

		hasTex := m.HasTexture()
		if hasTex {
			if err := UploadTexture(m.Texture); err != nil {
				errs = append(errs, fmt.Errorf("material %d (%s): %w", i, m.Name, err))
				hasTex = false
			}
		}

		kd := m.Diffuse
		gl.Uniform3fv(r.u.materialKd[i], 1, &kd[0])
		gl.Uniform1i(r.u.materialHasTex[i], boolToInt32(hasTex))
		if hasTex {
			r.materials[i] = m
		}
		logger.Log.Debug("Material",
			zap.Int("id", i),
			zap.String("name", m.Name),
			zap.Bool("texture", hasTex))
	}
	return errors.Join(errs...)
}

// ── Shadow pass ───────────────────────────────────────────────────────────────

// BeginShadowPass clears the shadow map and selects the depth program.
// The shadow FBO must already be bound through BindTarget. Without a shadow
// map the pass draws nothing.
func (r *Renderer) BeginShadowPass(lightSpace mgl32.Mat4) {
	if r.shadowMap == nil {
		return
	}
	r.shadowMap.Begin()
	gl.UseProgram(r.depthProg)
	gl.UniformMatrix4fv(r.du.lightSpace, 1, false, &lightSpace[0])
}

// DrawShadowCaster draws every triangle of mesh into the depth map.
func (r *Renderer) DrawShadowCaster(mesh *scene.Mesh, model mgl32.Mat4) {
	if r.shadowMap == nil {
		return
	}
	gpu := r.upload(mesh)
	if gpu == nil || !gpu.HasIndices {
		return
	}
	gl.UniformMatrix4fv(r.du.model, 1, false, &model[0])
	gl.BindVertexArray(gpu.VAO)
	gpu.drawRange(0, int(gpu.IndexCount))
	gl.BindVertexArray(0)
}

// ── Main pass ─────────────────────────────────────────────────────────────────

// BeginMainPass clears the window and loads the per-frame lighting uniforms.
func (r *Renderer) BeginMainPass(v scene.View, l scene.Lighting) {
	gl.Viewport(0, 0, int32(v.Width), int32(v.Height))
	c := r.clearColor
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.u.view, 1, false, &v.View[0])
	gl.UniformMatrix4fv(r.u.projection, 1, false, &v.Projection[0])
	gl.UniformMatrix4fv(r.u.lightSpace, 1, false, &l.LightSpace[0])

	gl.Uniform3fv(r.u.sunDir, 1, &l.Sun.Direction[0])
	gl.Uniform3fv(r.u.sunColor, 1, &l.Sun.Color[0])
	gl.Uniform1f(r.u.sunIntensity, l.Sun.Intensity)
	gl.Uniform3fv(r.u.ambientColor, 1, &l.Ambient[0])
	gl.Uniform1f(r.u.globalBrightness, l.GlobalBrightness)
	gl.Uniform1f(r.u.localBrightness, l.LocalBrightness)

	atten := mgl32.Vec3{l.Point.Constant, l.Point.Linear, l.Point.Quadratic}
	gl.Uniform3fv(r.u.pointLightPos, 1, &l.Point.Position[0])
	gl.Uniform3fv(r.u.pointLightColor, 1, &l.Point.Color[0])
	gl.Uniform3fv(r.u.pointLightAtten, 1, &atten[0])

	gl.Uniform1i(r.u.debugView, int32(l.Debug))

	gl.Uniform1i(r.u.shadowEnabled, boolToInt32(r.shadowMap != nil))
	if r.shadowMap != nil {
		r.shadowMap.Bind(shadowUnit)
	}
	gl.ActiveTexture(gl.TEXTURE0 + diffuseUnit)
}

// SetMaterialPass selects which material ids survive the fragment stage:
// Glass keeps only glass, anything else keeps everything but glass.
func (r *Renderer) SetMaterialPass(p passes.Pass) {
	pass := int32(0)
	if p == passes.Glass {
		pass = 1
	}
	gl.UseProgram(r.program)
	gl.Uniform1i(r.u.renderPass, pass)
}

// DrawMesh draws mesh with the lighting program, one draw per material batch
// so each batch samples its own texture.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, model mgl32.Mat4) {
	gpu := r.upload(mesh)
	if gpu == nil || !gpu.HasIndices {
		return
	}

	gl.UniformMatrix4fv(r.u.model, 1, false, &model[0])
	gl.BindVertexArray(gpu.VAO)
	if len(gpu.Batches) == 0 {
		gpu.drawRange(0, int(gpu.IndexCount))
	}
	for _, b := range gpu.Batches {
		if tex := r.textureFor(b.MaterialID); tex != 0 {
			gl.BindTexture(gl.TEXTURE_2D, tex)
		}
		gpu.drawRange(b.First, b.Count)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) textureFor(id int) uint32 {
	if id < 0 || id >= len(r.materials) || r.materials[id] == nil {
		return 0
	}
	return r.materials[id].Texture.GLID
}

// ── Blended passes ────────────────────────────────────────────────────────────

// DrawSmoke draws every live particle and returns the number of draw calls.
func (r *Renderer) DrawSmoke(e *scene.SmokeEmitter, v scene.View) int {
	if r.smoke == nil || e == nil {
		return 0
	}
	return r.smoke.draw(e, v.Eye, v.ViewProjection())
}

func (r *Renderer) DrawFlame(b scene.FlameBillboard, v scene.View) {
	if r.flame == nil {
		return
	}
	r.flame.draw(b, v.ViewProjection())
}

// ── Resource management ───────────────────────────────────────────────────────

func (r *Renderer) upload(mesh *scene.Mesh) *GPUMesh {
	if mesh == nil {
		return nil
	}
	if _, ok := mesh.GPUData.(*GPUMesh); !ok && len(mesh.Vertices) > 0 {
		r.meshes = append(r.meshes, mesh)
	}
	return UploadMesh(mesh)
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for _, mesh := range r.meshes {
		ReleaseMesh(mesh)
	}
	r.meshes = nil
	for _, m := range r.materials {
		if m != nil {
			DeleteTexture(m.Texture)
		}
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.smoke != nil {
		r.smoke.destroy()
	}
	if r.flame != nil {
		r.flame.destroy()
	}
	gl.DeleteProgram(r.depthProg)
	gl.DeleteProgram(r.program)
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
