package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"victorian-room/core"
)

// Model is one loaded model file: a single mesh plus the materials its
// material ids refer to, starting at MaterialOffset.
type Model struct {
	Name           string
	Mesh           *Mesh
	Materials      []*Material
	MaterialOffset int
}

// LoadModel picks a loader by file extension.
func LoadModel(path string, materialOffset int) (*Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path, materialOffset)
	case ".gltf", ".glb":
		return LoadGLTF(path, materialOffset)
	}
	return nil, fmt.Errorf("unsupported model format %q", path)
}

// PropSpec places a model file in the room.
type PropSpec struct {
	Name      string
	Path      string
	Position  mgl32.Vec3
	Scale     float32
	RotationY float32 // degrees
}

// Prop is a placed model.
type Prop struct {
	Name      string
	Model     *Model
	Transform core.Transform
}

// ModelMatrix returns the prop's world transform.
func (p *Prop) ModelMatrix() mgl32.Mat4 {
	return p.Transform.GetMatrix()
}

// Bounds returns the prop's world-space bounding box.
func (p *Prop) Bounds() AABB {
	return p.Model.Mesh.LocalAABB.Transform(p.ModelMatrix())
}

// LoadProps loads every spec in order, registering its materials so the
// offsets keep running from one file to the next. A file that fails to load
// is skipped; its error is returned alongside the props that did load.
// resolve maps a configured path to a file on disk.
func LoadProps(specs []PropSpec, reg *MaterialRegistry, resolve func(string) string) ([]*Prop, []error) {
	var props []*Prop
	var errs []error
	for _, s := range specs {
		path := s.Path
		if resolve != nil {
			path = resolve(path)
		}
		model, err := LoadModel(path, reg.Next())
		if err != nil {
			errs = append(errs, fmt.Errorf("prop %s: %w", s.Name, err))
			continue
		}
		if _, err := reg.Append(model.Materials); err != nil {
			errs = append(errs, fmt.Errorf("prop %s: %w", s.Name, err))
		}

		t := core.NewTransform()
		t.Position = s.Position
		t.Scale = mgl32.Vec3{s.Scale, s.Scale, s.Scale}
		t.Rotation = mgl32.QuatRotate(mgl32.DegToRad(s.RotationY), mgl32.Vec3{0, 1, 0})
		props = append(props, &Prop{Name: s.Name, Model: model, Transform: t})
	}
	return props, errs
}
