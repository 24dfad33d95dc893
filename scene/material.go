package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxMaterials is the size of the material table the lighting shader indexes.
const MaxMaterials = 32

// DefaultDiffuse is the Kd used when a material does not declare one.
var DefaultDiffuse = mgl32.Vec3{0.8, 0.8, 0.8}

// Material describes the diffuse appearance of one material id.
type Material struct {
	Name    string
	Diffuse mgl32.Vec3
	// Texture is nil when the material has none or it failed to load.
	Texture *Texture
}

func (m *Material) HasTexture() bool { return m != nil && m.Texture != nil }

// DefaultMaterial returns a plain grey untextured material.
func DefaultMaterial() *Material {
	return &Material{Name: "Default", Diffuse: DefaultDiffuse}
}

// NewTexturedMaterial returns a grey material sampling tex.
func NewTexturedMaterial(name string, tex *Texture) *Material {
	return &Material{Name: name, Diffuse: DefaultDiffuse, Texture: tex}
}

// MaterialRegistry maps material ids to materials. The room shell occupies
// fixed ids; model files are appended after them with a running offset.
type MaterialRegistry struct {
	entries []*Material
	next    int
}

func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{next: FirstPropMaterial}
}

// Set stores m at a fixed id.
func (r *MaterialRegistry) Set(id int, m *Material) error {
	if id < 0 || id >= MaxMaterials {
		return fmt.Errorf("material id %d outside [0,%d)", id, MaxMaterials)
	}
	r.grow(id + 1)
	r.entries[id] = m
	if id >= r.next {
		r.next = id + 1
	}
	return nil
}

// Next returns the id the next appended material will get.
func (r *MaterialRegistry) Next() int { return r.next }

// Append stores materials at consecutive ids starting at Next and returns
// the first id. Ids past MaxMaterials are still reserved so geometry keeps
// consistent ids, but they are not stored and render as missing; the
// returned error reports how many were dropped.
func (r *MaterialRegistry) Append(materials []*Material) (int, error) {
	offset := r.next
	dropped := 0
	for i, m := range materials {
		id := offset + i
		if id >= MaxMaterials {
			dropped++
			continue
		}
		r.grow(id + 1)
		r.entries[id] = m
	}
	r.next = offset + len(materials)
	if dropped > 0 {
		return offset, fmt.Errorf("material table full: %d of %d materials dropped", dropped, len(materials))
	}
	return offset, nil
}

// Lookup returns the material at id, if any.
func (r *MaterialRegistry) Lookup(id int) (*Material, bool) {
	if id < 0 || id >= len(r.entries) || r.entries[id] == nil {
		return nil, false
	}
	return r.entries[id], true
}

// Len returns one past the highest stored id.
func (r *MaterialRegistry) Len() int { return len(r.entries) }

// Entries returns the table indexed by id; missing ids are nil.
func (r *MaterialRegistry) Entries() []*Material { return r.entries }

func (r *MaterialRegistry) grow(n int) {
	for len(r.entries) < n {
		r.entries = append(r.entries, nil)
	}
}
