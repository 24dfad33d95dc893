// Package passes describes the fixed GPU state each render pass needs and
// applies it through a Backend, writing only what changed.
package passes

import "fmt"

// Pass identifies one stage of a frame.
type Pass int

const (
	Shadow Pass = iota // depth-only render from the sun
	Opaque             // every room and prop surface except glass
	Glass              // window pane, both faces
	Smoke              // alpha-blended particle billboards
	Flame              // alpha-blended flame billboard
	Rest               // state left behind between frames
)

func (p Pass) String() string {
	switch p {
	case Shadow:
		return "shadow"
	case Opaque:
		return "opaque"
	case Glass:
		return "glass"
	case Smoke:
		return "smoke"
	case Flame:
		return "flame"
	case Rest:
		return "rest"
	}
	return fmt.Sprintf("pass(%d)", int(p))
}

// Target is the framebuffer a pass renders into.
type Target int

const (
	DefaultFramebuffer Target = iota
	ShadowFramebuffer
)

// Blend selects the blend equation; BlendAlpha is SRC_ALPHA, ONE_MINUS_SRC_ALPHA.
type Blend int

const (
	BlendOff Blend = iota
	BlendAlpha
)

// State is the full fixed-function tuple a pass depends on.
type State struct {
	Target     Target
	DepthTest  bool
	DepthWrite bool
	Cull       bool // back faces
	Blend      Blend
}

// Table is the state each pass runs with.
var Table = map[Pass]State{
	Shadow: {Target: ShadowFramebuffer, DepthTest: true, DepthWrite: true, Cull: false, Blend: BlendOff},
	Opaque: {Target: DefaultFramebuffer, DepthTest: true, DepthWrite: true, Cull: true, Blend: BlendOff},
	Glass:  {Target: DefaultFramebuffer, DepthTest: true, DepthWrite: true, Cull: false, Blend: BlendOff},
	Smoke:  {Target: DefaultFramebuffer, DepthTest: true, DepthWrite: false, Cull: false, Blend: BlendAlpha},
	Flame:  {Target: DefaultFramebuffer, DepthTest: true, DepthWrite: false, Cull: false, Blend: BlendAlpha},
	Rest:   {Target: DefaultFramebuffer, DepthTest: true, DepthWrite: true, Cull: true, Blend: BlendOff},
}

// Frame is the order passes run in every frame.
var Frame = []Pass{Shadow, Opaque, Glass, Smoke, Flame, Rest}

// Backend issues the actual state changes.
type Backend interface {
	BindTarget(Target)
	SetDepthTest(enabled bool)
	SetDepthWrite(enabled bool)
	SetCulling(enabled bool)
	SetBlend(Blend)
}

// Tracker remembers the state it last applied.
type Tracker struct {
	backend Backend
	current State
	known   bool
}

func NewTracker(b Backend) *Tracker {
	return &Tracker{backend: b}
}

// Invalidate forgets the tracked state; the next Apply writes every field.
// Call it when something outside the tracker may have touched GL state.
func (t *Tracker) Invalidate() {
	t.known = false
}

// Current returns the last applied state and whether one has been applied.
func (t *Tracker) Current() (State, bool) {
	return t.current, t.known
}

// Apply moves the backend into the state of pass p.
func (t *Tracker) Apply(p Pass) State {
	want, ok := Table[p]
	if !ok {
		panic(fmt.Sprintf("passes: no state for %v", p))
	}
	t.Set(want)
	return want
}

// Set moves the backend into an arbitrary state.
func (t *Tracker) Set(want State) {
	force := !t.known
	cur := t.current

	if force || cur.Target != want.Target {
		t.backend.BindTarget(want.Target)
	}
	if force || cur.DepthTest != want.DepthTest {
		t.backend.SetDepthTest(want.DepthTest)
	}
	if force || cur.DepthWrite != want.DepthWrite {
		t.backend.SetDepthWrite(want.DepthWrite)
	}
	if force || cur.Cull != want.Cull {
		t.backend.SetCulling(want.Cull)
	}
	if force || cur.Blend != want.Blend {
		t.backend.SetBlend(want.Blend)
	}

	t.current = want
	t.known = true
}
