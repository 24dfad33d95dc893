package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder mirrors the GL state the calls would produce.
type recorder struct {
	state State
	calls int
}

func (r *recorder) BindTarget(t Target) { r.state.Target = t; r.calls++ }
func (r *recorder) SetDepthTest(on bool) { r.state.DepthTest = on; r.calls++ }
func (r *recorder) SetDepthWrite(on bool) { r.state.DepthWrite = on; r.calls++ }
func (r *recorder) SetCulling(on bool) { r.state.Cull = on; r.calls++ }
func (r *recorder) SetBlend(b Blend) { r.state.Blend = b; r.calls++ }

func runFrame(t *testing.T, tr *Tracker, rec *recorder) {
	for _, p := range Frame {
		tr.Apply(p)
		require.Equal(t, Table[p], rec.state, "after %v", p)
	}
}

func TestFirstApplyWritesEveryField(t *testing.T) {
	rec := &recorder{state: State{Target: ShadowFramebuffer, Blend: BlendAlpha}}
	tr := NewTracker(rec)

	tr.Apply(Opaque)
	assert.Equal(t, 5, rec.calls)
	assert.Equal(t, Table[Opaque], rec.state)
}

func TestApplySkipsUnchangedFields(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)
	tr.Apply(Smoke)
	rec.calls = 0

	tr.Apply(Flame)
	assert.Zero(t, rec.calls, "smoke and flame share state")

	tr.Apply(Rest)
	assert.Equal(t, 3, rec.calls, "depth write, cull, blend")
}

func TestFrameStateIsIdempotentAcrossFrames(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)

	runFrame(t, tr, rec)
	endOfFirst := rec.state
	runFrame(t, tr, rec)

	assert.Equal(t, endOfFirst, rec.state)
	assert.Equal(t, Table[Rest], rec.state)
}

func TestEachPassSetsItsTupleFromAnyPreviousState(t *testing.T) {
	for _, from := range Frame {
		for _, to := range Frame {
			rec := &recorder{}
			tr := NewTracker(rec)
			tr.Apply(from)
			tr.Apply(to)
			assert.Equal(t, Table[to], rec.state, "%v -> %v", from, to)
		}
	}
}

func TestInvalidateForcesFullWrite(t *testing.T) {
	rec := &recorder{}
	tr := NewTracker(rec)
	tr.Apply(Rest)

	// something outside the tracker flips blending
	rec.state.Blend = BlendAlpha
	tr.Invalidate()
	rec.calls = 0
	tr.Apply(Rest)

	assert.Equal(t, 5, rec.calls)
	assert.Equal(t, Table[Rest], rec.state)
}

func TestTableMatchesPassRequirements(t *testing.T) {
	assert.Equal(t, ShadowFramebuffer, Table[Shadow].Target)
	assert.False(t, Table[Shadow].Cull)
	assert.True(t, Table[Opaque].Cull)
	assert.False(t, Table[Glass].Cull)
	for _, p := range []Pass{Smoke, Flame} {
		assert.Equal(t, BlendAlpha, Table[p].Blend, p.String())
		assert.False(t, Table[p].DepthWrite, p.String())
		assert.True(t, Table[p].DepthTest, p.String())
	}
	assert.Equal(t, Rest, Frame[len(Frame)-1])
}
