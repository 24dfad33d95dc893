package scene

import (
	"errors"
	stdmath "math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SmokeParticle is one live puff. Life is normalised: 1 at birth, dead at <= 0.
type SmokeParticle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Life     float32
	Age      float32 // seconds since emission
	Size     float32
	Rotation float32 // in-plane billboard angle, radians
	Swirl    float32 // phase of the spiral, fixed at emission
}

// SmokeSettings configures a SmokeEmitter.
type SmokeSettings struct {
	Origin   mgl32.Vec3
	Capacity int     // 0 is a valid, inert emitter
	Interval float32 // seconds between emissions, > 0
	Lifetime float32 // seconds a particle takes to go from life 1 to 0
	// LifeJitter randomises the initial life within [1-LifeJitter, 1].
	// Life is normalised to [0,1], so the jitter only ever shortens a
	// particle; none outlives Lifetime.
	LifeJitter float32
	Seed       int64 // 0 picks a time-based seed
}

// DefaultSmokeSettings returns the cigar smoke used by the room.
func DefaultSmokeSettings() SmokeSettings {
	return SmokeSettings{
		Origin:     mgl32.Vec3{0.025, 1.06, -2.0},
		Capacity:   150,
		Interval:   0.03,
		Lifetime:   2.5,
		LifeJitter: 0.2,
	}
}

// Spawn parameters are scaled by a factor drawn from [0.8, 1.2].
const (
	smokeJitterMin = 0.8
	smokeJitterMax = 1.2

	smokeSpiralGrowth = 0.25 // spiral radius per second of age
	smokeSpiralRate   = 1.5  // angular rate of the x component; z runs at 0.8x
	smokeRise         = 0.08 // initial vertical speed
	smokeRiseDecay    = 0.01 // vertical speed lost per second of age
	smokeStepScale    = 5.0  // velocity to position integration scale
	smokeOpacity      = 0.16 // alpha at life 1

	// Float32 frame deltas rarely sum to the interval exactly; an emission
	// is due once the timer is within this fraction of it.
	smokeTimerTolerance = 1e-4
)

var (
	ErrSmokeInterval = errors.New("smoke: emission interval must be positive")
	ErrSmokeLifetime = errors.New("smoke: lifetime must be positive")
	ErrSmokeCapacity = errors.New("smoke: capacity must not be negative")
)

// SmokeEmitter owns a bounded pool of smoke particles stored contiguously.
type SmokeEmitter struct {
	Settings  SmokeSettings
	Particles []SmokeParticle

	timer float64
	rng   *rand.Rand
}

func NewSmokeEmitter(s SmokeSettings) (*SmokeEmitter, error) {
	if s.Interval <= 0 {
		return nil, ErrSmokeInterval
	}
	if s.Lifetime <= 0 {
		return nil, ErrSmokeLifetime
	}
	if s.Capacity < 0 {
		return nil, ErrSmokeCapacity
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SmokeEmitter{
		Settings:  s,
		Particles: make([]SmokeParticle, 0, s.Capacity),
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// Count returns the number of live particles.
func (e *SmokeEmitter) Count() int { return len(e.Particles) }

// Emit appends one particle at the origin. At capacity it does nothing.
func (e *SmokeEmitter) Emit() {
	if len(e.Particles) >= e.Settings.Capacity {
		return
	}
	life := float32(1)
	if e.Settings.LifeJitter > 0 {
		life -= e.rng.Float32() * e.Settings.LifeJitter
	}
	e.Particles = append(e.Particles, SmokeParticle{
		Position: e.Settings.Origin.Add(mgl32.Vec3{e.jitter() * 0.005, 0, e.jitter() * 0.005}),
		Velocity: mgl32.Vec3{e.jitter() * 0.002, 5e-8 + e.jitter()*1e-8, e.jitter() * 0.002},
		Life:     life,
		Size:     0.015 + e.jitter()*0.005,
		Rotation: e.jitter() * stdmath.Pi,
		Swirl:    e.jitter() * 2 * stdmath.Pi,
	})
}

// Update advances the emitter by dt seconds: pending emissions first, then
// every particle is aged, moved and dropped once its life runs out.
func (e *SmokeEmitter) Update(dt float32) {
	if dt <= 0 {
		return
	}

	interval := float64(e.Settings.Interval)
	due := interval * (1 - smokeTimerTolerance)

	e.timer += float64(dt)
	for e.timer >= due {
		if len(e.Particles) >= e.Settings.Capacity {
			// saturated: the remaining emissions would all be dropped
			e.timer = stdmath.Mod(e.timer, interval)
			if e.timer >= due {
				e.timer -= interval
			}
			break
		}
		e.Emit()
		e.timer -= interval
	}

	write := 0
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Age += dt
		p.Life -= dt / e.Settings.Lifetime
		if p.Life <= 0 {
			continue
		}

		radius := p.Age * smokeSpiralGrowth
		offX := sin32(p.Age*smokeSpiralRate+p.Swirl) * radius
		offZ := cos32(p.Age*smokeSpiralRate*0.8+p.Swirl) * radius

		p.Velocity = mgl32.Vec3{
			offX * dt * 0.5,
			smokeRise - p.Age*smokeRiseDecay,
			offZ * dt * 0.5,
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt * smokeStepScale))
		p.Size += dt * 0.25
		p.Rotation += dt * 0.2

		e.Particles[write] = *p
		write++
	}
	e.Particles = e.Particles[:write]
}

// Billboard is one camera-facing quad. Right and Up are already rotated and
// scaled so the corners are Center ± Right/2 ± Up/2.
type Billboard struct {
	Center mgl32.Vec3
	Right  mgl32.Vec3
	Up     mgl32.Vec3
	Alpha  float32
}

// BillboardDrawer receives one call per billboard after a single Begin.
type BillboardDrawer interface {
	BeginBillboards()
	DrawBillboard(b Billboard)
}

// Render hands every live particle to d, oriented toward cameraPos.
// Nothing is called when there are no particles.
func (e *SmokeEmitter) Render(d BillboardDrawer, cameraPos mgl32.Vec3) int {
	if len(e.Particles) == 0 {
		return 0
	}
	d.BeginBillboards()
	for i := range e.Particles {
		p := &e.Particles[i]
		right, up := SmokeBasis(cameraPos, p.Position, p.Rotation)
		d.DrawBillboard(Billboard{
			Center: p.Position,
			Right:  right.Mul(p.Size),
			Up:     up.Mul(p.Size),
			Alpha:  SmokeAlpha(p.Life),
		})
	}
	return len(e.Particles)
}

// SmokeBasis returns the unit right/up axes of a billboard at pos facing
// cameraPos, rotated in-plane by angle.
func SmokeBasis(cameraPos, pos mgl32.Vec3, angle float32) (mgl32.Vec3, mgl32.Vec3) {
	forward := cameraPos.Sub(pos)
	if forward.Len() < 1e-6 {
		forward = mgl32.Vec3{0, 0, 1}
	}
	forward = forward.Normalize()

	right := mgl32.Vec3{0, 1, 0}.Cross(forward)
	if right.Len() < 1e-6 {
		// camera straight above or below
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up := forward.Cross(right)

	c, s := cos32(angle), sin32(angle)
	return right.Mul(c).Sub(up.Mul(s)), right.Mul(s).Add(up.Mul(c))
}

// SmokeAlpha fades with the square of remaining life.
func SmokeAlpha(life float32) float32 {
	l := mgl32.Clamp(life, 0, 1)
	return l * l * smokeOpacity
}

func (e *SmokeEmitter) jitter() float32 {
	return smokeJitterMin + e.rng.Float32()*(smokeJitterMax-smokeJitterMin)
}

func sin32(x float32) float32 { return float32(stdmath.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(stdmath.Cos(float64(x))) }
