package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/components"
	"github.com/pthm-cable/concrete/config"
)

// AlivePolicy drives the ambient animation of cells while the grid is not hovered.
// The animation system owns the active-cell counter; policies only decide and animate.
type AlivePolicy interface {
	Name() string
	// Activate decides whether an idle cell becomes alive this frame and, if so, rolls
	// its per-activation parameters into alive.
	Activate(w *AnimationWorld, cell *components.Cell, alive *components.Alive) bool
	// Step advances an alive cell by one frame and returns its target position and
	// smoothing factor. done reports that the cell returns to Idle.
	Step(w *AnimationWorld, cell *components.Cell, alive *components.Alive) (target mgl32.Vec3, smoothing float32, done bool)
}

// NewAlivePolicy returns the policy registered under name.
func NewAlivePolicy(name string, cfg config.AliveConfig) AlivePolicy {
	if name == config.PolicyEscape {
		return &EscapePolicy{cfg: cfg.Escape}
	}
	return &HeartbeatPolicy{cfg: cfg.Heartbeat}
}

// HeartbeatPolicy keeps every cell alive and pulses it outward from the grid center on the
// shared heartbeat clock. Per-cell seeds desynchronize the amplitude and smoothing.
type HeartbeatPolicy struct {
	cfg config.HeartbeatConfig
}

// Name implements AlivePolicy.
func (p *HeartbeatPolicy) Name() string { return config.PolicyHeartbeat }

// Activate implements AlivePolicy. Every idle cell is eligible.
func (p *HeartbeatPolicy) Activate(_ *AnimationWorld, _ *components.Cell, alive *components.Alive) bool {
	alive.State = components.StateAlive
	alive.Elapsed = 0
	return true
}

// Step implements AlivePolicy.
func (p *HeartbeatPolicy) Step(w *AnimationWorld, cell *components.Cell, alive *components.Alive) (mgl32.Vec3, float32, bool) {
	alive.Elapsed += w.Step

	strength := w.Heartbeat.Strength()
	target := HeartbeatTarget(cell.Rest, cell.Seed[0], strength, w.HalfCube, p.cfg)

	var smoothing float32
	if float64(strength) > p.cfg.OutThreshold {
		smoothing = float32(p.cfg.OutSmoothing + float64(cell.Seed[1])*p.cfg.OutJitter)
	} else {
		smoothing = float32(p.cfg.ReturnSmoothing + float64(cell.Seed[2])*p.cfg.ReturnJitter)
	}

	if alive.Elapsed >= w.Heartbeat.Duration {
		alive.Elapsed = 0
	}
	return target, smoothing, false
}

// HeartbeatTarget scales a rest position away from the grid center. Outer cells move
// further than inner ones; seedX in [-1, 1] varies the amplitude per cell.
func HeartbeatTarget(rest mgl32.Vec3, seedX, strength, halfCube float32, cfg config.HeartbeatConfig) mgl32.Vec3 {
	if halfCube <= 0 {
		return rest
	}
	normalized := rest.Len() / halfCube
	random := float32(cfg.RandomBase + float64(seedX)*cfg.RandomSpread)
	move := float32(cfg.Amplitude) * strength * normalized * random
	return rest.Mul(1 + move)
}

// EscapePhase names the segments of an escape attempt.
type EscapePhase uint8

const (
	PhasePushOut EscapePhase = iota
	PhaseStruggle
	PhaseRelease
)

// String returns the display name for an EscapePhase.
func (p EscapePhase) String() string {
	switch p {
	case PhasePushOut:
		return "push-out"
	case PhaseStruggle:
		return "struggle"
	default:
		return "release"
	}
}

// Escape curve breakpoints in normalized progress.
const (
	escapePushEnd     = 0.2
	escapeStruggleEnd = 0.7
)

// EscapeCurve returns the displacement multiplier at progress p in [0, 1] and the phase
// it falls in. Push-out ramps linearly, struggle oscillates around full extension, and
// release eases back to zero.
func EscapeCurve(p, speed, struggle float32) (float32, EscapePhase) {
	switch {
	case p < escapePushEnd:
		return p * 5 * speed, PhasePushOut
	case p < escapeStruggleEnd:
		return 1 + float32(math.Sin(float64(p-0.15)*20))*struggle, PhaseStruggle
	default:
		r := (p - escapeStruggleEnd) / (1 - escapeStruggleEnd)
		return 1 - r*r, PhaseRelease
	}
}

// EscapePolicy lets face cells occasionally try to push out of the cube along their face
// normal, struggle, and fall back.
type EscapePolicy struct {
	cfg config.EscapeConfig
}

// Name implements AlivePolicy.
func (p *EscapePolicy) Name() string { return config.PolicyEscape }

// Activate implements AlivePolicy. Only face cells are eligible, each with a small
// independent chance per frame.
func (p *EscapePolicy) Activate(w *AnimationWorld, cell *components.Cell, alive *components.Alive) bool {
	if !cell.IsFace {
		return false
	}
	if w.Rng.Float64() >= p.cfg.Chance {
		return false
	}

	roll := func(lo, hi float64) float32 {
		return float32(lo + (hi-lo)*w.Rng.Float64())
	}
	*alive = components.Alive{
		State:          components.StateAlive,
		Duration:       roll(p.cfg.DurationMin, p.cfg.DurationMax),
		EscapeSpeed:    roll(p.cfg.SpeedMin, p.cfg.SpeedMax),
		Struggle:       roll(p.cfg.StruggleMin, p.cfg.StruggleMax),
		EscapeDistance: roll(p.cfg.DistanceMin, p.cfg.DistanceMax),
	}
	return true
}

// Step implements AlivePolicy.
func (p *EscapePolicy) Step(w *AnimationWorld, cell *components.Cell, alive *components.Alive) (mgl32.Vec3, float32, bool) {
	alive.Elapsed += w.Step
	if alive.Elapsed >= alive.Duration {
		return cell.Rest, w.IdleSmoothing, true
	}

	curve, _ := EscapeCurve(alive.Elapsed/alive.Duration, alive.EscapeSpeed, alive.Struggle)
	target := cell.Rest.Add(cell.FaceNormal.Mul(curve * alive.EscapeDistance))
	return target, float32(p.cfg.Smoothing), false
}
