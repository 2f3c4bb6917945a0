package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/concrete/components"
	"github.com/pthm-cable/concrete/config"
)

// AnimationWorld is the explicit context of the per-frame cell update: interaction state,
// heartbeat clock, alive policy, the active-cell counter and the tunables. Nothing the
// update reads or writes lives outside it or the ECS world.
type AnimationWorld struct {
	Interaction *Interaction
	Heartbeat   *HeartbeatClock
	Policy      AlivePolicy
	Rng         *rand.Rand

	ActiveCount int
	MaxActive   int

	Step          float32 // alive clock advance per frame
	HalfCube      float32
	IdleSmoothing float32
	Explosion     config.ExplosionConfig
}

// NewAnimationWorld builds the animation context from configuration.
func NewAnimationWorld(cfg *config.Config, rng *rand.Rand) *AnimationWorld {
	return &AnimationWorld{
		Interaction:   NewInteraction(float32(cfg.Explosion.FocusSmoothing)),
		Heartbeat:     NewHeartbeatClock(cfg.Alive.Heartbeat, rng),
		Policy:        NewAlivePolicy(cfg.Alive.Policy, cfg.Alive),
		Rng:           rng,
		MaxActive:     cfg.Alive.MaxActive,
		Step:          cfg.Derived.FrameStep32,
		HalfCube:      cfg.Derived.HalfCube,
		IdleSmoothing: float32(cfg.Idle.Smoothing),
		Explosion:     cfg.Explosion,
	}
}

// FrameSummary counts which behavior governed the cells on one frame.
type FrameSummary struct {
	Repel     int
	Alive     int
	Idle      int
	Activated int
	Cancelled int
	Finished  int
}

// AnimationSystem moves every cell toward the target chosen by exactly one governor.
type AnimationSystem struct {
	filter *ecs.Filter3[components.Cell, components.Motion, components.Alive]
}

// NewAnimationSystem creates the system over the world's cells.
func NewAnimationSystem(world *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		filter: ecs.NewFilter3[components.Cell, components.Motion, components.Alive](world),
	}
}

// Update advances the heartbeat clock, smooths the focus point, and steps every cell.
//
// While hovered every cell is repelled from the focus point and any alive activation is
// abandoned. Otherwise alive cells follow the policy and idle cells drift back to rest,
// becoming eligible for activation on the next frame.
func (s *AnimationSystem) Update(w *AnimationWorld) FrameSummary {
	var sum FrameSummary

	w.Interaction.Smooth()
	w.Heartbeat.Advance(w.Step)
	hovered := w.Interaction.Hovered

	query := s.filter.Query()
	for query.Next() {
		cell, motion, alive := query.Get()

		var target mgl32.Vec3
		var smoothing float32

		switch {
		case hovered:
			if alive.State == components.StateAlive {
				alive.Reset()
				w.ActiveCount--
				sum.Cancelled++
			}
			target, smoothing = RepelTarget(cell.Rest, motion.Current, w.Interaction.Focus, w.Explosion, w.IdleSmoothing)
			motion.Governor = components.GovernorRepel
			sum.Repel++

		case alive.State == components.StateAlive:
			var done bool
			target, smoothing, done = w.Policy.Step(w, cell, alive)
			if done {
				alive.Reset()
				w.ActiveCount--
				sum.Finished++
				motion.Governor = components.GovernorIdle
				sum.Idle++
			} else {
				motion.Governor = components.GovernorAlive
				sum.Alive++
			}

		default:
			target, smoothing = cell.Rest, w.IdleSmoothing
			motion.Governor = components.GovernorIdle
			sum.Idle++
			if w.ActiveCount < w.MaxActive && w.Policy.Activate(w, cell, alive) {
				w.ActiveCount++
				sum.Activated++
			}
		}

		motion.Target = target
		motion.Current = lerpVec3(motion.Current, target, smoothing)
	}

	return sum
}

// SetPolicy swaps the alive policy. Every in-progress activation is abandoned.
func (s *AnimationSystem) SetPolicy(w *AnimationWorld, policy AlivePolicy) {
	query := s.filter.Query()
	for query.Next() {
		_, _, alive := query.Get()
		alive.Reset()
	}
	w.ActiveCount = 0
	w.Policy = policy
}

// ExplosionStrength returns the repel displacement for a cell at distance d from the
// focus point: max*(1-d/radius)^exponent inside the radius and zero at or beyond it.
func ExplosionStrength(d, radius, maxStrength, exponent float32) float32 {
	if radius <= 0 || d >= radius {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return maxStrength * float32(math.Pow(float64(1-d/radius), float64(exponent)))
}

// RepelTarget returns the hover target and smoothing for a cell. Cells inside the radius
// are pushed from their rest position away from the focus point; cells outside it return
// to rest. A cell exactly at the focus point has no direction and stays at rest.
func RepelTarget(rest, current, focus mgl32.Vec3, cfg config.ExplosionConfig, idleSmoothing float32) (mgl32.Vec3, float32) {
	offset := current.Sub(focus)
	d := offset.Len()
	radius := float32(cfg.Radius)
	if d >= radius {
		return rest, idleSmoothing
	}

	smoothing := float32(cfg.Smoothing)
	if d < 1e-6 {
		return rest, smoothing
	}

	strength := ExplosionStrength(d, radius, float32(cfg.MaxStrength), float32(cfg.Exponent))
	return rest.Add(offset.Mul(strength / d)), smoothing
}
