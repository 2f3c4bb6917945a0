package systems

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/concrete/components"
	"github.com/pthm-cable/concrete/config"
)

func TestEscapeCurveBreakpoints(t *testing.T) {
	_, phase := EscapeCurve(0.19, 1, 0.2)
	assert.Equal(t, PhasePushOut, phase)
	_, phase = EscapeCurve(0.2, 1, 0.2)
	assert.Equal(t, PhaseStruggle, phase)
	_, phase = EscapeCurve(0.69, 1, 0.2)
	assert.Equal(t, PhaseStruggle, phase)
	_, phase = EscapeCurve(0.7, 1, 0.2)
	assert.Equal(t, PhaseRelease, phase)

	v, _ := EscapeCurve(0.1, 1.2, 0.2)
	assert.InDelta(t, 0.6, v, 1e-6)
	v, _ = EscapeCurve(0.7, 1, 0.2)
	assert.InDelta(t, 1.0, v, 1e-6)
	v, _ = EscapeCurve(1.0, 1, 0.2)
	assert.InDelta(t, 0.0, v, 1e-6)
}

func TestEscapeLifecycle(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Alive.Escape.Chance = 1
	w := NewAnimationWorld(cfg, rand.New(rand.NewSource(1)))
	policy := NewAlivePolicy(config.PolicyEscape, cfg.Alive)
	require.Equal(t, config.PolicyEscape, policy.Name())

	cell := components.Cell{
		Rest:       mgl32.Vec3{5.25, 0.75, 0.75},
		IsFace:     true,
		FaceNormal: mgl32.Vec3{1, 0, 0},
	}
	var alive components.Alive
	require.True(t, policy.Activate(w, &cell, &alive))
	assert.Equal(t, components.StateAlive, alive.State)
	assert.GreaterOrEqual(t, alive.Duration, float32(1.2))
	assert.Less(t, alive.Duration, float32(1.7))
	alive.Duration = 1.5

	var phases []EscapePhase
	for frame := 0; frame < 200; frame++ {
		target, _, done := policy.Step(w, &cell, &alive)
		if done {
			assert.GreaterOrEqual(t, alive.Elapsed, float32(1.5))
			assert.Equal(t, cell.Rest, target)
			break
		}
		require.Less(t, alive.Elapsed, float32(1.5))

		_, phase := EscapeCurve(alive.Elapsed/alive.Duration, alive.EscapeSpeed, alive.Struggle)
		if len(phases) == 0 || phases[len(phases)-1] != phase {
			phases = append(phases, phase)
		}

		// Displacement is along the face normal only.
		d := target.Sub(cell.Rest)
		assert.InDelta(t, 0, d[1], 1e-6)
		assert.InDelta(t, 0, d[2], 1e-6)

		switch {
		case alive.Elapsed < 0.29:
			assert.Equal(t, PhasePushOut, phase)
		case alive.Elapsed > 0.31 && alive.Elapsed < 1.04:
			assert.Equal(t, PhaseStruggle, phase)
		case alive.Elapsed > 1.06:
			assert.Equal(t, PhaseRelease, phase)
		}
	}

	assert.Equal(t, []EscapePhase{PhasePushOut, PhaseStruggle, PhaseRelease}, phases)
}

func TestEscapeOnlyFaceCells(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Alive.Escape.Chance = 1
	w := NewAnimationWorld(cfg, rand.New(rand.NewSource(1)))
	policy := NewAlivePolicy(config.PolicyEscape, cfg.Alive)

	interior := components.Cell{Rest: mgl32.Vec3{0.75, 0.75, 0.75}}
	var alive components.Alive
	assert.False(t, policy.Activate(w, &interior, &alive))
	assert.Equal(t, components.StateIdle, alive.State)
}

func TestEscapeChanceZeroNeverActivates(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Alive.Escape.Chance = 0
	w := NewAnimationWorld(cfg, rand.New(rand.NewSource(1)))
	policy := NewAlivePolicy(config.PolicyEscape, cfg.Alive)

	cell := components.Cell{IsFace: true, FaceNormal: mgl32.Vec3{0, 1, 0}}
	for i := 0; i < 1000; i++ {
		var alive components.Alive
		assert.False(t, policy.Activate(w, &cell, &alive))
	}
}

func TestHeartbeatTarget(t *testing.T) {
	hb := defaultConfig(t).Alive.Heartbeat
	rest := mgl32.Vec3{5.25, 5.25, 5.25}

	// No pulse, no movement.
	assert.Equal(t, rest, HeartbeatTarget(rest, 0.5, 0, 6, hb))

	got := HeartbeatTarget(rest, 0, 1, 6, hb)
	move := float32(0.4 * 1 * (rest.Len() / 6) * 0.7)
	assert.InDelta(t, rest[0]*(1+move), got[0], 1e-5)

	// The target stays on the ray from the center through the rest position.
	assert.InDelta(t, 1, got.Normalize().Dot(rest.Normalize()), 1e-6)

	// Larger seed, larger amplitude.
	far := HeartbeatTarget(rest, 1, 1, 6, hb)
	assert.Greater(t, far.Len(), got.Len())
}

func TestHeartbeatPolicySmoothing(t *testing.T) {
	cfg := defaultConfig(t)
	w := NewAnimationWorld(cfg, rand.New(rand.NewSource(1)))
	policy := NewAlivePolicy(config.PolicyHeartbeat, cfg.Alive)
	cell := components.Cell{Rest: mgl32.Vec3{3, 0, 0}, Seed: mgl32.Vec3{0, 1, -1}}
	var alive components.Alive
	require.True(t, policy.Activate(w, &cell, &alive))

	// Phase 0: no pulse, slow return smoothing 0.15 - 0.05.
	_, smoothing, done := policy.Step(w, &cell, &alive)
	assert.False(t, done)
	assert.InDelta(t, 0.10, smoothing, 1e-6)

	// On the first beat: fast outward smoothing 0.5 + 0.2.
	w.Heartbeat.Elapsed = 0.2 * w.Heartbeat.Duration
	_, smoothing, _ = policy.Step(w, &cell, &alive)
	assert.InDelta(t, 0.70, smoothing, 1e-6)
}
