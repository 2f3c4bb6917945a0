package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRotationFreezesWhileHovered(t *testing.T) {
	r := GroupRotation{StepX: 0.001, StepY: 0.002}

	r.Step(false)
	r.Step(false)
	assert.InDelta(t, 0.002, r.X, 1e-7)
	assert.InDelta(t, 0.004, r.Y, 1e-7)

	r.Step(true)
	assert.InDelta(t, 0.002, r.X, 1e-7)

	// Resumes immediately.
	r.Step(false)
	assert.InDelta(t, 0.003, r.X, 1e-7)
}

func TestLightsStayInRoom(t *testing.T) {
	cfg := defaultConfig(t)
	// Exaggerate the motion so clamping is exercised.
	cfg.Lights.AmpMin, cfg.Lights.AmpMax = 20, 30
	lights := NewLights(cfg.Lights, rand.New(rand.NewSource(5)))
	require.Len(t, lights.Lights, cfg.Lights.Count)

	bound := float32(cfg.Lights.RoomBound)
	clamped := false
	for frame := 0; frame < 5000; frame++ {
		lights.Step(float32(frame) * 0.01)
		for _, l := range lights.Lights {
			for _, v := range l.Position {
				assert.LessOrEqual(t, v, bound)
				assert.GreaterOrEqual(t, v, -bound)
				if v == bound || v == -bound {
					clamped = true
				}
			}
			assert.InDelta(t, cfg.Lights.Intensity, l.Intensity, cfg.Lights.Intensity*cfg.Lights.Flicker*1.05+1e-6)
		}
	}
	assert.True(t, clamped)
}

func TestLightParametersInRange(t *testing.T) {
	cfg := defaultConfig(t)
	lights := NewLights(cfg.Lights, rand.New(rand.NewSource(9)))

	for i, l := range lights.Lights {
		assert.Equal(t, i%2 == 1, l.CosZ)
		require.Len(t, l.Freqs, cfg.Lights.Terms)
		for k := range l.Freqs {
			assert.GreaterOrEqual(t, l.Freqs[k], float32(cfg.Lights.FreqMin))
			assert.Less(t, l.Freqs[k], float32(cfg.Lights.FreqMax))
			assert.GreaterOrEqual(t, l.Amps[k], float32(cfg.Lights.AmpMin))
			assert.Less(t, l.Amps[k], float32(cfg.Lights.AmpMax))
		}
		for _, v := range l.Base {
			assert.LessOrEqual(t, v, float32(cfg.Lights.BaseRange/2))
			assert.GreaterOrEqual(t, v, float32(-cfg.Lights.BaseRange/2))
		}
	}
}

func TestRoomSwayBounded(t *testing.T) {
	cfg := defaultConfig(t)
	room := NewRoomSway(cfg.Room, rand.New(rand.NewSource(2)))

	for frame := 0; frame < 3000; frame++ {
		room.Step(float32(frame) * 0.01)
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, room.Rotation[axis], room.Amp[axis]+1e-6)
			assert.GreaterOrEqual(t, room.Rotation[axis], -room.Amp[axis]-1e-6)
		}
	}
	assert.GreaterOrEqual(t, room.Freq[0], float32(cfg.Room.FreqX.Min))
	assert.Less(t, room.Freq[0], float32(cfg.Room.FreqX.Max))
}

func TestChoreographyClock(t *testing.T) {
	cfg := defaultConfig(t)
	c := NewChoreography(cfg, rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		c.Step(i%2 == 0)
	}
	assert.InDelta(t, 1.0, c.Time, 1e-4)
	// Half the frames were hovered.
	assert.InDelta(t, 50*cfg.Rotation.YStep, c.Rotation.Y, 1e-5)
}
