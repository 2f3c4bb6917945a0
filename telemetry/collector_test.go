package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector("abc", 4, 0.01)

	assert.False(t, c.ShouldFlush(3))
	assert.True(t, c.ShouldFlush(4))

	samples := []FrameSample{
		{Hovered: true, HoverEntered: true, Alive: 0, Cancelled: 3},
		{Hovered: true, Alive: 0},
		{Alive: 2, Activated: 2},
		{Alive: 4, Activated: 2, Finished: 1, CycleWrapped: true},
	}
	for _, s := range samples {
		c.Observe(s)
	}

	s := c.Flush(4, WindowSnapshot{
		Policy:        "heartbeat",
		ZoomDistance:  12,
		Displacements: []float64{0, 0.5, 1},
	})

	assert.Equal(t, "abc", s.RunID)
	assert.Equal(t, 0, s.WindowStartFrame)
	assert.Equal(t, 4, s.WindowEndFrame)
	assert.InDelta(t, 0.04, s.TimeSec, 1e-9)
	assert.Equal(t, "heartbeat", s.Policy)
	assert.InDelta(t, 0.5, s.HoveredFrac, 1e-9)
	assert.Equal(t, 1, s.HoverEntries)
	assert.InDelta(t, 1.5, s.AliveMean, 1e-9)
	assert.Equal(t, 4, s.AliveMax)
	assert.Equal(t, 4, s.Activations)
	assert.Equal(t, 3, s.Cancellations)
	assert.Equal(t, 1, s.Finishes)
	assert.Equal(t, 1, s.HeartbeatCycles)
	assert.InDelta(t, 0.5, s.DisplacementMean, 1e-9)
	assert.Equal(t, 1.0, s.DisplacementMax)
	assert.Equal(t, 12.0, s.ZoomDistance)
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector("abc", 2, 0.01)
	c.Observe(FrameSample{Hovered: true, Alive: 5, Activated: 5})
	c.Observe(FrameSample{Hovered: true, Alive: 5})
	c.Flush(2, WindowSnapshot{})

	require.False(t, c.ShouldFlush(3))
	require.True(t, c.ShouldFlush(4))

	c.Observe(FrameSample{})
	s := c.Flush(4, WindowSnapshot{})

	assert.Equal(t, 2, s.WindowStartFrame)
	assert.Zero(t, s.HoveredFrac)
	assert.Zero(t, s.AliveMax)
	assert.Zero(t, s.Activations)
	assert.Equal(t, "abc", s.RunID)
	assert.Equal(t, 2, c.FramesPerWindow())
}

func TestCollectorEmptyWindow(t *testing.T) {
	c := NewCollector("", 0, 0.01)
	assert.Equal(t, 1, c.FramesPerWindow())

	s := c.Flush(1, WindowSnapshot{})
	assert.Zero(t, s.HoveredFrac)
	assert.Zero(t, s.AliveMean)
}
