package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/concrete/config"
)

// HeartbeatClock is the single process-wide clock behind the unified heartbeat.
// Elapsed always stays below Duration after Advance returns.
type HeartbeatClock struct {
	Elapsed  float32
	Duration float32
	Cycles   int

	cfg config.HeartbeatConfig
	rng *rand.Rand
}

// NewHeartbeatClock creates a clock with its first cycle duration drawn from cfg.
func NewHeartbeatClock(cfg config.HeartbeatConfig, rng *rand.Rand) *HeartbeatClock {
	c := &HeartbeatClock{cfg: cfg, rng: rng}
	c.Duration = c.nextDuration()
	return c
}

func (c *HeartbeatClock) nextDuration() float32 {
	return float32(c.cfg.CycleMin + (c.cfg.CycleMax-c.cfg.CycleMin)*c.rng.Float64())
}

// Advance moves the clock forward by step. When a cycle completes the overshoot carries
// into the next cycle and a new duration is drawn; it reports whether that happened.
func (c *HeartbeatClock) Advance(step float32) bool {
	c.Elapsed += step
	if c.Elapsed < c.Duration {
		return false
	}

	c.Elapsed -= c.Duration
	c.Duration = c.nextDuration()
	if c.Elapsed >= c.Duration {
		c.Elapsed = 0
	}
	c.Cycles++
	return true
}

// Phase returns the position in the current cycle in [0, 1).
func (c *HeartbeatClock) Phase() float32 {
	return c.Elapsed / c.Duration
}

// Strength returns the heartbeat strength at the current phase.
func (c *HeartbeatClock) Strength() float32 {
	return BeatStrength(c.Phase(), c.cfg)
}

// BeatStrength evaluates the two-pulse "lub-dub" envelope at a cycle phase.
// Each pulse is max(0, 1-|phase-center|/width)^falloff; the second is scaled down and the
// stronger of the two wins.
func BeatStrength(phase float32, cfg config.HeartbeatConfig) float32 {
	pulse := func(center float64) float64 {
		v := 1 - math.Abs(float64(phase)-center)/cfg.BeatWidth
		if v <= 0 {
			return 0
		}
		return math.Pow(v, cfg.BeatFalloff)
	}
	first := pulse(cfg.FirstBeat)
	second := pulse(cfg.SecondBeat) * cfg.SecondScale
	return float32(math.Max(first, second))
}
