package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/concrete/config"
)

// GroupRotation is the slow whole-grid spin. It freezes while the grid is hovered and
// resumes instantly on exit.
type GroupRotation struct {
	X, Y         float32
	StepX, StepY float32
}

// Step advances the rotation by one frame unless hovered.
func (g *GroupRotation) Step(hovered bool) {
	if hovered {
		return
	}
	g.X += g.StepX
	g.Y += g.StepY
}

// Light is one moving point light. Its motion parameters are fixed at creation.
type Light struct {
	Base      mgl32.Vec3
	Freqs     []float32
	Amps      []float32
	Phases    []float32
	CosZ      bool // z term uses cos instead of sin
	Position  mgl32.Vec3
	Intensity float32
}

// Lights animates the moving point lights along multi-term sin/cos paths.
type Lights struct {
	Lights []Light

	cfg     config.LightsConfig
	flicker opensimplex.Noise
}

// NewLights draws every light's base position and motion terms from rng.
func NewLights(cfg config.LightsConfig, rng *rand.Rand) *Lights {
	l := &Lights{
		Lights:  make([]Light, cfg.Count),
		cfg:     cfg,
		flicker: opensimplex.New(rng.Int63()),
	}
	for i := range l.Lights {
		light := Light{
			Base: mgl32.Vec3{
				float32((rng.Float64() - 0.5) * cfg.BaseRange),
				float32((rng.Float64() - 0.5) * cfg.BaseRange),
				float32((rng.Float64() - 0.5) * cfg.BaseRange),
			},
			Freqs:     make([]float32, cfg.Terms),
			Amps:      make([]float32, cfg.Terms),
			Phases:    make([]float32, cfg.Terms),
			CosZ:      i%2 == 1,
			Intensity: float32(cfg.Intensity),
		}
		for k := 0; k < cfg.Terms; k++ {
			light.Freqs[k] = float32(cfg.FreqMin + (cfg.FreqMax-cfg.FreqMin)*rng.Float64())
			light.Amps[k] = float32(cfg.AmpMin + (cfg.AmpMax-cfg.AmpMin)*rng.Float64())
			light.Phases[k] = float32(rng.Float64() * 2 * math.Pi)
		}
		light.Position = light.Base
		l.Lights[i] = light
	}
	return l
}

// Step moves every light to its position at time t, clamped to the room bounds, and
// applies the intensity flicker.
func (l *Lights) Step(t float32) {
	bound := float32(l.cfg.RoomBound)
	tt := float64(t)

	for i := range l.Lights {
		light := &l.Lights[i]
		p := light.Base
		for k := range light.Freqs {
			f := float64(light.Freqs[k])
			a := float64(light.Amps[k])
			ph := float64(light.Phases[k])

			p[0] += float32(math.Sin(tt*f+ph) * a)
			p[1] += float32(math.Cos(tt*f+ph) * a)
			zArg := tt*f + ph*l.cfg.ZPhaseScale
			if light.CosZ {
				p[2] += float32(math.Cos(zArg) * a * l.cfg.ZScale)
			} else {
				p[2] += float32(math.Sin(zArg) * a * l.cfg.ZScale)
			}
		}
		for axis := 0; axis < 3; axis++ {
			p[axis] = mgl32.Clamp(p[axis], -bound, bound)
		}
		light.Position = p

		flick := l.flicker.Eval2(tt*l.cfg.FlickerSpeed, float64(i)*17.3)
		light.Intensity = float32(l.cfg.Intensity * (1 + l.cfg.Flicker*flick))
	}
}

// RoomSway rocks the surrounding room box by a sine per axis.
type RoomSway struct {
	Freq     mgl32.Vec3
	Amp      mgl32.Vec3
	Phase    mgl32.Vec3
	Rotation mgl32.Vec3 // radians
}

// NewRoomSway draws the per-axis sway parameters from rng.
func NewRoomSway(cfg config.RoomConfig, rng *rand.Rand) *RoomSway {
	draw := func(r config.FloatRange) float32 { return float32(r.Lerp(rng.Float64())) }
	return &RoomSway{
		Freq:  mgl32.Vec3{draw(cfg.FreqX), draw(cfg.FreqY), draw(cfg.FreqZ)},
		Amp:   mgl32.Vec3{draw(cfg.AmpX), draw(cfg.AmpY), draw(cfg.AmpZ)},
		Phase: mgl32.Vec3{float32(rng.Float64() * 2 * math.Pi), float32(rng.Float64() * 2 * math.Pi), float32(rng.Float64() * 2 * math.Pi)},
	}
}

// Step sets the room rotation for time t.
func (r *RoomSway) Step(t float32) {
	for axis := 0; axis < 3; axis++ {
		r.Rotation[axis] = float32(math.Sin(float64(t*r.Freq[axis]+r.Phase[axis]))) * r.Amp[axis]
	}
}

// Choreography owns the time-driven scene motion that does not depend on individual cells.
type Choreography struct {
	Time     float32 // material and scene clock
	Rotation GroupRotation
	Lights   *Lights
	Room     *RoomSway

	timeStep float32
}

// NewChoreography creates the scene motion from configuration.
func NewChoreography(cfg *config.Config, rng *rand.Rand) *Choreography {
	c := &Choreography{
		Rotation: GroupRotation{
			StepX: float32(cfg.Rotation.XStep),
			StepY: float32(cfg.Rotation.YStep),
		},
		Lights:   NewLights(cfg.Lights, rng),
		Room:     NewRoomSway(cfg.Room, rng),
		timeStep: cfg.Derived.ShaderStep32,
	}
	c.Lights.Step(0)
	c.Room.Step(0)
	return c
}

// Step advances the scene clock and everything driven by it.
func (c *Choreography) Step(hovered bool) {
	c.Time += c.timeStep
	c.Rotation.Step(hovered)
	c.Lights.Step(c.Time)
	c.Room.Step(c.Time)
}
