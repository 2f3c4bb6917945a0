// Package config provides configuration loading and access for the centerpiece.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Alive policy names.
const (
	PolicyHeartbeat = "heartbeat"
	PolicyEscape    = "escape"
)

// Texture coordinate modes.
const (
	TextureWorld = "world" // world-space coordinates, seamless across faces
	TextureUV    = "uv"    // per-face UV, seams visible at cube edges
)

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Material  MaterialConfig  `yaml:"material"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Idle      IdleConfig      `yaml:"idle"`
	Alive     AliveConfig     `yaml:"alive"`
	Zoom      ZoomConfig      `yaml:"zoom"`
	Parallax  ParallaxConfig  `yaml:"parallax"`
	Rotation  RotationConfig  `yaml:"rotation"`
	Lights    LightsConfig    `yaml:"lights"`
	Room      RoomConfig      `yaml:"room"`
	Timing    TimingConfig    `yaml:"timing"`
	Overlay   OverlayConfig   `yaml:"overlay"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FloatRange is an inclusive-exclusive [Min, Max) range used for random draws.
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps t in [0,1) onto the range.
func (r FloatRange) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// ScreenConfig holds display and projection settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FovY      float64 `yaml:"fov_y"` // degrees
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	CameraZ   float64 `yaml:"camera_z"`
}

// GridConfig holds the cube decomposition.
type GridConfig struct {
	Segments int     `yaml:"segments"`
	CubeSize float64 `yaml:"cube_size"`
}

// MaterialConfig holds procedural material settings.
type MaterialConfig struct {
	Variations   int     `yaml:"variations"`   // 6 or 24
	TextureMode  string  `yaml:"texture_mode"` // world or uv
	TextureScale float64 `yaml:"texture_scale"`
	BaseTint     float64 `yaml:"base_tint"`
	Ambient      float64 `yaml:"ambient"`
}

// ExplosionConfig holds hover repel parameters.
type ExplosionConfig struct {
	Radius         float64 `yaml:"radius"`
	MaxStrength    float64 `yaml:"max_strength"`
	Exponent       float64 `yaml:"exponent"`
	Smoothing      float64 `yaml:"smoothing"`       // per-frame lerp toward the repel target
	FocusSmoothing float64 `yaml:"focus_smoothing"` // per-frame lerp of the focus point
}

// IdleConfig holds the return-to-rest behavior.
type IdleConfig struct {
	Smoothing float64 `yaml:"smoothing"`
}

// AliveConfig selects and tunes the ambient "alive" behavior.
type AliveConfig struct {
	Policy    string          `yaml:"policy"`
	MaxActive int             `yaml:"max_active"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Escape    EscapeConfig    `yaml:"escape"`
}

// HeartbeatConfig holds the unified heartbeat policy parameters.
type HeartbeatConfig struct {
	CycleMin        float64 `yaml:"cycle_min"`
	CycleMax        float64 `yaml:"cycle_max"`
	FirstBeat       float64 `yaml:"first_beat"`  // phase of the first pulse
	SecondBeat      float64 `yaml:"second_beat"` // phase of the second pulse
	BeatWidth       float64 `yaml:"beat_width"`  // pulse half-width in phase units
	BeatFalloff     float64 `yaml:"beat_falloff"`
	SecondScale     float64 `yaml:"second_scale"`
	Amplitude       float64 `yaml:"amplitude"`
	RandomBase      float64 `yaml:"random_base"`
	RandomSpread    float64 `yaml:"random_spread"`
	OutThreshold    float64 `yaml:"out_threshold"` // strength above which the outward smoothing applies
	OutSmoothing    float64 `yaml:"out_smoothing"`
	OutJitter       float64 `yaml:"out_jitter"`
	ReturnSmoothing float64 `yaml:"return_smoothing"`
	ReturnJitter    float64 `yaml:"return_jitter"`
}

// EscapeConfig holds the face-only escape attempt policy parameters.
type EscapeConfig struct {
	Chance      float64 `yaml:"chance"` // per idle face cell per frame
	Smoothing   float64 `yaml:"smoothing"`
	DurationMin float64 `yaml:"duration_min"`
	DurationMax float64 `yaml:"duration_max"`
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max"`
	StruggleMin float64 `yaml:"struggle_min"`
	StruggleMax float64 `yaml:"struggle_max"`
	DistanceMin float64 `yaml:"distance_min"`
	DistanceMax float64 `yaml:"distance_max"`
}

// ZoomConfig holds scroll zoom parameters.
type ZoomConfig struct {
	MinDistance    float64 `yaml:"min_distance"`
	MaxDistance    float64 `yaml:"max_distance"`
	Initial        float64 `yaml:"initial"`
	Speed          float64 `yaml:"speed"`
	NearThreshold  float64 `yaml:"near_threshold"` // below this distance the near multiplier applies
	NearMultiplier float64 `yaml:"near_multiplier"`
	FarMultiplier  float64 `yaml:"far_multiplier"`
	Smoothing      float64 `yaml:"smoothing"`
}

// ParallaxConfig holds camera parallax parameters.
type ParallaxConfig struct {
	Strength  float64 `yaml:"strength"` // radians at the viewport edge
	Smoothing float64 `yaml:"smoothing"`
}

// RotationConfig holds the idle whole-grid rotation.
type RotationConfig struct {
	XStep float64 `yaml:"x_step"`
	YStep float64 `yaml:"y_step"`
}

// LightsConfig holds moving point light parameters.
type LightsConfig struct {
	Count        int     `yaml:"count"`
	Terms        int     `yaml:"terms"`
	BaseRange    float64 `yaml:"base_range"`
	FreqMin      float64 `yaml:"freq_min"`
	FreqMax      float64 `yaml:"freq_max"`
	AmpMin       float64 `yaml:"amp_min"`
	AmpMax       float64 `yaml:"amp_max"`
	ZScale       float64 `yaml:"z_scale"`
	ZPhaseScale  float64 `yaml:"z_phase_scale"`
	RoomBound    float64 `yaml:"room_bound"`
	Range        float64 `yaml:"range"`
	Decay        float64 `yaml:"decay"`
	Intensity    float64 `yaml:"intensity"`
	Flicker      float64 `yaml:"flicker"`
	FlickerSpeed float64 `yaml:"flicker_speed"`
}

// RoomConfig holds the surrounding room box and its sway.
type RoomConfig struct {
	Size  float64    `yaml:"size"`
	FreqX FloatRange `yaml:"freq_x"`
	FreqY FloatRange `yaml:"freq_y"`
	FreqZ FloatRange `yaml:"freq_z"`
	AmpX  FloatRange `yaml:"amp_x"`
	AmpY  FloatRange `yaml:"amp_y"`
	AmpZ  FloatRange `yaml:"amp_z"`
}

// TimingConfig holds per-frame clock increments.
type TimingConfig struct {
	FrameStep  float64 `yaml:"frame_step"`
	ShaderStep float64 `yaml:"shader_step"`
}

// OverlayConfig holds the 2D contact overlay.
type OverlayConfig struct {
	Text             string  `yaml:"text"`
	ParallaxStrength float64 `yaml:"parallax_strength"` // pixels at the viewport edge
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of frames per stats window
	PerfWindow  int     `yaml:"perf_window"`  // frames in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellSize       float32 // Grid.CubeSize / Grid.Segments
	HalfCube       float32
	FrameStep32    float32
	ShaderStep32   float32
	FramesPerStats int // Telemetry.StatsWindow / Timing.FrameStep
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns a fresh copy of the embedded defaults with derived values computed.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Apply re-validates the config after in-place changes (CLI overrides) and refreshes
// derived values.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate reports every field that would break the frame loop invariants.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.Segments >= 1, "grid.segments must be >= 1, got %d", c.Grid.Segments)
	check(c.Grid.CubeSize > 0, "grid.cube_size must be > 0, got %g", c.Grid.CubeSize)
	check(c.Material.Variations == 6 || c.Material.Variations == 24,
		"material.variations must be 6 or 24, got %d", c.Material.Variations)
	check(c.Material.TextureMode == TextureWorld || c.Material.TextureMode == TextureUV,
		"material.texture_mode must be %q or %q, got %q", TextureWorld, TextureUV, c.Material.TextureMode)
	check(c.Explosion.Radius > 0, "explosion.radius must be > 0, got %g", c.Explosion.Radius)
	check(c.Alive.Policy == PolicyHeartbeat || c.Alive.Policy == PolicyEscape,
		"alive.policy must be %q or %q, got %q", PolicyHeartbeat, PolicyEscape, c.Alive.Policy)
	check(c.Alive.MaxActive >= 0, "alive.max_active must be >= 0, got %d", c.Alive.MaxActive)
	check(c.Alive.Heartbeat.CycleMin > 0 && c.Alive.Heartbeat.CycleMax >= c.Alive.Heartbeat.CycleMin,
		"alive.heartbeat cycle range invalid: [%g, %g]", c.Alive.Heartbeat.CycleMin, c.Alive.Heartbeat.CycleMax)
	check(c.Alive.Heartbeat.BeatWidth > 0, "alive.heartbeat.beat_width must be > 0")
	check(c.Alive.Escape.DurationMin > 0 && c.Alive.Escape.DurationMax >= c.Alive.Escape.DurationMin,
		"alive.escape duration range invalid: [%g, %g]", c.Alive.Escape.DurationMin, c.Alive.Escape.DurationMax)
	check(c.Zoom.MinDistance >= 0 && c.Zoom.MaxDistance > c.Zoom.MinDistance,
		"zoom distance range invalid: [%g, %g]", c.Zoom.MinDistance, c.Zoom.MaxDistance)
	check(c.Zoom.Initial >= c.Zoom.MinDistance && c.Zoom.Initial <= c.Zoom.MaxDistance,
		"zoom.initial %g outside [%g, %g]", c.Zoom.Initial, c.Zoom.MinDistance, c.Zoom.MaxDistance)
	for name, f := range map[string]float64{
		"explosion.smoothing":       c.Explosion.Smoothing,
		"explosion.focus_smoothing": c.Explosion.FocusSmoothing,
		"idle.smoothing":            c.Idle.Smoothing,
		"zoom.smoothing":            c.Zoom.Smoothing,
		"parallax.smoothing":        c.Parallax.Smoothing,
		"alive.escape.smoothing":    c.Alive.Escape.Smoothing,
	} {
		check(f > 0 && f <= 1, "%s must be in (0, 1], got %g", name, f)
	}
	check(c.Lights.Count >= 0 && c.Lights.Count <= MaxLights, "lights.count must be in [0, %d], got %d", MaxLights, c.Lights.Count)
	check(c.Timing.FrameStep > 0, "timing.frame_step must be > 0, got %g", c.Timing.FrameStep)
	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be > 0, got %g", c.Telemetry.StatsWindow)

	return errors.Join(errs...)
}

// MaxLights is the size of the light uniform arrays in the composed shader.
const MaxLights = 4

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Grid.Segments > 0 {
		c.Derived.CellSize = float32(c.Grid.CubeSize / float64(c.Grid.Segments))
	}
	c.Derived.HalfCube = float32(c.Grid.CubeSize * 0.5)
	c.Derived.FrameStep32 = float32(c.Timing.FrameStep)
	c.Derived.ShaderStep32 = float32(c.Timing.ShaderStep)

	if c.Timing.FrameStep > 0 {
		c.Derived.FramesPerStats = int(math.Round(c.Telemetry.StatsWindow / c.Timing.FrameStep))
	}
	if c.Derived.FramesPerStats < 1 {
		c.Derived.FramesPerStats = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
