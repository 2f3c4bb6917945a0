// Package game wires the cell grid, the per-frame systems, the camera rig and the
// renderer into the frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/concrete/camera"
	"github.com/pthm-cable/concrete/config"
	"github.com/pthm-cable/concrete/renderer"
	"github.com/pthm-cable/concrete/shading"
	"github.com/pthm-cable/concrete/systems"
	"github.com/pthm-cable/concrete/telemetry"
	"github.com/pthm-cable/concrete/ui"
)

// Options configures a Game.
type Options struct {
	Config        *config.Config // nil = config.Cfg()
	Seed          int64
	Headless      bool // no raylib calls at all
	LogStats      bool
	OutputDir     string
	RunID         string // empty = fresh uuid
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete scene state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world     *ecs.World
	grid      *systems.Grid
	animation *systems.AnimationSystem
	animWorld *systems.AnimationWorld
	choreo    *systems.Choreography
	rig       *camera.Rig
	script    *camera.PointerScript

	program  shading.Program
	uniforms *shading.UniformTable

	// Rendering and UI (nil in headless mode)
	concrete  *renderer.ConcreteRenderer
	room      *renderer.RoomRenderer
	overlays  *ui.OverlaySet
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	contact   *ui.ContactOverlay
	cellDraws []renderer.CellDraw

	// Pointer move waiting for the next frame step
	pointerNDC   mgl32.Vec2
	pointerDirty bool

	// Telemetry
	runID         string
	perf          *telemetry.PerfCollector
	collector     *telemetry.WindowCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	displacements []float64

	headless                  bool
	frame                     int
	screenWidth, screenHeight float32
}

// NewGame builds the scene. In windowed mode the raylib window must already be open.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	world := ecs.NewWorld()

	g := &Game{
		cfg:           cfg,
		rng:           rng,
		seed:          opts.Seed,
		world:         world,
		headless:      opts.Headless,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}

	g.grid = systems.SpawnGrid(world, cfg.Grid.Segments, float32(cfg.Grid.CubeSize), cfg.Material.Variations, rng)
	g.animWorld = systems.NewAnimationWorld(cfg, rng)
	g.animation = systems.NewAnimationSystem(world)
	g.choreo = systems.NewChoreography(cfg, rng)
	g.rig = camera.New(cfg, g.screenWidth, g.screenHeight)
	g.displacements = make([]float64, 0, g.grid.Len())

	program, err := shading.Compose(shading.ProgramOptions{
		Palette:     shading.Palette(cfg.Material.Variations),
		TextureMode: cfg.Material.TextureMode,
		MaxLights:   config.MaxLights,
	})
	if err != nil {
		return nil, fmt.Errorf("building concrete program: %w", err)
	}
	g.program = program
	g.uniforms = shading.NewUniformTable(program.Uniforms)
	g.setStaticUniforms()

	if err := g.initTelemetry(opts); err != nil {
		return nil, err
	}

	if opts.Headless {
		g.script = camera.NewPointerScript()
	} else if err := g.initRendering(); err != nil {
		g.output.Close()
		return nil, err
	}

	slog.Info("scene ready",
		"run_id", g.runID,
		"seed", opts.Seed,
		"cells", g.grid.Len(),
		"policy", g.animWorld.Policy.Name(),
		"variations", cfg.Material.Variations,
		"texture_mode", cfg.Material.TextureMode,
		"headless", opts.Headless,
	)
	return g, nil
}

func (g *Game) initTelemetry(opts Options) error {
	g.runID = opts.RunID
	if g.runID == "" {
		g.runID = telemetry.NewRunID()
	}
	g.perf = telemetry.NewPerfCollector(g.cfg.Telemetry.PerfWindow)
	g.collector = telemetry.NewCollector(g.runID, g.cfg.Derived.FramesPerStats, g.cfg.Timing.FrameStep)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(g.cfg); err != nil {
		output.Close()
		return fmt.Errorf("writing config snapshot: %w", err)
	}
	g.output = output
	return nil
}

func (g *Game) initRendering() error {
	g.concrete = renderer.NewConcreteRenderer(g.program, g.uniforms, g.cfg.Derived.CellSize)
	if err := g.concrete.Init(); err != nil {
		return err
	}
	for name, loc := range g.concrete.Locations() {
		if loc < 0 {
			slog.Debug("uniform not active in compiled program", "uniform", name)
		}
	}

	g.room = renderer.NewRoomRenderer(float32(g.cfg.Room.Size))
	g.room.Init()

	g.overlays = ui.NewOverlaySet()
	g.hud = ui.NewHUD(10, 10, 260)
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-280, 10)
	g.controls = ui.NewControlsPanel(10, 10, 220)
	g.contact = ui.NewContactOverlay(g.cfg.Overlay.Text, float32(g.cfg.Overlay.ParallaxStrength))
	g.cellDraws = make([]renderer.CellDraw, 0, g.grid.Len())
	return nil
}

// setStaticUniforms writes the uniforms that only change with configuration.
func (g *Game) setStaticUniforms() {
	u := g.uniforms
	u.SetFloat(shading.UniformCubeSize, float32(g.cfg.Grid.CubeSize))
	u.SetFloat(shading.UniformTextureScale, float32(g.cfg.Material.TextureScale))
	u.SetFloat(shading.UniformBaseTint, float32(g.cfg.Material.BaseTint))
	u.SetFloat(shading.UniformAmbient, float32(g.cfg.Material.Ambient))
	u.SetFloat(shading.UniformLightCount, float32(len(g.choreo.Lights.Lights)))
	u.SetFloat(shading.UniformLightRange, float32(g.cfg.Lights.Range))
	u.SetFloat(shading.UniformLightDecay, float32(g.cfg.Lights.Decay))
}

// TogglePolicy switches between the heartbeat and escape behaviors. Every alive cell is
// returned to idle and the active count starts over.
func (g *Game) TogglePolicy() {
	name := config.PolicyEscape
	if g.animWorld.Policy.Name() == config.PolicyEscape {
		name = config.PolicyHeartbeat
	}
	g.animation.SetPolicy(g.animWorld, systems.NewAlivePolicy(name, g.cfg.Alive))
	slog.Info("alive policy switched", "policy", name, "frame", g.frame)
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.concrete != nil {
		g.concrete.Unload()
	}
	if g.room != nil {
		g.room.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of completed frame steps.
func (g *Game) Frame() int {
	return g.frame
}

// RunID returns the identifier written with every telemetry record.
func (g *Game) RunID() string {
	return g.runID
}

// Policy returns the active alive policy name.
func (g *Game) Policy() string {
	return g.animWorld.Policy.Name()
}
