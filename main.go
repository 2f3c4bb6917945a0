package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/concrete/config"
	"github.com/pthm-cable/concrete/game"
	"github.com/pthm-cable/concrete/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics using a scripted pointer")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	policy := flag.String("policy", "", "Alive policy: heartbeat or escape (empty = use config)")
	variations := flag.Int("variations", 0, "Palette size: 6 or 24 (0 = use config)")
	textureMode := flag.String("texture-mode", "", "Texture coordinates: world or uv (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	logFormat := flag.String("log-format", "json", "Log format: json or text")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	if *logFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *policy != "" {
		cfg.Alive.Policy = *policy
	}
	if *variations != 0 {
		cfg.Material.Variations = *variations
	}
	if *textureMode != "" {
		cfg.Material.TextureMode = *textureMode
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if err := cfg.Apply(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Each run writes into its own sub-directory named by the run id
	runID := telemetry.NewRunID()
	runDir := ""
	if *outputDir != "" {
		runDir = filepath.Join(*outputDir, runID)
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		Headless:  *headless,
		LogStats:  *logStats,
		OutputDir: runDir,
		RunID:     runID,
	}

	if *headless {
		// Headless mode - frame step only, no raylib needed
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_frames", *maxFrames,
			"output_dir", runDir,
		)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && g.Frame() >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Concrete")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= *maxFrames {
			break
		}
	}
}
