// Shader debug tool - composes the concrete program, compiles it in a hidden window and
// reports the uniform locations. With -out it also renders a single lit cell to a PNG.
//
// Usage: go run ./cmd/shaderdebug -variations 24 -texture-mode uv -out debug.png
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/config"
	"github.com/pthm-cable/concrete/renderer"
	"github.com/pthm-cable/concrete/shading"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variations := flag.Int("variations", 0, "Palette size: 6 or 24 (0 = use config)")
	textureMode := flag.String("texture-mode", "", "Texture coordinates: world or uv (empty = use config)")
	variation := flag.Int("variation", 0, "Palette index of the rendered cell")
	outPath := flag.String("out", "", "Output PNG path (empty = no render)")
	dumpSource := flag.Bool("dump", false, "Print the composed fragment shader")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variations != 0 {
		cfg.Material.Variations = *variations
	}
	if *textureMode != "" {
		cfg.Material.TextureMode = *textureMode
	}
	if err := cfg.Apply(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
		os.Exit(1)
	}

	palette := shading.Palette(cfg.Material.Variations)
	program, err := shading.Compose(shading.ProgramOptions{
		Palette:     palette,
		TextureMode: cfg.Material.TextureMode,
		MaxLights:   config.MaxLights,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compose program: %v\n", err)
		os.Exit(1)
	}
	if *dumpSource {
		fmt.Println(program.Fragment)
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	uniforms := shading.NewUniformTable(program.Uniforms)
	uniforms.SetFloat(shading.UniformCubeSize, float32(cfg.Grid.CubeSize))
	uniforms.SetFloat(shading.UniformTextureScale, float32(cfg.Material.TextureScale))
	uniforms.SetFloat(shading.UniformBaseTint, float32(cfg.Material.BaseTint))
	uniforms.SetFloat(shading.UniformAmbient, float32(cfg.Material.Ambient))
	uniforms.SetFloat(shading.UniformLightCount, 1)
	uniforms.SetFloat(shading.UniformLightRange, float32(cfg.Lights.Range))
	uniforms.SetFloat(shading.UniformLightDecay, float32(cfg.Lights.Decay))
	uniforms.SetVec3At(shading.UniformLightPos, 0, mgl32.Vec3{1, 1.5, 2})
	uniforms.SetFloatAt(shading.UniformLightIntensity, 0, float32(cfg.Lights.Intensity))

	cell := cfg.Derived.CellSize
	concrete := renderer.NewConcreteRenderer(program, uniforms, cell)
	if err := concrete.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to compile program: %v\n", err)
		os.Exit(1)
	}
	defer concrete.Unload()

	fmt.Printf("Program compiled: %d variations, %s coordinates\n", len(palette), cfg.Material.TextureMode)
	locs := concrete.Locations()
	names := make([]string, 0, len(locs))
	for name := range locs {
		names = append(names, name)
	}
	sort.Strings(names)
	missing := 0
	for _, name := range names {
		status := ""
		if locs[name] < 0 {
			status = "  (inactive)"
			missing++
		}
		fmt.Printf("  %-16s %3d%s\n", name, locs[name], status)
	}
	if missing > 0 {
		fmt.Printf("%d uniform(s) optimized out by the driver\n", missing)
	}

	if *outPath == "" {
		return
	}

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	eye := mgl32.Vec3{cell * 1.2, cell * 0.9, cell * 2}
	camera := renderer.Camera3D(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, float32(cfg.Screen.FovY))

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(camera)
	concrete.Draw([]renderer.CellDraw{{
		Transform: mgl32.Ident4(),
		Variation: shading.ClampVariation(*variation, len(palette)),
	}})
	rl.EndMode3D()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Cell rendered to: %s (%dx%d)\n", *outPath, *width, *height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
