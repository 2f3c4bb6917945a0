// Material preview tool - evaluates the concrete material on the CPU with sliders.
//
// Usage: go run ./cmd/materialpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/config"
	"github.com/pthm-cable/concrete/shading"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	gridSize     = 128
	panelWidth   = windowWidth - previewSize - 30

	// The scene tint is dark; scale it up so the pattern stays readable.
	previewExposure = 4
)

// previewParams holds the slider state.
type previewParams struct {
	Variation float32
	Time      float32
	PointerX  float32
	PointerY  float32
	Tilt      float32 // rotation of the face normal away from the viewer, radians
	UVMode    bool
	Tiled     bool // one cell per variation instead of a single variation
}

func defaultParams() previewParams {
	return previewParams{}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variations := flag.Int("variations", 0, "Palette size: 6 or 24 (0 = use config)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variations != 0 {
		cfg.Material.Variations = *variations
		if err := cfg.Apply(); err != nil {
			slog.Error("invalid flags", "error", err)
			os.Exit(1)
		}
	}

	palette := shading.Palette(cfg.Material.Variations)
	world := shading.NewMaterial(palette, shading.CoordWorld, float32(cfg.Grid.CubeSize), float32(cfg.Material.TextureScale))
	uv := shading.NewMaterial(palette, shading.CoordUV, float32(cfg.Grid.CubeSize), float32(cfg.Material.TextureScale))

	rl.InitWindow(windowWidth, windowHeight, "Concrete Material Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	pixels := make([]color.RGBA, gridSize*gridSize)
	params := defaultParams()
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			params.Time += float32(cfg.Timing.ShaderStep)
			needsRegen = true
		}

		if needsRegen {
			mat := world
			if params.UVMode {
				mat = uv
			}
			shadeFace(pixels, mat, params, float32(cfg.Derived.CellSize), float32(cfg.Material.BaseTint))
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		mode := shading.CoordWorld
		if params.UVMode {
			mode = shading.CoordUV
		}
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Palette: %d  Mode: %s", len(palette), mode), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.2f", params.Time), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Concrete Material", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		maxVar := float32(len(palette) - 1)
		if v := slider(panelX, &panelY, "Variation", params.Variation, 0, maxVar, "%.0f"); float32(int(v)) != params.Variation {
			params.Variation = float32(int(v))
			needsRegen = true
		}
		if v := slider(panelX, &panelY, "Time", params.Time, 0, 60, "%.2f"); v != params.Time {
			params.Time = v
			needsRegen = true
		}
		if v := slider(panelX, &panelY, "Pointer X (NDC)", params.PointerX, -1, 1, "%.2f"); v != params.PointerX {
			params.PointerX = v
			needsRegen = true
		}
		if v := slider(panelX, &panelY, "Pointer Y (NDC)", params.PointerY, -1, 1, "%.2f"); v != params.PointerY {
			params.PointerY = v
			needsRegen = true
		}
		if v := slider(panelX, &panelY, "Normal tilt (edge darkening)", params.Tilt, 0, math.Pi/2, "%.2f"); v != params.Tilt {
			params.Tilt = v
			needsRegen = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.UVMode, "World coords", "UV coords")) {
			params.UVMode = !params.UVMode
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Tiled, "Single", "All variations")) {
			params.Tiled = !params.Tiled
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			animating = false
			needsRegen = true
		}
		panelY += 55

		v := palette[shading.ClampVariation(int(params.Variation), len(palette))]
		rl.DrawText("Variation entry:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		lines := []string{
			fmt.Sprintf("base: %.3f", v.Base),
			fmt.Sprintf("weight1: %.2f  weight2: %.2f", v.Weight1, v.Weight2),
			fmt.Sprintf("scale: %.1f  phase: %s(%.2f t)", v.Scale, toggleText(v.PhaseCos, "cos", "sin"), v.PhaseFreq),
			fmt.Sprintf("imperfection: %.2f", v.Imperfection),
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.EndDrawing()
	}
}

// slider draws a labeled slider bar and advances y past it.
func slider(x float32, y *float32, label string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	out := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return out
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// shadeFace fills pixels with one front face of a cell. The face spans cellSize world
// units; in tiled mode it is split into one square per palette entry.
func shadeFace(pixels []color.RGBA, mat *shading.Material, p previewParams, cellSize, tint float32) {
	pointer := mgl32.Vec2{p.PointerX, p.PointerY}
	normal := mgl32.Vec3{float32(math.Sin(float64(p.Tilt))), 0, float32(math.Cos(float64(p.Tilt)))}

	n := mat.Variations()
	tiles := 1
	if p.Tiled {
		tiles = int(math.Ceil(math.Sqrt(float64(n))))
	}
	tilePx := gridSize / tiles

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			variation := int(p.Variation)
			u := (float32(x) + 0.5) / gridSize
			v := 1 - (float32(y)+0.5)/gridSize
			if p.Tiled {
				tx, ty := min(x/tilePx, tiles-1), min(y/tilePx, tiles-1)
				variation = ty*tiles + tx
				u = (float32(x-tx*tilePx) + 0.5) / float32(tilePx)
				v = 1 - (float32(y-ty*tilePx)+0.5)/float32(tilePx)
			}
			if variation >= n {
				pixels[y*gridSize+x] = color.RGBA{A: 255}
				continue
			}

			worldPos := mgl32.Vec3{(u - 0.5) * cellSize, (v - 0.5) * cellSize, cellSize / 2}
			coord, nv, imp := mat.Surface(worldPos, mgl32.Vec2{u, v}, p.Time, pointer)
			c := mat.Shade(shading.Sample{
				Variation: shading.ClampVariation(variation, n),
				Coord:     coord,
				N:         nv,
				Imp:       imp,
				Normal:    normal,
			}, p.Time, pointer)

			pixels[y*gridSize+x] = toDisplay(c.Mul(tint))
		}
	}
}

// toDisplay encodes a linear color with a 1/2.2 display gamma.
func toDisplay(c mgl32.Vec3) color.RGBA {
	var out [3]uint8
	for i := range 3 {
		v := float64(c[i]) * previewExposure
		v = math.Pow(math.Min(math.Max(v, 0), 1), 1/2.2)
		out[i] = uint8(v*255 + 0.5)
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: 255}
}
