package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	FPS               int32
	Frame             int
	Policy            string
	Hovered           bool
	Focus             mgl32.Vec3
	Alive             int
	MaxActive         int
	Cells             int
	Zoom              float32
	HeartbeatPhase    float32
	HeartbeatStrength float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the Y below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*11 + padding*2

	r.Panel(h.x, h.y, h.width, height)

	x := h.x + padding
	inner := h.width - padding*2
	y := r.Header(x, h.y+padding, "Concrete")

	hover := "no"
	if data.Hovered {
		hover = "yes"
	}
	y = r.Row(x, y, "FPS", "%d", data.FPS)
	y = r.Row(x, y, "Frame", "%d", data.Frame)
	y = r.Row(x, y, "Policy", "%s", data.Policy)
	y = r.Row(x, y, "Hovered", "%s", hover)
	y = r.Row(x, y, "Focus", "%.2f %.2f %.2f", data.Focus[0], data.Focus[1], data.Focus[2])
	y = r.Row(x, y, "Alive", "%d / %d (cap %d)", data.Alive, data.Cells, data.MaxActive)
	y = r.Row(x, y, "Zoom", "%.3f", data.Zoom)
	y = r.Meter(x, y, "Phase", data.HeartbeatPhase, 1, inner)
	y = r.Meter(x, y, "Beat", data.HeartbeatStrength, 0.5, inner)

	return y + padding
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Step: %s  (%.0f/s)", stats.AvgFrameDuration.Round(time.Microsecond), stats.StepsPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-13s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
