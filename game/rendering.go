package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/components"
	"github.com/pthm-cable/concrete/renderer"
	"github.com/pthm-cable/concrete/telemetry"
	"github.com/pthm-cable/concrete/ui"
)

// controlsLegend is the always-visible key reminder.
const controlsLegend = "Scroll: zoom | P: policy | H: HUD | O: overlays | F11: fullscreen"

// keyHints lists the non-overlay key bindings for the controls panel.
var keyHints = []ui.KeyHint{
	{Key: "P", Action: "Switch alive policy"},
	{Key: "F11", Action: "Fullscreen"},
}

// Draw renders the frame and closes its perf sample.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginMode3D(renderer.Camera3D(g.rig.Position, g.rig.Target(), g.rig.Up(), g.rig.FovY))

	g.room.Draw(g.choreo.Room.Rotation)
	g.concrete.Draw(g.collectCells())

	if g.overlays.Enabled(ui.OverlayLightMarkers) {
		g.drawLightMarkers()
	}
	if g.overlays.Enabled(ui.OverlayFocus) && g.animWorld.Interaction.Hovered {
		focus := g.groupMatrix().Mul4x1(g.animWorld.Interaction.Focus.Vec4(1)).Vec3()
		renderer.DrawFocusMarker(focus, float32(g.cfg.Explosion.Radius))
	}

	rl.EndMode3D()

	g.drawOverlays()

	rl.EndDrawing()

	g.perf.EndFrame()
	g.perf.RecordPresent()
}

// collectCells builds this frame's cell transforms in the group frame.
func (g *Game) collectCells() []renderer.CellDraw {
	group := g.groupMatrix()
	g.cellDraws = g.cellDraws[:0]
	g.grid.ForEach(func(cell *components.Cell, motion *components.Motion) {
		p := motion.Current
		g.cellDraws = append(g.cellDraws, renderer.CellDraw{
			Transform: group.Mul4(mgl32.Translate3D(p[0], p[1], p[2])),
			Variation: cell.Variation,
		})
	})
	return g.cellDraws
}

func (g *Game) drawLightMarkers() {
	lights := g.choreo.Lights.Lights
	positions := make([]mgl32.Vec3, len(lights))
	intensities := make([]float32, len(lights))
	for i, l := range lights {
		positions[i] = l.Position
		intensities[i] = l.Intensity
	}
	renderer.DrawLightMarkers(positions, intensities)
}

// drawOverlays renders the 2D layer.
func (g *Game) drawOverlays() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)

	if g.overlays.Enabled(ui.OverlayContact) {
		g.contact.Draw(w, h)
	}

	y := int32(10)
	if g.overlays.Enabled(ui.OverlayHUD) {
		y = g.hud.Draw(ui.HUDData{
			FPS:               rl.GetFPS(),
			Frame:             g.frame,
			Policy:            g.animWorld.Policy.Name(),
			Hovered:           g.animWorld.Interaction.Hovered,
			Focus:             g.animWorld.Interaction.Focus,
			Alive:             g.animWorld.ActiveCount,
			MaxActive:         g.animWorld.MaxActive,
			Cells:             g.grid.Len(),
			Zoom:              g.rig.Distance,
			HeartbeatPhase:    g.animWorld.Heartbeat.Phase(),
			HeartbeatStrength: g.animWorld.Heartbeat.Strength(),
		})
	}
	if g.overlays.Enabled(ui.OverlayControls) {
		g.controls.SetPosition(10, y)
		g.controls.Draw(g.overlays, keyHints)
	}
	if g.overlays.Enabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}

	g.hud.DrawControls(h, controlsLegend)
}
