package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input. Pointer moves are only queued here;
// the ray cast happens in the frame step.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.TogglePolicy()
	}

	// Overlay toggles
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKey(key)
	}

	g.handlePointerInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.rig.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-280, 10)
}

// handlePointerInput queues pointer moves and applies scroll zoom.
func (g *Game) handlePointerInput() {
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		pos := rl.GetMousePosition()
		g.queuePointer(g.rig.ToNDC(pos.X, pos.Y))
	}

	// raylib reports wheel-up as positive; scrolling up brings the grid closer
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.rig.Wheel(-wheel)
	}
}
