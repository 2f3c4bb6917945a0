package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// ContactOverlay is the contact text block. It drifts opposite the pointer's vertical
// position and with its horizontal one, a few pixels at most.
type ContactOverlay struct {
	renderer *Renderer
	text     string
	strength float32
	offset   mgl32.Vec2
}

// NewContactOverlay creates the overlay with a maximum drift in pixels.
func NewContactOverlay(text string, strength float32) *ContactOverlay {
	return &ContactOverlay{
		renderer: NewRenderer(),
		text:     text,
		strength: strength,
	}
}

// Pointer updates the drift from a pointer position in NDC.
func (c *ContactOverlay) Pointer(ndc mgl32.Vec2) {
	c.offset = mgl32.Vec2{ndc[0] * c.strength, -ndc[1] * c.strength}
}

// Offset returns the current drift in pixels.
func (c *ContactOverlay) Offset() mgl32.Vec2 {
	return c.offset
}

// Draw renders the text centered near the bottom of the screen.
func (c *ContactOverlay) Draw(screenW, screenH int32) {
	if c.text == "" {
		return
	}
	size := c.renderer.Theme.ContactSize
	w := rl.MeasureText(c.text, size)
	x := (screenW-w)/2 + int32(c.offset[0])
	y := screenH - size*4 + int32(c.offset[1])
	rl.DrawText(c.text, x, y, size, c.renderer.Theme.ContactColor)
}
