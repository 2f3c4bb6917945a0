package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the overlay toggle list.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlaySet, keys []KeyHint) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := c.width - padding*2

	groups := [][]Overlay{
		overlays.Group(GroupInfo),
		overlays.Group(GroupVisual),
		overlays.Group(GroupDebug),
	}
	lines := len(keys) + 2
	for _, g := range groups {
		lines += len(g) + 1
	}
	r.Panel(c.x, c.y, c.width, int32(lines)*lineHeight+padding*4)

	x := c.x + padding
	y := c.y + padding
	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += lineHeight + 4

	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		y = r.Header(x, y, groupLabel(g[0].Group))
		for _, o := range g {
			c.drawToggle(x, y, o.Name, o.KeyLabel, o.On, inner)
			y += lineHeight
		}
		y += 4
	}

	y = r.Header(x, y, "Keys")
	for _, k := range keys {
		c.drawToggle(x, y, k.Action, k.Key, false, inner)
		y += lineHeight
	}
	return y
}

// KeyHint is a key binding that is not an overlay.
type KeyHint struct {
	Key    string
	Action string
}

// drawToggle draws a single toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, name, keyLabel string, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if keyLabel != "" {
		keyText := fmt.Sprintf("[%s]", keyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func groupLabel(group string) string {
	switch group {
	case GroupInfo:
		return "Info"
	case GroupVisual:
		return "Visual"
	case GroupDebug:
		return "Debug"
	default:
		return group
	}
}
