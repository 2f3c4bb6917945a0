package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel primitives with a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// Panel draws a bordered background.
func (r *Renderer) Panel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// Header draws a section title and returns the next line's Y.
func (r *Renderer) Header(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// Row draws "label: value" and returns the next line's Y.
func (r *Renderer) Row(x, y int32, label, format string, args ...any) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(fmt.Sprintf(format, args...), x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// Meter draws a horizontal gauge for a value in [0, 1]. Above hot the fill turns warm.
func (r *Renderer) Meter(x, y int32, label string, value, hot float32, width int32) int32 {
	t := r.Theme
	value = min(max(value, 0), 1)
	left := x + t.LabelWidth
	span := width - t.LabelWidth - 40

	fill := t.BarFill
	if value > hot {
		fill = t.BarFillHigh
	}
	rl.DrawText(label, x, y, t.FontSize, t.LabelColor)
	rl.DrawRectangle(left, y+2, span, t.BarHeight, t.BarBg)
	rl.DrawRectangle(left, y+2, int32(float32(span)*value), t.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), left+span+5, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight + 2
}
