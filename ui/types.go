// Package ui draws the 2D layer over the scene: the HUD, the perf panel, the overlay
// toggles and the contact text that drifts against the pointer.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillHigh    rl.Color
	ContactColor   rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	ContactSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 14, G: 14, B: 16, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 60, B: 66, A: 255},
		SectionHeader:  rl.Color{R: 210, G: 200, B: 170, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 150, G: 150, B: 150, A: 255},
		BarFillHigh:    rl.Color{R: 220, G: 120, B: 100, A: 255},
		ContactColor:   rl.Color{R: 200, G: 200, B: 200, A: 200},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		ContactSize:    20,
	}
}
