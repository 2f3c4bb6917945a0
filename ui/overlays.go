package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable layer.
type OverlayID string

const (
	OverlayHUD          OverlayID = "hud"
	OverlayPerf         OverlayID = "perf"
	OverlayControls     OverlayID = "controls"
	OverlayContact      OverlayID = "contact"
	OverlayLightMarkers OverlayID = "light_markers"
	OverlayFocus        OverlayID = "focus"
)

// Overlay groups, in display order.
const (
	GroupInfo   = "info"
	GroupVisual = "visual"
	GroupDebug  = "debug"
)

// Overlay describes one toggleable layer and its key binding.
type Overlay struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Group    string
	On       bool // state at startup
}

var overlayTable = []Overlay{
	{OverlayHUD, "HUD", rl.KeyH, "H", GroupInfo, false},
	{OverlayPerf, "Frame Phases", rl.KeyF3, "F3", GroupInfo, false},
	{OverlayControls, "Overlay List", rl.KeyO, "O", GroupInfo, false},
	{OverlayContact, "Contact", rl.KeyC, "C", GroupVisual, true},
	{OverlayLightMarkers, "Light Markers", rl.KeyL, "L", GroupDebug, false},
	{OverlayFocus, "Repel Focus", rl.KeyF, "F", GroupDebug, false},
}

// OverlaySet holds the on/off state of every overlay.
type OverlaySet struct {
	overlays []Overlay
	index    map[OverlayID]int
}

// NewOverlaySet creates the set with every overlay in its startup state.
func NewOverlaySet() *OverlaySet {
	s := &OverlaySet{
		overlays: make([]Overlay, len(overlayTable)),
		index:    make(map[OverlayID]int, len(overlayTable)),
	}
	copy(s.overlays, overlayTable)
	for i, o := range s.overlays {
		s.index[o.ID] = i
	}
	return s
}

// Enabled reports whether an overlay is shown.
func (s *OverlaySet) Enabled(id OverlayID) bool {
	i, ok := s.index[id]
	return ok && s.overlays[i].On
}

// Toggle flips an overlay and returns its new state.
func (s *OverlaySet) Toggle(id OverlayID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.overlays[i].On = !s.overlays[i].On
	return s.overlays[i].On
}

// HandleKey toggles the overlay bound to key. Returns false if no overlay uses it.
func (s *OverlaySet) HandleKey(key int32) bool {
	for _, o := range s.overlays {
		if o.Key == key {
			on := s.Toggle(o.ID)
			slog.Debug("overlay toggled", "overlay", o.ID, "on", on)
			return true
		}
	}
	return false
}

// Group returns the overlays of one group in table order.
func (s *OverlaySet) Group(group string) []Overlay {
	var out []Overlay
	for _, o := range s.overlays {
		if o.Group == group {
			out = append(out, o)
		}
	}
	return out
}
