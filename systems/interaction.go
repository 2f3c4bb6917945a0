package systems

import "github.com/go-gl/mathgl/mgl32"

// Interaction is the pointer/hover state shared by the input handler and the frame step.
// The input handler only calls PointerMoved; the frame step only calls Smooth.
type Interaction struct {
	PointerNDC    mgl32.Vec2
	Hovered       bool
	Focus         mgl32.Vec3 // smoothed focus point in the grid's local frame
	FocusTarget   mgl32.Vec3
	Transitioning bool

	smoothing float32
}

// NewInteraction creates an interaction state with the given focus smoothing factor.
func NewInteraction(smoothing float32) *Interaction {
	return &Interaction{smoothing: smoothing}
}

// PointerMoved records a pointer position and the ray hit under it, with the hit point
// already in the grid's local frame. It reports whether hover was entered on this move.
// On entry the focus snaps to the hit so the repel does not lag in from a stale point.
func (in *Interaction) PointerMoved(ndc mgl32.Vec2, hit Hit, ok bool) bool {
	in.PointerNDC = ndc

	was := in.Hovered
	in.Hovered = ok
	if !ok {
		return false
	}

	if !was {
		in.Focus = hit.Point
	}
	in.FocusTarget = hit.Point
	in.Transitioning = true
	return !was
}

// Smooth moves the focus point toward its target. Called once per frame.
func (in *Interaction) Smooth() {
	if !in.Transitioning {
		return
	}
	in.Focus = lerpVec3(in.Focus, in.FocusTarget, in.smoothing)
}
