// Package components holds the ECS components attached to every grid cell.
package components

import "github.com/go-gl/mathgl/mgl32"

// CellState is the per-cell ambient animation state.
type CellState uint8

const (
	StateIdle  CellState = iota // drifting back to rest
	StateAlive                  // driven by the active alive policy
)

// String returns the display name for a CellState.
func (s CellState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAlive:
		return "Alive"
	default:
		return "Unknown"
	}
}

// Governor records which behavior wrote a cell's target on the last frame.
// Exactly one governor is recorded per cell per frame.
type Governor uint8

const (
	GovernorNone Governor = iota // not yet updated
	GovernorIdle
	GovernorRepel
	GovernorAlive
)

// String returns the display name for a Governor.
func (g Governor) String() string {
	switch g {
	case GovernorIdle:
		return "Idle"
	case GovernorRepel:
		return "Repel"
	case GovernorAlive:
		return "Alive"
	default:
		return "None"
	}
}

// Cell holds the immutable identity of one grid cell. It is written once at spawn.
type Cell struct {
	Index      [3]int     // lattice coordinate, each in [0, segments)
	Rest       mgl32.Vec3 // rest position in the grid's local frame
	Seed       mgl32.Vec3 // per-cell random seed, each axis in [-1, 1]
	IsFace     bool       // lies on the outer boundary along some axis
	FaceNormal mgl32.Vec3 // outward unit normal of the owning face, zero for interior cells
	Variation  int        // palette index, clamped at assignment
}

// Motion holds the render-visible position of a cell.
type Motion struct {
	Current  mgl32.Vec3
	Target   mgl32.Vec3
	Governor Governor
}

// Displacement returns the distance of the current position from rest.
func (m *Motion) Displacement(rest mgl32.Vec3) float32 {
	return m.Current.Sub(rest).Len()
}

// Alive holds the ambient animation state of a cell. Duration and the escape parameters
// are re-rolled on every activation.
type Alive struct {
	State          CellState
	Elapsed        float32
	Duration       float32
	EscapeSpeed    float32
	Struggle       float32
	EscapeDistance float32
}

// Reset abandons any in-progress activation.
func (a *Alive) Reset() {
	*a = Alive{}
}
