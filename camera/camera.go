// Package camera provides the perspective camera rig: scroll zoom of the grid group,
// pointer parallax, projection and pointer rays.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/config"
)

// Rig is the camera and the grid group's depth.
// The camera sits at a fixed point on +Z; zoom moves the grid group along -Z instead.
type Rig struct {
	// Zoom: distance of the grid group from the origin along -Z
	TargetDistance float32
	Distance       float32

	// Zoom constraints
	MinDistance, MaxDistance float32

	// Parallax rotation (X pitch, Y yaw) in radians
	TargetRotation mgl32.Vec2
	Rotation       mgl32.Vec2

	// Position is the camera location in world coordinates
	Position mgl32.Vec3

	// Projection
	FovY      float32 // degrees
	Near, Far float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	zoomSpeed      float32
	nearThreshold  float32
	nearMultiplier float32
	farMultiplier  float32
	zoomSmoothing  float32

	parallaxStrength  float32
	parallaxSmoothing float32
}

// New creates a rig from configuration with the group at its initial distance.
func New(cfg *config.Config, viewportW, viewportH float32) *Rig {
	z := cfg.Zoom
	return &Rig{
		TargetDistance:    float32(z.Initial),
		Distance:          float32(z.Initial),
		MinDistance:       float32(z.MinDistance),
		MaxDistance:       float32(z.MaxDistance),
		Position:          mgl32.Vec3{0, 0, float32(cfg.Screen.CameraZ)},
		FovY:              float32(cfg.Screen.FovY),
		Near:              float32(cfg.Screen.Near),
		Far:               float32(cfg.Screen.Far),
		ViewportW:         viewportW,
		ViewportH:         viewportH,
		zoomSpeed:         float32(z.Speed),
		nearThreshold:     float32(z.NearThreshold),
		nearMultiplier:    float32(z.NearMultiplier),
		farMultiplier:     float32(z.FarMultiplier),
		zoomSmoothing:     float32(z.Smoothing),
		parallaxStrength:  float32(cfg.Parallax.Strength),
		parallaxSmoothing: float32(cfg.Parallax.Smoothing),
	}
}

// Wheel applies one scroll event. Only the sign of deltaY matters; positive moves the
// group away. Steps are smaller very close to the camera so zoom cannot overshoot.
func (r *Rig) Wheel(deltaY float32) {
	var delta float32
	switch {
	case deltaY > 0:
		delta = 1
	case deltaY < 0:
		delta = -1
	default:
		return
	}

	mult := r.farMultiplier
	if r.TargetDistance < r.nearThreshold {
		mult = r.nearMultiplier
	}
	r.SetTargetDistance(r.TargetDistance + delta*r.zoomSpeed*mult)
}

// SetTargetDistance sets the zoom target, clamped to min/max.
func (r *Rig) SetTargetDistance(d float32) {
	r.TargetDistance = clamp(d, r.MinDistance, r.MaxDistance)
}

// Pointer sets the parallax target from a pointer position in NDC.
func (r *Rig) Pointer(ndc mgl32.Vec2) {
	r.TargetRotation = mgl32.Vec2{
		-ndc[1] * r.parallaxStrength,
		ndc[0] * r.parallaxStrength,
	}
}

// Step smooths the zoom distance and parallax rotation toward their targets.
func (r *Rig) Step() {
	r.Distance += (r.TargetDistance - r.Distance) * r.zoomSmoothing
	r.Distance = clamp(r.Distance, r.MinDistance, r.MaxDistance)
	r.Rotation = r.Rotation.Add(r.TargetRotation.Sub(r.Rotation).Mul(r.parallaxSmoothing))
}

// Resize updates viewport dimensions.
func (r *Rig) Resize(viewportW, viewportH float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	r.ViewportW = viewportW
	r.ViewportH = viewportH
}

// Aspect returns the viewport aspect ratio.
func (r *Rig) Aspect() float32 {
	if r.ViewportH == 0 {
		return 1
	}
	return r.ViewportW / r.ViewportH
}

// ToNDC converts pixel coordinates to normalized device coordinates in [-1, 1]
// with Y pointing up.
func (r *Rig) ToNDC(px, py float32) mgl32.Vec2 {
	return mgl32.Vec2{
		px/r.ViewportW*2 - 1,
		-(py/r.ViewportH)*2 + 1,
	}
}

// Orientation returns the camera rotation matrix (X then Y, intrinsic).
func (r *Rig) Orientation() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(r.Rotation[0]).Mul4(mgl32.HomogRotate3DY(r.Rotation[1]))
}

// Forward returns the unit view direction.
func (r *Rig) Forward() mgl32.Vec3 {
	return r.Orientation().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}

// Up returns the camera up vector.
func (r *Rig) Up() mgl32.Vec3 {
	return r.Orientation().Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
}

// Target returns a point one unit in front of the camera.
func (r *Rig) Target() mgl32.Vec3 {
	return r.Position.Add(r.Forward())
}

// View returns the world-to-camera matrix.
func (r *Rig) View() mgl32.Mat4 {
	return mgl32.LookAtV(r.Position, r.Target(), r.Up())
}

// Projection returns the perspective projection matrix.
func (r *Rig) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(r.FovY), r.Aspect(), r.Near, r.Far)
}

// Ray returns the world-space origin and unit direction of the ray through an NDC point.
func (r *Rig) Ray(ndc mgl32.Vec2) (origin, dir mgl32.Vec3) {
	inv := r.Projection().Mul4(r.View()).Inv()

	near := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1, 1})
	n := near.Vec3().Mul(1 / near[3])
	f := far.Vec3().Mul(1 / far[3])

	return r.Position, f.Sub(n).Normalize()
}

// GroupMatrix returns the local-to-world transform of the grid group: its spin
// (X then Y) followed by the zoom translation.
func (r *Rig) GroupMatrix(rotX, rotY float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -r.Distance).
		Mul4(mgl32.HomogRotate3DX(rotX)).
		Mul4(mgl32.HomogRotate3DY(rotY))
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
