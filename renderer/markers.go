package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawLightMarkers draws a small sphere at each light, brighter with intensity.
// Must be called inside a 3D mode block.
func DrawLightMarkers(positions []mgl32.Vec3, intensities []float32) {
	for i, p := range positions {
		a := uint8(200)
		if i < len(intensities) {
			a = uint8(min(max(intensities[i], 0)*120, 255))
		}
		rl.DrawSphere(toVector3(p), 0.3, rl.Color{R: 255, G: 240, B: 200, A: a})
	}
}

// DrawFocusMarker draws the repel focus point and its radius, both given in world space.
func DrawFocusMarker(focus mgl32.Vec3, radius float32) {
	center := toVector3(focus)
	rl.DrawSphere(center, 0.1, rl.Red)
	rl.DrawSphereWires(center, radius, 8, 12, rl.Color{R: 255, G: 80, B: 80, A: 60})
}

// Camera3D converts a view into a raylib camera.
func Camera3D(position, target, up mgl32.Vec3, fovY float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(position),
		Target:     toVector3(target),
		Up:         toVector3(up),
		Fovy:       fovY,
		Projection: rl.CameraPerspective,
	}
}
