package systems

import "github.com/go-gl/mathgl/mgl32"

// lerpVec3 moves a toward b by fraction t.
func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
