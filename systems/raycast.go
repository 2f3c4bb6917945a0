package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform maps the ray through an affine matrix. The direction is renormalized so hit
// distances stay comparable for rigid transforms.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	o := m.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := m.Mul4x1(r.Dir.Vec4(0)).Vec3()
	if l := d.Len(); l > 0 {
		d = d.Mul(1 / l)
	}
	return Ray{Origin: o, Dir: d}
}

// Hit is the nearest intersection of a ray with the cell set.
type Hit struct {
	Entity   ecs.Entity
	Index    int        // index into the candidate slice
	Point    mgl32.Vec3 // in the frame the ray was given in
	Distance float32
}

// IntersectAABB returns the entry distance of the ray into the box, or the exit distance
// when the origin is inside. ok is false when the box is missed or lies behind the ray.
func IntersectAABB(r Ray, lo, hi mgl32.Vec3) (t float32, ok bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		if r.Dir[axis] == 0 {
			if r.Origin[axis] < lo[axis] || r.Origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[axis]
		t1 := (lo[axis] - r.Origin[axis]) * inv
		t2 := (hi[axis] - r.Origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// IntersectCells tests the ray against axis-aligned cubes of the given half extent centered
// on each point and returns the nearest hit. A miss is not an error.
func IntersectCells(r Ray, centers []mgl32.Vec3, half float32) (Hit, bool) {
	ext := mgl32.Vec3{half, half, half}
	best := Hit{Index: -1, Distance: float32(math.Inf(1))}

	for i, c := range centers {
		t, ok := IntersectAABB(r, c.Sub(ext), c.Add(ext))
		if ok && t < best.Distance {
			best.Index = i
			best.Distance = t
		}
	}

	if best.Index < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}
