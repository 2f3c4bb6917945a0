// Package shading implements the procedural concrete material: a hash-based value noise
// kernel with a pointer-coupled flow field, the variation palette, and the statically
// composed GLSL program that evaluates the same functions on the GPU.
//
// The CPU functions mirror the GLSL source line for line. They exist for tests, the
// material preview tool, and anything that needs to know what a fragment will look like
// without a GL context.
package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Octaves is the number of value noise octaves summed by FBM.
const Octaves = 5

// Flow field constants shared with glsl/noise.glsl.
const (
	flowWeight1      = 0.3
	flowWeight2      = 0.2
	flowPointerPull  = 0.02
	flowTimeForward  = 0.1
	flowTimeBackward = 0.15
	flowFreq2        = 1.5
	fbmFlowScale     = 0.5
	fbmOctaveShift   = 0.1
)

// largestBelowOne keeps Hash2 inside [0,1) after float32 rounding.
var largestBelowOne = math.Nextafter32(1, 0)

// Hash2 returns a deterministic pseudo-random scalar in [0,1) for a 2D coordinate.
// It is the classic fract(sin(dot(p, k)) * 43758.5453) hash and uses no external entropy.
func Hash2(p mgl32.Vec2) float32 {
	d := float64(p[0])*12.9898 + float64(p[1])*78.233
	v := math.Sin(d) * 43758.5453123
	f := float32(v - math.Floor(v))
	if f >= 1 {
		return largestBelowOne
	}
	return f
}

// ValueNoise bilinearly interpolates Hash2 at the four lattice corners around p using a
// smoothstep easing of the fractional part. The result is C1-continuous across lattice
// boundaries and lies in [0,1].
func ValueNoise(p mgl32.Vec2) float32 {
	ix := float32(math.Floor(float64(p[0])))
	iy := float32(math.Floor(float64(p[1])))
	fx := p[0] - ix
	fy := p[1] - iy

	a := Hash2(mgl32.Vec2{ix, iy})
	b := Hash2(mgl32.Vec2{ix + 1, iy})
	c := Hash2(mgl32.Vec2{ix, iy + 1})
	d := Hash2(mgl32.Vec2{ix + 1, iy + 1})

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)

	return mix(a, b, ux) + (c-a)*uy*(1-ux) + (d-b)*ux*uy
}

// FlowField combines two noise-driven rotation angles, one advancing forward in time and
// one backward, into a flow vector, then adds a weak pull toward the pointer.
func FlowField(p mgl32.Vec2, t float32, pointer mgl32.Vec2) mgl32.Vec2 {
	angle1 := ValueNoise(addScalar(p, t*flowTimeForward)) * 2 * math.Pi
	angle2 := ValueNoise(addScalar(p.Mul(flowFreq2), -t*flowTimeBackward)) * 2 * math.Pi

	flow1 := unitVec(angle1).Mul(flowWeight1)
	flow2 := unitVec(angle2).Mul(flowWeight2)
	pull := pointer.Sub(p).Mul(flowPointerPull)

	return flow1.Add(flow2).Add(pull)
}

// FBM sums Octaves octaves of ValueNoise with halving amplitude and doubling frequency.
// Each octave's sample point is displaced by the flow field scaled by the octave index,
// which makes the texture drift over time.
func FBM(p mgl32.Vec2, t float32, pointer mgl32.Vec2) float32 {
	flow := FlowField(p.Mul(fbmFlowScale), t, pointer)

	var value float32
	amplitude := float32(0.5)
	st := p
	for i := 0; i < Octaves; i++ {
		flowed := st.Add(flow.Mul(float32(i) * fbmOctaveShift))
		value += amplitude * ValueNoise(flowed)
		st = st.Mul(2)
		amplitude *= 0.5
	}
	return value
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func addScalar(v mgl32.Vec2, s float32) mgl32.Vec2 {
	return mgl32.Vec2{v[0] + s, v[1] + s}
}

func unitVec(angle float32) mgl32.Vec2 {
	s, c := math.Sincos(float64(angle))
	return mgl32.Vec2{float32(c), float32(s)}
}
