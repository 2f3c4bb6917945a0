package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture coordinate sources.
const (
	CoordWorld = "world"
	CoordUV    = "uv"
)

const (
	surfaceFlow       = 0.3
	variationFlow     = 0.2
	imperfectionScale = 4
	layerDrift        = 0.1
	edgeStrength      = 0.3
	edgeDarkening     = 0.2
)

// Sample is the per-fragment input to Material.Shade.
type Sample struct {
	Variation int        // pre-clamped palette index
	Coord     mgl32.Vec2 // flowed texture coordinate
	N         float32    // coarse fbm at Coord
	Imp       float32    // imperfection fbm
	Normal    mgl32.Vec3 // view-space normal
}

// Material evaluates the concrete shader on the CPU. It holds the palette and texture
// settings and is otherwise stateless: Shade is a pure function of its inputs.
type Material struct {
	palette   []Variation
	coordMode string
	cubeSize  float32
	texScale  float32
}

// NewMaterial creates a material over the given palette.
func NewMaterial(palette []Variation, coordMode string, cubeSize, texScale float32) *Material {
	return &Material{
		palette:   palette,
		coordMode: coordMode,
		cubeSize:  cubeSize,
		texScale:  texScale,
	}
}

// Variations returns the palette size.
func (m *Material) Variations() int {
	return len(m.palette)
}

// Palette returns the material's palette.
func (m *Material) Palette() []Variation {
	return m.palette
}

// Surface computes the shared texture coordinate and the two fbm terms for a fragment.
// In world mode the coordinate is derived from the fragment's world XY so the pattern is
// continuous across faces; in uv mode each face samples its own UV square.
func (m *Material) Surface(world mgl32.Vec3, uv mgl32.Vec2, t float32, pointer mgl32.Vec2) (coord mgl32.Vec2, n, imp float32) {
	var st mgl32.Vec2
	if m.coordMode == CoordUV {
		st = uv.Mul(m.texScale)
	} else {
		st = mgl32.Vec2{world[0], world[1]}.Mul(m.texScale / m.cubeSize)
	}

	flow := FlowField(st, t, pointer).Mul(surfaceFlow)
	st = st.Add(flow)

	n = FBM(st, t, pointer)
	imp = FBM(st.Mul(imperfectionScale).Add(flow), t, pointer)
	return st, n, imp
}

// Shade returns the linear RGB concrete color for one fragment. The index in s.Variation
// must already be within the palette.
func (m *Material) Shade(s Sample, t float32, pointer mgl32.Vec2) mgl32.Vec3 {
	v := m.palette[s.Variation]

	st := s.Coord.Add(FlowField(s.Coord, t, pointer).Mul(variationFlow))

	var drift float32
	if v.PhaseCos {
		drift = float32(math.Cos(float64(t*v.PhaseFreq))) * layerDrift
	} else {
		drift = float32(math.Sin(float64(t*v.PhaseFreq))) * layerDrift
	}

	pattern := s.N*v.Weight1 + FBM(addScalar(st.Mul(v.Scale), drift), t, pointer)*v.Weight2
	grey := v.Base + (pattern - patternOffset) + s.Imp*v.Imperfection

	return EdgeDarken(mgl32.Vec3{grey, grey, grey}, s.Normal)
}

// EdgeDarken darkens a color as the view-space normal turns away from the viewer,
// by at most edgeDarkening*edgeStrength when the normal is perpendicular to +Z.
func EdgeDarken(color, normal mgl32.Vec3) mgl32.Vec3 {
	var facing float32
	if l := normal.Len(); l > 0 {
		facing = min(float32(math.Abs(float64(normal[2]/l))), 1)
	}
	edge := float32(math.Pow(float64(1-facing), 0.5)) * edgeStrength
	return color.Mul(1 - edgeDarkening*edge)
}
