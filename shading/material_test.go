package shading

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteSizes(t *testing.T) {
	p24 := Palette(24)
	p6 := Palette(6)
	require.Len(t, p24, 24)
	require.Len(t, p6, 6)
	assert.Equal(t, p24[:6], p6)

	// Callers get a copy.
	p6[0].Base = 1
	assert.NotEqual(t, float32(1), Palette(6)[0].Base)
}

func TestClampVariation(t *testing.T) {
	assert.Equal(t, 0, ClampVariation(-3, 24))
	assert.Equal(t, 5, ClampVariation(5, 24))
	assert.Equal(t, 5, ClampVariation(30, 6))
	assert.Equal(t, 0, ClampVariation(2, 0))
}

func TestShadeDeterministic(t *testing.T) {
	m := NewMaterial(Palette(24), CoordWorld, 12, 8)
	s := Sample{Variation: 7, Coord: mgl32.Vec2{1.2, 3.4}, N: 0.4, Imp: 0.6, Normal: mgl32.Vec3{0, 0, 1}}
	ptr := mgl32.Vec2{0.1, 0.2}

	a := m.Shade(s, 2.5, ptr)
	b := m.Shade(s, 2.5, ptr)
	assert.Equal(t, a, b)
	assert.Equal(t, a[0], a[1])
	assert.Equal(t, a[1], a[2])
}

func TestShadeVariationsDiffer(t *testing.T) {
	m := NewMaterial(Palette(24), CoordWorld, 12, 8)
	s := Sample{Coord: mgl32.Vec2{1, 1}, N: 0.5, Imp: 0.5, Normal: mgl32.Vec3{0, 0, 1}}

	seen := make(map[float32]bool)
	for i := 0; i < m.Variations(); i++ {
		s.Variation = i
		seen[m.Shade(s, 0, mgl32.Vec2{})[0]] = true
	}
	assert.Greater(t, len(seen), 12)
}

func TestShadeUsesImperfectionStrength(t *testing.T) {
	m := NewMaterial(Palette(24), CoordWorld, 12, 8)
	s := Sample{Variation: 1, Coord: mgl32.Vec2{2, 2}, N: 0.5, Normal: mgl32.Vec3{0, 0, 1}}

	s.Imp = 0
	lo := m.Shade(s, 0, mgl32.Vec2{})
	s.Imp = 1
	hi := m.Shade(s, 0, mgl32.Vec2{})

	assert.InDelta(t, Palette(24)[1].Imperfection, hi[0]-lo[0], 1e-5)
}

func TestEdgeDarken(t *testing.T) {
	c := mgl32.Vec3{0.5, 0.5, 0.5}

	facing := EdgeDarken(c, mgl32.Vec3{0, 0, 1})
	assert.Equal(t, c, facing)

	// Perpendicular normal darkens by 0.2 * 0.3.
	side := EdgeDarken(c, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0.5*(1-0.06), side[0], 1e-6)

	// Unnormalized input is normalized first.
	assert.Equal(t, facing, EdgeDarken(c, mgl32.Vec3{0, 0, -5}))

	// Zero normal counts as fully edge-on rather than producing NaN.
	zero := EdgeDarken(c, mgl32.Vec3{})
	assert.InDelta(t, side[0], zero[0], 1e-6)
}

func TestSurfaceWorldModeContinuousAcrossFaces(t *testing.T) {
	m := NewMaterial(Palette(24), CoordWorld, 12, 8)
	edge := mgl32.Vec3{6, 1.5, 6}

	// The same world point on the +X and +Z faces has different UVs but the same coordinate.
	c1, n1, i1 := m.Surface(edge, mgl32.Vec2{0, 0.3}, 1, mgl32.Vec2{})
	c2, n2, i2 := m.Surface(edge, mgl32.Vec2{1, 0.3}, 1, mgl32.Vec2{})
	assert.Equal(t, c1, c2)
	assert.Equal(t, n1, n2)
	assert.Equal(t, i1, i2)
}

func TestSurfaceUVModeDependsOnUV(t *testing.T) {
	m := NewMaterial(Palette(24), CoordUV, 12, 8)
	p := mgl32.Vec3{6, 1.5, 6}

	c1, _, _ := m.Surface(p, mgl32.Vec2{0, 0.3}, 1, mgl32.Vec2{})
	c2, _, _ := m.Surface(p, mgl32.Vec2{1, 0.3}, 1, mgl32.Vec2{})
	assert.NotEqual(t, c1, c2)
}
