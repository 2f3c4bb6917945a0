package shading

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDeclaresUniforms(t *testing.T) {
	prog, err := Compose(ProgramOptions{Palette: Palette(24), TextureMode: CoordWorld, MaxLights: 4})
	require.NoError(t, err)

	assert.Contains(t, prog.Vertex, "#version 330")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(prog.Fragment), "#version 330"))
	for _, u := range prog.Uniforms {
		assert.Contains(t, prog.Fragment, " "+u.Name, "uniform %s missing from fragment source", u.Name)
	}
	assert.Contains(t, prog.Fragment, "const int VARIATIONS = 24;")
	assert.Contains(t, prog.Fragment, "const int MAX_LIGHTS = 4;")
	assert.NotContains(t, prog.Fragment, "{{")
}

func TestComposePaletteMatchesCPU(t *testing.T) {
	prog, err := Compose(ProgramOptions{Palette: Palette(6), MaxLights: 2})
	require.NoError(t, err)

	assert.Contains(t, prog.Fragment, "const float BASE[VARIATIONS] = float[VARIATIONS](0.067, 0.045, 0.058, 0.042, 0.049, 0.054);")
	assert.Contains(t, prog.Fragment, "const float PHASE_COS[VARIATIONS] = float[VARIATIONS](0.0, 1.0, 0.0, 1.0, 0.0, 1.0);")
	assert.Contains(t, prog.Fragment, "const float SCALE[VARIATIONS] = float[VARIATIONS](2.0, 3.0, 2.5, 3.5, 4.0, 2.8);")
}

func TestComposeTextureModes(t *testing.T) {
	world, err := Compose(ProgramOptions{Palette: Palette(6), TextureMode: CoordWorld, MaxLights: 1})
	require.NoError(t, err)
	uv, err := Compose(ProgramOptions{Palette: Palette(6), TextureMode: CoordUV, MaxLights: 1})
	require.NoError(t, err)

	assert.Contains(t, world.Fragment, "worldPos.xy / cubeSize * textureScale")
	assert.NotContains(t, world.Fragment, "uv * textureScale")
	assert.Contains(t, uv.Fragment, "uv * textureScale")
}

func TestComposeRejectsBadOptions(t *testing.T) {
	_, err := Compose(ProgramOptions{MaxLights: 2})
	assert.Error(t, err)

	_, err = Compose(ProgramOptions{Palette: Palette(6), MaxLights: 0})
	assert.Error(t, err)

	_, err = Compose(ProgramOptions{Palette: Palette(6), TextureMode: "triplanar", MaxLights: 2})
	assert.Error(t, err)
}

func TestGLSLFloat(t *testing.T) {
	assert.Equal(t, "2.0", glslFloat(2))
	assert.Equal(t, "0.067", glslFloat(0.067))
	assert.Equal(t, "-1.5", glslFloat(-1.5))
}

func TestUniformTableInPlace(t *testing.T) {
	prog, err := Compose(ProgramOptions{Palette: Palette(24), MaxLights: 4})
	require.NoError(t, err)
	table := NewUniformTable(prog.Uniforms)
	assert.Equal(t, len(prog.Uniforms), table.Len())

	timeBuf := table.Get(UniformTime)
	lights := table.Get(UniformLightPos)
	require.Len(t, lights, 12)

	for i := 0; i < 100; i++ {
		table.SetFloat(UniformTime, float32(i)*0.01)
		table.SetVec3At(UniformLightPos, i%4, mgl32.Vec3{float32(i), 1, 2})
	}

	// Same backing arrays after many writes.
	assert.Same(t, &timeBuf[0], &table.Get(UniformTime)[0])
	assert.Same(t, &lights[0], &table.Get(UniformLightPos)[0])
	assert.InDelta(t, 0.99, timeBuf[0], 1e-6)
	assert.Equal(t, []float32{99, 1, 2}, lights[9:12])
}

func TestUniformTableFlushOnlyDirty(t *testing.T) {
	table := NewUniformTable([]UniformSpec{
		{Name: "a", Kind: UniformFloat, Count: 1},
		{Name: "b", Kind: UniformVec2, Count: 1},
	})

	var flushed []string
	collect := func(u *Uniform) { flushed = append(flushed, u.Name) }

	// Everything is dirty after creation.
	table.Flush(collect)
	assert.Equal(t, []string{"a", "b"}, flushed)

	flushed = nil
	table.Flush(collect)
	assert.Empty(t, flushed)

	table.SetVec2("b", mgl32.Vec2{1, 2})
	table.SetFloat("a", 0) // unchanged value stays clean
	table.SetFloat("missing", 3)
	table.Flush(collect)
	assert.Equal(t, []string{"b"}, flushed)
}

func TestUniformTableIgnoresBadWrites(t *testing.T) {
	table := NewUniformTable([]UniformSpec{{Name: "arr", Kind: UniformVec3, Count: 2}})
	table.SetVec3At("arr", 2, mgl32.Vec3{1, 1, 1})
	table.SetVec3At("arr", -1, mgl32.Vec3{1, 1, 1})
	table.SetFloat("arr", 5)
	assert.Equal(t, make([]float32, 6), table.Get("arr"))
	assert.False(t, table.Has("nope"))
	assert.Nil(t, table.Get("nope"))
}
