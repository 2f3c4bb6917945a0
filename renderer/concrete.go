// Package renderer draws the scene with raylib: the lit concrete cells, the room box and
// the debug markers.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/concrete/shading"
)

// CellDraw is one cell instance: its model transform and palette index.
type CellDraw struct {
	Transform mgl32.Mat4
	Variation int
}

// ConcreteRenderer draws cell cubes with the composed concrete program. Uniform values
// come from a persistent table; only slots that changed are uploaded.
type ConcreteRenderer struct {
	program  shading.Program
	uniforms *shading.UniformTable
	cellSize float32

	shader   rl.Shader
	material rl.Material
	cube     rl.Mesh
	locs     map[string]int32

	initialized bool
}

// NewConcreteRenderer creates a renderer for the program. Init must run after the raylib
// window exists.
func NewConcreteRenderer(program shading.Program, uniforms *shading.UniformTable, cellSize float32) *ConcreteRenderer {
	return &ConcreteRenderer{
		program:  program,
		uniforms: uniforms,
		cellSize: cellSize,
	}
}

// Init compiles the program, resolves uniform locations and builds the cell mesh.
func (c *ConcreteRenderer) Init() error {
	if c.initialized {
		return nil
	}

	c.shader = rl.LoadShaderFromMemory(c.program.Vertex, c.program.Fragment)
	if c.shader.ID == 0 {
		return fmt.Errorf("compiling concrete program: shader id is 0")
	}

	c.locs = make(map[string]int32, len(c.program.Uniforms))
	for _, u := range c.program.Uniforms {
		c.locs[u.Name] = rl.GetShaderLocation(c.shader, u.Name)
	}

	c.material = rl.LoadMaterialDefault()
	c.material.Shader = c.shader
	c.cube = rl.GenMeshCube(c.cellSize, c.cellSize, c.cellSize)

	// First upload sends every slot.
	c.uniforms.Each(c.upload)
	c.initialized = true
	return nil
}

// Locations returns the resolved uniform locations; -1 marks a uniform the driver
// optimized out.
func (c *ConcreteRenderer) Locations() map[string]int32 {
	return c.locs
}

// Draw renders every cell. Must be called inside a 3D mode block.
func (c *ConcreteRenderer) Draw(cells []CellDraw) {
	if !c.initialized {
		return
	}
	c.uniforms.Flush(c.upload)
	for _, cell := range cells {
		c.uniforms.SetFloat(shading.UniformVariation, float32(cell.Variation))
		c.uniforms.Flush(c.upload)
		rl.DrawMesh(c.cube, c.material, toMatrix(cell.Transform))
	}
}

func (c *ConcreteRenderer) upload(u *shading.Uniform) {
	loc, ok := c.locs[u.Name]
	if !ok || loc < 0 {
		return
	}
	rl.SetShaderValueV(c.shader, loc, u.Values, uniformType(u.Kind), int32(u.Count))
}

func uniformType(k shading.UniformKind) rl.ShaderUniformDataType {
	switch k {
	case shading.UniformVec2:
		return rl.ShaderUniformVec2
	case shading.UniformVec3:
		return rl.ShaderUniformVec3
	default:
		return rl.ShaderUniformFloat
	}
}

// Unload frees the program, material and mesh.
func (c *ConcreteRenderer) Unload() {
	if !c.initialized {
		return
	}
	// UnloadMaterial also unloads the non-default shader it holds.
	rl.UnloadMaterial(c.material)
	rl.UnloadMesh(&c.cube)
	c.initialized = false
}
