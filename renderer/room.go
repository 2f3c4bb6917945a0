package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// RoomRenderer draws the large dark box the grid floats in. The camera is inside it, so
// back faces are drawn with culling disabled.
type RoomRenderer struct {
	size     float32
	color    rl.Color
	mesh     rl.Mesh
	material rl.Material

	initialized bool
}

// NewRoomRenderer creates a room of the given edge length.
func NewRoomRenderer(size float32) *RoomRenderer {
	return &RoomRenderer{
		size:  size,
		color: rl.Color{R: 6, G: 6, B: 8, A: 255},
	}
}

// Init builds the room mesh (must be called after raylib window is created).
func (r *RoomRenderer) Init() {
	if r.initialized {
		return
	}
	r.mesh = rl.GenMeshCube(r.size, r.size, r.size)
	r.material = rl.LoadMaterialDefault()
	r.material.Maps.Color = r.color
	r.initialized = true
}

// Draw renders the room rotated by XYZ Euler angles. Must be called inside a 3D mode block.
func (r *RoomRenderer) Draw(rotation mgl32.Vec3) {
	if !r.initialized {
		r.Init()
	}
	m := mgl32.HomogRotate3DX(rotation[0]).
		Mul4(mgl32.HomogRotate3DY(rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(rotation[2]))

	rl.DisableBackfaceCulling()
	rl.DrawMesh(r.mesh, r.material, toMatrix(m))
	rl.EnableBackfaceCulling()
}

// Unload frees resources.
func (r *RoomRenderer) Unload() {
	if r.initialized {
		rl.UnloadMaterial(r.material)
		rl.UnloadMesh(&r.mesh)
		r.initialized = false
	}
}
