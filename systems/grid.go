package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/concrete/components"
	"github.com/pthm-cable/concrete/shading"
)

// CellLayout is the static placement of one cell, independent of any random draw.
type CellLayout struct {
	Index      [3]int
	Rest       mgl32.Vec3
	IsFace     bool
	FaceNormal mgl32.Vec3
}

// Layout decomposes a cube of edge cubeSize into segments^3 cells centered on the origin.
// Cells are ordered x-major, then y, then z.
func Layout(segments int, cubeSize float32) []CellLayout {
	if segments < 1 {
		return nil
	}
	cellSize := cubeSize / float32(segments)
	half := float32(segments) / 2

	out := make([]CellLayout, 0, segments*segments*segments)
	for x := 0; x < segments; x++ {
		for y := 0; y < segments; y++ {
			for z := 0; z < segments; z++ {
				idx := [3]int{x, y, z}
				normal, face := faceNormal(idx, segments)
				out = append(out, CellLayout{
					Index: idx,
					Rest: mgl32.Vec3{
						(float32(x) - half + 0.5) * cellSize,
						(float32(y) - half + 0.5) * cellSize,
						(float32(z) - half + 0.5) * cellSize,
					},
					IsFace:     face,
					FaceNormal: normal,
				})
			}
		}
	}
	return out
}

// faceNormal returns the outward normal of the boundary a cell lies on. Edge and corner
// cells belong to the first boundary found in x, y, z order.
func faceNormal(idx [3]int, segments int) (mgl32.Vec3, bool) {
	for axis := 0; axis < 3; axis++ {
		var n mgl32.Vec3
		switch idx[axis] {
		case 0:
			n[axis] = -1
			return n, true
		case segments - 1:
			n[axis] = 1
			return n, true
		}
	}
	return mgl32.Vec3{}, false
}

// Grid owns the cell entities and the lookups used by the per-frame systems.
type Grid struct {
	Segments int
	CubeSize float32
	CellSize float32
	Entities []ecs.Entity // layout order

	mapper *ecs.Map3[components.Cell, components.Motion, components.Alive]
	filter *ecs.Filter2[components.Cell, components.Motion]
	cells  *ecs.Map1[components.Cell]
	motion *ecs.Map1[components.Motion]
	alive  *ecs.Map1[components.Alive]

	centers []mgl32.Vec3
	order   []ecs.Entity
}

// SpawnGrid creates one entity per cell. Each cell draws its seed and variation index from
// rng in layout order, so a fixed seed reproduces the same grid.
func SpawnGrid(world *ecs.World, segments int, cubeSize float32, variations int, rng *rand.Rand) *Grid {
	layout := Layout(segments, cubeSize)
	g := &Grid{
		Segments: segments,
		CubeSize: cubeSize,
		CellSize: cubeSize / float32(segments),
		Entities: make([]ecs.Entity, 0, len(layout)),
		mapper:   ecs.NewMap3[components.Cell, components.Motion, components.Alive](world),
		filter:   ecs.NewFilter2[components.Cell, components.Motion](world),
		cells:    ecs.NewMap1[components.Cell](world),
		motion:   ecs.NewMap1[components.Motion](world),
		alive:    ecs.NewMap1[components.Alive](world),
		centers:  make([]mgl32.Vec3, 0, len(layout)),
		order:    make([]ecs.Entity, 0, len(layout)),
	}

	for _, l := range layout {
		cell := components.Cell{
			Index:      l.Index,
			Rest:       l.Rest,
			IsFace:     l.IsFace,
			FaceNormal: l.FaceNormal,
			Seed: mgl32.Vec3{
				rng.Float32()*2 - 1,
				rng.Float32()*2 - 1,
				rng.Float32()*2 - 1,
			},
			Variation: shading.ClampVariation(rng.Intn(max(variations, 1)), variations),
		}
		motion := components.Motion{Current: l.Rest, Target: l.Rest}
		e := g.mapper.NewEntity(&cell, &motion, &components.Alive{})
		g.Entities = append(g.Entities, e)
	}
	return g
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Entities)
}

// Cell returns the immutable cell data of an entity.
func (g *Grid) Cell(e ecs.Entity) *components.Cell {
	return g.cells.Get(e)
}

// Motion returns the motion state of an entity.
func (g *Grid) Motion(e ecs.Entity) *components.Motion {
	return g.motion.Get(e)
}

// Alive returns the ambient animation state of an entity.
func (g *Grid) Alive(e ecs.Entity) *components.Alive {
	return g.alive.Get(e)
}

// Raycast intersects a ray given in the grid's local frame with every cell's box at its
// current position and returns the nearest hit.
func (g *Grid) Raycast(local Ray) (Hit, bool) {
	g.centers = g.centers[:0]
	g.order = g.order[:0]

	query := g.filter.Query()
	for query.Next() {
		_, motion := query.Get()
		g.centers = append(g.centers, motion.Current)
		g.order = append(g.order, query.Entity())
	}

	hit, ok := IntersectCells(local, g.centers, g.CellSize*0.5)
	if ok {
		hit.Entity = g.order[hit.Index]
	}
	return hit, ok
}

// Displacements appends every cell's distance from rest to dst.
func (g *Grid) Displacements(dst []float64) []float64 {
	query := g.filter.Query()
	for query.Next() {
		cell, motion := query.Get()
		dst = append(dst, float64(motion.Displacement(cell.Rest)))
	}
	return dst
}

// ForEach visits every cell in storage order.
func (g *Grid) ForEach(fn func(cell *components.Cell, motion *components.Motion)) {
	query := g.filter.Query()
	for query.Next() {
		cell, motion := query.Get()
		fn(cell, motion)
	}
}
