package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/profiling"
)

const rayStep = float32(0.05)

// RayHit is the result of stepping a ray through the grid.
type RayHit struct {
	Hit      bool
	Cell     [3]int // first occupied cell, or the cell at max distance
	Prev     [3]int // last empty cell before Cell
	Material int8
	Distance float32
}

// RayTrace steps from origin along dir up to maxDist and stops at the
// first occupied cell.
func (g *Grid) RayTrace(origin, dir mgl32.Vec3, maxDist float32) RayHit {
	defer profiling.Track("world.RayTrace")()
	if dir.Len() == 0 {
		c := cellOf(origin)
		return RayHit{Cell: c, Prev: c, Material: g.Get(c[0], c[1], c[2])}
	}
	dir = dir.Normalize()

	g.mu.RLock()
	defer g.mu.RUnlock()

	prev := cellOf(origin)
	steps := int(maxDist / rayStep)
	for i := 0; i <= steps; i++ {
		dist := float32(i) * rayStep
		cell := cellOf(origin.Add(dir.Mul(dist)))
		if m := g.get(cell[0], cell[1], cell[2]); m != meshing.Empty {
			return RayHit{Hit: true, Cell: cell, Prev: prev, Material: m, Distance: dist}
		}
		prev = cell
	}
	return RayHit{Cell: prev, Prev: prev, Material: meshing.Empty, Distance: maxDist}
}

// RayTracePrev returns the center of the empty cell in front of the first
// hit, or of the cell at maxDist when nothing is hit.
func (g *Grid) RayTracePrev(origin, dir mgl32.Vec3, maxDist float32) mgl32.Vec3 {
	return center(g.RayTrace(origin, dir, maxDist).Prev)
}

// RayTraceLast returns the center of the first occupied cell, or of the
// cell at maxDist when nothing is hit.
func (g *Grid) RayTraceLast(origin, dir mgl32.Vec3, maxDist float32) mgl32.Vec3 {
	return center(g.RayTrace(origin, dir, maxDist).Cell)
}

// RayFill writes m into every empty cell the ray crosses, starting after
// the cell holding origin and stopping at the first occupied cell or at
// maxDist. It returns the number of cells written.
func (g *Grid) RayFill(origin, dir mgl32.Vec3, maxDist float32, m int8) int {
	defer profiling.Track("world.RayFill")()
	if dir.Len() == 0 || m == meshing.Empty {
		return 0
	}
	dir = dir.Normalize()

	g.mu.Lock()
	defer g.mu.Unlock()

	prev := cellOf(origin)
	n := 0
	steps := int(maxDist / rayStep)
	for i := 1; i <= steps; i++ {
		cell := cellOf(origin.Add(dir.Mul(float32(i) * rayStep)))
		if cell == prev {
			continue
		}
		if g.get(cell[0], cell[1], cell[2]) != meshing.Empty {
			break
		}
		if g.set(cell[0], cell[1], cell[2], m) {
			n++
		}
		prev = cell
	}
	return n
}

func center(c [3]int) mgl32.Vec3 {
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}
