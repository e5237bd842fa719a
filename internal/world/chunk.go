package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/meshing"
)

// ChunkKey identifies a chunk by its position in chunk units.
type ChunkKey struct {
	X, Y, Z int
}

// chunk is a dense size³ block of materials. The cell list handed to the
// compiler is cached and rebuilt only after an edit dirtied the chunk.
type chunk struct {
	key      ChunkKey
	size     int
	cells    []int8
	occupied int

	dirty bool
	cache []meshing.Cell
}

func newChunk(key ChunkKey, size int) *chunk {
	cells := make([]int8, size*size*size)
	for i := range cells {
		cells[i] = meshing.Empty
	}
	return &chunk{key: key, size: size, cells: cells, dirty: true}
}

// index converts local coordinates to a flat index (x major, z minor).
func (c *chunk) index(x, y, z int) int {
	return (x*c.size+y)*c.size + z
}

func (c *chunk) get(x, y, z int) int8 {
	return c.cells[c.index(x, y, z)]
}

// set stores m and reports whether the cell changed.
func (c *chunk) set(x, y, z int, m int8) bool {
	i := c.index(x, y, z)
	old := c.cells[i]
	if old == m {
		return false
	}
	switch {
	case old == meshing.Empty:
		c.occupied++
	case m == meshing.Empty:
		c.occupied--
	}
	c.cells[i] = m
	c.dirty = true
	return true
}

// cellList returns the occupied cells in world coordinates.
func (c *chunk) cellList() []meshing.Cell {
	if !c.dirty {
		return c.cache
	}
	c.cache = c.cache[:0]
	ox, oy, oz := c.key.X*c.size, c.key.Y*c.size, c.key.Z*c.size
	for x := range c.size {
		for y := range c.size {
			for z := range c.size {
				m := c.get(x, y, z)
				if m == meshing.Empty {
					continue
				}
				c.cache = append(c.cache, meshing.Cell{
					Position: mgl32.Vec3{float32(ox + x), float32(oy + y), float32(oz + z)},
					Material: m,
				})
			}
		}
	}
	c.dirty = false
	return c.cache
}
