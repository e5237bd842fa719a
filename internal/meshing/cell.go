package meshing

import "github.com/go-gl/mathgl/mgl32"

// Empty is the material of an unoccupied cell. Chunk sources filter these
// out; they never reach the compiler.
const Empty int8 = -1

// Cell is one occupied voxel: its center and atlas material id.
type Cell struct {
	Position mgl32.Vec3
	Material int8
}

// CellBuffer is the flat cell list a single compile pass works on. It is
// cleared and refilled on every recompilation; its order fixes the output
// offsets of each cell.
type CellBuffer struct {
	cells []Cell
}

// NewCellBuffer returns a buffer with room for capacity cells.
func NewCellBuffer(capacity int) *CellBuffer {
	return &CellBuffer{cells: make([]Cell, 0, capacity)}
}

// Reset empties the buffer, keeping its capacity.
func (b *CellBuffer) Reset() {
	b.cells = b.cells[:0]
}

// Append adds cells in order.
func (b *CellBuffer) Append(cells ...Cell) {
	b.cells = append(b.cells, cells...)
}

func (b *CellBuffer) Len() int {
	return len(b.cells)
}

// Cells returns the buffered cells. The slice is only valid until the next
// Reset or Append.
func (b *CellBuffer) Cells() []Cell {
	return b.cells
}
