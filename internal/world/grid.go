package world

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/profiling"
)

// Grid is an unbounded sparse voxel grid split into cubic chunks. It owns
// cell occupancy and answers the chunk, preview and ray queries the
// terrain pipeline consumes.
type Grid struct {
	mu       sync.RWMutex
	size     int
	radius   int
	chunks   map[ChunkKey]*chunk
	recent   ChunkKey
	modCount uint64
}

// NewGrid creates an empty grid of chunkSize³ chunks streamed within
// viewRadius chunks of the recent chunk.
func NewGrid(chunkSize, viewRadius int) *Grid {
	return &Grid{
		size:   max(chunkSize, 1),
		radius: max(viewRadius, 0),
		chunks: make(map[ChunkKey]*chunk),
	}
}

// ChunkSize returns the edge length of a chunk in cells.
func (g *Grid) ChunkSize() int {
	return g.size
}

// Snap rounds p to the center of the cell containing it.
func Snap(p mgl32.Vec3) mgl32.Vec3 {
	c := cellOf(p)
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}

// cellOf returns the integer cell containing p. Cells are unit cubes
// centered on integer coordinates.
func cellOf(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math32.Floor(p.X() + 0.5)),
		int(math32.Floor(p.Y() + 0.5)),
		int(math32.Floor(p.Z() + 0.5)),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func (g *Grid) keyOf(x, y, z int) ChunkKey {
	return ChunkKey{X: floorDiv(x, g.size), Y: floorDiv(y, g.size), Z: floorDiv(z, g.size)}
}

// ChunkKey returns the key of the chunk containing world position p.
func (g *Grid) ChunkKey(p mgl32.Vec3) ChunkKey {
	c := cellOf(p)
	return g.keyOf(c[0], c[1], c[2])
}

// Get returns the material at cell (x, y, z), or meshing.Empty.
func (g *Grid) Get(x, y, z int) int8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.get(x, y, z)
}

func (g *Grid) get(x, y, z int) int8 {
	ch := g.chunks[g.keyOf(x, y, z)]
	if ch == nil {
		return meshing.Empty
	}
	return ch.get(mod(x, g.size), mod(y, g.size), mod(z, g.size))
}

// Value returns the material of the cell containing p.
func (g *Grid) Value(p mgl32.Vec3) int8 {
	c := cellOf(p)
	return g.Get(c[0], c[1], c[2])
}

// Set stores material m at cell (x, y, z) and reports whether it changed.
// meshing.Empty clears the cell.
func (g *Grid) Set(x, y, z int, m int8) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.set(x, y, z, m)
}

func (g *Grid) set(x, y, z int, m int8) bool {
	key := g.keyOf(x, y, z)
	ch := g.chunks[key]
	if ch == nil {
		if m == meshing.Empty {
			return false
		}
		ch = newChunk(key, g.size)
		g.chunks[key] = ch
		g.modCount++
	}
	return ch.set(mod(x, g.size), mod(y, g.size), mod(z, g.size), m)
}

// Fill sets every cell of the inclusive box [lo, hi] to m and returns the
// number of changed cells.
func (g *Grid) Fill(lo, hi [3]int, m int8) int {
	defer profiling.Track("world.Fill")()
	g.mu.Lock()
	defer g.mu.Unlock()

	changed := 0
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if g.set(x, y, z, m) {
					changed++
				}
			}
		}
	}
	return changed
}

// SetGeometry writes a scale[0]×scale[1]×scale[2] box of material m whose
// corner is the cell containing p. The box extends along the sign of each
// offset component. It returns the number of changed cells.
func (g *Grid) SetGeometry(p mgl32.Vec3, scale, offset [3]int, m int8) int {
	base := cellOf(p)
	g.mu.Lock()
	defer g.mu.Unlock()

	changed := 0
	for i := range scale[0] {
		for j := range scale[1] {
			for k := range scale[2] {
				x := base[0] + i*sign(offset[0])
				y := base[1] + j*sign(offset[1])
				z := base[2] + k*sign(offset[2])
				if g.set(x, y, z, m) {
					changed++
				}
			}
		}
	}
	return changed
}

// PreviewCells appends to dst[:0] the cells of a pending SetGeometry box
// relative to its corner cell, all with material m.
func (g *Grid) PreviewCells(dst []meshing.Cell, scale, offset [3]int, m int8) []meshing.Cell {
	dst = dst[:0]
	for i := range scale[0] {
		for j := range scale[1] {
			for k := range scale[2] {
				dst = append(dst, meshing.Cell{
					Position: mgl32.Vec3{
						float32(i * sign(offset[0])),
						float32(j * sign(offset[1])),
						float32(k * sign(offset[2])),
					},
					Material: m,
				})
			}
		}
	}
	return dst
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

// UpdateChunk records key as the chunk the viewer is in.
func (g *Grid) UpdateChunk(key ChunkKey) {
	g.mu.Lock()
	g.recent = key
	g.mu.Unlock()
}

// RecentChunk returns the chunk recorded by the last UpdateChunk.
func (g *Grid) RecentChunk() ChunkKey {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.recent
}

// ViewChunks appends to dst[:0] the keys of occupied chunks inside the view
// cube around the recent chunk, ordered by x, then y, then z.
func (g *Grid) ViewChunks(dst []ChunkKey) []ChunkKey {
	defer profiling.Track("world.ViewChunks")()
	g.mu.RLock()
	defer g.mu.RUnlock()

	dst = dst[:0]
	r := g.radius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				key := ChunkKey{X: g.recent.X + dx, Y: g.recent.Y + dy, Z: g.recent.Z + dz}
				if ch := g.chunks[key]; ch != nil && ch.occupied > 0 {
					dst = append(dst, key)
				}
			}
		}
	}
	return dst
}

// Chunk returns the occupied cells of the chunk at key. The slice is owned
// by the grid and valid until the next edit of that chunk.
func (g *Grid) Chunk(key ChunkKey) []meshing.Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := g.chunks[key]
	if ch == nil {
		return nil
	}
	return ch.cellList()
}

// ModCount increases whenever a chunk is allocated.
func (g *Grid) ModCount() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.modCount
}
