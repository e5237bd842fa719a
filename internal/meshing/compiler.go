package meshing

import (
	"fmt"
	"log"
	"sync/atomic"

	"voxel-terrain/internal/profiling"
)

// Stats are cumulative compiler counters.
type Stats struct {
	Compiles       uint64
	Cells          uint64
	CapacityMisses uint64
}

// Compiler turns cell lists into meshes with one topology, fanning each
// pass out over a worker pool. A Compiler may be shared by several targets
// as long as each target's mesh has a single writer.
type Compiler struct {
	topology Topology
	pool     *WorkerPool
	grain    int

	compiles atomic.Uint64
	cells    atomic.Uint64
	misses   atomic.Uint64
}

// NewCompiler returns a compiler for topology t. grain is the minimum
// number of cells handed to one worker.
func NewCompiler(t Topology, pool *WorkerPool, grain int) *Compiler {
	return &Compiler{
		topology: t,
		pool:     pool,
		grain:    max(grain, 1),
	}
}

func (c *Compiler) Topology() Topology {
	return c.topology
}

// Compile replaces the contents of dst with the geometry of cells.
//
// dst is sized once from len(cells) before any worker starts; workers then
// write disjoint arenas, so the result does not depend on scheduling or on
// the pool size. If dst lacks capacity it is reallocated and the miss is
// counted. An unknown material fails the pass before dst is touched.
func (c *Compiler) Compile(cells []Cell, dst *Mesh) error {
	defer profiling.Track("meshing.Compile")()

	for i, cell := range cells {
		if !c.topology.Accepts(cell.Material) {
			return &MaterialError{Ordinal: i, Material: cell.Material}
		}
	}

	reserved := dst.Capacity(c.topology)
	if dst.resize(c.topology, len(cells)) {
		c.misses.Add(1)
		profiling.Count("meshing.CapacityMiss")
		log.Printf("mesh capacity miss: %d cells, %d reserved", len(cells), reserved)
	}

	t := c.topology
	err := c.pool.ParallelFor(len(cells), c.grain, func(start, end int) {
		a := dst.Arena(t, start, end)
		for i, cell := range cells[start:end] {
			t.Emit(cell, &a, i)
		}
	})
	if err != nil {
		return fmt.Errorf("meshing: compile %d cells: %w", len(cells), err)
	}

	c.compiles.Add(1)
	c.cells.Add(uint64(len(cells)))

	return dst.Validate(t)
}

// Interleave packs m into dst in the topology's vertex layout, reusing the
// capacity of dst. The mesh is validated first; an invalid mesh yields no
// data.
func (c *Compiler) Interleave(m *Mesh, dst []float32) ([]float32, error) {
	defer profiling.Track("meshing.Interleave")()

	if err := m.Validate(c.topology); err != nil {
		return dst[:0], err
	}

	l := c.topology.Layout()
	nv, _ := c.topology.Counts()
	dst, _ = resize(dst, len(m.Vertex)*l.Stride)

	attrs := hasAttributes(c.topology)
	var uvOff, normalOff int
	if attrs {
		uvOff, normalOff = l.Attribs[1].Offset, l.Attribs[2].Offset
	}

	err := c.pool.ParallelFor(len(m.Vertex), c.grain*nv, func(start, end int) {
		for i := start; i < end; i++ {
			j := i * l.Stride
			copy(dst[j:j+4], m.Vertex[i][:])
			if attrs {
				copy(dst[j+uvOff:j+uvOff+2], m.UV[i][:])
				copy(dst[j+normalOff:j+normalOff+3], m.Normal[i][:])
			}
		}
	})
	if err != nil {
		return dst[:0], fmt.Errorf("meshing: interleave %d vertices: %w", len(m.Vertex), err)
	}
	return dst, nil
}

// Stats returns the cumulative counters.
func (c *Compiler) Stats() Stats {
	return Stats{
		Compiles:       c.compiles.Load(),
		Cells:          c.cells.Load(),
		CapacityMisses: c.misses.Load(),
	}
}
