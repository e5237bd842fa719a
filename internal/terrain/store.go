package terrain

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/world"
)

// Target selects one of the two geometry products of a Store.
type Target int

const (
	View Target = iota
	Preview
)

func (t Target) String() string {
	switch t {
	case View:
		return "view"
	case Preview:
		return "preview"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ChunkLookup returns the cells of one chunk.
type ChunkLookup func(world.ChunkKey) []meshing.Cell

// TargetStats are per-target upload counters.
type TargetStats struct {
	Uploads  uint64
	Skips    uint64
	Failures uint64
	Cells    int
	Indices  int
}

type target struct {
	mu       sync.Mutex
	cells    *meshing.CellBuffer
	mesh     *meshing.Mesh
	uploaded *meshing.Mesh // CPU copy of the GPU geometry, nil when unknown
	floats   []float32
	buffer   Buffer
	drawable bool
	stats    TargetStats
}

// Store holds the view and preview meshes, each with its own GPU buffer.
// Uploads to one target are serialized; the two targets never share state.
type Store struct {
	compiler *meshing.Compiler
	backend  Backend
	targets  [2]*target
}

// NewStore reserves both meshes from the capacity hints in cfg and creates
// one buffer per target.
func NewStore(cfg config.Meshing, compiler *meshing.Compiler, backend Backend) (*Store, error) {
	s := &Store{compiler: compiler, backend: backend}
	topo := compiler.Topology()
	for t, reserve := range [2]int{cfg.ReservedCells, cfg.PreviewReservedCells} {
		buf, err := backend.NewBuffer(topo.Layout())
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("terrain: create %s buffer: %w", Target(t), err)
		}
		mesh := meshing.NewMesh(topo, reserve)
		s.targets[t] = &target{
			cells:    meshing.NewCellBuffer(reserve),
			mesh:     mesh,
			uploaded: mesh,
			buffer:   buf,
		}
	}
	log.Printf("terrain store ready: topology=%s view=%d preview=%d cells reserved",
		topo.Name(), cfg.ReservedCells, cfg.PreviewReservedCells)
	return s, nil
}

func (s *Store) target(t Target) *target {
	if t < View || t > Preview {
		panic(fmt.Sprintf("terrain: unknown target %d", int(t)))
	}
	return s.targets[t]
}

// UploadView concatenates the cells of keys, in order, compiles them and
// replaces the view geometry. With no cells nothing is compiled or
// uploaded and the view stops drawing.
func (s *Store) UploadView(keys []world.ChunkKey, lookup ChunkLookup) error {
	defer profiling.Track("terrain.UploadView")()
	tg := s.targets[View]
	tg.mu.Lock()
	defer tg.mu.Unlock()

	tg.cells.Reset()
	for _, key := range keys {
		tg.cells.Append(lookup(key)...)
	}
	return s.commit(View, tg)
}

// UploadPreview compiles cells and replaces the preview geometry.
func (s *Store) UploadPreview(cells []meshing.Cell) error {
	defer profiling.Track("terrain.UploadPreview")()
	tg := s.targets[Preview]
	tg.mu.Lock()
	defer tg.mu.Unlock()

	tg.cells.Reset()
	tg.cells.Append(cells...)
	return s.commit(Preview, tg)
}

// UploadMesh validates a mesh compiled elsewhere and uploads it to t. An
// invalid mesh is rejected before the GPU is touched.
func (s *Store) UploadMesh(t Target, m *meshing.Mesh) error {
	tg := s.target(t)
	tg.mu.Lock()
	defer tg.mu.Unlock()
	return s.upload(t, tg, m)
}

func (s *Store) commit(t Target, tg *target) error {
	if tg.cells.Len() == 0 {
		tg.mesh.Reset()
		tg.uploaded = tg.mesh
		tg.drawable = false
		tg.stats.Skips++
		tg.stats.Cells, tg.stats.Indices = 0, 0
		return nil
	}
	if err := s.compiler.Compile(tg.cells.Cells(), tg.mesh); err != nil {
		tg.stats.Failures++
		// a material error is caught before the mesh is written
		if !errors.Is(err, meshing.ErrMaterialRange) && tg.uploaded == tg.mesh {
			tg.uploaded = nil
		}
		return fmt.Errorf("terrain: compile %s: %w", t, err)
	}
	return s.upload(t, tg, tg.mesh)
}

func (s *Store) upload(t Target, tg *target, m *meshing.Mesh) error {
	floats, err := s.compiler.Interleave(m, tg.floats)
	tg.floats = floats
	if err != nil {
		tg.stats.Failures++
		if m == tg.mesh && tg.uploaded == tg.mesh {
			tg.uploaded = nil
		}
		return fmt.Errorf("terrain: upload %s: %w", t, err)
	}
	tg.buffer.Upload(floats, m.Index)
	tg.uploaded = m
	tg.drawable = len(m.Index) > 0
	tg.stats.Uploads++
	tg.stats.Cells = tg.cells.Len()
	tg.stats.Indices = len(m.Index)
	return nil
}

// Bind binds the shader program and atlas shared by both targets.
func (s *Store) Bind() {
	s.backend.Bind()
}

// Draw renders t. A target that holds no geometry draws nothing.
func (s *Store) Draw(t Target) {
	tg := s.target(t)
	tg.mu.Lock()
	defer tg.mu.Unlock()
	if tg.drawable {
		tg.buffer.Draw()
	}
}

// Mesh returns the CPU copy of the geometry t currently holds on the GPU.
// It is nil after a failed compile overwrote that copy; the GPU keeps the
// previous geometry until the next successful upload.
func (s *Store) Mesh(t Target) *meshing.Mesh {
	tg := s.target(t)
	tg.mu.Lock()
	defer tg.mu.Unlock()
	return tg.uploaded
}

// Stats returns the upload counters of t.
func (s *Store) Stats(t Target) TargetStats {
	tg := s.target(t)
	tg.mu.Lock()
	defer tg.mu.Unlock()
	return tg.stats
}

// Release frees both GPU buffers.
func (s *Store) Release() {
	for _, tg := range s.targets {
		if tg == nil {
			continue
		}
		tg.mu.Lock()
		tg.buffer.Release()
		tg.drawable = false
		tg.mu.Unlock()
	}
}
