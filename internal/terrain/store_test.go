package terrain

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/world"
)

func TestTargetString(t *testing.T) {
	assert.Equal(t, "view", View.String())
	assert.Equal(t, "preview", Preview.String())
	assert.Equal(t, "Target(7)", Target(7).String())
}

func TestNewStoreFailsWithoutBuffers(t *testing.T) {
	cfg := testConfig()
	pool := meshing.NewWorkerPool(1)
	defer pool.Shutdown()
	_, err := NewStore(cfg.Meshing, meshing.NewCompiler(meshing.Point{}, pool, 1), &fakeBackend{fail: true})
	assert.Error(t, err)
}

func TestUploadViewEmptyIsNoop(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))

	require.NoError(t, store.UploadView(nil, func(world.ChunkKey) []meshing.Cell { return nil }))
	store.Bind()
	store.Draw(View)

	assert.Equal(t, 0, backend.view().uploads)
	assert.Equal(t, 0, backend.view().draws)
	assert.Equal(t, uint64(1), store.Stats(View).Skips)
	assert.Equal(t, 1, backend.binds)
}

func TestUploadViewConcatenatesChunksInOrder(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))

	chunks := map[world.ChunkKey][]meshing.Cell{
		{X: 0}: {{Position: mgl32.Vec3{0, 0, 0}, Material: 1}},
		{X: 1}: {{Position: mgl32.Vec3{4, 0, 0}, Material: 2}, {Position: mgl32.Vec3{5, 0, 0}, Material: 3}},
	}
	lookup := func(k world.ChunkKey) []meshing.Cell { return chunks[k] }

	require.NoError(t, store.UploadView([]world.ChunkKey{{X: 1}, {X: 0}}, lookup))
	m := store.Mesh(View)
	require.Len(t, m.Vertex, 72)
	assert.Equal(t, float32(3.5), m.Vertex[0].X(), "first chunk listed comes first")
	assert.Equal(t, float32(-0.5), m.Vertex[48].X())

	buf := backend.view()
	assert.Equal(t, 1, buf.uploads)
	assert.Len(t, buf.vertices, 72*9)
	assert.Len(t, buf.indices, 108)
	assert.Equal(t, 9, buf.layout.Stride)

	store.Draw(View)
	store.Draw(Preview)
	assert.Equal(t, 1, buf.draws)
	assert.Equal(t, 0, backend.preview().draws)

	stats := store.Stats(View)
	assert.Equal(t, uint64(1), stats.Uploads)
	assert.Equal(t, 3, stats.Cells)
	assert.Equal(t, 108, stats.Indices)
}

func TestEmptyUploadStopsDrawingStaleGeometry(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))

	require.NoError(t, store.UploadPreview([]meshing.Cell{{Material: 0}}))
	store.Draw(Preview)
	require.NoError(t, store.UploadPreview(nil))
	store.Draw(Preview)

	assert.Equal(t, 1, backend.preview().uploads)
	assert.Equal(t, 1, backend.preview().draws)
	assert.True(t, store.Mesh(Preview).Empty())
}

func TestTargetsAreIndependent(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))

	require.NoError(t, store.UploadPreview([]meshing.Cell{{Material: 4}, {Material: 5}}))
	assert.Equal(t, 0, backend.view().uploads)
	assert.Equal(t, 1, backend.preview().uploads)
	assert.Len(t, store.Mesh(Preview).Index, 72)
	assert.True(t, store.Mesh(View).Empty())
}

func TestMalformedMeshIsNeverUploaded(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))
	require.NoError(t, store.UploadView([]world.ChunkKey{{}}, func(world.ChunkKey) []meshing.Cell {
		return []meshing.Cell{{Material: 1}}
	}))
	before := append([]float32(nil), backend.view().vertices...)

	bad := &meshing.Mesh{
		Vertex: make([]mgl32.Vec4, 24),
		UV:     make([]mgl32.Vec2, 20),
		Normal: make([]mgl32.Vec3, 24),
		Index:  make([]uint32, 36),
	}
	err := store.UploadMesh(View, bad)

	var verr *meshing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 20, verr.UV)
	assert.Equal(t, 1, backend.view().uploads)
	assert.Equal(t, before, backend.view().vertices)
	assert.Equal(t, uint64(1), store.Stats(View).Failures)

	store.Draw(View)
	assert.Equal(t, 1, backend.view().draws, "previous geometry stays drawable")
}

func TestMaterialErrorKeepsPreviousGeometry(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))
	require.NoError(t, store.UploadPreview([]meshing.Cell{{Material: 1}}))

	err := store.UploadPreview([]meshing.Cell{{Material: 1}, {Material: 99}})
	assert.True(t, errors.Is(err, meshing.ErrMaterialRange))
	assert.Equal(t, 1, backend.preview().uploads)

	store.Draw(Preview)
	assert.Equal(t, 1, backend.preview().draws)
	assert.Len(t, store.Mesh(Preview).Index, 36, "mesh copy untouched")
}

// faultyBox panics while emitting material 7, after other arenas of the
// same pass have been written.
type faultyBox struct{ meshing.Topology }

func (f faultyBox) Emit(c meshing.Cell, a *meshing.Arena, i int) {
	if c.Material == 7 {
		panic("emit failed")
	}
	f.Topology.Emit(c, a, i)
}

func TestFailedCompileDropsMeshCopy(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, faultyBox{newTestBox(cfg)})
	cells := make([]meshing.Cell, 12)
	for i := range cells {
		cells[i] = meshing.Cell{Position: mgl32.Vec3{float32(i), 0, 0}, Material: 1}
	}
	require.NoError(t, store.UploadPreview(cells[:2]))
	require.Len(t, store.Mesh(Preview).Index, 72)

	cells[11].Material = 7
	require.Error(t, store.UploadPreview(cells))
	assert.Nil(t, store.Mesh(Preview), "CPU copy no longer matches the GPU")
	assert.Equal(t, 1, backend.preview().uploads)
	assert.Len(t, backend.preview().indices, 72)
	store.Draw(Preview)
	assert.Equal(t, 1, backend.preview().draws)

	cells[11].Material = 2
	require.NoError(t, store.UploadPreview(cells))
	assert.Len(t, store.Mesh(Preview).Index, 12*36)
}

func TestPointTopologyUploadsCenters(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, meshing.Point{})

	require.NoError(t, store.UploadPreview([]meshing.Cell{{Position: mgl32.Vec3{1, 2, 3}}, {Position: mgl32.Vec3{4, 5, 6}}}))
	buf := backend.preview()
	assert.Equal(t, meshing.Points, buf.layout.Primitive)
	assert.Equal(t, []float32{1, 2, 3, 1, 4, 5, 6, 1}, buf.vertices)
	assert.Equal(t, []uint32{0, 1}, buf.indices)
}

func TestReleaseReleasesBothBuffers(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, meshing.Point{})
	require.NoError(t, store.UploadPreview([]meshing.Cell{{}}))
	store.Release()
	store.Draw(Preview)

	assert.True(t, backend.view().released)
	assert.True(t, backend.preview().released)
	assert.Equal(t, 0, backend.preview().draws)
}
