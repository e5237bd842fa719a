package terrain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/world"
)

type fakeBuffer struct {
	layout   meshing.Layout
	uploads  int
	draws    int
	released bool
	vertices []float32
	indices  []uint32
}

func (b *fakeBuffer) Upload(vertices []float32, indices []uint32) {
	b.uploads++
	b.vertices = append(b.vertices[:0], vertices...)
	b.indices = append(b.indices[:0], indices...)
}

func (b *fakeBuffer) Draw()    { b.draws++ }
func (b *fakeBuffer) Release() { b.released = true }

type fakeBackend struct {
	buffers []*fakeBuffer
	binds   int
	fail    bool
}

func (f *fakeBackend) NewBuffer(layout meshing.Layout) (Buffer, error) {
	if f.fail {
		return nil, errors.New("no context")
	}
	b := &fakeBuffer{layout: layout}
	f.buffers = append(f.buffers, b)
	return b, nil
}

func (f *fakeBackend) Bind() { f.binds++ }

func (f *fakeBackend) view() *fakeBuffer    { return f.buffers[View] }
func (f *fakeBackend) preview() *fakeBuffer { return f.buffers[Preview] }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Meshing.Workers = 2
	cfg.Meshing.Grain = 4
	cfg.Meshing.ReservedCells = 64
	cfg.World.ChunkSize = 4
	cfg.World.ViewRadius = 1
	return cfg
}

func newTestStore(t *testing.T, cfg config.Config, topo meshing.Topology) (*Store, *fakeBackend) {
	pool := meshing.NewWorkerPool(cfg.Meshing.Workers)
	t.Cleanup(pool.Shutdown)
	backend := &fakeBackend{}
	store, err := NewStore(cfg.Meshing, meshing.NewCompiler(topo, pool, cfg.Meshing.Grain), backend)
	require.NoError(t, err)
	return store, backend
}

func newTestBox(cfg config.Config) meshing.Topology {
	return meshing.NewBox(meshing.NewAtlas(cfg.Atlas))
}

// countingUploader records UploadView calls without compiling.
type countingUploader struct {
	calls [][]world.ChunkKey
}

func (c *countingUploader) UploadView(keys []world.ChunkKey, lookup ChunkLookup) error {
	c.calls = append(c.calls, append([]world.ChunkKey(nil), keys...))
	return nil
}
