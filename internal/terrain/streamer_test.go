package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-terrain/internal/world"
)

func newStreamingGrid() *world.Grid {
	g := world.NewGrid(4, 1)
	g.Fill([3]int{-8, 0, -8}, [3]int{11, 0, 11}, 1)
	return g
}

func TestStreamerUploadsOnlyOnChunkChange(t *testing.T) {
	grid := newStreamingGrid()
	up := &countingUploader{}
	s := NewStreamer(grid, up)

	require.NoError(t, s.Load(mgl32.Vec3{0, 1, 0}))
	require.Len(t, up.calls, 1)
	assert.Len(t, up.calls[0], 9)

	moved, err := s.Update(mgl32.Vec3{1.2, 1, 2.9})
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Len(t, up.calls, 1)

	moved, err = s.Update(mgl32.Vec3{4.1, 1, 0})
	require.NoError(t, err)
	assert.True(t, moved)
	require.Len(t, up.calls, 2)
	assert.Equal(t, world.ChunkKey{X: 1}, s.RecentChunk())
	assert.Equal(t, world.ChunkKey{X: 0, Y: 0, Z: -1}, up.calls[1][0])

	moved, err = s.Update(mgl32.Vec3{5, 1, 1})
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Len(t, up.calls, 2)
}

func TestStreamerFirstUpdateLoads(t *testing.T) {
	up := &countingUploader{}
	s := NewStreamer(newStreamingGrid(), up)

	moved, err := s.Update(mgl32.Vec3{})
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Len(t, up.calls, 1)
}

func TestStreamerInvalidateForcesUpload(t *testing.T) {
	up := &countingUploader{}
	s := NewStreamer(newStreamingGrid(), up)
	require.NoError(t, s.Load(mgl32.Vec3{}))
	require.NoError(t, s.Invalidate())
	assert.Len(t, up.calls, 2)
	assert.Equal(t, up.calls[0], up.calls[1])
}

func TestStreamerCompilesRealView(t *testing.T) {
	cfg := testConfig()
	store, backend := newTestStore(t, cfg, newTestBox(cfg))
	grid := newStreamingGrid()
	s := NewStreamer(grid, store)

	require.NoError(t, s.Load(mgl32.Vec3{0, 1, 0}))
	cells := 12 * 12
	assert.Len(t, store.Mesh(View).Vertex, cells*24)
	assert.Equal(t, 1, backend.view().uploads)
}
