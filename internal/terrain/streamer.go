package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/world"
)

// ChunkSource is the chunk side of the streaming loop. *world.Grid
// implements it.
type ChunkSource interface {
	ChunkKey(p mgl32.Vec3) world.ChunkKey
	UpdateChunk(key world.ChunkKey)
	RecentChunk() world.ChunkKey
	ViewChunks(dst []world.ChunkKey) []world.ChunkKey
	Chunk(key world.ChunkKey) []meshing.Cell
}

// ViewUploader receives view recompiles. *Store implements it.
type ViewUploader interface {
	UploadView(keys []world.ChunkKey, lookup ChunkLookup) error
}

// Streamer recompiles the view mesh when the viewer enters a new chunk.
type Streamer struct {
	source ChunkSource
	view   ViewUploader
	keys   []world.ChunkKey
	loaded bool
}

func NewStreamer(source ChunkSource, view ViewUploader) *Streamer {
	return &Streamer{source: source, view: view}
}

// Load anchors the streamer at p and uploads the view unconditionally.
func (s *Streamer) Load(p mgl32.Vec3) error {
	s.source.UpdateChunk(s.source.ChunkKey(p))
	s.loaded = true
	return s.upload()
}

// Update uploads the view only when p lies in a different chunk than the
// recent one. It reports whether an upload ran.
func (s *Streamer) Update(p mgl32.Vec3) (bool, error) {
	key := s.source.ChunkKey(p)
	if s.loaded && key == s.source.RecentChunk() {
		return false, nil
	}
	s.source.UpdateChunk(key)
	s.loaded = true
	return true, s.upload()
}

// Invalidate forces a view upload around the recent chunk, e.g. after an
// edit changed cells inside it.
func (s *Streamer) Invalidate() error {
	return s.upload()
}

// RecentChunk returns the chunk the view was last built around.
func (s *Streamer) RecentChunk() world.ChunkKey {
	return s.source.RecentChunk()
}

func (s *Streamer) upload() error {
	s.keys = s.source.ViewChunks(s.keys)
	return s.view.UploadView(s.keys, s.source.Chunk)
}
