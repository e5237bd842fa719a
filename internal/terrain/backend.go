package terrain

import "voxel-terrain/internal/meshing"

// Backend creates GPU buffers and binds the state shared by every target:
// shader program and atlas texture.
type Backend interface {
	NewBuffer(layout meshing.Layout) (Buffer, error)
	Bind()
}

// Buffer is one vertex/index buffer pair. Upload replaces its contents
// entirely; Draw renders whatever was last uploaded.
type Buffer interface {
	Upload(vertices []float32, indices []uint32)
	Draw()
	Release()
}
