package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"voxel-terrain/internal/meshing"
)

// Buffer is a VAO with one interleaved vertex buffer and one index buffer.
// Storage is reallocated only when an upload outgrows it.
type Buffer struct {
	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	vboSize       int
	eboSize       int
}

func newBuffer(layout meshing.Layout) *Buffer {
	b := &Buffer{mode: gl.TRIANGLES}
	if layout.Primitive == meshing.Points {
		b.mode = gl.POINTS
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	stride := int32(layout.Stride * 4)
	for _, a := range layout.Attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, stride, uintptr(a.Offset*4))
	}
	gl.BindVertexArray(0)
	return b
}

// Upload replaces the buffer contents.
func (b *Buffer) Upload(vertices []float32, indices []uint32) {
	gl.BindVertexArray(b.vao)

	vbytes := len(vertices) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	switch {
	case vbytes == 0:
	case vbytes > b.vboSize:
		gl.BufferData(gl.ARRAY_BUFFER, vbytes, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
		b.vboSize = vbytes
	default:
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, vbytes, gl.Ptr(vertices))
	}

	ibytes := len(indices) * 4
	switch {
	case ibytes == 0:
	case ibytes > b.eboSize:
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, ibytes, gl.Ptr(indices), gl.DYNAMIC_DRAW)
		b.eboSize = ibytes
	default:
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, ibytes, gl.Ptr(indices))
	}

	b.count = int32(len(indices))
	gl.BindVertexArray(0)
}

// Draw renders the last upload.
func (b *Buffer) Draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(b.mode, b.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Release deletes the GL objects.
func (b *Buffer) Release() {
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.count = 0
}
