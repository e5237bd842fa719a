package graphics

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/terrain"
)

// Backend is the OpenGL implementation of terrain.Backend. It owns the
// terrain program and the atlas texture shared by both geometry targets.
type Backend struct {
	shader *Shader
	atlas  uint32
}

// NewBackend compiles the terrain program for layout and loads the atlas.
// Point topologies get their own vertex stage plus a geometry shader that
// expands each point into a cube. Requires a current GL context.
func NewBackend(render config.Render, atlas config.Atlas, layout meshing.Layout) (*Backend, error) {
	vertex, geometry := render.VertexShader, ""
	if layout.Primitive == meshing.Points {
		vertex, geometry = render.PointVertexShader, render.GeometryShader
	}
	shader, err := NewShader(vertex, render.FragmentShader, geometry)
	if err != nil {
		return nil, fmt.Errorf("graphics: terrain program: %w", err)
	}
	tex, err := LoadAtlas(atlas)
	if err != nil {
		shader.Delete()
		return nil, fmt.Errorf("graphics: atlas: %w", err)
	}
	log.Printf("gl backend ready: %s, primitive=%s stride=%d", gl.GoStr(gl.GetString(gl.VERSION)), layout.Primitive, layout.Stride)

	b := &Backend{shader: shader, atlas: tex}
	b.shader.Use()
	b.shader.SetInt("atlas", 0)
	b.shader.SetFloat("atlasSpan", atlas.Span)
	b.shader.SetMatrix4("model", mgl32.Ident4())
	return b, nil
}

// NewBuffer implements terrain.Backend.
func (b *Backend) NewBuffer(layout meshing.Layout) (terrain.Buffer, error) {
	buf := newBuffer(layout)
	if code := gl.GetError(); code != gl.NO_ERROR {
		buf.Release()
		return nil, fmt.Errorf("graphics: create buffer: gl error 0x%x", code)
	}
	return buf, nil
}

// Bind activates the program and atlas and resets the model matrix.
func (b *Backend) Bind() {
	b.shader.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.atlas)
	b.shader.SetMatrix4("model", mgl32.Ident4())
}

// SetCamera uploads the projection and view matrices.
func (b *Backend) SetCamera(proj, view mgl32.Mat4) {
	b.shader.Use()
	b.shader.SetMatrix4("proj", proj)
	b.shader.SetMatrix4("view", view)
}

// SetModel sets the model matrix for the next draw, e.g. to place the
// preview at the cursor.
func (b *Backend) SetModel(m mgl32.Mat4) {
	b.shader.SetMatrix4("model", m)
}

// SetTint blends the next draw towards a color; alpha 0 disables it.
func (b *Backend) SetTint(c mgl32.Vec3, alpha float32) {
	b.shader.SetVector3("tint", c)
	b.shader.SetFloat("tintAlpha", alpha)
}

// Release frees the program and texture. Buffers are released by their
// owner.
func (b *Backend) Release() {
	gl.DeleteTextures(1, &b.atlas)
	b.shader.Delete()
}
