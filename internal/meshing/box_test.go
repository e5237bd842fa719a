package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonicalNormals = []mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// faceVertices returns the four vertex slots of face f.
func faceVertices(f int) [4]int {
	return [4]int{3 * f, 3*f + 1, 3*f + 2, 18 + f}
}

func emitOne(t *testing.T, topo Topology, c Cell) *Mesh {
	t.Helper()
	m := NewMesh(topo, 1)
	m.resize(topo, 1)
	a := m.Arena(topo, 0, 1)
	topo.Emit(c, &a, 0)
	return m
}

func TestBoxFacesAreAxisAlignedAndCoplanar(t *testing.T) {
	box := NewBox(defaultAtlas())
	center := mgl32.Vec3{3, -2, 7}
	m := emitOne(t, box, Cell{Position: center, Material: 5})

	seen := map[mgl32.Vec3]int{}
	for f := range 6 {
		slots := faceVertices(f)
		n := m.Normal[slots[0]]
		assert.Contains(t, canonicalNormals, n)
		seen[n]++

		axis := 0
		for k := range 3 {
			if n[k] != 0 {
				axis = k
			}
		}
		plane := center[axis] + 0.5*n[axis]
		for _, s := range slots {
			assert.Equal(t, n, m.Normal[s], "face %d slot %d", f, s)
			assert.Equal(t, plane, m.Vertex[s][axis], "face %d slot %d", f, s)
			assert.Equal(t, float32(1), m.Vertex[s].W())
		}
	}
	assert.Len(t, seen, 6)
}

func TestBoxCornersSpanUnitCube(t *testing.T) {
	box := NewBox(defaultAtlas())
	m := emitOne(t, box, Cell{Position: mgl32.Vec3{0, 0, 0}, Material: 0})
	for _, v := range m.Vertex {
		for k := range 3 {
			assert.True(t, v[k] == -0.5 || v[k] == 0.5)
		}
	}
}

func TestBoxIndicesStayInsideCellBlock(t *testing.T) {
	box := NewBox(defaultAtlas())
	m := NewMesh(box, 3)
	m.resize(box, 3)
	a := m.Arena(box, 1, 3)
	box.Emit(Cell{Material: 1}, &a, 1)

	for _, idx := range m.Index[2*BoxIndices : 3*BoxIndices] {
		assert.GreaterOrEqual(t, idx, uint32(2*BoxVertices))
		assert.Less(t, idx, uint32(3*BoxVertices))
	}
}

func TestBoxTrianglesShareFaceNormal(t *testing.T) {
	box := NewBox(defaultAtlas())
	m := emitOne(t, box, Cell{Material: 0})
	require.Len(t, m.Index, BoxIndices)

	down := 0
	for tri := 0; tri < BoxIndices; tri += 3 {
		n := m.Normal[m.Index[tri]]
		assert.Equal(t, n, m.Normal[m.Index[tri+1]])
		assert.Equal(t, n, m.Normal[m.Index[tri+2]])
		if n == normalDown {
			down++
		}
	}
	assert.Equal(t, 2, down)
}

func TestBoxRejectsUnknownMaterial(t *testing.T) {
	box := NewBox(defaultAtlas())
	assert.False(t, box.Accepts(16))
	assert.False(t, box.Accepts(Empty))
	assert.True(t, box.Accepts(15))
}

func TestPointEmitsCenterAndIdentityIndex(t *testing.T) {
	var p Point
	m := NewMesh(p, 4)
	m.resize(p, 4)
	a := m.Arena(p, 2, 4)
	p.Emit(Cell{Position: mgl32.Vec3{1, 2, 3}, Material: 99}, &a, 1)

	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, m.Vertex[3])
	assert.Equal(t, uint32(3), m.Index[3])
	assert.Empty(t, m.UV)
	assert.Empty(t, m.Normal)
}
