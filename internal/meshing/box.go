package meshing

import "github.com/go-gl/mathgl/mgl32"

const (
	BoxVertices = 24
	BoxIndices  = 36

	boxHalfExtent = 0.5
)

// Corner ids: bit 0 selects max x, bit 1 max y, bit 2 max z.
var boxCorner = [BoxVertices]uint8{
	0, 5, 4, // -y
	7, 2, 6, // +y
	6, 0, 4, // -x
	2, 1, 0, // -z
	1, 7, 5, // +x
	4, 7, 6, // +z
	1, 3, 2, 3, 3, 5, // fourth corner of each face, same face order
}

var (
	normalDown  = mgl32.Vec3{0, -1, 0}
	normalUp    = mgl32.Vec3{0, 1, 0}
	normalWest  = mgl32.Vec3{-1, 0, 0}
	normalNorth = mgl32.Vec3{0, 0, -1}
	normalEast  = mgl32.Vec3{1, 0, 0}
	normalSouth = mgl32.Vec3{0, 0, 1}
)

var boxNormal = [BoxVertices]mgl32.Vec3{
	normalDown, normalDown, normalDown,
	normalUp, normalUp, normalUp,
	normalWest, normalWest, normalWest,
	normalNorth, normalNorth, normalNorth,
	normalEast, normalEast, normalEast,
	normalSouth, normalSouth, normalSouth,
	normalDown, normalUp, normalWest, normalNorth, normalEast, normalSouth,
}

// Two triangles per face; relative to the cell's first vertex.
var boxIndex = [BoxIndices]uint32{
	0, 1, 2,
	3, 4, 5,
	6, 7, 8,
	9, 10, 11,
	12, 13, 14,
	15, 16, 17,
	0, 18, 1,
	3, 19, 4,
	6, 20, 7,
	9, 21, 10,
	12, 22, 13,
	15, 23, 16,
}

var boxLayout = Layout{
	Stride: 9,
	Attribs: []Attrib{
		{Location: 0, Size: 4, Offset: 0}, // position
		{Location: 1, Size: 2, Offset: 4}, // uv
		{Location: 2, Size: 3, Offset: 6}, // normal
	},
	Primitive: Triangles,
}

// Box emits every cell as a closed unit cube of six independently
// textured quads. Cells never share vertices.
type Box struct {
	atlas *Atlas
}

func NewBox(atlas *Atlas) *Box {
	return &Box{atlas: atlas}
}

func (b *Box) Name() string { return "box" }

func (b *Box) Counts() (vertices, indices int) { return BoxVertices, BoxIndices }

func (b *Box) Layout() Layout { return boxLayout }

func (b *Box) Accepts(m int8) bool { return b.atlas.Contains(m) }

func (b *Box) Emit(c Cell, a *Arena, i int) {
	lo := c.Position.Sub(mgl32.Vec3{boxHalfExtent, boxHalfExtent, boxHalfExtent})
	hi := c.Position.Add(mgl32.Vec3{boxHalfExtent, boxHalfExtent, boxHalfExtent})

	var corners [8]mgl32.Vec4
	for k := range corners {
		p := mgl32.Vec4{lo.X(), lo.Y(), lo.Z(), 1}
		if k&1 != 0 {
			p[0] = hi.X()
		}
		if k&2 != 0 {
			p[1] = hi.Y()
		}
		if k&4 != 0 {
			p[2] = hi.Z()
		}
		corners[k] = p
	}

	v := i * BoxVertices
	vertex := a.Vertex[v : v+BoxVertices]
	for k, corner := range boxCorner {
		vertex[k] = corners[corner]
	}
	copy(a.UV[v:v+BoxVertices], b.atlas.BoxUVs(c.Material)[:])
	copy(a.Normal[v:v+BoxVertices], boxNormal[:])

	base := uint32((a.First + i) * BoxVertices)
	n := i * BoxIndices
	index := a.Index[n : n+BoxIndices]
	for k, rel := range boxIndex {
		index[k] = base + rel
	}
}
