package meshing

var pointLayout = Layout{
	Stride:    4,
	Attribs:   []Attrib{{Location: 0, Size: 4, Offset: 0}},
	Primitive: Points,
}

// Point emits one vertex per cell at its center and an identity index.
// Faces are expanded later on the GPU, so no UV or normal is produced and
// the material is ignored.
type Point struct{}

func (Point) Name() string { return "point" }

func (Point) Counts() (vertices, indices int) { return 1, 1 }

func (Point) Layout() Layout { return pointLayout }

func (Point) Accepts(int8) bool { return true }

func (Point) Emit(c Cell, a *Arena, i int) {
	a.Vertex[i] = c.Position.Vec4(1)
	a.Index[i] = uint32(a.First + i)
}
