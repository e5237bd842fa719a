package meshing

// Primitive is the draw mode a topology's index stream is meant for.
type Primitive uint8

const (
	Triangles Primitive = iota
	Points
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case Points:
		return "points"
	}
	return "unknown"
}

// Attrib is one interleaved vertex attribute. Offset is in floats.
type Attrib struct {
	Location uint32
	Size     int32
	Offset   int
}

// Layout describes the interleaved vertex format a topology uploads.
type Layout struct {
	Stride    int // floats per vertex
	Attribs   []Attrib
	Primitive Primitive
}

// Topology turns one cell into a fixed number of vertices and indices.
// The choice between implementations is made once, when the compiler is
// built; every cell of every compile pass goes through the same one.
type Topology interface {
	Name() string

	// Counts returns the vertices and indices written per cell.
	Counts() (vertices, indices int)

	Layout() Layout

	// Accepts reports whether the topology can emit a cell of material m.
	Accepts(m int8) bool

	// Emit writes cell c as the i'th cell of arena a. It must only touch
	// the elements owned by that cell.
	Emit(c Cell, a *Arena, i int)
}
