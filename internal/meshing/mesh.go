package meshing

import "github.com/go-gl/mathgl/mgl32"

// Mesh is compiled geometry as four parallel arrays. UV and Normal are only
// filled by topologies whose layout carries them.
type Mesh struct {
	Vertex []mgl32.Vec4
	UV     []mgl32.Vec2
	Normal []mgl32.Vec3
	Index  []uint32
}

// NewMesh returns an empty mesh with room for cells cells of topology t.
func NewMesh(t Topology, cells int) *Mesh {
	m := &Mesh{}
	m.Reserve(t, cells)
	return m
}

// Reserve grows the capacity of every array to hold cells cells of t.
// Existing contents are dropped.
func (m *Mesh) Reserve(t Topology, cells int) {
	nv, ni := t.Counts()
	m.Vertex = make([]mgl32.Vec4, 0, nv*cells)
	m.Index = make([]uint32, 0, ni*cells)
	if hasAttributes(t) {
		m.UV = make([]mgl32.Vec2, 0, nv*cells)
		m.Normal = make([]mgl32.Vec3, 0, nv*cells)
	} else {
		m.UV, m.Normal = nil, nil
	}
}

// Reset empties the mesh without releasing capacity.
func (m *Mesh) Reset() {
	m.Vertex = m.Vertex[:0]
	m.UV = m.UV[:0]
	m.Normal = m.Normal[:0]
	m.Index = m.Index[:0]
}

// Empty reports whether the mesh holds no vertices.
func (m *Mesh) Empty() bool {
	return len(m.Vertex) == 0
}

// Capacity returns how many cells of t fit without reallocation.
func (m *Mesh) Capacity(t Topology) int {
	nv, ni := t.Counts()
	c := min(cap(m.Vertex)/nv, cap(m.Index)/ni)
	if hasAttributes(t) {
		c = min(c, cap(m.UV)/nv, cap(m.Normal)/nv)
	}
	return c
}

// resize sets every array to the exact length for cells cells of t,
// reusing capacity where possible. It reports whether any array had to be
// reallocated.
func (m *Mesh) resize(t Topology, cells int) bool {
	nv, ni := t.Counts()
	var grew, g bool
	m.Vertex, grew = resize(m.Vertex, nv*cells)
	m.Index, g = resize(m.Index, ni*cells)
	grew = grew || g
	if hasAttributes(t) {
		m.UV, g = resize(m.UV, nv*cells)
		grew = grew || g
		m.Normal, g = resize(m.Normal, nv*cells)
		grew = grew || g
	} else {
		m.UV, m.Normal = m.UV[:0], m.Normal[:0]
	}
	return grew
}

func resize[T any](s []T, n int) ([]T, bool) {
	if cap(s) >= n {
		return s[:n], false
	}
	return make([]T, n), true
}

// Validate checks the length invariants of a mesh compiled with t: with
// attributes, vertex, uv and normal lengths must agree; the index count must
// match the vertex count cell for cell.
func (m *Mesh) Validate(t Topology) error {
	nv, ni := t.Counts()
	ok := len(m.Vertex)%nv == 0 && len(m.Index) == len(m.Vertex)/nv*ni
	if hasAttributes(t) {
		ok = ok && len(m.UV) == len(m.Vertex) && len(m.Normal) == len(m.Vertex)
	}
	if !ok {
		return &ValidationError{
			Vertex: len(m.Vertex),
			UV:     len(m.UV),
			Normal: len(m.Normal),
			Index:  len(m.Index),
		}
	}
	return nil
}

// Arena is the window of a Mesh owned by the contiguous cell range
// [First, First+n). Index values written through it are mesh-global.
type Arena struct {
	First  int
	Vertex []mgl32.Vec4
	UV     []mgl32.Vec2
	Normal []mgl32.Vec3
	Index  []uint32
}

// Arena returns the window of cells [start, end) of a mesh already sized
// for t. Arenas of disjoint cell ranges never overlap.
func (m *Mesh) Arena(t Topology, start, end int) Arena {
	nv, ni := t.Counts()
	a := Arena{
		First:  start,
		Vertex: m.Vertex[start*nv : end*nv],
		Index:  m.Index[start*ni : end*ni],
	}
	if hasAttributes(t) {
		a.UV = m.UV[start*nv : end*nv]
		a.Normal = m.Normal[start*nv : end*nv]
	}
	return a
}

func hasAttributes(t Topology) bool {
	return len(t.Layout().Attribs) > 1
}
