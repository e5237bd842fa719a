package meshing

import (
	"voxel-terrain/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// boxUnitUV holds the unit texture corner of each of the 24 box vertices,
// in the same order as boxCorner.
var boxUnitUV = [BoxVertices]mgl32.Vec2{
	{1, 0}, {0, 1}, {0, 0},
	{1, 0}, {0, 1}, {0, 0},
	{1, 0}, {0, 1}, {0, 0},
	{1, 0}, {0, 1}, {0, 0},
	{0, 0}, {1, 1}, {0, 1},
	{1, 0}, {0, 1}, {0, 0},
	{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 0}, {1, 1},
}

// Atlas maps material ids to sub-rectangles of the shared terrain texture.
// Ids run left to right along a row, then down to the next row.
type Atlas struct {
	columns int
	rows    int
	step    float32
	span    float32
	margin  float32
	top     float32

	// box UVs per material, computed once
	uvs [][BoxVertices]mgl32.Vec2
}

// NewAtlas builds the UV table for every material the grid can hold.
func NewAtlas(cfg config.Atlas) *Atlas {
	a := &Atlas{
		columns: cfg.Columns,
		rows:    cfg.Rows,
		step:    cfg.Step,
		span:    cfg.Span,
		margin:  cfg.Margin,
		top:     cfg.Top,
	}
	a.uvs = make([][BoxVertices]mgl32.Vec2, cfg.Materials())
	for id := range a.uvs {
		x0, y0 := a.Offset(int8(id))
		origin := mgl32.Vec2{x0, y0}
		for v, unit := range boxUnitUV {
			a.uvs[id][v] = unit.Mul(a.span).Add(origin)
		}
	}
	return a
}

// Materials returns the number of addressable material ids.
func (a *Atlas) Materials() int {
	return len(a.uvs)
}

// Contains reports whether id addresses a cell of the atlas.
func (a *Atlas) Contains(id int8) bool {
	return id >= 0 && int(id) < len(a.uvs)
}

// Offset returns the lower-left UV corner of material id. The caller must
// check Contains first; the result for other ids is meaningless.
func (a *Atlas) Offset(id int8) (x0, y0 float32) {
	column := int(id) % a.columns
	row := int(id) / a.columns
	x0 = a.margin + a.step*float32(column)
	y0 = a.top - a.step*float32(row)
	return x0, y0
}

// BoxUVs returns the 24 per-vertex UVs of a box textured with material id.
func (a *Atlas) BoxUVs(id int8) *[BoxVertices]mgl32.Vec2 {
	return &a.uvs[id]
}
