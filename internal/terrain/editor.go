package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/meshing"
)

// EditGrid is the cell storage an Editor writes to. *world.Grid
// implements it.
type EditGrid interface {
	PreviewCells(dst []meshing.Cell, scale, offset [3]int, m int8) []meshing.Cell
	SetGeometry(p mgl32.Vec3, scale, offset [3]int, m int8) int
	RayTracePrev(origin, dir mgl32.Vec3, maxDist float32) mgl32.Vec3
	RayTraceLast(origin, dir mgl32.Vec3, maxDist float32) mgl32.Vec3
	RayFill(origin, dir mgl32.Vec3, maxDist float32, m int8) int
	Value(p mgl32.Vec3) int8
}

// PreviewUploader receives preview recompiles. *Store implements it.
type PreviewUploader interface {
	UploadPreview(cells []meshing.Cell) error
}

// Axis indexes the placement box dimensions.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Editor holds the pending-edit state: the size of the placement box, the
// direction it extends in and the material it writes. Every change to that
// state recompiles the preview; every edit recompiles the view.
type Editor struct {
	grid     EditGrid
	preview  PreviewUploader
	streamer *Streamer

	reach     float32
	shot      float32
	maxScale  int
	materials int

	scale    [3]int
	cached   [3]int
	offset   [3]int
	material int8
	editMode bool

	cells []meshing.Cell
}

func NewEditor(grid EditGrid, preview PreviewUploader, streamer *Streamer, cfg config.World, materials int) *Editor {
	return &Editor{
		grid:      grid,
		preview:   preview,
		streamer:  streamer,
		reach:     cfg.Reach,
		shot:      cfg.ShotLength,
		maxScale:  max(cfg.MaxPreviewScale, 1),
		materials: materials,
		scale:     [3]int{1, 1, 1},
		cached:    [3]int{1, 1, 1},
		offset:    [3]int{1, 1, 1},
		cells:     make([]meshing.Cell, 0, cfg.MaxPreviewScale*cfg.MaxPreviewScale*cfg.MaxPreviewScale),
	}
}

// Aim records the horizontal facing of the camera. The box grows towards
// it on x and z and always upwards.
func (e *Editor) Aim(forward mgl32.Vec3) {
	e.cached = [3]int{signOf(forward.X()), 1, signOf(forward.Z())}
}

func signOf(v float32) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Reanchor locks the aimed direction and recompiles the preview.
func (e *Editor) Reanchor() error {
	e.offset = e.cached
	e.cells = e.grid.PreviewCells(e.cells, e.scale, e.offset, e.material)
	return e.preview.UploadPreview(e.cells)
}

// GrowScale extends the box by one cell along axis. If the aim changed on
// that axis since the last reanchor, the box is only reanchored. It does
// nothing outside edit mode or once the axis reached its maximum.
func (e *Editor) GrowScale(axis Axis) error {
	if !e.editMode {
		return nil
	}
	switch {
	case e.cached[axis] != e.offset[axis]:
		return e.Reanchor()
	case e.scale[axis] < e.maxScale:
		e.scale[axis]++
		return e.Reanchor()
	}
	return nil
}

// ResetScale shrinks the box back to one cell.
func (e *Editor) ResetScale() error {
	e.scale = [3]int{1, 1, 1}
	return e.Reanchor()
}

// SetMaterial selects the material written by Place.
func (e *Editor) SetMaterial(m int8) error {
	if m < 0 || int(m) >= e.materials {
		return fmt.Errorf("terrain: select material %d: %w", m, meshing.ErrMaterialRange)
	}
	e.material = m
	return e.Reanchor()
}

// ToggleEditMode flips edit mode and returns the new state. Entering edit
// mode rebuilds the preview.
func (e *Editor) ToggleEditMode() (bool, error) {
	e.editMode = !e.editMode
	if e.editMode {
		return true, e.Reanchor()
	}
	return false, nil
}

// Cursor returns the corner cell Place would write at.
func (e *Editor) Cursor(origin, dir mgl32.Vec3) mgl32.Vec3 {
	return e.grid.RayTracePrev(origin, dir, e.reach)
}

// Place writes the box in front of the first cell hit by the ray and
// rebuilds the view. It returns the number of changed cells.
func (e *Editor) Place(origin, dir mgl32.Vec3) (int, error) {
	p := e.grid.RayTracePrev(origin, dir, e.reach)
	n := e.grid.SetGeometry(p, e.scale, e.offset, e.material)
	return n, e.streamer.Invalidate()
}

// Remove clears the box starting at the first cell hit by the ray and
// rebuilds the view. It returns the material of the hit cell, or
// meshing.Empty when the ray hit nothing, in which case nothing changes.
func (e *Editor) Remove(origin, dir mgl32.Vec3) (int8, error) {
	p := e.grid.RayTraceLast(origin, dir, e.reach)
	m := e.grid.Value(p)
	if m == meshing.Empty {
		return meshing.Empty, nil
	}
	e.grid.SetGeometry(p, e.scale, e.offset, meshing.Empty)
	return m, e.streamer.Invalidate()
}

// Shoot fills the empty cells along the ray with the selected material
// and rebuilds the view if any cell changed. It returns the number of
// cells written.
func (e *Editor) Shoot(origin, dir mgl32.Vec3) (int, error) {
	n := e.grid.RayFill(origin, dir, e.shot, e.material)
	if n == 0 {
		return 0, nil
	}
	return n, e.streamer.Invalidate()
}

func (e *Editor) Scale() [3]int           { return e.scale }
func (e *Editor) Offset() [3]int          { return e.offset }
func (e *Editor) Material() int8          { return e.material }
func (e *Editor) EditMode() bool          { return e.editMode }
func (e *Editor) Preview() []meshing.Cell { return e.cells }
