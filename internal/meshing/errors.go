package meshing

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a mesh whose parallel arrays disagree in length.
	// Such a mesh must never be uploaded.
	ErrValidation = errors.New("meshing: invalid mesh")

	// ErrMaterialRange marks a cell whose material has no atlas entry.
	ErrMaterialRange = errors.New("meshing: material outside atlas")
)

// ValidationError carries the array lengths of a rejected mesh.
type ValidationError struct {
	Vertex int
	UV     int
	Normal int
	Index  int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("meshing: vertex, uv, or normal invalid length (vertex=%d uv=%d normal=%d index=%d)",
		e.Vertex, e.UV, e.Normal, e.Index)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MaterialError identifies the first cell of a compile pass with a material
// the atlas cannot address.
type MaterialError struct {
	Ordinal  int
	Material int8
}

func (e *MaterialError) Error() string {
	return fmt.Sprintf("meshing: cell %d has material %d outside atlas", e.Ordinal, e.Material)
}

func (e *MaterialError) Unwrap() error {
	return ErrMaterialRange
}
