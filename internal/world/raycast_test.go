package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"voxel-terrain/internal/meshing"
)

func TestRayTrace(t *testing.T) {
	g := NewGrid(8, 1)
	g.Fill([3]int{-4, 0, -4}, [3]int{4, 0, 4}, 1)
	origin := mgl32.Vec3{0, 3, 0}
	down := mgl32.Vec3{0, -1, 0}

	hit := g.RayTrace(origin, down, 6)
	assert.True(t, hit.Hit)
	assert.Equal(t, [3]int{0, 0, 0}, hit.Cell)
	assert.Equal(t, [3]int{0, 1, 0}, hit.Prev)
	assert.Equal(t, int8(1), hit.Material)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.RayTracePrev(origin, down, 6))
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, g.RayTraceLast(origin, down, 6))
}

func TestRayTraceMiss(t *testing.T) {
	g := NewGrid(8, 1)
	g.Set(0, 0, 0, 1)
	origin := mgl32.Vec3{0, 3, 0}

	short := g.RayTrace(origin, mgl32.Vec3{0, -1, 0}, 2)
	assert.False(t, short.Hit)
	assert.Equal(t, meshing.Empty, short.Material)
	assert.Equal(t, [3]int{0, 1, 0}, short.Cell)

	up := g.RayTrace(origin, mgl32.Vec3{0, 1, 0}, 6)
	assert.False(t, up.Hit)
	assert.Equal(t, mgl32.Vec3{0, 9, 0}, g.RayTraceLast(origin, mgl32.Vec3{0, 1, 0}, 6))
}

func TestRayTraceDiagonal(t *testing.T) {
	g := NewGrid(8, 1)
	g.Set(2, 0, 2, 3)
	hit := g.RayTrace(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{1, -1, 1}, 6)
	assert.True(t, hit.Hit)
	assert.Equal(t, [3]int{2, 0, 2}, hit.Cell)
	assert.Equal(t, int8(3), hit.Material)
}

func TestRayFill(t *testing.T) {
	g := NewGrid(8, 1)
	g.Set(0, 0, 0, 1)

	n := g.RayFill(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0}, 10, 4)
	assert.Equal(t, 4, n)
	for y := 1; y <= 4; y++ {
		assert.Equal(t, int8(4), g.Get(0, y, 0), "y=%d", y)
	}
	assert.Equal(t, meshing.Empty, g.Get(0, 5, 0), "origin cell stays empty")
	assert.Equal(t, int8(1), g.Get(0, 0, 0), "stops at the first occupied cell")

	assert.Equal(t, 3, g.RayFill(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 1, 0}, 3, 2))
	assert.Equal(t, int8(2), g.Get(5, 3, 0))
	assert.Equal(t, meshing.Empty, g.Get(5, 4, 0))

	assert.Zero(t, g.RayFill(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{}, 5, 2))
	assert.Zero(t, g.RayFill(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{0, 1, 0}, 5, meshing.Empty))
}
