package main

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/graphics"
	"voxel-terrain/internal/input"
	"voxel-terrain/internal/meshing"
	"voxel-terrain/internal/terrain"
	"voxel-terrain/internal/world"
)

const (
	moveSpeed = 8.0
	spawnY    = 3.0
)

func setupWindow(cfg config.Render) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "terrain-viewer", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		return nil, err
	}

	// FPSLimiter paces frames instead of V-Sync
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	gl.Enable(gl.DEPTH_TEST)

	return window, nil
}

// viewer holds every component of the running application.
type viewer struct {
	cfg     config.Config
	camera  *graphics.Camera
	input   *input.InputManager
	limiter FPSLimiter

	pool     *meshing.WorkerPool
	compiler *meshing.Compiler
	backend  *graphics.Backend
	store    *terrain.Store
	grid     *world.Grid
	streamer *terrain.Streamer
	editor   *terrain.Editor

	paused bool
}

func setupViewer(cfg config.Config, window *glfw.Window) (*viewer, error) {
	atlas := meshing.NewAtlas(cfg.Atlas)
	topology := meshing.DefaultTopology(atlas)

	backend, err := graphics.NewBackend(cfg.Render, cfg.Atlas, topology.Layout())
	if err != nil {
		return nil, err
	}

	pool := meshing.NewWorkerPool(cfg.Meshing.Workers)
	compiler := meshing.NewCompiler(topology, pool, cfg.Meshing.Grain)
	store, err := terrain.NewStore(cfg.Meshing, compiler, backend)
	if err != nil {
		pool.Shutdown()
		backend.Release()
		return nil, err
	}

	grid := world.NewGrid(cfg.World.ChunkSize, cfg.World.ViewRadius)
	n := seedFloor(grid, cfg.World, atlas.Materials())
	log.Printf("seeded %d cells, topology=%s workers=%d", n, topology.Name(), pool.Workers())

	streamer := terrain.NewStreamer(grid, store)
	w, h := window.GetSize()
	v := &viewer{
		cfg:      cfg,
		camera:   graphics.NewCamera(w, h, mgl32.Vec3{0, spawnY, 0}),
		input:    input.NewInputManager(),
		pool:     pool,
		compiler: compiler,
		backend:  backend,
		store:    store,
		grid:     grid,
		streamer: streamer,
		editor:   terrain.NewEditor(grid, store, streamer, cfg.World, atlas.Materials()),
	}
	if err := streamer.Load(v.camera.Position); err != nil {
		v.releaseGL()
		v.shutdown()
		return nil, fmt.Errorf("initial view: %w", err)
	}
	v.editor.Aim(v.camera.Front())
	return v, nil
}

// seedFloor lays a flat floor at y=0 covering the streaming range, striped
// by material, plus one column of every material along the z axis. It
// returns the number of cells written.
func seedFloor(grid *world.Grid, cfg config.World, materials int) int {
	r := cfg.ChunkSize * (cfg.ViewRadius + 1)
	n := 0
	band := max(cfg.ChunkSize/2, 1)
	for x := -r; x < r; x += band {
		m := int8(mod(x/band, materials))
		n += grid.Fill([3]int{x, 0, -r}, [3]int{x + band - 1, 0, r - 1}, m)
	}
	for i := range materials {
		z := -2 * (i + 1)
		n += grid.Fill([3]int{4, 1, z}, [3]int{4, 1 + i%4, z}, int8(i))
	}
	return n
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// releaseGL frees GPU resources. It must run on the GL thread.
func (v *viewer) releaseGL() {
	v.store.Release()
	v.backend.Release()
}

func (v *viewer) shutdown() {
	v.pool.Shutdown()
	s := v.compiler.Stats()
	log.Printf("compiled %d passes, %d cells, %d capacity misses", s.Compiles, s.Cells, s.CapacityMisses)
}
