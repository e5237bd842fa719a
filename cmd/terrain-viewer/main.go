package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/profiling"
	"voxel-terrain/internal/terrain"
)

const slowFrame = 33 * time.Millisecond

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "terrain.yaml", "path to the YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}

	window, err := setupWindow(cfg.Render)
	if err != nil {
		glfw.Terminate()
		log.Fatalf("window: %v", err)
	}

	v, err := setupViewer(cfg, window)
	if err != nil {
		glfw.Terminate()
		log.Fatalf("viewer: %v", err)
	}
	// closer may run this from its signal goroutine: no GL calls.
	closer.Bind(v.shutdown)

	setupInputHandlers(window, v)
	runLoop(window, v)

	v.releaseGL()
	glfw.Terminate()
	closer.Close()
}

func runLoop(window *glfw.Window, v *viewer) {
	frames := 0
	lastFPSCheckTime := time.Now()
	lastTime := time.Now()

	for !window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		v.handleActions(window)
		if !v.paused {
			v.move(dt)
		}
		if _, err := v.streamer.Update(v.camera.Position); err != nil {
			log.Printf("view upload: %v", err)
		}

		render(v)
		window.SwapBuffers()
		v.input.PostUpdate()
		glfw.PollEvents()
		frames++

		if d := time.Since(now); d > slowFrame {
			log.Printf("slow frame %.1fms: %s", float64(d.Microseconds())/1000.0, profiling.TopN(5))
		}
		if time.Since(lastFPSCheckTime) >= time.Second {
			view := v.store.Stats(terrain.View)
			window.SetTitle(fmt.Sprintf("terrain-viewer | %d fps | %d cells | chunk %v | edit=%v",
				frames, view.Cells, v.streamer.RecentChunk(), v.editor.EditMode()))
			frames = 0
			lastFPSCheckTime = time.Now()
		}
		v.limiter.Wait(v.cfg.Render.FPSLimit)
	}
}

var previewTint = mgl32.Vec3{0.85, 0.9, 1.0}

func render(v *viewer) {
	defer profiling.Track("viewer.Render")()
	gl.ClearColor(0.53, 0.71, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	v.backend.SetCamera(v.camera.ProjectionMatrix(), v.camera.ViewMatrix())
	v.store.Bind()
	v.store.Draw(terrain.View)

	if v.editor.EditMode() {
		cursor := v.editor.Cursor(v.camera.Position, v.camera.Front())
		v.backend.SetModel(mgl32.Translate3D(cursor.Elem()))
		v.backend.SetTint(previewTint, 0.35)
		v.store.Draw(terrain.Preview)
		v.backend.SetTint(mgl32.Vec3{}, 0)
	}
}
