package main

import (
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxel-terrain/internal/input"
	"voxel-terrain/internal/terrain"
)

func setupInputHandlers(window *glfw.Window, v *viewer) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if v.paused {
			return
		}
		v.camera.Look(xpos, ypos)
		v.editor.Aim(v.camera.Front())
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		v.input.HandleMouseButtonEvent(button, action)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		v.input.HandleKeyEvent(key, action)
	})

	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			v.input.Release()
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		v.camera.Resize(fbWidth, fbHeight)
	})
}

var growActions = map[input.Action]terrain.Axis{
	input.ActionGrowX: terrain.AxisX,
	input.ActionGrowY: terrain.AxisY,
	input.ActionGrowZ: terrain.AxisZ,
}

// handleActions runs the edits triggered this frame.
func (v *viewer) handleActions(w *glfw.Window) {
	im := v.input
	if im.JustPressed(input.ActionQuit) {
		w.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionPause) {
		v.paused = !v.paused
		if v.paused {
			w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			v.camera.ResetMouse()
		}
	}
	if v.paused {
		return
	}

	origin, dir := v.camera.Position, v.camera.Front()
	if im.JustPressed(input.ActionRemove) {
		if m, err := v.editor.Remove(origin, dir); err != nil {
			log.Printf("remove: %v", err)
		} else if m >= 0 {
			log.Printf("removed material %d", m)
		}
	}
	if im.JustPressed(input.ActionPlace) {
		if _, err := v.editor.Place(origin, dir); err != nil {
			log.Printf("place: %v", err)
		}
	}
	if im.JustPressed(input.ActionShoot) {
		if n, err := v.editor.Shoot(origin, dir); err != nil {
			log.Printf("shoot: %v", err)
		} else if n > 0 {
			log.Printf("filled %d cells", n)
		}
	}
	if im.JustPressed(input.ActionToggleEdit) {
		on, err := v.editor.ToggleEditMode()
		logErr("edit mode", err)
		log.Printf("edit mode: %v", on)
	}
	for action, axis := range growActions {
		if im.JustPressed(action) {
			logErr("grow scale", v.editor.GrowScale(axis))
		}
	}
	if im.JustPressed(input.ActionResetScale) {
		logErr("reset scale", v.editor.ResetScale())
	}
	if im.JustPressed(input.ActionReload) {
		logErr("reload view", v.streamer.Invalidate())
	}
	for a := input.ActionMaterial1; a <= input.ActionMaterial8; a++ {
		if m, ok := a.Material(); ok && im.JustPressed(a) {
			logErr("select material", v.editor.SetMaterial(m))
		}
	}
}

// move applies the movement actions to the camera.
func (v *viewer) move(dt float32) {
	im := v.input
	v.camera.Move(
		im.Axis(input.ActionMoveForward, input.ActionMoveBackward),
		im.Axis(input.ActionMoveRight, input.ActionMoveLeft),
		im.Axis(input.ActionMoveUp, input.ActionMoveDown),
		moveSpeed*dt,
	)
}

func logErr(what string, err error) {
	if err != nil {
		log.Printf("%s: %v", what, err)
	}
}
