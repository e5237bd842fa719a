package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestEdgesLastOneFrame(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyE, glfw.Press)
	assert.True(t, im.JustPressed(ActionToggleEdit))
	assert.True(t, im.IsActive(ActionToggleEdit))

	im.HandleKeyEvent(glfw.KeyE, glfw.Repeat)
	im.PostUpdate()
	assert.False(t, im.JustPressed(ActionToggleEdit))
	assert.True(t, im.IsActive(ActionToggleEdit))

	im.HandleKeyEvent(glfw.KeyE, glfw.Release)
	assert.True(t, im.JustReleased(ActionToggleEdit))
	assert.False(t, im.IsActive(ActionToggleEdit))
}

func TestMouseBindings(t *testing.T) {
	im := NewInputManager()
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	assert.True(t, im.JustPressed(ActionPlace))
	assert.False(t, im.JustPressed(ActionRemove))

	im.HandleMouseButtonEvent(glfw.MouseButtonMiddle, glfw.Press)
	assert.True(t, im.JustPressed(ActionShoot))
}

func TestMaterialActions(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.Key3, glfw.Press)
	assert.True(t, im.JustPressed(ActionMaterial3))

	m, ok := ActionMaterial3.Material()
	assert.True(t, ok)
	assert.Equal(t, int8(2), m)
	_, ok = ActionPlace.Material()
	assert.False(t, ok)
}

func TestAxisAndRebinding(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.Equal(t, float32(1), im.Axis(ActionMoveForward, ActionMoveBackward))
	im.HandleKeyEvent(glfw.KeyS, glfw.Press)
	assert.Equal(t, float32(0), im.Axis(ActionMoveForward, ActionMoveBackward))

	im.Release()
	assert.False(t, im.IsActive(ActionMoveForward))

	im.UnbindKey(glfw.KeyW)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.False(t, im.IsActive(ActionMoveForward))
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))

	assert.False(t, im.IsActive(ActionCount))
	im.BindKey(glfw.KeyK, ActionCount)
}
