package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionPause
	ActionQuit
	ActionToggleEdit
	ActionGrowX
	ActionGrowY
	ActionGrowZ
	ActionResetScale
	ActionReload
	ActionMaterial1
	ActionMaterial2
	ActionMaterial3
	ActionMaterial4
	ActionMaterial5
	ActionMaterial6
	ActionMaterial7
	ActionMaterial8
	ActionRemove
	ActionPlace
	ActionShoot
	ActionCount // Sentinel value for array sizing
)

// Material returns the material index selected by a material action, or
// false for any other action.
func (a Action) Material() (int8, bool) {
	if a < ActionMaterial1 || a > ActionMaterial8 {
		return 0, false
	}
	return int8(a - ActionMaterial1), true
}

// InputManager maps physical keys and buttons to logical actions and keeps
// per-frame edge state for them
type InputManager struct {
	mu sync.RWMutex

	// One key can map to multiple actions
	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool

	// Reset by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates an InputManager with the default bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionMoveUp)
	im.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	im.BindKey(glfw.KeyEscape, ActionPause)
	im.BindKey(glfw.KeyQ, ActionQuit)
	im.BindKey(glfw.KeyE, ActionToggleEdit)
	im.BindKey(glfw.KeyX, ActionGrowX)
	im.BindKey(glfw.KeyY, ActionGrowY)
	im.BindKey(glfw.KeyZ, ActionGrowZ)
	im.BindKey(glfw.KeyR, ActionResetScale)
	im.BindKey(glfw.KeyF5, ActionReload)
	for i := range 8 {
		im.BindKey(glfw.Key1+glfw.Key(i), ActionMaterial1+Action(i))
	}

	im.BindMouseButton(glfw.MouseButtonLeft, ActionRemove)
	im.BindMouseButton(glfw.MouseButtonRight, ActionPlace)
	im.BindMouseButton(glfw.MouseButtonMiddle, ActionShoot)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event from the GLFW callback
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event from the GLFW
// callback
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.mouseButtonToActions[button], action == glfw.Press)
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// PostUpdate must be called at the end of each frame, after all input
// checks are done
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	clear(im.justPressed[:])
	clear(im.justReleased[:])
}

// Release drops every held action, e.g. when the window loses focus.
func (im *InputManager) Release() {
	im.mu.Lock()
	defer im.mu.Unlock()

	clear(im.currentState[:])
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Axis returns +1, -1 or 0 from a pair of opposing actions.
func (im *InputManager) Axis(positive, negative Action) float32 {
	var v float32
	if im.IsActive(positive) {
		v++
	}
	if im.IsActive(negative) {
		v--
	}
	return v
}
