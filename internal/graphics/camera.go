package graphics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	mouseSensitivity = 0.1
	maxPitch         = 89.0
)

// Camera is a free-flying first person camera.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	lastX, lastY float64
	firstMouse   bool
}

func NewCamera(width, height int, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         -90,
		AspectRatio: float32(width) / float32(max(height, 1)),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		firstMouse:  true,
	}
}

// Resize updates the aspect ratio.
func (c *Camera) Resize(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

// Look turns the camera by the cursor movement since the last call.
func (c *Camera) Look(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}

	xoffset := float32(xpos-c.lastX) * mouseSensitivity
	yoffset := float32(c.lastY-ypos) * mouseSensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw += xoffset
	c.Pitch = mgl32.Clamp(c.Pitch+yoffset, -maxPitch, maxPitch)
}

// ResetMouse makes the next Look call only record the cursor.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(c.Yaw)
	p := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}.Normalize()
}

// Move translates the camera in its horizontal frame: forward along the
// view direction flattened onto xz, right perpendicular to it, up along y.
func (c *Camera) Move(forward, right, up, distance float32) {
	f := c.Front()
	flat := mgl32.Vec3{f.X(), 0, f.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	side := flat.Cross(mgl32.Vec3{0, 1, 0})
	delta := flat.Mul(forward).Add(side.Mul(right)).Add(mgl32.Vec3{0, up, 0})
	if delta.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(delta.Normalize().Mul(distance))
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}
