package graphics

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// FlyCamera is a free-flying first-person camera. Yaw and pitch are in degrees;
// yaw -90 looks down -Z.
type FlyCamera struct {
	Position    mgl32.Vec3
	Yaw         float64
	Pitch       float64
	Speed       float32
	Sensitivity float64
	FOV         float32
	Aspect      float32
	Near, Far   float32

	lastX, lastY float64
	firstMouse   bool
}

func NewFlyCamera(pos mgl32.Vec3, width, height int) *FlyCamera {
	c := &FlyCamera{
		Position:    pos,
		Yaw:         -90,
		Speed:       20,
		Sensitivity: 0.1,
		FOV:         45,
		Near:        0.1,
		Far:         1000,
		firstMouse:  true,
	}
	c.SetViewport(width, height)
	return c
}

func (c *FlyCamera) SetViewport(width, height int) {
	if height <= 0 {
		height = 1
	}
	c.Aspect = float32(width) / float32(height)
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(c.Yaw))
	pitch := mgl32.DegToRad(float32(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(float64(yaw)) * math.Cos(float64(pitch))),
		float32(math.Sin(float64(pitch))),
		float32(math.Sin(float64(yaw)) * math.Cos(float64(pitch))),
	}.Normalize()
}

// Right returns the horizontal unit vector to the camera's right.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Front().Cross(worldUp).Normalize()
}

func (c *FlyCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), worldUp)
}

func (c *FlyCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Look turns the camera by a mouse delta in pixels. Pitch stays within ±89°.
func (c *FlyCamera) Look(dx, dy float64) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = math.Max(-89, math.Min(89, c.Pitch+dy*c.Sensitivity))
}

// HandleCursor is a glfw cursor callback body. The first event after
// ResetMouse only records the position.
func (c *FlyCamera) HandleCursor(x, y float64) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}
	dx, dy := x-c.lastX, c.lastY-y
	c.lastX, c.lastY = x, y
	c.Look(dx, dy)
}

// ResetMouse drops the stored cursor position, e.g. after the cursor is recaptured.
func (c *FlyCamera) ResetMouse() { c.firstMouse = true }

// Move translates the camera by axis inputs in [-1,1] scaled by Speed*dt.
func (c *FlyCamera) Move(forward, right, up float32, dt float64) {
	step := c.Speed * float32(dt)
	c.Position = c.Position.
		Add(c.Front().Mul(forward * step)).
		Add(c.Right().Mul(right * step)).
		Add(worldUp.Mul(up * step))
}

// PollKeys moves the camera from WASD, space and left shift.
func (c *FlyCamera) PollKeys(w *glfw.Window, dt float64) {
	axis := func(pos, neg glfw.Key) float32 {
		var v float32
		if w.GetKey(pos) == glfw.Press {
			v++
		}
		if w.GetKey(neg) == glfw.Press {
			v--
		}
		return v
	}
	c.Move(
		axis(glfw.KeyW, glfw.KeyS),
		axis(glfw.KeyD, glfw.KeyA),
		axis(glfw.KeySpace, glfw.KeyLeftShift),
		dt,
	)
}
