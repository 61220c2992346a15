// Package camera provides the camera used for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/dinorun/pkg/math"
)

var worldUp = math.Vec3{Y: 1}

// FlyCamera is a free-look camera with yaw/pitch orientation and movement
// along the look direction. At its default pose (origin, facing -Z) it
// frames the runner scene; debug mode flies it around.
type FlyCamera struct {
	Position math.Vec3

	Yaw   float32 // Horizontal angle (radians); -pi/2 faces -Z
	Pitch float32 // Vertical angle (radians), clamped to +-MaxPitch

	// Constraints
	MaxPitch float32

	// Sensitivity
	LookSensitivity float32
	MoveSpeed       float32
}

// NewFlyCamera creates a fly camera at the default runner pose.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Yaw:             float32(-gomath.Pi / 2),
		Pitch:           0,
		MaxPitch:        1.55, // just shy of straight up/down
		LookSensitivity: 0.002,
		MoveSpeed:       0.1,
	}
}

// Front returns the unit look direction.
func (c *FlyCamera) Front() math.Vec3 {
	cy := float32(gomath.Cos(float64(c.Yaw)))
	sy := float32(gomath.Sin(float64(c.Yaw)))
	cp := float32(gomath.Cos(float64(c.Pitch)))
	sp := float32(gomath.Sin(float64(c.Pitch)))

	return math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
}

// Right returns the unit right direction.
func (c *FlyCamera) Right() math.Vec3 {
	return c.Front().Cross(worldUp).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front()), worldUp)
}

// HandleLook applies a relative mouse delta to yaw and pitch.
func (c *FlyCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	// Clamp pitch
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// HandleMovement moves along the look direction. Forward and right are
// -1..1 axes from the held movement keys.
func (c *FlyCamera) HandleMovement(forward, right float32) {
	c.Position = c.Position.Add(c.Front().Scale(forward * c.MoveSpeed))
	c.Position = c.Position.Add(c.Right().Scale(right * c.MoveSpeed))
}

// Reset returns the camera to the default runner framing.
func (c *FlyCamera) Reset() {
	c.Position = math.Vec3{}
	c.Yaw = float32(-gomath.Pi / 2)
	c.Pitch = 0
}
