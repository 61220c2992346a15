package camera

import (
	"testing"

	"github.com/Faultbox/dinorun/pkg/math"
)

func TestDefaultPoseFacesMinusZ(t *testing.T) {
	c := NewFlyCamera()

	front := c.Front()
	if abs(front.X) > 0.001 || abs(front.Y) > 0.001 || abs(front.Z+1) > 0.001 {
		t.Errorf("default front = %v, want (0, 0, -1)", front)
	}

	// At the default pose the view matrix is the identity.
	view := c.ViewMatrix()
	id := math.Identity()
	for i := 0; i < 16; i++ {
		if abs(view[i]-id[i]) > 0.001 {
			t.Fatalf("view element %d: got %f, want %f", i, view[i], id[i])
		}
	}
}

func TestHandleLookClampsPitch(t *testing.T) {
	c := NewFlyCamera()

	// Look straight up well past the clamp.
	c.HandleLook(0, -10000)
	if c.Pitch > c.MaxPitch {
		t.Errorf("pitch %f exceeds max %f", c.Pitch, c.MaxPitch)
	}

	c.HandleLook(0, 20000)
	if c.Pitch < -c.MaxPitch {
		t.Errorf("pitch %f exceeds min %f", c.Pitch, -c.MaxPitch)
	}
}

func TestHandleMovementFollowsFront(t *testing.T) {
	c := NewFlyCamera()

	c.HandleMovement(1, 0)
	if c.Position.Z >= 0 {
		t.Errorf("forward movement should decrease Z, position = %v", c.Position)
	}

	c = NewFlyCamera()
	c.HandleMovement(0, 1)
	if c.Position.X <= 0 {
		t.Errorf("right movement should increase X, position = %v", c.Position)
	}
}

func TestReset(t *testing.T) {
	c := NewFlyCamera()
	c.HandleMovement(1, 1)
	c.HandleLook(500, 300)

	c.Reset()

	if c.Position != (math.Vec3{}) {
		t.Errorf("position after reset = %v, want origin", c.Position)
	}
	if c.Pitch != 0 {
		t.Errorf("pitch after reset = %f, want 0", c.Pitch)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
