package game

import (
	"math/rand"
	"time"
)

// Run tuning. Speeds and heights are in the original's integer units; the
// frame builder scales them into scene coordinates.
const (
	initialScrollSpeed  = 5
	initialJumpSpeed    = 4
	initialObstacleSpan = 400

	jumpStartHeight = 1
	jumpApexHeight  = 152

	collisionHeight  = 75
	collisionBandMin = -150
	collisionBandMax = -100

	dayCycleTicks  = 1000
	speedIncrement = 2

	spanRandomRange = 500
	spanRandomBase  = 400
	speedRandomBase = 6
)

// State is the whole simulation: counters, speeds, jump phase and the
// player's toggles. It is advanced once per rendered frame.
type State struct {
	Tick    int
	DayTick int
	Daytime bool

	ScrollSpeed int
	JumpSpeed   int

	DinoHeight     int
	ObstacleOffset int
	Span           int

	Jumping   bool
	ascending bool

	ColorOffset int
	GameOver    bool
	Debug       bool

	rng *rand.Rand
}

// Events reports what happened during one Advance.
type Events struct {
	DayFlipped        bool
	ObstacleRespawned bool
	Collided          bool
}

// NewState creates a fresh run. Seed 0 draws one from the clock.
func NewState(seed int64) *State {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &State{rng: rand.New(rand.NewSource(seed))}
	s.Restart()
	return s
}

// Advance runs one simulation tick. After a collision the world freezes
// until Restart.
func (s *State) Advance() Events {
	var ev Events
	if s.GameOver {
		return ev
	}

	s.Tick++
	s.DayTick++

	if s.DayTick == dayCycleTicks {
		s.DayTick = 0
		s.Daytime = !s.Daytime
		s.ScrollSpeed += speedIncrement
		s.JumpSpeed += speedIncrement
		ev.DayFlipped = true
	}

	s.ObstacleOffset -= s.ScrollSpeed
	if s.ObstacleOffset <= -(s.Span * 2) {
		s.Span = s.rng.Intn(spanRandomRange) + spanRandomBase
		s.ScrollSpeed = s.rng.Intn(s.ScrollSpeed) + speedRandomBase
		s.ObstacleOffset = s.Span
		ev.ObstacleRespawned = true
	}

	if s.Jumping {
		if s.ascending {
			s.DinoHeight += s.JumpSpeed
			if s.DinoHeight >= jumpApexHeight {
				s.ascending = false
			}
		} else {
			s.DinoHeight -= s.JumpSpeed
			if s.DinoHeight <= 0 {
				s.DinoHeight = 0
				s.Jumping = false
			}
		}
	}

	if !s.Debug && s.DinoHeight < collisionHeight &&
		s.ObstacleOffset >= collisionBandMin && s.ObstacleOffset <= collisionBandMax {
		s.GameOver = true
		ev.Collided = true
	}

	return ev
}

// TriggerJump starts a jump. Rejected while airborne or after game over.
func (s *State) TriggerJump() bool {
	if s.Jumping || s.GameOver {
		return false
	}
	s.Jumping = true
	s.ascending = true
	s.DinoHeight = jumpStartHeight
	return true
}

// Restart resets the run to its initial values. The color selection and
// debug toggle are player settings and survive the reset.
func (s *State) Restart() {
	s.Tick = 0
	s.DayTick = 0
	s.Daytime = true
	s.ScrollSpeed = initialScrollSpeed
	s.JumpSpeed = initialJumpSpeed
	s.DinoHeight = 0
	s.ObstacleOffset = initialObstacleSpan
	s.Span = initialObstacleSpan
	s.Jumping = false
	s.ascending = false
	s.GameOver = false
}

// SetColorOffset selects the palette shift index, clamped to 0 through 4.
func (s *State) SetColorOffset(n int) {
	if n < 0 {
		n = 0
	}
	if n > 4 {
		n = 4
	}
	s.ColorOffset = n
}

// Score is the number of ticks survived this run.
func (s *State) Score() int {
	return s.Tick
}
