// Package input handles SDL2 input events and keyboard state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Input handles event polling and keyboard state. Key queries compare the
// current keyboard snapshot against the previous frame's, so a held key
// reports JustPressed exactly once.
type Input struct {
	events []Event

	keys     []uint8
	prevKeys []uint8

	mouseDX int32
	mouseDY int32
}

// New creates a new input handler.
func New() *Input {
	state := sdl.GetKeyboardState()
	return &Input{
		events:   make([]Event, 0, 16),
		keys:     make([]uint8, len(state)),
		prevKeys: make([]uint8, len(state)),
	}
}

// Update polls SDL events and snapshots the keyboard.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY = 0, 0
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += e.XRel
			i.mouseDY += e.YRel
		}
	}

	// SDL owns the returned slice, so the snapshot has to be a copy.
	copy(i.prevKeys, i.keys)
	copy(i.keys, sdl.GetKeyboardState())

	return quit
}

// Events returns the window events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Down reports whether a key is currently held.
func (i *Input) Down(scancode sdl.Scancode) bool {
	return i.keys[scancode] != 0
}

// JustPressed reports whether a key went down between the last two Updates.
func (i *Input) JustPressed(scancode sdl.Scancode) bool {
	return i.keys[scancode] != 0 && i.prevKeys[scancode] == 0
}

// MouseDelta returns the relative mouse motion since the last Update.
func (i *Input) MouseDelta() (int32, int32) {
	return i.mouseDX, i.mouseDY
}
