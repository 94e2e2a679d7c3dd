// Package device defines the peripherals a station drives and simulated
// implementations of them.
package device

import "time"

// Button is a push button.
type Button interface {
	// IsPressed reports the current level.
	IsPressed() bool
	// WasPressed reports whether the button was pressed since the last
	// call, and resets that state.
	WasPressed() bool
}

// RenderOptions controls how text is rendered.
type RenderOptions struct {
	// Scroll moves text across the display, otherwise it is shown still.
	Scroll bool
	// Wait blocks until scrolling finishes.
	Wait bool
	// Loop repeats scrolling until the next Render or Clear.
	Loop bool
	// Delay is the time per scrolled column, 0 for DefaultScrollDelay.
	Delay time.Duration
}

// Display is the output surface.
type Display interface {
	Render(text string, opts RenderOptions)
	Clear()
	// IsIdle reports whether nothing is visible right now.
	IsIdle() bool
}

// Pin is a digital output.
type Pin interface {
	Set(on bool)
}

// Player plays audio cues.
type Player interface {
	Play(tune string, wait bool)
}

// Tunes known by the simulated player.
const (
	TuneJumpUp   = "JUMP_UP"
	TuneJumpDown = "JUMP_DOWN"
)

// DefaultScrollDelay is the per-column scroll time when none is given.
const DefaultScrollDelay = 150 * time.Millisecond

// Either combines buttons into one which is pressed when any of them is.
// Every button is read on each call so queued inputs stay aligned.
func Either(buttons ...Button) Button {
	return eitherButton(buttons)
}

type eitherButton []Button

func (b eitherButton) IsPressed() bool {
	pressed := false
	for _, btn := range b {
		if btn.IsPressed() {
			pressed = true
		}
	}
	return pressed
}

func (b eitherButton) WasPressed() bool {
	pressed := false
	for _, btn := range b {
		if btn.WasPressed() {
			pressed = true
		}
	}
	return pressed
}
