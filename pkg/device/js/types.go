// Package js reads a Linux joystick and exposes two of its buttons as the
// keys of a station.
package js

import "io"

// Event is a joystick event.
type Event interface {
	// IsInit indicates the event reports the initial state.
	IsInit() bool
	// Index returns the axis or button number.
	Index() int
}

// ButtonEvent reports a button level change.
type ButtonEvent interface {
	Event
	Pressed() bool
}

// Device is an opened joystick.
type Device interface {
	io.Closer
	Index() int
	Name() string
	ButtonCount() int
	// ReadEvent blocks until the next event.
	ReadEvent() (Event, error)
}
