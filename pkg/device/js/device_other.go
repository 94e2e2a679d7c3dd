// +build !linux

package js

import "errors"

// ErrUnsupported is returned on platforms without joystick support.
var ErrUnsupported = errors.New("joystick not supported on this platform")

// Open is not supported.
func Open(index int) (Device, error) {
	return nil, ErrUnsupported
}

// Detect is not supported.
func Detect(startIndex int) (Device, error) {
	return nil, ErrUnsupported
}
