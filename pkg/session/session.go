// Package session accumulates the operator's key presses into a message.
package session

import (
	"strings"

	"github.com/robotalks/morsetooth/pkg/morse"
)

// Gesture is what the two buttons mean on one tick.
type Gesture int

// Gestures
const (
	GestureNone Gesture = iota
	GestureDot
	GestureDash
	GestureWordBreak
)

// SendMarkers is the number of consecutive word break gestures that end
// a message.
const SendMarkers = 3

var sendSuffix = strings.Repeat(string(morse.Marker), SendMarkers)

// GestureFrom maps the button levels of one tick to a Gesture.
func GestureFrom(primary, secondary bool) Gesture {
	switch {
	case primary && secondary:
		return GestureWordBreak
	case primary:
		return GestureDot
	case secondary:
		return GestureDash
	}
	return GestureNone
}

// Symbol returns the symbol appended to the buffer, 0 for GestureNone.
func (g Gesture) Symbol() byte {
	switch g {
	case GestureDot:
		return morse.Dot
	case GestureDash:
		return morse.Dash
	case GestureWordBreak:
		return morse.Marker
	}
	return 0
}

// Indicator is the character shown in front of the preview. A word break
// is shown as '_' because a blank character is invisible on the display.
func (g Gesture) Indicator() string {
	switch g {
	case GestureDot:
		return "."
	case GestureDash:
		return "-"
	case GestureWordBreak:
		return "_"
	}
	return ""
}

// String implements fmt.Stringer.
func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureDot:
		return "dot"
	case GestureDash:
		return "dash"
	case GestureWordBreak:
		return "break"
	}
	return "unknown"
}

// Session is the in-progress local message.
type Session struct {
	buf  []byte
	last Gesture
}

// Update applies one tick of button levels and returns the gesture
// recognized. The buffer is untouched on GestureNone.
func (s *Session) Update(primary, secondary bool) Gesture {
	g := GestureFrom(primary, secondary)
	s.last = g
	if sym := g.Symbol(); sym != 0 {
		s.buf = append(s.buf, sym)
	}
	return g
}

// Buffer returns the accumulated raw Morse.
func (s *Session) Buffer() string {
	return string(s.buf)
}

// Last returns the gesture of the latest Update.
func (s *Session) Last() Gesture {
	return s.last
}

// Preview renders the gesture indicator followed by the decoded buffer
// between delimiters, e.g. ". :HE:".
func (s *Session) Preview(d *morse.Decoder) string {
	return s.last.Indicator() + " :" + d.Decipher(s.Buffer()) + ":"
}

// SendPending reports whether the buffer ends with the send gesture.
func (s *Session) SendPending() bool {
	return len(s.buf) >= SendMarkers && string(s.buf[len(s.buf)-SendMarkers:]) == sendSuffix
}

// TakeMessage returns the message without the trailing send markers and
// resets the session when the send gesture is present.
func (s *Session) TakeMessage() (string, bool) {
	if !s.SendPending() {
		return "", false
	}
	msg := string(s.buf[:len(s.buf)-SendMarkers])
	s.Reset()
	return msg, true
}

// Reset clears the buffer.
func (s *Session) Reset() {
	s.buf = s.buf[:0]
	s.last = GestureNone
}
