// Package radio defines the short range link between stations.
package radio

import (
	"errors"
	"fmt"
)

// Radio is a broadcast link. Payloads are raw Morse strings, delivered as
// is with no acknowledgment.
type Radio interface {
	// Receive returns at most one pending payload without blocking.
	Receive() (string, bool)
	// Send broadcasts a payload, fire and forget.
	Send(payload string) error
	// Configure tunes to a channel and sets the transmit power.
	Configure(Settings) error
}

// DropCounter is implemented by radios which count payloads dropped
// because the receive queue was full.
type DropCounter interface {
	Dropped() int
}

// Settings of a radio.
type Settings struct {
	Channel int
	Power   int
}

// Ranges
const (
	MinChannel = 0
	MaxChannel = 255
	MinPower   = 1
	MaxPower   = 7

	// DefaultQueueLength is the number of payloads buffered until
	// received. Newer payloads are dropped when full.
	DefaultQueueLength = 3
)

var (
	// ErrNotConfigured indicates Send before Configure.
	ErrNotConfigured = errors.New("radio not configured")
	// ErrClosed indicates the radio was closed.
	ErrClosed = errors.New("radio closed")
)

// Validate checks the ranges of settings.
func (s Settings) Validate() error {
	if s.Channel < MinChannel || s.Channel > MaxChannel {
		return fmt.Errorf("channel %d out of range [%d, %d]", s.Channel, MinChannel, MaxChannel)
	}
	if s.Power < MinPower || s.Power > MaxPower {
		return fmt.Errorf("power %d out of range [%d, %d]", s.Power, MinPower, MaxPower)
	}
	return nil
}
