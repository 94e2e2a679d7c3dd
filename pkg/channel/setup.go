// Package channel lets the operator pick the radio channel with the two
// buttons before the station starts ticking.
package channel

import (
	"context"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/morsetooth/pkg/device"
	"github.com/robotalks/morsetooth/pkg/radio"
)

// Defaults
const (
	DefaultBits         = 5
	DefaultChannel      = 25
	DefaultPollInterval = 10 * time.Millisecond
	MaxBits             = 7

	Prompt = "SET CHANNEL"
)

// Setup reads a channel number entered in binary: primary is 0, secondary
// is 1. If the very first press is primary, the default channel is used
// without entering any digits.
type Setup struct {
	Primary   device.Button
	Secondary device.Button
	Display   device.Display

	Bits         int
	Default      int
	PollInterval time.Duration
	ScrollDelay  time.Duration
}

// Read blocks until a channel is entered or ctx is done.
func (s *Setup) Read(ctx context.Context) (int, error) {
	s.Display.Render(Prompt, device.RenderOptions{Scroll: true, Loop: true, Delay: s.ScrollDelay})
	binary, err := s.waitPress(ctx)
	if err != nil {
		return 0, err
	}
	if !binary {
		glog.Infof("using default channel %d", s.Default)
		return s.Default, nil
	}
	s.Display.Clear()

	bits := s.Bits
	if bits <= 0 {
		bits = DefaultBits
	}
	channel := 0
	for i := 0; i < bits; i++ {
		bit, err := s.waitPress(ctx)
		if err != nil {
			return 0, err
		}
		channel <<= 1
		digit := "0"
		if bit {
			channel |= 1
			digit = "1"
		}
		s.Display.Render(digit, device.RenderOptions{})
	}
	glog.Infof("channel %d entered", channel)
	return channel, nil
}

// Apply reads the channel, configures the radio and shows the channel
// number until it scrolled out.
func (s *Setup) Apply(ctx context.Context, r radio.Radio, power int) (radio.Settings, error) {
	channel, err := s.Read(ctx)
	if err != nil {
		return radio.Settings{}, err
	}
	settings := radio.Settings{Channel: channel, Power: power}
	if err = r.Configure(settings); err != nil {
		return settings, err
	}
	s.Display.Clear()
	s.Display.Render(strconv.Itoa(channel), device.RenderOptions{Scroll: true, Wait: true, Delay: s.ScrollDelay})
	return settings, nil
}

// waitPress returns false for primary and true for secondary.
func (s *Setup) waitPress(ctx context.Context) (bool, error) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if s.Primary.WasPressed() {
			return false, nil
		}
		if s.Secondary.WasPressed() {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}
