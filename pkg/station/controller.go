// Package station ties the session, the inbox and the peripherals together
// in one tick.
package station

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/morsetooth/pkg/device"
	fx "github.com/robotalks/morsetooth/pkg/framework"
	"github.com/robotalks/morsetooth/pkg/inbox"
	"github.com/robotalks/morsetooth/pkg/morse"
	"github.com/robotalks/morsetooth/pkg/msgs"
	"github.com/robotalks/morsetooth/pkg/radio"
	"github.com/robotalks/morsetooth/pkg/session"
)

// Peripherals are the devices a station drives. Light and Player are
// optional.
type Peripherals struct {
	Primary   device.Button
	Secondary device.Button
	Display   device.Display
	Light     device.Pin
	Player    device.Player
}

// Defaults
const (
	DefaultScrollDelay = 200 * time.Millisecond
	// DefaultBreakHold is the number of ticks the buttons are ignored
	// after a word break.
	DefaultBreakHold = 1
)

// StatusReporter publishes status changes. Radios reaching a monitor
// implement it.
type StatusReporter interface {
	ReportStatus(context.Context, *msgs.StationStatus) error
}

// Controller runs one station. All state is owned by the tick, only the
// status snapshot is shared.
type Controller struct {
	Radio        radio.Radio
	Primary      device.Button
	Secondary    device.Button
	Display      device.Display
	Light        device.Pin
	Player       device.Player
	Decoder      *morse.Decoder
	Separator    string
	ScrollDelay  time.Duration
	BreakHold    int
	ReceivedTune string
	SentTune     string
	Unit         string
	Reporter     StatusReporter

	inbox   inbox.Queue
	session session.Session
	hold    int

	statusLock    sync.Mutex
	status        msgs.StationStatus
	statusChanged bool
}

// NewController creates a Controller with defaults. The radio becomes the
// status reporter if it is able to.
func NewController(r radio.Radio, p *Peripherals) *Controller {
	c := &Controller{
		Radio:         r,
		Primary:       p.Primary,
		Secondary:     p.Secondary,
		Display:       p.Display,
		Light:         p.Light,
		Player:        p.Player,
		Decoder:       morse.NewDecoder(),
		Separator:     DefaultSeparator,
		ScrollDelay:   DefaultScrollDelay,
		BreakHold:     DefaultBreakHold,
		ReceivedTune:  device.TuneJumpUp,
		SentTune:      device.TuneJumpDown,
		statusChanged: true,
	}
	if reporter, ok := r.(StatusReporter); ok {
		c.Reporter = reporter
	}
	return c
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, c)
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	idle := c.Display.IsIdle()
	if idle {
		c.setLight(false)
	}

	var received, shown bool
	if payload, ok := c.Radio.Receive(); ok && payload != "" {
		c.inbox.Push(payload)
		received = true
		glog.V(1).Infof("received %q, %d queued", payload, c.inbox.Len())
	}

	if idle && c.inbox.Len() > 0 {
		raw, _ := c.inbox.Pop()
		text := strings.Replace(c.Decoder.Decipher(raw)+c.Separator, " ", "_", -1)
		c.setLight(true)
		c.play(c.ReceivedTune)
		c.Display.Render(text, c.scroll())
		shown = true
		glog.Infof("show %q", text)
	}

	gesture := session.GestureNone
	if c.hold > 0 {
		c.hold--
	} else {
		gesture = c.session.Update(c.Primary.IsPressed(), c.Secondary.IsPressed())
		if gesture == session.GestureWordBreak {
			c.hold = c.BreakHold
		}
	}
	if gesture != session.GestureNone {
		c.Display.Render(c.session.Preview(c.Decoder), device.RenderOptions{Scroll: true})
	}

	var sent string
	msg, send := c.session.TakeMessage()
	if send {
		if msg == "" {
			glog.V(1).Info("empty message not sent")
			send = false
		} else {
			c.play(c.SentTune)
			sent = msg
		}
	}

	c.updateStatus(func(s *msgs.StationStatus) {
		if received {
			s.Received++
		}
		if shown {
			s.Shown++
		}
		if send {
			s.Sent++
			s.LastSent = sent
		}
		s.Queued = int32(c.inbox.Len())
		s.Buffer = c.session.Buffer()
		if gesture != session.GestureNone {
			s.Preview = c.session.Preview(c.Decoder)
		}
		if counter, ok := c.Radio.(radio.DropCounter); ok {
			s.Dropped = uint64(counter.Dropped())
		}
	})
	if c.takeStatusChange() && c.Reporter != nil {
		cc.PostRunAt(fx.PrLvPostProc, fx.ControlFunc(c.reportStatus))
	}

	if send {
		glog.Infof("send %q", sent)
		return c.Radio.Send(sent)
	}
	return nil
}

// Status returns a snapshot of the status.
func (c *Controller) Status() msgs.StationStatus {
	c.statusLock.Lock()
	defer c.statusLock.Unlock()
	s := c.status
	s.Unit = c.Unit
	return s
}

// SetChannel records the channel the radio is tuned to.
func (c *Controller) SetChannel(channel int) {
	c.updateStatus(func(s *msgs.StationStatus) {
		s.Channel = int32(channel)
	})
}

// Queued returns the number of messages waiting for the display.
func (c *Controller) Queued() int {
	return int(c.Status().Queued)
}

func (c *Controller) updateStatus(fn func(*msgs.StationStatus)) {
	c.statusLock.Lock()
	prev := c.status
	fn(&c.status)
	if prev != c.status {
		c.statusChanged = true
	}
	c.statusLock.Unlock()
}

func (c *Controller) takeStatusChange() bool {
	c.statusLock.Lock()
	defer c.statusLock.Unlock()
	changed := c.statusChanged
	c.statusChanged = false
	return changed
}

func (c *Controller) reportStatus(cc fx.ControlContext) error {
	status := c.Status()
	return c.Reporter.ReportStatus(cc.Context(), &status)
}

func (c *Controller) scroll() device.RenderOptions {
	return device.RenderOptions{Scroll: true, Delay: c.ScrollDelay}
}

func (c *Controller) setLight(on bool) {
	if c.Light != nil {
		c.Light.Set(on)
	}
}

func (c *Controller) play(tune string) {
	if c.Player != nil && tune != "" {
		c.Player.Play(tune, false)
	}
}
