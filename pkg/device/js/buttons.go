package js

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/morsetooth/pkg/device"
	fx "github.com/robotalks/morsetooth/pkg/framework"
)

// Buttons tracks the button states of a joystick. A press shorter than a
// tick is latched so that the next IsPressed still reports it.
type Buttons struct {
	Device Device

	lock    sync.Mutex
	levels  map[int]bool
	latched map[int]bool
	presses map[int]int
}

// NewButtons creates Buttons reading from dev.
func NewButtons(dev Device) *Buttons {
	return &Buttons{
		Device:  dev,
		levels:  make(map[int]bool),
		latched: make(map[int]bool),
		presses: make(map[int]int),
	}
}

// Button returns the device.Button of a joystick button number.
func (b *Buttons) Button(index int) device.Button {
	return &button{buttons: b, index: index}
}

// Handle applies an event. Initial states set levels without counting
// as presses.
func (b *Buttons) Handle(ev Event) {
	bev, ok := ev.(ButtonEvent)
	if !ok {
		return
	}
	index, pressed := bev.Index(), bev.Pressed()
	b.lock.Lock()
	defer b.lock.Unlock()
	b.levels[index] = pressed
	if pressed && !ev.IsInit() {
		b.latched[index] = true
		b.presses[index]++
	}
}

// Flush drops latched presses of all buttons. Held buttons stay pressed.
func (b *Buttons) Flush() {
	b.lock.Lock()
	b.latched = make(map[int]bool)
	b.presses = make(map[int]int)
	b.lock.Unlock()
}

// Name implements Named.
func (b *Buttons) Name() string {
	return "joystick"
}

// Run implements Runnable. It reads events until ctx is done or the
// device fails.
func (b *Buttons) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, b.Device, func() error {
		for {
			ev, err := b.Device.ReadEvent()
			if err != nil {
				glog.Errorf("joystick %d: %v", b.Device.Index(), err)
				return err
			}
			b.Handle(ev)
		}
	})
}

type button struct {
	buttons *Buttons
	index   int
}

func (t *button) IsPressed() bool {
	b := t.buttons
	b.lock.Lock()
	defer b.lock.Unlock()
	pressed := b.levels[t.index] || b.latched[t.index]
	delete(b.latched, t.index)
	return pressed
}

func (t *button) WasPressed() bool {
	b := t.buttons
	b.lock.Lock()
	defer b.lock.Unlock()
	pressed := b.presses[t.index] > 0
	delete(b.presses, t.index)
	// a press consumed as an edge is not a level any more.
	delete(b.latched, t.index)
	return pressed
}
