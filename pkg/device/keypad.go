package device

import (
	"fmt"
	"sync"
)

// Button indices on a Keypad.
const (
	Primary   = 0
	Secondary = 1
)

// Keypad simulates two buttons fed from another goroutine, e.g. a console.
// Levels are queued per tick: every Push adds one level to both buttons so
// that reading each button once per tick keeps them aligned.
type Keypad struct {
	lock    sync.Mutex
	levels  [2][]bool
	presses [2]int
}

// NewKeypad creates a Keypad.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Button returns the Button view of index Primary or Secondary.
func (k *Keypad) Button(index int) Button {
	return &keypadButton{keypad: k, index: index}
}

// Push queues the levels of both buttons for one tick.
func (k *Keypad) Push(primary, secondary bool) {
	k.lock.Lock()
	defer k.lock.Unlock()
	for i, on := range [2]bool{primary, secondary} {
		k.levels[i] = append(k.levels[i], on)
		if on {
			k.presses[i]++
		}
	}
}

// Key queues a raw Morse string, one symbol per tick.
func (k *Keypad) Key(raw string) error {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '.', '-', ' ':
		default:
			return fmt.Errorf("invalid symbol %q at %d", raw[i], i)
		}
	}
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '.':
			k.Push(true, false)
		case '-':
			k.Push(false, true)
		case ' ':
			k.Push(true, true)
		}
	}
	return nil
}

// Pending returns the number of queued ticks.
func (k *Keypad) Pending() int {
	k.lock.Lock()
	defer k.lock.Unlock()
	return len(k.levels[Primary])
}

// Flush drops all queued levels and presses.
func (k *Keypad) Flush() {
	k.lock.Lock()
	k.levels[Primary], k.levels[Secondary] = nil, nil
	k.presses = [2]int{}
	k.lock.Unlock()
}

type keypadButton struct {
	keypad *Keypad
	index  int
}

func (b *keypadButton) IsPressed() bool {
	k := b.keypad
	k.lock.Lock()
	defer k.lock.Unlock()
	levels := k.levels[b.index]
	if len(levels) == 0 {
		return false
	}
	on := levels[0]
	k.levels[b.index] = levels[1:]
	return on
}

func (b *keypadButton) WasPressed() bool {
	k := b.keypad
	k.lock.Lock()
	defer k.lock.Unlock()
	pressed := k.presses[b.index] > 0
	k.presses[b.index] = 0
	return pressed
}
