package device

import (
	"sync"
	"time"
)

// Glyph geometry of the simulated matrix: every character is GlyphWidth
// columns wide followed by GlyphSpacing blank columns.
const (
	GlyphWidth   = 5
	GlyphSpacing = 1
	DefaultWidth = 5
)

// ScrollDisplay simulates a small LED matrix and answers IsIdle the way
// the pixels would: a blank character scrolling through the window leaves
// the display dark, so it reads as idle even mid-message.
type ScrollDisplay struct {
	// Width is the number of visible columns.
	Width int
	// Clock returns the current time, time.Now if nil.
	Clock func() time.Time
	// Sleep blocks for waiting renders, time.Sleep if nil.
	Sleep func(time.Duration)
	// OnRender is invoked for every Render and Clear (with empty text).
	OnRender func(text string, opts RenderOptions)

	lock  sync.Mutex
	text  []rune
	opts  RenderOptions
	start time.Time
}

// NewScrollDisplay creates a ScrollDisplay with defaults.
func NewScrollDisplay() *ScrollDisplay {
	return &ScrollDisplay{Width: DefaultWidth}
}

// Render implements Display.
func (d *ScrollDisplay) Render(text string, opts RenderOptions) {
	if opts.Delay <= 0 {
		opts.Delay = DefaultScrollDelay
	}
	d.lock.Lock()
	d.text, d.opts, d.start = []rune(text), opts, d.now()
	wait := opts.Scroll && opts.Wait && !opts.Loop
	dur := d.scrollDuration()
	d.lock.Unlock()
	if fn := d.OnRender; fn != nil {
		fn(text, opts)
	}
	if wait {
		d.sleep(dur)
	}
}

// Clear implements Display.
func (d *ScrollDisplay) Clear() {
	d.lock.Lock()
	d.text = nil
	d.lock.Unlock()
	if fn := d.OnRender; fn != nil {
		fn("", RenderOptions{})
	}
}

// Text returns the text last rendered.
func (d *ScrollDisplay) Text() string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return string(d.text)
}

// IsIdle implements Display.
func (d *ScrollDisplay) IsIdle() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.text) == 0 {
		return true
	}
	if !d.opts.Scroll {
		for _, ch := range d.text {
			if ch != ' ' {
				return false
			}
		}
		return true
	}
	width := d.width()
	step := int(d.now().Sub(d.start) / d.opts.Delay)
	if d.opts.Loop {
		step %= d.stripLen() + width
	}
	// visible columns are [lo, hi) of the text strip.
	hi := step + 1
	lo := hi - width
	pitch := GlyphWidth + GlyphSpacing
	for i, ch := range d.text {
		if ch == ' ' {
			continue
		}
		if col := i * pitch; col < hi && col+GlyphWidth > lo {
			return false
		}
	}
	return true
}

// ScrollDuration returns how long the current text takes to scroll out.
func (d *ScrollDisplay) ScrollDuration() time.Duration {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.scrollDuration()
}

func (d *ScrollDisplay) scrollDuration() time.Duration {
	if !d.opts.Scroll || len(d.text) == 0 {
		return 0
	}
	return time.Duration(d.stripLen()+d.width()-1) * d.opts.Delay
}

func (d *ScrollDisplay) stripLen() int {
	return len(d.text)*(GlyphWidth+GlyphSpacing) - GlyphSpacing
}

func (d *ScrollDisplay) width() int {
	if d.Width > 0 {
		return d.Width
	}
	return DefaultWidth
}

func (d *ScrollDisplay) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d *ScrollDisplay) sleep(dur time.Duration) {
	if d.Sleep != nil {
		d.Sleep(dur)
		return
	}
	time.Sleep(dur)
}
