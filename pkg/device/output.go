package device

import (
	"sync"

	"github.com/golang/glog"
)

// LogPin is a simulated digital output which logs level changes.
type LogPin struct {
	Name string

	lock sync.Mutex
	on   bool
}

// Set implements Pin.
func (p *LogPin) Set(on bool) {
	p.lock.Lock()
	changed := p.on != on
	p.on = on
	p.lock.Unlock()
	if changed {
		glog.V(1).Infof("pin %s: %v", p.Name, on)
	}
}

// State returns the current level.
func (p *LogPin) State() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.on
}

// LogPlayer is a simulated speaker.
type LogPlayer struct {
	// OnPlay is invoked for every cue.
	OnPlay func(tune string)
}

// Play implements Player. It never blocks.
func (p *LogPlayer) Play(tune string, wait bool) {
	glog.V(1).Infof("play %s (wait=%v)", tune, wait)
	if fn := p.OnPlay; fn != nil {
		fn(tune)
	}
}
