package radio

import (
	"sync"

	"github.com/golang/glog"
)

// Hub is an in-memory broadcast medium. Endpoints tuned to the same
// channel hear each other, never themselves.
type Hub struct {
	lock      sync.RWMutex
	endpoints map[*Endpoint]struct{}
}

// NewHub creates a Hub.
func NewHub() *Hub {
	return &Hub{endpoints: make(map[*Endpoint]struct{})}
}

// Join creates an Endpoint attached to the hub.
func (h *Hub) Join(queueLength int) *Endpoint {
	ep := &Endpoint{hub: h, rx: NewRxQueue(queueLength)}
	h.lock.Lock()
	h.endpoints[ep] = struct{}{}
	h.lock.Unlock()
	return ep
}

func (h *Hub) broadcast(from *Endpoint, channel int, payload string) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	for ep := range h.endpoints {
		if ep == from {
			continue
		}
		if settings, ok := ep.tuned(); ok && settings.Channel == channel {
			ep.rx.Put(payload)
		}
	}
}

func (h *Hub) leave(ep *Endpoint) {
	h.lock.Lock()
	delete(h.endpoints, ep)
	h.lock.Unlock()
}

// Endpoint is a Radio attached to a Hub.
type Endpoint struct {
	hub *Hub
	rx  *RxQueue

	lock       sync.Mutex
	settings   Settings
	configured bool
	closed     bool
}

// Receive implements Radio.
func (e *Endpoint) Receive() (string, bool) {
	return e.rx.Get()
}

// Dropped implements DropCounter.
func (e *Endpoint) Dropped() int {
	return e.rx.Dropped()
}

// Send implements Radio.
func (e *Endpoint) Send(payload string) error {
	e.lock.Lock()
	settings, configured, closed := e.settings, e.configured, e.closed
	e.lock.Unlock()
	if closed {
		return ErrClosed
	}
	if !configured {
		return ErrNotConfigured
	}
	glog.V(2).Infof("SEND ch=%d %q", settings.Channel, payload)
	e.hub.broadcast(e, settings.Channel, payload)
	return nil
}

// Configure implements Radio.
func (e *Endpoint) Configure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.configured && e.settings.Channel != s.Channel {
		e.rx.Reset()
	}
	e.settings, e.configured = s, true
	return nil
}

// Close implements io.Closer.
func (e *Endpoint) Close() error {
	e.lock.Lock()
	e.closed = true
	e.lock.Unlock()
	e.hub.leave(e)
	return nil
}

func (e *Endpoint) tuned() (Settings, bool) {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.settings, e.configured && !e.closed
}
