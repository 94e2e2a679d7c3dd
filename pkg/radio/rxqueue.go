package radio

import (
	"sync"

	"github.com/golang/glog"
)

// RxQueue buffers received payloads between the receiving goroutine and
// the tick. It drops payloads when full, like the receive buffer of a
// radio chip, and ignores empty payloads.
type RxQueue struct {
	capacity int
	lock     sync.Mutex
	items    []string
	dropped  int
}

// NewRxQueue creates an RxQueue, capacity <= 0 means DefaultQueueLength.
func NewRxQueue(capacity int) *RxQueue {
	if capacity <= 0 {
		capacity = DefaultQueueLength
	}
	return &RxQueue{capacity: capacity}
}

// Put adds a payload and reports whether it was kept.
func (q *RxQueue) Put(payload string) bool {
	if payload == "" {
		return false
	}
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) >= q.capacity {
		q.dropped++
		glog.Warningf("receive queue full, dropped %q", payload)
		return false
	}
	q.items = append(q.items, payload)
	return true
}

// Get takes the oldest payload.
func (q *RxQueue) Get() (string, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) == 0 {
		return "", false
	}
	payload := q.items[0]
	q.items = q.items[1:]
	return payload, true
}

// Dropped returns the number of payloads dropped so far.
func (q *RxQueue) Dropped() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.dropped
}

// Reset discards buffered payloads.
func (q *RxQueue) Reset() {
	q.lock.Lock()
	q.items = nil
	q.lock.Unlock()
}
