// Package inbox holds received payloads until the display can show them.
package inbox

import "container/list"

// Queue is an unbounded FIFO of raw payloads. Entries are kept opaque and
// only decoded when they are taken for display. Queue is not safe for
// concurrent use; it is owned by the tick.
type Queue struct {
	items list.List
}

// Push appends a payload at the tail.
func (q *Queue) Push(raw string) {
	q.items.PushBack(raw)
}

// Front returns the oldest payload without removing it.
func (q *Queue) Front() (string, bool) {
	elm := q.items.Front()
	if elm == nil {
		return "", false
	}
	return elm.Value.(string), true
}

// Pop removes and returns the oldest payload.
func (q *Queue) Pop() (string, bool) {
	elm := q.items.Front()
	if elm == nil {
		return "", false
	}
	q.items.Remove(elm)
	return elm.Value.(string), true
}

// Len returns the number of waiting payloads.
func (q *Queue) Len() int {
	return q.items.Len()
}
