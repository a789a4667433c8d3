// Package bus is a lightweight in-process pub/sub channel. Events carry
// just enough information to wake interested parties up; subscribers
// look up the details themselves.
package bus

import "sync"

// RunStateChange signals that the state behind a configuration document
// changed and the document should eventually be re-read.
const RunStateChange = "runStateChange"

// Event is one typed notification.
type Event struct {
	Type string
	Job  string
}

// Handler consumes events of a subscribed type.
type Handler func(Event)

// Bus dispatches events to type-filtered subscribers. Publish runs the
// handlers synchronously on the caller's goroutine; handlers that need a
// different goroutine defer themselves.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: map[string][]Handler{}}
}

// Subscribe registers fn for events of the given type.
func (b *Bus) Subscribe(eventType string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventType] = append(b.subs[eventType], fn)
}

// Publish delivers evt to every subscriber of its type.
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	handlers := append([]Handler(nil), b.subs[evt.Type]...)
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(evt)
	}
}
