// Package events provides a small channel-based pub/sub primitive used to
// observe a running simulation without coupling the tick loop to observers.
package events

import "sync"

// ChannelEvent fans values out to registered listener channels. Sends are
// non-blocking: a listener whose channel is full misses that notification,
// which is acceptable for the lossy observation streams this is used for.
type ChannelEvent[T any] struct {
	mu       sync.RWMutex
	nextID   uint64
	channels map[uint64]chan<- T
}

// NewChannelEvent creates an event with no listeners.
func NewChannelEvent[T any]() *ChannelEvent[T] {
	return &ChannelEvent[T]{channels: make(map[uint64]chan<- T)}
}

// Listen registers ch to receive future notifications. The returned function
// deregisters it.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("ChannelEvent: channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.channels[id] = ch
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.channels, id)
		e.mu.Unlock()
	}
}

// Notify sends value to every registered channel, skipping any that are full.
func (e *ChannelEvent[T]) Notify(value T) {
	e.mu.RLock()
	listeners := make([]chan<- T, 0, len(e.channels))
	for _, ch := range e.channels {
		listeners = append(listeners, ch)
	}
	e.mu.RUnlock()

	for _, ch := range listeners {
		select {
		case ch <- value:
		default:
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (e *ChannelEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.channels)
}
