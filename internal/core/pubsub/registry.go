// Package pubsub provides a synchronous handler registry with
// snapshot-before-iterate delivery.
package pubsub

import "sync"

// Registry holds handlers for one event kind. Publish delivers to a snapshot
// of the handlers taken at call time, in registration order, so handlers may
// subscribe or unsubscribe while an event is being delivered.
type Registry[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []entry[T]
}

type entry[T any] struct {
	id      uint64
	handler func(T)
}

// Add registers handler and returns its unsubscribe function. A nil handler
// is not registered and gets an inert unsubscribe.
func (registry *Registry[T]) Add(handler func(T)) func() {
	if handler == nil {
		return func() {}
	}
	registry.mu.Lock()
	registry.nextID++
	id := registry.nextID
	registry.handlers = append(registry.handlers, entry[T]{id: id, handler: handler})
	registry.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { registry.remove(id) })
	}
}

// Publish calls every registered handler with value.
func (registry *Registry[T]) Publish(value T) {
	registry.mu.Lock()
	snapshot := append([]entry[T](nil), registry.handlers...)
	registry.mu.Unlock()

	for _, current := range snapshot {
		current.handler(value)
	}
}

// Len returns the number of registered handlers.
func (registry *Registry[T]) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.handlers)
}

// Clear drops every handler.
func (registry *Registry[T]) Clear() {
	registry.mu.Lock()
	registry.handlers = nil
	registry.mu.Unlock()
}

func (registry *Registry[T]) remove(id uint64) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, current := range registry.handlers {
		if current.id == id {
			registry.handlers = append(registry.handlers[:i:i], registry.handlers[i+1:]...)
			return
		}
	}
}
