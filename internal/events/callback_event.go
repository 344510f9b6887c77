package events

import (
	"sort"
	"sync"
)

// CallbackEvent is a synchronous pub/sub hub with typed callbacks.
// Listeners run on the goroutine that calls Notify, in registration order.
type CallbackEvent[T any] struct {
	mu        sync.RWMutex
	listeners map[uint64]func(T)
	nextID    uint64
	replay    bool
	last      *T
}

// NewCallbackEvent creates a hub. With replay set, a listener registered after
// the first Notify is called immediately with the most recent value.
func NewCallbackEvent[T any](replay bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{
		listeners: make(map[uint64]func(T)),
		replay:    replay,
	}
}

// Listen registers callback and returns a function that removes it.
func (event *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("events: nil callback")
	}

	event.mu.Lock()
	id := event.nextID
	event.nextID++
	event.listeners[id] = callback
	var last *T
	if event.replay && event.last != nil {
		value := *event.last
		last = &value
	}
	event.mu.Unlock()

	if last != nil {
		callback(*last)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			event.mu.Lock()
			delete(event.listeners, id)
			event.mu.Unlock()
		})
	}
}

// Notify calls every listener with value. Callbacks run outside the lock, so a
// listener may register or remove listeners.
func (event *CallbackEvent[T]) Notify(value T) {
	event.mu.Lock()
	if event.replay {
		stored := value
		event.last = &stored
	}
	ids := make([]uint64, 0, len(event.listeners))
	for id := range event.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	callbacks := make([]func(T), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, event.listeners[id])
	}
	event.mu.Unlock()

	for _, callback := range callbacks {
		callback(value)
	}
}

// ListenerCount returns the number of registered listeners.
func (event *CallbackEvent[T]) ListenerCount() int {
	event.mu.RLock()
	defer event.mu.RUnlock()
	return len(event.listeners)
}
