package state

import "sync"

// Cell is an observable value slot shared between concurrently running tasks.
// Writes are serialized and every subscriber sees them in write order; there is
// no versioning, so a stale task that finishes late overwrites a newer result.
type Cell[T any] struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	value   T
	subs    map[int]func(T)
	nextID  int
}

// NewCell returns a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies subscribers synchronously. Subscribers must not call
// Set on the same cell.
func (c *Cell[T]) Set(v T) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	c.value = v
	subs := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn for future writes and returns a function that removes it.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
