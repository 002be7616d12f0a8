// Package observable provides a small goroutine-safe value cell that notifies
// listeners on every assignment.
package observable

import "sync"

// Value holds a value of type T and notifies subscribers whenever Set is
// called, including when the new value equals the old one.
type Value[T any] struct {
	mu        sync.Mutex
	val       T
	nextID    int
	listeners map[int]func(T)
	order     []int
}

// New returns a Value initialised to v.
func New[T any](v T) *Value[T] {
	return &Value[T]{val: v, listeners: make(map[int]func(T))}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.val
}

// Set stores val and then calls every listener, in subscription order, on
// the calling goroutine.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	v.val = val
	fns := make([]func(T), 0, len(v.order))
	for _, id := range v.order {
		fns = append(fns, v.listeners[id])
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(val)
	}
}

// Subscribe registers fn for future assignments and returns a function that
// removes it.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.order = append(v.order, id)
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.listeners, id)
			for i, o := range v.order {
				if o == id {
					v.order = append(v.order[:i], v.order[i+1:]...)
					break
				}
			}
		})
	}
}
