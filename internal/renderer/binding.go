package renderer

import "sync"

// Binding holds a widget's data source and notifies watchers on every Set,
// including when the new value equals the old one.
type Binding struct {
	mu       sync.Mutex
	value    any
	watchers []*watcher
}

type watcher struct {
	fn     func(any)
	active bool
}

// NewBinding returns a Binding holding initial.
func NewBinding(initial any) *Binding {
	return &Binding{value: initial}
}

// Get returns the current value.
func (b *Binding) Get() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set stores v and notifies every active watcher.
func (b *Binding) Set(v any) {
	b.mu.Lock()
	b.value = v
	fns := make([]func(any), 0, len(b.watchers))
	for _, w := range b.watchers {
		if w.active {
			fns = append(fns, w.fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Watch registers fn and calls it once with the current value. The returned
// func stops further notifications.
func (b *Binding) Watch(fn func(any)) (unwatch func()) {
	w := &watcher{fn: fn, active: true}

	b.mu.Lock()
	b.watchers = append(b.watchers, w)
	current := b.value
	b.mu.Unlock()

	fn(current)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		w.active = false
		for i, other := range b.watchers {
			if other == w {
				b.watchers = append(b.watchers[:i], b.watchers[i+1:]...)
				break
			}
		}
	}
}
