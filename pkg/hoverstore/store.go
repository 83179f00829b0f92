// Package hoverstore holds the currently hovered cell value as a
// single source of truth shared by independent UI trees, such as the
// legend indicator spanning several grids in comparison mode.
//
// All access is single-threaded on the host UI loop, so there is no
// locking; listeners are invoked synchronously in subscription order.
package hoverstore

// Store is a publish/subscribe container for the hovered value.
// A nil value means nothing is hovered.
type Store struct {
	value     *float64
	listeners []*listener
	nextID    int
}

type listener struct {
	id int
	fn func(*float64)
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Get returns the current hovered value, nil when idle.
func (s *Store) Get() *float64 {
	return s.value
}

// Set stores the hovered value and notifies every subscriber in
// subscription order.
func (s *Store) Set(v *float64) {
	s.value = v
	// Copy the list so a listener unsubscribing mid-notification does
	// not skip its neighbors.
	active := make([]*listener, len(s.listeners))
	copy(active, s.listeners)
	for _, l := range active {
		l.fn(v)
	}
}

// Subscribe registers fn and returns a cancel function. The cancel
// function may be called more than once.
func (s *Store) Subscribe(fn func(*float64)) func() {
	s.nextID++
	l := &listener{id: s.nextID, fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		for i, cur := range s.listeners {
			if cur.id == l.id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len reports the number of active subscribers.
func (s *Store) Len() int {
	return len(s.listeners)
}
