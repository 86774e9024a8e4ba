package touch

import "sync"

// Surface is anything a Recognizer can bind input listeners to. AddListener
// returns a handle that RemoveListener accepts; removing an unknown handle
// is a no-op.
type Surface interface {
	AddListener(kind EventKind, fn func(Event)) int
	RemoveListener(kind EventKind, id int)
}

// EventTarget is an in-process Surface. Dispatch delivers each event
// synchronously to every listener registered for its kind, in the order
// they were added.
type EventTarget struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[EventKind][]listener
}

type listener struct {
	id int
	fn func(Event)
}

// NewEventTarget creates an empty EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{
		listeners: make(map[EventKind][]listener),
	}
}

// AddListener registers fn for events of the given kind and returns its
// removal handle.
func (t *EventTarget) AddListener(kind EventKind, fn func(Event)) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	t.listeners[kind] = append(t.listeners[kind], listener{id: t.nextID, fn: fn})
	return t.nextID
}

// RemoveListener unregisters the listener with the given handle. Removing a
// handle twice is safe.
func (t *EventTarget) RemoveListener(kind EventKind, id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ls := t.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			t.listeners[kind] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to all listeners registered for its kind.
func (t *EventTarget) Dispatch(ev Event) {
	t.mu.RLock()
	ls := make([]listener, len(t.listeners[ev.Kind]))
	copy(ls, t.listeners[ev.Kind])
	t.mu.RUnlock()

	for _, l := range ls {
		l.fn(ev)
	}
}
