// Package structure provides observable containers whose internal storage is
// never handed out. Readers get fresh copies through Snapshot, and every
// mutation is published to subscribed observers as a typed change event.
package structure

import "fmt"

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind int

const (
	// ChangePush is emitted after a value is inserted.
	ChangePush ChangeKind = iota
	// ChangePop is emitted after a removal attempt, including one on an
	// empty container.
	ChangePop
	// ChangeSet is emitted when an element is overwritten in place.
	ChangeSet
	// ChangeGraph is emitted for any node or edge mutation of a Graph.
	ChangeGraph
)

// String returns a human-readable representation of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangePush:
		return "push"
	case ChangePop:
		return "pop"
	case ChangeSet:
		return "set"
	case ChangeGraph:
		return "graph"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is the event delivered to observers.
//
// Ok is false only for a pop on an empty container; Value is then the zero
// value of T and acts as the empty sentinel.
type Change[T any] struct {
	Kind  ChangeKind
	Value T
	Ok    bool
}

// Observer receives change events. Observers are compared by interface
// equality, so implementations should be pointers.
type Observer[E any] interface {
	OnChange(event E)
}

// ObserverFunc adapts a function to the Observer interface.
// Always use it through a pointer (see NewObserver): func values cannot be
// compared, so a value ObserverFunc cannot be found again by Unsubscribe.
type ObserverFunc[E any] func(event E)

// OnChange calls f(event).
func (f *ObserverFunc[E]) OnChange(event E) {
	(*f)(event)
}

// NewObserver wraps fn in a stable handle suitable for Subscribe and
// Unsubscribe.
func NewObserver[E any](fn func(E)) *ObserverFunc[E] {
	f := ObserverFunc[E](fn)
	return &f
}

// Observable keeps an ordered, duplicate-free observer list. Containers
// embed it and publish through notifyChange.
type Observable[E any] struct {
	observers []Observer[E]
}

// Subscribe registers o. Registering the same observer twice is a no-op,
// and so is registering a nil observer or a nil *ObserverFunc.
func (b *Observable[E]) Subscribe(o Observer[E]) {
	if isNilObserver(o) || b.indexOf(o) != -1 {
		return
	}
	b.observers = append(b.observers, o)
}

// Unsubscribe removes o. Unknown observers are ignored.
func (b *Observable[E]) Unsubscribe(o Observer[E]) {
	idx := b.indexOf(o)
	if idx == -1 {
		return
	}
	b.observers = append(b.observers[:idx:idx], b.observers[idx+1:]...)
}

// ObserverCount returns the number of registered observers.
func (b *Observable[E]) ObserverCount() int {
	return len(b.observers)
}

func isNilObserver[E any](o Observer[E]) bool {
	switch f := o.(type) {
	case nil:
		return true
	case *ObserverFunc[E]:
		return f == nil || *f == nil
	}
	return false
}

func (b *Observable[E]) indexOf(o Observer[E]) int {
	for i, ob := range b.observers {
		if ob == o {
			return i
		}
	}
	return -1
}

// notifyChange delivers event synchronously in registration order. The list
// is copied first, so observers may unsubscribe from inside the callback.
// Mutating the container from inside the callback re-enters notifyChange and
// is not guarded against.
func (b *Observable[E]) notifyChange(event E) {
	if len(b.observers) == 0 {
		return
	}
	observers := make([]Observer[E], len(b.observers))
	copy(observers, b.observers)
	for _, o := range observers {
		o.OnChange(event)
	}
}
