package structure

import "fmt"

// Array is an indexable container that publishes pushes, removals and
// in-place writes.
type Array[T any] struct {
	Observable[Change[T]]
	items []T
}

// NewArray returns an empty array.
func NewArray[T any]() *Array[T] {
	return &Array[T]{}
}

// Name returns "Array".
func (a *Array[T]) Name() string { return KindArray.String() }

// Push appends value and notifies observers.
func (a *Array[T]) Push(value T) {
	a.items = append(a.items, value)
	a.notifyChange(Change[T]{Kind: ChangePush, Value: value, Ok: true})
}

// Pop removes the element at idx; a negative idx removes the last element.
// An out-of-range index removes nothing, returns false and still emits a
// pop event.
func (a *Array[T]) Pop(idx int) (T, bool) {
	if idx < 0 {
		idx = len(a.items) - 1
	}
	var value T
	ok := idx >= 0 && idx < len(a.items)
	if ok {
		value = a.items[idx]
		a.items = append(a.items[:idx:idx], a.items[idx+1:]...)
	}
	a.notifyChange(Change[T]{Kind: ChangePop, Value: value, Ok: ok})
	return value, ok
}

// Get returns the element at idx.
func (a *Array[T]) Get(idx int) (T, bool) {
	if idx < 0 || idx >= len(a.items) {
		var zero T
		return zero, false
	}
	return a.items[idx], true
}

// Set overwrites the element at idx and notifies observers. It reports
// false, without notifying, when idx is out of range.
func (a *Array[T]) Set(idx int, value T) bool {
	if idx < 0 || idx >= len(a.items) {
		return false
	}
	a.items[idx] = value
	a.notifyChange(Change[T]{Kind: ChangeSet, Value: value, Ok: true})
	return true
}

// Size returns the number of elements.
func (a *Array[T]) Size() int {
	return len(a.items)
}

// Snapshot returns a fresh copy of the elements in index order.
func (a *Array[T]) Snapshot() []T {
	return cloneItems(a.items)
}

func (a *Array[T]) String() string {
	return fmt.Sprintf("Array%v", a.items)
}
