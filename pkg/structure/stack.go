package structure

import (
	"fmt"
	"slices"
)

// Stack is a LIFO container. The logical top is the end of the sequence.
type Stack[T any] struct {
	Observable[Change[T]]
	items []T
}

// NewStack returns an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Name returns "Stack".
func (s *Stack[T]) Name() string { return KindStack.String() }

// Push appends value to the top and notifies observers.
func (s *Stack[T]) Push(value T) {
	s.items = append(s.items, value)
	s.notifyChange(Change[T]{Kind: ChangePush, Value: value, Ok: true})
}

// Pop removes and returns the top value. On an empty stack it returns the
// zero value and false, and still emits a pop event.
func (s *Stack[T]) Pop() (T, bool) {
	var value T
	ok := len(s.items) > 0
	if ok {
		last := len(s.items) - 1
		value = s.items[last]
		var zero T
		s.items[last] = zero
		s.items = s.items[:last]
	}
	s.notifyChange(Change[T]{Kind: ChangePop, Value: value, Ok: ok})
	return value, ok
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Size returns the number of elements.
func (s *Stack[T]) Size() int {
	return len(s.items)
}

// Snapshot returns a fresh copy of the elements, bottom first.
func (s *Stack[T]) Snapshot() []T {
	return cloneItems(s.items)
}

func (s *Stack[T]) String() string {
	return fmt.Sprintf("Stack%v", s.items)
}

// cloneItems never returns nil so empty snapshots encode as [] rather than null.
func cloneItems[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}
