package structure

import "fmt"

// Queue is a FIFO container.
//
// Push inserts at the head of the sequence and Pop removes from the tail, so
// Snapshot lists elements newest first and the next element to leave is the
// last one. Renderers rely on this order to draw the front of the queue at
// the far end of the row.
type Queue[T any] struct {
	Observable[Change[T]]
	items []T
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Name returns "Queue".
func (q *Queue[T]) Name() string { return KindQueue.String() }

// Push inserts value at the head and notifies observers.
func (q *Queue[T]) Push(value T) {
	items := make([]T, 0, len(q.items)+1)
	items = append(items, value)
	q.items = append(items, q.items...)
	q.notifyChange(Change[T]{Kind: ChangePush, Value: value, Ok: true})
}

// Pop removes and returns the oldest value. On an empty queue it returns the
// zero value and false, and still emits a pop event.
func (q *Queue[T]) Pop() (T, bool) {
	var value T
	ok := len(q.items) > 0
	if ok {
		last := len(q.items) - 1
		value = q.items[last]
		var zero T
		q.items[last] = zero
		q.items = q.items[:last]
	}
	q.notifyChange(Change[T]{Kind: ChangePop, Value: value, Ok: ok})
	return value, ok
}

// Front returns the oldest value without removing it.
func (q *Queue[T]) Front() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

// Size returns the number of elements.
func (q *Queue[T]) Size() int {
	return len(q.items)
}

// Snapshot returns a fresh copy of the elements, newest first.
func (q *Queue[T]) Snapshot() []T {
	return cloneItems(q.items)
}

func (q *Queue[T]) String() string {
	return fmt.Sprintf("Queue%v", q.items)
}
