package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	events []Change[T]
}

func (r *recorder[T]) OnChange(e Change[T]) {
	r.events = append(r.events, e)
}

func TestStackOrdering(t *testing.T) {
	s := NewStack[string]()
	for _, v := range []string{"a", "b", "c"} {
		s.Push(v)
	}

	var popped []string
	for range 3 {
		v, ok := s.Pop()
		require.True(t, ok)
		popped = append(popped, v)
	}
	assert.Equal(t, []string{"c", "b", "a"}, popped)
	assert.Equal(t, 0, s.Size())
}

func TestQueueOrdering(t *testing.T) {
	q := NewQueue[string]()
	for _, v := range []string{"a", "b", "c"} {
		q.Push(v)
	}
	assert.Equal(t, []string{"c", "b", "a"}, q.Snapshot(), "snapshot is newest first")

	var popped []string
	for range 3 {
		v, ok := q.Pop()
		require.True(t, ok)
		popped = append(popped, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, popped)
}

func TestScenarioStack(t *testing.T) {
	s := NewStack[string]()
	s.Push("1")
	s.Push("2")
	v, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, []string{"1"}, s.Snapshot())
}

func TestScenarioQueue(t *testing.T) {
	q := NewQueue[string]()
	q.Push("a")
	q.Push("b")
	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, []string{"b"}, q.Snapshot())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStack[int]()
	s.Push(1)
	s.Push(2)

	snap := s.Snapshot()
	snap[0] = 99
	_ = append(snap[:1], 42)

	assert.Equal(t, []int{1, 2}, s.Snapshot())

	q := NewQueue[int]()
	q.Push(1)
	qs := q.Snapshot()
	qs[0] = 7
	assert.Equal(t, []int{1}, q.Snapshot())

	assert.NotNil(t, NewStack[int]().Snapshot())
	assert.Empty(t, NewStack[int]().Snapshot())
}

func TestSubscribeIsIdempotent(t *testing.T) {
	s := NewStack[string]()
	rec := &recorder[string]{}
	s.Subscribe(rec)
	s.Subscribe(rec)
	assert.Equal(t, 1, s.ObserverCount())

	s.Push("x")
	assert.Len(t, rec.events, 1)

	calls := 0
	fn := NewObserver(func(Change[string]) { calls++ })
	s.Subscribe(fn)
	s.Subscribe(fn)
	s.Push("y")
	assert.Equal(t, 1, calls)
}

func TestSubscribeIgnoresNilObservers(t *testing.T) {
	s := NewStack[int]()
	var nilFunc *ObserverFunc[Change[int]]
	s.Subscribe(nil)
	s.Subscribe(nilFunc)
	s.Subscribe(NewObserver[Change[int]](nil))
	assert.Zero(t, s.ObserverCount())

	assert.NotPanics(t, func() { s.Push(1) })
	assert.Equal(t, []int{1}, s.Snapshot())
}

func TestUnsubscribe(t *testing.T) {
	q := NewQueue[string]()
	rec := &recorder[string]{}
	other := &recorder[string]{}
	q.Subscribe(rec)
	q.Subscribe(other)

	q.Unsubscribe(rec)
	q.Unsubscribe(rec)
	q.Unsubscribe(&recorder[string]{})

	q.Push("a")
	_, _ = q.Pop()
	_, _ = q.Pop()

	assert.Empty(t, rec.events)
	assert.Len(t, other.events, 3)
}

func TestNotifyOrderAndPayload(t *testing.T) {
	s := NewStack[string]()
	var order []string
	first := NewObserver(func(e Change[string]) { order = append(order, "first:"+e.Kind.String()+":"+e.Value) })
	second := NewObserver(func(e Change[string]) { order = append(order, "second:"+e.Kind.String()+":"+e.Value) })
	s.Subscribe(first)
	s.Subscribe(second)

	s.Push("v")
	_, _ = s.Pop()

	assert.Equal(t, []string{
		"first:push:v", "second:push:v",
		"first:pop:v", "second:pop:v",
	}, order)
}

func TestObserverCanUnsubscribeDuringNotify(t *testing.T) {
	s := NewStack[int]()
	var self *ObserverFunc[Change[int]]
	calls := 0
	self = NewObserver(func(Change[int]) {
		calls++
		s.Unsubscribe(self)
	})
	rec := &recorder[int]{}
	s.Subscribe(self)
	s.Subscribe(rec)

	s.Push(1)
	s.Push(2)

	assert.Equal(t, 1, calls)
	assert.Len(t, rec.events, 2)
}

func TestEmptyPop(t *testing.T) {
	for name, pop := range map[string]func() (*recorder[string], string, bool){
		"stack": func() (*recorder[string], string, bool) {
			s := NewStack[string]()
			rec := &recorder[string]{}
			s.Subscribe(rec)
			v, ok := s.Pop()
			return rec, v, ok
		},
		"queue": func() (*recorder[string], string, bool) {
			q := NewQueue[string]()
			rec := &recorder[string]{}
			q.Subscribe(rec)
			v, ok := q.Pop()
			return rec, v, ok
		},
	} {
		t.Run(name, func(t *testing.T) {
			rec, v, ok := pop()
			assert.False(t, ok)
			assert.Equal(t, "", v)
			require.Len(t, rec.events, 1)
			assert.Equal(t, ChangePop, rec.events[0].Kind)
			assert.False(t, rec.events[0].Ok)
		})
	}
}

func TestArray(t *testing.T) {
	a := NewArray[string]()
	rec := &recorder[string]{}
	a.Subscribe(rec)

	a.Push("a")
	a.Push("b")
	a.Push("c")

	v, ok := a.Pop(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []string{"a", "c"}, a.Snapshot())

	v, ok = a.Pop(-1)
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	assert.True(t, a.Set(0, "z"))
	assert.False(t, a.Set(5, "nope"))
	got, ok := a.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "z", got)

	_, ok = a.Pop(9)
	assert.False(t, ok)

	kinds := make([]ChangeKind, 0, len(rec.events))
	for _, e := range rec.events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []ChangeKind{ChangePush, ChangePush, ChangePush, ChangePop, ChangePop, ChangeSet, ChangePop}, kinds)
}

func TestGraph(t *testing.T) {
	g := NewGraph[string]()
	rec := &recorder[string]{}
	g.Subscribe(rec)

	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	assert.Equal(t, []int{0, 1, 2}, []int{a, b, c})

	assert.True(t, g.AddEdge(a, b, 1))
	assert.True(t, g.AddEdge(c, b, 2))
	assert.True(t, g.AddEdge(a, c, 3))
	assert.False(t, g.AddEdge(a, 9, 1))

	g.RemoveNode(b)
	assert.False(t, g.IsValidNode(b))
	assert.Equal(t, []Edge{{To: c, Weight: 3}}, g.Edges(a))
	assert.Empty(t, g.Edges(c))

	assert.Equal(t, b, g.AddNode("d"), "free slot is reused")
	assert.Equal(t, 3, g.Size())

	assert.True(t, g.RemoveEdge(a, c))
	assert.False(t, g.RemoveEdge(a, c))

	snap := g.Snapshot()
	snap[a].Outgoing = append(snap[a].Outgoing, Edge{To: 1})
	assert.Empty(t, g.Edges(a))

	g.Clear()
	assert.Equal(t, 0, g.Size())
	assert.NotEmpty(t, rec.events)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("queue")
	require.NoError(t, err)
	assert.Equal(t, KindQueue, k)
	assert.Equal(t, "Queue", k.String())

	_, err = ParseKind("heap")
	assert.Error(t, err)
}
