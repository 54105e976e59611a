// Package render draws observable containers as animated rows of cells.
//
// A Renderer subscribes to one container and keeps a scene layer in step
// with it. Data changes re-run the drawers against a fresh snapshot; any
// option change tears the drawers down and builds them again, because cell
// geometry cannot be patched in place.
package render

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-drift/visualds/pkg/errors"
	"github.com/go-drift/visualds/pkg/logging"
	"github.com/go-drift/visualds/pkg/props"
	"github.com/go-drift/visualds/pkg/scene"
	"github.com/go-drift/visualds/pkg/structure"
)

// State is the lifecycle stage of a Renderer.
type State int

const (
	// StateUnattached means the renderer is being constructed.
	StateUnattached State = iota
	// StateLive means the renderer is subscribed and its layer populated.
	StateLive
	// StateDisposed is terminal: the layer is gone and the subscription
	// cancelled.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateLive:
		return "live"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// container is the part of a structure a Renderer needs.
type container[T any] interface {
	Name() string
	Snapshot() []T
	Subscribe(structure.Observer[structure.Change[T]])
	Unsubscribe(structure.Observer[structure.Change[T]])
}

// Renderer keeps a scene layer in step with one container.
//
// Every method is a no-op once Dispose has run. The container is never
// mutated; several renderers may observe the same container.
type Renderer[T any] struct {
	source   container[T]
	pointer  string
	observer *structure.ObserverFunc[structure.Change[T]]
	props    *props.Props
	root     *scene.Node
	drawers  []Drawer
	state    State
	rebuilds int
	log      zerolog.Logger
}

// NewStack returns a live renderer for s, which must be a non-nil
// *structure.Stack[T]. Any other value is rejected with an invalid
// argument error.
func NewStack[T any](s any, values props.Values) (*Renderer[T], error) {
	stack, ok := s.(*structure.Stack[T])
	if !ok || stack == nil {
		return nil, errors.InvalidArgument("render.NewStack", "%v is not a valid Stack", s)
	}
	return newRenderer[T](stack, "TOP", values), nil
}

// NewQueue returns a live renderer for q, which must be a non-nil
// *structure.Queue[T].
func NewQueue[T any](q any, values props.Values) (*Renderer[T], error) {
	queue, ok := q.(*structure.Queue[T])
	if !ok || queue == nil {
		return nil, errors.InvalidArgument("render.NewQueue", "%v is not a valid Queue", q)
	}
	return newRenderer[T](queue, "FRONT", values), nil
}

func newRenderer[T any](source container[T], pointer string, values props.Values) *Renderer[T] {
	r := &Renderer[T]{
		source:  source,
		pointer: pointer,
		root:    scene.NewGroup(),
		log:     logging.Component("render").With().Str("container", source.Name()).Logger(),
	}
	r.root.Class = source.Name()
	r.observer = structure.NewObserver(func(structure.Change[T]) { r.Refresh() })
	source.Subscribe(r.observer)
	r.SetProps(values)
	r.state = StateLive
	return r
}

// State returns the lifecycle stage.
func (r *Renderer[T]) State() State { return r.state }

// Alive reports whether the renderer has not been disposed.
func (r *Renderer[T]) Alive() bool { return r != nil && r.root != nil }

// Node returns the renderer's layer for attaching into a larger scene, or
// nil after Dispose.
func (r *Renderer[T]) Node() *scene.Node {
	if r == nil {
		return nil
	}
	return r.root
}

// Props returns the live options. Writing a field through Set rebuilds the
// drawers.
func (r *Renderer[T]) Props() *props.Props { return r.props }

// Pointer returns the caption drawn under the end cell: TOP or FRONT.
func (r *Renderer[T]) Pointer() string { return r.pointer }

// Rebuilds returns how many times the drawers have been rebuilt.
func (r *Renderer[T]) Rebuilds() int { return r.rebuilds }

// SetProps replaces the options wholesale, merging values over
// DefaultValues, and rebuilds. Writes through a replaced Props no longer
// reach the renderer.
func (r *Renderer[T]) SetProps(values props.Values) {
	if !r.Alive() {
		return
	}
	var p *props.Props
	p = props.New(values, DefaultValues(), props.GlobalHandler(func(field string, value any) {
		if r.props != p {
			return
		}
		r.log.Debug().Str("field", field).Interface("value", value).Msg("option changed")
		r.ForceRebuild()
	}))
	r.props = p
	r.ForceRebuild()
}

// Refresh redraws every drawer from a fresh snapshot.
func (r *Renderer[T]) Refresh() {
	if !r.Alive() {
		return
	}
	snapshot := r.source.Snapshot()
	labels := make([]string, len(snapshot))
	for i, v := range snapshot {
		labels[i] = fmt.Sprint(v)
	}
	r.log.Debug().Int("size", len(labels)).Msg("refresh")
	for i, d := range r.drawers {
		r.update(drawerKinds[i].name, d, labels)
	}
}

func (r *Renderer[T]) update(name string, d Drawer, labels []string) {
	defer errors.Recover("render." + name + ".Update")
	d.Update(labels)
}

// ForceRebuild discards every drawer and visual element, builds the
// drawers again from the current options and refreshes.
func (r *Renderer[T]) ForceRebuild() {
	if !r.Alive() {
		return
	}
	r.root.RemoveChildren()
	layout := LayoutOf(r.props)
	r.drawers = r.drawers[:0]
	for _, k := range drawerKinds {
		r.drawers = append(r.drawers, k.build(r.root, layout, r.pointer))
	}
	r.rebuilds++
	r.log.Debug().Int("rebuilds", r.rebuilds).Msg("rebuild")
	r.Refresh()
}

// Dispose unsubscribes from the container and removes the layer. It is
// terminal and safe to call more than once.
func (r *Renderer[T]) Dispose() {
	if !r.Alive() {
		return
	}
	r.source.Unsubscribe(r.observer)
	for _, d := range r.drawers {
		d.Remove()
	}
	r.drawers = nil
	r.root.Remove()
	r.root = nil
	r.state = StateDisposed
	r.log.Debug().Msg("disposed")
}
