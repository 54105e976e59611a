package scene

import (
	"time"

	"github.com/go-drift/visualds/pkg/animation"
	"github.com/go-drift/visualds/pkg/graphics"
)

// Transition animates a node's position and opacity from their values when
// the target is set to the target values. Starting a transition on a node
// interrupts the one already running there, leaving the node wherever the
// old one had moved it.
//
// Transitions advance when animation.StepTickers runs.
type Transition struct {
	node    *Node
	ctrl    *animation.AnimationController
	pos     *animation.Tween[graphics.Offset]
	opacity *animation.Tween[float64]
	remove  bool
	done    bool
}

// Transition starts a transition on n with the given duration and curve.
// Chain MoveTo, FadeTo and Remove to describe the end state.
func (n *Node) Transition(duration time.Duration, curve func(float64) float64) *Transition {
	n.stopTransition()
	t := &Transition{node: n, ctrl: animation.NewAnimationController(duration)}
	t.ctrl.Curve = curve
	t.ctrl.AddListener(t.apply)
	t.ctrl.AddStatusListener(func(s animation.AnimationStatus) {
		if s == animation.AnimationCompleted {
			t.finish()
		}
	})
	n.transition = t
	if !n.removed {
		t.ctrl.Forward()
	}
	return t
}

// MoveTo animates Pos to p.
func (t *Transition) MoveTo(p graphics.Offset) *Transition {
	t.pos = animation.TweenOffset(t.node.Pos, p)
	return t
}

// MoveXTo animates Pos.X to x, keeping Y.
func (t *Transition) MoveXTo(x float64) *Transition {
	return t.MoveTo(graphics.Offset{X: x, Y: t.node.Pos.Y})
}

// FadeTo animates Opacity to o.
func (t *Transition) FadeTo(o float64) *Transition {
	t.opacity = animation.TweenFloat64(t.node.Opacity, o)
	return t
}

// Remove removes the node from the tree when the transition completes.
func (t *Transition) Remove() *Transition {
	t.remove = true
	return t
}

// Target returns the position and opacity n comes to rest at: the end
// values of its running transition, or its current values when idle.
func (n *Node) Target() (graphics.Offset, float64) {
	pos, opacity := n.Pos, n.Opacity
	if t := n.transition; t != nil {
		if t.pos != nil {
			pos = t.pos.End
		}
		if t.opacity != nil {
			opacity = t.opacity.End
		}
	}
	return pos, opacity
}

// Done reports whether the transition completed or was interrupted.
func (t *Transition) Done() bool { return t.done }

func (t *Transition) apply() {
	if t.done {
		return
	}
	if t.pos != nil {
		t.node.Pos = t.pos.Transform(t.ctrl)
	}
	if t.opacity != nil {
		t.node.Opacity = t.opacity.Transform(t.ctrl)
	}
}

// finish applies the end state and releases the controller.
func (t *Transition) finish() {
	if t.done {
		return
	}
	if t.pos != nil {
		t.node.Pos = t.pos.End
	}
	if t.opacity != nil {
		t.node.Opacity = t.opacity.End
	}
	t.release()
	if t.remove {
		t.node.Remove()
	}
}

func (t *Transition) release() {
	t.done = true
	t.ctrl.Dispose()
	if t.node.transition == t {
		t.node.transition = nil
	}
}

func (n *Node) stopTransition() {
	if n.transition != nil {
		n.transition.release()
	}
}
