// Package scene is a small retained-mode visual tree. Nodes carry position,
// size, opacity and fill, animate through [Transition], and are matched to
// data by position with [JoinByIndex].
package scene

import (
	"fmt"
	"sync/atomic"

	"github.com/go-drift/visualds/pkg/graphics"
)

// Kind is the primitive a node draws.
type Kind int

const (
	KindGroup Kind = iota
	KindRect
	KindText
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var nextID atomic.Uint64

// Node is one element of the visual tree.
//
// Fill and FontSize are inherited from the nearest ancestor that sets them,
// so a drawer can color a whole layer by setting its group.
type Node struct {
	// Class tags the node for Select and JoinByIndex.
	Class string
	// Pos is the top-left corner of a rect, the anchor point of a text and
	// the translation of a group or path.
	Pos graphics.Offset
	// Size is the extent of a rect.
	Size graphics.Size
	// Opacity multiplies the opacity of the node and its subtree.
	Opacity float64
	// Fill is the fill color; transparent means inherit.
	Fill graphics.Color
	// Text is the content of a text node.
	Text string
	// FontSize is the text size in pixels; zero means inherit.
	FontSize float64
	// Anchor is the horizontal alignment of a text node.
	Anchor graphics.TextAnchor
	// Shift moves a text baseline down, in em.
	Shift float64
	// Path is the outline of a path node, relative to Pos.
	Path *graphics.Path
	// Scale is the uniform scale of a group; zero means 1.
	Scale float64

	id         uint64
	kind       Kind
	parent     *Node
	children   []*Node
	transition *Transition
	exiting    bool
	removed    bool
}

func newNode(kind Kind) *Node {
	return &Node{id: nextID.Add(1), kind: kind, Opacity: 1}
}

// NewGroup returns an empty group.
func NewGroup() *Node { return newNode(KindGroup) }

// NewRect returns a rect node.
func NewRect() *Node { return newNode(KindRect) }

// NewText returns a text node showing text.
func NewText(text string) *Node {
	n := newNode(KindText)
	n.Text = text
	return n
}

// NewPath returns a path node drawing p.
func NewPath(p *graphics.Path) *Node {
	n := newNode(KindPath)
	n.Path = p
	return n
}

// ID returns a process-unique identifier. A node created to replace one
// that is still fading out always has a different ID.
func (n *Node) ID() uint64 { return n.id }

// Kind returns the primitive the node draws.
func (n *Node) Kind() Kind { return n.kind }

// Parent returns the parent node, or nil for a root or removed node.
func (n *Node) Parent() *Node { return n.parent }

// Exiting reports whether the node has left its join and is fading out.
func (n *Node) Exiting() bool { return n.exiting }

// Removed reports whether the node has been detached from the tree.
func (n *Node) Removed() bool { return n.removed }

// Append attaches child as the last child of n and returns child. A child
// attached elsewhere is moved.
func (n *Node) Append(child *Node) *Node {
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = n
	child.removed = false
	n.children = append(n.children, child)
	return child
}

// Children returns a copy of the child list in paint order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Select returns the children tagged class that are not exiting, in paint
// order.
func (n *Node) Select(class string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Class == class && !c.exiting {
			out = append(out, c)
		}
	}
	return out
}

// Remove detaches n from its parent and stops every transition in its
// subtree. It is safe to call more than once.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.detach(n)
	}
	n.removed = true
	n.Walk(func(d *Node) bool {
		d.stopTransition()
		return true
	})
}

// RemoveChildren removes every child of n.
func (n *Node) RemoveChildren() {
	for _, c := range n.Children() {
		c.Remove()
	}
}

func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Count returns the number of nodes of kind in the subtree, including
// exiting ones.
func (n *Node) Count(kind Kind) int {
	count := 0
	n.Walk(func(d *Node) bool {
		if d.kind == kind {
			count++
		}
		return true
	})
	return count
}

// FinishTransitions jumps every running transition in the subtree to its
// end state, removing nodes whose transition ends in removal.
func (n *Node) FinishTransitions() {
	n.Walk(func(d *Node) bool {
		if d.transition != nil {
			d.transition.finish()
		}
		return true
	})
}

// Animating reports whether any node in the subtree has a running
// transition.
func (n *Node) Animating() bool {
	animating := false
	n.Walk(func(d *Node) bool {
		if d.transition != nil {
			animating = true
		}
		return !animating
	})
	return animating
}

func (n *Node) String() string {
	switch n.kind {
	case KindText:
		return fmt.Sprintf("text#%d(%q @%.1f,%.1f op=%.2f)", n.id, n.Text, n.Pos.X, n.Pos.Y, n.Opacity)
	default:
		return fmt.Sprintf("%s#%d(%s @%.1f,%.1f op=%.2f)", n.kind, n.id, n.Class, n.Pos.X, n.Pos.Y, n.Opacity)
	}
}
