package render

import (
	"strconv"

	"github.com/go-drift/visualds/pkg/animation"
	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/scene"
)

// Drawer owns one layer of a renderer and redraws it from a snapshot.
// Elements are keyed by position in the snapshot.
type Drawer interface {
	Update(labels []string)
	Remove()
}

type drawerKind struct {
	name  string
	build func(parent *scene.Node, l Layout, pointer string) Drawer
}

// drawerKinds is in paint order: later layers draw over earlier ones.
var drawerKinds = []drawerKind{
	{"box", newBoxDrawer},
	{"text", newTextDrawer},
	{"index", newIndexDrawer},
	{"pointer", newPointerDrawer},
	{"label", newLabelDrawer},
}

// pointerIcon is an upward chevron, 24 units wide.
var pointerIcon = mustParsePath("M7.41,15.41L12,10.83L16.59,15.41L18,14L12,8L6,14L7.41,15.41Z")

func mustParsePath(d string) *graphics.Path {
	p, err := graphics.ParsePath(d)
	if err != nil {
		panic(err)
	}
	return p
}

func transition(n *scene.Node) *scene.Transition {
	return n.Transition(TransitionDuration, animation.EaseCubicOut)
}

// animateTo moves n toward pos and opacity unless it is already there or
// already heading there.
func animateTo(n *scene.Node, pos graphics.Offset, opacity float64) {
	if p, o := n.Target(); p == pos && o == opacity {
		return
	}
	transition(n).MoveTo(pos).FadeTo(opacity)
}

type layer struct {
	group  *scene.Node
	layout Layout
}

func newLayer(parent *scene.Node, l Layout) layer {
	return layer{group: parent.Append(scene.NewGroup()), layout: l}
}

func (d layer) Remove() { d.group.Remove() }

// boxDrawer draws one filled cell per element.
type boxDrawer struct{ layer }

func newBoxDrawer(parent *scene.Node, l Layout, _ string) Drawer {
	d := &boxDrawer{newLayer(parent, l)}
	d.group.Fill = graphics.ColorPurple
	return d
}

func (d *boxDrawer) Update(labels []string) {
	l := d.layout
	j := scene.JoinByIndex(d.group, "box", len(labels), func(i int) *scene.Node {
		n := scene.NewRect()
		n.Pos.X = l.CellX(i) + l.FlyDistance
		n.Opacity = 0
		return n
	})
	for k, n := range j.Exit {
		transition(n).FadeTo(0).MoveXTo(l.CellX(len(labels)+k) + l.FlyDistance).Remove()
	}
	for i, n := range j.Nodes {
		n.Pos.Y = l.BoxStartY()
		n.Size = graphics.Size{Width: l.CellWidth, Height: l.CellHeight}
		animateTo(n, graphics.Offset{X: l.CellX(i), Y: l.BoxStartY()}, 1)
	}
}

// textDrawer draws each element's label centered in its cell.
type textDrawer struct{ layer }

func newTextDrawer(parent *scene.Node, l Layout, _ string) Drawer {
	d := &textDrawer{newLayer(parent, l)}
	d.group.Fill = graphics.ColorWhite
	return d
}

func (d *textDrawer) Update(labels []string) {
	l := d.layout
	flyX := func(i int) float64 { return l.CellCenterX(i) + l.FlyDistance }
	j := scene.JoinByIndex(d.group, "val", len(labels), func(i int) *scene.Node {
		n := scene.NewText("")
		n.Anchor = graphics.AnchorMiddle
		n.Shift = 0.35
		n.Pos.X = flyX(i)
		n.Opacity = 0
		return n
	})
	for k, n := range j.Exit {
		transition(n).FadeTo(0).MoveXTo(flyX(len(labels) + k)).Remove()
	}
	for i, n := range j.Nodes {
		n.Text = labels[i]
		n.Pos.Y = l.BoxStartY() + l.CellHeight/2
		animateTo(n, graphics.Offset{X: l.CellCenterX(i), Y: n.Pos.Y}, 1)
	}
}

// indexDrawer numbers the cells in a row above them.
type indexDrawer struct{ layer }

func newIndexDrawer(parent *scene.Node, l Layout, _ string) Drawer {
	d := &indexDrawer{newLayer(parent, l)}
	d.group.Fill = graphics.ColorGrey
	d.group.FontSize = 13
	return d
}

func (d *indexDrawer) Update(labels []string) {
	l := d.layout
	if !l.ShowIndex {
		return
	}
	j := scene.JoinByIndex(d.group, "idx", len(labels), func(i int) *scene.Node {
		n := scene.NewText(strconv.Itoa(i))
		n.Anchor = graphics.AnchorMiddle
		n.Shift = 0.35
		n.Pos.Y = indexHeight - 10 - 30
		n.Opacity = 0
		return n
	})
	for _, n := range j.Exit {
		transition(n).FadeTo(0).Remove()
	}
	for i, n := range j.Nodes {
		n.Pos.X = l.CellCenterX(i)
		animateTo(n, graphics.Offset{X: n.Pos.X, Y: indexHeight - 10}, 1)
	}
}

// pointerDrawer marks the logical end of the sequence with an arrow and a
// caption ("TOP" for stacks, "FRONT" for queues).
type pointerDrawer struct {
	layer
	arrow   *scene.Node
	caption *scene.Node
}

func newPointerDrawer(parent *scene.Node, l Layout, pointer string) Drawer {
	d := &pointerDrawer{layer: newLayer(parent, l)}
	d.arrow = d.group.Append(scene.NewPath(pointerIcon))
	d.arrow.Pos = graphics.Offset{X: l.EndX(0) - 12, Y: l.BoxEndY()}
	d.caption = d.group.Append(scene.NewText(pointer))
	d.caption.Anchor = graphics.AnchorMiddle
	d.caption.Shift = 0.75
	d.caption.Pos = graphics.Offset{X: l.EndX(0), Y: l.BoxEndY() + 20}
	return d
}

func (d *pointerDrawer) Update(labels []string) {
	l := d.layout
	n := len(labels)
	animateTo(d.arrow, graphics.Offset{X: l.EndX(n) - 12, Y: l.BoxEndY()}, 1)
	animateTo(d.caption, graphics.Offset{X: l.EndX(n), Y: l.BoxEndY() + 20}, 1)
}

// labelDrawer draws the static legend left of the cells. It is built once
// per rebuild and ignores updates.
type labelDrawer struct{ layer }

func newLabelDrawer(parent *scene.Node, l Layout, _ string) Drawer {
	d := &labelDrawer{newLayer(parent, l)}
	if !l.ShowLabel {
		return d
	}
	d.group.FontSize = 10
	x := l.BoxStartX() - labelBoxSpace
	if l.ShowIndex {
		idx := d.group.Append(scene.NewText("Index"))
		idx.Anchor = graphics.AnchorEnd
		idx.Pos = graphics.Offset{X: x, Y: l.BoxStartY() - 5}
	}
	data := d.group.Append(scene.NewText("Data"))
	data.Anchor = graphics.AnchorEnd
	data.Shift = 0.35
	data.Pos = graphics.Offset{X: x, Y: l.BoxStartY() + l.CellHeight/2}
	return d
}

func (d *labelDrawer) Update([]string) {}
