// Package board composes several renderers into one scene with a shared
// pan and zoom, and writes the result as SVG or PNG.
package board

import (
	"io"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-drift/visualds/pkg/errors"
	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/logging"
	"github.com/go-drift/visualds/pkg/scene"
)

// Renderable is anything that owns a scene layer and can release it.
// *render.Renderer satisfies it.
type Renderable interface {
	Node() *scene.Node
	Dispose()
}

// Item is one renderer placed on a board.
type Item struct {
	// ID is a random identifier assigned by Add.
	ID       string
	Renderer Renderable
	group    *scene.Node
}

// Position returns the item's offset inside the board.
func (it *Item) Position() graphics.Offset { return it.group.Pos }

// Board hosts renderers under one pan/zoom transform.
type Board struct {
	size       graphics.Size
	background graphics.Color
	root       *scene.Node
	items      []*Item
	disposed   bool
	log        zerolog.Logger
}

// New returns an empty board that renders at size over a white background.
func New(size graphics.Size) *Board {
	return &Board{
		size:       size,
		background: graphics.ColorWhite,
		root:       scene.NewGroup(),
		log:        logging.Component("board"),
	}
}

// Size returns the output size.
func (b *Board) Size() graphics.Size { return b.size }

// SetSize changes the output size.
func (b *Board) SetSize(size graphics.Size) { b.size = size }

// SetBackground sets the PNG background color. SVG output is transparent.
func (b *Board) SetBackground(c graphics.Color) { b.background = c }

// Root returns the board's scene root.
func (b *Board) Root() *scene.Node { return b.root }

// Add places r at offset and returns its item. A renderer whose layer is
// already gone is rejected.
func (b *Board) Add(r Renderable, at graphics.Offset) (*Item, error) {
	if b.disposed {
		return nil, errors.InvalidArgument("board.Add", "board is disposed")
	}
	if r == nil || r.Node() == nil {
		return nil, errors.InvalidArgument("board.Add", "%T has no visual layer", r)
	}
	it := &Item{ID: uuid.NewString(), Renderer: r, group: scene.NewGroup()}
	it.group.Class = "item"
	it.group.Pos = at
	it.group.Append(r.Node())
	b.root.Append(it.group)
	b.items = append(b.items, it)
	b.log.Debug().Str("item", it.ID).Msg("added")
	return it, nil
}

// Remove detaches the item with id without disposing its renderer and
// reports whether it was found.
func (b *Board) Remove(id string) bool {
	i := slices.IndexFunc(b.items, func(it *Item) bool { return it.ID == id })
	if i < 0 {
		return false
	}
	b.items[i].group.Remove()
	b.items = slices.Delete(b.items, i, i+1)
	return true
}

// Item returns the item with id.
func (b *Board) Item(id string) (*Item, bool) {
	b.prune()
	i := slices.IndexFunc(b.items, func(it *Item) bool { return it.ID == id })
	if i < 0 {
		return nil, false
	}
	return b.items[i], true
}

// Items returns the items in the order they were added. Items whose
// renderer was disposed directly, rather than through Remove or Dispose,
// are dropped first.
func (b *Board) Items() []*Item {
	b.prune()
	return slices.Clone(b.items)
}

// prune drops items whose renderer no longer has a layer, along with
// their empty item group.
func (b *Board) prune() {
	b.items = slices.DeleteFunc(b.items, func(it *Item) bool {
		if it.Renderer.Node() != nil {
			return false
		}
		it.group.Remove()
		b.log.Debug().Str("item", it.ID).Msg("dropped disposed renderer")
		return true
	})
}

// Transform returns the current pan/zoom.
func (b *Board) Transform() graphics.Transform {
	scale := b.root.Scale
	if scale == 0 {
		scale = 1
	}
	return graphics.Transform{Offset: b.root.Pos, Scale: scale}
}

// SetTransform replaces the pan/zoom. Non-positive scales are ignored.
func (b *Board) SetTransform(t graphics.Transform) {
	if t.Scale <= 0 {
		return
	}
	b.root.Pos = t.Offset
	b.root.Scale = t.Scale
}

// Pan moves the content by (dx, dy) output pixels.
func (b *Board) Pan(dx, dy float64) {
	t := b.Transform()
	t.Offset = t.Offset.Add(graphics.Offset{X: dx, Y: dy})
	b.SetTransform(t)
}

// Zoom scales the content by factor, keeping the output point focus fixed.
func (b *Board) Zoom(factor float64, focus graphics.Offset) {
	if factor <= 0 {
		return
	}
	t := b.Transform()
	b.SetTransform(graphics.Transform{
		Offset: graphics.Offset{
			X: focus.X - (focus.X-t.Offset.X)*factor,
			Y: focus.Y - (focus.Y-t.Offset.Y)*factor,
		},
		Scale: t.Scale * factor,
	})
}

// Animating reports whether any transition on the board is running.
func (b *Board) Animating() bool { return b.root.Animating() }

// Paint draws the board onto c.
func (b *Board) Paint(c graphics.Canvas) {
	defer errors.Recover("board.Paint")
	b.prune()
	b.root.Paint(c)
}

// RenderSVG writes the current frame as an SVG document.
func (b *Board) RenderSVG(w io.Writer) error {
	c := graphics.NewSVGCanvas(b.size)
	b.Paint(c)
	if _, err := c.WriteTo(w); err != nil {
		return &errors.VizError{Op: "board.RenderSVG", Kind: errors.KindRender, Err: err}
	}
	return nil
}

// RenderPNG writes the current frame as a PNG image.
func (b *Board) RenderPNG(w io.Writer) error {
	c := graphics.NewRasterCanvas(b.size, b.background)
	b.Paint(c)
	if err := c.EncodePNG(w); err != nil {
		return &errors.VizError{Op: "board.RenderPNG", Kind: errors.KindRender, Err: err}
	}
	return nil
}

// Dispose disposes every renderer and empties the board. It is safe to
// call more than once.
func (b *Board) Dispose() {
	if b.disposed {
		return
	}
	for _, it := range b.items {
		it.Renderer.Dispose()
		it.group.Remove()
	}
	b.items = nil
	b.disposed = true
	b.log.Debug().Msg("disposed")
}
