package graphics

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterCanvas paints into an RGBA image with anti-aliased fills.
type RasterCanvas struct {
	img   *image.RGBA
	state stateStack
}

// NewRasterCanvas returns a canvas over a new image of the given size,
// cleared to background.
func NewRasterCanvas(size Size, background Color) *RasterCanvas {
	w, h := int(size.Width+0.5), int(size.Height+0.5)
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)
	return &RasterCanvas{img: img, state: newStateStack()}
}

func (c *RasterCanvas) Save() { c.state.save() }
func (c *RasterCanvas) Restore() { c.state.restore() }
func (c *RasterCanvas) Translate(dx, dy float64) { c.state.translate(dx, dy) }
func (c *RasterCanvas) Scale(s float64) { c.state.scale(s) }
func (c *RasterCanvas) MultiplyAlpha(alpha float64) { c.state.multiplyAlpha(alpha) }

func (c *RasterCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	if rect.IsEmpty() {
		return
	}
	p := NewPath()
	p.MoveTo(rect.Left, rect.Top)
	p.LineTo(rect.Right, rect.Top)
	p.LineTo(rect.Right, rect.Bottom)
	p.LineTo(rect.Left, rect.Bottom)
	p.Close()
	c.DrawPath(p, paint)
}

func (c *RasterCanvas) DrawPath(path *Path, paint Paint) {
	if path.IsEmpty() {
		return
	}
	col := c.effective(paint.Color)
	if col.Alpha() == 0 {
		return
	}
	b := c.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	t := c.state.current.transform
	open := false
	for _, cmd := range path.Commands {
		pt := t.Apply(cmd.Point)
		switch cmd.Op {
		case PathOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(float32(pt.X), float32(pt.Y))
			open = true
		case PathOpLineTo:
			r.LineTo(float32(pt.X), float32(pt.Y))
		case PathOpClose:
			r.ClosePath()
			open = false
		}
	}
	if open {
		r.ClosePath()
	}
	r.Draw(c.img, b, image.NewUniform(col.NRGBA()), image.Point{})
}

// DrawText rasterizes with the fixed bitmap face; FontSize only affects
// anchoring and baseline shift.
func (c *RasterCanvas) DrawText(text string, position Offset, style TextStyle) {
	col := c.effective(style.Color)
	if col.Alpha() == 0 || text == "" {
		return
	}
	t := c.state.current.transform
	pt := t.Apply(position)
	width := float64(font.MeasureString(face, text)) / 64
	x := pt.X - anchorOffset(style.Anchor, width)
	y := pt.Y + style.Shift*faceSize
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.NRGBA()),
		Face: face,
		Dot:  fixed.P(int(x+0.5), int(y+0.5)),
	}
	d.DrawString(text)
}

func (c *RasterCanvas) effective(col Color) Color {
	return col.WithAlpha(col.Alpha() * c.state.current.alpha)
}

// EncodePNG writes the image as PNG.
func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
