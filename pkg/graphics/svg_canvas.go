package graphics

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SVGCanvas records drawing commands as SVG elements. Transforms and
// opacity are folded into each element, so the output is a flat list.
type SVGCanvas struct {
	size  Size
	state stateStack
	body  strings.Builder
}

// NewSVGCanvas returns a canvas for a document of the given size.
func NewSVGCanvas(size Size) *SVGCanvas {
	return &SVGCanvas{size: size, state: newStateStack()}
}

func (c *SVGCanvas) Save() { c.state.save() }
func (c *SVGCanvas) Restore() { c.state.restore() }
func (c *SVGCanvas) Translate(dx, dy float64) { c.state.translate(dx, dy) }
func (c *SVGCanvas) Scale(s float64) { c.state.scale(s) }
func (c *SVGCanvas) MultiplyAlpha(alpha float64) { c.state.multiplyAlpha(alpha) }
func (c *SVGCanvas) Size() Size { return c.size }

func (c *SVGCanvas) DrawRect(rect Rect, paint Paint) {
	fmt.Fprintf(&c.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		formatFloat(rect.Left), formatFloat(rect.Top),
		formatFloat(rect.Width()), formatFloat(rect.Height()),
		c.attrs(paint.Color))
}

func (c *SVGCanvas) DrawText(text string, position Offset, style TextStyle) {
	var esc strings.Builder
	_ = xml.EscapeText(&esc, []byte(text))
	fmt.Fprintf(&c.body, `<text x="%s" y="%s" font-size="%s" text-anchor="%s" dy="%sem"%s>%s</text>`+"\n",
		formatFloat(position.X), formatFloat(position.Y), formatFloat(style.FontSize),
		style.Anchor, formatFloat(style.Shift), c.attrs(style.Color), esc.String())
}

func (c *SVGCanvas) DrawPath(path *Path, paint Paint) {
	if path.IsEmpty() {
		return
	}
	fmt.Fprintf(&c.body, `<path d="%s"%s/>`+"\n", path.SVGData(), c.attrs(paint.Color))
}

// attrs renders fill, opacity and transform for the current state.
func (c *SVGCanvas) attrs(fill Color) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ` fill="%s"`, fill.Hex())
	if op := fill.Alpha() * c.state.current.alpha; op < 1 {
		fmt.Fprintf(&sb, ` fill-opacity="%s"`, formatFloat(roundTo(op, 4)))
	}
	if t := c.state.current.transform; !t.IsIdentity() {
		fmt.Fprintf(&sb, ` transform="matrix(%s 0 0 %s %s %s)"`,
			formatFloat(t.Scale), formatFloat(t.Scale),
			formatFloat(roundTo(t.Offset.X, 4)), formatFloat(roundTo(t.Offset.Y, 4)))
	}
	return sb.String()
}

// WriteTo writes the complete SVG document.
func (c *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">`+"\n%s</svg>\n",
		formatFloat(c.size.Width), formatFloat(c.size.Height),
		formatFloat(c.size.Width), formatFloat(c.size.Height),
		c.body.String())
	return int64(n), err
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for range places {
		p *= 10
	}
	return float64(int64(v*p+0.5*sign(v))) / p
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
