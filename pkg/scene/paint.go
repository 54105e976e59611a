package scene

import (
	"github.com/go-drift/visualds/pkg/graphics"
)

// paintStyle carries inherited attributes down the tree.
type paintStyle struct {
	fill     graphics.Color
	fontSize float64
}

// Paint draws n and its subtree onto canvas.
func (n *Node) Paint(canvas graphics.Canvas) {
	n.paint(canvas, paintStyle{fill: graphics.ColorBlack, fontSize: 13})
}

func (n *Node) paint(canvas graphics.Canvas, style paintStyle) {
	if n.Opacity <= 0 {
		return
	}
	if n.Fill != graphics.ColorTransparent {
		style.fill = n.Fill
	}
	if n.FontSize > 0 {
		style.fontSize = n.FontSize
	}

	canvas.Save()
	defer canvas.Restore()
	if n.Opacity < 1 {
		canvas.MultiplyAlpha(n.Opacity)
	}

	switch n.kind {
	case KindGroup:
		canvas.Translate(n.Pos.X, n.Pos.Y)
		if n.Scale != 0 && n.Scale != 1 {
			canvas.Scale(n.Scale)
		}
		for _, c := range n.children {
			c.paint(canvas, style)
		}
	case KindRect:
		canvas.DrawRect(graphics.RectFromLTWH(n.Pos.X, n.Pos.Y, n.Size.Width, n.Size.Height),
			graphics.Paint{Color: style.fill})
	case KindText:
		canvas.DrawText(n.Text, n.Pos, graphics.TextStyle{
			Color:    style.fill,
			FontSize: style.fontSize,
			Anchor:   n.Anchor,
			Shift:    n.Shift,
		})
	case KindPath:
		canvas.Translate(n.Pos.X, n.Pos.Y)
		canvas.DrawPath(n.Path, graphics.Paint{Color: style.fill})
	}
}

// Bounds returns the area covered by the visible nodes of the subtree, in
// the coordinate space of n's parent. Text extents are estimated with
// graphics.MeasureText.
func (n *Node) Bounds() graphics.Rect {
	return n.bounds(13)
}

func (n *Node) bounds(fontSize float64) graphics.Rect {
	if n.Opacity <= 0 {
		return graphics.Rect{}
	}
	if n.FontSize > 0 {
		fontSize = n.FontSize
	}
	switch n.kind {
	case KindRect:
		return graphics.RectFromLTWH(n.Pos.X, n.Pos.Y, n.Size.Width, n.Size.Height)
	case KindText:
		w := graphics.MeasureText(n.Text, fontSize)
		left := n.Pos.X
		switch n.Anchor {
		case graphics.AnchorMiddle:
			left -= w / 2
		case graphics.AnchorEnd:
			left -= w
		}
		base := n.Pos.Y + n.Shift*fontSize
		return graphics.Rect{Left: left, Top: base - fontSize, Right: left + w, Bottom: base + fontSize*0.25}
	case KindPath:
		if n.Path.IsEmpty() {
			return graphics.Rect{}
		}
		return n.Path.Bounds().Translate(n.Pos.X, n.Pos.Y)
	}

	var r graphics.Rect
	for _, c := range n.children {
		r = r.Union(c.bounds(fontSize))
	}
	if r == (graphics.Rect{}) {
		return r
	}
	scale := n.Scale
	if scale == 0 {
		scale = 1
	}
	return graphics.Rect{
		Left:   r.Left*scale + n.Pos.X,
		Top:    r.Top*scale + n.Pos.Y,
		Right:  r.Right*scale + n.Pos.X,
		Bottom: r.Bottom*scale + n.Pos.Y,
	}
}
