package render

import (
	"time"

	"github.com/go-drift/visualds/pkg/props"
)

// Option field names understood by the cell renderers.
const (
	FieldCellSpace   = "cellSpace"
	FieldCellWidth   = "cellWidth"
	FieldCellHeight  = "cellHeight"
	FieldFlyDistance = "flyDistance"
	FieldShowIndex   = "showIndex"
	FieldShowLabel   = "showLabel"
)

const (
	indexHeight   = 30
	labelWidth    = 50
	labelBoxSpace = 5

	// TransitionDuration is the length of every enter, update and exit
	// transition.
	TransitionDuration = 750 * time.Millisecond
)

// DefaultValues returns the options a renderer starts from before caller
// values are merged in.
func DefaultValues() props.Values {
	return props.Values{
		FieldCellSpace:   5.0,
		FieldCellWidth:   40.0,
		FieldCellHeight:  30.0,
		FieldFlyDistance: 40.0,
		FieldShowIndex:   true,
		FieldShowLabel:   true,
	}
}

// Layout is the geometry of a row of cells, read from renderer options.
type Layout struct {
	CellSpace   float64
	CellWidth   float64
	CellHeight  float64
	FlyDistance float64
	ShowIndex   bool
	ShowLabel   bool
}

// LayoutOf reads a Layout from p.
func LayoutOf(p *props.Props) Layout {
	return Layout{
		CellSpace:   p.Float(FieldCellSpace),
		CellWidth:   p.Float(FieldCellWidth),
		CellHeight:  p.Float(FieldCellHeight),
		FlyDistance: p.Float(FieldFlyDistance),
		ShowIndex:   p.Bool(FieldShowIndex),
		ShowLabel:   p.Bool(FieldShowLabel),
	}
}

// BoxStartX is the left edge of cell 0; the label legend sits left of it.
func (l Layout) BoxStartX() float64 {
	if l.ShowLabel {
		return labelWidth
	}
	return 0
}

// BoxStartY is the top edge of the cells; the index row sits above it.
func (l Layout) BoxStartY() float64 {
	if l.ShowIndex {
		return indexHeight
	}
	return 0
}

// CellX is the left edge of cell i.
func (l Layout) CellX(i int) float64 {
	return l.BoxStartX() + (l.CellWidth+l.CellSpace)*float64(i)
}

// CellCenterX is the horizontal center of cell i.
func (l Layout) CellCenterX(i int) float64 {
	return l.CellX(i) + l.CellWidth/2
}

// BoxEndY is the bottom edge of the cells.
func (l Layout) BoxEndY() float64 {
	return l.BoxStartY() + l.CellHeight
}

// EndX is where the pointer sits for a sequence of length n: the right
// edge of the last cell, or the left edge of cell 0 when empty.
func (l Layout) EndX(n int) float64 {
	if n == 0 {
		return l.CellX(0)
	}
	return l.CellX(n) - l.CellSpace
}
