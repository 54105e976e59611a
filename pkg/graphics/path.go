package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo               // Draw line to point (x, y)
	PathOpClose                // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathCommand is one path operation. Point is unused for PathOpClose.
type PathCommand struct {
	Op    PathOp
	Point Offset
}

// Path is a polygonal outline made of move, line and close commands.
type Path struct {
	Commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Point: Offset{X: x, Y: y}})
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Point: Offset{X: x, Y: y}})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Commands) == 0
}

// Bounds returns the bounding box of every point in the path.
func (p *Path) Bounds() Rect {
	var r Rect
	first := true
	for _, c := range p.Commands {
		if c.Op == PathOpClose {
			continue
		}
		pt := Rect{Left: c.Point.X, Top: c.Point.Y, Right: c.Point.X, Bottom: c.Point.Y}
		if first {
			r, first = pt, false
			continue
		}
		r = r.Union(pt)
	}
	return r
}

// SVGData renders the path as SVG path data using absolute commands.
func (p *Path) SVGData() string {
	var sb strings.Builder
	for _, c := range p.Commands {
		switch c.Op {
		case PathOpMoveTo:
			fmt.Fprintf(&sb, "M%s,%s", formatFloat(c.Point.X), formatFloat(c.Point.Y))
		case PathOpLineTo:
			fmt.Fprintf(&sb, "L%s,%s", formatFloat(c.Point.X), formatFloat(c.Point.Y))
		case PathOpClose:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

// ParsePath parses the absolute M, L and Z subset of SVG path data.
// Coordinates may be separated by commas or whitespace, and repeated
// coordinate pairs after M are treated as implicit L commands.
func ParsePath(data string) (*Path, error) {
	p := NewPath()
	var cmd byte
	i := 0
	for {
		i = skipSeparators(data, i)
		if i >= len(data) {
			break
		}
		switch c := data[i]; c {
		case 'M', 'L':
			cmd = c
			i++
			continue
		case 'Z', 'z':
			p.Close()
			cmd = 0
			i++
			continue
		}
		if cmd == 0 {
			return nil, fmt.Errorf("path data %q: unsupported command %q at %d", data, data[i], i)
		}
		x, next, err := readNumber(data, i)
		if err != nil {
			return nil, fmt.Errorf("path data %q: %w", data, err)
		}
		y, next, err := readNumber(data, skipSeparators(data, next))
		if err != nil {
			return nil, fmt.Errorf("path data %q: %w", data, err)
		}
		i = next
		if cmd == 'M' {
			p.MoveTo(x, y)
			cmd = 'L'
		} else {
			p.LineTo(x, y)
		}
	}
	return p, nil
}

func skipSeparators(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == ',' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

func readNumber(s string, i int) (float64, int, error) {
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if start == i {
		return 0, i, fmt.Errorf("expected number at %d", start)
	}
	v, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, i, fmt.Errorf("bad number %q: %w", s[start:i], err)
	}
	return v, i, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
