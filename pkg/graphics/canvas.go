package graphics

// TextAnchor selects which point of a text run sits on the draw position.
type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// String returns the SVG text-anchor keyword.
func (a TextAnchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// Paint describes how a shape is filled.
type Paint struct {
	Color Color
}

// TextStyle describes how a text run is drawn.
type TextStyle struct {
	Color    Color
	FontSize float64
	Anchor   TextAnchor
	// Shift moves the baseline down by Shift * FontSize (SVG "dy" in em).
	Shift float64
}

// Canvas receives drawing commands.
type Canvas interface {
	// Save pushes the current transform and opacity.
	Save()

	// Restore pops the most recent transform and opacity.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Scale scales the coordinate system uniformly.
	Scale(s float64)

	// MultiplyAlpha multiplies the opacity of everything drawn until the
	// matching Restore.
	MultiplyAlpha(alpha float64)

	// DrawRect fills a rectangle.
	DrawRect(rect Rect, paint Paint)

	// DrawText draws a single line of text with its baseline at position.
	DrawText(text string, position Offset, style TextStyle)

	// DrawPath fills a path.
	DrawPath(path *Path, paint Paint)

	// Size returns the size of the canvas in pixels.
	Size() Size
}

// canvasState is the save/restore state shared by the concrete canvases.
type canvasState struct {
	transform Transform
	alpha     float64
}

type stateStack struct {
	current canvasState
	saved   []canvasState
}

func newStateStack() stateStack {
	return stateStack{current: canvasState{transform: Identity, alpha: 1}}
}

func (s *stateStack) save() {
	s.saved = append(s.saved, s.current)
}

func (s *stateStack) restore() {
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *stateStack) translate(dx, dy float64) {
	s.current.transform = Transform{Offset: Offset{X: dx, Y: dy}, Scale: 1}.Then(s.current.transform)
}

func (s *stateStack) scale(f float64) {
	s.current.transform = Transform{Scale: f}.Then(s.current.transform)
}

func (s *stateStack) multiplyAlpha(a float64) {
	s.current.alpha *= clamp01(a)
}
