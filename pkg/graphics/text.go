package graphics

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// face is the bitmap face used for measuring and rasterizing labels. It has
// a fixed 13px design size; MeasureText scales its advance to fontSize.
var face font.Face = basicfont.Face7x13

// faceSize is the design size of face in pixels.
const faceSize = 13.0

// MeasureText returns the advance width of text at fontSize pixels.
func MeasureText(text string, fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = faceSize
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64 * fontSize / faceSize
}

// anchorOffset returns how far left of the draw position a run of the given
// width starts.
func anchorOffset(anchor TextAnchor, width float64) float64 {
	switch anchor {
	case AnchorMiddle:
		return width / 2
	case AnchorEnd:
		return width
	default:
		return 0
	}
}
