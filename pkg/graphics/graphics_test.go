package graphics

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	p, err := ParsePath("M7.41,15.41L12,10.83L16.59,15.41L18,14L12,8L6,14L7.41,15.41Z")
	require.NoError(t, err)
	require.Len(t, p.Commands, 8)
	assert.Equal(t, PathOpMoveTo, p.Commands[0].Op)
	assert.Equal(t, Offset{X: 7.41, Y: 15.41}, p.Commands[0].Point)
	assert.Equal(t, PathOpClose, p.Commands[7].Op)
	assert.Equal(t, Rect{Left: 6, Top: 8, Right: 18, Bottom: 15.41}, p.Bounds())
	assert.Equal(t, "M7.41,15.41L12,10.83L16.59,15.41L18,14L12,8L6,14L7.41,15.41Z", p.SVGData())

	p, err = ParsePath("M 0 0 10 0 10 10 z")
	require.NoError(t, err)
	assert.Equal(t, []PathOp{PathOpMoveTo, PathOpLineTo, PathOpLineTo, PathOpClose},
		[]PathOp{p.Commands[0].Op, p.Commands[1].Op, p.Commands[2].Op, p.Commands[3].Op})

	_, err = ParsePath("C1,2")
	assert.Error(t, err)
	_, err = ParsePath("M1")
	assert.Error(t, err)
}

func TestTransformCompose(t *testing.T) {
	s := newStateStack()
	s.translate(10, 5)
	s.scale(2)
	s.translate(1, 1)

	got := s.current.transform.Apply(Offset{X: 3, Y: 4})
	assert.Equal(t, Offset{X: 18, Y: 15}, got)

	s.save()
	s.translate(100, 100)
	s.restore()
	assert.Equal(t, got, s.current.transform.Apply(Offset{X: 3, Y: 4}))
}

func TestColor(t *testing.T) {
	c, err := ParseHex("#660eb3")
	require.NoError(t, err)
	assert.Equal(t, ColorPurple, c)
	assert.Equal(t, "#660eb3", c.Hex())

	c, err = ParseHex("fff")
	require.NoError(t, err)
	assert.Equal(t, ColorWhite, c)

	_, err = ParseHex("#12")
	assert.Error(t, err)

	assert.InDelta(t, 0.5, ColorWhite.WithAlpha(0.5).Alpha(), 0.01)
}

func TestMeasureText(t *testing.T) {
	assert.InDelta(t, 21.0, MeasureText("TOP", 13), 0.001)
	assert.InDelta(t, 42.0, MeasureText("TOP", 26), 0.001)
	assert.Zero(t, MeasureText("", 13))
}

func TestSVGCanvas(t *testing.T) {
	c := NewSVGCanvas(Size{Width: 100, Height: 50})
	c.Save()
	c.Translate(10, 0)
	c.MultiplyAlpha(0.5)
	c.DrawRect(RectFromLTWH(0, 0, 40, 30), Paint{Color: ColorPurple})
	c.Restore()
	c.DrawText("a<b", Offset{X: 20, Y: 15}, TextStyle{Color: ColorWhite, FontSize: 13, Anchor: AnchorMiddle, Shift: 0.35})

	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50"`))
	assert.Contains(t, out, `<rect x="0" y="0" width="40" height="30" fill="#660eb3" fill-opacity="0.5" transform="matrix(1 0 0 1 10 0)"/>`)
	assert.Contains(t, out, `text-anchor="middle" dy="0.35em" fill="#ffffff">a&lt;b</text>`)
}

func TestRasterCanvas(t *testing.T) {
	c := NewRasterCanvas(Size{Width: 20, Height: 10}, ColorWhite)
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), Paint{Color: ColorBlack})

	img := c.Image()
	assert.Equal(t, uint8(0), img.RGBAAt(5, 5).R)
	assert.Equal(t, uint8(255), img.RGBAAt(15, 5).R)

	c.Save()
	c.MultiplyAlpha(0)
	c.DrawRect(RectFromLTWH(10, 0, 10, 10), Paint{Color: ColorBlack})
	c.Restore()
	assert.Equal(t, uint8(255), img.RGBAAt(15, 5).R, "fully transparent draws are skipped")

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 20, decoded.Bounds().Dx())
}
