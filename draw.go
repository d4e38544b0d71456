package gokachu

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay colors.
var (
	ColorRed    = color.NRGBA{R: 255, A: 255}
	ColorGreen  = color.NRGBA{G: 255, A: 255}
	ColorBlue   = color.NRGBA{B: 255, A: 255}
	ColorWhite  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorYellow = color.NRGBA{R: 255, G: 255, A: 255}
)

// Text positions (baseline-left) shared by the overlays.
var (
	modeTextPos  = image.Pt(10, 30)
	trackTextPos = image.Pt(10, 60)
)

var fontFace = basicfont.Face7x13

// DrawText writes s onto dst with its baseline starting at pt.
// A scale greater than 1 renders the glyphs at the font's native size and
// enlarges them with nearest neighbor sampling.
func DrawText(dst *image.NRGBA, s string, pt image.Point, scale int, col color.Color) {
	if s == "" {
		return
	}
	if scale <= 1 {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: fontFace,
			Dot:  fixed.P(pt.X, pt.Y),
		}
		d.DrawString(s)
		return
	}

	width := font.MeasureString(fontFace, s).Ceil()
	height := fontFace.Height
	glyphs := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: fontFace,
		Dot:  fixed.P(0, fontFace.Ascent),
	}
	d.DrawString(s)

	large := imaging.Resize(glyphs, width*scale, height*scale, imaging.NearestNeighbor)
	origin := image.Pt(pt.X, pt.Y-fontFace.Ascent*scale)
	draw.Draw(dst, large.Bounds().Add(origin), large, image.Point{}, draw.Over)
}

// DrawRect outlines rect on dst with the given stroke thickness.
func DrawRect(dst *image.NRGBA, rect image.Rectangle, col color.Color, thickness int) {
	rect = rect.Canon()
	thickness = utils.Max(thickness, 1)
	src := image.NewUniform(col)

	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thickness),
		image.Rect(rect.Min.X, rect.Max.Y-thickness, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thickness, rect.Max.Y),
		image.Rect(rect.Max.X-thickness, rect.Min.Y, rect.Max.X, rect.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawModeName writes the active mode name in the top left corner.
func drawModeName(dst *image.NRGBA, m Mode) {
	DrawText(dst, "Mode: "+m.Label(), modeTextPos, 1, ColorWhite)
}

// countdownScale is the magnification of the countdown digits.
const countdownScale = 6

// drawCountdown renders the count large and red near the frame center.
func drawCountdown(dst *image.NRGBA, n int) {
	s := strconv.Itoa(n)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	textW := font.MeasureString(fontFace, s).Ceil() * countdownScale
	textH := fontFace.Ascent * countdownScale

	pt := image.Pt(dst.Bounds().Min.X+(w-textW)/2, dst.Bounds().Min.Y+(h+textH)/2)
	DrawText(dst, s, pt, countdownScale, ColorRed)
}
