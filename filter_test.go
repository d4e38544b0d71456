package gokachu

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newTestFrame returns a frame with a bright square on a dark gradient.
func newTestFrame(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 64), G: uint8(y % 64), B: 40, A: 255})
		}
	}
	square := image.Rect(w/4, h/4, w/2, h/2)
	draw.Draw(img, square, &image.Uniform{color.NRGBA{R: 230, G: 220, B: 210, A: 255}}, image.Point{}, draw.Src)
	return img
}

func TestFilter_ApplyShouldBeTotal(t *testing.T) {
	fb := &FilterBank{
		Face:  &fakeDetector{results: []detectResult{{det: Detection{Rect: image.Rect(2, 2, 20, 20)}, ok: true}}},
		Color: &fakeDetector{results: []detectResult{{det: Detection{Rect: image.Rect(4, 12, 30, 30), Label: "Green"}, ok: true}}},
	}
	modes := append(Modes(), Mode(-1), Mode(99))

	for _, m := range modes {
		t.Run(m.String(), func(t *testing.T) {
			src := newTestFrame(64, 48)
			var dst *image.NRGBA
			assert.NotPanics(t, func() { dst = fb.Apply(m, src) })
			assert.Equal(t, src.Bounds().Size(), dst.Bounds().Size())
		})
	}
}

func TestFilter_ApplyShouldNotModifyInput(t *testing.T) {
	fb := &FilterBank{
		Face: &fakeDetector{results: []detectResult{{det: Detection{Rect: image.Rect(2, 2, 20, 20)}, ok: true}}},
	}
	for _, m := range Modes() {
		src := newTestFrame(40, 30)
		orig := append([]uint8(nil), src.Pix...)
		fb.Apply(m, src)
		assert.Equal(t, orig, src.Pix, "mode %s modified its input", m)
	}
}

func TestFilter_ApplyShouldBeIdempotent(t *testing.T) {
	fb := &FilterBank{}
	src := newTestFrame(48, 36)
	for _, m := range Modes() {
		a := fb.Apply(m, src)
		b := fb.Apply(m, src)
		assert.Equal(t, a.Pix, b.Pix, "mode %s is not deterministic", m)
	}
}

func TestFilter_IdentityModes(t *testing.T) {
	fb := &FilterBank{}
	src := newTestFrame(32, 24)

	for _, m := range []Mode{ModeNormal, ModeTrack, ModeFace, ModeColorDetect, Mode(42)} {
		dst := fb.Apply(m, src)
		assert.Equal(t, src.Pix, dst.Pix)
		assert.NotSame(t, src, dst)
	}
}

func TestFilter_GrayShouldEqualizeChannels(t *testing.T) {
	fb := &FilterBank{}
	dst := fb.Apply(ModeGray, newTestFrame(32, 24))
	for i := 0; i < len(dst.Pix); i += 4 {
		assert.Equal(t, dst.Pix[i], dst.Pix[i+1])
		assert.Equal(t, dst.Pix[i+1], dst.Pix[i+2])
	}
}

func TestFilter_EdgesShouldOutlineSquare(t *testing.T) {
	fb := &FilterBank{}
	dst := fb.Apply(ModeEdges, newTestFrame(64, 48))

	// the square spans [16,32) x [12,24)
	assert.Equal(t, ColorWhite, dst.NRGBAAt(16, 18))
	assert.Equal(t, color.NRGBA{A: 255}, dst.NRGBAAt(24, 18))
	assert.Equal(t, color.NRGBA{A: 255}, dst.NRGBAAt(0, 0))
}

func TestFilter_ColorDetectShouldLabelMatch(t *testing.T) {
	fb := &FilterBank{
		Color: &fakeDetector{results: []detectResult{{det: Detection{Rect: image.Rect(10, 20, 40, 40), Label: "Green"}, ok: true}}},
	}
	dst := fb.Apply(ModeColorDetect, image.NewNRGBA(image.Rect(0, 0, 64, 48)))
	assert.Equal(t, ColorGreen, dst.NRGBAAt(10, 20))
	assert.Equal(t, ColorGreen, dst.NRGBAAt(39, 39))
}

func TestFilter_FaceShouldBoxEveryFace(t *testing.T) {
	faces := &fakeDetector{all: []Detection{
		{Rect: image.Rect(2, 2, 12, 12)},
		{Rect: image.Rect(30, 20, 44, 34)},
	}}
	fb := &FilterBank{Face: faces}
	dst := fb.Apply(ModeFace, image.NewNRGBA(image.Rect(0, 0, 64, 48)))

	assert.Equal(t, ColorBlue, dst.NRGBAAt(2, 2))
	assert.Equal(t, ColorBlue, dst.NRGBAAt(30, 20))
	assert.Equal(t, color.NRGBA{}, dst.NRGBAAt(20, 15))
}

func TestFilter_CartoonShouldDarkenContours(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.NRGBA{R: 200, G: 200, B: 200, A: 255}}, image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(20, 0, 40, 40), &image.Uniform{color.NRGBA{R: 20, G: 20, B: 20, A: 255}}, image.Point{}, draw.Src)

	dst := Cartoon(src)
	flat := dst.NRGBAAt(5, 20)
	assert.Greater(t, int(flat.R), 150)

	// the dark side of the boundary falls below its local mean
	edge := dst.NRGBAAt(21, 20)
	assert.Equal(t, uint8(0), edge.R)
}
