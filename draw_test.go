package gokachu

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countColor(img *image.NRGBA, c color.NRGBA) int {
	n := 0
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDraw_RectOutline(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	DrawRect(img, image.Rect(5, 5, 15, 15), ColorGreen, 1)

	assert.Equal(t, ColorGreen, img.NRGBAAt(5, 5))
	assert.Equal(t, ColorGreen, img.NRGBAAt(14, 14))
	assert.Equal(t, ColorGreen, img.NRGBAAt(10, 5))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(10, 10))
	assert.Equal(t, 36, countColor(img, ColorGreen))
}

func TestDraw_RectShouldClipToImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	assert.NotPanics(t, func() {
		DrawRect(img, image.Rect(-5, -5, 50, 50), ColorBlue, 2)
	})
	assert.Equal(t, 0, countColor(img, ColorBlue))
}

func TestDraw_TextShouldPaintPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 40))
	DrawText(img, "Mode: Blur", image.Pt(10, 30), 1, ColorWhite)
	assert.Greater(t, countColor(img, ColorWhite), 0)

	small := countColor(img, ColorWhite)
	big := image.NewNRGBA(image.Rect(0, 0, 120, 120))
	DrawText(big, "Mode: Blur", image.Pt(0, 40), 3, ColorWhite)
	assert.Greater(t, countColor(big, ColorWhite), small)
}

func TestDraw_CountdownShouldBeCentered(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	drawCountdown(img, 3)

	n := countColor(img, ColorRed)
	assert.Greater(t, n, 0)

	var minX, maxX = 640, 0
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			if img.NRGBAAt(x, y) == ColorRed {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	assert.InDelta(t, 320, (minX+maxX)/2, 30)
}
