// Package detect holds the object detectors feeding the filter bank and
// the tracking controller: the HSV color classes matched by the color
// detectors and a pigo based face detector.
package detect

import (
	"image/color"

	"github.com/esimov/gokachu"
)

// ColorClass is an HSV range on the 8 bit OpenCV scale: hue in [0, 180],
// saturation and value in [0, 255]. Bounds are inclusive.
type ColorClass struct {
	Name  string
	Label string
	Lower [3]uint8
	Upper [3]uint8
	Draw  color.NRGBA
}

// TrackingPalette lists the classes followed by the tracking mode, in
// priority order. Red wraps around the hue circle, hence the two ranges.
var TrackingPalette = []ColorClass{
	{Name: "Red1", Label: "Red", Lower: [3]uint8{0, 120, 70}, Upper: [3]uint8{10, 255, 255}, Draw: gokachu.ColorRed},
	{Name: "Red2", Label: "Red", Lower: [3]uint8{170, 120, 70}, Upper: [3]uint8{180, 255, 255}, Draw: gokachu.ColorRed},
	{Name: "Blue", Label: "Blue", Lower: [3]uint8{90, 100, 100}, Upper: [3]uint8{130, 255, 255}, Draw: gokachu.ColorBlue},
	{Name: "Yellow", Label: "Yellow", Lower: [3]uint8{20, 100, 100}, Upper: [3]uint8{35, 255, 255}, Draw: gokachu.ColorYellow},
}

// DetectionPalette lists the classes recognized by the color detection mode.
var DetectionPalette = []ColorClass{
	paletteEntry("Red", 160, 100, 100, 180, 255, 255),
	paletteEntry("Green", 40, 70, 70, 80, 255, 255),
	paletteEntry("Blue", 100, 150, 0, 140, 255, 255),
	paletteEntry("Yellow", 20, 100, 100, 30, 255, 255),
	paletteEntry("Orange", 10, 100, 100, 20, 255, 255),
	paletteEntry("Pink", 160, 50, 50, 180, 255, 255),
	paletteEntry("Cyan", 80, 100, 100, 100, 255, 255),
	paletteEntry("Brown", 10, 100, 20, 20, 255, 200),
	paletteEntry("Gray", 0, 0, 50, 180, 50, 200),
	paletteEntry("Black", 0, 0, 0, 180, 255, 50),
	paletteEntry("White", 0, 0, 200, 180, 20, 255),
	paletteEntry("Purple", 140, 100, 100, 160, 255, 255),
}

func paletteEntry(name string, h0, s0, v0, h1, s1, v1 uint8) ColorClass {
	return ColorClass{
		Name:  name,
		Label: name,
		Lower: [3]uint8{h0, s0, v0},
		Upper: [3]uint8{h1, s1, v1},
		Draw:  gokachu.ColorGreen,
	}
}
