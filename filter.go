package gokachu

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu/imop"
)

// Filter parameters.
const (
	BlurSigma      = 2.6
	EdgeThreshold  = 100.0
	cartoonBlock   = 9
	cartoonC       = 9.0
	cartoonSmooth  = 1.0
	cartoonColor   = 3.0
	detectionThick = 2
)

var sharpenKernel = [9]float64{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// FilterBank maps a mode to a frame transform. The detector backed modes
// draw onto a copy of the frame; a nil detector leaves the frame unchanged.
type FilterBank struct {
	Face  MultiDetector
	Color Detector
}

// Apply transforms img according to m. The input frame is never modified.
// The tracking mode and unknown modes return an unmodified copy.
func (fb *FilterBank) Apply(m Mode, img *image.NRGBA) *image.NRGBA {
	switch m {
	case ModeGray:
		return imaging.Grayscale(img)
	case ModeBlur:
		return imaging.Blur(img, BlurSigma)
	case ModeEdges:
		return SobelEdges(img, EdgeThreshold)
	case ModeCartoon:
		return Cartoon(img)
	case ModeSharpen:
		return imaging.Convolve3x3(img, sharpenKernel, nil)
	case ModeFace:
		dst := imaging.Clone(img)
		if fb.Face != nil {
			for _, det := range fb.Face.DetectAll(img) {
				DrawRect(dst, det.Rect, ColorBlue, detectionThick)
			}
		}
		return dst
	case ModeColorDetect:
		dst := imaging.Clone(img)
		if fb.Color != nil {
			if det, ok := fb.Color.Detect(img); ok {
				DrawRect(dst, det.Rect, ColorGreen, detectionThick)
				DrawText(dst, "Color: "+det.Label, det.Rect.Min.Add(image.Pt(0, -10)), 1, ColorGreen)
			}
		}
		return dst
	}
	return imaging.Clone(img)
}

// Cartoon flattens the colors of the frame and outlines its contours
// with dark strokes obtained from an adaptive threshold.
func Cartoon(img *image.NRGBA) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	smooth := imaging.Blur(imaging.Grayscale(img), cartoonSmooth)
	mask := grayToNRGBA(adaptiveThreshold(Luminance(smooth), w, h, cartoonBlock, cartoonC), w, h)
	color := imaging.Blur(img, cartoonColor)

	return imop.Draw(mask, color, imop.Multiply)
}
