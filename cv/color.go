package cv

import (
	"image"

	"github.com/esimov/gokachu"
	"github.com/esimov/gokachu/detect"
	"gocv.io/x/gocv"
)

// ColorDetector finds the largest external contour matching one of its HSV
// classes. Classes are tried in order and the first one whose largest
// contour area exceeds MinArea wins.
type ColorDetector struct {
	Classes []detect.ColorClass
	MinArea float64
	// Clean runs a 5x5 morphological opening followed by a closing on
	// every class mask before the contours are extracted.
	Clean bool
}

// NewColorTracker returns the color detector used to seed the object tracker.
func NewColorTracker() *ColorDetector {
	return &ColorDetector{
		Classes: detect.TrackingPalette,
		MinArea: gokachu.DefaultMinArea,
		Clean:   true,
	}
}

// NewColorDetector returns the color detector used by the color detection overlay.
func NewColorDetector() *ColorDetector {
	return &ColorDetector{
		Classes: detect.DetectionPalette,
		MinArea: gokachu.DefaultMinArea,
	}
}

// Detect implements gokachu.Detector.
func (d *ColorDetector) Detect(img *image.NRGBA) (gokachu.Detection, bool) {
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gokachu.Detection{}, false
	}
	defer bgr.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(5, 5))
	defer kernel.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	for _, class := range d.Classes {
		gocv.InRangeWithScalar(hsv, scalar(class.Lower), scalar(class.Upper), &mask)
		if d.Clean {
			gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
			gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
		}
		rect, area, ok := largestContour(mask)
		if !ok || area <= d.MinArea {
			continue
		}
		return gokachu.Detection{
			Rect:  rect.Add(img.Bounds().Min),
			Label: class.Label,
			Color: class.Draw,
		}, true
	}
	return gokachu.Detection{}, false
}

func largestContour(mask gocv.Mat) (image.Rectangle, float64, bool) {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var (
		rect  image.Rectangle
		best  float64
		found bool
	)
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		if area := gocv.ContourArea(contour); !found || area > best {
			best, found = area, true
			rect = gocv.BoundingRect(contour)
		}
	}
	return rect, best, found
}

func scalar(v [3]uint8) gocv.Scalar {
	return gocv.NewScalar(float64(v[0]), float64(v[1]), float64(v[2]), 0)
}
