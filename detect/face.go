package detect

import (
	"image"
	"os"
	"sort"

	"github.com/esimov/gokachu"
	"github.com/esimov/gokachu/utils"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

// ErrEmptyCascade is returned when the face cascade contains no data.
var ErrEmptyCascade = errors.New("empty face cascade")

// Face detects faces with a pigo cascade classifier.
type Face struct {
	MinSize     int
	ShiftFactor float64
	ScaleFactor float64
	Angle       float64
	IoU         float64
	// MinQuality is the lowest detection score accepted as a face.
	MinQuality float32

	classifier *pigo.Pigo
}

// NewFace unpacks the binary cascade file.
func NewFace(cascade []byte) (*Face, error) {
	if len(cascade) == 0 {
		return nil, ErrEmptyCascade
	}
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, errors.Wrap(err, "error unpacking the cascade file")
	}
	return &Face{
		MinSize:     60,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		IoU:         0.2,
		MinQuality:  5.0,
		classifier:  classifier,
	}, nil
}

// LoadFace reads the cascade file at path and unpacks it.
func LoadFace(path string) (*Face, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read the cascade file %s", path)
	}
	return NewFace(cascade)
}

// DetectAll implements gokachu.MultiDetector. The faces are ordered by
// decreasing detection score.
func (f *Face) DetectAll(img *image.NRGBA) []gokachu.Detection {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if dx < f.MinSize || dy < f.MinSize {
		return nil
	}

	// Transform the image to a pixel array.
	pixels := gokachu.Luminance(img)

	cParams := pigo.CascadeParams{
		MinSize:     f.MinSize,
		MaxSize:     utils.Min(dx, dy),
		ShiftFactor: f.ShiftFactor,
		ScaleFactor: f.ScaleFactor,

		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	dets := f.classifier.RunCascade(cParams, f.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	dets = f.classifier.ClusterDetections(dets, f.IoU)

	faces := make([]gokachu.Detection, 0, len(dets))
	for _, det := range byScore(dets) {
		if det.Q < f.MinQuality {
			continue
		}
		faces = append(faces, gokachu.Detection{
			Rect:  faceRect(det).Add(img.Bounds().Min),
			Label: "Face",
			Color: gokachu.ColorBlue,
		})
	}
	return faces
}

// Detect implements gokachu.Detector and returns the best scoring face.
func (f *Face) Detect(img *image.NRGBA) (gokachu.Detection, bool) {
	faces := f.DetectAll(img)
	if len(faces) == 0 {
		return gokachu.Detection{}, false
	}
	return faces[0], true
}

// faceRect converts a pigo detection (center and size) into a rectangle.
func faceRect(det pigo.Detection) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col-half+det.Scale, det.Row-half+det.Scale)
}

// byScore orders the detections by decreasing score without modifying the input.
func byScore(dets []pigo.Detection) []pigo.Detection {
	out := append([]pigo.Detection(nil), dets...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Q > out[j].Q })
	return out
}
