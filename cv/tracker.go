package cv

import (
	"image"

	"github.com/esimov/gokachu"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// MILTracker is a gokachu.Tracker backed by the OpenCV MIL tracker.
type MILTracker struct {
	tracker gocv.Tracker
}

// NewMILTracker is a gokachu.TrackerFactory.
func NewMILTracker() gokachu.Tracker {
	return &MILTracker{tracker: gocv.NewTrackerMIL()}
}

// Init implements gokachu.Tracker.
func (t *MILTracker) Init(img *image.NRGBA, rect image.Rectangle) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return errors.Wrap(err, "cannot convert frame")
	}
	defer mat.Close()

	if !t.tracker.Init(mat, rect) {
		return errors.Errorf("cannot initialize tracker on %v", rect)
	}
	return nil
}

// Update implements gokachu.Tracker.
func (t *MILTracker) Update(img *image.NRGBA) (image.Rectangle, bool) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return image.Rectangle{}, false
	}
	defer mat.Close()

	return t.tracker.Update(mat)
}

// Close implements gokachu.Tracker.
func (t *MILTracker) Close() error {
	return t.tracker.Close()
}
