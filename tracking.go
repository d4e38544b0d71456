package gokachu

import (
	"image"
	"image/color"
	"log"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu/utils"
	"github.com/google/uuid"
)

// TrackPhase is the state of the tracking controller.
type TrackPhase int

// The tracking phases.
const (
	Searching TrackPhase = iota
	Tracking
)

func (p TrackPhase) String() string {
	if p == Tracking {
		return "tracking"
	}
	return "searching"
}

// DefaultMinArea is the smallest detection area, in pixels, accepted as a target.
const DefaultMinArea = 1000

// TrackState is the state of the followed object.
// Tracker is non-nil if and only if Phase is Tracking.
type TrackState struct {
	Phase      TrackPhase
	Tracker    Tracker
	Label      string
	Color      color.NRGBA
	Generation uuid.UUID
}

// TrackingController runs the detect, track and reacquire loop.
type TrackingController struct {
	Detector   Detector
	NewTracker TrackerFactory
	MinArea    int
	Logger     *log.Logger

	state TrackState
}

// NewTrackingController returns a controller in the Searching phase.
func NewTrackingController(det Detector, factory TrackerFactory) *TrackingController {
	return &TrackingController{
		Detector:   det,
		NewTracker: factory,
		MinArea:    DefaultMinArea,
		Logger:     log.Default(),
	}
}

// Phase returns the current phase.
func (tc *TrackingController) Phase() TrackPhase {
	return tc.state.Phase
}

// State returns the current track state.
func (tc *TrackingController) State() TrackState {
	return tc.state
}

// Step advances the controller by one frame and returns a copy of frame
// annotated with the tracking overlay. A lost target is re-detected in the
// same step; the phase reverts to Searching only if that detection fails.
func (tc *TrackingController) Step(frame *image.NRGBA) *image.NRGBA {
	dst := imaging.Clone(frame)

	switch tc.state.Phase {
	case Searching:
		tc.acquire(frame, "Tracking")
	case Tracking:
		rect, ok := tc.state.Tracker.Update(frame)
		if ok {
			tc.draw(dst, rect)
			return dst
		}
		DrawText(dst, "Tracking - Lost", trackTextPos, 1, ColorRed)
		if !tc.acquire(frame, "Re-tracking") {
			tc.Reset()
		}
	}
	return dst
}

// acquire runs one full frame detection and, on success, replaces the
// current tracker with a brand new one initialized on the detected region.
func (tc *TrackingController) acquire(frame *image.NRGBA, verb string) bool {
	if tc.Detector == nil || tc.NewTracker == nil {
		return false
	}
	det, ok := tc.Detector.Detect(frame)
	if !ok || det.Area() <= tc.minArea() {
		return false
	}

	tracker := tc.NewTracker()
	if err := tracker.Init(frame, det.Rect); err != nil {
		tracker.Close()
		logStatus(tc.Logger, utils.ErrorMessage, "Cannot initialize tracker: %v", err)
		return false
	}
	if tc.state.Tracker != nil {
		tc.state.Tracker.Close()
	}
	tc.state = TrackState{
		Phase:      Tracking,
		Tracker:    tracker,
		Label:      det.Label,
		Color:      det.Color,
		Generation: uuid.New(),
	}
	logStatus(tc.Logger, utils.StatusMessage, "%s %s", verb, det.Label)

	return true
}

// Reset drops the tracker and returns to the Searching phase.
func (tc *TrackingController) Reset() {
	if tc.state.Tracker != nil {
		tc.state.Tracker.Close()
	}
	tc.state = TrackState{Phase: Searching}
}

func (tc *TrackingController) draw(dst *image.NRGBA, rect image.Rectangle) {
	DrawRect(dst, rect, tc.state.Color, 2)
	DrawText(dst, "Tracking - "+tc.state.Label, trackTextPos, 1, tc.state.Color)
}

func (tc *TrackingController) minArea() int {
	if tc.MinArea <= 0 {
		return DefaultMinArea
	}
	return tc.MinArea
}
