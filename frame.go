package gokachu

import (
	"image"
	"image/color"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrCancelled is returned when the user quits or closes the window during a blocking sequence.
	ErrCancelled = errors.New("cancelled by user")

	// ErrFrameSize is returned when a frame does not match the size of the open video stream.
	ErrFrameSize = errors.New("frame size does not match the video stream")

	// ErrNoDetector is returned when a detection mode is started without its detector.
	ErrNoDetector = errors.New("no detector configured")

	// ErrInsufficientShots is reported when the photobooth strip is not complete.
	ErrInsufficientShots = errors.New("not enough photos to create a strip")
)

// Key is a key code reported by a Display.
type Key rune

// The keys recognized by the session controllers.
const (
	KeyQuit   Key = 'q'
	KeyRecord Key = 'r'
)

// FrameSource supplies camera frames in order.
// Any error returned by NextFrame (io.EOF included) terminates the stream.
type FrameSource interface {
	NextFrame() (*image.NRGBA, error)
	Close() error
}

// Display renders frames into named windows and reports user input.
type Display interface {
	Show(window string, img image.Image)
	// IsClosed reports whether the user closed the window.
	IsClosed(window string) bool
	// PollKey waits at most timeout for a key press.
	PollKey(timeout time.Duration) (Key, bool)
	Close(window string) error
}

// VideoStream is an open video file accepting frames of a fixed size.
type VideoStream interface {
	Write(img *image.NRGBA) error
	Close() error
}

// Store persists recordings and still images.
type Store interface {
	OpenVideo(path string, fps float64, size image.Point) (VideoStream, error)
	SaveImage(path string, img image.Image) error
}

// Detection is a located object.
type Detection struct {
	Rect  image.Rectangle
	Label string
	Color color.NRGBA
}

// Area returns the bounding box area in pixels.
func (d Detection) Area() int {
	return d.Rect.Dx() * d.Rect.Dy()
}

// Detector locates the best matching object of a known class in a frame.
type Detector interface {
	Detect(img *image.NRGBA) (Detection, bool)
}

// MultiDetector is a Detector able to report every match in a frame.
type MultiDetector interface {
	Detector
	DetectAll(img *image.NRGBA) []Detection
}

// Tracker follows a single object across frames, starting from the region
// it was initialized with.
type Tracker interface {
	Init(img *image.NRGBA, rect image.Rectangle) error
	Update(img *image.NRGBA) (image.Rectangle, bool)
	Close() error
}

// TrackerFactory constructs a brand new, uninitialized Tracker.
type TrackerFactory func() Tracker
