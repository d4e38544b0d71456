// Package cv binds the session core to OpenCV through gocv: the camera
// frame source, the HighGUI display, the video writer and the MIL tracker.
package cv

import (
	"image"

	"github.com/esimov/gokachu"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ErrReadFrame is returned when the camera does not deliver a frame.
var ErrReadFrame = errors.New("failed to read frame from camera")

// Camera is a gokachu.FrameSource reading from a video capture device.
type Camera struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
}

// OpenCamera opens the capture device. A zero width or height keeps the
// device default resolution.
func OpenCamera(device int, width, height int) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open camera %d", device)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Errorf("camera %d is not available", device)
	}
	if width > 0 && height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	return &Camera{
		capture: capture,
		mat:     gocv.NewMat(),
	}, nil
}

// NextFrame implements gokachu.FrameSource.
func (c *Camera) NextFrame() (*image.NRGBA, error) {
	if ok := c.capture.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, ErrReadFrame
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "cannot convert frame")
	}
	return gokachu.ToNRGBA(img), nil
}

// Close releases the capture device.
func (c *Camera) Close() error {
	c.mat.Close()
	return c.capture.Close()
}
