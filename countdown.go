package gokachu

import (
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu/utils"
	"github.com/pkg/errors"
)

// Countdown is the blocking 3-2-1 cue shown before recording starts and
// before every photobooth shot. Each count consumes one live frame and then
// dwells for Dwell, polling for the quit key every Poll.
type Countdown struct {
	From  int
	Dwell time.Duration
	Poll  time.Duration
}

// NewCountdown returns the default 3 second countdown.
func NewCountdown() *Countdown {
	return &Countdown{
		From:  3,
		Dwell: time.Second,
		Poll:  50 * time.Millisecond,
	}
}

// Run renders the countdown into window. It returns the last mirrored frame
// read from the source, the source error if a frame could not be read, or
// ErrCancelled if the user quit or closed the window.
func (c *Countdown) Run(src FrameSource, disp Display, window string) (*image.NRGBA, error) {
	var last *image.NRGBA

	for n := c.From; n > 0; n-- {
		frame, err := src.NextFrame()
		if err != nil {
			return nil, errors.Wrap(err, "countdown: reading frame")
		}
		last = Mirror(frame)

		overlay := imaging.Clone(last)
		drawCountdown(overlay, n)
		disp.Show(window, overlay)

		if err := c.dwell(disp, window); err != nil {
			return nil, err
		}
	}
	return last, nil
}

// dwell waits Dwell in bounded key polls, checking for cancellation each time.
func (c *Countdown) dwell(disp Display, window string) error {
	poll := c.Poll
	if poll <= 0 {
		poll = c.Dwell
	}
	steps := 1
	if poll > 0 {
		steps = int(c.Dwell / poll)
	}
	for i := 0; i < utils.Max(steps, 1); i++ {
		if key, ok := disp.PollKey(poll); ok && key == KeyQuit {
			return ErrCancelled
		}
		if disp.IsClosed(window) {
			return ErrCancelled
		}
	}
	return nil
}
