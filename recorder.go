package gokachu

import (
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"github.com/esimov/gokachu/utils"
	"github.com/pkg/errors"
)

// DefaultFPS is the frame rate of the generated recordings.
const DefaultFPS = 20.0

// RecordingState describes the live output stream of a session.
type RecordingState struct {
	Stream VideoStream
	Size   image.Point
	Path   string
	Frames int
}

// Recorder owns the countdown gated recording toggle and the lifecycle of
// the output stream. At most one stream is open at any time.
type Recorder struct {
	Store     Store
	FPS       float64
	Dir       string
	Window    string
	Countdown *Countdown
	Logger    *log.Logger
	Now       func() time.Time

	state *RecordingState
}

// NewRecorder returns a recorder persisting its videos through store into dir.
func NewRecorder(store Store, dir, window string) *Recorder {
	return &Recorder{
		Store:     store,
		FPS:       DefaultFPS,
		Dir:       dir,
		Window:    window,
		Countdown: NewCountdown(),
		Logger:    log.Default(),
		Now:       time.Now,
	}
}

// Active reports whether a recording is in progress.
func (r *Recorder) Active() bool {
	return r.state != nil
}

// State returns a copy of the current recording state, or nil when inactive.
func (r *Recorder) State() *RecordingState {
	if r.state == nil {
		return nil
	}
	st := *r.state
	return &st
}

// Toggle stops the active recording, or starts a new one after the
// countdown. The stream is sized to frame. A source failure or a user
// cancellation during the countdown leaves the recorder inactive with
// nothing opened.
func (r *Recorder) Toggle(frame *image.NRGBA, src FrameSource, disp Display) error {
	if r.Active() {
		return r.Close()
	}

	if r.Countdown != nil {
		if _, err := r.Countdown.Run(src, disp, r.Window); err != nil {
			return err
		}
	}

	size := frame.Bounds().Size()
	name := fmt.Sprintf("recording_%s.avi", utils.Timestamp(r.now()))
	path := filepath.Join(r.Dir, name)

	stream, err := r.Store.OpenVideo(path, r.fps(), size)
	if err != nil {
		return errors.Wrapf(err, "cannot open video stream %s", path)
	}
	r.state = &RecordingState{
		Stream: stream,
		Size:   size,
		Path:   path,
	}
	r.logf(utils.SuccessMessage, "Recording started: %s", path)

	return nil
}

// OnFrame appends img to the active recording. It is a no-op when inactive.
// A frame which does not match the stream size ends the recording.
func (r *Recorder) OnFrame(img *image.NRGBA) error {
	if r.state == nil {
		return nil
	}
	if size, want := img.Bounds().Size(), r.state.Size; size != want {
		r.abort()
		return errors.Wrapf(ErrFrameSize, "got %v, want %v", size, want)
	}
	if err := r.state.Stream.Write(img); err != nil {
		r.abort()
		return errors.Wrap(err, "cannot write video frame")
	}
	r.state.Frames++

	return nil
}

// Close stops the active recording, if any.
func (r *Recorder) Close() error {
	if r.state == nil {
		return nil
	}
	st := r.state
	r.state = nil

	err := st.Stream.Close()
	r.logf(utils.StatusMessage, "Recording stopped: %s (%d frames)", st.Path, st.Frames)

	return err
}

// abort ends the recording after a failed frame. The frame error takes
// precedence; a close failure is only logged.
func (r *Recorder) abort() {
	if err := r.Close(); err != nil {
		r.logf(utils.ErrorMessage, "Cannot close recording: %v", err)
	}
}

func (r *Recorder) fps() float64 {
	if r.FPS <= 0 {
		return DefaultFPS
	}
	return r.FPS
}

func (r *Recorder) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Recorder) logf(msgType utils.MessageType, format string, args ...any) {
	logStatus(r.Logger, msgType, format, args...)
}
