package gokachu

import (
	"image"
	"io"
	"log"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LiveWindow is the name of the window used by the live sessions.
const LiveWindow = "Live Filter Camera"

// DefaultPoll is the key poll timeout of the session loop.
const DefaultPoll = 10 * time.Millisecond

// Session is the live run of one mode. It pulls frames from the source,
// processes and renders them and dispatches the user's key presses.
type Session struct {
	ID       uuid.UUID
	Mode     Mode
	Source   FrameSource
	Display  Display
	Filters  *FilterBank
	Tracking *TrackingController
	Recorder *Recorder
	Window   string
	Poll     time.Duration
	Logger   *log.Logger

	tick    uint64
	started time.Time
}

// NewSession returns a session running mode, recording through store.
func NewSession(mode Mode, src FrameSource, disp Display, store Store) *Session {
	return &Session{
		ID:       uuid.New(),
		Mode:     mode,
		Source:   src,
		Display:  disp,
		Filters:  &FilterBank{},
		Recorder: NewRecorder(store, "", LiveWindow),
		Window:   LiveWindow,
		Poll:     DefaultPoll,
		Logger:   log.Default(),
	}
}

// Tick returns the number of frames processed by the session loop.
func (s *Session) Tick() uint64 {
	return s.tick
}

// Run executes the session loop until the user quits, closes the window or
// the source runs out of frames. The recording stream, the tracker, the
// window and the frame source are released on every exit path.
func (s *Session) Run() error {
	if err := s.validate(); err != nil {
		if cerr := s.Source.Close(); cerr != nil {
			s.logf(utils.ErrorMessage, "Cannot close camera: %v", cerr)
		}
		return err
	}
	s.started = time.Now()
	defer s.cleanup()

	s.logf(utils.StatusMessage, "Session %s started in %s mode", s.ID, s.Mode.Label())
	for {
		frame, err := s.Source.NextFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logf(utils.ErrorMessage, "Camera read failed: %v", err)
			}
			return nil
		}
		s.tick++
		frame = Mirror(frame)

		key, pressed := s.Display.PollKey(s.poll())

		out := s.render(frame)
		drawModeName(out, s.Mode)

		if s.Recorder != nil {
			if err := s.Recorder.OnFrame(out); err != nil {
				s.logf(utils.ErrorMessage, "Recording aborted: %v", err)
			}
		}
		s.Display.Show(s.Window, out)

		if s.Display.IsClosed(s.Window) {
			return nil
		}
		if !pressed {
			continue
		}
		switch key {
		case KeyQuit:
			return nil
		case KeyRecord:
			if s.Recorder == nil {
				continue
			}
			if err := s.Recorder.Toggle(frame, s.Source, s.Display); err != nil {
				if errors.Is(err, ErrCancelled) {
					return nil
				}
				s.logf(utils.ErrorMessage, "Cannot start recording: %v", err)
			}
		}
	}
}

// validate checks that the components required by the mode are present.
func (s *Session) validate() error {
	if !s.Mode.Valid() {
		return errors.Wrapf(ErrUnknownMode, "%d", int(s.Mode))
	}
	switch s.Mode {
	case ModeFace:
		if s.Filters == nil || s.Filters.Face == nil {
			return errors.Wrap(ErrNoDetector, "face detection needs a face cascade")
		}
	case ModeColorDetect:
		if s.Filters == nil || s.Filters.Color == nil {
			return errors.Wrap(ErrNoDetector, "color detection needs a color detector")
		}
	case ModeTrack:
		if s.Tracking == nil || s.Tracking.Detector == nil || s.Tracking.NewTracker == nil {
			return errors.Wrap(ErrNoDetector, "object tracking needs a detector and a tracker")
		}
	}
	return nil
}

// render produces the display frame of the active mode.
func (s *Session) render(frame *image.NRGBA) *image.NRGBA {
	switch s.Mode {
	case ModeTrack:
		if s.Tracking != nil {
			return s.Tracking.Step(frame)
		}
		return imaging.Clone(frame)
	default:
		if s.Filters == nil {
			return imaging.Clone(frame)
		}
		return s.Filters.Apply(s.Mode, frame)
	}
}

func (s *Session) cleanup() {
	if s.Recorder != nil {
		if err := s.Recorder.Close(); err != nil {
			s.logf(utils.ErrorMessage, "Cannot close recording: %v", err)
		}
	}
	if s.Tracking != nil {
		s.Tracking.Reset()
	}
	if err := s.Display.Close(s.Window); err != nil {
		s.logf(utils.ErrorMessage, "Cannot close window: %v", err)
	}
	if err := s.Source.Close(); err != nil {
		s.logf(utils.ErrorMessage, "Cannot close camera: %v", err)
	}
	s.logf(utils.StatusMessage, "Session %s ended after %d frames (%s)",
		s.ID, s.tick, utils.FormatTime(time.Since(s.started)))
}

func (s *Session) poll() time.Duration {
	if s.Poll <= 0 {
		return DefaultPoll
	}
	return s.Poll
}

func (s *Session) logf(msgType utils.MessageType, format string, args ...any) {
	logStatus(s.Logger, msgType, format, args...)
}
