package gokachu

import (
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu/utils"
	"github.com/pkg/errors"
)

// BoothPhase is the state of a photobooth sub-session.
type BoothPhase int

// The photobooth phases.
const (
	AwaitingStart BoothPhase = iota
	Shooting
	Assembling
	Reviewing
	Done
	Cancelled
	CameraError
)

func (p BoothPhase) String() string {
	switch p {
	case AwaitingStart:
		return "awaiting start"
	case Shooting:
		return "shooting"
	case Assembling:
		return "assembling"
	case Reviewing:
		return "reviewing"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	case CameraError:
		return "camera error"
	}
	return "unknown"
}

// BoothOutcome is what a photobooth run reports back to the menu.
type BoothOutcome int

// Completion and cancellation are both reported as ReturnedToMenu.
const (
	ReturnedToMenu BoothOutcome = iota
	CameraFailure
)

// Photobooth defaults.
const (
	StripShots  = 4
	BoothWindow = "Photobooth"
	StripWindow = "Photostrip"
)

// DefaultShotSize is the size every photobooth shot is resized to.
var DefaultShotSize = image.Pt(320, 240)

// Photobooth runs the timed four shot capture and assembles the shots
// into a 2x2 contact sheet.
type Photobooth struct {
	Filters   *FilterBank
	Mode      Mode
	Store     Store
	Dir       string
	ShotSize  image.Point
	Settle    time.Duration
	Sleep     func(time.Duration)
	Countdown *Countdown
	Poll      time.Duration
	Logger    *log.Logger
	Now       func() time.Time

	phase     BoothPhase
	strip     []*image.NRGBA
	composite *image.NRGBA
	sheet     string
}

// NewPhotobooth returns a photobooth previewing and shooting with mode.
func NewPhotobooth(mode Mode, filters *FilterBank, store Store, dir string) *Photobooth {
	return &Photobooth{
		Filters:   filters,
		Mode:      mode,
		Store:     store,
		Dir:       dir,
		ShotSize:  DefaultShotSize,
		Settle:    time.Second,
		Sleep:     time.Sleep,
		Countdown: NewCountdown(),
		Poll:      10 * time.Millisecond,
		Logger:    log.Default(),
		Now:       time.Now,
	}
}

// Phase returns the current phase.
func (pb *Photobooth) Phase() BoothPhase {
	return pb.phase
}

// Strip returns the shots captured so far.
func (pb *Photobooth) Strip() []*image.NRGBA {
	return pb.strip
}

// SheetPath returns the path of the saved contact sheet, if any.
func (pb *Photobooth) SheetPath() string {
	return pb.sheet
}

// Run drives the photobooth until it is done or cancelled. The source and
// the display windows are owned by the caller; the windows opened here are
// closed on return.
func (pb *Photobooth) Run(src FrameSource, disp Display) BoothOutcome {
	pb.phase = AwaitingStart
	pb.strip = nil
	pb.composite = nil
	pb.sheet = ""

	defer disp.Close(BoothWindow)

	pb.logf(utils.StatusMessage, "Photobooth mode ready! Press 'r' to start countdown or 'q' to quit.")
	for {
		switch pb.phase {
		case AwaitingStart:
			pb.phase = pb.awaitStart(src, disp)
		case Shooting:
			pb.phase = pb.shoot(src, disp)
		case Assembling:
			pb.phase = pb.assemble()
		case Reviewing:
			pb.phase = pb.review(disp)
		case CameraError:
			return CameraFailure
		default:
			return ReturnedToMenu
		}
	}
}

func (pb *Photobooth) awaitStart(src FrameSource, disp Display) BoothPhase {
	for {
		frame, err := src.NextFrame()
		if err != nil {
			pb.logf(utils.ErrorMessage, "Camera read failed: %v", err)
			return CameraError
		}
		preview := pb.filter(Mirror(frame))
		DrawText(preview, "Press 'r' to start photobooth", image.Pt(10, 30), 1, ColorGreen)
		DrawText(preview, "Press 'q' to quit", image.Pt(10, 60), 1, ColorGreen)
		disp.Show(BoothWindow, preview)

		key, ok := disp.PollKey(pb.Poll)
		switch {
		case ok && key == KeyRecord:
			pb.logf(utils.StatusMessage, "Starting photobooth session! Get ready for %d shots...", StripShots)
			return Shooting
		case ok && key == KeyQuit:
			return Cancelled
		case disp.IsClosed(BoothWindow):
			return Cancelled
		}
	}
}

func (pb *Photobooth) shoot(src FrameSource, disp Display) BoothPhase {
	for i := 0; i < StripShots; i++ {
		if pb.Sleep != nil && pb.Settle > 0 {
			pb.Sleep(pb.Settle)
		}
		if pb.Countdown != nil {
			if _, err := pb.Countdown.Run(src, disp, BoothWindow); err != nil {
				return pb.abortShooting(err)
			}
		}

		frame, err := src.NextFrame()
		if err != nil {
			return pb.abortShooting(errors.Wrap(err, "failed to capture frame"))
		}
		shot := imaging.Resize(pb.filter(Mirror(frame)), pb.shotSize().X, pb.shotSize().Y, imaging.Linear)
		pb.strip = append(pb.strip, shot)
		pb.logf(utils.SuccessMessage, "Shot %d captured.", i+1)
	}
	return Assembling
}

// abortShooting discards the partial strip. A failing camera during the
// shots ends the photobooth like a cancellation.
func (pb *Photobooth) abortShooting(err error) BoothPhase {
	if !errors.Is(err, ErrCancelled) {
		pb.logf(utils.ErrorMessage, "Photobooth aborted: %v", err)
	}
	pb.strip = nil
	return Cancelled
}

func (pb *Photobooth) assemble() BoothPhase {
	sheet, err := ContactSheet(pb.strip)
	if err != nil {
		pb.logf(utils.ErrorMessage, "%v", err)
		return Done
	}

	name := fmt.Sprintf("photostrip_%s.jpg", utils.Timestamp(pb.now()))
	path := filepath.Join(pb.Dir, name)
	if err := pb.Store.SaveImage(path, sheet); err != nil {
		pb.logf(utils.ErrorMessage, "Cannot save photo strip: %v", err)
		return Done
	}
	pb.sheet = path
	pb.logf(utils.SuccessMessage, "Photo strip saved as %s", path)

	pb.composite = sheet
	return Reviewing
}

func (pb *Photobooth) review(disp Display) BoothPhase {
	defer disp.Close(StripWindow)

	for {
		disp.Show(StripWindow, pb.composite)
		if key, ok := disp.PollKey(pb.Poll); ok && key == KeyQuit {
			return Done
		}
		if disp.IsClosed(StripWindow) {
			return Done
		}
	}
}

// ContactSheet arranges exactly four equally sized shots in a 2x2 grid:
// shots 1 and 2 on the top row, shots 3 and 4 on the bottom row.
func ContactSheet(shots []*image.NRGBA) (*image.NRGBA, error) {
	if len(shots) != StripShots {
		return nil, errors.Wrapf(ErrInsufficientShots, "have %d of %d", len(shots), StripShots)
	}
	w, h := shots[0].Bounds().Dx(), shots[0].Bounds().Dy()

	sheet := imaging.New(2*w, 2*h, ColorWhite)
	for i, shot := range shots {
		pos := image.Pt((i%2)*w, (i/2)*h)
		sheet = imaging.Paste(sheet, shot, pos)
	}
	return sheet, nil
}

func (pb *Photobooth) filter(img *image.NRGBA) *image.NRGBA {
	if pb.Filters == nil {
		return img
	}
	return pb.Filters.Apply(pb.Mode, img)
}

func (pb *Photobooth) shotSize() image.Point {
	if pb.ShotSize.X <= 0 || pb.ShotSize.Y <= 0 {
		return DefaultShotSize
	}
	return pb.ShotSize
}

func (pb *Photobooth) now() time.Time {
	if pb.Now == nil {
		return time.Now()
	}
	return pb.Now()
}

func (pb *Photobooth) logf(msgType utils.MessageType, format string, args ...any) {
	logStatus(pb.Logger, msgType, format, args...)
}
