package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/esimov/gokachu"
	"github.com/esimov/gokachu/catalog"
	"github.com/esimov/gokachu/cv"
	"github.com/esimov/gokachu/detect"
	"github.com/esimov/gokachu/gallery"
	"github.com/esimov/gokachu/track"
	"github.com/esimov/gokachu/utils"
	"github.com/pkg/errors"
)

type config struct {
	Camera  int
	OutDir  string
	FPS     float64
	Cascade string
	Target  string
	Tracker string
	Poll    time.Duration
	DBPath  string
	Serve   string
	Width   int
	Height  int
}

// app holds the components shared by every session.
type app struct {
	cfg      config
	display  *cv.Display
	store    gokachu.Store
	catalog  *catalog.DB
	captures *catalog.Store
	filters  *gokachu.FilterBank
	target   gokachu.Detector
	trackers gokachu.TrackerFactory
	logger   *log.Logger
}

func newApp(cfg config) (*app, error) {
	a := &app{
		cfg:     cfg,
		display: cv.NewDisplay(),
		store:   cv.Store{},
		filters: &gokachu.FilterBank{Color: cv.NewColorDetector()},
		logger:  log.Default(),
	}

	var face *detect.Face
	if cfg.Cascade != "" {
		f, err := detect.LoadFace(cfg.Cascade)
		if err != nil {
			return nil, err
		}
		face = f
		a.filters.Face = face
	}

	switch strings.ToLower(cfg.Target) {
	case "color":
		a.target = cv.NewColorTracker()
	case "face":
		if face == nil {
			return nil, errors.New("face tracking requires the -cascade flag")
		}
		a.target = face
	default:
		return nil, errors.Errorf("unknown tracking target %q", cfg.Target)
	}

	switch strings.ToLower(cfg.Tracker) {
	case "template":
		a.trackers = track.Factory()
	case "mil":
		a.trackers = cv.NewMILTracker
	default:
		return nil, errors.Errorf("unknown tracker %q", cfg.Tracker)
	}

	if cfg.DBPath != "" {
		db, err := catalog.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		a.catalog = db
		a.captures = catalog.NewStore(a.store, db)
		a.captures.OnError = func(err error) {
			a.logger.Print(utils.DecorateText("[ERROR] cannot catalog capture: "+err.Error(), utils.ErrorMessage))
		}
		a.store = a.captures
	}

	if cfg.Serve != "" {
		if a.catalog == nil {
			return nil, errors.New("the gallery server requires the -db flag")
		}
		go func() {
			if err := http.ListenAndServe(cfg.Serve, gallery.NewRouter(a.catalog)); err != nil {
				a.logger.Print(utils.DecorateText("[ERROR] gallery server stopped: "+err.Error(), utils.ErrorMessage))
			}
		}()
		a.logger.Print(utils.DecorateText("[INFO] Gallery served on "+cfg.Serve, utils.StatusMessage))
	}
	return a, nil
}

func (a *app) openCamera() (*cv.Camera, error) {
	return cv.OpenCamera(a.cfg.Camera, a.cfg.Width, a.cfg.Height)
}

// runSession runs one live session. The session owns the camera.
func (a *app) runSession(m gokachu.Mode) error {
	if m == gokachu.ModeFace && a.filters.Face == nil {
		return errors.Wrap(gokachu.ErrNoDetector, "face detection needs the -cascade flag")
	}
	cam, err := a.openCamera()
	if err != nil {
		return err
	}

	s := gokachu.NewSession(m, cam, a.display, a.store)
	s.Filters = a.filters
	s.Poll = a.cfg.Poll
	s.Logger = a.logger
	s.Recorder.Dir = a.cfg.OutDir
	s.Recorder.FPS = a.cfg.FPS
	s.Recorder.Logger = a.logger
	if m == gokachu.ModeTrack {
		s.Tracking = gokachu.NewTrackingController(a.target, a.trackers)
		s.Tracking.Logger = a.logger
	}
	if a.captures != nil {
		a.captures.SessionID = s.ID.String()
	}
	return s.Run()
}

// runPhotobooth runs one photobooth sub-session with the given filter.
func (a *app) runPhotobooth(m gokachu.Mode) error {
	cam, err := a.openCamera()
	if err != nil {
		return err
	}
	defer cam.Close()

	if a.captures != nil {
		a.captures.SessionID = ""
	}
	pb := gokachu.NewPhotobooth(m, a.filters, a.store, a.cfg.OutDir)
	pb.Logger = a.logger
	if pb.Run(cam, a.display) == gokachu.CameraFailure {
		return errors.New("photobooth stopped: camera failure")
	}
	return nil
}

func (a *app) close() {
	a.display.CloseAll()
	if a.catalog != nil {
		a.catalog.Close()
	}
}
