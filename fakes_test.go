package gokachu

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"
)

var errCamera = errors.New("camera read failed")

var testLogger = log.New(io.Discard, "", 0)

func uniformFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// fakeSource yields limit frames of the given size, then io.EOF.
// failAt makes the n-th read (1-based) return errCamera.
// resizeAt switches the frame size to resized from the n-th read onwards.
type fakeSource struct {
	size     image.Point
	limit    int
	failAt   int
	resizeAt int
	resized  image.Point
	reads    int
	closed   bool
}

func newFakeSource(w, h, limit int) *fakeSource {
	return &fakeSource{size: image.Pt(w, h), limit: limit}
}

func (s *fakeSource) NextFrame() (*image.NRGBA, error) {
	s.reads++
	if s.failAt > 0 && s.reads >= s.failAt {
		return nil, errCamera
	}
	if s.reads > s.limit {
		return nil, io.EOF
	}
	size := s.size
	if s.resizeAt > 0 && s.reads >= s.resizeAt {
		size = s.resized
	}
	return uniformFrame(size.X, size.Y, color.NRGBA{R: 90, G: 120, B: 150, A: 255}), nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

// fakeDisplay returns the scripted keys on successive PollKey calls,
// a zero key meaning no key pressed.
type fakeDisplay struct {
	keys        []Key
	polls       int
	shows       map[string]int
	last        map[string]image.Image
	closeAfter  map[string]int
	closed      map[string]bool
	closedCalls []string
}

func newFakeDisplay(keys ...Key) *fakeDisplay {
	return &fakeDisplay{
		keys:       keys,
		shows:      make(map[string]int),
		last:       make(map[string]image.Image),
		closeAfter: make(map[string]int),
		closed:     make(map[string]bool),
	}
}

func (d *fakeDisplay) Show(window string, img image.Image) {
	d.shows[window]++
	d.last[window] = img
}

func (d *fakeDisplay) IsClosed(window string) bool {
	if d.closed[window] {
		return true
	}
	n, ok := d.closeAfter[window]
	return ok && d.shows[window] >= n
}

func (d *fakeDisplay) PollKey(time.Duration) (Key, bool) {
	d.polls++
	if len(d.keys) == 0 {
		return 0, false
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k, k != 0
}

func (d *fakeDisplay) Close(window string) error {
	d.closedCalls = append(d.closedCalls, window)
	return nil
}

type fakeStream struct {
	path     string
	fps      float64
	size     image.Point
	frames   int
	closed   int
	closeErr error
}

func (s *fakeStream) Write(*image.NRGBA) error {
	s.frames++
	return nil
}

func (s *fakeStream) Close() error {
	s.closed++
	return s.closeErr
}

type savedImage struct {
	path string
	img  image.Image
}

type fakeStore struct {
	streams []*fakeStream
	images  []savedImage
	openErr error
}

func (s *fakeStore) OpenVideo(path string, fps float64, size image.Point) (VideoStream, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	st := &fakeStream{path: path, fps: fps, size: size}
	s.streams = append(s.streams, st)
	return st, nil
}

func (s *fakeStore) SaveImage(path string, img image.Image) error {
	s.images = append(s.images, savedImage{path: path, img: img})
	return nil
}

type detectResult struct {
	det Detection
	ok  bool
}

// fakeDetector returns the scripted results in order, then nothing.
type fakeDetector struct {
	results []detectResult
	all     []Detection
	calls   int
}

func (d *fakeDetector) Detect(*image.NRGBA) (Detection, bool) {
	d.calls++
	if len(d.results) == 0 {
		return Detection{}, false
	}
	r := d.results[0]
	d.results = d.results[1:]
	return r.det, r.ok
}

func (d *fakeDetector) DetectAll(*image.NRGBA) []Detection {
	return d.all
}

type trackResult struct {
	rect image.Rectangle
	ok   bool
}

// fakeTracker replays its update script; an exhausted script reports loss.
type fakeTracker struct {
	id      int
	script  []trackResult
	initErr error
	inits   []image.Rectangle
	updates int
	closed  int
}

func (t *fakeTracker) Init(_ *image.NRGBA, rect image.Rectangle) error {
	if t.initErr != nil {
		return t.initErr
	}
	t.inits = append(t.inits, rect)
	return nil
}

func (t *fakeTracker) Update(*image.NRGBA) (image.Rectangle, bool) {
	t.updates++
	if len(t.script) == 0 {
		return image.Rectangle{}, false
	}
	r := t.script[0]
	t.script = t.script[1:]
	return r.rect, r.ok
}

func (t *fakeTracker) Close() error {
	t.closed++
	return nil
}

// trackerFactory hands out trackers with the given scripts in order.
type trackerFactory struct {
	scripts [][]trackResult
	built   []*fakeTracker
}

func (f *trackerFactory) New() Tracker {
	t := &fakeTracker{id: len(f.built) + 1}
	if len(f.scripts) > 0 {
		t.script = f.scripts[0]
		f.scripts = f.scripts[1:]
	}
	f.built = append(f.built, t)
	return t
}

func fixedClock() time.Time {
	return time.Date(2024, time.May, 17, 14, 30, 5, 0, time.UTC)
}

func instantCountdown() *Countdown {
	return &Countdown{From: 3}
}
