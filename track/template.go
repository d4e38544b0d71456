// Package track implements a single object visual tracker based on
// grayscale template matching, with the search window centered on the
// position predicted by a Kalman filter.
package track

import (
	"image"
	"math"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/esimov/gokachu"
	"github.com/esimov/gokachu/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrEmptyRegion is returned when the initial region does not overlap the frame.
var ErrEmptyRegion = errors.New("tracking region is empty")

// Template follows an image patch across frames. It satisfies gokachu.Tracker.
type Template struct {
	id       uuid.UUID
	search   int
	stride   int
	maxError float64

	patch  []uint8
	pw, ph int
	box    image.Rectangle
	kf     *kalman_filter.KalmanBBox
}

// Option customizes a Template.
type Option func(*Template)

// WithSearch sets how far, in pixels, the patch is looked for around the predicted position.
func WithSearch(radius int) Option {
	return func(t *Template) { t.search = radius }
}

// WithStride sets the step of the coarse search.
func WithStride(stride int) Option {
	return func(t *Template) { t.stride = stride }
}

// WithMaxError sets the mean absolute difference above which the target is lost.
func WithMaxError(e float64) Option {
	return func(t *Template) { t.maxError = e }
}

// New returns an uninitialized tracker.
func New(opts ...Option) *Template {
	t := &Template{
		id:       uuid.New(),
		search:   32,
		stride:   2,
		maxError: 28,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.stride = utils.Max(t.stride, 1)
	return t
}

// Factory returns a gokachu.TrackerFactory building templates with opts.
func Factory(opts ...Option) gokachu.TrackerFactory {
	return func() gokachu.Tracker {
		return New(opts...)
	}
}

// ID returns the identifier of the template.
func (t *Template) ID() uuid.UUID {
	return t.id
}

// Box returns the last known position of the target.
func (t *Template) Box() image.Rectangle {
	return t.box
}

// Init captures the template inside rect.
func (t *Template) Init(img *image.NRGBA, rect image.Rectangle) error {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return ErrEmptyRegion
	}
	gray := gokachu.Luminance(img)
	stride := img.Bounds().Dx()
	origin := img.Bounds().Min

	t.pw, t.ph = rect.Dx(), rect.Dy()
	t.patch = make([]uint8, t.pw*t.ph)
	for y := 0; y < t.ph; y++ {
		row := (rect.Min.Y-origin.Y+y)*stride + rect.Min.X - origin.X
		copy(t.patch[y*t.pw:(y+1)*t.pw], gray[row:row+t.pw])
	}
	t.box = rect

	// Kalman filter props
	cx, cy := center(rect)
	dt := 1.0
	stdDevA := 2.0
	stdDevM := 0.1
	t.kf = kalman_filter.NewKalmanBBox(
		dt, 0, 0, 0, 0,
		stdDevA, stdDevM, stdDevM, stdDevM, stdDevM,
		kalman_filter.WithStateBBox(cx, cy, float64(t.pw), float64(t.ph)),
	)
	return nil
}

// Update looks for the template around the predicted position and reports
// the matched region, or false when the best match is too different.
func (t *Template) Update(img *image.NRGBA) (image.Rectangle, bool) {
	if t.kf == nil {
		return image.Rectangle{}, false
	}
	bounds := img.Bounds()
	if bounds.Dx() < t.pw || bounds.Dy() < t.ph {
		return image.Rectangle{}, false
	}

	t.kf.Predict()
	cx, cy, _, _ := t.kf.GetState()
	px := int(math.Round(cx-float64(t.pw)/2)) - bounds.Min.X
	py := int(math.Round(cy-float64(t.ph)/2)) - bounds.Min.Y

	m := newMatcher(gokachu.Luminance(img), bounds.Dx(), bounds.Dy(), t)

	// coarse pass
	best := m.search(px, py, t.search, t.stride, candidate{err: math.MaxFloat64})
	// refine around the coarse optimum
	if t.stride > 1 {
		best = m.search(best.x, best.y, t.stride-1, 1, best)
	}
	if best.err > t.maxError {
		return image.Rectangle{}, false
	}

	t.box = image.Rect(best.x, best.y, best.x+t.pw, best.y+t.ph).Add(bounds.Min)
	mx, my := center(t.box)
	if err := t.kf.Update(mx, my, float64(t.pw), float64(t.ph)); err != nil {
		return image.Rectangle{}, false
	}
	return t.box, true
}

// Close releases the template.
func (t *Template) Close() error {
	t.patch = nil
	t.kf = nil
	return nil
}

func center(r image.Rectangle) (float64, float64) {
	return float64(r.Min.X) + float64(r.Dx())/2, float64(r.Min.Y) + float64(r.Dy())/2
}

type candidate struct {
	x, y int
	err  float64
}

type matcher struct {
	gray []uint8
	w, h int
	t    *Template
}

func newMatcher(gray []uint8, w, h int, t *Template) *matcher {
	return &matcher{gray: gray, w: w, h: h, t: t}
}

// search scans the top-left positions within radius of (cx, cy) and returns
// the candidate with the lowest mean absolute difference, or best if none
// of them improves on it.
func (m *matcher) search(cx, cy, radius, step int, best candidate) candidate {
	maxX, maxY := m.w-m.t.pw, m.h-m.t.ph

	for y := cy - radius; y <= cy+radius; y += step {
		if y < 0 || y > maxY {
			continue
		}
		for x := cx - radius; x <= cx+radius; x += step {
			if x < 0 || x > maxX {
				continue
			}
			if e, ok := m.mad(x, y, best.err); ok {
				best = candidate{x: x, y: y, err: e}
			}
		}
	}
	return best
}

// mad computes the mean absolute difference between the template and the
// frame at (x, y). It gives up as soon as the error cannot beat limit.
func (m *matcher) mad(x, y int, limit float64) (float64, bool) {
	pw, ph := m.t.pw, m.t.ph
	n := float64(pw * ph)
	budget := limit * n

	var sum float64
	for ty := 0; ty < ph; ty++ {
		row := (y+ty)*m.w + x
		for tx := 0; tx < pw; tx++ {
			d := int(m.gray[row+tx]) - int(m.t.patch[ty*pw+tx])
			sum += float64(utils.Abs(d))
		}
		if sum >= budget {
			return 0, false
		}
	}
	return sum / n, true
}
