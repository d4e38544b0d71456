package catalog

import (
	"image"

	"github.com/esimov/gokachu"
)

// Store decorates a gokachu.Store and catalogs every finished recording and
// every saved photo strip. Catalog failures never fail the capture itself;
// they are reported through OnError.
type Store struct {
	gokachu.Store
	DB        *DB
	SessionID string
	OnError   func(error)
}

// NewStore returns a cataloging store writing through inner.
func NewStore(inner gokachu.Store, db *DB) *Store {
	return &Store{Store: inner, DB: db}
}

// OpenVideo implements gokachu.Store. The capture is cataloged when the
// returned stream is closed.
func (s *Store) OpenVideo(path string, fps float64, size image.Point) (gokachu.VideoStream, error) {
	st, err := s.Store.OpenVideo(path, fps, size)
	if err != nil {
		return nil, err
	}
	return &stream{
		VideoStream: st,
		store:       s,
		capture: Capture{
			SessionID: s.SessionID,
			Kind:      KindVideo,
			Path:      path,
			Width:     size.X,
			Height:    size.Y,
		},
	}, nil
}

// SaveImage implements gokachu.Store.
func (s *Store) SaveImage(path string, img image.Image) error {
	if err := s.Store.SaveImage(path, img); err != nil {
		return err
	}
	b := img.Bounds()
	s.record(&Capture{
		SessionID: s.SessionID,
		Kind:      KindPhotostrip,
		Path:      path,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Frames:    1,
	})
	return nil
}

func (s *Store) record(c *Capture) {
	if s.DB == nil {
		return
	}
	if err := s.DB.Insert(c); err != nil && s.OnError != nil {
		s.OnError(err)
	}
}

type stream struct {
	gokachu.VideoStream
	store   *Store
	capture Capture
	closed  bool
}

func (st *stream) Write(img *image.NRGBA) error {
	if err := st.VideoStream.Write(img); err != nil {
		return err
	}
	st.capture.Frames++
	return nil
}

func (st *stream) Close() error {
	err := st.VideoStream.Close()
	if !st.closed {
		st.closed = true
		c := st.capture
		st.store.record(&c)
	}
	return err
}
