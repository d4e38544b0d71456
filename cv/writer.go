package cv

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/esimov/gokachu"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Codec is the FourCC of the generated recordings.
const Codec = "XVID"

// Store is a gokachu.Store writing AVI videos with OpenCV and still images
// with imaging. Missing parent directories are created.
type Store struct{}

// OpenVideo implements gokachu.Store.
func (Store) OpenVideo(path string, fps float64, size image.Point) (gokachu.VideoStream, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	w, err := gocv.VideoWriterFile(path, Codec, fps, size.X, size.Y, true)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create video file %s", path)
	}
	if !w.IsOpened() {
		w.Close()
		return nil, errors.Errorf("video writer for %s is not opened", path)
	}
	return &videoStream{writer: w, size: size}, nil
}

// SaveImage implements gokachu.Store. The format is taken from the extension.
func (Store) SaveImage(path string, img image.Image) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return imaging.Save(img, path, imaging.JPEGQuality(95))
}

type videoStream struct {
	writer *gocv.VideoWriter
	size   image.Point
}

func (s *videoStream) Write(img *image.NRGBA) error {
	if img.Bounds().Size() != s.size {
		return gokachu.ErrFrameSize
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return errors.Wrap(err, "cannot convert frame")
	}
	defer mat.Close()

	return s.writer.Write(mat)
}

func (s *videoStream) Close() error {
	return s.writer.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
