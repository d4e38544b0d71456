package cv

import (
	"image"
	"time"

	"github.com/esimov/gokachu"
	"gocv.io/x/gocv"
)

// Display is a gokachu.Display over HighGUI windows. Windows are created
// on first use and destroyed by Close.
type Display struct {
	windows map[string]*gocv.Window
}

// NewDisplay returns a display with no open window.
func NewDisplay() *Display {
	return &Display{windows: make(map[string]*gocv.Window)}
}

// Show renders img into the named window.
func (d *Display) Show(name string, img image.Image) {
	win, ok := d.windows[name]
	if !ok {
		win = gocv.NewWindow(name)
		d.windows[name] = win
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return
	}
	defer mat.Close()

	win.IMShow(mat)
}

// IsClosed reports whether the user closed the named window.
func (d *Display) IsClosed(name string) bool {
	win, ok := d.windows[name]
	if !ok {
		return false
	}
	return win.GetWindowProperty(gocv.WindowPropertyVisible) < 1
}

// PollKey waits up to timeout for a key press. HighGUI delivers key events
// through any open window.
func (d *Display) PollKey(timeout time.Duration) (gokachu.Key, bool) {
	ms := int(timeout / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	for _, win := range d.windows {
		return decodeKey(win.WaitKey(ms))
	}
	time.Sleep(timeout)
	return 0, false
}

// Close destroys the named window.
func (d *Display) Close(name string) error {
	win, ok := d.windows[name]
	if !ok {
		return nil
	}
	delete(d.windows, name)
	return win.Close()
}

// CloseAll destroys every window.
func (d *Display) CloseAll() {
	for name := range d.windows {
		d.Close(name)
	}
}

func decodeKey(code int) (gokachu.Key, bool) {
	if code < 0 {
		return 0, false
	}
	return gokachu.Key(rune(code & 0xff)), true
}
