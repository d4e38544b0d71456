package gokachu

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects how the live frames of a session are processed.
type Mode int

// The supported processing modes.
const (
	ModeNormal Mode = iota
	ModeGray
	ModeBlur
	ModeEdges
	ModeCartoon
	ModeSharpen
	ModeFace
	ModeColorDetect
	ModeTrack
)

// ErrUnknownMode is returned by ParseMode for an unrecognized mode name.
var ErrUnknownMode = errors.New("unknown mode")

var modeNames = [...]string{
	ModeNormal:      "normal",
	ModeGray:        "gray",
	ModeBlur:        "blur",
	ModeEdges:       "edges",
	ModeCartoon:     "cartoon",
	ModeSharpen:     "sharpen",
	ModeFace:        "face",
	ModeColorDetect: "color_detect",
	ModeTrack:       "track",
}

var modeLabels = [...]string{
	ModeNormal:      "Normal",
	ModeGray:        "Grayscale",
	ModeBlur:        "Blur",
	ModeEdges:       "Edge Detection",
	ModeCartoon:     "Cartoon",
	ModeSharpen:     "Sharpen",
	ModeFace:        "Face Detection",
	ModeColorDetect: "Color Detection",
	ModeTrack:       "Object Tracking",
}

// Modes returns every mode in menu order.
func Modes() []Mode {
	return []Mode{
		ModeNormal, ModeGray, ModeBlur, ModeEdges, ModeCartoon,
		ModeSharpen, ModeFace, ModeColorDetect, ModeTrack,
	}
}

// FilterModes returns the stateless pixel filters, the ones usable by the photobooth.
func FilterModes() []Mode {
	return []Mode{ModeNormal, ModeGray, ModeBlur, ModeEdges, ModeCartoon, ModeSharpen}
}

// ParseMode converts a mode name (e.g. "color_detect") into a Mode.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return ModeNormal, errors.Wrapf(ErrUnknownMode, "%q", name)
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= ModeNormal && m <= ModeTrack
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeNames[m]
}

// Label returns the human readable mode name.
func (m Mode) Label() string {
	if !m.Valid() {
		return "Unknown"
	}
	return modeLabels[m]
}
