package gokachu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMode_ParseRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		assert.NoError(err)
		assert.Equal(m, parsed)
		assert.NotEqual("Unknown", m.Label())
	}

	m, err := ParseMode("  Color_Detect ")
	assert.NoError(err)
	assert.Equal(ModeColorDetect, m)
}

func TestMode_ShouldRejectUnknownName(t *testing.T) {
	_, err := ParseMode("sepia")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMode))

	assert.Equal(t, "unknown", Mode(42).String())
	assert.False(t, Mode(-1).Valid())
}

func TestMode_FilterModesExcludeDetectors(t *testing.T) {
	for _, m := range FilterModes() {
		assert.NotEqual(t, ModeFace, m)
		assert.NotEqual(t, ModeColorDetect, m)
		assert.NotEqual(t, ModeTrack, m)
	}
	assert.Len(t, FilterModes(), 6)
}
