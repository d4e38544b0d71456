package gokachu

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(store Store) *Recorder {
	r := NewRecorder(store, "captures", "Live Filter Camera")
	r.Countdown = instantCountdown()
	r.Logger = testLogger
	r.Now = fixedClock
	return r
}

func TestRecorder_ToggleTwiceShouldOpenAndCloseOneStream(t *testing.T) {
	assert := assert.New(t)
	store := &fakeStore{}
	rec := newTestRecorder(store)
	src := newFakeSource(640, 480, 100)
	frame := uniformFrame(640, 480, ColorWhite)

	require.NoError(t, rec.Toggle(frame, src, newFakeDisplay()))
	assert.True(rec.Active())
	require.Len(t, store.streams, 1)

	st := store.streams[0]
	assert.Equal(filepath.Join("captures", "recording_20240517-143005.avi"), st.path)
	assert.Equal(20.0, st.fps)
	assert.Equal(image.Pt(640, 480), st.size)
	assert.Equal(3, src.reads)

	require.NoError(t, rec.Toggle(frame, src, newFakeDisplay()))
	assert.False(rec.Active())
	assert.Len(store.streams, 1)
	assert.Equal(1, st.closed)
	// stopping does not run a countdown
	assert.Equal(3, src.reads)
}

func TestRecorder_SourceFailureDuringCountdownShouldOpenNothing(t *testing.T) {
	store := &fakeStore{}
	rec := newTestRecorder(store)
	src := newFakeSource(640, 480, 100)
	src.failAt = 2

	err := rec.Toggle(uniformFrame(640, 480, ColorWhite), src, newFakeDisplay())
	assert.True(t, errors.Is(err, errCamera))
	assert.False(t, rec.Active())
	assert.Empty(t, store.streams)
}

func TestRecorder_CancelDuringCountdownShouldOpenNothing(t *testing.T) {
	store := &fakeStore{}
	rec := newTestRecorder(store)

	err := rec.Toggle(uniformFrame(32, 32, ColorWhite), newFakeSource(32, 32, 10), newFakeDisplay(KeyQuit))
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.False(t, rec.Active())
	assert.Empty(t, store.streams)
}

func TestRecorder_OnFrame(t *testing.T) {
	assert := assert.New(t)
	store := &fakeStore{}
	rec := newTestRecorder(store)
	frame := uniformFrame(64, 48, ColorWhite)

	// inactive: no-op
	assert.NoError(rec.OnFrame(frame))

	require.NoError(t, rec.Toggle(frame, newFakeSource(64, 48, 10), newFakeDisplay()))
	for i := 0; i < 5; i++ {
		assert.NoError(rec.OnFrame(frame))
	}
	assert.Equal(5, store.streams[0].frames)
	assert.Equal(5, rec.State().Frames)
}

func TestRecorder_FrameSizeMismatchShouldEndRecording(t *testing.T) {
	store := &fakeStore{}
	rec := newTestRecorder(store)
	require.NoError(t, rec.Toggle(uniformFrame(64, 48, ColorWhite), newFakeSource(64, 48, 10), newFakeDisplay()))

	err := rec.OnFrame(uniformFrame(32, 32, ColorWhite))
	assert.True(t, errors.Is(err, ErrFrameSize))
	assert.False(t, rec.Active())
	assert.Equal(t, 1, store.streams[0].closed)
	assert.Equal(t, 0, store.streams[0].frames)
}

func TestRecorder_FrameSizeMismatchShouldReportBothSizes(t *testing.T) {
	store := &fakeStore{}
	rec := newTestRecorder(store)
	require.NoError(t, rec.Toggle(uniformFrame(64, 48, ColorWhite), newFakeSource(64, 48, 10), newFakeDisplay()))
	store.streams[0].closeErr = errors.New("flush failed")

	var err error
	assert.NotPanics(t, func() {
		err = rec.OnFrame(uniformFrame(32, 24, ColorWhite))
	})
	assert.True(t, errors.Is(err, ErrFrameSize))
	assert.Contains(t, err.Error(), "(32,24)")
	assert.Contains(t, err.Error(), "(64,48)")
	assert.False(t, rec.Active())
	assert.Equal(t, 1, store.streams[0].closed)
}

func TestRecorder_OpenFailureShouldStayInactive(t *testing.T) {
	store := &fakeStore{openErr: errors.New("codec unavailable")}
	rec := newTestRecorder(store)

	err := rec.Toggle(uniformFrame(64, 48, ColorWhite), newFakeSource(64, 48, 10), newFakeDisplay())
	assert.Error(t, err)
	assert.False(t, rec.Active())
	assert.NoError(t, rec.Close())
}
