package player

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeDB(t *testing.T) {
	assert.Equal(t, 0.0, VolumeDB(100))
	assert.Equal(t, -20.0, VolumeDB(0))
	assert.Equal(t, -10.0, VolumeDB(50))
	assert.Equal(t, 0.0, VolumeDB(150))
	assert.Equal(t, -20.0, VolumeDB(-5))
}

func TestNormalizeFormat(t *testing.T) {
	f, err := NormalizeFormat(" MP3 ")
	require.NoError(t, err)
	assert.Equal(t, "mp3", f)

	f, err = NormalizeFormat("wav")
	require.NoError(t, err)
	assert.Equal(t, "wav", f)

	_, err = NormalizeFormat("oggopus")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestPlayRejectsUnsupportedFormatAndCloses(t *testing.T) {
	r := &closeTracker{Reader: strings.NewReader("data")}
	err := New().Play("flac", r)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, r.closed)
}
