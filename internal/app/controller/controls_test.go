package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchTableCoversControls(t *testing.T) {
	c := newTest(&fakeSpeaker{})
	for _, ctl := range Controls() {
		_, ok := c.handlers[ctl]
		assert.True(t, ok, "no handler for %s", ctl)
	}
	assert.Len(t, c.handlers, len(Controls()))
}

func TestDispatchFlow(t *testing.T) {
	sp := &fakeSpeaker{}
	c := newTest(sp)
	ctx := context.Background()

	_, err := c.Dispatch(ctx, Event{Control: ControlInput, Value: `<p style="font-size:40px">Read me</p>`})
	require.NoError(t, err)

	v, err := c.Dispatch(ctx, Event{Control: ControlOpenDyslexic})
	require.NoError(t, err)
	assert.Equal(t, "<p>Read me</p>", v.OutputHTML)
	assert.Equal(t, "OpenDyslexic, OpenDyslexicRegular, sans-serif", v.FontFamily)

	v, err = c.Dispatch(ctx, Event{Control: ControlLetterSpacing, Value: "4"})
	require.NoError(t, err)
	assert.Equal(t, "4px", v.LetterSpacing)

	v, err = c.Dispatch(ctx, Event{Control: ControlLineHeight, Value: " 1.75 "})
	require.NoError(t, err)
	assert.Equal(t, "1.75", v.LineHeight)

	v, err = c.Dispatch(ctx, Event{Control: ControlModeToggle})
	require.NoError(t, err)
	assert.Equal(t, "dark-mode", v.BodyClass)

	_, err = c.Dispatch(ctx, Event{Control: ControlSpeak})
	require.NoError(t, err)
	require.Len(t, sp.got, 1)
	assert.Equal(t, "Read me", sp.got[0].Text)
}

func TestDispatchClampsSliders(t *testing.T) {
	c := newTest(&fakeSpeaker{})
	v, err := c.Dispatch(context.Background(), Event{Control: ControlLetterSpacing, Value: "25"})
	require.NoError(t, err)
	assert.Equal(t, "10px", v.LetterSpacing)

	v, err = c.Dispatch(context.Background(), Event{Control: ControlLineHeight, Value: "0"})
	require.NoError(t, err)
	assert.Equal(t, "1", v.LineHeight)
}

func TestDispatchErrors(t *testing.T) {
	c := newTest(&fakeSpeaker{})
	_, err := c.Dispatch(context.Background(), Event{Control: "zoom-btn"})
	assert.ErrorIs(t, err, ErrUnknownControl)

	_, err = c.Dispatch(context.Background(), Event{Control: ControlLineHeight, Value: "tall"})
	assert.ErrorIs(t, err, ErrInvalidValue)
}
