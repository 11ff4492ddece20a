package provider

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/tts/gemini"
	"DyslexiaHelper/internal/service/tts/google"
	"DyslexiaHelper/internal/service/tts/yandex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSelectsProvider(t *testing.T) {
	logger := zap.NewNop().Sugar()
	cfg := config.Defaults()

	cfg.TTSService = "google"
	s, err := New(cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &google.Client{}, s)

	cfg.TTSService = "speechkit"
	s, err = New(cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &yandex.Client{}, s)

	cfg.TTSService = "gemini"
	s, err = New(cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &gemini.Client{}, s)
}

func TestNewBrowser(t *testing.T) {
	cfg := config.Defaults()
	_, err := New(cfg, zap.NewNop().Sugar())
	assert.ErrorIs(t, err, ErrBrowserTTS)
}

func TestNewUnknown(t *testing.T) {
	cfg := config.Defaults()
	cfg.TTSService = "espeak"
	_, err := New(cfg, zap.NewNop().Sugar())
	assert.Error(t, err)
}
