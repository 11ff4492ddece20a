package gemini

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/tts"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	format string
	data   []byte
}

func (f *fakePlayer) Play(format string, r io.ReadCloser) error {
	defer r.Close()
	f.format = format
	b, err := io.ReadAll(r)
	f.data = b
	return err
}

func TestSynthesizeDecodesAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rp requestPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&rp))
		assert.Equal(t, "Read this", rp.Input.Text)
		assert.Equal(t, "Read calmly", rp.Input.Prompt)
		assert.Equal(t, "Kore", rp.Voice.VoiceName)
		assert.Equal(t, "MP3", rp.AudioConfig.AudioEncoding)
		assert.Equal(t, 1.0, rp.AudioConfig.SpeakingRate)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jsonAudioResponse{AudioContent: base64.StdEncoding.EncodeToString([]byte("mp3-data"))})
	}))
	defer srv.Close()

	p := &fakePlayer{}
	c := New(config.GeminiTTSConfig{
		Endpoint:  srv.URL,
		ModelName: "gemini-2.5-flash-tts",
		Language:  "en-US",
		VoiceName: "Kore",
		Prompt:    " Read calmly ",
	}, p, nil).WithHTTPClient(srv.Client())

	require.NoError(t, c.Synthesize(context.Background(), tts.NewUtterance("Read this")))
	assert.Equal(t, "mp3", p.format)
	assert.Equal(t, "mp3-data", string(p.data))
}

func TestSynthesizeEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"audioContent":""}`))
	}))
	defer srv.Close()

	c := New(config.GeminiTTSConfig{Endpoint: srv.URL}, &fakePlayer{}, nil).WithHTTPClient(srv.Client())
	assert.Error(t, c.Synthesize(context.Background(), tts.NewUtterance("x")))
}

func TestSynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(config.GeminiTTSConfig{Endpoint: srv.URL}, &fakePlayer{}, nil).WithHTTPClient(srv.Client())
	err := c.Synthesize(context.Background(), tts.NewUtterance("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
}

func TestSynthesizeEmptyText(t *testing.T) {
	c := New(config.GeminiTTSConfig{}, &fakePlayer{}, nil)
	assert.ErrorIs(t, c.Synthesize(context.Background(), tts.NewUtterance("")), tts.ErrEmptyText)
}
