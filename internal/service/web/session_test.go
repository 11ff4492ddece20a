package web

import (
	"DyslexiaHelper/internal/app/controller"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) outFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f outFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev controller.Event) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ev))
}

func TestSessionFlow(t *testing.T) {
	conn := dialWS(t, newTestServer(t, nil))

	first := readFrame(t, conn)
	require.Equal(t, frameView, first.Type)
	assert.Equal(t, "light-mode", first.View.BodyClass)

	sendEvent(t, conn, controller.Event{Control: controller.ControlInput, Value: `<span style="color:red">Hello</span> World`})
	f := readFrame(t, conn)
	assert.Equal(t, frameView, f.Type)
	assert.Empty(t, f.View.OutputHTML)

	sendEvent(t, conn, controller.Event{Control: controller.ControlLexend})
	f = readFrame(t, conn)
	assert.Equal(t, "<span>Hello</span> World", f.View.OutputHTML)
	assert.Equal(t, "Lexend, sans-serif", f.View.FontFamily)

	sendEvent(t, conn, controller.Event{Control: controller.ControlLetterSpacing, Value: "2"})
	f = readFrame(t, conn)
	assert.Equal(t, "2px", f.View.LetterSpacing)

	sendEvent(t, conn, controller.Event{Control: controller.ControlModeToggle})
	f = readFrame(t, conn)
	assert.Equal(t, "dark-mode", f.View.BodyClass)
}

func TestSessionBrowserSpeech(t *testing.T) {
	conn := dialWS(t, newTestServer(t, nil))
	readFrame(t, conn)

	sendEvent(t, conn, controller.Event{Control: controller.ControlInput, Value: "Hello World"})
	readFrame(t, conn)
	sendEvent(t, conn, controller.Event{Control: controller.ControlOpenDyslexic})
	readFrame(t, conn)

	sendEvent(t, conn, controller.Event{
		Control:   controller.ControlSpeak,
		Selection: &controller.Selection{Text: "World", InOutput: true},
	})
	f := readFrame(t, conn)
	require.Equal(t, frameSpeak, f.Type)
	require.NotNil(t, f.Utterance)
	assert.Equal(t, "World", f.Utterance.Text)
	assert.Equal(t, 1.0, f.Utterance.Rate)
	assert.Equal(t, 1.0, f.Utterance.Pitch)

	f = readFrame(t, conn)
	assert.Equal(t, frameView, f.Type)
}

func TestSessionBackendSpeech(t *testing.T) {
	sp := &fakeSpeech{}
	conn := dialWS(t, newTestServer(t, sp))
	readFrame(t, conn)

	sendEvent(t, conn, controller.Event{Control: controller.ControlInput, Value: "<p>Read aloud</p>"})
	readFrame(t, conn)
	sendEvent(t, conn, controller.Event{Control: controller.ControlLexend})
	readFrame(t, conn)
	sendEvent(t, conn, controller.Event{Control: controller.ControlSpeak})

	f := readFrame(t, conn)
	assert.Equal(t, frameView, f.Type)
	assert.Equal(t, []string{"Read aloud"}, sp.texts())
}

func TestSessionErrors(t *testing.T) {
	conn := dialWS(t, newTestServer(t, nil))
	readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	f := readFrame(t, conn)
	assert.Equal(t, frameError, f.Type)

	sendEvent(t, conn, controller.Event{Control: "zoom-btn"})
	f = readFrame(t, conn)
	assert.Equal(t, frameError, f.Type)
	assert.Contains(t, f.Error, "unknown control")
	require.NotNil(t, f.View)

	sendEvent(t, conn, controller.Event{Control: controller.ControlLineHeight, Value: "1.5"})
	f = readFrame(t, conn)
	assert.Equal(t, frameView, f.Type)
	assert.Equal(t, "1.5", f.View.LineHeight)
}
