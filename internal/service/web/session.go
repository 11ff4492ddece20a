package web

import (
	"DyslexiaHelper/internal/app/controller"
	"DyslexiaHelper/internal/service/tts"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Типы кадров сервер → клиент
const (
	frameView  = "view"
	frameSpeak = "speak"
	frameError = "error"
)

type outFrame struct {
	Type      string           `json:"type"`
	View      *controller.View `json:"view,omitempty"`
	Utterance *tts.Utterance   `json:"utterance,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// clientSpeaker отдаёт запрос на речь браузеру: тот вызывает speechSynthesis сам.
type clientSpeaker struct {
	send func(outFrame) error
}

func (c clientSpeaker) Speak(_ context.Context, u tts.Utterance) error {
	return c.send(outFrame{Type: frameSpeak, Utterance: &u})
}

// session — одна страница. Чтение, обработка и запись идут в одной горутине,
// поэтому события обрабатываются строго по очереди.
type session struct {
	conn   *websocket.Conn
	ctrl   *controller.Controller
	srv    *Server
	logger *zap.SugaredLogger
}

func (s *session) send(f outFrame) error {
	return s.conn.WriteJSON(f)
}

func (s *session) sendView() error {
	v := s.ctrl.View()
	return s.send(outFrame{Type: frameView, View: &v})
}

func (s *session) run(ctx context.Context) {
	if err := s.sendView(); err != nil {
		s.logger.Warnw("WebSocket initial write failed", "error", err)
		return
	}
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warnw("WebSocket read failed", "error", err)
			}
			return
		}

		var ev controller.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			if werr := s.send(outFrame{Type: frameError, Error: "invalid event"}); werr != nil {
				return
			}
			continue
		}

		view, err := s.ctrl.Dispatch(ctx, ev)
		s.srv.metrics.Event(string(ev.Control), err)
		if err != nil {
			msg := err.Error()
			if errors.Is(err, tts.ErrQueueFull) {
				msg = "TTS queue full"
			}
			s.logger.Debugw("Control event failed", "control", ev.Control, "error", err)
			if werr := s.send(outFrame{Type: frameError, Error: msg, View: &view}); werr != nil {
				return
			}
			continue
		}
		if err := s.send(outFrame{Type: frameView, View: &view}); err != nil {
			s.logger.Warnw("WebSocket write failed", "error", err)
			return
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess := &session{conn: conn, srv: s, logger: s.logger.With("remote", r.RemoteAddr)}
	var speaker tts.Speaker = s.speech
	if speaker == nil {
		speaker = clientSpeaker{send: sess.send}
	}
	sess.ctrl = controller.New(s.defaultTheme(), s.ranges(), speaker, sess.logger)

	sess.logger.Infow("WebSocket connected")
	sess.run(r.Context())
	sess.logger.Infow("WebSocket closed")
}
