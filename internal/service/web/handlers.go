package web

import (
	"DyslexiaHelper/internal/app/controller"
	"DyslexiaHelper/internal/service/presentation"
	"DyslexiaHelper/internal/service/sanitize"
	"DyslexiaHelper/internal/service/tts"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

type renderRequest struct {
	Input         string   `json:"input"`
	Font          string   `json:"font"`
	Theme         string   `json:"theme"`
	LetterSpacing *float64 `json:"letterSpacing"`
	LineHeight    *float64 `json:"lineHeight"`
}

type simplifyRequest struct {
	Text string `json:"text"`
}

type simplifyResponse struct {
	Simplified  string `json:"simplified"`
	Highlighted string `json:"highlighted"`
}

type ttsRequest struct {
	Text string `json:"text"`
}

type ttsResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnw("response encode failed", "error", err)
	}
}

// handleRender — один вызов без сессии: очистка ввода и применение оформления.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cfg := presentation.New(s.defaultTheme())
	if req.Theme != "" {
		th, err := presentation.ParseTheme(req.Theme)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg = cfg.WithTheme(th)
	}
	if req.Font != "" {
		font, err := presentation.ParseFont(req.Font)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg = cfg.WithFont(font)
	}
	rg := s.ranges()
	if req.LetterSpacing != nil {
		cfg = cfg.WithLetterSpacing(rg.LetterSpacing.Clamp(*req.LetterSpacing))
	}
	if req.LineHeight != nil {
		cfg = cfg.WithLineHeight(rg.LineHeight.Clamp(*req.LineHeight))
	}

	clean, err := sanitize.StripStyles(req.Input)
	if err != nil {
		s.logger.Warnw("Render: sanitize failed", "error", err)
		http.Error(w, "failed to sanitize input", http.StatusUnprocessableEntity)
		return
	}
	s.metrics.Event("render", nil)
	s.writeJSON(w, http.StatusOK, controller.Render(clean, cfg))
}

func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	var req simplifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.writeJSON(w, http.StatusOK, simplifyResponse{
		Simplified:  s.simplifier.Simplify(req.Text),
		Highlighted: s.simplifier.HighlightDifficult(req.Text),
	})
}

// handleTTS ставит текст в серверную очередь речи.
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if s.speech == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, ttsResponse{OK: false, Msg: "backend TTS disabled"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		s.writeJSON(w, http.StatusOK, ttsResponse{OK: false})
		return
	}

	err := s.speech.Speak(r.Context(), tts.NewUtterance(text))
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, ttsResponse{OK: true})
	case errors.Is(err, tts.ErrQueueFull):
		s.writeJSON(w, http.StatusTooManyRequests, ttsResponse{OK: false, Msg: "TTS queue full"})
	case errors.Is(err, tts.ErrEmptyText):
		s.writeJSON(w, http.StatusOK, ttsResponse{OK: false})
	default:
		s.logger.Errorw("TTS enqueue failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, ttsResponse{OK: false, Msg: "TTS error"})
	}
}
