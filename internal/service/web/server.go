package web

import (
	"DyslexiaHelper/internal/app/controller"
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/metrics"
	"DyslexiaHelper/internal/service/presentation"
	"DyslexiaHelper/internal/service/simplify"
	"DyslexiaHelper/internal/service/tts"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server — HTTP/WebSocket фронт помощника чтения.
type Server struct {
	cfg        *config.Config
	srv        *http.Server
	logger     *zap.SugaredLogger
	speech     tts.Speaker // nil — речь синтезирует браузер
	simplifier *simplify.Simplifier
	metrics    *metrics.Metrics
	upgrader   websocket.Upgrader
	running    atomic.Bool
}

// New собирает сервер. speech == nil означает режим browser: команды speak уходят клиенту.
func New(cfg *config.Config, speech tts.Speaker, m *metrics.Metrics, logger *zap.SugaredLogger) *Server {
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		speech:     speech,
		simplifier: simplify.New(cfg.DifficultWordMinLen),
		metrics:    m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	bind := cfg.HTTP.BindAddr
	if bind == "" {
		bind = "0.0.0.0:8001"
	}
	s.srv = &http.Server{
		Addr:              bind,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler возвращает маршрутизатор со всеми эндпоинтами.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/render", s.handleRender)
	r.Post("/simplify", s.handleSimplify)
	r.Post("/tts", s.handleTTS)
	r.Get("/ws", s.handleWS)
	r.Handle("/metrics", s.metrics.Handler())

	// Страница, стили и шрифты — статикой из папки оператора
	if dir := strings.TrimSpace(s.cfg.HTTP.StaticDir); dir != "" {
		r.Handle("/*", http.FileServer(http.Dir(dir)))
	}
	return r
}

func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		s.logger.Infow("Reader server listening", "addr", s.srv.Addr, "tts", s.cfg.TTSServiceName())
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
			s.logger.Errorw("Reader server stopped with error", "error", err)
		} else {
			s.logger.Infow("Reader server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Stop(context.WithoutCancel(ctx))
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeoutCause(ctx, 5*time.Second, errors.New("reader server shutdown timeout"))
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warnw("graceful shutdown error", "error", err)
		return s.srv.Close()
	}
	return nil
}

func (s *Server) Addr() string { return s.srv.Addr }

func (s *Server) ranges() controller.Ranges {
	return controller.Ranges{
		LetterSpacing: presentation.Range{Min: s.cfg.LetterSpacingMin, Max: s.cfg.LetterSpacingMax},
		LineHeight:    presentation.Range{Min: s.cfg.LineHeightMin, Max: s.cfg.LineHeightMax},
	}
}

func (s *Server) defaultTheme() presentation.Theme {
	th, err := presentation.ParseTheme(s.cfg.DefaultTheme)
	if err != nil {
		return presentation.ThemeLight
	}
	return th
}
