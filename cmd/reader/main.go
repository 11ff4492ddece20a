package main

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/metrics"
	"DyslexiaHelper/internal/service/tts"
	"DyslexiaHelper/internal/service/tts/provider"
	"DyslexiaHelper/internal/service/web"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	var (
		logger *zap.Logger
		err    error
	)
	if cfg.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	sugar.Infow("Starting reader",
		"DebugMode", cfg.DebugMode,
		"TTSService", cfg.TTSServiceName(),
		"BindAddr", cfg.HTTP.BindAddr,
	)

	// Ctrl+C / SIGTERM завершают работу
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Серверная очередь речи нужна только при серверном TTS; в режиме browser речь синтезирует клиент
	var speech tts.Speaker
	queueDone := make(chan struct{})
	if cfg.BackendTTS() {
		synth, err := provider.New(cfg, sugar)
		if err != nil {
			sugar.Fatalw("TTS init failed", "error", err)
		}
		q := tts.NewQueue(synth, cfg.TTSQueueSize, sugar).WithObserver(m)
		speech = q
		go func() {
			defer close(queueDone)
			if err := q.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				sugar.Errorw("TTS queue stopped", "error", err)
			}
		}()
	} else {
		close(queueDone)
	}

	srv := web.New(cfg, speech, m, sugar)
	if err := srv.Start(ctx); err != nil {
		sugar.Fatalw("server start failed", "error", err)
	}

	<-ctx.Done()
	if err := srv.Stop(context.WithoutCancel(ctx)); err != nil {
		sugar.Warnw("server stop failed", "error", err)
	}
	<-queueDone
	sugar.Infow("Reader stopped")
}
