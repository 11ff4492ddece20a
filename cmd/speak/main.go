package main

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/sanitize"
	"DyslexiaHelper/internal/service/tts"
	"DyslexiaHelper/internal/service/tts/provider"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Утилита для проверки серверного TTS: озвучивает текст (или HTML) выбранным провайдером.
// Пример запуска:
//
//	go run ./cmd/speak -tts-service yandex -text "<b>Hello</b> there"
func main() {
	var (
		text  string
		rate  float64
		pitch float64
	)
	// Флаги утилиты объявляем до NewConfig: он сам вызывает flag.Parse
	flag.StringVar(&text, "text", "The quick brown fox jumps over the lazy dog.", "текст или HTML для озвучивания")
	flag.Float64Var(&rate, "rate", 1, "скорость речи (1 — нормальная)")
	flag.Float64Var(&pitch, "pitch", 1, "тон (1 — нормальный)")

	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	synth, err := provider.New(cfg, sugar)
	if errors.Is(err, provider.ErrBrowserTTS) {
		fmt.Println("выберите серверный TTS: -tts-service google|yandex|gemini")
		os.Exit(2)
	}
	if err != nil {
		fmt.Println("не удалось создать TTS:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeoutCause(context.Background(), 60*time.Second, errors.New("speak timeout"))
	defer cancel()

	u := tts.Utterance{Text: sanitize.Text(text), Rate: rate, Pitch: pitch}
	if err := synth.Synthesize(ctx, u); err != nil {
		sugar.Errorw("TTS failed", "error", err)
		os.Exit(1)
	}
}
