package provider

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/tts"
	"DyslexiaHelper/internal/service/tts/gemini"
	"DyslexiaHelper/internal/service/tts/google"
	"DyslexiaHelper/internal/service/tts/player"
	"DyslexiaHelper/internal/service/tts/yandex"
	"errors"

	"go.uber.org/zap"
)

// ErrBrowserTTS — речь синтезирует браузер, серверного синтезатора нет.
var ErrBrowserTTS = errors.New("tts provider: browser speech selected, no backend synthesizer")

// New выбирает серверный синтезатор по cfg.TTSService.
func New(cfg *config.Config, logger *zap.SugaredLogger) (tts.Synthesizer, error) {
	return NewWithPlayer(cfg, nil, logger)
}

// NewWithPlayer — как New, но с заданным плеером. nil — плеер по умолчанию.
func NewWithPlayer(cfg *config.Config, p player.Player, logger *zap.SugaredLogger) (tts.Synthesizer, error) {
	service := cfg.TTSServiceName()

	// Для Yandex учитываем внешнюю громкость; для Google/Gemini громкость регулируется на стороне провайдера
	if p == nil {
		if service == "yandex" {
			p = player.NewWithVolume(player.VolumeDB(cfg.YandexTTS.Volume))
		} else {
			p = player.New()
		}
	}

	var synth tts.Synthesizer
	switch service {
	case "browser":
		return nil, ErrBrowserTTS
	case "yandex":
		synth = yandex.New(cfg.YandexTTS, p)
	case "gemini":
		synth = gemini.New(cfg.GeminiTTS, p, logger)
	case "google":
		synth = google.New(cfg.GoogleTTS, p, logger)
	default:
		return nil, errors.New("tts provider: unknown service " + service)
	}
	logger.Infow("TTS selected", "service", service)
	return synth, nil
}
