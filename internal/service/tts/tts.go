package tts

import (
	"context"
	"errors"
	"math"
)

var ErrEmptyText = errors.New("tts: empty text")

// Utterance — запрос на озвучивание. Rate и Pitch в единицах браузера:
// множители, 1 — нормальная скорость и тон.
type Utterance struct {
	Text  string  `json:"text"`
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// NewUtterance создаёт запрос с нормальной скоростью и тоном.
func NewUtterance(text string) Utterance { return Utterance{Text: text, Rate: 1, Pitch: 1} }

// Speaker принимает запросы на речь. Вызывающий не ждёт окончания воспроизведения.
type Speaker interface {
	Speak(ctx context.Context, u Utterance) error
}

// Synthesizer абстракция TTS-провайдера. Метод синтезирует и воспроизводит речь,
// возвращается по окончании воспроизведения.
type Synthesizer interface {
	Synthesize(ctx context.Context, u Utterance) error
}

// SpeakingRate переводит браузерную скорость в скорость провайдера; 0 и меньше — нормальная.
func SpeakingRate(u Utterance) float64 {
	if u.Rate <= 0 {
		return 1
	}
	return u.Rate
}

// PitchSemitones переводит браузерный множитель тона в полутоны (Google TTS): 1 → 0.
func PitchSemitones(u Utterance) float64 {
	if u.Pitch <= 0 {
		return 0
	}
	return 12 * math.Log2(u.Pitch)
}
