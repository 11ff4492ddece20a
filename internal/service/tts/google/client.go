package google

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/tts"
	"DyslexiaHelper/internal/service/tts/player"
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
)

// Client реализует синтез речи через Google Cloud Text-to-Speech и воспроизводит результат.
type Client struct {
	cfg    config.GoogleTTSConfig
	player player.Player
	logger *zap.SugaredLogger
}

var _ tts.Synthesizer = (*Client)(nil)

func New(cfg config.GoogleTTSConfig, p player.Player, logger *zap.SugaredLogger) *Client {
	return &Client{cfg: cfg, player: p, logger: logger}
}

// Request собирает запрос к API. Скорость и тон берутся из Utterance, голос — из конфигурации.
func (c *Client) Request(u tts.Utterance) *ttspb.SynthesizeSpeechRequest {
	input := &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: u.Text}}

	voice := &ttspb.VoiceSelectionParams{
		LanguageCode: c.cfg.Language,
		Name:         c.cfg.Voice,
	}

	// Только MP3
	audio := &ttspb.AudioConfig{
		AudioEncoding: ttspb.AudioEncoding_MP3,
		SpeakingRate:  tts.SpeakingRate(u),
		Pitch:         tts.PitchSemitones(u),
		VolumeGainDb:  c.cfg.VolumeGainDb,
	}
	if ep := strings.TrimSpace(c.cfg.EffectsProfileID); ep != "" {
		audio.EffectsProfileId = []string{ep}
	}
	return &ttspb.SynthesizeSpeechRequest{Input: input, Voice: voice, AudioConfig: audio}
}

// Synthesize выполняет запрос к Google TTS и воспроизводит аудио.
func (c *Client) Synthesize(ctx context.Context, u tts.Utterance) error {
	if strings.TrimSpace(u.Text) == "" {
		return tts.ErrEmptyText
	}

	ttsClient, err := gctts.NewClient(ctx)
	if err != nil {
		return err
	}
	defer ttsClient.Close()

	started := time.Now()
	resp, err := ttsClient.SynthesizeSpeech(ctx, c.Request(u))
	if err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Infow("Google TTS synthesize completed", "took", time.Since(started).String())
	}

	r := io.NopCloser(bytes.NewReader(resp.GetAudioContent()))
	return c.player.Play("mp3", r)
}
