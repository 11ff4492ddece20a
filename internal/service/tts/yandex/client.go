package yandex

import (
	"DyslexiaHelper/internal/config"
	"DyslexiaHelper/internal/service/tts"
	"DyslexiaHelper/internal/service/tts/player"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultEndpoint = "https://tts.api.cloud.yandex.net/speech/v1/tts:synthesize"

// Client реализует синтез речи через Yandex SpeechKit и воспроизводит результат.
type Client struct {
	cfg    config.YandexTTSConfig
	http   *http.Client
	player player.Player
}

var _ tts.Synthesizer = (*Client)(nil)

func New(cfg config.YandexTTSConfig, p player.Player) *Client {
	return &Client{cfg: cfg, http: http.DefaultClient, player: p}
}

// WithHTTPClient подменяет HTTP-клиент (таймауты, прокси, тесты).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Form собирает тело запроса. Скорость берётся из Utterance; тон SpeechKit не поддерживает.
func (c *Client) Form(u tts.Utterance) url.Values {
	form := url.Values{}
	form.Set("text", u.Text)
	form.Set("voice", c.cfg.Voice)
	form.Set("format", strings.ToLower(c.cfg.Format))
	form.Set("speed", strconv.FormatFloat(tts.SpeakingRate(u), 'f', -1, 64))
	form.Set("emotion", strings.ToLower(c.cfg.Emotion))
	return form
}

// Synthesize выполняет запрос к Yandex TTS и воспроизводит аудио.
func (c *Client) Synthesize(ctx context.Context, u tts.Utterance) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return errors.New("yandex tts: empty API key (set YC_TTS_API_KEY in .env/ENV or pass via flag)")
	}
	if strings.TrimSpace(u.Text) == "" {
		return tts.ErrEmptyText
	}
	format, err := player.NormalizeFormat(c.cfg.Format)
	if err != nil {
		return fmt.Errorf("yandex tts: %w", err)
	}

	endpoint := strings.TrimSpace(c.cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(c.Form(u).Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return fmt.Errorf("yandex tts error: status=%d, body=%s", resp.StatusCode, bytes.TrimSpace(b))
	}

	// Плеер закрывает тело сам
	return c.player.Play(format, resp.Body)
}
