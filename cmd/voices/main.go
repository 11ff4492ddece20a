package main

import (
	"DyslexiaHelper/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

// Небольшая утилита: печатает голоса Google TTS для языка из конфигурации,
// чтобы выбрать значение GOOGLE_TTS_VOICE.
func main() {
	cfg := config.NewConfig()

	// Установим GOOGLE_APPLICATION_CREDENTIALS из конфига, если не задано в окружении.
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" && cfg.GoogleTTS.CredentialsPath != "" {
		_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cfg.GoogleTTS.CredentialsPath)
	}

	ctx, cancel := context.WithTimeoutCause(context.Background(), 15*time.Second, errors.New("google tts voices request timeout"))
	defer cancel()

	// OAuth2 клиент по ADC
	hc, err := google.DefaultClient(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		fmt.Println("не удалось найти учётные данные Google (ADC):", err)
		os.Exit(1)
	}

	lang := cfg.GoogleTTS.Language
	if lang == "" {
		lang = "en-US"
	}
	endpoint := "https://texttospeech.googleapis.com/v1/voices?languageCode=" + url.QueryEscape(lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		fmt.Println("не удалось создать запрос:", err)
		os.Exit(1)
	}
	resp, err := hc.Do(req)
	if err != nil {
		fmt.Println("ошибка при выполнении запроса:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Google TTS Voices: status=%d\n", resp.StatusCode)
		os.Exit(1)
	}

	var payload struct {
		Voices []struct {
			Name                   string   `json:"name"`
			LanguageCodes          []string `json:"languageCodes"`
			SsmlGender             string   `json:"ssmlGender"`
			NaturalSampleRateHertz int      `json:"naturalSampleRateHertz"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		fmt.Println("не удалось распарсить ответ Google TTS Voices:", err)
		os.Exit(1)
	}

	for _, v := range payload.Voices {
		fmt.Printf("%-28s %-8s %6d Hz\n", v.Name, v.SsmlGender, v.NaturalSampleRateHertz)
	}
}
