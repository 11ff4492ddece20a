package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Режим дебага: development-логгер и подробные логи

	HTTP HTTPConfig

	// Оформление по умолчанию для новой сессии
	DefaultTheme string `env:"DEFAULT_THEME"` // light|dark

	// Диапазоны слайдеров. Значения вне диапазона прижимаются к границам, как у <input type=range>
	LetterSpacingMin float64 `env:"LETTER_SPACING_MIN"` // px
	LetterSpacingMax float64 `env:"LETTER_SPACING_MAX"` // px
	LineHeightMin    float64 `env:"LINE_HEIGHT_MIN"`    // множитель
	LineHeightMax    float64 `env:"LINE_HEIGHT_MAX"`    // множитель

	// Упрощение текста
	DifficultWordMinLen int `env:"DIFFICULT_WORD_MIN_LEN"` // Слова от этой длины подсвечиваются как сложные

	// Общий переключатель сервиса TTS.
	// browser — речь синтезирует браузер клиента, сервер только возвращает команду speak.
	TTSService   string `env:"TTS_SERVICE"`    // browser|google|yandex|gemini, по умолчанию browser
	TTSQueueSize int    `env:"TTS_QUEUE_SIZE"` // Ёмкость серверной очереди речи
	GoogleTTS    GoogleTTSConfig
	YandexTTS    YandexTTSConfig
	GeminiTTS    GeminiTTSConfig
}

// HTTPConfig конфигурация HTTP-сервера.
type HTTPConfig struct {
	BindAddr  string `env:"HTTP_BIND_ADDR"` // Адрес слушателя, напр. 0.0.0.0:8001
	StaticDir string `env:"STATIC_DIR"`     // Папка со страницей, стилями и шрифтами. Вёрстка не входит в сервис
}

// YandexTTSConfig конфигурация для синтеза речи через Yandex SpeechKit.
type YandexTTSConfig struct {
	Endpoint string `env:"YC_TTS_ENDPOINT"`
	APIKey   string `env:"YC_TTS_API_KEY"` // Ключ берём из .env/ENV. Если пуст — при использовании будет ошибка
	Voice    string `env:"YC_TTS_VOICE"`
	Format   string `env:"YC_TTS_FORMAT"` // mp3|wav
	Emotion  string `env:"YC_TTS_EMOTION"` // neutral|good|evil
	Volume   int    `env:"YC_TTS_VOLUME"`  // Громкость 0-100; 100 — не изменять громкость
}

// GoogleTTSConfig конфигурация для синтеза речи через Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Путь к файлу ключа сервисного аккаунта. Фактически читается из ENV GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsPath string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language        string  `env:"GOOGLE_TTS_LANGUAGE"`
	Voice           string  `env:"GOOGLE_TTS_VOICE"`
	VolumeGainDb    float64 `env:"GOOGLE_TTS_VOLUME_DB"`
	// Эффект профиля устройства воспроизведения, напр. large-home-entertainment-class-device
	EffectsProfileID string `env:"GOOGLE_TTS_EFFECTS_PROFILE_ID"`
}

// GeminiTTSConfig конфигурация Cloud Text-to-Speech: Gemini-TTS (v1beta1 REST, авторизация через ADC).
type GeminiTTSConfig struct {
	Endpoint     string  `env:"GEMINI_TTS_ENDPOINT"`
	ModelName    string  `env:"GEMINI_TTS_MODEL"`
	Language     string  `env:"GEMINI_TTS_LANGUAGE"`
	VoiceName    string  `env:"GEMINI_TTS_VOICE"`
	Prompt       string  `env:"GEMINI_TTS_PROMPT"` // Стилевой промпт, пустым не отправляется
	VolumeGainDb float64 `env:"GEMINI_TTS_VOLUME_DB"`
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode: false,
		HTTP: HTTPConfig{
			BindAddr:  "0.0.0.0:8001",
			StaticDir: "static",
		},
		DefaultTheme:        "light",
		LetterSpacingMin:    0,
		LetterSpacingMax:    10,
		LineHeightMin:       1,
		LineHeightMax:       3,
		DifficultWordMinLen: 9,
		TTSService:          "browser",
		TTSQueueSize:        10,
		GoogleTTS: GoogleTTSConfig{
			CredentialsPath:  "service-account.json",
			Language:         "en-US",
			Voice:            "en-US-Standard-C",
			VolumeGainDb:     0.0,
			EffectsProfileID: "headphone-class-device",
		},
		YandexTTS: YandexTTSConfig{
			Endpoint: "https://tts.api.cloud.yandex.net/speech/v1/tts:synthesize",
			APIKey:   "",
			Voice:    "john",
			Format:   "mp3",
			Emotion:  "neutral",
			Volume:   100,
		},
		GeminiTTS: GeminiTTSConfig{
			Endpoint:  "https://texttospeech.googleapis.com/v1beta1/text:synthesize",
			ModelName: "gemini-2.5-flash-tts",
			Language:  "en-US",
			VoiceName: "Kore",
			Prompt:    "Read calmly and clearly",
		},
	}
}

// NewConfig загружает конфигурацию приложения.
func NewConfig() *Config {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	_ = env.Parse(cfg)

	flag.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	flag.StringVar(&cfg.HTTP.BindAddr, "http-bind-addr", cfg.HTTP.BindAddr, "адрес HTTP-сервера (напр. 0.0.0.0:8001)")
	flag.StringVar(&cfg.HTTP.StaticDir, "static-dir", cfg.HTTP.StaticDir, "папка со статикой страницы")
	flag.StringVar(&cfg.DefaultTheme, "default-theme", cfg.DefaultTheme, "тема по умолчанию: light|dark")
	flag.Float64Var(&cfg.LetterSpacingMin, "letter-spacing-min", cfg.LetterSpacingMin, "минимум слайдера межбуквенного интервала, px")
	flag.Float64Var(&cfg.LetterSpacingMax, "letter-spacing-max", cfg.LetterSpacingMax, "максимум слайдера межбуквенного интервала, px")
	flag.Float64Var(&cfg.LineHeightMin, "line-height-min", cfg.LineHeightMin, "минимум слайдера межстрочного интервала")
	flag.Float64Var(&cfg.LineHeightMax, "line-height-max", cfg.LineHeightMax, "максимум слайдера межстрочного интервала")
	flag.IntVar(&cfg.DifficultWordMinLen, "difficult-word-min-len", cfg.DifficultWordMinLen, "длина слова, с которой оно считается сложным")
	// Общие/переключатель TTS
	flag.StringVar(&cfg.TTSService, "tts-service", cfg.TTSService, "выбор сервиса TTS: browser|google|yandex|gemini")
	flag.IntVar(&cfg.TTSQueueSize, "tts-queue-size", cfg.TTSQueueSize, "ёмкость серверной очереди речи")
	// Параметры Yandex TTS
	flag.StringVar(&cfg.YandexTTS.APIKey, "yc-tts-api-key", cfg.YandexTTS.APIKey, "API ключ Yandex SpeechKit TTS (перекрывает ENV)")
	flag.StringVar(&cfg.YandexTTS.Voice, "yc-tts-voice", cfg.YandexTTS.Voice, "голос для синтеза")
	flag.StringVar(&cfg.YandexTTS.Format, "yc-tts-format", cfg.YandexTTS.Format, "формат аудио (mp3|wav)")
	flag.StringVar(&cfg.YandexTTS.Emotion, "yc-tts-emotion", cfg.YandexTTS.Emotion, "эмоциональная окраска (neutral|good|evil)")
	flag.IntVar(&cfg.YandexTTS.Volume, "yc-tts-volume", cfg.YandexTTS.Volume, "громкость 0-100 (100 — без изменений)")
	// Параметры Google TTS
	flag.StringVar(&cfg.GoogleTTS.CredentialsPath, "google-tts-credentials", cfg.GoogleTTS.CredentialsPath, "путь к service-account.json (также читается из ENV GOOGLE_APPLICATION_CREDENTIALS)")
	flag.StringVar(&cfg.GoogleTTS.Language, "google-tts-language", cfg.GoogleTTS.Language, "язык синтеза, напр. en-US")
	flag.StringVar(&cfg.GoogleTTS.Voice, "google-tts-voice", cfg.GoogleTTS.Voice, "имя голоса, напр. en-US-Standard-C")
	flag.Float64Var(&cfg.GoogleTTS.VolumeGainDb, "google-tts-volume-db", cfg.GoogleTTS.VolumeGainDb, "усиление громкости (дБ), допустимо от -96.0 до +16.0")
	flag.StringVar(&cfg.GoogleTTS.EffectsProfileID, "google-tts-effects-profile-id", cfg.GoogleTTS.EffectsProfileID, "EffectsProfileId, напр. headphone-class-device")
	// Параметры Gemini TTS
	flag.StringVar(&cfg.GeminiTTS.ModelName, "gemini-tts-model", cfg.GeminiTTS.ModelName, "модель Gemini TTS")
	flag.StringVar(&cfg.GeminiTTS.VoiceName, "gemini-tts-voice", cfg.GeminiTTS.VoiceName, "голос Gemini TTS")
	flag.StringVar(&cfg.GeminiTTS.Prompt, "gemini-tts-prompt", cfg.GeminiTTS.Prompt, "стилевой промпт Gemini TTS")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	// Валидация и подготовка окружения для Google TTS.
	// Если выбран google/gemini, убеждаемся, что задан путь к cred-файлу
	// и он существует. Если ENV пуст, но в конфиге указан путь — устанавливаем ENV.
	if cfg.UsesGoogleCredentials() {
		cred := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if cred == "" {
			if cp := strings.TrimSpace(cfg.GoogleTTS.CredentialsPath); cp != "" {
				_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cp)
				cred = cp
			}
		}
		if cred == "" {
			panic(fmt.Errorf("google tts: переменная окружения GOOGLE_APPLICATION_CREDENTIALS не задана; укажите ENV или флаг -google-tts-credentials"))
		}
		if _, err := os.Stat(cred); err != nil {
			panic(fmt.Errorf("google tts: файл ключа не найден: %s", cred))
		}
	}

	return cfg
}

// Validate проверяет значения, которые нельзя безопасно подправить на лету.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DefaultTheme)) {
	case "light", "dark":
	default:
		return fmt.Errorf("config: неизвестная тема %q, ожидается light|dark", c.DefaultTheme)
	}
	if c.LetterSpacingMin > c.LetterSpacingMax {
		return fmt.Errorf("config: letter spacing min %v > max %v", c.LetterSpacingMin, c.LetterSpacingMax)
	}
	if c.LineHeightMin > c.LineHeightMax {
		return fmt.Errorf("config: line height min %v > max %v", c.LineHeightMin, c.LineHeightMax)
	}
	switch c.TTSServiceName() {
	case "browser", "google", "yandex", "gemini":
	default:
		return fmt.Errorf("config: неизвестный сервис TTS %q", c.TTSService)
	}
	return nil
}

// TTSServiceName нормализует имя сервиса TTS; пусто — browser.
func (c *Config) TTSServiceName() string {
	s := strings.ToLower(strings.TrimSpace(c.TTSService))
	switch s {
	case "":
		return "browser"
	case "yc", "speechkit":
		return "yandex"
	case "google-gemini":
		return "gemini"
	}
	return s
}

// BackendTTS сообщает, синтезируется ли речь на стороне сервера.
func (c *Config) BackendTTS() bool { return c.TTSServiceName() != "browser" }

// UsesGoogleCredentials — нужен ли файл ключа сервисного аккаунта.
func (c *Config) UsesGoogleCredentials() bool {
	s := c.TTSServiceName()
	return s == "google" || s == "gemini"
}
