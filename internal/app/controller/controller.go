package controller

import (
	"DyslexiaHelper/internal/service/presentation"
	"DyslexiaHelper/internal/service/sanitize"
	"DyslexiaHelper/internal/service/tts"
	"context"
	"strings"

	"go.uber.org/zap"
)

// Surface — содержимое области страницы (innerHTML).
type Surface struct {
	Markup string
}

// Selection — выделение пользователя на момент нажатия speak.
type Selection struct {
	Text string `json:"text"`
	// InOutput — общий предок диапазона лежит внутри Output Surface.
	InOutput bool `json:"inOutput"`
}

// Ranges — домены слайдеров.
type Ranges struct {
	LetterSpacing presentation.Range
	LineHeight    presentation.Range
}

// Controller — состояние одной страницы: Input/Output Surface и текущее оформление.
// Не потокобезопасен: события обрабатываются строго по одному, как в цикле событий браузера.
type Controller struct {
	input   *Surface // nil — поверхность отсутствует
	output  *Surface
	view    presentation.Config
	ranges  Ranges
	speaker tts.Speaker
	logger  *zap.SugaredLogger

	handlers map[Control]handler
}

// New создаёт контроллер с пустыми Input и Output Surface.
func New(theme presentation.Theme, ranges Ranges, speaker tts.Speaker, logger *zap.SugaredLogger) *Controller {
	c := &Controller{
		input:   &Surface{},
		output:  &Surface{},
		view:    presentation.New(theme),
		ranges:  ranges,
		speaker: speaker,
		logger:  logger,
	}
	c.handlers = c.dispatchTable()
	return c
}

// WithSurfaces подменяет поверхности; nil означает, что поверхность на странице не найдена.
func (c *Controller) WithSurfaces(input, output *Surface) *Controller {
	c.input, c.output = input, output
	return c
}

// Presentation возвращает текущее оформление.
func (c *Controller) Presentation() presentation.Config { return c.view }

// Output возвращает разметку Output Surface и признак её наличия.
func (c *Controller) Output() (string, bool) {
	if c.output == nil {
		return "", false
	}
	return c.output.Markup, true
}

// SetInput — правка Input Surface пользователем.
func (c *Controller) SetInput(markup string) {
	if c.input == nil {
		return
	}
	c.input.Markup = markup
}

// ToggleTheme переключает тему страницы light ↔ dark.
func (c *Controller) ToggleTheme() {
	c.view = c.view.ToggleTheme()
}

// SanitizeForOutput возвращает копию Input Surface без inline-стилей.
// Без Input или Output Surface возвращает "", false. Состояние не меняет.
func (c *Controller) SanitizeForOutput() (string, bool) {
	if c.input == nil || c.output == nil {
		return "", false
	}
	clean, err := sanitize.StripStyles(c.input.Markup)
	if err != nil {
		c.logger.Warnw("Не удалось очистить разметку", "error", err)
		return "", false
	}
	return clean, true
}

// ApplyFont заново копирует очищенный ввод в Output Surface и задаёт шрифт.
func (c *Controller) ApplyFont(font presentation.FontStack) {
	clean, ok := c.SanitizeForOutput()
	if !ok {
		return
	}
	c.output.Markup = clean
	c.view = c.view.WithFont(font)
}

// SetLetterSpacing задаёт межбуквенный интервал (px) без повторного копирования.
func (c *Controller) SetLetterSpacing(px float64) {
	if c.output == nil {
		return
	}
	c.view = c.view.WithLetterSpacing(px)
}

// SetLineHeight задаёт межстрочный интервал без повторного копирования.
func (c *Controller) SetLineHeight(m float64) {
	if c.output == nil {
		return
	}
	c.view = c.view.WithLineHeight(m)
}

// SpeechText выбирает текст для озвучивания: выделение внутри Output Surface,
// иначе весь текст Output Surface.
func (c *Controller) SpeechText(sel *Selection) string {
	if sel != nil && sel.InOutput && sel.Text != "" {
		return sel.Text
	}
	if c.output == nil {
		return ""
	}
	return sanitize.Text(c.output.Markup)
}

// Speak отправляет текст движку речи с rate=1, pitch=1. Пустой текст — ничего не делает.
// Возвращает true, если запрос был отправлен.
func (c *Controller) Speak(ctx context.Context, sel *Selection) (bool, error) {
	text := c.SpeechText(sel)
	// Выделение из одних пробелов не заменяется полным текстом: озвучивать нечего, запрос не уходит.
	if strings.TrimSpace(text) == "" {
		return false, nil
	}
	if err := c.speaker.Speak(ctx, tts.NewUtterance(text)); err != nil {
		return false, err
	}
	return true, nil
}

// View — то, что страница должна показать после события.
type View struct {
	OutputHTML string             `json:"html"`
	Style      string             `json:"style"`
	BodyClass  string             `json:"bodyClass"`
	Theme      presentation.Theme `json:"theme"`
	FontFamily string             `json:"fontFamily,omitempty"`
	// LetterSpacing/LineHeight — значения CSS-свойств; пусто, если не заданы
	LetterSpacing string `json:"letterSpacing,omitempty"`
	LineHeight    string `json:"lineHeight,omitempty"`
}

// Render — чистая функция отрисовки: разметка Output Surface плюс оформление.
func Render(markup string, cfg presentation.Config) View {
	return View{
		OutputHTML:    markup,
		Style:         cfg.Style(),
		BodyClass:     cfg.Theme().BodyClass(),
		Theme:         cfg.Theme(),
		FontFamily:    cfg.FontFamily(),
		LetterSpacing: cfg.LetterSpacingCSS(),
		LineHeight:    cfg.LineHeightCSS(),
	}
}

// View отрисовывает текущее состояние.
func (c *Controller) View() View {
	markup, _ := c.Output()
	return Render(markup, c.view)
}
