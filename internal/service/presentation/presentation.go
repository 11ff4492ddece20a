package presentation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Theme — тема страницы. Ровно одна из light/dark активна в любой момент.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrUnknownTheme = errors.New("presentation: unknown theme")

// ParseTheme принимает light|dark, а также имена классов light-mode|dark-mode.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "light-mode":
		return ThemeLight, nil
	case "dark", "dark-mode":
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Toggle возвращает противоположную тему. Двойной вызов возвращает исходную.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// BodyClass — CSS-класс, который страница вешает на body.
func (t Theme) BodyClass() string { return string(t) + "-mode" }

// FontStack — фиксированный стек шрифтов для Output Surface.
type FontStack string

const (
	FontLexend       FontStack = "Lexend, sans-serif"
	FontOpenDyslexic FontStack = "OpenDyslexic, OpenDyslexicRegular, sans-serif"
)

var ErrUnknownFont = errors.New("presentation: unknown font")

// ParseFont сопоставляет имя шрифта (или полный стек) с одним из поддерживаемых стеков.
func ParseFont(s string) (FontStack, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lexend", strings.ToLower(string(FontLexend)):
		return FontLexend, nil
	case "opendyslexic", "opendys", strings.ToLower(string(FontOpenDyslexic)):
		return FontOpenDyslexic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFont, s)
}

// Range — домен значений слайдера.
type Range struct {
	Min float64
	Max float64
}

// Clamp прижимает значение к границам диапазона.
func (r Range) Clamp(v float64) float64 {
	return max(r.Min, min(r.Max, v))
}

type optional struct {
	v  float64
	ok bool
}

// Config — неизменяемое описание оформления Output Surface и темы страницы.
// Все With* методы возвращают копию.
type Config struct {
	theme         Theme
	font          FontStack
	letterSpacing optional
	lineHeight    optional
}

// New создаёт оформление с заданной темой; шрифт и интервалы не заданы.
func New(theme Theme) Config {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return Config{theme: theme}
}

func (c Config) Theme() Theme    { return c.theme }
func (c Config) Font() FontStack { return c.font }

func (c Config) LetterSpacing() (float64, bool) { return c.letterSpacing.v, c.letterSpacing.ok }
func (c Config) LineHeight() (float64, bool)    { return c.lineHeight.v, c.lineHeight.ok }

func (c Config) WithTheme(t Theme) Config {
	c.theme = t
	return c
}

func (c Config) ToggleTheme() Config {
	c.theme = c.theme.Toggle()
	return c
}

func (c Config) WithFont(f FontStack) Config {
	c.font = f
	return c
}

// WithLetterSpacing задаёт межбуквенный интервал в пикселях.
func (c Config) WithLetterSpacing(px float64) Config {
	c.letterSpacing = optional{v: px, ok: true}
	return c
}

// WithLineHeight задаёт межстрочный интервал как безразмерный множитель.
func (c Config) WithLineHeight(m float64) Config {
	c.lineHeight = optional{v: m, ok: true}
	return c
}

func (c Config) FontFamily() string { return string(c.font) }

// LetterSpacingCSS возвращает значение letter-spacing вида "2px" или пустую строку.
func (c Config) LetterSpacingCSS() string {
	if !c.letterSpacing.ok {
		return ""
	}
	return formatNumber(c.letterSpacing.v) + "px"
}

// LineHeightCSS возвращает безразмерное значение line-height или пустую строку.
func (c Config) LineHeightCSS() string {
	if !c.lineHeight.ok {
		return ""
	}
	return formatNumber(c.lineHeight.v)
}

// Style собирает inline-стиль Output Surface из заданных свойств.
func (c Config) Style() string {
	decls := make([]string, 0, 3)
	if c.font != "" {
		decls = append(decls, "font-family: "+c.FontFamily())
	}
	if v := c.LetterSpacingCSS(); v != "" {
		decls = append(decls, "letter-spacing: "+v)
	}
	if v := c.LineHeightCSS(); v != "" {
		decls = append(decls, "line-height: "+v)
	}
	return strings.Join(decls, "; ")
}

// formatNumber печатает число так же, как его отдаёт value у слайдера: 2, 1.5, 0.25.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
