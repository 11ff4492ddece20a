package controller

import (
	"DyslexiaHelper/internal/service/presentation"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Control — идентификатор элемента управления на странице.
type Control string

const (
	ControlModeToggle    Control = "mode-toggle"
	ControlInput         Control = "input"
	ControlLexend        Control = "lexend-btn"
	ControlOpenDyslexic  Control = "opendys-btn"
	ControlLetterSpacing Control = "letter-space"
	ControlLineHeight    Control = "line-space"
	ControlSpeak         Control = "speak-btn"
)

var (
	ErrUnknownControl = errors.New("controller: unknown control")
	ErrInvalidValue   = errors.New("controller: invalid control value")
)

// Event — действие пользователя над элементом управления.
type Event struct {
	Control   Control    `json:"control"`
	Value     string     `json:"value,omitempty"`
	Selection *Selection `json:"selection,omitempty"`
}

type handler func(ctx context.Context, ev Event) error

// Controls перечисляет поддерживаемые элементы управления.
func Controls() []Control {
	return []Control{
		ControlModeToggle, ControlInput, ControlLexend, ControlOpenDyslexic,
		ControlLetterSpacing, ControlLineHeight, ControlSpeak,
	}
}

func (c *Controller) dispatchTable() map[Control]handler {
	return map[Control]handler{
		ControlModeToggle: func(context.Context, Event) error {
			c.ToggleTheme()
			return nil
		},
		ControlInput: func(_ context.Context, ev Event) error {
			c.SetInput(ev.Value)
			return nil
		},
		ControlLexend: func(context.Context, Event) error {
			c.ApplyFont(presentation.FontLexend)
			return nil
		},
		ControlOpenDyslexic: func(context.Context, Event) error {
			c.ApplyFont(presentation.FontOpenDyslexic)
			return nil
		},
		ControlLetterSpacing: func(_ context.Context, ev Event) error {
			v, err := parseSlider(ev.Value)
			if err != nil {
				return err
			}
			c.SetLetterSpacing(c.ranges.LetterSpacing.Clamp(v))
			return nil
		},
		ControlLineHeight: func(_ context.Context, ev Event) error {
			v, err := parseSlider(ev.Value)
			if err != nil {
				return err
			}
			c.SetLineHeight(c.ranges.LineHeight.Clamp(v))
			return nil
		},
		ControlSpeak: func(ctx context.Context, ev Event) error {
			_, err := c.Speak(ctx, ev.Selection)
			return err
		},
	}
}

// Dispatch вызывает обработчик элемента управления и возвращает новое состояние страницы.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (View, error) {
	h, ok := c.handlers[ev.Control]
	if !ok {
		return c.View(), fmt.Errorf("%w: %q", ErrUnknownControl, ev.Control)
	}
	if err := h(ctx, ev); err != nil {
		return c.View(), err
	}
	return c.View(), nil
}

func parseSlider(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	return v, nil
}
