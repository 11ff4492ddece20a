package tts

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

var ErrQueueFull = errors.New("tts: queue full")

// Observer получает события очереди (метрики). Может быть nil.
// depth — длина очереди сразу после события; глубину сообщает только очередь.
type Observer interface {
	Enqueued(depth int)
	Dequeued(depth int)
	Dropped()
	Spoken(err error)
}

// Queue — серверная очередь речи фиксированной ёмкости с одним воркером.
// Speak не блокируется: при переполнении возвращает ErrQueueFull.
type Queue struct {
	ch      chan Utterance
	synth   Synthesizer
	logger  *zap.SugaredLogger
	obs     Observer
	running atomic.Bool
}

func NewQueue(synth Synthesizer, capacity int, logger *zap.SugaredLogger) *Queue {
	if capacity <= 0 {
		capacity = 10
	}
	return &Queue{ch: make(chan Utterance, capacity), synth: synth, logger: logger}
}

// WithObserver подключает наблюдателя. Вызывать до Run.
func (q *Queue) WithObserver(o Observer) *Queue {
	q.obs = o
	return q
}

// Speak ставит запрос в очередь.
func (q *Queue) Speak(ctx context.Context, u Utterance) error {
	u.Text = strings.TrimSpace(u.Text)
	if u.Text == "" {
		return ErrEmptyText
	}
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	default:
	}
	select {
	case q.ch <- u:
		if q.obs != nil {
			q.obs.Enqueued(len(q.ch))
		}
		return nil
	default:
		if q.obs != nil {
			q.obs.Dropped()
		}
		return ErrQueueFull
	}
}

func (q *Queue) Len() int { return len(q.ch) }
func (q *Queue) Cap() int { return cap(q.ch) }

// Run озвучивает запросы по порядку до отмены контекста.
// Ошибка синтеза логируется, воркер продолжает работу.
func (q *Queue) Run(ctx context.Context) error {
	if !q.running.CompareAndSwap(false, true) {
		return errors.New("tts: queue already running")
	}
	defer q.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case u := <-q.ch:
			if q.obs != nil {
				q.obs.Dequeued(len(q.ch))
			}
			err := q.synth.Synthesize(ctx, u)
			if err != nil {
				q.logger.Errorw("TTS error", "error", err, "chars", len(u.Text))
			}
			if q.obs != nil {
				q.obs.Spoken(err)
			}
		}
	}
}
