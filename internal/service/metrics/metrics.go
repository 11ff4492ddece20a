package metrics

import (
	"DyslexiaHelper/internal/app/controller"
	"DyslexiaHelper/internal/service/tts"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — счётчики событий страницы и серверной очереди речи.
type Metrics struct {
	reg        *prometheus.Registry
	events     *prometheus.CounterVec
	speech     *prometheus.CounterVec
	queueDepth prometheus.Gauge
	// controls — допустимые значения метки control; остальные сводятся к "unknown"
	controls map[string]struct{}
}

var _ tts.Observer = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reader_control_events_total",
				Help: "Control events dispatched, by control and result",
			},
			[]string{"control", "result"},
		),
		speech: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reader_speech_requests_total",
				Help: "Backend speech requests, by outcome",
			},
			[]string{"outcome"},
		),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reader_speech_queue_depth",
			Help: "Utterances waiting in the backend speech queue",
		}),
	}
	m.reg.MustRegister(m.events, m.speech, m.queueDepth)
	m.controls = make(map[string]struct{}, len(controller.Controls()))
	for _, c := range controller.Controls() {
		m.controls[string(c)] = struct{}{}
	}
	return m
}

// Event учитывает обработанное событие элемента управления.
func (m *Metrics) Event(control string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	if _, ok := m.controls[control]; !ok {
		control = "unknown"
	}
	m.events.WithLabelValues(control, result).Inc()
}

func (m *Metrics) Enqueued(depth int) {
	m.speech.WithLabelValues("queued").Inc()
	m.queueDepth.Set(float64(depth))
}

func (m *Metrics) Dequeued(depth int) { m.queueDepth.Set(float64(depth)) }

func (m *Metrics) Dropped() { m.speech.WithLabelValues("dropped").Inc() }

func (m *Metrics) Spoken(err error) {
	if err != nil {
		m.speech.WithLabelValues("failed").Inc()
	} else {
		m.speech.WithLabelValues("spoken").Inc()
	}
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
