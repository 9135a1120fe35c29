package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы расчёта для compat_calculations_total.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeUpstream   = "upstream_error"
	OutcomeEnvelope   = "envelope_error"
	OutcomeExtraction = "extraction_error"
)

type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	upstream     *prometheus.HistogramVec
}

// New регистрирует метрики на собственном реестре, чтобы тесты
// могли создавать сколько угодно экземпляров.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "compat_calculations_total",
			Help: "Compatibility calculations by outcome.",
		}, []string{"outcome"}),
		upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compat_upstream_duration_seconds",
			Help:    "Latency of the completion API call.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"engine"}),
	}
	reg.MustRegister(
		m.calculations,
		m.upstream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Calculation(outcome string) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstream(engine string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstream.WithLabelValues(engine).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
