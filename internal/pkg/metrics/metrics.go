package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chat outcomes
const (
	OutcomeRelay          = "relay"
	OutcomeRecommendation = "recommendation"
	OutcomeEmpty          = "empty"
	OutcomeUpstreamError  = "upstream_error"
)

// Metrics holds the Prometheus collectors of the keuzehulp service
type Metrics struct {
	registry *prometheus.Registry

	ChatRequestsTotal    *prometheus.CounterVec
	RelayDuration        prometheus.Histogram
	RelaxationLevelTotal *prometheus.CounterVec
	SessionsResetTotal   prometheus.Counter
	LoginAttemptsTotal   *prometheus.CounterVec
	CatalogProducts      prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ChatRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keuzehulp_chat_requests_total",
				Help: "Chat requests by outcome",
			},
			[]string{"outcome"},
		),
		RelayDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "keuzehulp_relay_duration_seconds",
				Help:    "Duration of completion relay calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		RelaxationLevelTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keuzehulp_recommendation_relaxation_total",
				Help: "Catalog recommendations by number of relaxed filters",
			},
			[]string{"level", "fallback"},
		),
		SessionsResetTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "keuzehulp_sessions_reset_total",
				Help: "Total number of sessions reset to the system turn",
			},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keuzehulp_login_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		CatalogProducts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "keuzehulp_catalog_products",
				Help: "Number of products loaded from the catalog",
			},
		),
	}

	m.registry.MustRegister(
		m.ChatRequestsTotal,
		m.RelayDuration,
		m.RelaxationLevelTotal,
		m.SessionsResetTotal,
		m.LoginAttemptsTotal,
		m.CatalogProducts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveChat(outcome string) {
	m.ChatRequestsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRecommendation(level int, fallback bool) {
	m.RelaxationLevelTotal.WithLabelValues(strconv.Itoa(level), strconv.FormatBool(fallback)).Inc()
}

func (m *Metrics) ObserveLogin(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
