package web

import (
	"github.com/prometheus/client_golang/prometheus"

	"skupick/internal/sku"
)

type metrics struct {
	togglesTotal    *prometheus.CounterVec
	outcomesTotal   *prometheus.CounterVec
	bindErrorsTotal prometheus.Counter
	sessionsActive  prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		togglesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skupick_toggles_total",
				Help: "Number of value toggles by outcome.",
			},
			[]string{"outcome"},
		),
		outcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skupick_listener_notifications_total",
				Help: "Number of listener notifications by callback.",
			},
			[]string{"callback"},
		),
		bindErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "skupick_bind_errors_total",
				Help: "Number of catalogs rejected on bind.",
			},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "skupick_sessions_active",
				Help: "Number of picker sessions held in memory.",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skupick_http_request_duration_seconds",
				Help:    "Time taken to serve API requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(
		m.togglesTotal,
		m.outcomesTotal,
		m.bindErrorsTotal,
		m.sessionsActive,
		m.requestDuration,
	)
	return m
}

// listener counts every notification a session's selector fires.
func (m *metrics) listener() sku.Listener {
	return sku.ListenerFuncs{
		Resolved:        func(sku.Variant) { m.outcomesTotal.WithLabelValues("resolved").Inc() },
		Unresolved:      func() { m.outcomesTotal.WithLabelValues("unresolved").Inc() },
		PartialSelect:   func(sku.Attribute) { m.outcomesTotal.WithLabelValues("partial_select").Inc() },
		PartialUnselect: func(sku.Attribute) { m.outcomesTotal.WithLabelValues("partial_unselect").Inc() },
	}
}
