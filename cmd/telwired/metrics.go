package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telwire/telwire/internal/event"
	"github.com/telwire/telwire/internal/telnet"
)

// Metrics holds Prometheus metric descriptors for the server.
type Metrics struct {
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	dataBytesTotal prometheus.Counter
}

// NewMetrics creates and registers the server's Prometheus metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "telwired_sessions_active",
			Help: "Number of currently connected sessions.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "telwired_sessions_total",
			Help: "Total sessions since server start.",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "telwired_events_total",
			Help: "Total events decoded from clients, by type.",
		}, []string{"type"}),
		dataBytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "telwired_data_bytes_total",
			Help: "Total data bytes decoded from clients.",
		}),
	}

	prometheus.MustRegister(
		m.sessionsActive,
		m.sessionsTotal,
		m.eventsTotal,
		m.dataBytesTotal,
	)

	return m
}

// Register subscribes m to every session event.
func (m *Metrics) Register(d event.Dispatcher) {
	d.Listen(eventData, m)
	d.Listen(eventCommand, m)
	d.Listen(eventNegotiation, m)
	d.Listen(eventSubnegotiation, m)
}

func (m *Metrics) Listen(_ context.Context, ev event.Event) error {
	switch t := ev.Data.(type) {
	case telnet.Data:
		m.eventsTotal.WithLabelValues("data").Inc()
		m.dataBytesTotal.Add(float64(len(t)))
	case telnet.Command:
		m.eventsTotal.WithLabelValues("command").Inc()
	case telnet.Negotiation:
		m.eventsTotal.WithLabelValues("negotiation").Inc()
	default:
		m.eventsTotal.WithLabelValues("subnegotiation").Inc()
	}
	return nil
}

// Handler returns the HTTP handler that serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
