package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ludo_relay"

// Metrics holds the relay's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Rooms            prometheus.Gauge
	Connections      prometheus.Gauge
	Broadcasts       *prometheus.CounterVec
	Deliveries       prometheus.Counter
	DeliveryFailures prometheus.Counter
	Inbound          *prometheus.CounterVec
	RejectedInbound  *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Rooms with at least one member.",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Open client streams.",
		}),
		Broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Broadcast calls by event type.",
		}, []string{"event"}),
		Deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Per-recipient sends that were queued.",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "delivery_failures_total",
			Help:      "Per-recipient sends that failed and were dropped.",
		}),
		Inbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_messages_total",
			Help:      "Accepted client messages by type.",
		}, []string{"type"}),
		RejectedInbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_rejected_total",
			Help:      "Rejected client messages by error code.",
		}, []string{"code"}),
	}
	reg.MustRegister(
		m.Rooms,
		m.Connections,
		m.Broadcasts,
		m.Deliveries,
		m.DeliveryFailures,
		m.Inbound,
		m.RejectedInbound,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetOccupancy records the current number of rooms and connections.
func (m *Metrics) SetOccupancy(rooms, conns int) {
	if m == nil {
		return
	}
	m.Rooms.Set(float64(rooms))
	m.Connections.Set(float64(conns))
}

// ObserveBroadcast records one broadcast and its per-recipient outcome.
func (m *Metrics) ObserveBroadcast(event string, delivered, failed int) {
	if m == nil {
		return
	}
	m.Broadcasts.WithLabelValues(event).Inc()
	m.Deliveries.Add(float64(delivered))
	m.DeliveryFailures.Add(float64(failed))
}

// ObserveInbound counts an accepted client message.
func (m *Metrics) ObserveInbound(msgType string) {
	if m == nil {
		return
	}
	m.Inbound.WithLabelValues(msgType).Inc()
}

// ObserveRejected counts a client message that was refused.
func (m *Metrics) ObserveRejected(code string) {
	if m == nil {
		return
	}
	m.RejectedInbound.WithLabelValues(code).Inc()
}
