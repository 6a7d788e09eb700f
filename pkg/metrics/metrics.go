// Package metrics holds the Prometheus collectors of the API process.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skillswap"

type Metrics struct {
	registry *prometheus.Registry

	usersRegistered  prometheus.Counter
	requestsCreated  prometheus.Counter
	statusChanges    *prometheus.CounterVec
	messagesAppended prometheus.Counter
	notifications    *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New builds the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Number of successful registrations.",
		}),
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_requests_created_total",
			Help:      "Number of swap requests created.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swap_request_status_changes_total",
			Help:      "Number of status updates by new status.",
		}, []string{"status"}),
		messagesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_messages_appended_total",
			Help:      "Number of messages appended to swap requests.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_published_total",
			Help:      "Notification publish attempts by template and result.",
		}, []string{"template", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.usersRegistered,
		m.requestsCreated,
		m.statusChanges,
		m.messagesAppended,
		m.notifications,
		m.httpDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

func (m *Metrics) UserRegistered() {
	if m != nil {
		m.usersRegistered.Inc()
	}
}

func (m *Metrics) RequestCreated() {
	if m != nil {
		m.requestsCreated.Inc()
	}
}

func (m *Metrics) StatusChanged(status string) {
	if m != nil {
		m.statusChanges.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) MessageAppended() {
	if m != nil {
		m.messagesAppended.Inc()
	}
}

// NotificationPublished records one publish attempt; result is "ok" or "error".
func (m *Metrics) NotificationPublished(template, result string) {
	if m != nil {
		m.notifications.WithLabelValues(template, result).Inc()
	}
}

func (m *Metrics) ObserveHTTP(method, route, code string, seconds float64) {
	if m != nil {
		m.httpDuration.WithLabelValues(method, route, code).Observe(seconds)
	}
}
