package metrics

//go:generate go run go.uber.org/mock/mockgen -source=./metrics.go -destination=./mocks/metrics_mock.go -package=mocks

import (
	"net/http"
	"strconv"
	"time"

	"hotelbooking/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	CacheEventHit   = "hit"
	CacheEventMiss  = "miss"
	CacheEventSet   = "set"
	CacheEventDel   = "del"
	CacheEventClear = "clear"

	ReservationEventCreated   = "created"
	ReservationEventCancelled = "cancelled"
	ReservationEventConfirmed = "confirmed"
	ReservationEventConflict  = "conflict"
	ReservationEventFailed    = "failed"
)

type Metrics interface {
	ObserveHTTP(route, method string, status int, duration time.Duration)
	ObserveCache(cache, event string)
	ObserveReservation(event string)
	ObserveAvailability(kind string, results int, duration time.Duration)
	ObserveEvent(topic, eventType string)
	Handler() http.Handler
}

type metricsImpl struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpLatency         *prometheus.HistogramVec
	cacheEvents         *prometheus.CounterVec
	reservations        *prometheus.CounterVec
	availabilityResults *prometheus.HistogramVec
	availabilityLatency *prometheus.HistogramVec
	events              *prometheus.CounterVec
}

// New builds its own registry so several instances can coexist in one process.
func New(cfg *config.Config) Metrics {
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = "hotelbooking"
	}

	m := &metricsImpl{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
			[]string{"cache", "event"},
		),
		reservations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "reservations_total", Help: "Reservation write outcomes."},
			[]string{"event"},
		),
		availabilityResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "availability_results",
				Help:    "Number of results returned by availability searches.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
			[]string{"kind"},
		),
		availabilityLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "availability_duration_seconds",
				Help:    "Availability search duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "reservation_events_total", Help: "Reservation events consumed."},
			[]string{"topic", "type"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.cacheEvents,
		m.reservations,
		m.availabilityResults,
		m.availabilityLatency,
		m.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *metricsImpl) ObserveHTTP(route, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *metricsImpl) ObserveCache(cache, event string) {
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *metricsImpl) ObserveReservation(event string) {
	m.reservations.WithLabelValues(event).Inc()
}

func (m *metricsImpl) ObserveAvailability(kind string, results int, duration time.Duration) {
	m.availabilityResults.WithLabelValues(kind).Observe(float64(results))
	m.availabilityLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *metricsImpl) ObserveEvent(topic, eventType string) {
	m.events.WithLabelValues(topic, eventType).Inc()
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
