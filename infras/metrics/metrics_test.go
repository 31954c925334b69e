package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandler(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Namespace = "test"

	m := metrics.New(cfg)
	m.ObserveHTTP("/v1/availability/rooms", http.MethodGet, http.StatusOK, 12*time.Millisecond)
	m.ObserveCache("redis", metrics.CacheEventHit)
	m.ObserveReservation(metrics.ReservationEventCreated)
	m.ObserveAvailability("rooms", 3, time.Millisecond)
	m.ObserveEvent("reservations", "reservation.created")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)

	out := string(body)
	for _, name := range []string{
		"test_http_requests_total",
		"test_cache_events_total",
		"test_reservations_total",
		"test_availability_results",
		"test_reservation_events_total",
	} {
		assert.True(t, strings.Contains(out, name), "expected %s in output", name)
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(&config.Config{})
		metrics.New(&config.Config{})
	})
}
