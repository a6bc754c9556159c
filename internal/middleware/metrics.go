package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	chatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mark_chat_requests_total",
		Help: "Total number of chat requests handled",
	}, []string{"intent", "source"})

	chatRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mark_chat_request_duration_seconds",
		Help:    "Duration of chat request handling",
		Buckets: prometheus.DefBuckets,
	}, []string{"intent"})

	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mark_provider_requests_total",
		Help: "Total number of upstream provider calls",
	}, []string{"provider", "status"})

	providerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mark_provider_request_duration_seconds",
		Help:    "Duration of upstream provider calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mark_cache_hits_total",
		Help: "Total number of provider cache hits",
	}, []string{"kind"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mark_active_sessions",
		Help: "Number of known user sessions",
	})
)

// Metrics provides methods to record metrics
type Metrics struct{}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordChatRequest records one handled chat request
func (m *Metrics) RecordChatRequest(intent, source string, duration time.Duration) {
	chatRequests.WithLabelValues(intent, source).Inc()
	chatRequestDuration.WithLabelValues(intent).Observe(duration.Seconds())
}

// RecordProviderRequest records one upstream provider call
func (m *Metrics) RecordProviderRequest(provider, status string, duration time.Duration) {
	providerRequests.WithLabelValues(provider, status).Inc()
	providerRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCacheHit records a provider cache hit
func (m *Metrics) RecordCacheHit(kind string) {
	cacheHits.WithLabelValues(kind).Inc()
}

// SetActiveSessions sets the session gauge
func (m *Metrics) SetActiveSessions(count float64) {
	activeSessions.Set(count)
}

// StartMetricsServer starts the metrics HTTP server
func StartMetricsServer(port int, path string) error {
	router := mux.NewRouter()
	router.Handle(path, promhttp.Handler())

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
