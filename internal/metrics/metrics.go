// Package metrics provides Prometheus metrics for the portal server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduplatform_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eduplatform_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Resource metrics
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduplatform_uploads_total",
			Help: "Uploads handed to the resource store, by kind and descriptor variant",
		},
		[]string{"kind", "variant", "status"},
	)

	folderTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduplatform_folder_toggles_total",
			Help: "Folder expand/collapse actions",
		},
		[]string{"kind"},
	)

	opensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduplatform_opens_total",
			Help: "Open actions, by what was opened",
		},
		[]string{"kind", "target"},
	)

	foldersStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eduplatform_folders_stored",
			Help: "Number of folders in the resource store",
		},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "eduplatform_sessions_active",
			Help: "Number of live browser sessions",
		},
	)
)

// Open target labels
const (
	TargetReference = "reference"
	TargetLink      = "link"
	TargetPath      = "path"
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUpload records an upload handed to the store.
func RecordUpload(kind, variant string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	uploadsTotal.WithLabelValues(kind, variant, status).Inc()
}

// RecordToggle records a folder expand/collapse.
func RecordToggle(kind string) {
	folderTogglesTotal.WithLabelValues(kind).Inc()
}

// RecordOpen records an open action.
func RecordOpen(kind, target string) {
	opensTotal.WithLabelValues(kind, target).Inc()
}

// SetFoldersStored sets the stored folder gauge.
func SetFoldersStored(count int) {
	foldersStored.Set(float64(count))
}

// SetSessionsActive sets the live session gauge.
func SetSessionsActive(count int) {
	sessionsActive.Set(float64(count))
}

// Middleware returns HTTP middleware that records request metrics. Requests
// are labelled with the chi route pattern to keep label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordHTTPRequest(r.Method, route, status, time.Since(start))
	})
}
