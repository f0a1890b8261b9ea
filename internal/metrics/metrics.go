package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	satellitesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitviz_satellites_loaded",
			Help: "Number of satellites parsed from the element source.",
		},
	)

	propagationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitviz_propagation_duration_seconds",
			Help:    "Wall time spent propagating the whole constellation.",
			Buckets: prometheus.DefBuckets,
		},
	)

	propagationResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitviz_propagation_results_total",
			Help: "Per-satellite propagation outcomes.",
		},
		[]string{"result"},
	)

	exportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orbitviz_export_duration_seconds",
			Help:    "Wall time spent producing each export artifact kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"artifact"},
	)

	framesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitviz_frames_rendered_total",
			Help: "Total raster frames written.",
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitviz_http_requests_total",
			Help: "Total number of HTTP requests served by the preview server.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orbitviz_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(satellitesLoaded)
	prometheus.MustRegister(propagationDuration)
	prometheus.MustRegister(propagationResults)
	prometheus.MustRegister(exportDuration)
	prometheus.MustRegister(framesRendered)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// SetSatelliteCount records how many satellites the parser accepted.
func SetSatelliteCount(n int) {
	satellitesLoaded.Set(float64(n))
}

// RecordPropagation records one constellation propagation run.
func RecordPropagation(d time.Duration, succeeded, failed int) {
	propagationDuration.Observe(d.Seconds())
	propagationResults.WithLabelValues("ok").Add(float64(succeeded))
	propagationResults.WithLabelValues("error").Add(float64(failed))
}

// RecordExport records the duration of producing one artifact kind
// ("static", "frames", "html").
func RecordExport(artifact string, d time.Duration) {
	exportDuration.WithLabelValues(artifact).Observe(d.Seconds())
}

// AddFramesRendered counts raster frames written to disk.
func AddFramesRendered(n int) {
	framesRendered.Add(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// normalizeRoute collapses served asset paths into a fixed label set so
// scraped label cardinality stays bounded no matter what clients request.
func normalizeRoute(path string) string {
	switch path {
	case "/", "/healthz", "/readyz", "/metrics", "/orbits.html":
		return path
	}
	if strings.HasPrefix(path, "/frames/") {
		return "/frames/{frame}"
	}
	if strings.HasPrefix(path, "/static_") && strings.HasSuffix(path, ".png") {
		return "/static_{view}.png"
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		route := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
