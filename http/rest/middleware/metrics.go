package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records request-level measures of the API.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewMetrics returns a middleware that gathers requests metrics.
func NewMetrics() Metrics {
	const ns, sub = "pinpoint", "http"
	return Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "requests_total",
			Help:      "Total number of requests received",
		}, []string{"method", "code"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "request_duration_seconds",
			Help:      "Time spent handling a request",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		inFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "requests_in_flight",
			Help:      "Number of requests currently being served",
		}),
	}
}

// Scrap gathers the request's method, status code and duration.
func (m Metrics) Scrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.inFlight.Inc()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		m.inFlight.Dec()
		m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(sw.status())).Inc()
	})
}

// statusWriter captures the status code written to the response.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) status() int {
	if w.code == 0 {
		return http.StatusOK
	}
	return w.code
}
