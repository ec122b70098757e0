package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Instrument counts requests to route by status class and observes latency.
func Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	c := singleton()
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		c.apiRequests.WithLabelValues(route, strconv.Itoa(rec.status/100)+"xx").Inc()
		c.apiLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Requests returns the request counter for a route and status class such as "2xx".
func Requests(route, class string) prometheus.Counter {
	return singleton().apiRequests.WithLabelValues(route, class)
}
