// Package metrics holds the prometheus collectors for seeding and the HTTP API.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var latencyBuckets = []float64{
	0.001, 0.002, 0.005,
	0.01, 0.02, 0.05,
	0.1, 0.2, 0.5,
	1, 2, 5, 10, 30, 60, 120,
}

type collectors struct {
	seedRuns          *prometheus.CounterVec
	seedDuration      prometheus.Histogram
	employeesInserted prometheus.Counter
	batchesInserted   prometheus.Counter

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
}

var singleton = sync.OnceValue(func() *collectors {
	return &collectors{
		seedRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgtree",
			Subsystem: "seed",
			Name:      "runs_total",
			Help:      "Total number of seeding runs by result.",
		}, []string{"result"}),
		seedDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orgtree",
			Subsystem: "seed",
			Name:      "duration_seconds",
			Help:      "Wall time of committed seeding runs.",
			Buckets:   latencyBuckets,
		}),
		employeesInserted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "orgtree",
			Subsystem: "seed",
			Name:      "employees_inserted_total",
			Help:      "Employees written by the populator, including rolled back runs.",
		}),
		batchesInserted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "orgtree",
			Subsystem: "seed",
			Name:      "batches_inserted_total",
			Help:      "Employee batches written by the populator.",
		}),
		apiRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orgtree",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests broken down by route and status class.",
		}, []string{"route", "status"}),
		apiLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orgtree",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency distribution for API requests.",
			Buckets:   latencyBuckets,
		}, []string{"route"}),
	}
})

// Recorder is the seeding side of the collectors.
type Recorder struct{}

func NewRecorder() Recorder {
	singleton()
	return Recorder{}
}

func (Recorder) BatchInserted(size int) {
	c := singleton()
	c.batchesInserted.Inc()
	c.employeesInserted.Add(float64(size))
}

func (Recorder) SeedFinished(d time.Duration, err error) {
	c := singleton()
	if err != nil {
		c.seedRuns.WithLabelValues(ResultError).Inc()
		return
	}
	c.seedRuns.WithLabelValues(ResultSuccess).Inc()
	c.seedDuration.Observe(d.Seconds())
}

// SeedRuns returns the counter for one result label.
func SeedRuns(result string) prometheus.Counter {
	return singleton().seedRuns.WithLabelValues(result)
}

func EmployeesInserted() prometheus.Counter {
	return singleton().employeesInserted
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
