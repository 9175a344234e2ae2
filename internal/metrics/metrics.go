package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	// HTTP request metrics
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests",
		},
		[]string{"service", "method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	// Business metrics
	StudentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "students_created_total",
			Help: "Total number of students created",
		},
	)

	StudentsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "students_deleted_total",
			Help: "Total number of student delete requests served",
		},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StudentsCreated,
		StudentsDeleted,
		LoginAttempts,
	)
}

// StartMetricsServer serves /metrics on its own port
func StartMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			logrus.Fatalf("failed to start metrics server: %v", err)
		}
	}()
}

// RecordRequest records one served request; route is the matched route pattern
func RecordRequest(service, method, route, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(service, method, route, status).Inc()
	RequestDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
}
