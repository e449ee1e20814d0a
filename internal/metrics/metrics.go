// Package metrics provides prometheus instrumentation for the auth
// service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for the auth counters.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeDuplicate  = "duplicate"
	OutcomeRejected   = "rejected"
	OutcomeError      = "error"
)

// Metrics holds the service collectors.
type Metrics struct {
	SignupAttempts  *prometheus.CounterVec
	SigninAttempts  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on the given registerer. Tests pass a
// fresh registry to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignupAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_signup_attempts_total",
			Help: "Signup attempts by outcome.",
		}, []string{"outcome"}),
		SigninAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_signin_attempts_total",
			Help: "Signin attempts by outcome.",
		}, []string{"outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route, method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
	}
}

// Middleware records request durations per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
