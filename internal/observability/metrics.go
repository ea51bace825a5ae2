package observability

import (
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

// Metrics is nil-safe: every method is a no-op on a nil receiver, so callers
// never branch on METRICS_ENABLED.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	interactions *prometheus.CounterVec
	matches      prometheus.Counter
	messages     prometheus.Counter
	payments     *prometheus.CounterVec
	revenue      *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec

	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("METRICS_ENABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide Metrics when METRICS_ENABLED is set.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("Prometheus metrics enabled")
		}
	})
	return instance
}

// NewMetrics builds a Metrics backed by its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dh_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dh_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dh_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dh_interactions_total",
			Help: "Recorded interactions by action.",
		}, []string{"action"}),
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dh_matches_created_total",
			Help: "Matches created.",
		}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dh_messages_sent_total",
			Help: "Messages sent.",
		}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dh_payments_completed_total",
			Help: "Completed payments by type.",
		}, []string{"payment_type"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dh_payments_amount_total",
			Help: "Completed payment amount by type.",
		}, []string{"payment_type"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dh_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by class.",
		}, []string{"class"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dh_job_runs_total",
			Help: "Job executions by type/status.",
		}, []string{"job_type", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dh_job_duration_seconds",
			Help:    "Job execution time in seconds by type/status.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"job_type", "status"}),
	}
	reg.MustRegister(
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.interactions, m.matches, m.messages, m.payments, m.revenue, m.rateLimited,
		m.jobRuns, m.jobDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAPI(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func (m *Metrics) InteractionRecorded(action string) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(action).Inc()
}

func (m *Metrics) MatchesCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.matches.Add(float64(n))
}

func (m *Metrics) MessageSent() {
	if m == nil {
		return
	}
	m.messages.Inc()
}

func (m *Metrics) PaymentCompleted(paymentType string, amount float64) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(paymentType).Inc()
	if amount > 0 {
		m.revenue.WithLabelValues(paymentType).Add(amount)
	}
}

func (m *Metrics) RateLimited(class string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(class).Inc()
}

func (m *Metrics) ObserveJob(jobType, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(jobType, status).Inc()
	m.jobDuration.WithLabelValues(jobType, status).Observe(d.Seconds())
}
