package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/localhy/credit-ledger/internal/domain/port/core"
)

// Prometheus implements core.Metrics on a dedicated registry
type Prometheus struct {
	registry *prometheus.Registry

	mutations        *prometheus.CounterVec
	mutationDuration *prometheus.HistogramVec
	webhooks         *prometheus.CounterVec
	paidActions      *prometheus.CounterVec
	feedDropped      *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec

	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbWaitCount       prometheus.Gauge
}

var _ core.Metrics = (*Prometheus)(nil)

// NewPrometheus creates and registers all collectors
func NewPrometheus(namespace string) *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "credit_mutations_total",
				Help:      "Total number of credit mutations by reason and outcome",
			},
			[]string{"reason", "outcome"},
		),
		mutationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "credit_mutation_duration_seconds",
				Help:      "Duration of credit mutations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"reason"},
		),
		webhooks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_webhooks_total",
				Help:      "Payment webhook deliveries by provider and final state",
			},
			[]string{"provider", "state"},
		),
		paidActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "paid_action_confirmations_total",
				Help:      "Paid action confirmations by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		feedDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "change_feed_dropped_total",
				Help:      "Change-feed events dropped for slow subscribers",
			},
			[]string{"type"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Open connections in the database pool",
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use",
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),
	}

	p.registry.MustRegister(
		p.mutations, p.mutationDuration, p.webhooks, p.paidActions, p.feedDropped,
		p.httpRequests, p.httpDuration,
		p.dbOpenConnections, p.dbInUse, p.dbWaitCount,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return p
}

// ObserveMutation records one mutator call
func (p *Prometheus) ObserveMutation(reason string, outcome string, elapsed core.Duration) {
	p.mutations.WithLabelValues(reason, outcome).Inc()
	p.mutationDuration.WithLabelValues(reason).Observe(elapsed.Std().Seconds())
}

// IncWebhook counts a webhook delivery
func (p *Prometheus) IncWebhook(provider string, state string) {
	p.webhooks.WithLabelValues(provider, state).Inc()
}

// IncPaidAction counts a paid-action confirmation
func (p *Prometheus) IncPaidAction(action string, outcome string) {
	p.paidActions.WithLabelValues(action, outcome).Inc()
}

// IncFeedDropped counts a dropped change-feed event
func (p *Prometheus) IncFeedDropped(eventType string) {
	p.feedDropped.WithLabelValues(eventType).Inc()
}

// SetPoolStats publishes database pool statistics
func (p *Prometheus) SetPoolStats(open, inUse int, waitCount int64) {
	p.dbOpenConnections.Set(float64(open))
	p.dbInUse.Set(float64(inUse))
	p.dbWaitCount.Set(float64(waitCount))
}

// Handler serves the registry in the Prometheus text format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// GinMiddleware records request counts and latency per route template
func (p *Prometheus) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		p.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		p.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
