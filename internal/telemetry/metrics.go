// Package telemetry owns the Prometheus collectors exported at /metrics.
package telemetry

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	LabelRoute     = "route"
	LabelStatus    = "status"
	LabelOperation = "operation"
)

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EmployeesGenerated  prometheus.Counter
	EmployeesInserted   prometheus.Counter
	RateLimitedTotal    *prometheus.CounterVec
	StoreFailuresTotal  *prometheus.CounterVec
	BufferedWritesTotal prometheus.Counter
}

// New registers all collectors on a private registry. namespace is usually the app name.
func New(namespace string) *Metrics {
	namespace = sanitize(namespace)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Handled API requests by route and status code.",
		}, []string{LabelRoute, LabelStatus}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelRoute}),
		EmployeesGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employees_generated_total",
			Help:      "Synthetic employee records produced.",
		}),
		EmployeesInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "employees_inserted_total",
			Help:      "Employee records written to primary storage.",
		}),
		RateLimitedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Calls rejected by the rate limiter.",
		}, []string{LabelOperation}),
		StoreFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_failures_total",
			Help:      "Failed calls to backing stores.",
		}, []string{LabelOperation}),
		BufferedWritesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffered_writes_total",
			Help:      "Writes parked in the offline buffer.",
		}),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fasthttp.RequestHandler {
	if m == nil {
		return func(ctx *fasthttp.RequestCtx) { ctx.SetStatusCode(fasthttp.StatusNotFound) }
	}
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) AddGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EmployeesGenerated.Add(float64(n))
}

func (m *Metrics) AddInserted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EmployeesInserted.Add(float64(n))
}

func (m *Metrics) RateLimited(operation string) {
	if m == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) StoreFailure(operation string) {
	if m == nil {
		return
	}
	m.StoreFailuresTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) Buffered() {
	if m == nil {
		return
	}
	m.BufferedWritesTotal.Inc()
}

func sanitize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, name)
}
