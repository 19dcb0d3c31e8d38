// Package metrics records order and HTTP metrics. It is a side-effect sink:
// nothing here influences control flow.
package metrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Terminal status labels for the orders_total counter.
const (
	StatusCompleted            = "completed"
	StatusInvalidRequest       = "invalid_request"
	StatusProductNotFound      = "product_not_found"
	StatusInsufficientStock    = "insufficient_stock"
	StatusUserNotFound         = "user_not_found"
	StatusUserLookupFailed     = "user_lookup_failed"
	StatusInsufficientBalance  = "insufficient_balance"
	StatusPaymentFailed        = "payment_failed"
	StatusStockDecrementFailed = "stock_decrement_failed"
)

// Recorder owns the service's Prometheus collectors. It registers against the
// registry it is given, so tests run on a fresh prometheus.NewRegistry().
type Recorder struct {
	reg *prometheus.Registry

	ordersTotal  *prometheus.CounterVec
	orderValue   prometheus.Counter
	placementDur prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder and registers its collectors on reg.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		ordersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_total",
				Help: "Total number of order placements by terminal status",
			},
			[]string{"status"},
		),
		orderValue: f.NewCounter(
			prometheus.CounterOpts{
				Name: "order_value_total",
				Help: "Sum of successful order totals",
			},
		),
		placementDur: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_placement_duration_seconds",
				Help:    "Duration of successful order placements in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_ms",
				Help:    "Duration of HTTP requests in ms",
				Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
			},
			[]string{"method", "path"},
		),
	}
}

// OrderCompleted counts a successful placement, adds its total to the value
// counter, and observes how long the pipeline took.
func (r *Recorder) OrderCompleted(total decimal.Decimal, elapsed time.Duration) {
	r.ordersTotal.WithLabelValues(StatusCompleted).Inc()
	v, _ := total.Float64()
	r.orderValue.Add(v)
	r.placementDur.Observe(elapsed.Seconds())
}

// OrderRejected counts a placement that terminated with the given status.
func (r *Recorder) OrderRejected(status string) {
	r.ordersTotal.WithLabelValues(status).Inc()
}

// Handler exposes the recorder's registry in Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Middleware records per-request counters and latency.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := float64(time.Since(start).Milliseconds())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		r.httpRequests.WithLabelValues(c.Request.Method, path,
			http.StatusText(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
