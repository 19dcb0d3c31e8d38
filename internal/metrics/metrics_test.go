package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecorderOrderCounters(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.OrderCompleted(decimal.RequireFromString("999.99"), 10*time.Millisecond)
	r.OrderCompleted(decimal.RequireFromString("0.01"), 5*time.Millisecond)
	r.OrderRejected(StatusInsufficientStock)
	r.OrderRejected(StatusInsufficientStock)
	r.OrderRejected(StatusPaymentFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ordersTotal.WithLabelValues(StatusCompleted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ordersTotal.WithLabelValues(StatusInsufficientStock)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ordersTotal.WithLabelValues(StatusPaymentFailed)))
	assert.InDelta(t, 1000.0, testutil.ToFloat64(r.orderValue), 0.001)
}

func TestRecorderIsolatedRegistries(t *testing.T) {
	// Two recorders on separate registries must not clash on registration.
	a := NewRecorder(prometheus.NewRegistry())
	b := NewRecorder(prometheus.NewRegistry())

	a.OrderRejected(StatusUserNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ordersTotal.WithLabelValues(StatusUserNotFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ordersTotal.WithLabelValues(StatusUserNotFound)))
}
