package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcomes.
const (
	OutcomeSubmitted          = "submitted"
	OutcomeAllocationFailed   = "allocation_failed"
	OutcomePartiallySubmitted = "partially_submitted"
	OutcomeFailed             = "failed"
)

// CheckoutMetrics records order submission and discount code activity.
type CheckoutMetrics struct {
	submitDuration *prometheus.HistogramVec
	submissions    *prometheus.CounterVec
	discounts      *prometheus.CounterVec
	orderNumbers   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	submitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submissions_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	discounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_validations_total",
		Help: "Discount code validations by result.",
	}, []string{"result"})
	orderNumbers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_number_allocations_total",
		Help: "Order number allocations by source and result.",
	}, []string{"source", "result"})
	reg.MustRegister(submitDuration, submissions, discounts, orderNumbers)
	return &CheckoutMetrics{
		submitDuration: submitDuration,
		submissions:    submissions,
		discounts:      discounts,
		orderNumbers:   orderNumbers,
	}
}

// ObserveSubmission records one submission attempt with its outcome.
func (c *CheckoutMetrics) ObserveSubmission(outcome string, duration time.Duration) {
	if c == nil || c.submissions == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	c.submissions.WithLabelValues(outcome).Inc()
	c.submitDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// IncDiscountValidation counts a discount validation; result is "applied" or an error code.
func (c *CheckoutMetrics) IncDiscountValidation(result string) {
	if c == nil || c.discounts == nil {
		return
	}
	c.discounts.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncOrderNumberAllocation counts an allocator call.
func (c *CheckoutMetrics) IncOrderNumberAllocation(source string, ok bool) {
	if c == nil || c.orderNumbers == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	c.orderNumbers.WithLabelValues(normalizeLabel(source), result).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
