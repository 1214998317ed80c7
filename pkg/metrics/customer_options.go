package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CustomerOptionMetrics records outcomes of the option attachment pipeline.
type CustomerOptionMetrics struct {
	attached *prometheus.CounterVec
	rejected *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewCustomerOptionMetrics registers the pipeline metrics on the provided registerer.
// A nil registerer yields a recorder that drops every observation.
func NewCustomerOptionMetrics(reg prometheus.Registerer) *CustomerOptionMetrics {
	if reg == nil {
		return &CustomerOptionMetrics{}
	}
	attached := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "customer_option_selections_attached_total",
		Help: "Option selections bound to cart line items, by option type.",
	}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "customer_option_rejections_total",
		Help: "Add-item requests rejected by customer option validation, by reason.",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "customer_option_attach_duration_seconds",
		Help:    "Time spent validating, building and binding option selections.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(attached, rejected, duration)
	return &CustomerOptionMetrics{
		attached: attached,
		rejected: rejected,
		duration: duration,
	}
}

// ObserveAttached counts one bound selection of the given option type.
func (m *CustomerOptionMetrics) ObserveAttached(optionType string) {
	if m == nil || m.attached == nil {
		return
	}
	m.attached.WithLabelValues(normalizeLabel(optionType)).Inc()
}

// IncRejected counts a rejected attachment.
func (m *CustomerOptionMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveDuration records how long an attachment took.
func (m *CustomerOptionMetrics) ObserveDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
