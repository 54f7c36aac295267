package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	DuplicatesRejected   prometheus.Counter
	ValidationsRejected  prometheus.Counter
	AppendDuration       prometheus.Histogram
}

// New creates a Metrics instance with all registration metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regportal_registrations_created_total",
			Help: "Total number of registrations accepted and persisted",
		}),
		DuplicatesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regportal_registrations_duplicate_total",
			Help: "Total number of submissions rejected for a duplicate national ID",
		}),
		ValidationsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "regportal_registrations_invalid_total",
			Help: "Total number of submissions rejected by field validation",
		}),
		AppendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "regportal_registration_append_duration_seconds",
			Help:    "Duration of store append operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveAppend records the duration of a store append. Call with time.Now()
// taken at the start of the operation.
func (m *Metrics) ObserveAppend(start time.Time) {
	m.AppendDuration.Observe(time.Since(start).Seconds())
}
