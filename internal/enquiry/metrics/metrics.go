// Package metrics exposes Prometheus instrumentation for the enquiry flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcome label values.
const (
	OutcomeSucceeded        = "succeeded"
	OutcomeValidationFailed = "validation_failed"
	OutcomeTransportFailed  = "transport_failed"
)

type Metrics struct {
	Submissions    *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "enquiry",
			Name:      "submissions_total",
			Help:      "Enquiry submission attempts by outcome.",
		}, []string{"outcome"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "intake",
			Subsystem: "enquiry",
			Name:      "active_form_sessions",
			Help:      "Form sessions currently open.",
		}),
	}
}

// IncSubmission records one submission attempt outcome. Nil-safe so services
// can run without metrics wired.
func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}
