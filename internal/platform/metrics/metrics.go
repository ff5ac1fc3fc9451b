package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rgdevment/scam-scanner/internal/domain"
)

// Metrics holds the Prometheus collectors for screening and reporting.
type Metrics struct {
	Screenings *prometheus.CounterVec
	Reports    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Screenings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scamscan_screenings_total",
			Help: "Submitted numbers by final flow state",
		}, []string{"state"}),
		Reports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scamscan_reports_total",
			Help: "Number reports by ingestion outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveScreening(state domain.FlowState) {
	m.Screenings.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) ObserveReport(outcome string) {
	m.Reports.WithLabelValues(outcome).Inc()
}
