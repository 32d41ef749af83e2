package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IncidentsReported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_incidents_reported_total",
			Help: "Total number of reported incidents",
		},
		[]string{"type", "severity"},
	)

	AdvisoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_advisory_duration_seconds",
			Help:    "Route advisory computation duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"mode"},
	)

	AdvisoryDegraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_advisory_degraded_total",
			Help: "External collaborator failures converted into advisory text",
		},
		[]string{"collaborator"},
	)

	EmergencyOverrides = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "traffic_emergency_overrides_total",
			Help: "Total number of emergency signal overrides",
		},
	)

	SignalsOverridden = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "traffic_signals_overridden_total",
			Help: "Total number of signals forced to GREEN by emergency overrides",
		},
	)

	SignalStateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_signal_state_changes_total",
			Help: "Signal states written by traffic simulation",
		},
		[]string{"state"},
	)
)

// Init регистрирует метрики в стандартном реестре prometheus
func Init() {
	prometheus.MustRegister(IncidentsReported)
	prometheus.MustRegister(AdvisoryDuration)
	prometheus.MustRegister(AdvisoryDegraded)
	prometheus.MustRegister(EmergencyOverrides)
	prometheus.MustRegister(SignalsOverridden)
	prometheus.MustRegister(SignalStateChanges)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
