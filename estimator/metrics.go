// SPDX-License-Identifier: MIT

package estimator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle result labels.
const (
	resultOK        = "ok"
	resultNoVoltage = "no_voltage"
	resultNumerical = "numerical"
	resultTimeout   = "timeout"
	resultError     = "error"
)

type metrics struct {
	cycles   *prometheus.CounterVec
	rebuilds prometheus.Counter
	duration prometheus.Histogram
	observed prometheus.Gauge
}

// newMetrics creates the collectors on reg; a nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "linse",
			Subsystem: "estimator",
			Name:      "cycles_total",
			Help:      "Estimation cycles by result",
		}, []string{"result"}),
		rebuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: "linse",
			Subsystem: "estimator",
			Name:      "matrix_rebuilds_total",
			Help:      "System matrix rebuilds",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "linse",
			Subsystem: "estimator",
			Name:      "cycle_duration_seconds",
			Help:      "Estimation cycle duration",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		observed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "linse",
			Subsystem: "estimator",
			Name:      "observed_buses",
			Help:      "Observed buses in the last cycle",
		}),
	}
}
