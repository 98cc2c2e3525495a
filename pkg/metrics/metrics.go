package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hexmint"

const mintSubsystem = "mint"

// MintMetrics accumulates code-minting statistics of the serving mode.
type MintMetrics struct {
	minted    prometheus.Counter
	failures  prometheus.Counter
	remaining prometheus.Gauge
}

// NewMintMetrics creates minting instruments and registers them in the
// default prometheus registry.
func NewMintMetrics() *MintMetrics {
	m := &MintMetrics{
		minted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: mintSubsystem,
			Name:      "codes_total",
			Help:      "Total number of codes minted since process start.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: mintSubsystem,
			Name:      "failures_total",
			Help:      "Total number of failed mint attempts.",
		}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: mintSubsystem,
			Name:      "cycle_remaining",
			Help:      "Codes left in the current full cycle.",
		}),
	}

	prometheus.MustRegister(m.minted, m.failures, m.remaining)

	return m
}

// IncMinted increments the counter of successfully minted codes.
func (m *MintMetrics) IncMinted() {
	m.minted.Inc()
}

// IncFailures increments the counter of failed mint attempts.
func (m *MintMetrics) IncFailures() {
	m.failures.Inc()
}

// SetRemaining sets the gauge of codes left in the current cycle.
func (m *MintMetrics) SetRemaining(n uint64) {
	m.remaining.Set(float64(n))
}
