package cftp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "cftp"
	statusConverged  = "converged"
	statusPending    = "non_converged"
)

// Metrics are the Prometheus collectors updated by a Sampler.
// A nil *Metrics records nothing.
type Metrics struct {
	// RoundsTotal counts completed doubling rounds.
	RoundsTotal prometheus.Counter
	// SweepsTotal counts single-chain sweeps.
	// Labels: method (Sample, Forward)
	SweepsTotal *prometheus.CounterVec
	// SamplesTotal counts finished requests.
	// Labels: status (converged, non_converged)
	SamplesTotal *prometheus.CounterVec
	// CoalescenceTime observes the window length at which each request coalesced.
	CoalescenceTime prometheus.Histogram
	// RoundDurationSeconds observes wall time per round.
	RoundDurationSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RoundsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rounds_total",
			Help:      "Completed coupling-from-the-past doubling rounds",
		}),
		SweepsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sweeps_total",
			Help:      "Single-chain lattice sweeps by sampling method",
		}, []string{"method"}),
		SamplesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "samples_total",
			Help:      "Finished sample requests by status",
		}, []string{"status"}),
		CoalescenceTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "coalescence_time",
			Help:      "Window length T at which a request coalesced",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 21),
		}),
		RoundDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "round_duration_seconds",
			Help:      "Wall time of one doubling round",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
	}
}

func (m *Metrics) observeRound(st RoundStats) {
	if m == nil {
		return
	}
	m.RoundsTotal.Inc()
	m.RoundDurationSeconds.Observe(st.Duration.Seconds())
}

func (m *Metrics) observeResult(res *Result) {
	if m == nil {
		return
	}
	for _, o := range res.Outcomes {
		if o.Converged {
			m.SamplesTotal.WithLabelValues(statusConverged).Inc()
			m.CoalescenceTime.Observe(float64(o.Time))
		} else {
			m.SamplesTotal.WithLabelValues(statusPending).Inc()
		}
	}
}

func (m *Metrics) addSweeps(method string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SweepsTotal.WithLabelValues(method).Add(float64(n))
}
