package verifier

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels besides the error kinds.
const (
	resultVerified    = "verified"
	resultNotVerified = "not_verified"
)

// Metrics holds the Prometheus collectors of an Engine.
type Metrics struct {
	Verifications *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sigverify_verifications_total",
			Help: "Verification attempts by result",
		}, []string{"result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigverify_verification_duration_seconds",
			Help:    "Duration of verification attempts",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
}

// Register registers the collectors on reg (or the default registerer if
// nil). Collectors that are already registered are not an error.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{m.Verifications, m.Duration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

func (m *Metrics) observe(outcome *Outcome, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(resultLabel(outcome, err)).Inc()
	m.Duration.Observe(elapsed.Seconds())
}

func resultLabel(outcome *Outcome, err error) string {
	switch {
	case err != nil:
		return KindOf(err).String()
	case outcome != nil && outcome.Verified:
		return resultVerified
	default:
		return resultNotVerified
	}
}
