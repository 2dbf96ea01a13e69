package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type VoteMetrics struct {
	OpenVotes            metrics.Gauge
	AppliedVotes         metrics.Counter
	RegisteredThresholds metrics.Counter
}

func (v *VoteMetrics) SetOpenVotes(count uint64) {
	v.OpenVotes.Set(float64(count))
}
func (v *VoteMetrics) AddAppliedVotes() {
	v.AppliedVotes.Add(1)
}
func (v *VoteMetrics) AddRegisteredThresholds() {
	v.RegisteredThresholds.Add(1)
}

func PromVoteMetrics() *VoteMetrics {
	return &VoteMetrics{
		OpenVotes: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: VoteSubsystem,
			Name:      "open_votes",
			Help:      "Number of votes opened on this ledger.",
		}, []string{}),
		AppliedVotes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VoteSubsystem,
			Name:      "applied_votes",
			Help:      "Number of accepted vote submissions.",
		}, []string{}),
		RegisteredThresholds: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: VoteSubsystem,
			Name:      "registered_thresholds",
			Help:      "Number of registered threshold configs.",
		}, []string{}),
	}
}

func NopVoteMetrics() *VoteMetrics {
	return &VoteMetrics{
		OpenVotes:            discard.NewGauge(),
		AppliedVotes:         discard.NewCounter(),
		RegisteredThresholds: discard.NewCounter(),
	}
}
