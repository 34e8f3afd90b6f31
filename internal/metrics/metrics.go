package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActionRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecoconnect_actions_total",
		Help: "Dispatched async actions by slice, action and outcome",
	}, []string{"slice", "action", "outcome"})
	ActionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecoconnect_action_duration_seconds",
		Help:    "Async action duration seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"slice", "action"})
)

func init() {
	prometheus.MustRegister(ActionRuns, ActionDuration)
}

// ObserveAction records one completed action dispatch.
func ObserveAction(slice, action, outcome string, start time.Time) {
	ActionRuns.WithLabelValues(slice, action, outcome).Inc()
	ActionDuration.WithLabelValues(slice, action).Observe(time.Since(start).Seconds())
}
