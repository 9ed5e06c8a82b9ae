/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeSuccess labels a judge call that returned a usable reply. Failure
// outcomes carry the failure kind instead.
const OutcomeSuccess = "success"

var (
	// Global metrics with consistent dimensions
	judgeCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kqlsight_judge_calls_total",
			Help: "Total number of judge model calls by outcome",
		},
		[]string{"judge", "outcome"},
	)

	judgeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kqlsight_judge_call_duration_seconds",
			Help:    "Wall-clock duration of judge model calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"judge"},
	)

	evaluationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kqlsight_evaluations_total",
			Help: "Total number of evaluation rounds completed",
		},
		[]string{"audience"},
	)

	evaluationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kqlsight_evaluation_failures_total",
			Help: "Total number of evaluation rounds where every judge failed",
		},
		[]string{"audience"},
	)
)

// RecordJudgeOutcome counts one judge call with its outcome label.
func RecordJudgeOutcome(judgeID, outcome string) {
	judgeCalls.WithLabelValues(judgeID, outcome).Inc()
}

// ObserveJudgeLatency records the wall-clock duration of one judge call.
func ObserveJudgeLatency(judgeID string, d time.Duration) {
	judgeLatency.WithLabelValues(judgeID).Observe(d.Seconds())
}

// Observer records evaluation-round metrics for one audience. Labels bind
// once at construction so the hot path only increments.
type Observer struct {
	audience string

	completed prometheus.Counter
	failed    prometheus.Counter
}

// NewObserver creates an observer for evaluation rounds targeting audience.
func NewObserver(audience string) *Observer {
	labels := prometheus.Labels{"audience": audience}
	return &Observer{
		audience:  audience,
		completed: evaluationCounter.With(labels),
		failed:    evaluationFailures.With(labels),
	}
}

// Complete counts an evaluation round that produced a result.
func (o *Observer) Complete() {
	o.completed.Inc()
}

// Fail counts an evaluation round where every judge failed.
func (o *Observer) Fail() {
	o.failed.Inc()
}
