/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package score

import (
	"errors"
	"math"
)

// ErrNoScoreSets is returned when aggregation is attempted with zero
// usable judges. This is the only fatal condition in the scoring path.
var ErrNoScoreSets = errors.New("no score sets to aggregate")

// Stats summarizes one dimension across all contributing judges.
type Stats struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Range float64 `json:"range"`
}

// Thresholds decides when a dimension counts as high-disagreement. The
// defaults are heuristic and deliberately kept configurable.
type Thresholds struct {
	// StdAbove flags a dimension whose sample standard deviation exceeds it.
	StdAbove float64
	// RangeAbove flags a dimension whose max-min spread exceeds it.
	RangeAbove float64
}

// DefaultThresholds returns the stock disagreement thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{StdAbove: 1.0, RangeAbove: 2}
}

// Aggregate is the cross-judge summary of one evaluation.
type Aggregate struct {
	// Raw holds the plain per-dimension mean across judges.
	Raw map[Dimension]float64
	// Stats holds the dispersion statistics per dimension.
	Stats map[Dimension]Stats
	// HighDisagreement lists flagged dimensions in canonical order.
	HighDisagreement []Dimension
}

// AggregateSets computes per-dimension statistics across the given score
// sets. A dimension a judge did not report counts as Neutral for that
// judge. Standard deviation uses the sample (n-1) form and is zero when
// fewer than two judges contributed.
func AggregateSets(sets []Set, th Thresholds) (Aggregate, error) {
	if len(sets) == 0 {
		return Aggregate{}, ErrNoScoreSets
	}

	agg := Aggregate{
		Raw:   make(map[Dimension]float64, len(dimensions)),
		Stats: make(map[Dimension]Stats, len(dimensions)),
	}

	for _, d := range dimensions {
		values := make([]float64, len(sets))
		for i, s := range sets {
			values[i] = float64(s.Score(d))
		}

		st := summarize(values)
		agg.Raw[d] = st.Mean
		agg.Stats[d] = st

		if st.Std > th.StdAbove || st.Range > th.RangeAbove {
			agg.HighDisagreement = append(agg.HighDisagreement, d)
		}
	}

	return agg, nil
}

// summarize computes the dispersion statistics for one dimension's values.
func summarize(values []float64) Stats {
	n := float64(len(values))

	var sum float64
	lo, hi := values[0], values[0]
	for _, v := range values {
		sum += v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	mean := sum / n

	var std float64
	if len(values) >= 2 {
		var ss float64
		for _, v := range values {
			diff := v - mean
			ss += diff * diff
		}
		std = math.Sqrt(ss / (n - 1))
	}

	return Stats{
		Mean:  mean,
		Std:   std,
		Min:   lo,
		Max:   hi,
		Range: hi - lo,
	}
}

// AverageConfidence returns the mean of the judges' self-reported
// confidence values, or zero with no sets.
func AverageConfidence(sets []Set) float64 {
	if len(sets) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sets {
		sum += float64(s.Confidence)
	}
	return sum / float64(len(sets))
}
