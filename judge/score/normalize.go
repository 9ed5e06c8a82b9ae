/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package score

import (
	"errors"
	"fmt"
	"math"
)

// ErrNormalizationUnavailable wraps every failure inside Normalize. Callers
// fall back to the raw per-dimension mean and never surface the error.
var ErrNormalizationUnavailable = errors.New("bias normalization unavailable")

// Normalize corrects for judges that score systematically harsh or lenient.
// Each judge's scores are recentered by that judge's own mean and standard
// deviation across the seven dimensions, rescaled into the scoring range
// around Neutral, then averaged per dimension.
//
// A judge whose scores are all identical has no spread to correct, so its
// values pass through unchanged rather than collapsing to Neutral.
//
// Normalization is only meaningful with at least two judges; fewer is an
// error, as is any non-finite intermediate value.
func Normalize(sets []Set) (map[Dimension]float64, error) {
	if len(sets) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 judges, have %d", ErrNormalizationUnavailable, len(sets))
	}

	rescaled := make([]map[Dimension]float64, len(sets))
	for i, s := range sets {
		values := make([]float64, len(dimensions))
		for j, d := range dimensions {
			values[j] = float64(s.Score(d))
		}

		mean, std := meanStd(values)

		perDim := make(map[Dimension]float64, len(dimensions))
		for j, d := range dimensions {
			var v float64
			if std == 0 {
				// Constant judge: no bias signal to correct.
				v = Clamp(values[j])
			} else {
				z := (values[j] - mean) / std
				v = Clamp(Neutral + z)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value for %s", ErrNormalizationUnavailable, d)
			}
			perDim[d] = v
		}
		rescaled[i] = perDim
	}

	normalized := make(map[Dimension]float64, len(dimensions))
	for _, d := range dimensions {
		var sum float64
		for _, perDim := range rescaled {
			sum += perDim[d]
		}
		normalized[d] = sum / float64(len(rescaled))
	}
	return normalized, nil
}

// meanStd returns the mean and sample standard deviation of values.
func meanStd(values []float64) (float64, float64) {
	n := float64(len(values))

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	if len(values) < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range values {
		diff := v - mean
		ss += diff * diff
	}
	return mean, math.Sqrt(ss / (n - 1))
}
