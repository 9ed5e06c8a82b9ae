/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package score holds the scoring domain: the fixed quality dimensions,
// per-judge score sets, cross-judge aggregation statistics, bias
// normalization, and audience-weighted composition.
package score

// Dimension is one of the fixed quality axes an explanation is scored on.
type Dimension string

const (
	Faithfulness    Dimension = "faithfulness"
	Structure       Dimension = "structure"
	Clarity         Dimension = "clarity"
	AnalysisDepth   Dimension = "analysisDepth"
	ContextAccuracy Dimension = "contextAccuracy"
	Actionability   Dimension = "actionability"
	Conciseness     Dimension = "conciseness"
)

// dimensions is the canonical ordering used everywhere scores are listed.
var dimensions = []Dimension{
	Faithfulness,
	Structure,
	Clarity,
	AnalysisDepth,
	ContextAccuracy,
	Actionability,
	Conciseness,
}

// Dimensions returns the fixed ordered list of quality dimensions.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// Score bounds. Every score a judge assigns, and every number this package
// emits, lives in [MinScore, MaxScore]. Neutral stands in for dimensions a
// judge did not report.
const (
	MinScore = 1
	MaxScore = 5
	Neutral  = 3
)

// Clamp bounds v to the valid scoring range.
func Clamp(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// ClampInt bounds an integer score to the valid range.
func ClampInt(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
