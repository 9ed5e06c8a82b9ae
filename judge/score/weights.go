/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package score

import "strings"

// Audience names a reader profile with its own view of which quality
// dimensions matter most.
type Audience string

const (
	AudienceDeveloper Audience = "developer"
	AudienceSRE       Audience = "sre"
	AudienceAnalyst   Audience = "analyst"
	AudienceExecutive Audience = "executive"
)

// Weights maps each dimension to its share of the composite score. The
// weights of a profile sum to 1, so a weighted combination of in-range
// scores stays in range.
type Weights map[Dimension]float64

// profiles encodes how much each audience cares about each dimension.
// Developers want technical fidelity and depth; SREs want something they
// can act on during an incident; analysts want rigorous analysis of the
// data itself; executives want the short, clear version.
var profiles = map[Audience]Weights{
	AudienceDeveloper: {
		Faithfulness:    0.20,
		Structure:       0.10,
		Clarity:         0.15,
		AnalysisDepth:   0.20,
		ContextAccuracy: 0.15,
		Actionability:   0.10,
		Conciseness:     0.10,
	},
	AudienceSRE: {
		Faithfulness:    0.20,
		Structure:       0.05,
		Clarity:         0.10,
		AnalysisDepth:   0.15,
		ContextAccuracy: 0.20,
		Actionability:   0.25,
		Conciseness:     0.05,
	},
	AudienceAnalyst: {
		Faithfulness:    0.20,
		Structure:       0.10,
		Clarity:         0.10,
		AnalysisDepth:   0.25,
		ContextAccuracy: 0.20,
		Actionability:   0.10,
		Conciseness:     0.05,
	},
	AudienceExecutive: {
		Faithfulness:    0.15,
		Structure:       0.10,
		Clarity:         0.20,
		AnalysisDepth:   0.10,
		ContextAccuracy: 0.10,
		Actionability:   0.15,
		Conciseness:     0.20,
	},
}

// ProfileFor resolves an audience tag to its weight profile. Unknown or
// empty tags fall back to the developer profile.
func ProfileFor(audience string) (Audience, Weights) {
	a := Audience(strings.ToLower(strings.TrimSpace(audience)))
	w, ok := profiles[a]
	if !ok {
		a = AudienceDeveloper
		w = profiles[a]
	}
	out := make(Weights, len(w))
	for d, v := range w {
		out[d] = v
	}
	return a, out
}

// Composite reduces per-dimension scores to one audience-weighted scalar.
// Dimensions missing from the input count as Neutral. The result is clamped,
// though with a well-formed profile it is already in range.
func Composite(scores map[Dimension]float64, w Weights) float64 {
	var sum float64
	for _, d := range dimensions {
		v, ok := scores[d]
		if !ok {
			v = Neutral
		}
		sum += v * w[d]
	}
	return Clamp(sum)
}
