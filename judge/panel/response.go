/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package panel

import "github.com/kqlsight/kqlsight/judge/score"

// Response is the wire-shaped outcome of one evaluation round.
type Response struct {
	Scores           ScoreBlock    `json:"scores"`
	IndividualJudges []JudgeDetail `json:"individualJudges"`
}

// ScoreBlock carries the headline per-dimension scores alongside the round's
// metadata. Dimension values and the composite are rounded to 2 decimals.
type ScoreBlock struct {
	Faithfulness    float64 `json:"faithfulness"`
	Structure       float64 `json:"structure"`
	Clarity         float64 `json:"clarity"`
	AnalysisDepth   float64 `json:"analysisDepth"`
	ContextAccuracy float64 `json:"contextAccuracy"`
	Actionability   float64 `json:"actionability"`
	Conciseness     float64 `json:"conciseness"`
	CompositeScore  float64 `json:"compositeScore"`

	EvaluatorNotes    string    `json:"evaluatorNotes"`
	JudgeCount        int       `json:"judgeCount"`
	Judges            []string  `json:"judges"`
	Consensus         Consensus `json:"consensus"`
	AverageConfidence float64   `json:"averageConfidence"`
}

// Consensus summarizes cross-judge agreement on the raw scores.
type Consensus struct {
	HighDisagreement []score.Dimension               `json:"highDisagreement"`
	Statistics       map[score.Dimension]score.Stats `json:"statistics"`
}

// JudgeDetail preserves one judge's raw score set for auditability.
type JudgeDetail struct {
	Model  string    `json:"model"`
	Scores score.Set `json:"scores"`
}

// Dimension returns the headline value for one dimension.
func (b ScoreBlock) Dimension(d score.Dimension) float64 {
	switch d {
	case score.Faithfulness:
		return b.Faithfulness
	case score.Structure:
		return b.Structure
	case score.Clarity:
		return b.Clarity
	case score.AnalysisDepth:
		return b.AnalysisDepth
	case score.ContextAccuracy:
		return b.ContextAccuracy
	case score.Actionability:
		return b.Actionability
	case score.Conciseness:
		return b.Conciseness
	default:
		return 0
	}
}
