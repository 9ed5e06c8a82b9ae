/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package score

import (
	"encoding/json"
	"math"
)

// Set is one judge's scores for a single explanation. Scores holds only the
// dimensions the judge actually reported; absent dimensions read as Neutral.
type Set struct {
	// JudgeID identifies the judge that produced this set. It does not
	// appear in the wire form, which travels alongside the judge's name.
	JudgeID string `json:"-"`
	// Scores maps reported dimensions to their integer score.
	Scores map[Dimension]int
	// Confidence is the judge's self-reported confidence in [1,5].
	Confidence int
	// Notes is the judge's free-text commentary.
	Notes string
}

// Score returns the judge's score for d, substituting Neutral when the
// judge did not report that dimension.
func (s Set) Score(d Dimension) int {
	if v, ok := s.Scores[d]; ok {
		return v
	}
	return Neutral
}

// Reported tells whether the judge actually scored d.
func (s Set) Reported(d Dimension) bool {
	_, ok := s.Scores[d]
	return ok
}

// setWire is the flat JSON shape judges are instructed to reply with.
// Pointer fields distinguish "omitted" from "scored zero".
type setWire struct {
	Faithfulness    *float64 `json:"faithfulness,omitempty"`
	Structure       *float64 `json:"structure,omitempty"`
	Clarity         *float64 `json:"clarity,omitempty"`
	AnalysisDepth   *float64 `json:"analysisDepth,omitempty"`
	ContextAccuracy *float64 `json:"contextAccuracy,omitempty"`
	Actionability   *float64 `json:"actionability,omitempty"`
	Conciseness     *float64 `json:"conciseness,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

func (w *setWire) field(d Dimension) **float64 {
	switch d {
	case Faithfulness:
		return &w.Faithfulness
	case Structure:
		return &w.Structure
	case Clarity:
		return &w.Clarity
	case AnalysisDepth:
		return &w.AnalysisDepth
	case ContextAccuracy:
		return &w.ContextAccuracy
	case Actionability:
		return &w.Actionability
	case Conciseness:
		return &w.Conciseness
	}
	return nil
}

// MarshalJSON emits the canonical flat reply shape: reported dimensions,
// confidence, and notes.
func (s Set) MarshalJSON() ([]byte, error) {
	var w setWire
	for _, d := range dimensions {
		if v, ok := s.Scores[d]; ok {
			f := float64(v)
			*w.field(d) = &f
		}
	}
	conf := float64(s.Confidence)
	w.Confidence = &conf
	w.Notes = s.Notes
	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat reply shape. Numeric values are rounded to
// the nearest integer and clamped into the scoring range; a missing
// confidence reads as Neutral. Malformed JSON is an error, never a default.
func (s *Set) UnmarshalJSON(data []byte) error {
	var w setWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	scores := make(map[Dimension]int)
	for _, d := range dimensions {
		if v := *w.field(d); v != nil {
			scores[d] = ClampInt(int(math.Round(*v)))
		}
	}

	confidence := Neutral
	if w.Confidence != nil {
		confidence = ClampInt(int(math.Round(*w.Confidence)))
	}

	s.Scores = scores
	s.Confidence = confidence
	s.Notes = w.Notes
	return nil
}
