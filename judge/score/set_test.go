/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package score

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetScoreSubstitutesNeutral(t *testing.T) {
	s := Set{Scores: map[Dimension]int{Faithfulness: 5}}
	if got := s.Score(Faithfulness); got != 5 {
		t.Errorf("Score(faithfulness) = %d, want 5", got)
	}
	if got := s.Score(Clarity); got != Neutral {
		t.Errorf("Score(clarity) = %d, want neutral %d", got, Neutral)
	}
	if s.Reported(Clarity) {
		t.Error("Reported(clarity) = true, want false")
	}
}

func TestSetJSONRoundTrip(t *testing.T) {
	original := Set{
		Scores: map[Dimension]int{
			Faithfulness:    5,
			Structure:       4,
			Clarity:         4,
			AnalysisDepth:   3,
			ContextAccuracy: 5,
			Actionability:   2,
			Conciseness:     4,
		},
		Confidence: 4,
		Notes:      "solid explanation, light on remediation steps",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Set
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if diff := cmp.Diff(original.Scores, decoded.Scores); diff != "" {
		t.Errorf("scores round trip (-want +got):\n%s", diff)
	}
	if decoded.Confidence != original.Confidence {
		t.Errorf("confidence = %d, want %d", decoded.Confidence, original.Confidence)
	}
	if decoded.Notes != original.Notes {
		t.Errorf("notes = %q, want %q", decoded.Notes, original.Notes)
	}
}

func TestSetJSONPartialRoundTrip(t *testing.T) {
	original := Set{
		Scores:     map[Dimension]int{Faithfulness: 4, Clarity: 2},
		Confidence: 3,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Set
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(original.Scores, decoded.Scores); diff != "" {
		t.Errorf("partial scores round trip (-want +got):\n%s", diff)
	}
	if decoded.Reported(Structure) {
		t.Error("structure should stay unreported through the round trip")
	}
}

func TestSetUnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Set
	}{
		{
			name: "float scores round to integers",
			in:   `{"faithfulness": 4.0, "clarity": 3.6, "confidence": 4.4}`,
			want: Set{
				Scores:     map[Dimension]int{Faithfulness: 4, Clarity: 4},
				Confidence: 4,
			},
		},
		{
			name: "out of range clamps",
			in:   `{"faithfulness": 9, "structure": 0, "confidence": -2}`,
			want: Set{
				Scores:     map[Dimension]int{Faithfulness: 5, Structure: 1},
				Confidence: 1,
			},
		},
		{
			name: "missing confidence reads neutral",
			in:   `{"faithfulness": 4}`,
			want: Set{
				Scores:     map[Dimension]int{Faithfulness: 4},
				Confidence: Neutral,
			},
		},
		{
			name: "unknown keys ignored",
			in:   `{"faithfulness": 4, "confidence": 3, "overall": 4.2}`,
			want: Set{
				Scores:     map[Dimension]int{Faithfulness: 4},
				Confidence: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Set
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.want.Scores, got.Scores); diff != "" {
				t.Errorf("scores (-want +got):\n%s", diff)
			}
			if got.Confidence != tt.want.Confidence {
				t.Errorf("confidence = %d, want %d", got.Confidence, tt.want.Confidence)
			}
		})
	}
}

func TestSetUnmarshalRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		``,
		`not json at all`,
		`[1, 2, 3]`,
		`{"faithfulness": "five"}`,
		`{"faithfulness": 4`,
	} {
		var s Set
		if err := json.Unmarshal([]byte(in), &s); err == nil {
			t.Errorf("Unmarshal(%q) succeeded, want error", in)
		}
	}
}
