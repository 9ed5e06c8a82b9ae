/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package score

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// uniformSet builds a set scoring every dimension at v.
func uniformSet(judgeID string, v int) Set {
	scores := make(map[Dimension]int, len(dimensions))
	for _, d := range dimensions {
		scores[d] = v
	}
	return Set{JudgeID: judgeID, Scores: scores, Confidence: 4}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateSetsEmpty(t *testing.T) {
	_, err := AggregateSets(nil, DefaultThresholds())
	if !errors.Is(err, ErrNoScoreSets) {
		t.Fatalf("AggregateSets(nil) error = %v, want ErrNoScoreSets", err)
	}
}

func TestAggregateSetsSingleJudge(t *testing.T) {
	s := uniformSet("solo", 4)
	agg, err := AggregateSets([]Set{s}, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}

	for _, d := range Dimensions() {
		if !almostEqual(agg.Raw[d], 4) {
			t.Errorf("Raw[%s] = %v, want 4", d, agg.Raw[d])
		}
		st := agg.Stats[d]
		if st.Std != 0 {
			t.Errorf("Stats[%s].Std = %v, want 0 with a single judge", d, st.Std)
		}
		if st.Min != 4 || st.Max != 4 || st.Range != 0 {
			t.Errorf("Stats[%s] = %+v, want min=max=4 range=0", d, st)
		}
	}
	if len(agg.HighDisagreement) != 0 {
		t.Errorf("HighDisagreement = %v, want empty", agg.HighDisagreement)
	}
}

func TestAggregateSetsIdenticalVectors(t *testing.T) {
	sets := []Set{uniformSet("a", 4), uniformSet("b", 4), uniformSet("c", 4)}
	agg, err := AggregateSets(sets, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}
	if len(agg.HighDisagreement) != 0 {
		t.Errorf("HighDisagreement = %v, want empty for identical vectors", agg.HighDisagreement)
	}
	for _, d := range Dimensions() {
		if agg.Stats[d].Std != 0 {
			t.Errorf("Stats[%s].Std = %v, want 0", d, agg.Stats[d].Std)
		}
	}
}

func TestAggregateSetsDisagreementScenario(t *testing.T) {
	// Three judges split 5/3/1 on faithfulness and agree everywhere else.
	sets := []Set{uniformSet("a", 3), uniformSet("b", 3), uniformSet("c", 3)}
	sets[0].Scores[Faithfulness] = 5
	sets[1].Scores[Faithfulness] = 3
	sets[2].Scores[Faithfulness] = 1

	agg, err := AggregateSets(sets, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}

	st := agg.Stats[Faithfulness]
	if !almostEqual(st.Mean, 3.0) {
		t.Errorf("Mean = %v, want 3.0", st.Mean)
	}
	if !almostEqual(st.Std, 2.0) {
		t.Errorf("Std = %v, want 2.0 (sample form)", st.Std)
	}
	if !almostEqual(st.Range, 4) {
		t.Errorf("Range = %v, want 4", st.Range)
	}

	want := []Dimension{Faithfulness}
	if diff := cmp.Diff(want, agg.HighDisagreement); diff != "" {
		t.Errorf("HighDisagreement (-want +got):\n%s", diff)
	}
}

func TestAggregateSetsMissingDimensionReadsNeutral(t *testing.T) {
	// One judge never reports conciseness; it counts as 3 for that judge.
	full := uniformSet("full", 5)
	partial := uniformSet("partial", 5)
	delete(partial.Scores, Conciseness)

	agg, err := AggregateSets([]Set{full, partial}, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}

	if got := agg.Raw[Conciseness]; !almostEqual(got, 4) {
		t.Errorf("Raw[conciseness] = %v, want 4 ((5+3)/2)", got)
	}
	st := agg.Stats[Conciseness]
	if !almostEqual(st.Min, 3) || !almostEqual(st.Max, 5) {
		t.Errorf("Stats[conciseness] min/max = %v/%v, want 3/5", st.Min, st.Max)
	}
}

func TestAggregateSetsRangeThreshold(t *testing.T) {
	// Spread of exactly 2 with low std must NOT flag under the defaults;
	// a spread of 3 must.
	sets := []Set{uniformSet("a", 3), uniformSet("b", 3), uniformSet("c", 3)}
	sets[0].Scores[Clarity] = 4
	sets[1].Scores[Clarity] = 3
	sets[2].Scores[Clarity] = 2

	agg, err := AggregateSets(sets, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}
	for _, d := range agg.HighDisagreement {
		if d == Clarity {
			t.Errorf("clarity flagged with range 2 and std 1.0; thresholds are strict inequalities")
		}
	}

	sets[2].Scores[Clarity] = 1
	agg, err = AggregateSets(sets, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}
	found := false
	for _, d := range agg.HighDisagreement {
		if d == Clarity {
			found = true
		}
	}
	if !found {
		t.Errorf("clarity not flagged with range 3; HighDisagreement = %v", agg.HighDisagreement)
	}
}

func TestAggregateSetsCustomThresholds(t *testing.T) {
	sets := []Set{uniformSet("a", 4), uniformSet("b", 2)}
	// Every dimension has range 2, std ~1.41.
	strict := Thresholds{StdAbove: 0.5, RangeAbove: 10}
	agg, err := AggregateSets(sets, strict)
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}
	if len(agg.HighDisagreement) != len(Dimensions()) {
		t.Errorf("strict thresholds flagged %d dimensions, want all %d", len(agg.HighDisagreement), len(Dimensions()))
	}

	lax := Thresholds{StdAbove: 10, RangeAbove: 10}
	agg, err = AggregateSets(sets, lax)
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}
	if len(agg.HighDisagreement) != 0 {
		t.Errorf("lax thresholds flagged %v, want none", agg.HighDisagreement)
	}
}

func TestAggregateOutputsStayInRange(t *testing.T) {
	sets := []Set{uniformSet("a", 1), uniformSet("b", 5), uniformSet("c", 2)}
	agg, err := AggregateSets(sets, DefaultThresholds())
	if err != nil {
		t.Fatalf("AggregateSets() error = %v", err)
	}
	for _, d := range Dimensions() {
		if agg.Raw[d] < MinScore || agg.Raw[d] > MaxScore {
			t.Errorf("Raw[%s] = %v out of [1,5]", d, agg.Raw[d])
		}
	}
}

func TestAverageConfidence(t *testing.T) {
	if got := AverageConfidence(nil); got != 0 {
		t.Errorf("AverageConfidence(nil) = %v, want 0", got)
	}

	a := uniformSet("a", 4)
	a.Confidence = 5
	b := uniformSet("b", 4)
	b.Confidence = 2
	if got := AverageConfidence([]Set{a, b}); !almostEqual(got, 3.5) {
		t.Errorf("AverageConfidence = %v, want 3.5", got)
	}
}
