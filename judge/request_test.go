/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package judge_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kqlsight/kqlsight/judge"
)

func TestBoundTruncatesExplanation(t *testing.T) {
	t.Parallel()

	r := judge.Request{Explanation: strings.Repeat("x", 6000)}
	b := r.Bound()

	if !strings.HasSuffix(b.Explanation, "... [truncated]") {
		t.Errorf("Explanation = ...%q, want truncation marker", b.Explanation[len(b.Explanation)-20:])
	}
	if len(b.Explanation) > 5000+len("... [truncated]") {
		t.Errorf("len(Explanation) = %d, want at most %d", len(b.Explanation), 5000+len("... [truncated]"))
	}
}

func TestBoundKeepsShortFields(t *testing.T) {
	t.Parallel()

	r := judge.Request{
		Explanation: "short",
		Query:       "Heartbeat | count",
		Results: judge.ResultSample{
			Columns: []string{"Count"},
			Rows:    [][]any{{1.0}},
		},
	}
	b := r.Bound()

	if b.Explanation != "short" {
		t.Errorf("Explanation = %q, want unchanged", b.Explanation)
	}
	if b.Query != "Heartbeat | count" {
		t.Errorf("Query = %q, want unchanged", b.Query)
	}
	if len(b.Results.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1", len(b.Results.Rows))
	}
}

func TestBoundCutsOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// Place a multibyte rune across the byte limit.
	r := judge.Request{Explanation: strings.Repeat("x", 4999) + "€€€"}
	b := r.Bound()

	if !utf8.ValidString(b.Explanation) {
		t.Error("truncated explanation is not valid UTF-8")
	}
	if !strings.HasSuffix(b.Explanation, "... [truncated]") {
		t.Error("truncated explanation missing marker")
	}
}

func TestBoundCapsRows(t *testing.T) {
	t.Parallel()

	rows := make([][]any, 25)
	for i := range rows {
		rows[i] = []any{i}
	}
	r := judge.Request{Results: judge.ResultSample{Columns: []string{"n"}, Rows: rows}}

	b := r.Bound()
	if len(b.Results.Rows) != 10 {
		t.Errorf("len(Rows) = %d, want 10", len(b.Results.Rows))
	}
	if len(r.Results.Rows) != 25 {
		t.Errorf("original len(Rows) = %d, want untouched 25", len(r.Results.Rows))
	}
}

func TestBoundTruncatesQuery(t *testing.T) {
	t.Parallel()

	r := judge.Request{Query: strings.Repeat("q", 3000)}
	b := r.Bound()

	if !strings.HasSuffix(b.Query, "... [truncated]") {
		t.Error("query missing truncation marker")
	}
	if len(b.Query) > 2000+len("... [truncated]") {
		t.Errorf("len(Query) = %d, want at most %d", len(b.Query), 2000+len("... [truncated]"))
	}
}
