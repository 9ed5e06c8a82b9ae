/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package analytics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/kqlsight/kqlsight/analytics"
)

func TestTimespan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "one hour", d: time.Hour, want: "PT1H"},
		{name: "one day", d: 24 * time.Hour, want: "PT24H"},
		{name: "hour and a half", d: 90 * time.Minute, want: "PT1H30M"},
		{name: "seconds only", d: 45 * time.Second, want: "PT45S"},
		{name: "mixed", d: 3*time.Hour + 27*time.Minute + 9*time.Second, want: "PT3H27M9S"},
		{name: "sub second rounds up", d: 400 * time.Millisecond, want: "PT1S"},
		{name: "zero", d: 0, want: ""},
		{name: "negative", d: -5 * time.Minute, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := analytics.Timespan(tc.d); got != tc.want {
				t.Errorf("Timespan(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "success", want: "SUCCESS"},
		{in: "  Partial\n", want: "PARTIAL"},
		{in: "SUCCESS", want: "SUCCESS"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		if got := analytics.NormalizeStatus(tc.in); got != tc.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsSuccess(t *testing.T) {
	t.Parallel()

	if !analytics.IsSuccess("SUCCESS") {
		t.Error("IsSuccess(SUCCESS) = false, want true")
	}
	if !analytics.IsSuccess("success") {
		t.Error("IsSuccess(success) = false, want true")
	}
	if analytics.IsSuccess(analytics.StatusPartial) {
		t.Error("IsSuccess(PARTIAL) = true, want false")
	}
	if analytics.IsSuccess("") {
		t.Error("IsSuccess(empty) = true, want false")
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	table := analytics.Table{
		Name:    "PrimaryResult",
		Columns: []string{"Computer", "count_"},
		Rows: [][]any{
			{"web-01", 42},
			{nil, 7},
		},
	}

	got, err := table.Markdown()
	if err != nil {
		t.Fatalf("Markdown() = %v", err)
	}

	for _, want := range []string{"Computer", "count_", "web-01", "42", "NULL"} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown() missing %q in:\n%s", want, got)
		}
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 4 {
		t.Errorf("Markdown() rendered %d lines, want header, separator and two rows:\n%s", len(lines), got)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "|") {
			t.Errorf("Markdown() line %q does not start with a pipe", line)
		}
	}
}

func TestMarkdownEmpty(t *testing.T) {
	t.Parallel()

	noColumns := analytics.Table{Name: "PrimaryResult"}
	if got, err := noColumns.Markdown(); err != nil || got != "No data returned" {
		t.Errorf("Markdown() without columns = %q, %v, want No data returned", got, err)
	}

	noRows := analytics.Table{Name: "PrimaryResult", Columns: []string{"Computer"}}
	if got, err := noRows.Markdown(); err != nil || got != "No data returned" {
		t.Errorf("Markdown() without rows = %q, %v, want No data returned", got, err)
	}
}
