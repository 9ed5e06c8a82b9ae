/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package judge

import "unicode/utf8"

const (
	maxExplanationChars = 5000
	maxQueryChars       = 2000
	maxSampleRows       = 10

	truncationMarker = "... [truncated]"
)

// ResultSample is the slice of query output shown to judges.
type ResultSample struct {
	Columns []string
	Rows    [][]any
}

// Request carries one explanation to be scored against the query and result
// sample it claims to explain.
type Request struct {
	Explanation string
	Query       string
	Results     ResultSample
	Audience    string
}

// Bound returns a copy of the request with oversized fields truncated, so a
// hostile or careless caller cannot blow up prompt size. Cut text ends with
// an explicit truncation marker.
func (r Request) Bound() Request {
	r.Explanation = truncate(r.Explanation, maxExplanationChars)
	r.Query = truncate(r.Query, maxQueryChars)
	if len(r.Results.Rows) > maxSampleRows {
		r.Results.Rows = r.Results.Rows[:maxSampleRows]
	}
	return r
}

// truncate cuts s to at most limit bytes on a rune boundary and appends the
// truncation marker when anything was removed.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationMarker
}
