/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package dto

// EvaluateRequest asks the judge panel to score one explanation.
type EvaluateRequest struct {
	Explanation    string   `json:"explanation" binding:"required"`
	TestCase       TestCase `json:"testCase"`
	TargetAudience string   `json:"targetAudience"`
}

// TestCase carries the query and the result sample the explanation
// describes.
type TestCase struct {
	Query   string  `json:"query"`
	Results Results `json:"results"`
}

// Results is the tabular sample shown to judges alongside the explanation.
type Results struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
