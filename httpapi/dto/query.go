/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package dto

// QueryRequest runs one KQL query against a workspace. The field names are
// part of the public wire contract and stay snake_case.
type QueryRequest struct {
	WorkspaceID   string `json:"workspace_id"`
	Query         string `json:"query"`
	TimespanHours int    `json:"timespan_hours"`
}

// QueryResponse returns every result table from a successful run.
type QueryResponse struct {
	Success   bool         `json:"success"`
	Tables    []QueryTable `json:"tables"`
	TotalRows int          `json:"total_rows"`
}

// QueryTable mirrors one analytics result table on the wire.
type QueryTable struct {
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`
	RowCount int      `json:"row_count"`
}

// TestConnectionRequest probes a workspace id.
type TestConnectionRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

// TestConnectionResponse reports whether the probe query ran.
type TestConnectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
