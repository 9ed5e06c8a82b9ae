/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package analytics

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Statuses reported in ExecStats. Transports spell statuses differently, so
// comparisons go through NormalizeStatus.
const (
	StatusSuccess = "SUCCESS"
	StatusPartial = "PARTIAL"
)

// Table is one result table returned by a query.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ExecStats describes how a query run went. Status is a normalized
// upper-case marker, with Error filled in when the run was not clean.
type ExecStats struct {
	Status     string  `json:"status"`
	ElapsedSec float64 `json:"elapsedSec"`
	Error      string  `json:"error,omitempty"`
}

// Result bundles the tables and execution metadata of one query run.
type Result struct {
	Tables    []Table   `json:"tables"`
	TotalRows int       `json:"totalRows"`
	Stats     ExecStats `json:"execStats"`
}

// NormalizeStatus upper-cases a status marker so spellings from different
// transports compare equal.
func NormalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// IsSuccess reports whether status represents a fully completed run.
func IsSuccess(status string) bool {
	return NormalizeStatus(status) == StatusSuccess
}

// Timespan renders d as the ISO-8601 duration the query API expects,
// rounded to whole seconds. Non-positive durations return the empty string,
// which lets the service apply its default window.
func Timespan(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	seconds := int64(d.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	var b strings.Builder
	b.WriteString("PT")
	if h := seconds / 3600; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
		seconds %= 3600
	}
	if m := seconds / 60; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
		seconds %= 60
	}
	if seconds > 0 {
		fmt.Fprintf(&b, "%dS", seconds)
	}
	return b.String()
}

// Markdown renders the table for prompt embedding and text export. Nil
// cells render as NULL so they stay distinguishable from empty strings.
func (t Table) Markdown() (string, error) {
	if len(t.Columns) == 0 || len(t.Rows) == 0 {
		return "No data returned", nil
	}

	var buf bytes.Buffer
	table := newMarkdownTable(t.Columns, &buf)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		if err := table.Append(cells); err != nil {
			return "", err
		}
	}
	if err := table.Render(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// newMarkdownTable creates a table writer tuned for LLM-facing output.
func newMarkdownTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 80,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
