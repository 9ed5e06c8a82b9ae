/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kqlsight/kqlsight/prompt"
	"github.com/kqlsight/kqlsight/schema"
)

// scoreReply documents the JSON object judges must return. It exists for
// schema generation; decoding lives in the result package.
type scoreReply struct {
	Faithfulness    int    `json:"faithfulness" jsonschema:"required,minimum=1,maximum=5,description=The explanation states only what the result data supports"`
	Structure       int    `json:"structure" jsonschema:"required,minimum=1,maximum=5,description=The explanation is organized with a logical flow"`
	Clarity         int    `json:"clarity" jsonschema:"required,minimum=1,maximum=5,description=The language fits the target audience"`
	AnalysisDepth   int    `json:"analysisDepth" jsonschema:"required,minimum=1,maximum=5,description=The explanation surfaces patterns and causes rather than restating rows"`
	ContextAccuracy int    `json:"contextAccuracy" jsonschema:"required,minimum=1,maximum=5,description=References to the query and its fields and time range are correct"`
	Actionability   int    `json:"actionability" jsonschema:"required,minimum=1,maximum=5,description=The reader learns what to do next"`
	Conciseness     int    `json:"conciseness" jsonschema:"required,minimum=1,maximum=5,description=Every sentence earns its place"`
	Confidence      int    `json:"confidence" jsonschema:"required,minimum=1,maximum=5,description=Your confidence in this assessment"`
	Notes           string `json:"notes,omitempty" jsonschema:"description=One or two sentences naming the main strength and weakness"`
}

// scoringSystem is the system prompt shared by every judge call.
var scoringSystem = prompt.MustNew(`<task>
You are an expert evaluator of explanations written for Azure Log Analytics query results.
Score how well an explanation communicates the outcome of a KQL query to its target audience.
</task>

<dimensions>
- faithfulness: the explanation states only what the result data supports and invents nothing.
- structure: the explanation is organized and flows from summary to supporting detail.
- clarity: the language is understandable for the target audience.
- analysisDepth: the explanation surfaces patterns or causes instead of restating rows.
- contextAccuracy: references to the query and its fields and time range are correct.
- actionability: the reader learns what to do next when action is warranted.
- conciseness: the explanation carries no filler.
</dimensions>

<instructions>
1. Read the query context and result sample, then the explanation.
2. Score every dimension with an integer from 1 (poor) to 5 (excellent).
3. Rate your confidence in this assessment from 1 to 5.
4. Add one or two sentences of notes naming the main strength and the main weakness.
</instructions>

<output_format>
Return your scores as a JSON object matching this schema:
{{schema}}
</output_format>

Respond with only the JSON object, no additional text.`).
	MustBindJSON("schema", schema.For[scoreReply]())

// scoringUser is the per-request prompt template.
var scoringUser = prompt.MustNew(`{{explanation}}

{{context}}

<instructions>
Score this explanation for a {{audience}} reader across every dimension.
</instructions>`)

// Prompts renders the system and user prompts for one scoring request.
// Callers should bound the request first.
func Prompts(r Request) (system, user string, err error) {
	system, err = scoringSystem.Build()
	if err != nil {
		return "", "", fmt.Errorf("building system prompt: %w", err)
	}

	bound, err := r.Bind(scoringUser)
	if err != nil {
		return "", "", err
	}
	user, err = bound.Build()
	if err != nil {
		return "", "", fmt.Errorf("building user prompt: %w", err)
	}
	return system, user, nil
}

// Bind attaches the request's fields to a prompt template. User-supplied
// text enters as escaped XML so it cannot read as instructions.
func (r *Request) Bind(t *prompt.Template) (*prompt.Template, error) {
	t, err := t.BindXML("explanation", struct {
		XMLName struct{} `xml:"explanation"`
		Content string   `xml:",chardata"`
	}{
		Content: r.Explanation,
	})
	if err != nil {
		return nil, err
	}

	results, err := r.Results.markdown()
	if err != nil {
		return nil, fmt.Errorf("rendering result sample: %w", err)
	}
	t, err = t.BindXML("context", struct {
		XMLName struct{} `xml:"queryContext"`
		Query   string   `xml:"query"`
		Results string   `xml:"results"`
	}{
		Query:   r.Query,
		Results: results,
	})
	if err != nil {
		return nil, err
	}

	return t.Bind("audience", r.Audience)
}

const maxCellChars = 200

// markdown renders the sample as a markdown table for prompt embedding.
func (s ResultSample) markdown() (string, error) {
	if len(s.Columns) == 0 {
		return "(no results)", nil
	}

	var buf bytes.Buffer
	table := newMarkdownTable(s.Columns, &buf)
	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cell(v)
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

// cell formats one result value for the markdown table.
func cell(v any) string {
	if v == nil {
		return ""
	}
	return truncate(fmt.Sprint(v), maxCellChars)
}

// newMarkdownTable creates a table writer tuned for prompt embedding.
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
