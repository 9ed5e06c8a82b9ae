/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/kqlsight/kqlsight/judge/score"
)

// ParseError reports a judge reply that could not be decoded into a score
// set. It carries a bounded snippet of the offending text for logs.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable judge reply %q: %v", e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a judge reply into a score set. The reply must carry a JSON
// object, optionally inside a markdown code fence. Failures return a
// *ParseError; the caller decides whether the judge is dropped or retried.
func Parse(reply string) (score.Set, error) {
	var set score.Set

	payload := ExtractJSON(reply)
	if payload == "" {
		return set, &ParseError{Snippet: snippet(reply), Err: errors.New("empty reply")}
	}
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return set, &ParseError{Snippet: snippet(payload), Err: err}
	}
	return set, nil
}

// ExtractJSON pulls the JSON payload out of a judge reply. It keeps the
// content of the first markdown code fence when one is present, with or
// without a language tag, and otherwise returns the trimmed reply.
func ExtractJSON(reply string) string {
	var block strings.Builder
	inFence := false
	sawFence := false

	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inFence && isFenceLine(trimmed) {
			inFence = true
			sawFence = true
			continue
		}
		if inFence && trimmed == "```" {
			break
		}
		if inFence {
			if block.Len() > 0 {
				block.WriteString("\n")
			}
			block.WriteString(line)
		}
	}

	if sawFence {
		// An empty fenced block stays empty; the caller treats it as a
		// parse failure.
		return strings.TrimSpace(block.String())
	}

	// No fence on its own line. Strip inline fence markers if the whole
	// reply is wrapped in them, then hand back whatever remains.
	text := strings.TrimSpace(reply)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// isFenceLine reports whether a line is a markdown code fence marker,
// optionally carrying a language tag such as "json". A line where content
// rides on the marker itself is not treated as a fence so the content
// survives extraction.
func isFenceLine(line string) bool {
	tag, ok := strings.CutPrefix(line, "```")
	if !ok {
		return false
	}
	for _, r := range strings.TrimSpace(tag) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

const snippetLen = 120

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen] + "..."
}
