/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// walk scans text for {{name}} placeholders and replaces each with the value
// returned by resolve. Replacement values are written through untouched, so
// substitution never cascades.
func walk(text string, resolve func(name string) (string, error)) (string, error) {
	var out strings.Builder
	for {
		before, rest, found := strings.Cut(text, "{{")
		out.WriteString(before)
		if !found {
			return out.String(), nil
		}

		body, after, closed := strings.Cut(rest, "}}")
		if !closed {
			return "", errors.New("unterminated placeholder: missing }}")
		}

		name := strings.TrimSpace(body)
		if !validName(name) {
			return "", fmt.Errorf("invalid placeholder name %q", name)
		}
		value, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(value)

		text = after
	}
}

// validName reports whether s is a legal placeholder name: a letter followed
// by letters, digits, or underscores.
func validName(s string) bool {
	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsLetter(r):
			return false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_':
			return false
		}
	}
	return s != ""
}
