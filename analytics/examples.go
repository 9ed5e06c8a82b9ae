/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package analytics

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var examplesYAML []byte

// Example is one ready-to-run KQL query.
type Example struct {
	Name  string `json:"name" yaml:"name"`
	Query string `json:"query" yaml:"query"`
}

// Category groups example queries for one investigation scenario.
type Category struct {
	Name    string    `json:"name" yaml:"name"`
	Queries []Example `json:"queries" yaml:"queries"`
}

// Examples returns the canned KQL catalog keyed by scenario.
func Examples() (map[string]Category, error) {
	catalog := map[string]Category{}
	if err := yaml.Unmarshal(examplesYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse embedded KQL examples: %w", err)
	}
	return catalog, nil
}
