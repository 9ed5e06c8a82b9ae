/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives JSON schemas for embedding in prompt text.
package schema

import "github.com/invopop/jsonschema"

// Reflect returns the JSON schema for v, shaped for prompt embedding: fully
// expanded with no $ref indirection, required fields taken from struct tags.
func Reflect(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
	}
	return r.Reflect(v)
}

// For allocates a zero value of T and reflects its schema.
func For[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}
