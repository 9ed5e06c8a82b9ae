/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package httpapi exposes the evaluation engine and the Log Analytics
// plumbing over HTTP.
//
// The surface is small and JSON-only:
//
//	POST /api/evaluate        score an explanation with the judge panel
//	POST /api/query           run a KQL query against a workspace
//	POST /api/test-connection probe a workspace id
//	GET  /api/examples        canned KQL queries grouped by scenario
//	GET  /health              liveness
//	GET  /metrics             prometheus metrics
//
// Subpackages follow the usual split: dto holds the wire structs, handler
// the endpoint logic, middleware the cross-cutting request plumbing, and
// router wires the three together onto a gin engine.
package httpapi
