/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package judge defines the identities of the LLM judges that score
// explanations of query results.
//
// # Overview
//
// An explanation of a KQL result set is scored independently by a panel of
// judge models. Each judge is described by a JudgeIdentity: where to reach it,
// which credential to present, and a small set of capability flags that drive
// how requests to it are shaped. The subpackages build on these identities:
//
//   - registry: loads the immutable judge catalog at process start
//   - adapter: turns capability flags into a concrete call descriptor
//   - invoker: performs one scoring call with timeout and empty-response retry
//   - result: extracts a structured score set from a judge's free-text reply
//   - score: dimensions, aggregation statistics, bias normalization, weighting
//   - panel: orchestrates one evaluation across all available judges
//
// # Capability flags
//
// Judge backends differ in which chat-completion parameters they accept.
// Those differences are captured as data on the identity, never as model-name
// string matching in application logic: adding a judge backend is a
// configuration change, not a code change.
//
// # Thread safety
//
// JudgeIdentity values are immutable once constructed, and the registry is
// read-only after load, so all of this is safe for concurrent use.
package judge
