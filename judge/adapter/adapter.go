/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package adapter shapes evaluation calls to fit each judge's API surface.
//
// Judge backends disagree on small but breaking details: some reject system
// messages, some reject sampling temperature, and some renamed the token
// limit parameter. The adapter folds those differences into a flat call
// descriptor so the invoker can stay backend-agnostic. Behavior differences
// ride on capability flags, never on judge names.
package adapter

import (
	"github.com/kqlsight/kqlsight/judge"
)

// Role identifies which party a message speaks for.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one turn of a judge call.
type Message struct {
	Role    Role
	Content string
}

// Limits hold the token caps and temperature applied when shaping calls.
// They are process-wide settings, not per-model tuning knobs.
type Limits struct {
	// EvaluationTokens caps the reply on the standard two-message path.
	EvaluationTokens int

	// FoldedTokens caps the reply when the system prompt folds into the
	// user message. The combined prompt runs longer, so the cap allows
	// more headroom.
	FoldedTokens int

	// Temperature is the sampling temperature for judges that accept one.
	// Evaluation calls want near-deterministic output.
	Temperature float64
}

// DefaultLimits returns the limits used for evaluation calls.
func DefaultLimits() Limits {
	return Limits{
		EvaluationTokens: 800,
		FoldedTokens:     1500,
		Temperature:      0.3,
	}
}

// Descriptor is the backend-ready shape of one judge call.
type Descriptor struct {
	Messages        []Message
	TokenLimitParam judge.TokenLimitParam
	TokenLimit      int

	// Temperature is nil when the judge rejects the parameter.
	Temperature *float64
}

// Shape builds the call descriptor for one judge from its capability flags.
func Shape(id judge.Identity, systemPrompt, userPrompt string, limits Limits) Descriptor {
	caps := id.Capabilities

	switch {
	case !caps.SupportsSystemMessage:
		// Models without a system role also reject temperature and use
		// the completion token cap.
		return Descriptor{
			Messages:        []Message{{Role: RoleUser, Content: fold(systemPrompt, userPrompt)}},
			TokenLimitParam: judge.TokenLimitCompletionCap,
			TokenLimit:      limits.FoldedTokens,
		}

	case !caps.SupportsTemperature:
		return Descriptor{
			Messages: []Message{
				{Role: RoleSystem, Content: systemPrompt},
				{Role: RoleUser, Content: userPrompt},
			},
			TokenLimitParam: judge.TokenLimitCompletionCap,
			TokenLimit:      limits.EvaluationTokens,
		}

	default:
		temp := limits.Temperature
		return Descriptor{
			Messages: []Message{
				{Role: RoleSystem, Content: systemPrompt},
				{Role: RoleUser, Content: userPrompt},
			},
			TokenLimitParam: caps.TokenLimitParam,
			TokenLimit:      limits.EvaluationTokens,
			Temperature:     &temp,
		}
	}
}

// fold merges the system prompt into the user turn for models that only
// accept user messages.
func fold(systemPrompt, userPrompt string) string {
	if systemPrompt == "" {
		return userPrompt
	}
	return systemPrompt + "\n\n" + userPrompt
}
