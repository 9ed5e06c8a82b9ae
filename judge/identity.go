/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"errors"
	"fmt"
)

// TokenLimitParam selects which token-limit field a judge backend accepts on
// chat-completion requests.
type TokenLimitParam string

const (
	// TokenLimitStandard is the classic max-tokens field.
	TokenLimitStandard TokenLimitParam = "standard"
	// TokenLimitCompletionCap is the completion-cap field used by reasoning
	// deployments that reject the classic field.
	TokenLimitCompletionCap TokenLimitParam = "completionCap"
)

// Capabilities describes which chat-completion parameters a judge backend
// accepts. Request shaping branches on these flags only.
type Capabilities struct {
	// SupportsSystemMessage is false for backends that reject a system role;
	// the system prompt is folded into the user message for those.
	SupportsSystemMessage bool `yaml:"supportsSystemMessage" json:"supportsSystemMessage"`
	// SupportsTemperature is false for backends that reject the temperature
	// parameter entirely.
	SupportsTemperature bool `yaml:"supportsTemperature" json:"supportsTemperature"`
	// TokenLimitParam is the token-limit field this backend accepts.
	TokenLimitParam TokenLimitParam `yaml:"tokenLimitParam" json:"tokenLimitParam"`
}

// Validate checks that the capability flags are well formed.
func (c Capabilities) Validate() error {
	switch c.TokenLimitParam {
	case TokenLimitStandard, TokenLimitCompletionCap:
		return nil
	case "":
		return errors.New("tokenLimitParam is required")
	default:
		return fmt.Errorf("unknown tokenLimitParam %q", c.TokenLimitParam)
	}
}

// Identity describes one configured judge backend. Identities are immutable
// once constructed from configuration.
type Identity struct {
	// ID is the stable identifier used in configuration and results.
	ID string
	// DisplayName is the human-readable name surfaced in responses.
	DisplayName string
	// Model is the model or deployment name sent on each request.
	Model string
	// Endpoint is the base URL of the chat-completions API.
	Endpoint string
	// Credential is the API key presented to the endpoint.
	Credential string
	// Capabilities drives request shaping for this judge.
	Capabilities Capabilities
}

// Usable reports whether the judge can actually be called: both the endpoint
// and the credential must be present.
func (id Identity) Usable() bool {
	return id.Endpoint != "" && id.Credential != ""
}

// Validate checks the identity beyond usability: ID and model must be set and
// the capability flags must be well formed.
func (id Identity) Validate() error {
	if id.ID == "" {
		return errors.New("judge id is required")
	}
	if id.Model == "" {
		return fmt.Errorf("judge %q: model is required", id.ID)
	}
	if err := id.Capabilities.Validate(); err != nil {
		return fmt.Errorf("judge %q: %w", id.ID, err)
	}
	return nil
}

// Name returns the display name, falling back to the ID when unset.
func (id Identity) Name() string {
	if id.DisplayName != "" {
		return id.DisplayName
	}
	return id.ID
}
