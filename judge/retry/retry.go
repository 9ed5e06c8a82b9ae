/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides the reusable retry policy applied to individual
// judge calls. The only retried condition in this system is an empty model
// response; everything else fails the attempt immediately.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Policy configures retry behavior for a single judge call.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first call.
	// 0 means do not retry at all.
	MaxRetries int
	// Backoff is the fixed delay between attempts.
	Backoff time.Duration
	// MaxJitter is the maximum random addition to each delay (default: none).
	MaxJitter time.Duration
}

// Validate checks that the policy has valid values.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if p.Backoff < 0 {
		return errors.New("backoff cannot be negative")
	}
	if p.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// EmptyResponsePolicy returns the policy used for transient empty model
// responses: two extra attempts with a short fixed pause between them.
func EmptyResponsePolicy() Policy {
	return Policy{
		MaxRetries: 2,
		Backoff:    time.Second,
	}
}

// Do executes fn under the policy, retrying only errors the retryable
// predicate accepts. The delay between attempts honors context
// cancellation, so a canceled evaluation never sits in a backoff sleep.
func Do[T any](ctx context.Context, p Policy, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !retryable(lastErr) {
			return result, lastErr
		}

		if attempt >= p.MaxRetries {
			break
		}

		delay := p.Backoff
		if p.MaxJitter > 0 {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(p.MaxJitter)))
			if err == nil {
				delay += time.Duration(n.Int64())
			}
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", p.MaxRetries).
			With("delay", delay).
			With("error", lastErr.Error()).
			Warn("Retrying judge call")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	return result, fmt.Errorf("%s failed after %d retries: %w", operation, p.MaxRetries, lastErr)
}
