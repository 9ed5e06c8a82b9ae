/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package invoker performs scoring calls against judge models.
//
// Each call gets its own timeout and a bounded retry that fires only for
// empty replies. Every other failure is terminal for that judge and is
// reported as a Failure so the caller can drop the judge without touching
// its siblings.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/kqlsight/kqlsight/judge"
	"github.com/kqlsight/kqlsight/judge/adapter"
	"github.com/kqlsight/kqlsight/judge/metrics"
	"github.com/kqlsight/kqlsight/judge/retry"
)

const defaultTimeout = 60 * time.Second

var tracer = otel.Tracer("github.com/kqlsight/kqlsight/judge/invoker",
	oteltrace.WithInstrumentationVersion("1.0.0"))

// ErrEmptyReply reports a judge call that returned no text. It is the only
// retryable condition.
var ErrEmptyReply = errors.New("empty reply from judge")

// FailureKind classifies why a judge produced no usable reply.
type FailureKind string

const (
	FailureEmpty     FailureKind = "empty"
	FailureTimeout   FailureKind = "timeout"
	FailureTransport FailureKind = "transport"
	FailureParse     FailureKind = "parse"
)

// Failure is one judge's terminal failure for this round. It never aborts
// sibling judges; the panel drops the judge and carries on.
type Failure struct {
	JudgeID string
	Kind    FailureKind
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("judge %s %s: %v", f.JudgeID, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Invoker issues scoring calls to judge models over their OpenAI-compatible
// endpoints. It is safe for concurrent use.
type Invoker struct {
	timeout time.Duration
	policy  retry.Policy
	genai   *metrics.GenAI

	mu      sync.Mutex
	clients map[string]openai.Client
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTimeout sets the per-attempt call timeout.
func WithTimeout(d time.Duration) Option {
	return func(inv *Invoker) { inv.timeout = d }
}

// WithRetryPolicy sets the policy applied to empty replies.
func WithRetryPolicy(p retry.Policy) Option {
	return func(inv *Invoker) { inv.policy = p }
}

// New creates an Invoker with a 60s per-attempt timeout and the standard
// empty-reply retry policy.
func New(opts ...Option) *Invoker {
	inv := &Invoker{
		timeout: defaultTimeout,
		policy:  retry.EmptyResponsePolicy(),
		genai:   metrics.NewGenAI("kqlsight.judge"),
		clients: make(map[string]openai.Client),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Invoke performs one scoring call and returns the judge's raw reply text.
// Empty replies are retried per the policy; any other failure returns a
// *Failure carrying the judge's id and a failure kind.
func (inv *Invoker) Invoke(ctx context.Context, id judge.Identity, desc adapter.Descriptor) (string, error) {
	ctx, span := tracer.Start(ctx, "judge.invoke", oteltrace.WithAttributes(
		attribute.String("judge.id", id.ID),
		attribute.String("judge.model", id.Model),
	))
	defer span.End()

	log := clog.FromContext(ctx).With("judge", id.ID, "model", id.Model)
	client := inv.client(id)
	params := buildParams(id.Model, desc)

	start := time.Now()
	text, err := retry.Do(ctx, inv.policy, fmt.Sprintf("judge %s call", id.ID),
		func(err error) bool { return errors.Is(err, ErrEmptyReply) },
		func() (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, inv.timeout)
			defer cancel()

			resp, err := client.Chat.Completions.New(callCtx, params)
			if err != nil {
				return "", err
			}
			inv.genai.RecordTokens(ctx, id.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

			if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
				return "", ErrEmptyReply
			}
			return resp.Choices[0].Message.Content, nil
		})
	metrics.ObserveJudgeLatency(id.ID, time.Since(start))

	if err != nil {
		kind := classify(err)
		metrics.RecordJudgeOutcome(id.ID, string(kind))
		inv.genai.RecordCall(ctx, id.Model, string(kind))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("judge call failed", "kind", kind, "error", err)
		return "", &Failure{JudgeID: id.ID, Kind: kind, Err: err}
	}

	metrics.RecordJudgeOutcome(id.ID, metrics.OutcomeSuccess)
	inv.genai.RecordCall(ctx, id.Model, metrics.OutcomeSuccess)
	return text, nil
}

// client returns the cached API client for a judge, building it on first
// use. Identities are immutable so the cache never invalidates.
func (inv *Invoker) client(id judge.Identity) openai.Client {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if c, ok := inv.clients[id.ID]; ok {
		return c
	}

	opts := []option.RequestOption{
		option.WithAPIKey(id.Credential),
		// The empty-reply retry in Invoke is the only retried condition,
		// so the SDK's own transport retries stay off.
		option.WithMaxRetries(0),
	}
	if id.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(id.Endpoint))
	}

	c := openai.NewClient(opts...)
	inv.clients[id.ID] = c
	return c
}

// buildParams maps a call descriptor onto the wire parameter set.
func buildParams(model string, desc adapter.Descriptor) openai.ChatCompletionNewParams {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(desc.Messages))
	for _, m := range desc.Messages {
		switch m.Role {
		case adapter.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: msgs,
	}
	switch desc.TokenLimitParam {
	case judge.TokenLimitCompletionCap:
		params.MaxCompletionTokens = openai.Int(int64(desc.TokenLimit))
	default:
		params.MaxTokens = openai.Int(int64(desc.TokenLimit))
	}
	if desc.Temperature != nil {
		params.Temperature = openai.Float(*desc.Temperature)
	}
	return params
}

// classify maps a call error onto the failure taxonomy.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ErrEmptyReply):
		return FailureEmpty
	default:
		return FailureTransport
	}
}
