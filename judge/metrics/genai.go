/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics instruments judge calls and evaluation rounds.
//
// Token usage flows through OpenTelemetry counters so it lands next to the
// request traces; call outcomes and latencies are Prometheus metrics served
// from the /metrics endpoint.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI provides OpenTelemetry metrics for judge model calls: prompt and
// completion token usage, and a call counter keyed by outcome. Metric
// creation degrades gracefully; a counter that fails to initialize is
// replaced by a no-op so judge calls never fail on instrumentation.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	calls            metric.Int64Counter
}

// NewGenAI creates judge-call metrics under the given meter name. The meter
// name stays unified across all judges; the model is a dimension on each
// recorded point.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens sent to judge models"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens returned by judge models"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	calls, err := meter.Int64Counter("genai.judge.calls",
		metric.WithDescription("The number of judge calls issued"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create judge call counter, metrics will be disabled", "error", err, "meter", meterName)
		calls = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		calls:            calls,
	}
}

// RecordTokens records prompt and completion token usage for one judge call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordCall records one judge call with its outcome.
func (m *GenAI) RecordCall(ctx context.Context, model, outcome string) {
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("outcome", outcome),
	))
}
