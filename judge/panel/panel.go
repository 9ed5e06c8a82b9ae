/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package panel orchestrates one evaluation round across a judge panel.
//
// A round fans out one scoring call per available judge, waits for every
// call to settle, aggregates the parseable score sets, optionally applies
// bias normalization, and reduces to an audience-weighted composite. Judge
// failures of any kind are isolated; only a round where zero judges produce
// usable scores fails as a whole.
package panel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/kqlsight/kqlsight/judge"
	"github.com/kqlsight/kqlsight/judge/adapter"
	"github.com/kqlsight/kqlsight/judge/invoker"
	"github.com/kqlsight/kqlsight/judge/metrics"
	"github.com/kqlsight/kqlsight/judge/registry"
	"github.com/kqlsight/kqlsight/judge/result"
	"github.com/kqlsight/kqlsight/judge/score"
)

var tracer = otel.Tracer("github.com/kqlsight/kqlsight/judge/panel",
	oteltrace.WithInstrumentationVersion("1.0.0"))

// ErrAllJudgesFailed reports a round with zero usable judge scores, either
// because no judge is configured or because every call failed.
var ErrAllJudgesFailed = errors.New("all judge models failed")

// State names one phase of an evaluation round. States exist for logs and
// failure reports; the round itself always moves forward.
type State string

const (
	StateInit        State = "INIT"
	StateDispatching State = "DISPATCHING"
	StateCollecting  State = "COLLECTING"
	StateAggregating State = "AGGREGATING"
	StateNormalizing State = "NORMALIZING"
	StateWeighting   State = "WEIGHTING"
	StateDone        State = "DONE"
	StateFailed      State = "FAILED"
)

// Caller performs one judge call. *invoker.Invoker satisfies it.
type Caller interface {
	Invoke(ctx context.Context, id judge.Identity, desc adapter.Descriptor) (string, error)
}

// Panel evaluates explanations against every available judge.
type Panel struct {
	registry   *registry.Registry
	caller     Caller
	limits     adapter.Limits
	thresholds score.Thresholds
}

// Option configures a Panel.
type Option func(*Panel)

// WithLimits overrides the token and temperature limits applied to calls.
func WithLimits(l adapter.Limits) Option {
	return func(p *Panel) { p.limits = l }
}

// WithThresholds overrides the disagreement thresholds.
func WithThresholds(t score.Thresholds) Option {
	return func(p *Panel) { p.thresholds = t }
}

// New creates a Panel over the given registry and caller.
func New(reg *registry.Registry, caller Caller, opts ...Option) *Panel {
	p := &Panel{
		registry:   reg,
		caller:     caller,
		limits:     adapter.DefaultLimits(),
		thresholds: score.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// outcome is one judge's settled result for a round.
type outcome struct {
	set score.Set
	err error
}

// Evaluate runs one full round and shapes the response. It returns
// ErrAllJudgesFailed when zero judges produce parseable scores, and the
// context error when the enclosing request is cancelled mid-round.
func (p *Panel) Evaluate(ctx context.Context, req judge.Request) (*Response, error) {
	audience, weights := score.ProfileFor(req.Audience)
	req = req.Bound()
	req.Audience = string(audience)

	ctx, span := tracer.Start(ctx, "panel.evaluate", oteltrace.WithAttributes(
		attribute.String("audience", string(audience)),
	))
	defer span.End()

	log := clog.FromContext(ctx)
	obs := metrics.NewObserver(string(audience))
	state := StateInit

	judges := p.registry.ListAvailable()
	span.SetAttributes(attribute.Int("judges.available", len(judges)))
	if len(judges) == 0 {
		transition(ctx, &state, StateFailed)
		obs.Fail()
		span.SetStatus(codes.Error, "no judges configured")
		return nil, fmt.Errorf("%w: none configured", ErrAllJudgesFailed)
	}

	system, user, err := judge.Prompts(req)
	if err != nil {
		return nil, fmt.Errorf("building prompts: %w", err)
	}

	transition(ctx, &state, StateDispatching)
	outcomes := make([]outcome, len(judges))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range judges {
		g.Go(func() error {
			outcomes[i] = p.scoreOne(gctx, id, system, user)
			return nil
		})
	}

	transition(ctx, &state, StateCollecting)
	_ = g.Wait()

	// A cancelled request discards everything collected so far.
	if err := ctx.Err(); err != nil {
		transition(ctx, &state, StateFailed)
		return nil, err
	}

	transition(ctx, &state, StateAggregating)
	var (
		sets         []score.Set
		contributing []judge.Identity
	)
	for i, out := range outcomes {
		if out.err != nil {
			continue
		}
		sets = append(sets, out.set)
		contributing = append(contributing, judges[i])
	}
	log.Info("judge round settled",
		"dispatched", len(judges),
		"usable", len(sets),
	)

	if len(sets) == 0 {
		transition(ctx, &state, StateFailed)
		obs.Fail()
		span.SetStatus(codes.Error, "all judges failed")
		return nil, ErrAllJudgesFailed
	}

	agg, err := score.AggregateSets(sets, p.thresholds)
	if err != nil {
		transition(ctx, &state, StateFailed)
		obs.Fail()
		return nil, fmt.Errorf("%w: %v", ErrAllJudgesFailed, err)
	}

	used := agg.Raw
	if len(sets) >= 2 {
		transition(ctx, &state, StateNormalizing)
		if norm, err := score.Normalize(sets); err == nil {
			used = norm
		} else {
			// Raw averages stand in; the reader never sees this.
			log.Debug("bias normalization unavailable", "error", err)
		}
	}

	transition(ctx, &state, StateWeighting)
	composite := score.Composite(used, weights)

	resp := shape(used, composite, agg, sets, contributing)
	transition(ctx, &state, StateDone)
	obs.Complete()
	return resp, nil
}

// scoreOne performs one judge's call and decode. All failures come back as
// *invoker.Failure so the collection loop can drop the judge uniformly.
func (p *Panel) scoreOne(ctx context.Context, id judge.Identity, system, user string) outcome {
	desc := adapter.Shape(id, system, user, p.limits)

	raw, err := p.caller.Invoke(ctx, id, desc)
	if err != nil {
		return outcome{err: err}
	}

	set, err := result.Parse(raw)
	if err != nil {
		metrics.RecordJudgeOutcome(id.ID, string(invoker.FailureParse))
		clog.FromContext(ctx).Warn("dropping unparseable judge reply",
			"judge", id.ID, "error", err)
		return outcome{err: &invoker.Failure{JudgeID: id.ID, Kind: invoker.FailureParse, Err: err}}
	}
	set.JudgeID = id.ID
	return outcome{set: set}
}

func transition(ctx context.Context, state *State, next State) {
	clog.FromContext(ctx).Debug("evaluation state", "from", string(*state), "to", string(next))
	*state = next
}

// shape builds the wire response from the round's artifacts. Statistics
// always describe the raw judge scores; normalization only replaces the
// per-dimension values used for the headline scores and the composite.
func shape(used map[score.Dimension]float64, composite float64, agg score.Aggregate, sets []score.Set, contributing []judge.Identity) *Response {
	high := agg.HighDisagreement
	if high == nil {
		high = []score.Dimension{}
	}

	judgeIDs := make([]string, len(contributing))
	details := make([]JudgeDetail, len(contributing))
	var notes []string
	for i, id := range contributing {
		judgeIDs[i] = id.ID
		details[i] = JudgeDetail{Model: id.Model, Scores: sets[i]}
		if n := strings.TrimSpace(sets[i].Notes); n != "" {
			notes = append(notes, fmt.Sprintf("[%s] %s", id.Name(), n))
		}
	}

	return &Response{
		Scores: ScoreBlock{
			Faithfulness:    round2(used[score.Faithfulness]),
			Structure:       round2(used[score.Structure]),
			Clarity:         round2(used[score.Clarity]),
			AnalysisDepth:   round2(used[score.AnalysisDepth]),
			ContextAccuracy: round2(used[score.ContextAccuracy]),
			Actionability:   round2(used[score.Actionability]),
			Conciseness:     round2(used[score.Conciseness]),
			CompositeScore:  round2(composite),

			EvaluatorNotes: strings.Join(notes, " | "),
			JudgeCount:     len(contributing),
			Judges:         judgeIDs,
			Consensus: Consensus{
				HighDisagreement: high,
				Statistics:       agg.Stats,
			},
			AverageConfidence: round2(score.AverageConfidence(sets)),
		},
		IndividualJudges: details,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
