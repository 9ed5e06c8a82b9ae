/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"

	"github.com/kqlsight/kqlsight/httpapi/dto"
	"github.com/kqlsight/kqlsight/judge"
	"github.com/kqlsight/kqlsight/judge/panel"
)

// evaluateFailedMessage is the canonical body served when no judge produced
// a usable score. Clients match on this string.
const evaluateFailedMessage = "All judge models failed"

// Evaluator scores one explanation against a judge panel.
type Evaluator interface {
	Evaluate(ctx context.Context, req judge.Request) (*panel.Response, error)
}

// EvaluateHandler serves the judge panel over HTTP.
type EvaluateHandler struct {
	panel Evaluator
}

// NewEvaluateHandler returns a handler backed by the given panel.
func NewEvaluateHandler(panel Evaluator) *EvaluateHandler {
	return &EvaluateHandler{panel: panel}
}

// Evaluate scores one explanation and returns the aggregated verdict plus
// the raw per-judge detail.
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clog.FromContext(ctx).Warnf("Rejecting malformed evaluate request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.panel.Evaluate(ctx, judge.Request{
		Explanation: req.Explanation,
		Query:       req.TestCase.Query,
		Results: judge.ResultSample{
			Columns: req.TestCase.Results.Columns,
			Rows:    req.TestCase.Results.Rows,
		},
		Audience: req.TargetAudience,
	})
	if err != nil {
		if errors.Is(err, panel.ErrAllJudgesFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": evaluateFailedMessage})
			return
		}
		clog.FromContext(ctx).Errorf("Evaluation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
