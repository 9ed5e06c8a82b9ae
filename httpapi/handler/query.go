/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"

	"github.com/kqlsight/kqlsight/analytics"
	"github.com/kqlsight/kqlsight/httpapi/dto"
)

// QueryRunner executes KQL against a Log Analytics workspace.
type QueryRunner interface {
	Query(ctx context.Context, workspaceID, kql string, timespan time.Duration) (*analytics.Result, error)
	TestConnection(ctx context.Context, workspaceID string) error
}

// QueryHandler serves workspace queries and the example catalog.
type QueryHandler struct {
	runner   QueryRunner
	examples map[string]analytics.Category
}

// NewQueryHandler returns a handler backed by the given runner.
func NewQueryHandler(runner QueryRunner, examples map[string]analytics.Category) *QueryHandler {
	return &QueryHandler{runner: runner, examples: examples}
}

// Query runs one KQL query and returns its tables.
func (h *QueryHandler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	req.Query = strings.TrimSpace(req.Query)
	if req.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workspace ID is required"})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}
	if req.TimespanHours <= 0 {
		req.TimespanHours = 1
	}

	result, err := h.runner.Query(ctx, req.WorkspaceID, req.Query, time.Duration(req.TimespanHours)*time.Hour)
	if err != nil {
		var apiErr *analytics.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Error()})
			return
		}
		clog.FromContext(ctx).Errorf("Query execution failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query execution failed"})
		return
	}

	resp := dto.QueryResponse{
		Success:   true,
		Tables:    make([]dto.QueryTable, 0, len(result.Tables)),
		TotalRows: result.TotalRows,
	}
	for _, table := range result.Tables {
		resp.Tables = append(resp.Tables, dto.QueryTable{
			Name:     table.Name,
			Columns:  table.Columns,
			Rows:     table.Rows,
			RowCount: len(table.Rows),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// TestConnection probes a workspace with a trivial query. Probe failures
// come back as a 200 with success=false so the UI can show the message.
func (h *QueryHandler) TestConnection(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	if req.WorkspaceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workspace ID is required"})
		return
	}

	if err := h.runner.TestConnection(ctx, req.WorkspaceID); err != nil {
		clog.FromContext(ctx).Warnf("Workspace probe failed: %v", err)
		c.JSON(http.StatusOK, dto.TestConnectionResponse{
			Success: false,
			Message: fmt.Sprintf("Connection failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TestConnectionResponse{
		Success: true,
		Message: "Successfully connected to workspace",
	})
}

// Examples returns the canned KQL catalog grouped by scenario.
func (h *QueryHandler) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, h.examples)
}
