/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kqlsight/kqlsight/analytics"
	"github.com/kqlsight/kqlsight/httpapi/handler"
	"github.com/kqlsight/kqlsight/httpapi/router"
	"github.com/kqlsight/kqlsight/judge"
	"github.com/kqlsight/kqlsight/judge/panel"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubPanel struct{}

func (stubPanel) Evaluate(context.Context, judge.Request) (*panel.Response, error) {
	return &panel.Response{}, nil
}

type stubRunner struct{}

func (stubRunner) Query(context.Context, string, string, time.Duration) (*analytics.Result, error) {
	return &analytics.Result{}, nil
}

func (stubRunner) TestConnection(context.Context, string) error { return nil }

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	catalog, err := analytics.Examples()
	if err != nil {
		t.Fatalf("Examples() = %v", err)
	}
	engine := gin.New()
	router.SetupRoutes(engine,
		handler.NewEvaluateHandler(stubPanel{}),
		handler.NewQueryHandler(stubRunner{}, catalog),
	)
	return engine
}

func TestHealthRoute(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	testEngine(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	testEngine(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("metrics output missing the default runtime collectors")
	}
}

func TestAPIRoutesMounted(t *testing.T) {
	t.Parallel()

	engine := testEngine(t)
	for _, tc := range []struct {
		method string
		path   string
	}{
		{method: http.MethodPost, path: "/api/evaluate"},
		{method: http.MethodPost, path: "/api/query"},
		{method: http.MethodPost, path: "/api/test-connection"},
		{method: http.MethodGet, path: "/api/examples"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code == http.StatusNotFound {
			t.Errorf("%s %s is not mounted", tc.method, tc.path)
		}
	}
}
