/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the kqlsight service: a judge panel that scores
// LLM-written explanations of Log Analytics query results, plus the
// workspace query plumbing the explanations are built from.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-envconfig"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kqlsight/kqlsight/analytics"
	"github.com/kqlsight/kqlsight/httpapi/handler"
	"github.com/kqlsight/kqlsight/httpapi/middleware"
	"github.com/kqlsight/kqlsight/httpapi/router"
	"github.com/kqlsight/kqlsight/judge/invoker"
	"github.com/kqlsight/kqlsight/judge/panel"
	"github.com/kqlsight/kqlsight/judge/registry"
	"github.com/kqlsight/kqlsight/judge/score"
)

type config struct {
	Port       int  `env:"PORT,default=8080"`
	Production bool `env:"PRODUCTION,default=true"`

	// JudgeCatalog points at the YAML file describing the judge panel.
	JudgeCatalog string        `env:"JUDGE_CATALOG,default=judges.yaml"`
	JudgeTimeout time.Duration `env:"JUDGE_TIMEOUT,default=60s"`

	// Disagreement thresholds for flagging dimensions the judges split on.
	DisagreementStd   float64 `env:"DISAGREEMENT_STD,default=1.0"`
	DisagreementRange float64 `env:"DISAGREEMENT_RANGE,default=2"`

	// Azure AD application used for workspace queries. Optional: without
	// it the evaluation endpoint still works and query endpoints fail per
	// call.
	AzureTenantID     string `env:"AZURE_TENANT_ID"`
	AzureClientID     string `env:"AZURE_CLIENT_ID"`
	AzureClientSecret string `env:"AZURE_CLIENT_SECRET"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	reg, err := registry.Load(cfg.JudgeCatalog)
	if err != nil {
		clog.FatalContextf(ctx, "loading judge catalog: %v", err)
	}
	clog.InfoContextf(ctx, "Loaded judge catalog from %s: %d configured, %d usable",
		cfg.JudgeCatalog, reg.Len(), len(reg.ListAvailable()))

	judges := panel.New(reg,
		invoker.New(invoker.WithTimeout(cfg.JudgeTimeout)),
		panel.WithThresholds(score.Thresholds{
			StdAbove:   cfg.DisagreementStd,
			RangeAbove: cfg.DisagreementRange,
		}),
	)

	creds := analytics.Credentials{
		TenantID:     cfg.AzureTenantID,
		ClientID:     cfg.AzureClientID,
		ClientSecret: cfg.AzureClientSecret,
	}
	if err := creds.Validate(); err != nil {
		clog.WarnContextf(ctx, "Azure credentials incomplete, workspace queries will fail: %v", err)
	}
	queries := analytics.New(creds.TokenSource(ctx))

	catalog, err := analytics.Examples()
	if err != nil {
		clog.FatalContextf(ctx, "loading KQL examples: %v", err)
	}

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(otelgin.Middleware("kqlsight"))
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())
	router.SetupRoutes(engine,
		handler.NewEvaluateHandler(judges),
		handler.NewQueryHandler(queries, catalog),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// A judge round can run several retried 60s calls back to back, so
		// the write side stays generous.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		clog.InfoContextf(ctx, "Starting kqlsight on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			clog.FatalContextf(ctx, "server failed: %v", err)
		}
	}()

	<-ctx.Done()
	clog.InfoContextf(ctx, "Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		clog.ErrorContextf(shutdownCtx, "server shutdown: %v", err)
	}
}
