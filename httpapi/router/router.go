/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package router mounts the HTTP surface onto a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kqlsight/kqlsight/httpapi/handler"
)

// SetupRoutes mounts every endpoint.
func SetupRoutes(router *gin.Engine, evaluate *handler.EvaluateHandler, query *handler.QueryHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/evaluate", evaluate.Evaluate)
		api.POST("/query", query.Query)
		api.POST("/test-connection", query.TestConnection)
		api.GET("/examples", query.Examples)
	}
}
