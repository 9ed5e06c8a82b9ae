/*
Copyright 2026 The kqlsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package middleware carries the cross-cutting request plumbing for the
// HTTP surface.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
)

// Recovery turns panics into 500 responses instead of dropped connections.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				clog.FromContext(c.Request.Context()).
					With("method", c.Request.Method).
					With("path", c.Request.URL.Path).
					With("stack", string(debug.Stack())).
					Errorf("Recovered from panic: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// Logger emits one structured line per request after the handler ran.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		log := clog.FromContext(c.Request.Context()).With(
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log = log.With("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request failed")
		case status >= 400:
			log.Warn("request error")
		default:
			log.Info("request")
		}
	}
}
