// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// ToolMiddleware wraps tool execution. Middlewares run in registration order:
// the first registered is the outermost.
type ToolMiddleware func(ctx context.Context, req *CallToolRequest, next ToolHandlerFunc) (*CallToolResult, error)

// chainToolMiddleware composes middlewares around a handler.
func chainToolMiddleware(handler ToolHandlerFunc, middlewares ...ToolMiddleware) ToolHandlerFunc {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw := middlewares[i]
		next := wrapped
		wrapped = func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			return mw(ctx, req, next)
		}
	}
	return wrapped
}

// NewLoggingMiddleware logs every invocation with its outcome and duration.
func NewLoggingMiddleware(logger Logger) ToolMiddleware {
	return func(ctx context.Context, req *CallToolRequest, next ToolHandlerFunc) (*CallToolResult, error) {
		start := time.Now()
		result, err := next(ctx, req)
		elapsed := time.Since(start)
		switch {
		case err != nil:
			logger.Warnf("tool=%s duration=%s error=%v", req.Params.Name, elapsed, err)
		case result != nil && result.IsError:
			logger.Infof("tool=%s duration=%s domain_error=true", req.Params.Name, elapsed)
		default:
			logger.Debugf("tool=%s duration=%s ok", req.Params.Name, elapsed)
		}
		return result, err
	}
}

// NewRateLimitMiddleware rejects invocations beyond the configured rate.
// A rejected call is a domain-level failure from the peer's perspective, so
// it surfaces as an error result rather than a protocol error.
func NewRateLimitMiddleware(limit rate.Limit, burst int) ToolMiddleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(ctx context.Context, req *CallToolRequest, next ToolHandlerFunc) (*CallToolResult, error) {
		if !limiter.Allow() {
			return nil, fmt.Errorf("rate limit exceeded for tool %s", req.Params.Name)
		}
		return next(ctx, req)
	}
}
