// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestChainToolMiddlewareOrder(t *testing.T) {
	var trace []string
	mark := func(name string) ToolMiddleware {
		return func(ctx context.Context, req *CallToolRequest, next ToolHandlerFunc) (*CallToolResult, error) {
			trace = append(trace, name+" in")
			result, err := next(ctx, req)
			trace = append(trace, name+" out")
			return result, err
		}
	}
	handler := func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
		trace = append(trace, "handler")
		return NewTextResult("done"), nil
	}

	chained := chainToolMiddleware(handler, mark("first"), mark("second"))
	result, err := chained(context.Background(), &CallToolRequest{Params: CallToolParams{Name: "t"}})
	require.NoError(t, err)
	require.NotNil(t, result)

	// First registered is outermost.
	assert.Equal(t, []string{"first in", "second in", "handler", "second out", "first out"}, trace)
}

func TestChainToolMiddlewareEmpty(t *testing.T) {
	handler := func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
		return NewTextResult("bare"), nil
	}
	result, err := chainToolMiddleware(handler)(context.Background(), &CallToolRequest{})
	require.NoError(t, err)
	assert.Equal(t, "bare", result.Content[0].(TextContent).Text)
}

func TestRateLimitMiddleware(t *testing.T) {
	// Zero refill with a burst of two: two calls pass, the third is rejected.
	mw := NewRateLimitMiddleware(rate.Limit(0), 2)
	handler := func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
		return NewTextResult("ok"), nil
	}
	req := &CallToolRequest{Params: CallToolParams{Name: "echo"}}

	for i := 0; i < 2; i++ {
		_, err := mw(context.Background(), req, handler)
		require.NoError(t, err)
	}
	_, err := mw(context.Background(), req, handler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded for tool echo")
}

func TestRateLimitErrorBecomesDomainError(t *testing.T) {
	server := NewServer("limited", "0.0.1",
		WithServerLogger(noopLogger{}),
		WithToolMiddleware(NewRateLimitMiddleware(rate.Limit(0), 1)),
	)
	server.RegisterTool(NewTool("echo"), func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
		return NewTextResult("ok"), nil
	})

	call := func(id float64) *CallToolResult {
		msg := server.handleRequest(context.Background(),
			request(id, MethodToolsCall, `{"name":"echo","arguments":{}}`))
		resp, ok := msg.(*JSONRPCResponse)
		require.True(t, ok, "expected response, got %T", msg)
		result, ok := resp.Result.(*CallToolResult)
		require.True(t, ok)
		return result
	}

	assert.False(t, call(1).IsError)
	over := call(2)
	assert.True(t, over.IsError, "rejected call surfaces as domain error, not protocol error")
	require.Len(t, over.Content, 1)
	assert.Contains(t, over.Content[0].(TextContent).Text, "rate limit exceeded")
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	mw := NewLoggingMiddleware(noopLogger{})
	handler := func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
		return NewErrorResult("domain failure"), nil
	}
	result, err := mw(context.Background(), &CallToolRequest{Params: CallToolParams{Name: "t"}}, handler)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
