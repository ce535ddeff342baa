// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import "context"

type contextKey int

const sessionContextKey contextKey = iota

// setSessionToContext attaches the stdio session to a request context.
func setSessionToContext(ctx context.Context, session *stdioSession) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// sessionFromContext extracts the stdio session from a request context.
func sessionFromContext(ctx context.Context) (*stdioSession, bool) {
	session, ok := ctx.Value(sessionContextKey).(*stdioSession)
	return session, ok
}
