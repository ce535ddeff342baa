// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"io"
	"os"
)

// Server is an MCP server over stdio. Its capability tables are populated
// during startup and immutable for the rest of the process lifetime, so
// request handling reads them without coordination.
type Server struct {
	serverInfo      Implementation
	logger          Logger
	toolManager     *toolManager
	resourceManager *resourceManager
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets a custom logger.
func WithServerLogger(logger Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithToolMiddleware appends middlewares to the tool invocation chain.
func WithToolMiddleware(middlewares ...ToolMiddleware) ServerOption {
	return func(s *Server) {
		s.toolManager.use(middlewares...)
	}
}

// NewServer creates a server with the given identity.
func NewServer(name, version string, options ...ServerOption) *Server {
	server := &Server{
		serverInfo: Implementation{
			Name:    name,
			Version: version,
		},
		logger:          GetDefaultLogger(),
		toolManager:     newToolManager(),
		resourceManager: newResourceManager(),
	}
	for _, option := range options {
		option(server)
	}
	server.toolManager.withLogger(server.logger)
	server.resourceManager.withLogger(server.logger)
	return server
}

// GetServerInfo returns the server identity sent during the handshake.
func (s *Server) GetServerInfo() Implementation {
	return s.serverInfo
}

// RegisterTool adds a tool to the capability table.
func (s *Server) RegisterTool(tool *Tool, handler ToolHandlerFunc) {
	if tool == nil || handler == nil {
		s.logger.Errorf("RegisterTool: tool and handler cannot be nil")
		return
	}
	s.toolManager.registerTool(tool, handler)
	s.logger.Debugf("Registered tool: %s", tool.Name)
}

// RegisterResource adds a concrete resource to the capability table.
func (s *Server) RegisterResource(resource *Resource, handler ResourceHandlerFunc) {
	if resource == nil || handler == nil {
		s.logger.Errorf("RegisterResource: resource and handler cannot be nil")
		return
	}
	s.resourceManager.registerResource(resource, handler)
	s.logger.Debugf("Registered resource: %s", resource.URI)
}

// RegisterResourceTemplate adds a URI-template resource handler.
func (s *Server) RegisterResourceTemplate(template string, handler ResourceTemplateHandlerFunc) error {
	if err := s.resourceManager.registerTemplate(template, handler); err != nil {
		return err
	}
	s.logger.Debugf("Registered resource template: %s", template)
	return nil
}

// Start serves the process's stdio streams until end of input.
func (s *Server) Start() error {
	return s.StartWithContext(context.Background())
}

// StartWithContext serves the process's stdio streams until end of input or
// context cancellation.
func (s *Server) StartWithContext(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

// serve runs the session loop over arbitrary streams. Split out from Start so
// tests can drive the full loop with in-memory buffers.
func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := newStdioTransport(s)
	return transport.listen(ctx, in, out)
}
