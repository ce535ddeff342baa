// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Tool describes one operation advertised to peers: a unique name, a
// human-readable description, and an OpenAPI schema for its arguments.
// Tools are immutable after registration.
type Tool struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	InputSchema *openapi3.Schema `json:"inputSchema"`
}

// ToolOption configures a Tool during construction.
type ToolOption func(*Tool)

// PropertyOption configures a single argument schema.
type PropertyOption func(*openapi3.Schema)

// extension key used to smuggle required-ness from a property option up to
// the parent schema's required list.
const requiredExtension = "x-required"

// NewTool creates a tool with an object input schema built from the options.
func NewTool(name string, opts ...ToolOption) *Tool {
	tool := &Tool{
		Name:        name,
		InputSchema: openapi3.NewObjectSchema(),
	}
	tool.InputSchema.Properties = make(openapi3.Schemas)
	for _, opt := range opts {
		opt(tool)
	}
	return tool
}

// WithDescription sets the tool description.
func WithDescription(description string) ToolOption {
	return func(t *Tool) {
		t.Description = description
	}
}

// WithString declares a string argument.
func WithString(name string, opts ...PropertyOption) ToolOption {
	return withProperty(name, openapi3.NewStringSchema(), opts...)
}

// WithNumber declares a numeric argument.
func WithNumber(name string, opts ...PropertyOption) ToolOption {
	return withProperty(name, openapi3.NewFloat64Schema(), opts...)
}

// WithBoolean declares a boolean argument.
func WithBoolean(name string, opts ...PropertyOption) ToolOption {
	return withProperty(name, openapi3.NewBoolSchema(), opts...)
}

func withProperty(name string, schema *openapi3.Schema, opts ...PropertyOption) ToolOption {
	return func(t *Tool) {
		for _, opt := range opts {
			opt(schema)
		}
		if schema.Extensions != nil {
			if _, ok := schema.Extensions[requiredExtension]; ok {
				delete(schema.Extensions, requiredExtension)
				if len(schema.Extensions) == 0 {
					schema.Extensions = nil
				}
				t.InputSchema.Required = append(t.InputSchema.Required, name)
			}
		}
		t.InputSchema.Properties[name] = openapi3.NewSchemaRef("", schema)
	}
}

// Description sets the description of an argument.
func Description(description string) PropertyOption {
	return func(s *openapi3.Schema) {
		s.Description = description
	}
}

// Required marks an argument as required in the parent schema.
func Required() PropertyOption {
	return func(s *openapi3.Schema) {
		if s.Extensions == nil {
			s.Extensions = make(map[string]interface{})
		}
		s.Extensions[requiredExtension] = true
	}
}

// ToolHandlerFunc executes one tool invocation. Domain-level failures are
// reported through the result envelope; a returned error is converted into an
// error-flagged envelope by the manager and never becomes a protocol error.
type ToolHandlerFunc func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error)

// toolManager owns the capability table for tools. The table is populated
// during startup and read-only afterwards; enumeration order is registration
// order so that callers see a deterministic list.
type toolManager struct {
	mu          sync.RWMutex
	order       []string
	tools       map[string]*registeredTool
	middlewares []ToolMiddleware
	logger      Logger
}

type registeredTool struct {
	tool    *Tool
	handler ToolHandlerFunc
}

func newToolManager() *toolManager {
	return &toolManager{
		tools:  make(map[string]*registeredTool),
		logger: GetDefaultLogger(),
	}
}

func (m *toolManager) withLogger(logger Logger) {
	m.logger = logger
}

func (m *toolManager) use(middlewares ...ToolMiddleware) {
	m.middlewares = append(m.middlewares, middlewares...)
}

// registerTool adds a tool to the table. Re-registering a name replaces the
// handler but keeps the original position.
func (m *toolManager) registerTool(tool *Tool, handler ToolHandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tools[tool.Name]; !exists {
		m.order = append(m.order, tool.Name)
	}
	m.tools[tool.Name] = &registeredTool{tool: tool, handler: handler}
}

// listTools returns the capability table in registration order.
func (m *toolManager) listTools() []Tool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tools := make([]Tool, 0, len(m.order))
	for _, name := range m.order {
		tools = append(tools, *m.tools[name].tool)
	}
	return tools
}

func (m *toolManager) handleListTools(ctx context.Context, req *JSONRPCRequest) JSONRPCMessage {
	return newJSONRPCResponse(req.ID, &ListToolsResult{Tools: m.listTools()})
}

// handleCallTool validates the invocation envelope, resolves the tool by name
// and runs it through the middleware chain. Only the envelope itself is
// validated here; argument semantics belong to the tool.
func (m *toolManager) handleCallTool(ctx context.Context, req *JSONRPCRequest) JSONRPCMessage {
	if len(req.Params) == 0 || string(req.Params) == "null" {
		return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest, "Missing params", nil)
	}

	var params map[string]interface{}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest, "Missing tool name", nil)
	}

	name, ok := params["name"].(string)
	if !ok {
		return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest, "Missing tool name", nil)
	}

	arguments, _ := params["arguments"].(map[string]interface{})
	if arguments == nil {
		arguments = make(map[string]interface{})
	}

	m.mu.RLock()
	entry, exists := m.tools[name]
	m.mu.RUnlock()
	if !exists {
		return newJSONRPCErrorResponse(req.ID, ErrCodeInvalidRequest, fmt.Sprintf("Unknown tool: %s", name), nil)
	}

	callReq := &CallToolRequest{
		Params: CallToolParams{
			Name:      name,
			Arguments: arguments,
		},
	}

	result := m.callTool(ctx, entry, callReq)
	return newJSONRPCResponse(req.ID, result)
}

// callTool runs the handler through the middleware chain. It is the recovery
// boundary for a single invocation: handler errors and panics both degrade to
// an error-flagged result envelope, never to a broken session.
func (m *toolManager) callTool(ctx context.Context, entry *registeredTool, req *CallToolRequest) (result *CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("Tool %s panicked: %v", req.Params.Name, r)
			result = NewErrorResult(fmt.Sprintf("Tool %s failed unexpectedly", req.Params.Name))
		}
	}()

	handler := chainToolMiddleware(entry.handler, m.middlewares...)
	res, err := handler(ctx, req)
	if err != nil {
		m.logger.Warnf("Tool %s returned error: %v", req.Params.Name, err)
		return NewErrorResult(err.Error())
	}
	if res == nil {
		return NewErrorResult(fmt.Sprintf("Tool %s produced no result", req.Params.Name))
	}
	return res
}

// ArgString extracts a string argument, defaulting to empty when absent or of
// another type. Tools treat missing optional arguments as empty values.
func (r *CallToolRequest) ArgString(name string) string {
	if v, ok := r.Params.Arguments[name].(string); ok {
		return v
	}
	return ""
}
