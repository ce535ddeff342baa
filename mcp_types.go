// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"encoding/json"
)

// JSONRPCVersion is the protocol tag carried by every message on the wire.
const JSONRPCVersion = "2.0"

// ProtocolVersion is the MCP protocol revision this server negotiates.
const ProtocolVersion = "2024-11-05"

// Method names recognized by the dispatcher.
const (
	MethodInitialize    = "initialize"
	MethodPing          = "ping"
	MethodToolsList     = "tools/list"
	MethodToolsCall     = "tools/call"
	MethodResourcesList = "resources/list"
	MethodResourcesRead = "resources/read"
)

const (
	// ContentTypeText represents text content type.
	ContentTypeText = "text"
)

// JSONRPCMessage is any message that can be written to the protocol stream.
type JSONRPCMessage interface{}

// JSONRPCMessageType classifies a raw incoming message.
type JSONRPCMessageType string

const (
	// JSONRPCMessageTypeRequest is a method call carrying an id.
	JSONRPCMessageTypeRequest JSONRPCMessageType = "request"
	// JSONRPCMessageTypeNotification is a method call without an id; it is never answered.
	JSONRPCMessageTypeNotification JSONRPCMessageType = "notification"
)

// JSONRPCRequest represents a single incoming JSON-RPC request or notification.
// The id discriminates the two: a nil ID means notification.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the message carries no correlation id.
func (r *JSONRPCRequest) IsNotification() bool {
	return r.ID == nil
}

// JSONRPCResponse represents a successful JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result"`
}

// JSONRPCErrorDetail is the error descriptor carried by an error response.
type JSONRPCErrorDetail struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSONRPCError represents a JSON-RPC error response.
type JSONRPCError struct {
	JSONRPC string             `json:"jsonrpc"`
	ID      interface{}        `json:"id"`
	Error   JSONRPCErrorDetail `json:"error"`
}

// Implementation describes the name and version of an MCP implementation.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability describes the server's tool support.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ResourcesCapability describes the server's resource support.
type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe,omitempty"`
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerCapabilities declares the capability classes advertised during the handshake.
type ServerCapabilities struct {
	Tools     *ToolsCapability     `json:"tools,omitempty"`
	Resources *ResourcesCapability `json:"resources,omitempty"`
}

// InitializeResult is the fixed negotiation payload returned for initialize.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
}

// Content represents different types of message content.
// Only text content is produced by this server; the envelope exists so that
// richer content types can be added without a wire-format break.
type Content interface {
	isContent()
}

// TextContent represents text content.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (TextContent) isContent() {}

// NewTextContent creates a new text content block.
func NewTextContent(text string) TextContent {
	return TextContent{
		Type: ContentTypeText,
		Text: text,
	}
}

// ListToolsResult is the payload returned for tools/list.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams are the parameters of a tools/call request.
type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// CallToolRequest is the invocation handed to a tool handler.
type CallToolRequest struct {
	Params CallToolParams
}

// CallToolResult is the invocation-result envelope returned for tools/call.
// Domain-level failures set IsError and carry their description as content;
// they are deliberately not protocol-level errors.
type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// NewTextResult wraps text in a successful invocation-result envelope.
func NewTextResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []Content{NewTextContent(text)},
	}
}

// NewErrorResult wraps a failure description in an invocation-result envelope.
func NewErrorResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []Content{NewTextContent(text)},
		IsError: true,
	}
}

// Resource describes a piece of content the server can serve by URI.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ListResourcesResult is the payload returned for resources/list.
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// ReadResourceParams are the parameters of a resources/read request.
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ResourceContents represents the contents of a read resource.
type ResourceContents interface {
	isResourceContents()
}

// TextResourceContents is resource content carried as text.
type TextResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

func (TextResourceContents) isResourceContents() {}

// ReadResourceResult is the payload returned for resources/read.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}
