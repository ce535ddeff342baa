// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"encoding/json"
)

// InitializeParams are the client's half of the handshake. Only the fields
// this server cares about are decoded.
type InitializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	ClientInfo      Implementation `json:"clientInfo"`
}

// handleRequest dispatches a request by method name and always produces
// exactly one response message.
//
// Unrecognized request methods are answered with an empty success payload
// rather than a "method not found" error. Clients probe for optional methods;
// an empty result lets their call complete instead of hanging or failing.
// Unknown notifications are accepted silently per JSON-RPC conventions.
func (s *Server) handleRequest(ctx context.Context, req *JSONRPCRequest) JSONRPCMessage {
	s.logger.Debugf("Handling request: %s (ID: %v)", req.Method, req.ID)

	switch req.Method {
	case MethodInitialize:
		return s.handleInitialize(ctx, req)
	case MethodPing:
		return newJSONRPCResponse(req.ID, struct{}{})
	case MethodToolsList:
		return s.toolManager.handleListTools(ctx, req)
	case MethodToolsCall:
		return s.toolManager.handleCallTool(ctx, req)
	case MethodResourcesList:
		return s.resourceManager.handleListResources(ctx, req)
	case MethodResourcesRead:
		return s.resourceManager.handleReadResource(ctx, req)
	default:
		s.logger.Warnf("Unknown method: %s", req.Method)
		return newJSONRPCResponse(req.ID, struct{}{})
	}
}

// handleNotification consumes a notification. Nothing is ever written back.
func (s *Server) handleNotification(ctx context.Context, req *JSONRPCRequest) {
	s.logger.Infof("Received notification: %s", req.Method)
}

// handleInitialize returns the fixed negotiation payload and marks the
// session as initialized.
func (s *Server) handleInitialize(ctx context.Context, req *JSONRPCRequest) JSONRPCMessage {
	if len(req.Params) > 0 {
		var params InitializeParams
		if err := json.Unmarshal(req.Params, &params); err == nil && params.ClientInfo.Name != "" {
			s.logger.Infof("Client connected: %s %s (protocol %s)",
				params.ClientInfo.Name, params.ClientInfo.Version, params.ProtocolVersion)
			if session, ok := sessionFromContext(ctx); ok {
				session.setClientInfo(params.ClientInfo)
			}
		}
	}
	if session, ok := sessionFromContext(ctx); ok {
		session.markInitialized()
	}

	capabilities := ServerCapabilities{
		Tools: &ToolsCapability{},
	}
	if s.resourceManager.hasResources() {
		capabilities.Resources = &ResourcesCapability{}
	}

	return newJSONRPCResponse(req.ID, &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    capabilities,
		ServerInfo:      s.serverInfo,
	})
}
