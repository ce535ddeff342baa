// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"encoding/json"
)

// The message codec frames the protocol: one newline-delimited JSON record per
// message. Both directions are pure functions; framing is the caller's job.

// parseJSONRPCRequest decodes one line of input into a request. It fails when
// the line is not valid JSON or the method field is absent, and deliberately
// does not inspect the params payload: required-field checks on params belong
// to the dispatcher.
func parseJSONRPCRequest(line []byte) (*JSONRPCRequest, error) {
	var req JSONRPCRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, newDecodeError("invalid JSON", err)
	}
	if req.Method == "" {
		return nil, newDecodeError("missing method", nil)
	}
	return &req, nil
}

// parseJSONRPCResponse decodes one line of output back into a response.
// Used by clients and round-trip tests; the server itself only encodes.
func parseJSONRPCResponse(line []byte) (*JSONRPCResponse, error) {
	var resp JSONRPCResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, newDecodeError("invalid JSON", err)
	}
	return &resp, nil
}

// marshalMessage serializes an outgoing message as a single line without the
// trailing newline. Encoding is total for every message type this package
// produces: json.Marshal escapes embedded newlines inside string fields, so a
// multi-line document in a text content block never breaks the framing.
func marshalMessage(msg JSONRPCMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// messageType classifies a decoded message. The presence of the correlation
// id is the sole discriminator between request and notification.
func messageType(req *JSONRPCRequest) JSONRPCMessageType {
	if req.IsNotification() {
		return JSONRPCMessageTypeNotification
	}
	return JSONRPCMessageTypeRequest
}
