// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSession drives the full session loop over in-memory streams and returns
// the emitted output lines.
func runSession(t *testing.T, server *Server, input string) []string {
	t.Helper()
	var out bytes.Buffer
	err := server.serve(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)
	raw := strings.TrimRight(out.String(), "\n")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func TestSessionInitializeScenario(t *testing.T) {
	server := newTestServer(t)
	lines := runSession(t, server, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`+"\n")
	require.Len(t, lines, 1)

	var resp struct {
		JSONRPC string `json:"jsonrpc"`
		ID      int    `json:"id"`
		Result  struct {
			ProtocolVersion string `json:"protocolVersion"`
			Capabilities    struct {
				Tools map[string]interface{} `json:"tools"`
			} `json:"capabilities"`
			ServerInfo Implementation `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "2024-11-05", resp.Result.ProtocolVersion)
	assert.NotNil(t, resp.Result.Capabilities.Tools)
	assert.Equal(t, "test-server", resp.Result.ServerInfo.Name)
}

func TestSessionUnknownToolScenario(t *testing.T) {
	server := newTestServer(t)
	lines := runSession(t, server,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope","arguments":{}}}`+"\n")
	require.Len(t, lines, 1)
	assert.JSONEq(t,
		`{"jsonrpc":"2.0","id":2,"error":{"code":-32600,"message":"Unknown tool: nope"}}`,
		lines[0])
}

func TestSessionNotificationProducesNoOutput(t *testing.T) {
	server := newTestServer(t)
	// Recognized or not, a message without an id is never answered.
	input := `{"jsonrpc":"2.0","method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n"
	lines := runSession(t, server, input)
	assert.Empty(t, lines)
}

func TestSessionSurvivesMalformedLines(t *testing.T) {
	server := newTestServer(t)
	input := "{not json\n" +
		"\n" +
		"   \n" +
		`{"jsonrpc":"2.0","id":1}` + "\n" + // missing method
		`{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n"
	lines := runSession(t, server, input)

	// Only the valid request is answered; the session never terminated.
	require.Len(t, lines, 1)
	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.Equal(t, float64(7), resp.ID)
}

func TestSessionResponsesPreserveArrivalOrder(t *testing.T) {
	server := newTestServer(t)
	input := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"text":"first"}}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"text":"second"}}}` + "\n"
	lines := runSession(t, server, input)
	require.Len(t, lines, 2)

	for i, wantID := range []float64{1, 2} {
		var resp JSONRPCResponse
		require.NoError(t, json.Unmarshal([]byte(lines[i]), &resp))
		assert.Equal(t, wantID, resp.ID)
	}
}

func TestSessionInterleavedRequestsAndNotifications(t *testing.T) {
	server := newTestServer(t)
	input := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"
	lines := runSession(t, server, input)

	require.Len(t, lines, 2)
	var first, second JSONRPCResponse
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, float64(1), first.ID)
	assert.Equal(t, float64(2), second.ID)
}

func TestSessionFinalLineWithoutNewline(t *testing.T) {
	server := newTestServer(t)
	// A last line terminated by EOF instead of a newline is still processed.
	lines := runSession(t, server, `{"jsonrpc":"2.0","id":3,"method":"ping"}`)
	require.Len(t, lines, 1)
	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.Equal(t, float64(3), resp.ID)
}

func TestSessionEmptyInput(t *testing.T) {
	server := newTestServer(t)
	lines := runSession(t, server, "")
	assert.Empty(t, lines)
}

func TestStepOutcomes(t *testing.T) {
	server := newTestServer(t)
	transport := newStdioTransport(server)
	var out bytes.Buffer
	writer := bufio.NewWriter(&out)
	ctx := context.Background()

	testCases := []struct {
		name string
		line string
		want stepOutcome
	}{
		{"blank line", "   \n", stepSkipped},
		{"malformed line", "{oops\n", stepDiscarded},
		{"notification", `{"jsonrpc":"2.0","method":"ping"}` + "\n", stepNotified},
		{"request", `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n", stepResponded},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := transport.step(ctx, tc.line, writer)
			require.NoError(t, err)
			assert.Equal(t, tc.want, outcome)
		})
	}
}

func TestSessionHasUniqueID(t *testing.T) {
	a := newStdioSession()
	b := newStdioSession()
	assert.NotEmpty(t, a.GetID())
	assert.NotEqual(t, a.GetID(), b.GetID())
}
