// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// stdioSession represents the single peer on the other end of the stream.
type stdioSession struct {
	id          string
	createdAt   time.Time
	initialized atomic.Bool
	clientInfo  atomic.Value
}

func newStdioSession() *stdioSession {
	return &stdioSession{
		id:        uuid.NewString(),
		createdAt: time.Now(),
	}
}

// GetID returns the session ID.
func (s *stdioSession) GetID() string {
	return s.id
}

func (s *stdioSession) markInitialized() {
	s.initialized.Store(true)
}

// Initialized reports whether the handshake has completed.
func (s *stdioSession) Initialized() bool {
	return s.initialized.Load()
}

func (s *stdioSession) setClientInfo(info Implementation) {
	s.clientInfo.Store(info)
}

// ClientInfo returns the peer identity sent during the handshake, if any.
func (s *stdioSession) ClientInfo() (Implementation, bool) {
	info, ok := s.clientInfo.Load().(Implementation)
	return info, ok
}

// stepOutcome is the per-line result of the session loop. Making the outcome
// explicit keeps the loop's state machine visible and testable: blank lines
// and malformed lines continue the session, only stream errors terminate it.
type stepOutcome int

const (
	// stepSkipped: blank or whitespace-only line, nothing to do.
	stepSkipped stepOutcome = iota
	// stepDiscarded: malformed line, logged and dropped.
	stepDiscarded
	// stepNotified: notification consumed, no output produced.
	stepNotified
	// stepResponded: response written and flushed.
	stepResponded
)

// stdioTransport drives the read, decode, dispatch, write cycle over a pair
// of streams. Processing is strictly sequential: one line is fully handled,
// and its response flushed, before the next line is read. Responses therefore
// leave in exact arrival order of their requests.
type stdioTransport struct {
	server  *Server
	logger  Logger
	session *stdioSession
}

func newStdioTransport(server *Server) *stdioTransport {
	return &stdioTransport{
		server:  server,
		logger:  server.logger,
		session: newStdioSession(),
	}
}

// listen consumes stdin until end of input. EOF is a clean shutdown, not an
// error; only unrecoverable stream failures propagate.
func (t *stdioTransport) listen(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	reader := bufio.NewReader(stdin)
	writer := bufio.NewWriter(stdout)
	ctx = setSessionToContext(ctx, t.session)

	t.logger.Debugf("Session %s started", t.session.GetID())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if _, err := t.step(ctx, line, writer); err != nil {
				return err
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				t.logger.Debugf("Session %s ended: end of input", t.session.GetID())
				return nil
			}
			return readErr
		}
	}
}

// step processes one line. The returned error is fatal (stream-level); every
// per-message failure is absorbed here and reported through the outcome.
func (t *stdioTransport) step(ctx context.Context, line string, writer *bufio.Writer) (stepOutcome, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return stepSkipped, nil
	}

	req, err := parseJSONRPCRequest([]byte(line))
	if err != nil {
		t.logger.Errorf("Failed to parse request: %v - line: %s", err, line)
		return stepDiscarded, nil
	}

	if messageType(req) == JSONRPCMessageTypeNotification {
		t.server.handleNotification(ctx, req)
		return stepNotified, nil
	}

	response := t.server.handleRequest(ctx, req)
	data, err := marshalMessage(response)
	if err != nil {
		return stepDiscarded, err
	}

	if _, err := writer.Write(data); err != nil {
		return stepDiscarded, err
	}
	if err := writer.WriteByte('\n'); err != nil {
		return stepDiscarded, err
	}
	// Flush per response so the peer observes each reply promptly.
	if err := writer.Flush(); err != nil {
		return stepDiscarded, err
	}
	return stepResponded, nil
}
