// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracerProvider configures the OpenTelemetry tracer provider and returns
// a shutdown function. The stdout exporter writes to stderr for the same
// reason the logger does: stdout is the protocol stream.
func InitTracerProvider(ctx context.Context, serviceName string, exporterType OtelExporterType, endpoint string) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	var err error
	switch exporterType {
	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
	case ExporterOTLP:
		conn, connErr := initConn(endpoint)
		if connErr != nil {
			return nil, connErr
		}
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", exporterType)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("resource.New: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// NewTracingMiddleware opens a span per tool invocation. A nil tracer falls
// back to the globally registered provider.
func NewTracingMiddleware(tracer trace.Tracer) ToolMiddleware {
	if tracer == nil {
		tracer = otel.Tracer("github.com/leptos-tools/leptos-mcp-go")
	}
	return func(ctx context.Context, req *CallToolRequest, next ToolHandlerFunc) (*CallToolResult, error) {
		ctx, span := tracer.Start(ctx, "tools/call",
			trace.WithAttributes(attribute.String("mcp.tool", req.Params.Name)))
		defer span.End()

		result, err := next(ctx, req)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case result != nil && result.IsError:
			span.SetStatus(codes.Error, "tool reported failure")
		default:
			span.SetStatus(codes.Ok, "")
		}
		return result, err
	}
}
