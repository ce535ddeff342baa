// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package leptosmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// OtelExporterType selects where telemetry is exported.
//
// ExporterStdout writes to stderr (stdout belongs to the protocol stream) and
// is meant for local development. ExporterOTLP ships telemetry to a collector
// over gRPC.
type OtelExporterType string

const (
	// ExporterStdout writes telemetry to stderr in a human-readable form.
	ExporterStdout OtelExporterType = "stdout"
	// ExporterOTLP exports telemetry to an OTLP-compatible collector.
	ExporterOTLP OtelExporterType = "otlp"
)

// MetricsRecorder abstracts metric reporting for the tool-call middleware.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	// RecordCall increments the invocation counter for a tool.
	RecordCall(ctx context.Context, tool string)
	// RecordError increments the failure counter for a tool.
	RecordError(ctx context.Context, tool string)
	// RecordLatency records the observed invocation latency in milliseconds.
	RecordLatency(ctx context.Context, tool string, latencyMs float64)
	// RecordInFlight adjusts the in-flight invocation gauge by count.
	RecordInFlight(ctx context.Context, tool string, count int64)
}

// RecorderConfig controls how the OpenTelemetry recorder is built.
type RecorderConfig struct {
	serviceName  string
	exporterType OtelExporterType
	endpoint     string
}

// RecorderOption applies functional options to RecorderConfig.
type RecorderOption func(*RecorderConfig)

// WithRecorderServiceName overrides the OTel resource service.name.
func WithRecorderServiceName(serviceName string) RecorderOption {
	return func(o *RecorderConfig) {
		o.serviceName = serviceName
	}
}

// WithRecorderExporterType selects the exporter implementation.
func WithRecorderExporterType(exporterType OtelExporterType) RecorderOption {
	return func(o *RecorderConfig) {
		o.exporterType = exporterType
	}
}

// WithRecorderEndpoint sets the OTLP endpoint; ignored for the stdout exporter.
func WithRecorderEndpoint(endpoint string) RecorderOption {
	return func(o *RecorderConfig) {
		o.endpoint = endpoint
	}
}

func defaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		serviceName:  "leptos-mcp",
		exporterType: ExporterStdout,
		endpoint:     "localhost:4317",
	}
}

// initConn initializes the gRPC connection used by the OTLP exporters.
// Insecure credentials; for production collectors put TLS in front.
func initConn(endpoint string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}
	return conn, nil
}

func initMeterProvider(ctx context.Context, res *resource.Resource, exporterType OtelExporterType, endpoint string) (func(context.Context) error, error) {
	var exporter sdkmetric.Exporter
	var err error
	switch exporterType {
	case ExporterStdout:
		// Encoder aimed at stderr: stdout carries the protocol stream.
		exporter, err = stdoutmetric.New(stdoutmetric.WithEncoder(json.NewEncoder(os.Stderr)))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metric exporter: %w", err)
		}
	case ExporterOTLP:
		conn, connErr := initConn(endpoint)
		if connErr != nil {
			return nil, connErr
		}
		exporter, err = otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", exporterType)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)
	return meterProvider.Shutdown, nil
}

// OtelMetricsRecorder reports tool-call metrics through OpenTelemetry:
//   - mcp_tool_calls_total (counter): invocations by tool
//   - mcp_tool_errors_total (counter): failed invocations by tool
//   - mcp_tool_duration_ms (histogram): invocation latency in milliseconds
//   - mcp_tool_calls_in_flight (updowncounter): active invocations
type OtelMetricsRecorder struct {
	callCounter   metric.Int64Counter
	errorCounter  metric.Int64Counter
	latencyHist   metric.Float64Histogram
	inFlightGauge metric.Int64UpDownCounter
}

// NewOtelMetricsRecorder constructs the recorder and returns a shutdown
// function that flushes pending telemetry.
func NewOtelMetricsRecorder(options ...RecorderOption) (MetricsRecorder, func(ctx context.Context) error, error) {
	cfg := defaultRecorderConfig()
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	ctx := context.Background()
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.serviceName),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("resource.New: %w", err)
	}

	shutdown, err := initMeterProvider(ctx, res, cfg.exporterType, cfg.endpoint)
	if err != nil {
		return nil, nil, err
	}

	meter := otel.Meter("github.com/leptos-tools/leptos-mcp-go")
	callCounter, _ := meter.Int64Counter("mcp_tool_calls_total",
		metric.WithDescription("Total number of tool invocations"))
	errorCounter, _ := meter.Int64Counter("mcp_tool_errors_total",
		metric.WithDescription("Total number of failed tool invocations"))
	latencyHist, _ := meter.Float64Histogram("mcp_tool_duration_ms",
		metric.WithDescription("Tool invocation latency in ms"), metric.WithUnit("ms"))
	inFlightGauge, _ := meter.Int64UpDownCounter("mcp_tool_calls_in_flight",
		metric.WithDescription("Number of tool invocations in flight"))

	recorder := &OtelMetricsRecorder{
		callCounter:   callCounter,
		errorCounter:  errorCounter,
		latencyHist:   latencyHist,
		inFlightGauge: inFlightGauge,
	}
	return recorder, shutdown, nil
}

// RecordCall increments the invocation counter for the given tool.
func (r *OtelMetricsRecorder) RecordCall(ctx context.Context, tool string) {
	r.callCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordError increments the failure counter for the given tool.
func (r *OtelMetricsRecorder) RecordError(ctx context.Context, tool string) {
	r.errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordLatency records the latency in milliseconds for the given tool.
func (r *OtelMetricsRecorder) RecordLatency(ctx context.Context, tool string, latencyMs float64) {
	r.latencyHist.Record(ctx, latencyMs, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordInFlight adjusts the in-flight gauge by count.
func (r *OtelMetricsRecorder) RecordInFlight(ctx context.Context, tool string, count int64) {
	r.inFlightGauge.Add(ctx, count, metric.WithAttributes(attribute.String("tool", tool)))
}

// NewMetricsMiddleware instruments tool invocations with the given recorder.
// A nil recorder makes the middleware a no-op.
func NewMetricsMiddleware(recorder MetricsRecorder) ToolMiddleware {
	return func(ctx context.Context, req *CallToolRequest, next ToolHandlerFunc) (*CallToolResult, error) {
		if recorder == nil {
			return next(ctx, req)
		}
		tool := req.Params.Name

		recorder.RecordInFlight(ctx, tool, 1)
		defer recorder.RecordInFlight(ctx, tool, -1)
		recorder.RecordCall(ctx, tool)

		start := time.Now()
		result, err := next(ctx, req)
		recorder.RecordLatency(ctx, tool, float64(time.Since(start).Milliseconds()))

		if err != nil || (result != nil && result.IsError) {
			recorder.RecordError(ctx, tool)
		}
		return result, err
	}
}
