// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	leptosmcp "github.com/leptos-tools/leptos-mcp-go"
)

const serverName = "leptos-mcp-server"

var rootCmd = &cobra.Command{
	Use:   "leptos-mcp",
	Short: "MCP server for Leptos documentation and code assistance",
	Long: `leptos-mcp is a Model Context Protocol server that provides Leptos
documentation and code assistance tools to AI agents.

It speaks JSON-RPC over stdio: requests are read line by line from stdin,
responses are written to stdout, and diagnostics go to stderr. Run it from
an MCP-capable client, not interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI. Startup failures are the only path to a non-zero
// exit; a closed stdin is a clean shutdown.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context) error {
	logger := leptosmcp.GetDefaultLogger()
	logger.Infof("Starting %s %s...", serverName, version)

	middlewares := []leptosmcp.ToolMiddleware{
		leptosmcp.NewLoggingMiddleware(logger),
		leptosmcp.NewRateLimitMiddleware(rate.Limit(50), 100),
	}

	endpoint := os.Getenv("LEPTOS_MCP_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:4317"
	}

	if exporter := telemetryExporter("LEPTOS_MCP_METRICS"); exporter != "" {
		recorder, shutdown, err := leptosmcp.NewOtelMetricsRecorder(
			leptosmcp.WithRecorderServiceName(serverName),
			leptosmcp.WithRecorderExporterType(exporter),
			leptosmcp.WithRecorderEndpoint(endpoint),
		)
		if err != nil {
			return fmt.Errorf("metrics setup failed: %w", err)
		}
		defer shutdownTelemetry(shutdown, logger)
		middlewares = append(middlewares, leptosmcp.NewMetricsMiddleware(recorder))
	}

	if exporter := telemetryExporter("LEPTOS_MCP_TRACES"); exporter != "" {
		shutdown, err := leptosmcp.InitTracerProvider(ctx, serverName, exporter, endpoint)
		if err != nil {
			return fmt.Errorf("tracing setup failed: %w", err)
		}
		defer shutdownTelemetry(shutdown, logger)
		middlewares = append(middlewares, leptosmcp.NewTracingMiddleware(nil))
	}

	server := leptosmcp.NewServer(serverName, version,
		leptosmcp.WithServerLogger(logger),
		leptosmcp.WithToolMiddleware(middlewares...),
	)

	registerTools(server)
	if err := registerResources(server); err != nil {
		return fmt.Errorf("resource registration failed: %w", err)
	}

	logger.Infof("Ready for STDIO communication")
	if err := server.StartWithContext(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	logger.Infof("Shutting down: end of input")
	return nil
}

// telemetryExporter reads an exporter selection from the environment.
// Returns "" when the variable is unset or explicitly off.
func telemetryExporter(envVar string) leptosmcp.OtelExporterType {
	switch v := os.Getenv(envVar); v {
	case "", "off":
		return ""
	case "stdout":
		return leptosmcp.ExporterStdout
	case "otlp":
		return leptosmcp.ExporterOTLP
	default:
		fmt.Fprintf(os.Stderr, "ignoring unknown %s value %q (want stdout, otlp or off)\n", envVar, v)
		return ""
	}
}

func shutdownTelemetry(shutdown func(context.Context) error, logger leptosmcp.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Warnf("Telemetry shutdown: %v", err)
	}
}
