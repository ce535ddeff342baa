// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package main

import (
	"context"
	"fmt"
	"strings"

	leptosmcp "github.com/leptos-tools/leptos-mcp-go"
	"github.com/leptos-tools/leptos-mcp-go/internal/analyzer"
	"github.com/leptos-tools/leptos-mcp-go/internal/docs"
)

// docsURIPrefix is the scheme under which documentation sections are exposed
// as resources.
const docsURIPrefix = "leptos-docs://"

// registerTools wires the documentation and analysis tools into the server.
func registerTools(server *leptosmcp.Server) {
	listSections := leptosmcp.NewTool("list-sections",
		leptosmcp.WithDescription("List all available Leptos documentation sections with their use cases"),
	)
	server.RegisterTool(listSections, handleListSections)

	getDocumentation := leptosmcp.NewTool("get-documentation",
		leptosmcp.WithDescription("Get Leptos documentation for a specific section. "+
			"Pass section name like 'signals', 'components', 'routing'"),
		leptosmcp.WithString("section",
			leptosmcp.Required(),
			leptosmcp.Description("Section name or path to retrieve"),
		),
	)
	server.RegisterTool(getDocumentation, handleGetDocumentation)

	autofixer := leptosmcp.NewTool("leptos-autofixer",
		leptosmcp.WithDescription("Analyze Leptos code and suggest fixes for common issues"),
		leptosmcp.WithString("code",
			leptosmcp.Required(),
			leptosmcp.Description("Leptos code to analyze"),
		),
	)
	server.RegisterTool(autofixer, handleAutofixer)
}

func handleListSections(ctx context.Context, req *leptosmcp.CallToolRequest) (*leptosmcp.CallToolResult, error) {
	sections := docs.Sections()
	lines := make([]string, 0, len(sections))
	for _, s := range sections {
		lines = append(lines, fmt.Sprintf("* title: %s, use_cases: %s, path: %s", s.Title, s.UseCases, s.Path))
	}
	return leptosmcp.NewTextResult(strings.Join(lines, "\n")), nil
}

func handleGetDocumentation(ctx context.Context, req *leptosmcp.CallToolRequest) (*leptosmcp.CallToolResult, error) {
	section := req.ArgString("section")
	doc, ok := docs.Find(section)
	if !ok {
		// A lookup miss is application output, not a protocol error.
		return leptosmcp.NewTextResult(fmt.Sprintf(
			"Section '%s' not found. Use list-sections to see available sections.", section)), nil
	}
	return leptosmcp.NewTextResult(fmt.Sprintf("# %s\n\n%s", doc.Title, doc.Content)), nil
}

func handleAutofixer(ctx context.Context, req *leptosmcp.CallToolRequest) (*leptosmcp.CallToolResult, error) {
	return leptosmcp.NewTextResult(analyzer.Analyze(req.ArgString("code"))), nil
}

// registerResources additionally exposes each documentation section as a
// readable resource under leptos-docs://{section}.
func registerResources(server *leptosmcp.Server) error {
	for _, s := range docs.Sections() {
		section := s
		server.RegisterResource(&leptosmcp.Resource{
			URI:         docsURIPrefix + section.Path,
			Name:        section.Title,
			Description: "Use cases: " + section.UseCases,
			MimeType:    "text/markdown",
		}, func(ctx context.Context, req *leptosmcp.ReadResourceRequest) ([]leptosmcp.ResourceContents, error) {
			return []leptosmcp.ResourceContents{
				leptosmcp.TextResourceContents{
					URI:      req.Params.URI,
					MimeType: "text/markdown",
					Text:     section.Content,
				},
			}, nil
		})
	}

	// Template fallback so fuzzy section names resolve too.
	return server.RegisterResourceTemplate(docsURIPrefix+"{section}",
		func(ctx context.Context, uri string, vars map[string]string) ([]leptosmcp.ResourceContents, error) {
			doc, ok := docs.Find(vars["section"])
			if !ok {
				return nil, fmt.Errorf("no documentation section matches %q", vars["section"])
			}
			return []leptosmcp.ResourceContents{
				leptosmcp.TextResourceContents{
					URI:      uri,
					MimeType: "text/markdown",
					Text:     doc.Content,
				},
			}, nil
		})
}
