// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

// Package docs holds the embedded Leptos documentation corpus.
//
// The corpus is fixed at build time: section metadata lives here, section
// bodies are embedded from content/*.md. Everything is read-only after
// process start.
package docs

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Section is one documentation section.
type Section struct {
	// Title is the human-readable section title.
	Title string
	// Path is the stable lookup key, e.g. "getting-started".
	Path string
	// UseCases are comma-separated keywords describing when the section applies.
	UseCases string
	// Content is the full markdown body.
	Content string
}

var sections = []Section{
	{
		Title:    "Getting Started",
		Path:     "getting-started",
		UseCases: "new project, setup, installation, basics, hello world",
	},
	{
		Title:    "Components",
		Path:     "components",
		UseCases: "UI, view, component, props, children, #[component], always",
	},
	{
		Title:    "Signals",
		Path:     "signals",
		UseCases: "state, reactivity, signals, derived, effects, get, set, read, write, update, always",
	},
	{
		Title:    "Views",
		Path:     "views",
		UseCases: "view macro, dynamic classes, dynamic styles, attributes, class:, style:, events, always",
	},
	{
		Title:    "Resources",
		Path:     "resources",
		UseCases: "async, data loading, Resource, LocalResource, OnceResource, fetch, API",
	},
	{
		Title:    "Actions",
		Path:     "actions",
		UseCases: "mutations, POST, forms, ActionForm, ServerAction, submit, create, update, delete",
	},
	{
		Title:    "Server Functions",
		Path:     "server-functions",
		UseCases: "backend, API, database, server, SSR, #[server], extractors, Axum",
	},
	{
		Title:    "Routing",
		Path:     "routing",
		UseCases: "navigation, pages, routes, params, nested routes, Router",
	},
	{
		Title:    "Forms",
		Path:     "forms",
		UseCases: "form, input, validation, submit, controlled input, prop:value",
	},
	{
		Title:    "Error Handling",
		Path:     "error-handling",
		UseCases: "errors, ErrorBoundary, Result, ServerFnError, try",
	},
	{
		Title:    "Suspense",
		Path:     "suspense",
		UseCases: "loading, async, Suspense, Transition, streaming, fallback",
	},
}

func init() {
	for i := range sections {
		body, err := contentFS.ReadFile(fmt.Sprintf("content/%s.md", sections[i].Path))
		if err != nil {
			// A missing body is a packaging bug, not a runtime condition.
			panic(fmt.Sprintf("docs: missing embedded content for %q: %v", sections[i].Path, err))
		}
		sections[i].Content = string(body)
	}
}

// Sections returns all documentation sections in declaration order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Find returns the first section whose path or title contains the query,
// case-insensitively.
func Find(query string) (Section, bool) {
	q := strings.ToLower(query)
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Path), q) || strings.Contains(strings.ToLower(s.Title), q) {
			return s, true
		}
	}
	return Section{}, false
}
