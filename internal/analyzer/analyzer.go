// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

// Package analyzer contains heuristics for common problems in Leptos code.
//
// The checks are deliberately shallow, substring matches, not parsing: the
// goal is fast, dependency-free advice for an AI agent mid-edit, not a lint
// pass that must be correct on every input.
package analyzer

import "strings"

// Suggestion severities, prefixed onto every suggestion line.
const (
	severityError   = "ERROR"
	severityWarning = "WARNING"
	severityInfo    = "INFO"
)

type check struct {
	applies func(code string) bool
	message string
}

var checks = []check{
	{
		// .get() directly in a view is evaluated once and never tracked.
		applies: func(code string) bool {
			return strings.Contains(code, ".get()") &&
				!strings.Contains(code, "move ||") &&
				strings.Contains(code, "view!")
		},
		message: severityError + ": Found .get() in view without `move ||`. " +
			"Reactive values should use `{move || value.get()}`",
	},
	{
		applies: func(code string) bool {
			return strings.Contains(code, "let signal =") || strings.Contains(code, "create_signal")
		},
		message: severityWarning + ": Consider using `let (getter, setter) = signal(value)` pattern for clarity",
	},
	{
		applies: func(code string) bool {
			return strings.Contains(code, "println!")
		},
		message: severityWarning + ": Use tracing macros (tracing::info!, tracing::debug!) instead of println!",
	},
	{
		applies: func(code string) bool {
			return strings.Contains(code, "-> impl IntoView") && !strings.Contains(code, "#[component]")
		},
		message: severityError + ": Functions returning `impl IntoView` should have #[component] attribute",
	},
	{
		applies: func(code string) bool {
			return strings.Contains(code, "#[server") && !strings.Contains(code, "ServerFnError")
		},
		message: severityInfo + ": Server functions should return Result<T, ServerFnError>",
	},
	{
		applies: func(code string) bool {
			return strings.Contains(code, "create_signal")
		},
		message: severityInfo + ": In Leptos 0.8+, use `signal()` instead of `create_signal()`",
	},
	{
		// value= only sets the initial value; controlled inputs need the property.
		applies: func(code string) bool {
			return strings.Contains(code, "value=") &&
				!strings.Contains(code, "prop:value=") &&
				strings.Contains(code, "<input")
		},
		message: severityWarning + ": For controlled inputs, use `prop:value=` instead of `value=`",
	},
}

// AllClear is returned when no check fires.
const AllClear = "No issues found. Code looks good!"

// Analyze runs every heuristic over the code and returns one suggestion per
// line, or AllClear when nothing fires.
func Analyze(code string) string {
	var suggestions []string
	for _, c := range checks {
		if c.applies(code) {
			suggestions = append(suggestions, c.message)
		}
	}
	if len(suggestions) == 0 {
		return AllClear
	}
	return strings.Join(suggestions, "\n")
}
