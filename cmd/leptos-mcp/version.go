// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via ldflags at release time.
var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("leptos-mcp %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}
