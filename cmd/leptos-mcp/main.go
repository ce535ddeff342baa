// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package main

func main() {
	Execute()
}
