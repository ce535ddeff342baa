// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	all := Sections()
	require.Len(t, all, 11)

	// Declaration order is the public enumeration order.
	assert.Equal(t, "getting-started", all[0].Path)
	assert.Equal(t, "suspense", all[10].Path)

	for _, s := range all {
		assert.NotEmpty(t, s.Title, "section %s", s.Path)
		assert.NotEmpty(t, s.UseCases, "section %s", s.Path)
		assert.NotEmpty(t, s.Content, "section %s has no embedded body", s.Path)
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	first := Sections()
	first[0].Title = "mutated"
	assert.Equal(t, "Getting Started", Sections()[0].Title)
}

func TestFind(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		wantPath string
		wantOK   bool
	}{
		{"exact path", "signals", "signals", true},
		{"exact title", "Routing", "routing", true},
		{"case insensitive", "SIGNALS", "signals", true},
		{"substring of path", "server-func", "server-functions", true},
		{"substring of title", "Error", "error-handling", true},
		{"no match", "quantum", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := Find(tc.query)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantPath, s.Path)
			}
		})
	}
}

func TestFindAmbiguousQueryReturnsFirstDeclared(t *testing.T) {
	// "s" matches several sections; the first declared wins so lookups are
	// deterministic.
	s, ok := Find("s")
	require.True(t, ok)
	assert.Equal(t, "getting-started", s.Path)
}
