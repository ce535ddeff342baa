// Copyright (C) 2025 The leptos-mcp-go authors. All rights reserved.
//
// leptos-mcp-go is licensed under the Apache License Version 2.0.

package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCleanCode(t *testing.T) {
	code := `#[component]
fn Counter() -> impl IntoView {
    let (count, set_count) = signal(0);
    view! {
        <button on:click=move |_| set_count.update(|n| *n += 1)>
            {move || count.get()}
        </button>
    }
}`
	assert.Equal(t, AllClear, Analyze(code))
}

func TestAnalyzeHeuristics(t *testing.T) {
	testCases := []struct {
		name string
		code string
		want string
	}{
		{
			name: "untracked get in view",
			code: `view! { <p>{count.get()}</p> }`,
			want: "Found .get() in view without `move ||`",
		},
		{
			name: "get with move closure is fine",
			code: `view! { <p>{move || count.get()}</p> }`,
			want: AllClear,
		},
		{
			name: "signal binding naming",
			code: `let signal = signal(0);`,
			want: "Consider using `let (getter, setter) = signal(value)`",
		},
		{
			name: "println instead of tracing",
			code: `println!("debug: {}", value);`,
			want: "Use tracing macros",
		},
		{
			name: "view function without component attribute",
			code: `fn Header() -> impl IntoView { view! { <h1>"Hi"</h1> } }`,
			want: "should have #[component] attribute",
		},
		{
			name: "component attribute present",
			code: `#[component]
fn Header() -> impl IntoView { view! { <h1>{move || title.get()}</h1> } }`,
			want: AllClear,
		},
		{
			name: "server fn without ServerFnError",
			code: `#[server]
async fn save() -> Result<(), String> { Ok(()) }`,
			want: "Result<T, ServerFnError>",
		},
		{
			name: "deprecated create_signal",
			code: `let (count, set_count) = create_signal(0);`,
			want: "use `signal()` instead of `create_signal()`",
		},
		{
			name: "uncontrolled input value",
			code: `view! { <input type="text" value=move || name.get() on:input=move |ev| {} /> }`,
			want: "use `prop:value=` instead of `value=`",
		},
		{
			name: "prop value is fine",
			code: `view! { <input type="text" prop:value=move || name.get() /> }`,
			want: AllClear,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.code)
			if tc.want == AllClear {
				assert.Equal(t, AllClear, got)
				return
			}
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestAnalyzeMultipleFindings(t *testing.T) {
	code := `fn App() -> impl IntoView {
    let (count, set_count) = create_signal(0);
    println!("count is {}", count.get());
    view! { <p>{count.get()}</p> }
}`
	got := Analyze(code)
	lines := strings.Split(got, "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, got, "ERROR")
	assert.Contains(t, got, "WARNING")
	assert.Contains(t, got, "INFO")
}
