// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string // substrings that must appear
		reject []string // substrings that must not appear
	}{
		{
			name:   "heading and emphasis",
			source: "# Title\n\nSome **bold** and *italic* text.",
			want:   []string{"<h1", "Title", "<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:   "link",
			source: "[home](https://example.com)",
			want:   []string{`href="https://example.com"`, ">home</a>"},
		},
		{
			name:   "code block",
			source: "```\nfmt.Println(\"hi\")\n```",
			want:   []string{"<pre>", "<code>", "fmt.Println"},
		},
		{
			name:   "script tags never survive",
			source: "hello <script>alert(1)</script> world",
			want:   []string{"hello", "world"},
			reject: []string{"<script>", "</script>"},
		},
		{
			name:   "raw html is not passed through",
			source: `<a href="https://example.com" onclick="steal()">x</a>`,
			want:   []string{"x"},
			reject: []string{"onclick", "steal()"},
		},
		{
			name:   "javascript links are dropped",
			source: "[x](javascript:alert(1))",
			want:   []string{"x"},
			reject: []string{"javascript:"},
		},
		{
			name:   "empty input",
			source: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.source)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output %q missing %q", got, want)
				}
			}
			for _, reject := range tt.reject {
				if strings.Contains(got, reject) {
					t.Errorf("output %q contains %q", got, reject)
				}
			}
		})
	}
}
