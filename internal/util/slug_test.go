// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"cyrillic", "Привет мир", "privet-mir"},
		{"multiple spaces", "a   b", "a-b"},
		{"leading and trailing", " -trimmed- ", "trimmed"},
		{"numbers", "Top 10 Tips", "top-10-tips"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"hello-world", true},
		{"a", true},
		{"top-10", true},
		{"", false},
		{"Hello-World", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"with space", false},
		{"with_underscore", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}
