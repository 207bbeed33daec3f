// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown converts stored markdown to sanitized HTML. The content
// store only ever holds the raw markdown string; conversion happens at
// render time and is a pure transformation.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// policy strips anything outside the usual user-generated-content tag set.
var policy = bluemonday.UGCPolicy()

// Render converts markdown to sanitized HTML using goldmark with default
// settings.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}
