// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// BlogPost represents a blog article. Content is raw markdown; HTML is
// produced at render time and never stored.
type BlogPost struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt"`
	CoverImage string    `json:"cover_image"`
	Tags       []string  `json:"tags"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasTag reports whether the post carries the exact tag (case-sensitive).
func (p *BlogPost) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
