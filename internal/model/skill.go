// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Skill represents a single skill bar shown on the site.
// Order is the display position within the skill's category; new skills are
// appended after the current per-category maximum.
type Skill struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Category   string `json:"category"`
	Order      int    `json:"order"`
}

// SocialLink represents a social profile link in the site footer.
// Order is a global display position across all platforms.
type SocialLink struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}
