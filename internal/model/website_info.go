// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// WebsiteInfo holds one editable piece of site text, addressed by a
// (section, key) pair. At most one row exists per pair; writes go through
// the store's upsert.
type WebsiteInfo struct {
	ID        int64     `json:"id"`
	Section   string    `json:"section"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
