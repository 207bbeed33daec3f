// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Project represents a portfolio project entry.
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	Tags         []string  `json:"tags"`
	Category     string    `json:"category"`
	Price        string    `json:"price"`
	LiveLink     string    `json:"live_link"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasTag reports whether the project carries the exact tag.
// Matching is case-sensitive: "React" does not match "react".
func (p *Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ProjectInterest represents a visitor inquiry about a specific project.
type ProjectInterest struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
