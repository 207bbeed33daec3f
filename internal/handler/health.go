// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB // nil in memory-store mode
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	WriteJSON(w, code, Response{
		Success: code == http.StatusOK,
		Data: HealthStatus{
			Status: status,
			Uptime: time.Since(h.startTime).Round(time.Second).String(),
		},
	})
}
