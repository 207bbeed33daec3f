// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
)

// defaultEventLimit caps the event log listing when no limit is given.
const defaultEventLimit = 100

// ListEvents handles GET {admin}/events (+?limit=). Events are the WARN+
// log records captured by the logging handler, newest first.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			WriteBadRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.ListEvents(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list events", "error", err)
		WriteInternalError(w, "failed to load events")
		return
	}

	WriteSuccess(w, events)
}
