// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"folio-go/internal/cache"
	"folio-go/internal/notify"
	"folio-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store    store.Store
	sessions *scs.SessionManager
	notifier notify.Notifier
	cache    cache.Cache
	logger   *slog.Logger
}

// New creates a new Handler. notifier and c may be nil; notifications and
// caching are then skipped.
func New(s store.Store, sm *scs.SessionManager, notifier notify.Notifier, c cache.Cache, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Handler{
		store:    s,
		sessions: sm,
		notifier: notifier,
		cache:    c,
		logger:   logger,
	}
}

// cached serves a public read endpoint through the cache. On a miss the
// fetch result is wrapped in the success envelope, stored, and written.
func (h *Handler) cached(w http.ResponseWriter, r *http.Request, key string, fetch func() (any, error)) {
	if h.cache != nil {
		if b, err := h.cache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(b)
			return
		}
	}

	data, err := fetch()
	if err != nil {
		h.logger.Error("fetch failed", "key", key, "error", err)
		WriteInternalError(w, "failed to load data")
		return
	}

	b, err := json.Marshal(Response{Success: true, Data: data})
	if err != nil {
		WriteInternalError(w, "failed to encode data")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, b, 0); err != nil {
			h.logger.Warn("cache set failed", "key", key, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// invalidateCache drops all cached public reads after an admin write.
// The content set is small so a full clear is simpler than tracking keys.
func (h *Handler) invalidateCache(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Clear(ctx); err != nil {
		h.logger.Warn("cache clear failed", "error", err)
	}
}
