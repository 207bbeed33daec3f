// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"folio-go/internal/store"
)

// ListWebsiteInfo handles GET /api/website-info (+?section=).
func (h *Handler) ListWebsiteInfo(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")

	key := "website-info"
	if section != "" {
		key = "website-info:section:" + section
	}

	h.cached(w, r, key, func() (any, error) {
		if section != "" {
			return h.store.ListWebsiteInfoBySection(r.Context(), section)
		}
		return h.store.ListWebsiteInfo(r.Context())
	})
}

// websiteInfoForm is the upsert payload for site text.
type websiteInfoForm struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// UpsertWebsiteInfo handles PUT {admin}/website-info. Writes are keyed by
// (section, key): an existing row's value is replaced, otherwise a row is
// inserted. Repeating the same request is idempotent.
func (h *Handler) UpsertWebsiteInfo(w http.ResponseWriter, r *http.Request) {
	var form websiteInfoForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateWebsiteInfoForm(form.Section, form.Key); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	info, err := h.store.UpsertWebsiteInfo(r.Context(), store.UpsertWebsiteInfoParams{
		Section: form.Section,
		Key:     form.Key,
		Value:   form.Value,
	})
	if err != nil {
		h.logger.Error("failed to upsert website info", "section", form.Section, "key", form.Key, "error", err)
		WriteInternalError(w, "failed to save website info")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, info)
}

// DeleteWebsiteInfo handles DELETE {admin}/website-info/{id}.
func (h *Handler) DeleteWebsiteInfo(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid website info ID")
		return
	}

	if !h.store.DeleteWebsiteInfo(r.Context(), id) {
		WriteNotFound(w, "website info not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, map[string]int64{"id": id})
}
