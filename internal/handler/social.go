// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"folio-go/internal/store"
)

// ListActiveSocialLinks handles GET /api/social-links: active links only,
// in display order.
func (h *Handler) ListActiveSocialLinks(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, "social-links:active", func() (any, error) {
		return h.store.ListActiveSocialLinks(r.Context())
	})
}

// ListSocialLinks handles GET {admin}/social-links: all links including
// inactive ones.
func (h *Handler) ListSocialLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.store.ListSocialLinks(r.Context())
	if err != nil {
		h.logger.Error("failed to list social links", "error", err)
		WriteInternalError(w, "failed to load social links")
		return
	}
	WriteSuccess(w, links)
}

// socialLinkForm is the create payload for social links. Order is assigned
// by the store, one past the current global maximum.
type socialLinkForm struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	IsActive bool   `json:"is_active"`
}

// CreateSocialLink handles POST {admin}/social-links.
func (h *Handler) CreateSocialLink(w http.ResponseWriter, r *http.Request) {
	var form socialLinkForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateSocialLinkForm(form.Platform, form.URL); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	link, err := h.store.CreateSocialLink(r.Context(), store.CreateSocialLinkParams{
		Platform: form.Platform,
		URL:      form.URL,
		IsActive: form.IsActive,
	})
	if err != nil {
		h.logger.Error("failed to create social link", "error", err)
		WriteInternalError(w, "failed to create social link")
		return
	}

	h.invalidateCache(r.Context())
	WriteCreated(w, link)
}

// UpdateSocialLink handles PUT {admin}/social-links/{id}.
func (h *Handler) UpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid social link ID")
		return
	}

	var patch struct {
		Platform *string `json:"platform"`
		URL      *string `json:"url"`
		Order    *int    `json:"order"`
		IsActive *bool   `json:"is_active"`
	}
	if !DecodeJSON(w, r, &patch) {
		return
	}

	errs := make(map[string]string)
	if patch.Platform != nil && *patch.Platform == "" {
		errs["platform"] = "is required"
	}
	if patch.URL != nil && (*patch.URL == "" || !ValidURL(*patch.URL)) {
		errs["url"] = "must be an absolute http(s) URL"
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	link, err := h.store.UpdateSocialLink(r.Context(), id, store.SocialLinkPatch{
		Platform: patch.Platform,
		URL:      patch.URL,
		Order:    patch.Order,
		IsActive: patch.IsActive,
	})
	if err != nil {
		h.logger.Error("failed to update social link", "id", id, "error", err)
		WriteInternalError(w, "failed to update social link")
		return
	}
	if link == nil {
		WriteNotFound(w, "social link not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, link)
}

// DeleteSocialLink handles DELETE {admin}/social-links/{id}.
func (h *Handler) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid social link ID")
		return
	}

	if !h.store.DeleteSocialLink(r.Context(), id) {
		WriteNotFound(w, "social link not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, map[string]int64{"id": id})
}
