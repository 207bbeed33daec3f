// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"folio-go/internal/store"
)

// ListSkills handles GET /api/skills (+?category=).
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	key := "skills"
	if category != "" {
		key = "skills:category:" + category
	}

	h.cached(w, r, key, func() (any, error) {
		if category != "" {
			return h.store.ListSkillsByCategory(r.Context(), category)
		}
		return h.store.ListSkills(r.Context())
	})
}

// skillForm is the create payload for skills. Order is assigned by the
// store, one past the category's current maximum.
type skillForm struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Category   string `json:"category"`
}

// CreateSkill handles POST {admin}/skills.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var form skillForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateSkillForm(form.Name, form.Percentage); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	skill, err := h.store.CreateSkill(r.Context(), store.CreateSkillParams{
		Name:       form.Name,
		Percentage: form.Percentage,
		Category:   form.Category,
	})
	if err != nil {
		h.logger.Error("failed to create skill", "error", err)
		WriteInternalError(w, "failed to create skill")
		return
	}

	h.invalidateCache(r.Context())
	WriteCreated(w, skill)
}

// UpdateSkill handles PUT {admin}/skills/{id}.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid skill ID")
		return
	}

	var patch struct {
		Name       *string `json:"name"`
		Percentage *int    `json:"percentage"`
		Category   *string `json:"category"`
		Order      *int    `json:"order"`
	}
	if !DecodeJSON(w, r, &patch) {
		return
	}

	errs := make(map[string]string)
	if patch.Name != nil && *patch.Name == "" {
		errs["name"] = "is required"
	}
	if patch.Percentage != nil && (*patch.Percentage < 0 || *patch.Percentage > 100) {
		errs["percentage"] = "must be between 0 and 100"
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	skill, err := h.store.UpdateSkill(r.Context(), id, store.SkillPatch{
		Name:       patch.Name,
		Percentage: patch.Percentage,
		Category:   patch.Category,
		Order:      patch.Order,
	})
	if err != nil {
		h.logger.Error("failed to update skill", "id", id, "error", err)
		WriteInternalError(w, "failed to update skill")
		return
	}
	if skill == nil {
		WriteNotFound(w, "skill not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, skill)
}

// DeleteSkill handles DELETE {admin}/skills/{id}.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid skill ID")
		return
	}

	if !h.store.DeleteSkill(r.Context(), id) {
		WriteNotFound(w, "skill not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, map[string]int64{"id": id})
}
