// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio-go/internal/store"
)

// ListProjects handles GET /api/projects (+?category=).
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	key := "projects"
	if category != "" {
		key = "projects:category:" + category
	}

	h.cached(w, r, key, func() (any, error) {
		if category != "" {
			return h.store.ListProjectsByCategory(r.Context(), category)
		}
		return h.store.ListProjects(r.Context())
	})
}

// ListProjectsByTag handles GET /api/projects/tag/{tag}.
// Tag matching is case-sensitive.
func (h *Handler) ListProjectsByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	h.cached(w, r, "projects:tag:"+tag, func() (any, error) {
		return h.store.ListProjectsByTag(r.Context(), tag)
	})
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid project ID")
		return
	}

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get project", "id", id, "error", err)
		WriteInternalError(w, "failed to load project")
		return
	}
	if project == nil {
		WriteNotFound(w, "project not found")
		return
	}

	WriteSuccess(w, project)
}

// projectForm is the create/update payload for projects.
type projectForm struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	Tags         []string `json:"tags"`
	Category     string   `json:"category"`
	Price        string   `json:"price"`
	LiveLink     string   `json:"live_link"`
}

// CreateProject handles POST {admin}/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var form projectForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateProjectForm(form.Title, form.Description, form.Image, form.LiveLink); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	project, err := h.store.CreateProject(r.Context(), store.CreateProjectParams{
		Title:        form.Title,
		Description:  form.Description,
		Image:        form.Image,
		Technologies: form.Technologies,
		Tags:         form.Tags,
		Category:     form.Category,
		Price:        form.Price,
		LiveLink:     form.LiveLink,
	})
	if err != nil {
		h.logger.Error("failed to create project", "error", err)
		WriteInternalError(w, "failed to create project")
		return
	}

	h.invalidateCache(r.Context())
	h.logger.Info("project created", "category", "content", "id", project.ID, "title", project.Title)
	WriteCreated(w, project)
}

// UpdateProject handles PUT {admin}/projects/{id}.
// Absent fields keep their stored values.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid project ID")
		return
	}

	var patch struct {
		Title        *string  `json:"title"`
		Description  *string  `json:"description"`
		Image        *string  `json:"image"`
		Technologies []string `json:"technologies"`
		Tags         []string `json:"tags"`
		Category     *string  `json:"category"`
		Price        *string  `json:"price"`
		LiveLink     *string  `json:"live_link"`
	}
	if !DecodeJSON(w, r, &patch) {
		return
	}

	errs := make(map[string]string)
	if patch.Title != nil && *patch.Title == "" {
		errs["title"] = "is required"
	}
	if patch.Image != nil && !ValidURL(*patch.Image) {
		errs["image"] = "must be an absolute http(s) URL"
	}
	if patch.LiveLink != nil && !ValidURL(*patch.LiveLink) {
		errs["live_link"] = "must be an absolute http(s) URL"
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	project, err := h.store.UpdateProject(r.Context(), id, store.ProjectPatch{
		Title:        patch.Title,
		Description:  patch.Description,
		Image:        patch.Image,
		Technologies: patch.Technologies,
		Tags:         patch.Tags,
		Category:     patch.Category,
		Price:        patch.Price,
		LiveLink:     patch.LiveLink,
	})
	if err != nil {
		h.logger.Error("failed to update project", "id", id, "error", err)
		WriteInternalError(w, "failed to update project")
		return
	}
	if project == nil {
		WriteNotFound(w, "project not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, project)
}

// DeleteProject handles DELETE {admin}/projects/{id}.
// Associated project interests are removed with the project.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid project ID")
		return
	}

	if !h.store.DeleteProject(r.Context(), id) {
		WriteNotFound(w, "project not found")
		return
	}

	h.invalidateCache(r.Context())
	h.logger.Info("project deleted", "category", "content", "id", id)
	WriteSuccess(w, map[string]int64{"id": id})
}
