// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strconv"

	"folio-go/internal/store"
)

// interestForm is the public project interest payload.
type interestForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SubmitProjectInterest handles POST /api/projects/{id}/interest. The
// project must exist; the inquiry is stored and a chat notification is
// dispatched best-effort.
func (h *Handler) SubmitProjectInterest(w http.ResponseWriter, r *http.Request) {
	projectID, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid project ID")
		return
	}

	var form interestForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateInterestForm(form.Name, form.Email, form.Message); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	project, err := h.store.GetProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to get project", "id", projectID, "error", err)
		WriteInternalError(w, "failed to submit interest")
		return
	}
	if project == nil {
		WriteNotFound(w, "project not found")
		return
	}

	interest, err := h.store.CreateProjectInterest(r.Context(), store.CreateProjectInterestParams{
		ProjectID: projectID,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Message:   form.Message,
	})
	if err != nil {
		h.logger.Error("failed to store project interest", "category", "contact", "project_id", projectID, "error", err)
		WriteInternalError(w, "failed to submit interest")
		return
	}

	title := project.Title
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		h.notifier.ProjectInterest(ctx, interest, title)
	}()

	h.logger.Info("project interest received", "category", "contact", "id", interest.ID, "project_id", projectID)
	WriteCreated(w, interest)
}

// ListProjectInterests handles GET {admin}/project-interests
// (+?project_id=).
func (h *Handler) ListProjectInterests(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("project_id"); raw != "" {
		projectID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || projectID <= 0 {
			WriteBadRequest(w, "invalid project_id")
			return
		}
		interests, err := h.store.ListProjectInterestsByProject(r.Context(), projectID)
		if err != nil {
			h.logger.Error("failed to list project interests", "project_id", projectID, "error", err)
			WriteInternalError(w, "failed to load project interests")
			return
		}
		WriteSuccess(w, interests)
		return
	}

	interests, err := h.store.ListProjectInterests(r.Context())
	if err != nil {
		h.logger.Error("failed to list project interests", "error", err)
		WriteInternalError(w, "failed to load project interests")
		return
	}
	WriteSuccess(w, interests)
}

// DeleteProjectInterest handles DELETE {admin}/project-interests/{id}.
func (h *Handler) DeleteProjectInterest(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid project interest ID")
		return
	}

	if !h.store.DeleteProjectInterest(r.Context(), id) {
		WriteNotFound(w, "project interest not found")
		return
	}

	WriteSuccess(w, map[string]int64{"id": id})
}
