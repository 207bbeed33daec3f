// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"folio-go/internal/store"
)

// notifyTimeout bounds the fire-and-forget notification goroutines.
const notifyTimeout = 15 * time.Second

// contactForm is the public contact submission payload.
type contactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact handles POST /api/contact. The message is stored first;
// the chat notification is dispatched on a goroutine and its outcome never
// affects the response.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var form contactForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateContactForm(form.Name, form.Email, form.Subject, form.Message); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	msg, err := h.store.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		h.logger.Error("failed to store contact message", "category", "contact", "error", err)
		WriteInternalError(w, "failed to submit message")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		h.notifier.ContactMessage(ctx, msg)
	}()

	h.logger.Info("contact message received", "category", "contact", "id", msg.ID)
	WriteCreated(w, msg)
}

// ListContactMessages handles GET {admin}/contact-messages.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListContactMessages(r.Context())
	if err != nil {
		h.logger.Error("failed to list contact messages", "error", err)
		WriteInternalError(w, "failed to load contact messages")
		return
	}
	WriteSuccess(w, messages)
}

// GetContactMessage handles GET {admin}/contact-messages/{id}.
func (h *Handler) GetContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid contact message ID")
		return
	}

	msg, err := h.store.GetContactMessage(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get contact message", "id", id, "error", err)
		WriteInternalError(w, "failed to load contact message")
		return
	}
	if msg == nil {
		WriteNotFound(w, "contact message not found")
		return
	}

	WriteSuccess(w, msg)
}

// DeleteContactMessage handles DELETE {admin}/contact-messages/{id}.
func (h *Handler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid contact message ID")
		return
	}

	if !h.store.DeleteContactMessage(r.Context(), id) {
		WriteNotFound(w, "contact message not found")
		return
	}

	WriteSuccess(w, map[string]int64{"id": id})
}
