// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"folio-go/internal/auth"
	"folio-go/internal/middleware"
)

// loginForm is the admin login payload.
type loginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST {admin}/login. Invalid credentials get the same
// response whether the username exists or not.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if form.Username == "" || form.Password == "" {
		WriteUnauthorized(w, "invalid credentials")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), form.Username)
	if err != nil {
		h.logger.Error("failed to look up user", "category", "auth", "error", err)
		WriteInternalError(w, "login failed")
		return
	}
	if user == nil {
		h.logger.Warn("login failed: unknown user", "category", "auth", "username", form.Username)
		WriteUnauthorized(w, "invalid credentials")
		return
	}

	ok, err := auth.CheckPassword(form.Password, user.PasswordHash)
	if err != nil || !ok {
		h.logger.Warn("login failed: bad password", "category", "auth", "user_id", user.ID)
		WriteUnauthorized(w, "invalid credentials")
		return
	}

	// Rotate the session token on privilege change
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		h.logger.Error("failed to renew session token", "category", "auth", "error", err)
		WriteInternalError(w, "login failed")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	h.logger.Info("login successful", "category", "auth", "user_id", user.ID)
	WriteSuccess(w, user)
}

// Logout handles POST {admin}/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.logger.Error("failed to destroy session", "category", "auth", "error", err)
		WriteInternalError(w, "logout failed")
		return
	}

	if userID != 0 {
		h.logger.Info("logout", "category", "auth", "user_id", userID)
	}
	WriteSuccess(w, map[string]string{"status": "logged out"})
}

// Me handles GET {admin}/me: the authenticated user, for console bootstrap.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "authentication required")
		return
	}
	WriteSuccess(w, user)
}
