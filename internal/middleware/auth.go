// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// rate limiting, and request hardening.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"folio-go/internal/model"
	"folio-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the authenticated user.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID is the session key holding the logged-in user's ID.
const SessionKeyUserID = "user_id"

// writeJSONError writes the standard error envelope. Kept local so the
// middleware package does not depend on the handler package.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// Auth creates middleware that requires an authenticated session.
// The admin API is JSON, so unauthenticated requests get a 401 envelope
// rather than a redirect.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the current user into the request
// context. This should be used after Auth middleware. A session pointing at
// a user that no longer exists is destroyed.
func LoadUser(sm *scs.SessionManager, s store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			user, err := s.GetUser(r.Context(), userID)
			if err != nil || user == nil {
				_ = sm.Destroy(r.Context())
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}
