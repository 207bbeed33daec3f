// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the public JSON API and
// the admin console routes.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxBodySize caps request bodies for the JSON endpoints.
const maxBodySize = 1 << 20 // 1MB

// Response is the standard API response wrapper. Every endpoint answers
// with this shape: Success plus either Data or Message (with optional
// field Errors on validation failure).
type Response struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Response{Success: false, Message: message})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteValidationError writes a 400 response with per-field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

// ParseIDParam extracts the "id" URL parameter as an int64.
func ParseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// DecodeJSON decodes a request body into dst.
// Returns false and writes a 400 response if the body is not valid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return false
	}
	// Reject trailing garbage after the JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		WriteBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
