// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"folio-go/internal/seo"
)

// SEOHandler serves the sitemap and robots files generated on request.
// The scheduler also writes them to disk for setups where a front proxy
// serves static files directly.
type SEOHandler struct {
	generator *seo.Generator
}

// NewSEOHandler creates a new SEO handler.
func NewSEOHandler(g *seo.Generator) *SEOHandler {
	return &SEOHandler{generator: g}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := h.generator.Sitemap(r.Context())
	if err != nil {
		http.Error(w, "failed to generate sitemap", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.generator.Robots()))
}
