// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio-go/internal/markdown"
	"folio-go/internal/model"
	"folio-go/internal/store"
	"folio-go/internal/util"
)

// blogPostView is a blog post with its markdown rendered to sanitized HTML.
// Only the single-post public endpoint pays the render cost; lists carry the
// raw markdown and excerpt.
type blogPostView struct {
	model.BlogPost
	HTML string `json:"html"`
}

// ListPublishedBlogPosts handles GET /api/blog.
func (h *Handler) ListPublishedBlogPosts(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, "blog:published", func() (any, error) {
		return h.store.ListPublishedBlogPosts(r.Context())
	})
}

// ListBlogPostsByTag handles GET /api/blog/tag/{tag}.
// Only published posts are returned; tag matching is case-sensitive.
func (h *Handler) ListBlogPostsByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	h.cached(w, r, "blog:tag:"+tag, func() (any, error) {
		posts, err := h.store.ListBlogPostsByTag(r.Context(), tag)
		if err != nil {
			return nil, err
		}
		published := make([]model.BlogPost, 0, len(posts))
		for _, p := range posts {
			if p.Published {
				published = append(published, p)
			}
		}
		return published, nil
	})
}

// GetBlogPostBySlug handles GET /api/blog/{slug}. The response carries the
// post plus its content rendered to sanitized HTML. Unpublished posts are
// not visible here.
func (h *Handler) GetBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.store.GetBlogPostBySlug(r.Context(), slug)
	if err != nil {
		h.logger.Error("failed to get blog post", "slug", slug, "error", err)
		WriteInternalError(w, "failed to load blog post")
		return
	}
	if post == nil || !post.Published {
		WriteNotFound(w, "blog post not found")
		return
	}

	html, err := markdown.Render(post.Content)
	if err != nil {
		h.logger.Error("failed to render blog post", "slug", slug, "error", err)
		WriteInternalError(w, "failed to render blog post")
		return
	}

	WriteSuccess(w, blogPostView{BlogPost: *post, HTML: html})
}

// ListBlogPosts handles GET {admin}/blog: all posts including drafts.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListBlogPosts(r.Context())
	if err != nil {
		h.logger.Error("failed to list blog posts", "error", err)
		WriteInternalError(w, "failed to load blog posts")
		return
	}
	WriteSuccess(w, posts)
}

// GetBlogPost handles GET {admin}/blog/{id}: raw post including drafts.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid blog post ID")
		return
	}

	post, err := h.store.GetBlogPost(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get blog post", "id", id, "error", err)
		WriteInternalError(w, "failed to load blog post")
		return
	}
	if post == nil {
		WriteNotFound(w, "blog post not found")
		return
	}

	WriteSuccess(w, post)
}

// blogPostForm is the create payload for blog posts.
type blogPostForm struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

// CreateBlogPost handles POST {admin}/blog. A blank slug is derived from
// the title.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var form blogPostForm
	if !DecodeJSON(w, r, &form) {
		return
	}

	if errs := validateBlogPostForm(form.Title, form.Slug, form.Content, form.CoverImage); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	slug := form.Slug
	if slug == "" {
		slug = util.Slugify(form.Title)
	}

	post, err := h.store.CreateBlogPost(r.Context(), store.CreateBlogPostParams{
		Title:      form.Title,
		Slug:       slug,
		Content:    form.Content,
		Excerpt:    form.Excerpt,
		CoverImage: form.CoverImage,
		Tags:       form.Tags,
		Published:  form.Published,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	}
	if err != nil {
		h.logger.Error("failed to create blog post", "slug", slug, "error", err)
		WriteInternalError(w, "failed to create blog post")
		return
	}

	h.invalidateCache(r.Context())
	h.logger.Info("blog post created", "category", "content", "id", post.ID, "slug", post.Slug)
	WriteCreated(w, post)
}

// UpdateBlogPost handles PUT {admin}/blog/{id}.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid blog post ID")
		return
	}

	var patch struct {
		Title      *string  `json:"title"`
		Slug       *string  `json:"slug"`
		Content    *string  `json:"content"`
		Excerpt    *string  `json:"excerpt"`
		CoverImage *string  `json:"cover_image"`
		Tags       []string `json:"tags"`
		Published  *bool    `json:"published"`
	}
	if !DecodeJSON(w, r, &patch) {
		return
	}

	errs := make(map[string]string)
	if patch.Title != nil && *patch.Title == "" {
		errs["title"] = "is required"
	}
	if patch.Slug != nil {
		if msg := ValidateSlugFormat(*patch.Slug); msg != "" {
			errs["slug"] = msg
		}
	}
	if patch.CoverImage != nil && !ValidURL(*patch.CoverImage) {
		errs["cover_image"] = "must be an absolute http(s) URL"
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	post, err := h.store.UpdateBlogPost(r.Context(), id, store.BlogPostPatch{
		Title:      patch.Title,
		Slug:       patch.Slug,
		Content:    patch.Content,
		Excerpt:    patch.Excerpt,
		CoverImage: patch.CoverImage,
		Tags:       patch.Tags,
		Published:  patch.Published,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	}
	if err != nil {
		h.logger.Error("failed to update blog post", "id", id, "error", err)
		WriteInternalError(w, "failed to update blog post")
		return
	}
	if post == nil {
		WriteNotFound(w, "blog post not found")
		return
	}

	h.invalidateCache(r.Context())
	WriteSuccess(w, post)
}

// DeleteBlogPost handles DELETE {admin}/blog/{id}.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "invalid blog post ID")
		return
	}

	if !h.store.DeleteBlogPost(r.Context(), id) {
		WriteNotFound(w, "blog post not found")
		return
	}

	h.invalidateCache(r.Context())
	h.logger.Info("blog post deleted", "category", "content", "id", id)
	WriteSuccess(w, map[string]int64{"id": id})
}
