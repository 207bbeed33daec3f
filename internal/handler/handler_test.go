// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio-go/internal/auth"
	"folio-go/internal/handler"
	"folio-go/internal/model"
	"folio-go/internal/store"
)

// recordingNotifier captures notification calls so tests can wait for the
// fire-and-forget goroutines.
type recordingNotifier struct {
	contacts  chan *model.ContactMessage
	interests chan string // project title
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		contacts:  make(chan *model.ContactMessage, 1),
		interests: make(chan string, 1),
	}
}

func (n *recordingNotifier) ContactMessage(_ context.Context, msg *model.ContactMessage) {
	n.contacts <- msg
}

func (n *recordingNotifier) ProjectInterest(_ context.Context, _ *model.ProjectInterest, projectTitle string) {
	n.interests <- projectTitle
}

type env struct {
	store    store.Store
	handler  *handler.Handler
	notifier *recordingNotifier
	router   chi.Router
}

// newEnv builds a handler over a memory store with the public and admin
// routes mounted the same way the server wires them, minus auth and CSRF.
func newEnv(t *testing.T) *env {
	t.Helper()

	s := store.NewMemoryStore()
	sm := scs.New()
	n := newRecordingNotifier()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.New(s, sm, n, nil, logger)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/tag/{tag}", h.ListProjectsByTag)
		r.Get("/projects/{id}", h.GetProject)
		r.Post("/projects/{id}/interest", h.SubmitProjectInterest)
		r.Get("/skills", h.ListSkills)
		r.Get("/social-links", h.ListActiveSocialLinks)
		r.Get("/website-info", h.ListWebsiteInfo)
		r.Get("/blog", h.ListPublishedBlogPosts)
		r.Get("/blog/tag/{tag}", h.ListBlogPostsByTag)
		r.Get("/blog/{slug}", h.GetBlogPostBySlug)
		r.Post("/contact", h.SubmitContact)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/projects", h.CreateProject)
		r.Put("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)
		r.Post("/skills", h.CreateSkill)
		r.Post("/social-links", h.CreateSocialLink)
		r.Get("/social-links", h.ListSocialLinks)
		r.Put("/website-info", h.UpsertWebsiteInfo)
		r.Delete("/website-info/{id}", h.DeleteWebsiteInfo)
		r.Post("/blog", h.CreateBlogPost)
		r.Put("/blog/{id}", h.UpdateBlogPost)
		r.Delete("/blog/{id}", h.DeleteBlogPost)
		r.Get("/contact-messages", h.ListContactMessages)
		r.Delete("/contact-messages/{id}", h.DeleteContactMessage)
		r.Get("/project-interests", h.ListProjectInterests)
		r.Get("/events", h.ListEvents)
	})

	return &env{store: s, handler: h, notifier: n, router: r}
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope is the decoded API response with Data left raw for per-test
// unmarshaling.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func dataInto(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestProjectEndpoints(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"title":        "Shop",
		"description":  "An online shop",
		"image":        "https://example.com/shop.png",
		"technologies": []string{"Go"},
		"tags":         []string{"web", "React"},
		"category":     "web",
		"live_link":    "https://shop.example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	var created model.Project
	dataInto(t, env, &created)
	require.NotZero(t, created.ID)
	assert.Equal(t, "Shop", created.Title)

	rec = e.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var projects []model.Project
	dataInto(t, decode(t, rec), &projects)
	require.Len(t, projects, 1)

	// Category filter
	rec = e.do(t, http.MethodGet, "/api/projects?category=cli", nil)
	projects = nil
	dataInto(t, decode(t, rec), &projects)
	assert.Empty(t, projects)

	// Tag filter is case-sensitive
	rec = e.do(t, http.MethodGet, "/api/projects/tag/react", nil)
	projects = nil
	dataInto(t, decode(t, rec), &projects)
	assert.Empty(t, projects)

	rec = e.do(t, http.MethodGet, "/api/projects/tag/React", nil)
	projects = nil
	dataInto(t, decode(t, rec), &projects)
	assert.Len(t, projects, 1)

	// Single project
	rec = e.do(t, http.MethodGet, "/api/projects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/projects/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env = decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "project not found", env.Message)

	rec = e.do(t, http.MethodGet, "/api/projects/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Partial update keeps other fields
	rec = e.do(t, http.MethodPut, "/admin/projects/1", map[string]any{"title": "Shop v2"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Project
	dataInto(t, decode(t, rec), &updated)
	assert.Equal(t, "Shop v2", updated.Title)
	assert.Equal(t, "An online shop", updated.Description)

	rec = e.do(t, http.MethodDelete, "/admin/projects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/admin/projects/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProjectValidation(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/admin/projects", map[string]any{
		"title": "",
		"image": "not-a-url",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, env.Errors, "title")
	assert.Contains(t, env.Errors, "image")
}

func TestDecodeJSONRejectsBadBodies(t *testing.T) {
	e := newEnv(t)

	for name, body := range map[string]string{
		"not json":         "{{{",
		"trailing garbage": `{"title":"x"} extra`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/projects", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			e.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid JSON body", decode(t, rec).Message)
		})
	}
}

func TestContactSubmission(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Hello",
		"message": "I liked your site",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	var msg model.ContactMessage
	dataInto(t, env, &msg)
	assert.NotZero(t, msg.ID)

	// Notification is fired on a goroutine after the response
	select {
	case notified := <-e.notifier.contacts:
		assert.Equal(t, msg.ID, notified.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}

	// Stored and visible to the admin
	rec = e.do(t, http.MethodGet, "/admin/contact-messages", nil)
	var messages []model.ContactMessage
	dataInto(t, decode(t, rec), &messages)
	assert.Len(t, messages, 1)
}

func TestContactValidation(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Ada",
		"email":   "not-an-email",
		"subject": "",
		"message": "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "subject")
	assert.Contains(t, env.Errors, "message")

	// Nothing stored on validation failure
	rec = e.do(t, http.MethodGet, "/admin/contact-messages", nil)
	var messages []model.ContactMessage
	dataInto(t, decode(t, rec), &messages)
	assert.Empty(t, messages)
}

func TestProjectInterest(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	project, err := e.store.CreateProject(ctx, store.CreateProjectParams{Title: "Shop"})
	require.NoError(t, err)

	rec := e.do(t, http.MethodPost, "/api/projects/999/interest", map[string]any{
		"name": "Ada", "email": "ada@example.com", "message": "Interested",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/projects/1/interest", map[string]any{
		"name": "Ada", "email": "ada@example.com", "phone": "+1 555 0100", "message": "Interested",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case title := <-e.notifier.interests:
		assert.Equal(t, project.Title, title)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}

	rec = e.do(t, http.MethodGet, "/admin/project-interests?project_id=1", nil)
	var interests []model.ProjectInterest
	dataInto(t, decode(t, rec), &interests)
	require.Len(t, interests, 1)
	assert.Equal(t, "+1 555 0100", interests[0].Phone)
}

func TestBlogEndpoints(t *testing.T) {
	e := newEnv(t)

	// Blank slug is derived from the title
	rec := e.do(t, http.MethodPost, "/admin/blog", map[string]any{
		"title":     "Hello, World!",
		"content":   "# Hi\n\nSome **bold** text.",
		"published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post model.BlogPost
	dataInto(t, decode(t, rec), &post)
	assert.Equal(t, "hello-world", post.Slug)

	// Draft stays off the public surface
	rec = e.do(t, http.MethodPost, "/admin/blog", map[string]any{
		"title": "Draft", "slug": "draft", "content": "wip",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/blog", nil)
	var posts []model.BlogPost
	dataInto(t, decode(t, rec), &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0].Slug)

	rec = e.do(t, http.MethodGet, "/api/blog/draft", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Public single post renders markdown to HTML
	rec = e.do(t, http.MethodGet, "/api/blog/hello-world", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		model.BlogPost
		HTML string `json:"html"`
	}
	dataInto(t, decode(t, rec), &view)
	assert.Contains(t, view.HTML, "<strong>bold</strong>")
	assert.Contains(t, view.HTML, "<h1")

	// Duplicate slug is a validation error, on create and on update
	rec = e.do(t, http.MethodPost, "/admin/blog", map[string]any{
		"title": "Another", "slug": "hello-world", "content": "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Slug already exists", env.Errors["slug"])

	rec = e.do(t, http.MethodPut, "/admin/blog/2", map[string]any{"slug": "hello-world"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Slug already exists", decode(t, rec).Errors["slug"])

	// Unpublish hides the post
	rec = e.do(t, http.MethodPut, "/admin/blog/1", map[string]any{"published": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/blog/hello-world", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodDelete, "/admin/blog/2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBlogTagFilterPublishedOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.store.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title: "Live", Slug: "live", Content: "x", Tags: []string{"go"}, Published: true,
	})
	require.NoError(t, err)
	_, err = e.store.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title: "Draft", Slug: "draft", Content: "x", Tags: []string{"go"},
	})
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/api/blog/tag/go", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []model.BlogPost
	dataInto(t, decode(t, rec), &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)
}

func TestSkillAndSocialLinkEndpoints(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/admin/skills", map[string]any{
		"name": "Go", "percentage": 90, "category": "backend",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var skill model.Skill
	dataInto(t, decode(t, rec), &skill)
	assert.Equal(t, 1, skill.Order)

	rec = e.do(t, http.MethodPost, "/admin/skills", map[string]any{
		"name": "Go", "percentage": 150, "category": "backend",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Errors, "percentage")

	rec = e.do(t, http.MethodGet, "/api/skills?category=backend", nil)
	var skills []model.Skill
	dataInto(t, decode(t, rec), &skills)
	assert.Len(t, skills, 1)

	// Inactive links stay off the public list
	rec = e.do(t, http.MethodPost, "/admin/social-links", map[string]any{
		"platform": "github", "url": "https://github.com/someone", "is_active": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = e.do(t, http.MethodPost, "/admin/social-links", map[string]any{
		"platform": "linkedin", "url": "https://linkedin.com/in/someone", "is_active": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/social-links", nil)
	var links []model.SocialLink
	dataInto(t, decode(t, rec), &links)
	require.Len(t, links, 1)
	assert.Equal(t, "github", links[0].Platform)

	rec = e.do(t, http.MethodGet, "/admin/social-links", nil)
	links = nil
	dataInto(t, decode(t, rec), &links)
	assert.Len(t, links, 2)
}

func TestWebsiteInfoEndpoints(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPut, "/admin/website-info", map[string]any{
		"section": "hero", "key": "title", "value": "Hello",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Second upsert on the same (section, key) replaces, not duplicates
	rec = e.do(t, http.MethodPut, "/admin/website-info", map[string]any{
		"section": "hero", "key": "title", "value": "Hello again",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/website-info?section=hero", nil)
	var rows []model.WebsiteInfo
	dataInto(t, decode(t, rec), &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hello again", rows[0].Value)

	rec = e.do(t, http.MethodDelete, "/admin/website-info/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/admin/website-info/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	_, err = e.store.CreateUser(ctx, store.CreateUserParams{Username: "admin", PasswordHash: hash})
	require.NoError(t, err)

	// Unknown user and bad password get the same answer
	for name, body := range map[string]map[string]any{
		"unknown user": {"username": "nobody", "password": "whatever"},
		"bad password": {"username": "admin", "password": "wrong"},
		"empty":        {"username": "", "password": ""},
	} {
		t.Run(name, func(t *testing.T) {
			rec := e.do(t, http.MethodPost, "/admin/login", body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "invalid credentials", decode(t, rec).Message)
		})
	}

	rec := e.do(t, http.MethodPost, "/admin/login", map[string]any{
		"username": "admin", "password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	var user model.User
	dataInto(t, env, &user)
	assert.Equal(t, "admin", user.Username)
	// The hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "argon2")
	assert.NotEmpty(t, rec.Header().Values("Set-Cookie"))
}

func TestEventsEndpoint(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := e.store.CreateEvent(ctx, store.CreateEventParams{
			Level: "warning", Category: "system", Message: "noted",
		})
		require.NoError(t, err)
	}

	rec := e.do(t, http.MethodGet, "/admin/events?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []model.Event
	dataInto(t, decode(t, rec), &events)
	assert.Len(t, events, 2)

	rec = e.do(t, http.MethodGet, "/admin/events?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
