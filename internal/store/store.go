// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the content store: CRUD and simple filtered-list
// operations over every site entity, independent of the storage backend.
// Two implementations exist: MemoryStore for tests and development, and
// SQLiteStore for persistence.
//
// Contract notes shared by both implementations:
//   - Get and Update operations on a missing id return (nil, nil): absence
//     is not an error.
//   - Delete operations return a bare bool; storage failures are logged and
//     reported as false, never propagated.
//   - Create, Update and Upsert operations propagate storage errors (a
//     uniqueness violation surfaces to the caller).
//   - Lists are ordered newest-first wherever the entity has a timestamp.
package store

import (
	"context"
	"errors"

	"folio-go/internal/model"
)

// ErrDuplicateSlug is returned by CreateBlogPost and UpdateBlogPost when the
// slug is already taken by another post. Slugs are the public lookup key, so
// both implementations enforce uniqueness.
var ErrDuplicateSlug = errors.New("blog post slug already exists")

// Store is the repository contract for all site content.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (*model.User, error)

	// Projects
	ListProjects(ctx context.Context) ([]model.Project, error)
	ListProjectsByCategory(ctx context.Context, category string) ([]model.Project, error)
	ListProjectsByTag(ctx context.Context, tag string) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	CreateProject(ctx context.Context, arg CreateProjectParams) (*model.Project, error)
	UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) bool

	// Website info (key/value site text; the only entity with upsert writes)
	ListWebsiteInfo(ctx context.Context) ([]model.WebsiteInfo, error)
	ListWebsiteInfoBySection(ctx context.Context, section string) ([]model.WebsiteInfo, error)
	UpsertWebsiteInfo(ctx context.Context, arg UpsertWebsiteInfoParams) (*model.WebsiteInfo, error)
	DeleteWebsiteInfo(ctx context.Context, id int64) bool

	// Skills
	ListSkills(ctx context.Context) ([]model.Skill, error)
	ListSkillsByCategory(ctx context.Context, category string) ([]model.Skill, error)
	GetSkill(ctx context.Context, id int64) (*model.Skill, error)
	CreateSkill(ctx context.Context, arg CreateSkillParams) (*model.Skill, error)
	UpdateSkill(ctx context.Context, id int64, patch SkillPatch) (*model.Skill, error)
	DeleteSkill(ctx context.Context, id int64) bool

	// Social links
	ListSocialLinks(ctx context.Context) ([]model.SocialLink, error)
	ListActiveSocialLinks(ctx context.Context) ([]model.SocialLink, error)
	GetSocialLink(ctx context.Context, id int64) (*model.SocialLink, error)
	CreateSocialLink(ctx context.Context, arg CreateSocialLinkParams) (*model.SocialLink, error)
	UpdateSocialLink(ctx context.Context, id int64, patch SocialLinkPatch) (*model.SocialLink, error)
	DeleteSocialLink(ctx context.Context, id int64) bool

	// Contact messages
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	GetContactMessage(ctx context.Context, id int64) (*model.ContactMessage, error)
	CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (*model.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id int64) bool

	// Project interests
	ListProjectInterests(ctx context.Context) ([]model.ProjectInterest, error)
	ListProjectInterestsByProject(ctx context.Context, projectID int64) ([]model.ProjectInterest, error)
	CreateProjectInterest(ctx context.Context, arg CreateProjectInterestParams) (*model.ProjectInterest, error)
	DeleteProjectInterest(ctx context.Context, id int64) bool

	// Blog posts
	ListBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	ListBlogPostsByTag(ctx context.Context, tag string) ([]model.BlogPost, error)
	GetBlogPost(ctx context.Context, id int64) (*model.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (*model.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id int64, patch BlogPostPatch) (*model.BlogPost, error)
	DeleteBlogPost(ctx context.Context, id int64) bool

	// Event log
	CreateEvent(ctx context.Context, arg CreateEventParams) (*model.Event, error)
	ListEvents(ctx context.Context, limit int) ([]model.Event, error)
}

// CreateUserParams holds input for CreateUser.
type CreateUserParams struct {
	Username     string
	PasswordHash string
}

// CreateProjectParams holds input for CreateProject.
type CreateProjectParams struct {
	Title        string
	Description  string
	Image        string
	Technologies []string
	Tags         []string
	Category     string
	Price        string
	LiveLink     string
}

// ProjectPatch holds the partial fields for UpdateProject.
// Nil fields are left unchanged.
type ProjectPatch struct {
	Title        *string
	Description  *string
	Image        *string
	Technologies []string
	Tags         []string
	Category     *string
	Price        *string
	LiveLink     *string
}

// UpsertWebsiteInfoParams holds input for UpsertWebsiteInfo. The (Section,
// Key) pair is the natural key: if a row exists its value and timestamp are
// replaced, otherwise a new row is inserted.
type UpsertWebsiteInfoParams struct {
	Section string
	Key     string
	Value   string
}

// CreateSkillParams holds input for CreateSkill. Order is assigned by the
// store: one past the current maximum within the same category, or 1 when
// the category is empty.
type CreateSkillParams struct {
	Name       string
	Percentage int
	Category   string
}

// SkillPatch holds the partial fields for UpdateSkill.
type SkillPatch struct {
	Name       *string
	Percentage *int
	Category   *string
	Order      *int
}

// CreateSocialLinkParams holds input for CreateSocialLink. Order is
// assigned by the store: one past the current global maximum, or 1 when no
// links exist.
type CreateSocialLinkParams struct {
	Platform string
	URL      string
	IsActive bool
}

// SocialLinkPatch holds the partial fields for UpdateSocialLink.
type SocialLinkPatch struct {
	Platform *string
	URL      *string
	Order    *int
	IsActive *bool
}

// CreateContactMessageParams holds input for CreateContactMessage.
type CreateContactMessageParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// CreateProjectInterestParams holds input for CreateProjectInterest.
type CreateProjectInterestParams struct {
	ProjectID int64
	Name      string
	Email     string
	Phone     string
	Message   string
}

// CreateBlogPostParams holds input for CreateBlogPost.
type CreateBlogPostParams struct {
	Title      string
	Slug       string
	Content    string
	Excerpt    string
	CoverImage string
	Tags       []string
	Published  bool
}

// BlogPostPatch holds the partial fields for UpdateBlogPost. Any update
// refreshes the post's UpdatedAt timestamp.
type BlogPostPatch struct {
	Title      *string
	Slug       *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Tags       []string
	Published  *bool
}

// CreateEventParams holds input for CreateEvent.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	Metadata string
}
