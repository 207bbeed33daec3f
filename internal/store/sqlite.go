// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"folio-go/internal/model"
)

// SQLiteStore is the persistent Store implementation backed by SQLite.
// Every operation is a single statement except the upsert and the
// append-order computations, which are read-then-write; atomicity for
// single statements is delegated to the engine.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore over an open database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Ensure SQLiteStore implements Store at compile time.
var _ Store = (*SQLiteStore)(nil)

// encodeStrings encodes a string slice as a JSON text column value.
func encodeStrings(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeStrings decodes a JSON text column value into a string slice.
func decodeStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return []string{}
	}
	var s []string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return []string{}
	}
	return s
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure on the given column. The driver exposes constraint errors by
// message only.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// ---------------------------------------------------------------------------
// Users

func scanUser(r rowScanner) (model.User, error) {
	var u model.User
	err := r.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

const userColumns = "id, username, password_hash, created_at"

// GetUser returns the user with the given id, or nil if absent.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username, or nil if absent.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user. A duplicate username surfaces as an error.
func (s *SQLiteStore) CreateUser(ctx context.Context, arg CreateUserParams) (*model.User, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		arg.Username, arg.PasswordHash, now)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &model.User{ID: id, Username: arg.Username, PasswordHash: arg.PasswordHash, CreatedAt: now}, nil
}

// ---------------------------------------------------------------------------
// Projects

const projectColumns = "id, title, description, image, technologies, tags, category, price, live_link, created_at"

func scanProject(r rowScanner) (model.Project, error) {
	var p model.Project
	var techs, tags string
	err := r.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &techs, &tags,
		&p.Category, &p.Price, &p.LiveLink, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.Technologies = decodeStrings(techs)
	p.Tags = decodeStrings(tags)
	return p, nil
}

func (s *SQLiteStore) queryProjects(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListProjects returns all projects, newest first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC, id DESC")
}

// ListProjectsByCategory returns all projects in a category, newest first.
func (s *SQLiteStore) ListProjectsByCategory(ctx context.Context, category string) ([]model.Project, error) {
	return s.queryProjects(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE category = ? ORDER BY created_at DESC, id DESC",
		category)
}

// ListProjectsByTag returns projects whose tags contain the literal tag.
// The filter is an exact, case-sensitive membership test over the full
// collection, not a database-side predicate.
func (s *SQLiteStore) ListProjectsByTag(ctx context.Context, tag string) ([]model.Project, error) {
	all, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Project
	for _, p := range all {
		if p.HasTag(tag) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetProject returns the project with the given id, or nil if absent.
func (s *SQLiteStore) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return &p, nil
}

// CreateProject inserts a new project with a generated id and timestamp.
func (s *SQLiteStore) CreateProject(ctx context.Context, arg CreateProjectParams) (*model.Project, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (title, description, image, technologies, tags, category, price, live_link, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Description, arg.Image, encodeStrings(arg.Technologies),
		encodeStrings(arg.Tags), arg.Category, arg.Price, arg.LiveLink, now)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return &model.Project{
		ID:           id,
		Title:        arg.Title,
		Description:  arg.Description,
		Image:        arg.Image,
		Technologies: normalizeStrings(arg.Technologies),
		Tags:         normalizeStrings(arg.Tags),
		Category:     arg.Category,
		Price:        arg.Price,
		LiveLink:     arg.LiveLink,
		CreatedAt:    now,
	}, nil
}

// UpdateProject merges non-nil patch fields into the existing row.
// Returns nil if the id is absent.
func (s *SQLiteStore) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*model.Project, error) {
	existing, err := s.GetProject(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	applyString(&existing.Title, patch.Title)
	applyString(&existing.Description, patch.Description)
	applyString(&existing.Image, patch.Image)
	applyString(&existing.Category, patch.Category)
	applyString(&existing.Price, patch.Price)
	applyString(&existing.LiveLink, patch.LiveLink)
	if patch.Technologies != nil {
		existing.Technologies = patch.Technologies
	}
	if patch.Tags != nil {
		existing.Tags = patch.Tags
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, image = ?, technologies = ?, tags = ?,
		 category = ?, price = ?, live_link = ? WHERE id = ?`,
		existing.Title, existing.Description, existing.Image,
		encodeStrings(existing.Technologies), encodeStrings(existing.Tags),
		existing.Category, existing.Price, existing.LiveLink, id)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return existing, nil
}

// DeleteProject removes the project. Storage failures are logged and
// reported as false.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "projects", id)
}

// ---------------------------------------------------------------------------
// Website info

const websiteInfoColumns = "id, section, key, value, updated_at"

func scanWebsiteInfo(r rowScanner) (model.WebsiteInfo, error) {
	var w model.WebsiteInfo
	err := r.Scan(&w.ID, &w.Section, &w.Key, &w.Value, &w.UpdatedAt)
	return w, err
}

func (s *SQLiteStore) queryWebsiteInfo(ctx context.Context, query string, args ...any) ([]model.WebsiteInfo, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing website info: %w", err)
	}
	defer rows.Close()

	var infos []model.WebsiteInfo
	for rows.Next() {
		w, err := scanWebsiteInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning website info: %w", err)
		}
		infos = append(infos, w)
	}
	return infos, rows.Err()
}

// ListWebsiteInfo returns all website info rows grouped by section.
func (s *SQLiteStore) ListWebsiteInfo(ctx context.Context) ([]model.WebsiteInfo, error) {
	return s.queryWebsiteInfo(ctx,
		"SELECT "+websiteInfoColumns+" FROM website_info ORDER BY section, key")
}

// ListWebsiteInfoBySection returns the rows for one section.
func (s *SQLiteStore) ListWebsiteInfoBySection(ctx context.Context, section string) ([]model.WebsiteInfo, error) {
	return s.queryWebsiteInfo(ctx,
		"SELECT "+websiteInfoColumns+" FROM website_info WHERE section = ? ORDER BY key", section)
}

// UpsertWebsiteInfo updates the value for an existing (section, key) pair or
// inserts a new row. Read-then-write; a race between two concurrent upserts
// on the same pair is resolved by the UNIQUE constraint failing the loser.
func (s *SQLiteStore) UpsertWebsiteInfo(ctx context.Context, arg UpsertWebsiteInfoParams) (*model.WebsiteInfo, error) {
	now := time.Now().UTC()

	existing, err := scanWebsiteInfo(s.db.QueryRowContext(ctx,
		"SELECT "+websiteInfoColumns+" FROM website_info WHERE section = ? AND key = ?",
		arg.Section, arg.Key))
	if err == nil {
		_, err = s.db.ExecContext(ctx,
			"UPDATE website_info SET value = ?, updated_at = ? WHERE id = ?",
			arg.Value, now, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("updating website info: %w", err)
		}
		existing.Value = arg.Value
		existing.UpdatedAt = now
		return &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("looking up website info: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO website_info (section, key, value, updated_at) VALUES (?, ?, ?, ?)",
		arg.Section, arg.Key, arg.Value, now)
	if err != nil {
		return nil, fmt.Errorf("inserting website info: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("inserting website info: %w", err)
	}
	return &model.WebsiteInfo{ID: id, Section: arg.Section, Key: arg.Key, Value: arg.Value, UpdatedAt: now}, nil
}

// DeleteWebsiteInfo removes a website info row.
func (s *SQLiteStore) DeleteWebsiteInfo(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "website_info", id)
}

// ---------------------------------------------------------------------------
// Skills

const skillColumns = "id, name, percentage, category, display_order"

func scanSkill(r rowScanner) (model.Skill, error) {
	var sk model.Skill
	err := r.Scan(&sk.ID, &sk.Name, &sk.Percentage, &sk.Category, &sk.Order)
	return sk, err
}

func (s *SQLiteStore) querySkills(ctx context.Context, query string, args ...any) ([]model.Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	defer rows.Close()

	var skills []model.Skill
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}

// ListSkills returns all skills ordered by category then display order.
func (s *SQLiteStore) ListSkills(ctx context.Context) ([]model.Skill, error) {
	return s.querySkills(ctx,
		"SELECT "+skillColumns+" FROM skills ORDER BY category, display_order, id")
}

// ListSkillsByCategory returns the skills of one category in display order.
func (s *SQLiteStore) ListSkillsByCategory(ctx context.Context, category string) ([]model.Skill, error) {
	return s.querySkills(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE category = ? ORDER BY display_order, id", category)
}

// GetSkill returns the skill with the given id, or nil if absent.
func (s *SQLiteStore) GetSkill(ctx context.Context, id int64) (*model.Skill, error) {
	sk, err := scanSkill(s.db.QueryRowContext(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting skill: %w", err)
	}
	return &sk, nil
}

// CreateSkill inserts a new skill appended to the end of its category's
// display sequence: order is one past the current per-category maximum, or
// 1 when the category has no skills yet.
func (s *SQLiteStore) CreateSkill(ctx context.Context, arg CreateSkillParams) (*model.Skill, error) {
	var order int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(display_order), 0) + 1 FROM skills WHERE category = ?",
		arg.Category).Scan(&order)
	if err != nil {
		return nil, fmt.Errorf("computing skill order: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO skills (name, percentage, category, display_order) VALUES (?, ?, ?, ?)",
		arg.Name, arg.Percentage, arg.Category, order)
	if err != nil {
		return nil, fmt.Errorf("creating skill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating skill: %w", err)
	}
	return &model.Skill{ID: id, Name: arg.Name, Percentage: arg.Percentage, Category: arg.Category, Order: order}, nil
}

// UpdateSkill merges non-nil patch fields into the existing row.
func (s *SQLiteStore) UpdateSkill(ctx context.Context, id int64, patch SkillPatch) (*model.Skill, error) {
	existing, err := s.GetSkill(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	applyString(&existing.Name, patch.Name)
	applyString(&existing.Category, patch.Category)
	applyInt(&existing.Percentage, patch.Percentage)
	applyInt(&existing.Order, patch.Order)

	_, err = s.db.ExecContext(ctx,
		"UPDATE skills SET name = ?, percentage = ?, category = ?, display_order = ? WHERE id = ?",
		existing.Name, existing.Percentage, existing.Category, existing.Order, id)
	if err != nil {
		return nil, fmt.Errorf("updating skill: %w", err)
	}
	return existing, nil
}

// DeleteSkill removes a skill.
func (s *SQLiteStore) DeleteSkill(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "skills", id)
}

// ---------------------------------------------------------------------------
// Social links

const socialLinkColumns = "id, platform, url, display_order, is_active"

func scanSocialLink(r rowScanner) (model.SocialLink, error) {
	var l model.SocialLink
	err := r.Scan(&l.ID, &l.Platform, &l.URL, &l.Order, &l.IsActive)
	return l, err
}

func (s *SQLiteStore) querySocialLinks(ctx context.Context, query string, args ...any) ([]model.SocialLink, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing social links: %w", err)
	}
	defer rows.Close()

	var links []model.SocialLink
	for rows.Next() {
		l, err := scanSocialLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning social link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ListSocialLinks returns all social links in display order.
func (s *SQLiteStore) ListSocialLinks(ctx context.Context) ([]model.SocialLink, error) {
	return s.querySocialLinks(ctx,
		"SELECT "+socialLinkColumns+" FROM social_links ORDER BY display_order, id")
}

// ListActiveSocialLinks returns only active links in display order.
func (s *SQLiteStore) ListActiveSocialLinks(ctx context.Context) ([]model.SocialLink, error) {
	return s.querySocialLinks(ctx,
		"SELECT "+socialLinkColumns+" FROM social_links WHERE is_active = 1 ORDER BY display_order, id")
}

// GetSocialLink returns the link with the given id, or nil if absent.
func (s *SQLiteStore) GetSocialLink(ctx context.Context, id int64) (*model.SocialLink, error) {
	l, err := scanSocialLink(s.db.QueryRowContext(ctx,
		"SELECT "+socialLinkColumns+" FROM social_links WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting social link: %w", err)
	}
	return &l, nil
}

// CreateSocialLink inserts a new link appended after the current global
// maximum display order.
func (s *SQLiteStore) CreateSocialLink(ctx context.Context, arg CreateSocialLinkParams) (*model.SocialLink, error) {
	var order int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(display_order), 0) + 1 FROM social_links").Scan(&order)
	if err != nil {
		return nil, fmt.Errorf("computing social link order: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO social_links (platform, url, display_order, is_active) VALUES (?, ?, ?, ?)",
		arg.Platform, arg.URL, order, arg.IsActive)
	if err != nil {
		return nil, fmt.Errorf("creating social link: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating social link: %w", err)
	}
	return &model.SocialLink{ID: id, Platform: arg.Platform, URL: arg.URL, Order: order, IsActive: arg.IsActive}, nil
}

// UpdateSocialLink merges non-nil patch fields into the existing row.
func (s *SQLiteStore) UpdateSocialLink(ctx context.Context, id int64, patch SocialLinkPatch) (*model.SocialLink, error) {
	existing, err := s.GetSocialLink(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	applyString(&existing.Platform, patch.Platform)
	applyString(&existing.URL, patch.URL)
	applyInt(&existing.Order, patch.Order)
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE social_links SET platform = ?, url = ?, display_order = ?, is_active = ? WHERE id = ?",
		existing.Platform, existing.URL, existing.Order, existing.IsActive, id)
	if err != nil {
		return nil, fmt.Errorf("updating social link: %w", err)
	}
	return existing, nil
}

// DeleteSocialLink removes a social link.
func (s *SQLiteStore) DeleteSocialLink(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "social_links", id)
}

// ---------------------------------------------------------------------------
// Contact messages

const contactMessageColumns = "id, name, email, subject, message, created_at"

func scanContactMessage(r rowScanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	return m, err
}

// ListContactMessages returns all messages, newest first.
func (s *SQLiteStore) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+contactMessageColumns+" FROM contact_messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// GetContactMessage returns the message with the given id, or nil if absent.
func (s *SQLiteStore) GetContactMessage(ctx context.Context, id int64) (*model.ContactMessage, error) {
	m, err := scanContactMessage(s.db.QueryRowContext(ctx,
		"SELECT "+contactMessageColumns+" FROM contact_messages WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting contact message: %w", err)
	}
	return &m, nil
}

// CreateContactMessage appends a new message.
func (s *SQLiteStore) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (*model.ContactMessage, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO contact_messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)",
		arg.Name, arg.Email, arg.Subject, arg.Message, now)
	if err != nil {
		return nil, fmt.Errorf("creating contact message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating contact message: %w", err)
	}
	return &model.ContactMessage{ID: id, Name: arg.Name, Email: arg.Email, Subject: arg.Subject, Message: arg.Message, CreatedAt: now}, nil
}

// DeleteContactMessage removes a message.
func (s *SQLiteStore) DeleteContactMessage(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "contact_messages", id)
}

// ---------------------------------------------------------------------------
// Project interests

const projectInterestColumns = "id, project_id, name, email, phone, message, created_at"

func scanProjectInterest(r rowScanner) (model.ProjectInterest, error) {
	var pi model.ProjectInterest
	err := r.Scan(&pi.ID, &pi.ProjectID, &pi.Name, &pi.Email, &pi.Phone, &pi.Message, &pi.CreatedAt)
	return pi, err
}

func (s *SQLiteStore) queryProjectInterests(ctx context.Context, query string, args ...any) ([]model.ProjectInterest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing project interests: %w", err)
	}
	defer rows.Close()

	var interests []model.ProjectInterest
	for rows.Next() {
		pi, err := scanProjectInterest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project interest: %w", err)
		}
		interests = append(interests, pi)
	}
	return interests, rows.Err()
}

// ListProjectInterests returns all interests, newest first.
func (s *SQLiteStore) ListProjectInterests(ctx context.Context) ([]model.ProjectInterest, error) {
	return s.queryProjectInterests(ctx,
		"SELECT "+projectInterestColumns+" FROM project_interests ORDER BY created_at DESC, id DESC")
}

// ListProjectInterestsByProject returns the interests for one project, newest first.
func (s *SQLiteStore) ListProjectInterestsByProject(ctx context.Context, projectID int64) ([]model.ProjectInterest, error) {
	return s.queryProjectInterests(ctx,
		"SELECT "+projectInterestColumns+" FROM project_interests WHERE project_id = ? ORDER BY created_at DESC, id DESC",
		projectID)
}

// CreateProjectInterest appends a new interest.
func (s *SQLiteStore) CreateProjectInterest(ctx context.Context, arg CreateProjectInterestParams) (*model.ProjectInterest, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO project_interests (project_id, name, email, phone, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		arg.ProjectID, arg.Name, arg.Email, arg.Phone, arg.Message, now)
	if err != nil {
		return nil, fmt.Errorf("creating project interest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating project interest: %w", err)
	}
	return &model.ProjectInterest{ID: id, ProjectID: arg.ProjectID, Name: arg.Name, Email: arg.Email, Phone: arg.Phone, Message: arg.Message, CreatedAt: now}, nil
}

// DeleteProjectInterest removes an interest.
func (s *SQLiteStore) DeleteProjectInterest(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "project_interests", id)
}

// ---------------------------------------------------------------------------
// Blog posts

const blogPostColumns = "id, title, slug, content, excerpt, cover_image, tags, published, created_at, updated_at"

func scanBlogPost(r rowScanner) (model.BlogPost, error) {
	var b model.BlogPost
	var tags string
	err := r.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.CoverImage,
		&tags, &b.Published, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	b.Tags = decodeStrings(tags)
	return b, nil
}

func (s *SQLiteStore) queryBlogPosts(ctx context.Context, query string, args ...any) ([]model.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		b, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog post: %w", err)
		}
		posts = append(posts, b)
	}
	return posts, rows.Err()
}

// ListBlogPosts returns all posts, newest first.
func (s *SQLiteStore) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return s.queryBlogPosts(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts ORDER BY created_at DESC, id DESC")
}

// ListPublishedBlogPosts returns only published posts, newest first.
func (s *SQLiteStore) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return s.queryBlogPosts(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts WHERE published = 1 ORDER BY created_at DESC, id DESC")
}

// ListBlogPostsByTag returns posts whose tags contain the literal,
// case-sensitive tag. The filter scans the full collection.
func (s *SQLiteStore) ListBlogPostsByTag(ctx context.Context, tag string) ([]model.BlogPost, error) {
	all, err := s.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.BlogPost
	for _, b := range all {
		if b.HasTag(tag) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetBlogPost returns the post with the given id, or nil if absent.
func (s *SQLiteStore) GetBlogPost(ctx context.Context, id int64) (*model.BlogPost, error) {
	b, err := scanBlogPost(s.db.QueryRowContext(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting blog post: %w", err)
	}
	return &b, nil
}

// GetBlogPostBySlug returns the post with the given slug, or nil if
// absent. Slug uniqueness is by convention, not enforced.
func (s *SQLiteStore) GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	b, err := scanBlogPost(s.db.QueryRowContext(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts WHERE slug = ? ORDER BY created_at DESC, id DESC LIMIT 1", slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting blog post by slug: %w", err)
	}
	return &b, nil
}

// CreateBlogPost inserts a new post with generated id and timestamps.
// A taken slug is ErrDuplicateSlug.
func (s *SQLiteStore) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (*model.BlogPost, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (title, slug, content, excerpt, cover_image, tags, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Content, arg.Excerpt, arg.CoverImage,
		encodeStrings(arg.Tags), arg.Published, now, now)
	if isUniqueViolation(err, "blog_posts.slug") {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("creating blog post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating blog post: %w", err)
	}
	return &model.BlogPost{
		ID:         id,
		Title:      arg.Title,
		Slug:       arg.Slug,
		Content:    arg.Content,
		Excerpt:    arg.Excerpt,
		CoverImage: arg.CoverImage,
		Tags:       normalizeStrings(arg.Tags),
		Published:  arg.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// UpdateBlogPost merges non-nil patch fields into the existing row and
// refreshes UpdatedAt. Returns nil if the id is absent; a slug taken by
// another post is ErrDuplicateSlug.
func (s *SQLiteStore) UpdateBlogPost(ctx context.Context, id int64, patch BlogPostPatch) (*model.BlogPost, error) {
	existing, err := s.GetBlogPost(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	applyString(&existing.Title, patch.Title)
	applyString(&existing.Slug, patch.Slug)
	applyString(&existing.Content, patch.Content)
	applyString(&existing.Excerpt, patch.Excerpt)
	applyString(&existing.CoverImage, patch.CoverImage)
	if patch.Tags != nil {
		existing.Tags = patch.Tags
	}
	if patch.Published != nil {
		existing.Published = *patch.Published
	}
	existing.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE blog_posts SET title = ?, slug = ?, content = ?, excerpt = ?, cover_image = ?,
		 tags = ?, published = ?, updated_at = ? WHERE id = ?`,
		existing.Title, existing.Slug, existing.Content, existing.Excerpt, existing.CoverImage,
		encodeStrings(existing.Tags), existing.Published, existing.UpdatedAt, id)
	if isUniqueViolation(err, "blog_posts.slug") {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("updating blog post: %w", err)
	}
	return existing, nil
}

// DeleteBlogPost removes a post.
func (s *SQLiteStore) DeleteBlogPost(ctx context.Context, id int64) bool {
	return s.deleteRow(ctx, "blog_posts", id)
}

// ---------------------------------------------------------------------------
// Events

// CreateEvent appends an event log entry.
func (s *SQLiteStore) CreateEvent(ctx context.Context, arg CreateEventParams) (*model.Event, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)",
		arg.Level, arg.Category, arg.Message, arg.Metadata, now)
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return &model.Event{ID: id, Level: arg.Level, Category: arg.Category, Message: arg.Message, Metadata: arg.Metadata, CreatedAt: now}, nil
}

// ListEvents returns up to limit events, newest first.
func (s *SQLiteStore) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, level, category, message, metadata, created_at FROM events ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ---------------------------------------------------------------------------
// Helpers

// deleteRow deletes one row by id. Errors are swallowed and reported as
// false per the store contract.
func (s *SQLiteStore) deleteRow(ctx context.Context, table string, id int64) bool {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		slog.Error("delete failed", "table", table, "id", id, "error", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("delete rows affected", "table", table, "id", id, "error", err)
		return false
	}
	return n > 0
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// normalizeStrings returns a non-nil copy of s so stored and returned rows
// always expose an empty slice rather than nil.
func normalizeStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
