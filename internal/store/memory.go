// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"folio-go/internal/model"
)

// MemoryStore is the in-memory Store implementation used by tests and
// development mode. All state, including the per-entity id counters, is
// owned by the constructed store object; there are no package-level
// singletons. A single mutex guards every map, which is enough for the
// single-request-at-a-time semantics the store assumes.
type MemoryStore struct {
	mu sync.Mutex

	users            map[int64]model.User
	projects         map[int64]model.Project
	websiteInfo      map[int64]model.WebsiteInfo
	skills           map[int64]model.Skill
	socialLinks      map[int64]model.SocialLink
	contactMessages  map[int64]model.ContactMessage
	projectInterests map[int64]model.ProjectInterest
	blogPosts        map[int64]model.BlogPost
	events           map[int64]model.Event

	userID     int64
	projectID  int64
	infoID     int64
	skillID    int64
	linkID     int64
	messageID  int64
	interestID int64
	postID     int64
	eventID    int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:            make(map[int64]model.User),
		projects:         make(map[int64]model.Project),
		websiteInfo:      make(map[int64]model.WebsiteInfo),
		skills:           make(map[int64]model.Skill),
		socialLinks:      make(map[int64]model.SocialLink),
		contactMessages:  make(map[int64]model.ContactMessage),
		projectInterests: make(map[int64]model.ProjectInterest),
		blogPosts:        make(map[int64]model.BlogPost),
		events:           make(map[int64]model.Event),
	}
}

// Ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// ---------------------------------------------------------------------------
// Users

// GetUser returns the user with the given id, or nil if absent.
func (s *MemoryStore) GetUser(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetUserByUsername returns the user with the given username, or nil if absent.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser inserts a new user with a generated id.
func (s *MemoryStore) CreateUser(_ context.Context, arg CreateUserParams) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID++
	u := model.User{
		ID:           s.userID,
		Username:     arg.Username,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	return &u, nil
}

// ---------------------------------------------------------------------------
// Projects

// ListProjects returns all projects, newest first.
func (s *MemoryStore) ListProjects(_ context.Context) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var projects []model.Project
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ID > projects[j].ID
	})
	return projects, nil
}

// ListProjectsByCategory returns the projects of one category, newest first.
func (s *MemoryStore) ListProjectsByCategory(ctx context.Context, category string) ([]model.Project, error) {
	all, _ := s.ListProjects(ctx)
	var matched []model.Project
	for _, p := range all {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListProjectsByTag returns projects whose tags contain the literal,
// case-sensitive tag.
func (s *MemoryStore) ListProjectsByTag(ctx context.Context, tag string) ([]model.Project, error) {
	all, _ := s.ListProjects(ctx)
	var matched []model.Project
	for _, p := range all {
		if p.HasTag(tag) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetProject returns the project with the given id, or nil if absent.
func (s *MemoryStore) GetProject(_ context.Context, id int64) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// CreateProject inserts a new project with a generated id and timestamp.
func (s *MemoryStore) CreateProject(_ context.Context, arg CreateProjectParams) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectID++
	p := model.Project{
		ID:           s.projectID,
		Title:        arg.Title,
		Description:  arg.Description,
		Image:        arg.Image,
		Technologies: normalizeStrings(arg.Technologies),
		Tags:         normalizeStrings(arg.Tags),
		Category:     arg.Category,
		Price:        arg.Price,
		LiveLink:     arg.LiveLink,
		CreatedAt:    time.Now().UTC(),
	}
	s.projects[p.ID] = p
	return &p, nil
}

// UpdateProject merges non-nil patch fields into the existing row, or
// returns nil if the id is absent.
func (s *MemoryStore) UpdateProject(_ context.Context, id int64, patch ProjectPatch) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	applyString(&p.Title, patch.Title)
	applyString(&p.Description, patch.Description)
	applyString(&p.Image, patch.Image)
	applyString(&p.Category, patch.Category)
	applyString(&p.Price, patch.Price)
	applyString(&p.LiveLink, patch.LiveLink)
	if patch.Technologies != nil {
		p.Technologies = patch.Technologies
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	s.projects[id] = p
	return &p, nil
}

// DeleteProject removes the project and its interests, reporting whether a
// row existed.
func (s *MemoryStore) DeleteProject(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return false
	}
	delete(s.projects, id)
	// Mirror the ON DELETE CASCADE of the relational schema.
	for iid, pi := range s.projectInterests {
		if pi.ProjectID == id {
			delete(s.projectInterests, iid)
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Website info

// ListWebsiteInfo returns all rows ordered by section then key.
func (s *MemoryStore) ListWebsiteInfo(_ context.Context) ([]model.WebsiteInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var infos []model.WebsiteInfo
	for _, w := range s.websiteInfo {
		infos = append(infos, w)
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Section != infos[j].Section {
			return infos[i].Section < infos[j].Section
		}
		return infos[i].Key < infos[j].Key
	})
	return infos, nil
}

// ListWebsiteInfoBySection returns the rows for one section ordered by key.
func (s *MemoryStore) ListWebsiteInfoBySection(ctx context.Context, section string) ([]model.WebsiteInfo, error) {
	all, _ := s.ListWebsiteInfo(ctx)
	var matched []model.WebsiteInfo
	for _, w := range all {
		if w.Section == section {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

// UpsertWebsiteInfo updates the value for an existing (section, key) pair or
// inserts a new row.
func (s *MemoryStore) UpsertWebsiteInfo(_ context.Context, arg UpsertWebsiteInfoParams) (*model.WebsiteInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for id, w := range s.websiteInfo {
		if w.Section == arg.Section && w.Key == arg.Key {
			w.Value = arg.Value
			w.UpdatedAt = now
			s.websiteInfo[id] = w
			return &w, nil
		}
	}
	s.infoID++
	w := model.WebsiteInfo{ID: s.infoID, Section: arg.Section, Key: arg.Key, Value: arg.Value, UpdatedAt: now}
	s.websiteInfo[w.ID] = w
	return &w, nil
}

// DeleteWebsiteInfo removes a row.
func (s *MemoryStore) DeleteWebsiteInfo(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.websiteInfo[id]; !ok {
		return false
	}
	delete(s.websiteInfo, id)
	return true
}

// ---------------------------------------------------------------------------
// Skills

// ListSkills returns all skills ordered by category then display order.
func (s *MemoryStore) ListSkills(_ context.Context) ([]model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var skills []model.Skill
	for _, sk := range s.skills {
		skills = append(skills, sk)
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Category != skills[j].Category {
			return skills[i].Category < skills[j].Category
		}
		if skills[i].Order != skills[j].Order {
			return skills[i].Order < skills[j].Order
		}
		return skills[i].ID < skills[j].ID
	})
	return skills, nil
}

// ListSkillsByCategory returns the skills of one category in display order.
func (s *MemoryStore) ListSkillsByCategory(ctx context.Context, category string) ([]model.Skill, error) {
	all, _ := s.ListSkills(ctx)
	var matched []model.Skill
	for _, sk := range all {
		if sk.Category == category {
			matched = append(matched, sk)
		}
	}
	return matched, nil
}

// GetSkill returns the skill with the given id, or nil if absent.
func (s *MemoryStore) GetSkill(_ context.Context, id int64) (*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sk, ok := s.skills[id]; ok {
		return &sk, nil
	}
	return nil, nil
}

// CreateSkill inserts a new skill appended to the end of its category's
// display sequence.
func (s *MemoryStore) CreateSkill(_ context.Context, arg CreateSkillParams) (*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := 0
	for _, sk := range s.skills {
		if sk.Category == arg.Category && sk.Order > order {
			order = sk.Order
		}
	}
	order++

	s.skillID++
	sk := model.Skill{ID: s.skillID, Name: arg.Name, Percentage: arg.Percentage, Category: arg.Category, Order: order}
	s.skills[sk.ID] = sk
	return &sk, nil
}

// UpdateSkill merges non-nil patch fields into the existing row.
func (s *MemoryStore) UpdateSkill(_ context.Context, id int64, patch SkillPatch) (*model.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk, ok := s.skills[id]
	if !ok {
		return nil, nil
	}
	applyString(&sk.Name, patch.Name)
	applyString(&sk.Category, patch.Category)
	applyInt(&sk.Percentage, patch.Percentage)
	applyInt(&sk.Order, patch.Order)
	s.skills[id] = sk
	return &sk, nil
}

// DeleteSkill removes a skill.
func (s *MemoryStore) DeleteSkill(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skills[id]; !ok {
		return false
	}
	delete(s.skills, id)
	return true
}

// ---------------------------------------------------------------------------
// Social links

// ListSocialLinks returns all links in display order.
func (s *MemoryStore) ListSocialLinks(_ context.Context) ([]model.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var links []model.SocialLink
	for _, l := range s.socialLinks {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Order != links[j].Order {
			return links[i].Order < links[j].Order
		}
		return links[i].ID < links[j].ID
	})
	return links, nil
}

// ListActiveSocialLinks returns only active links in display order.
func (s *MemoryStore) ListActiveSocialLinks(ctx context.Context) ([]model.SocialLink, error) {
	all, _ := s.ListSocialLinks(ctx)
	var matched []model.SocialLink
	for _, l := range all {
		if l.IsActive {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

// GetSocialLink returns the link with the given id, or nil if absent.
func (s *MemoryStore) GetSocialLink(_ context.Context, id int64) (*model.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.socialLinks[id]; ok {
		return &l, nil
	}
	return nil, nil
}

// CreateSocialLink inserts a new link appended after the current global
// maximum display order.
func (s *MemoryStore) CreateSocialLink(_ context.Context, arg CreateSocialLinkParams) (*model.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := 0
	for _, l := range s.socialLinks {
		if l.Order > order {
			order = l.Order
		}
	}
	order++

	s.linkID++
	l := model.SocialLink{ID: s.linkID, Platform: arg.Platform, URL: arg.URL, Order: order, IsActive: arg.IsActive}
	s.socialLinks[l.ID] = l
	return &l, nil
}

// UpdateSocialLink merges non-nil patch fields into the existing row.
func (s *MemoryStore) UpdateSocialLink(_ context.Context, id int64, patch SocialLinkPatch) (*model.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.socialLinks[id]
	if !ok {
		return nil, nil
	}
	applyString(&l.Platform, patch.Platform)
	applyString(&l.URL, patch.URL)
	applyInt(&l.Order, patch.Order)
	if patch.IsActive != nil {
		l.IsActive = *patch.IsActive
	}
	s.socialLinks[id] = l
	return &l, nil
}

// DeleteSocialLink removes a link.
func (s *MemoryStore) DeleteSocialLink(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.socialLinks[id]; !ok {
		return false
	}
	delete(s.socialLinks, id)
	return true
}

// ---------------------------------------------------------------------------
// Contact messages

// ListContactMessages returns all messages, newest first.
func (s *MemoryStore) ListContactMessages(_ context.Context) ([]model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var messages []model.ContactMessage
	for _, m := range s.contactMessages {
		messages = append(messages, m)
	}
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].ID > messages[j].ID
	})
	return messages, nil
}

// GetContactMessage returns the message with the given id, or nil if absent.
func (s *MemoryStore) GetContactMessage(_ context.Context, id int64) (*model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.contactMessages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

// CreateContactMessage appends a new message.
func (s *MemoryStore) CreateContactMessage(_ context.Context, arg CreateContactMessageParams) (*model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID++
	m := model.ContactMessage{
		ID:        s.messageID,
		Name:      arg.Name,
		Email:     arg.Email,
		Subject:   arg.Subject,
		Message:   arg.Message,
		CreatedAt: time.Now().UTC(),
	}
	s.contactMessages[m.ID] = m
	return &m, nil
}

// DeleteContactMessage removes a message.
func (s *MemoryStore) DeleteContactMessage(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contactMessages[id]; !ok {
		return false
	}
	delete(s.contactMessages, id)
	return true
}

// ---------------------------------------------------------------------------
// Project interests

// ListProjectInterests returns all interests, newest first.
func (s *MemoryStore) ListProjectInterests(_ context.Context) ([]model.ProjectInterest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var interests []model.ProjectInterest
	for _, pi := range s.projectInterests {
		interests = append(interests, pi)
	}
	sort.Slice(interests, func(i, j int) bool {
		if !interests[i].CreatedAt.Equal(interests[j].CreatedAt) {
			return interests[i].CreatedAt.After(interests[j].CreatedAt)
		}
		return interests[i].ID > interests[j].ID
	})
	return interests, nil
}

// ListProjectInterestsByProject returns the interests for one project, newest first.
func (s *MemoryStore) ListProjectInterestsByProject(ctx context.Context, projectID int64) ([]model.ProjectInterest, error) {
	all, _ := s.ListProjectInterests(ctx)
	var matched []model.ProjectInterest
	for _, pi := range all {
		if pi.ProjectID == projectID {
			matched = append(matched, pi)
		}
	}
	return matched, nil
}

// CreateProjectInterest appends a new interest.
func (s *MemoryStore) CreateProjectInterest(_ context.Context, arg CreateProjectInterestParams) (*model.ProjectInterest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interestID++
	pi := model.ProjectInterest{
		ID:        s.interestID,
		ProjectID: arg.ProjectID,
		Name:      arg.Name,
		Email:     arg.Email,
		Phone:     arg.Phone,
		Message:   arg.Message,
		CreatedAt: time.Now().UTC(),
	}
	s.projectInterests[pi.ID] = pi
	return &pi, nil
}

// DeleteProjectInterest removes an interest.
func (s *MemoryStore) DeleteProjectInterest(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projectInterests[id]; !ok {
		return false
	}
	delete(s.projectInterests, id)
	return true
}

// ---------------------------------------------------------------------------
// Blog posts

// ListBlogPosts returns all posts, newest first.
func (s *MemoryStore) ListBlogPosts(_ context.Context) ([]model.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []model.BlogPost
	for _, b := range s.blogPosts {
		posts = append(posts, b)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

// ListPublishedBlogPosts returns only published posts, newest first.
func (s *MemoryStore) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	all, _ := s.ListBlogPosts(ctx)
	var matched []model.BlogPost
	for _, b := range all {
		if b.Published {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// ListBlogPostsByTag returns posts whose tags contain the literal,
// case-sensitive tag.
func (s *MemoryStore) ListBlogPostsByTag(ctx context.Context, tag string) ([]model.BlogPost, error) {
	all, _ := s.ListBlogPosts(ctx)
	var matched []model.BlogPost
	for _, b := range all {
		if b.HasTag(tag) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetBlogPost returns the post with the given id, or nil if absent.
func (s *MemoryStore) GetBlogPost(_ context.Context, id int64) (*model.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.blogPosts[id]; ok {
		return &b, nil
	}
	return nil, nil
}

// GetBlogPostBySlug returns the post with the given slug, or nil if absent.
func (s *MemoryStore) GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	all, _ := s.ListBlogPosts(ctx)
	for _, b := range all {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, nil
}

// slugTaken reports whether another post (excluding excludeID) already uses
// the slug. Caller must hold the lock.
func (s *MemoryStore) slugTaken(slug string, excludeID int64) bool {
	for _, b := range s.blogPosts {
		if b.Slug == slug && b.ID != excludeID {
			return true
		}
	}
	return false
}

// CreateBlogPost inserts a new post with generated id and timestamps.
// A taken slug is ErrDuplicateSlug.
func (s *MemoryStore) CreateBlogPost(_ context.Context, arg CreateBlogPostParams) (*model.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(arg.Slug, 0) {
		return nil, ErrDuplicateSlug
	}
	now := time.Now().UTC()
	s.postID++
	b := model.BlogPost{
		ID:         s.postID,
		Title:      arg.Title,
		Slug:       arg.Slug,
		Content:    arg.Content,
		Excerpt:    arg.Excerpt,
		CoverImage: arg.CoverImage,
		Tags:       normalizeStrings(arg.Tags),
		Published:  arg.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.blogPosts[b.ID] = b
	return &b, nil
}

// UpdateBlogPost merges non-nil patch fields into the existing row and
// refreshes UpdatedAt.
func (s *MemoryStore) UpdateBlogPost(_ context.Context, id int64, patch BlogPostPatch) (*model.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogPosts[id]
	if !ok {
		return nil, nil
	}
	if patch.Slug != nil && s.slugTaken(*patch.Slug, id) {
		return nil, ErrDuplicateSlug
	}
	applyString(&b.Title, patch.Title)
	applyString(&b.Slug, patch.Slug)
	applyString(&b.Content, patch.Content)
	applyString(&b.Excerpt, patch.Excerpt)
	applyString(&b.CoverImage, patch.CoverImage)
	if patch.Tags != nil {
		b.Tags = patch.Tags
	}
	if patch.Published != nil {
		b.Published = *patch.Published
	}
	b.UpdatedAt = time.Now().UTC()
	s.blogPosts[id] = b
	return &b, nil
}

// DeleteBlogPost removes a post.
func (s *MemoryStore) DeleteBlogPost(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogPosts[id]; !ok {
		return false
	}
	delete(s.blogPosts, id)
	return true
}

// ---------------------------------------------------------------------------
// Events

// CreateEvent appends an event log entry.
func (s *MemoryStore) CreateEvent(_ context.Context, arg CreateEventParams) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventID++
	e := model.Event{
		ID:        s.eventID,
		Level:     arg.Level,
		Category:  arg.Category,
		Message:   arg.Message,
		Metadata:  arg.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	s.events[e.ID] = e
	return &e, nil
}

// ListEvents returns up to limit events, newest first.
func (s *MemoryStore) ListEvents(_ context.Context, limit int) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	var events []model.Event
	for _, e := range s.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		}
		return events[i].ID > events[j].ID
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
