// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio-go/internal/store"
	"folio-go/internal/testutil"
)

// forEachStore runs the same conformance test against both implementations.
func forEachStore(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemoryStore())
	})

	t.Run("sqlite", func(t *testing.T) {
		db := testutil.TestDB(t)
		fn(t, store.NewSQLiteStore(db))
	})
}

func TestUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		created, err := s.CreateUser(ctx, store.CreateUserParams{
			Username:     "admin",
			PasswordHash: "$argon2id$fake",
		})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		if created.ID == 0 {
			t.Error("expected a generated id")
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected a created timestamp")
		}

		got, err := s.GetUser(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if got == nil || got.Username != "admin" {
			t.Fatalf("GetUser = %+v, want username admin", got)
		}

		byName, err := s.GetUserByUsername(ctx, "admin")
		if err != nil {
			t.Fatalf("GetUserByUsername: %v", err)
		}
		if byName == nil || byName.ID != created.ID {
			t.Fatalf("GetUserByUsername = %+v, want id %d", byName, created.ID)
		}

		missing, err := s.GetUser(ctx, 9999)
		if err != nil {
			t.Fatalf("GetUser missing: %v", err)
		}
		if missing != nil {
			t.Errorf("GetUser missing = %+v, want nil", missing)
		}

		missingName, err := s.GetUserByUsername(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByUsername missing: %v", err)
		}
		if missingName != nil {
			t.Errorf("GetUserByUsername missing = %+v, want nil", missingName)
		}
	})
}

func TestProjectLifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		created, err := s.CreateProject(ctx, store.CreateProjectParams{
			Title:        "Portfolio Site",
			Description:  "A personal website",
			Image:        "https://example.com/shot.png",
			Technologies: []string{"Go", "SQLite"},
			Tags:         []string{"web", "React"},
			Category:     "web",
			Price:        "negotiable",
			LiveLink:     "https://example.com",
		})
		if err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
		if created.ID == 0 || created.CreatedAt.IsZero() {
			t.Fatalf("expected generated id and timestamp, got %+v", created)
		}

		got, err := s.GetProject(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetProject: %v", err)
		}
		if got == nil {
			t.Fatal("GetProject returned nil for an existing id")
		}
		if got.Title != "Portfolio Site" || len(got.Technologies) != 2 || len(got.Tags) != 2 {
			t.Errorf("GetProject = %+v, round-trip mismatch", got)
		}

		newTitle := "Portfolio Site v2"
		updated, err := s.UpdateProject(ctx, created.ID, store.ProjectPatch{Title: &newTitle})
		if err != nil {
			t.Fatalf("UpdateProject: %v", err)
		}
		if updated.Title != newTitle {
			t.Errorf("Title = %q, want %q", updated.Title, newTitle)
		}
		// Untouched fields survive a partial patch
		if updated.Description != "A personal website" || len(updated.Tags) != 2 {
			t.Errorf("partial patch clobbered other fields: %+v", updated)
		}

		none, err := s.UpdateProject(ctx, 9999, store.ProjectPatch{Title: &newTitle})
		if err != nil {
			t.Fatalf("UpdateProject missing: %v", err)
		}
		if none != nil {
			t.Errorf("UpdateProject missing = %+v, want nil", none)
		}

		if !s.DeleteProject(ctx, created.ID) {
			t.Error("DeleteProject existing = false, want true")
		}
		gone, err := s.GetProject(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetProject after delete: %v", err)
		}
		if gone != nil {
			t.Errorf("project still present after delete: %+v", gone)
		}
		if s.DeleteProject(ctx, created.ID) {
			t.Error("DeleteProject missing = true, want false")
		}
	})
}

func TestProjectOrderingAndFilters(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		first, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "First", Category: "web", Tags: []string{"React"}})
		second, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "Second", Category: "cli", Tags: []string{"react"}})
		third, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "Third", Category: "web"})

		all, err := s.ListProjects(ctx)
		if err != nil {
			t.Fatalf("ListProjects: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("len(ListProjects) = %d, want 3", len(all))
		}
		// Newest first
		if all[0].ID != third.ID || all[2].ID != first.ID {
			t.Errorf("order = [%d %d %d], want newest first", all[0].ID, all[1].ID, all[2].ID)
		}

		web, err := s.ListProjectsByCategory(ctx, "web")
		if err != nil {
			t.Fatalf("ListProjectsByCategory: %v", err)
		}
		if len(web) != 2 {
			t.Errorf("len(web) = %d, want 2", len(web))
		}

		// Tag matching is case-sensitive: "react" must not match "React"
		lower, err := s.ListProjectsByTag(ctx, "react")
		if err != nil {
			t.Fatalf("ListProjectsByTag: %v", err)
		}
		if len(lower) != 1 || lower[0].ID != second.ID {
			t.Errorf("ListProjectsByTag(react) = %+v, want only project %d", lower, second.ID)
		}
		upper, _ := s.ListProjectsByTag(ctx, "React")
		if len(upper) != 1 || upper[0].ID != first.ID {
			t.Errorf("ListProjectsByTag(React) = %+v, want only project %d", upper, first.ID)
		}
	})
}

func TestProjectDeleteCascadesInterests(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		p, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "With interest"})
		other, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "Other"})

		_, err := s.CreateProjectInterest(ctx, store.CreateProjectInterestParams{
			ProjectID: p.ID, Name: "Ada", Email: "ada@example.com", Message: "interested",
		})
		if err != nil {
			t.Fatalf("CreateProjectInterest: %v", err)
		}
		kept, _ := s.CreateProjectInterest(ctx, store.CreateProjectInterestParams{
			ProjectID: other.ID, Name: "Grace", Email: "grace@example.com", Message: "also interested",
		})

		if !s.DeleteProject(ctx, p.ID) {
			t.Fatal("DeleteProject = false")
		}

		remaining, err := s.ListProjectInterests(ctx)
		if err != nil {
			t.Fatalf("ListProjectInterests: %v", err)
		}
		if len(remaining) != 1 || remaining[0].ID != kept.ID {
			t.Errorf("interests after cascade = %+v, want only %d", remaining, kept.ID)
		}
	})
}

func TestWebsiteInfoUpsert(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		first, err := s.UpsertWebsiteInfo(ctx, store.UpsertWebsiteInfoParams{
			Section: "hero", Key: "title", Value: "Hello",
		})
		if err != nil {
			t.Fatalf("UpsertWebsiteInfo insert: %v", err)
		}
		if first.ID == 0 || first.Value != "Hello" {
			t.Fatalf("insert = %+v", first)
		}

		second, err := s.UpsertWebsiteInfo(ctx, store.UpsertWebsiteInfoParams{
			Section: "hero", Key: "title", Value: "Hello again",
		})
		if err != nil {
			t.Fatalf("UpsertWebsiteInfo update: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("upsert created a second row: id %d vs %d", second.ID, first.ID)
		}
		if second.Value != "Hello again" {
			t.Errorf("Value = %q, want last write to win", second.Value)
		}

		all, err := s.ListWebsiteInfo(ctx)
		if err != nil {
			t.Fatalf("ListWebsiteInfo: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("len(ListWebsiteInfo) = %d, want exactly 1 row per (section, key)", len(all))
		}

		// Same key in a different section is a separate row
		if _, err := s.UpsertWebsiteInfo(ctx, store.UpsertWebsiteInfoParams{
			Section: "about", Key: "title", Value: "About",
		}); err != nil {
			t.Fatalf("UpsertWebsiteInfo other section: %v", err)
		}

		hero, err := s.ListWebsiteInfoBySection(ctx, "hero")
		if err != nil {
			t.Fatalf("ListWebsiteInfoBySection: %v", err)
		}
		if len(hero) != 1 || hero[0].Section != "hero" {
			t.Errorf("ListWebsiteInfoBySection(hero) = %+v", hero)
		}

		if !s.DeleteWebsiteInfo(ctx, first.ID) {
			t.Error("DeleteWebsiteInfo existing = false")
		}
		if s.DeleteWebsiteInfo(ctx, first.ID) {
			t.Error("DeleteWebsiteInfo missing = true")
		}
	})
}

func TestSkillOrderAssignment(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		a, err := s.CreateSkill(ctx, store.CreateSkillParams{Name: "Go", Percentage: 90, Category: "backend"})
		if err != nil {
			t.Fatalf("CreateSkill: %v", err)
		}
		if a.Order != 1 {
			t.Errorf("first skill in category Order = %d, want 1", a.Order)
		}

		b, _ := s.CreateSkill(ctx, store.CreateSkillParams{Name: "SQL", Percentage: 80, Category: "backend"})
		if b.Order != 2 {
			t.Errorf("second skill in category Order = %d, want 2", b.Order)
		}

		// A fresh category starts again at 1
		c, _ := s.CreateSkill(ctx, store.CreateSkillParams{Name: "CSS", Percentage: 70, Category: "frontend"})
		if c.Order != 1 {
			t.Errorf("first skill in new category Order = %d, want 1", c.Order)
		}

		backend, err := s.ListSkillsByCategory(ctx, "backend")
		if err != nil {
			t.Fatalf("ListSkillsByCategory: %v", err)
		}
		if len(backend) != 2 || backend[0].ID != a.ID || backend[1].ID != b.ID {
			t.Errorf("backend skills = %+v, want display order", backend)
		}

		pct := 95
		updated, err := s.UpdateSkill(ctx, a.ID, store.SkillPatch{Percentage: &pct})
		if err != nil {
			t.Fatalf("UpdateSkill: %v", err)
		}
		if updated.Percentage != 95 || updated.Name != "Go" {
			t.Errorf("UpdateSkill = %+v", updated)
		}

		if !s.DeleteSkill(ctx, c.ID) {
			t.Error("DeleteSkill existing = false")
		}
		if s.DeleteSkill(ctx, c.ID) {
			t.Error("DeleteSkill missing = true")
		}
	})
}

func TestSocialLinkOrderAndActiveFilter(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		gh, err := s.CreateSocialLink(ctx, store.CreateSocialLinkParams{
			Platform: "github", URL: "https://github.com/someone", IsActive: true,
		})
		if err != nil {
			t.Fatalf("CreateSocialLink: %v", err)
		}
		if gh.Order != 1 {
			t.Errorf("first link Order = %d, want 1", gh.Order)
		}

		li, _ := s.CreateSocialLink(ctx, store.CreateSocialLinkParams{
			Platform: "linkedin", URL: "https://linkedin.com/in/someone", IsActive: false,
		})
		if li.Order != 2 {
			t.Errorf("second link Order = %d, want 2 (global sequence)", li.Order)
		}

		active, err := s.ListActiveSocialLinks(ctx)
		if err != nil {
			t.Fatalf("ListActiveSocialLinks: %v", err)
		}
		if len(active) != 1 || active[0].ID != gh.ID {
			t.Errorf("active links = %+v, want only github", active)
		}

		all, _ := s.ListSocialLinks(ctx)
		if len(all) != 2 {
			t.Errorf("len(ListSocialLinks) = %d, want 2", len(all))
		}

		activate := true
		updated, err := s.UpdateSocialLink(ctx, li.ID, store.SocialLinkPatch{IsActive: &activate})
		if err != nil {
			t.Fatalf("UpdateSocialLink: %v", err)
		}
		if !updated.IsActive {
			t.Error("IsActive not updated")
		}

		if !s.DeleteSocialLink(ctx, li.ID) {
			t.Error("DeleteSocialLink existing = false")
		}
	})
}

func TestContactMessages(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		first, err := s.CreateContactMessage(ctx, store.CreateContactMessageParams{
			Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello there",
		})
		if err != nil {
			t.Fatalf("CreateContactMessage: %v", err)
		}
		second, _ := s.CreateContactMessage(ctx, store.CreateContactMessageParams{
			Name: "Grace", Email: "grace@example.com", Subject: "Question", Message: "About your work",
		})

		list, err := s.ListContactMessages(ctx)
		if err != nil {
			t.Fatalf("ListContactMessages: %v", err)
		}
		if len(list) != 2 || list[0].ID != second.ID {
			t.Errorf("ListContactMessages = %+v, want newest first", list)
		}

		got, err := s.GetContactMessage(ctx, first.ID)
		if err != nil {
			t.Fatalf("GetContactMessage: %v", err)
		}
		if got == nil || got.Name != "Ada" {
			t.Errorf("GetContactMessage = %+v", got)
		}

		if !s.DeleteContactMessage(ctx, first.ID) {
			t.Error("DeleteContactMessage existing = false")
		}
		gone, _ := s.GetContactMessage(ctx, first.ID)
		if gone != nil {
			t.Errorf("message still present after delete: %+v", gone)
		}
		if s.DeleteContactMessage(ctx, first.ID) {
			t.Error("DeleteContactMessage missing = true")
		}
	})
}

func TestProjectInterestsByProject(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		p1, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "One"})
		p2, _ := s.CreateProject(ctx, store.CreateProjectParams{Title: "Two"})

		i1, _ := s.CreateProjectInterest(ctx, store.CreateProjectInterestParams{
			ProjectID: p1.ID, Name: "Ada", Email: "ada@example.com", Phone: "+1 555 0100", Message: "Tell me more",
		})
		_, _ = s.CreateProjectInterest(ctx, store.CreateProjectInterestParams{
			ProjectID: p2.ID, Name: "Grace", Email: "grace@example.com", Message: "Interested",
		})

		forP1, err := s.ListProjectInterestsByProject(ctx, p1.ID)
		if err != nil {
			t.Fatalf("ListProjectInterestsByProject: %v", err)
		}
		if len(forP1) != 1 || forP1[0].ID != i1.ID {
			t.Errorf("interests for project 1 = %+v", forP1)
		}
		if forP1[0].Phone != "+1 555 0100" {
			t.Errorf("Phone = %q, want round-trip", forP1[0].Phone)
		}

		if !s.DeleteProjectInterest(ctx, i1.ID) {
			t.Error("DeleteProjectInterest existing = false")
		}
		if s.DeleteProjectInterest(ctx, i1.ID) {
			t.Error("DeleteProjectInterest missing = true")
		}
	})
}

func TestBlogPosts(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		draft, err := s.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Title: "Draft", Slug: "draft", Content: "# wip", Tags: []string{"Go"},
		})
		if err != nil {
			t.Fatalf("CreateBlogPost: %v", err)
		}
		published, _ := s.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Title: "Live", Slug: "live", Content: "# done", Excerpt: "short", Tags: []string{"go"}, Published: true,
		})

		pub, err := s.ListPublishedBlogPosts(ctx)
		if err != nil {
			t.Fatalf("ListPublishedBlogPosts: %v", err)
		}
		if len(pub) != 1 || pub[0].ID != published.ID {
			t.Errorf("published posts = %+v, want only the live one", pub)
		}

		all, _ := s.ListBlogPosts(ctx)
		if len(all) != 2 || all[0].ID != published.ID {
			t.Errorf("ListBlogPosts = %+v, want newest first", all)
		}

		bySlug, err := s.GetBlogPostBySlug(ctx, "live")
		if err != nil {
			t.Fatalf("GetBlogPostBySlug: %v", err)
		}
		if bySlug == nil || bySlug.ID != published.ID {
			t.Errorf("GetBlogPostBySlug = %+v", bySlug)
		}
		missing, _ := s.GetBlogPostBySlug(ctx, "nope")
		if missing != nil {
			t.Errorf("GetBlogPostBySlug missing = %+v, want nil", missing)
		}

		// Tag matching is case-sensitive
		goTag, _ := s.ListBlogPostsByTag(ctx, "Go")
		if len(goTag) != 1 || goTag[0].ID != draft.ID {
			t.Errorf("ListBlogPostsByTag(Go) = %+v", goTag)
		}

		// Update refreshes UpdatedAt and keeps untouched fields
		time.Sleep(10 * time.Millisecond)
		newContent := "# revised"
		updated, err := s.UpdateBlogPost(ctx, published.ID, store.BlogPostPatch{Content: &newContent})
		if err != nil {
			t.Fatalf("UpdateBlogPost: %v", err)
		}
		if updated.Content != newContent || updated.Excerpt != "short" {
			t.Errorf("UpdateBlogPost = %+v", updated)
		}
		if !updated.UpdatedAt.After(published.UpdatedAt) {
			t.Errorf("UpdatedAt not refreshed: %v vs %v", updated.UpdatedAt, published.UpdatedAt)
		}

		if !s.DeleteBlogPost(ctx, draft.ID) {
			t.Error("DeleteBlogPost existing = false")
		}
		if s.DeleteBlogPost(ctx, draft.ID) {
			t.Error("DeleteBlogPost missing = true")
		}
	})
}

func TestBlogPostSlugUniqueness(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		first, err := s.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Title: "First", Slug: "same", Content: "x",
		})
		if err != nil {
			t.Fatalf("CreateBlogPost: %v", err)
		}
		other, err := s.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Title: "Other", Slug: "other", Content: "x",
		})
		if err != nil {
			t.Fatalf("CreateBlogPost other: %v", err)
		}

		if _, err := s.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Title: "Second", Slug: "same", Content: "y",
		}); !errors.Is(err, store.ErrDuplicateSlug) {
			t.Errorf("duplicate create = %v, want ErrDuplicateSlug", err)
		}

		// The original post stays reachable by slug
		got, err := s.GetBlogPostBySlug(ctx, "same")
		if err != nil {
			t.Fatalf("GetBlogPostBySlug: %v", err)
		}
		if got == nil || got.ID != first.ID {
			t.Errorf("GetBlogPostBySlug = %+v, want post %d", got, first.ID)
		}

		// Updating onto a taken slug fails the same way
		taken := "same"
		if _, err := s.UpdateBlogPost(ctx, other.ID, store.BlogPostPatch{Slug: &taken}); !errors.Is(err, store.ErrDuplicateSlug) {
			t.Errorf("update to taken slug = %v, want ErrDuplicateSlug", err)
		}

		// Re-saving a post under its own slug is fine
		content := "revised"
		updated, err := s.UpdateBlogPost(ctx, first.ID, store.BlogPostPatch{Slug: &taken, Content: &content})
		if err != nil {
			t.Fatalf("update keeping own slug: %v", err)
		}
		if updated.Content != "revised" {
			t.Errorf("update keeping own slug = %+v", updated)
		}
	})
}

func TestEvents(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			if _, err := s.CreateEvent(ctx, store.CreateEventParams{
				Level: "warning", Category: "system", Message: "something happened", Metadata: "{}",
			}); err != nil {
				t.Fatalf("CreateEvent: %v", err)
			}
		}

		events, err := s.ListEvents(ctx, 3)
		if err != nil {
			t.Fatalf("ListEvents: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("len(ListEvents) = %d, want limit 3", len(events))
		}
		// Newest first
		if events[0].ID < events[1].ID {
			t.Errorf("events not newest first: %+v", events)
		}
	})
}
