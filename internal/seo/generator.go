// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"folio-go/internal/store"
)

// Generator produces the sitemap and robots.txt from the content store.
// Regeneration is always a full rebuild: every published blog post and every
// project contributes one URL entry; there is no diffing.
type Generator struct {
	store       store.Store
	siteURL     string
	adminBase   string
	disallowAll bool
}

// NewGenerator creates a Generator.
func NewGenerator(s store.Store, siteURL, adminBase string, disallowAll bool) *Generator {
	return &Generator{
		store:       s,
		siteURL:     siteURL,
		adminBase:   adminBase,
		disallowAll: disallowAll,
	}
}

// Sitemap builds the sitemap XML from all published blog posts and all
// projects. Rows are treated as read-only.
func (g *Generator) Sitemap(ctx context.Context) ([]byte, error) {
	posts, err := g.store.ListPublishedBlogPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing published posts: %w", err)
	}
	projects, err := g.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	sitemapPosts := make([]SitemapPost, 0, len(posts))
	for _, p := range posts {
		sitemapPosts = append(sitemapPosts, SitemapPost{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}
	sitemapProjects := make([]SitemapProject, 0, len(projects))
	for _, p := range projects {
		sitemapProjects = append(sitemapProjects, SitemapProject{ID: p.ID, CreatedAt: p.CreatedAt})
	}

	return GenerateSitemap(g.siteURL, sitemapPosts, sitemapProjects)
}

// Robots builds the robots.txt content.
func (g *Generator) Robots() string {
	return GenerateRobots(g.siteURL, g.disallowAll, []string{g.adminBase})
}

// WriteFiles regenerates sitemap.xml and robots.txt under dir.
func (g *Generator) WriteFiles(ctx context.Context, dir string) error {
	sitemap, err := g.Sitemap(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating sitemap dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sitemap.xml"), sitemap, 0o644); err != nil {
		return fmt.Errorf("writing sitemap.xml: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "robots.txt"), []byte(g.Robots()), 0o644); err != nil {
		return fmt.Errorf("writing robots.txt: %w", err)
	}
	return nil
}
