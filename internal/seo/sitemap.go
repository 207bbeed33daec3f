// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo generates the sitemap and robots.txt from stored content.
package seo

import (
	"encoding/xml"
	"fmt"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapPost contains data needed to add a blog post to the sitemap.
type SitemapPost struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapProject contains data needed to add a project to the sitemap.
type SitemapProject struct {
	ID        int64
	CreatedAt time.Time
}

// SitemapBuilder builds sitemap XML from site content.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddPost adds a published blog post to the sitemap.
func (b *SitemapBuilder) AddPost(post SitemapPost) {
	url := SitemapURL{
		Loc:        b.siteURL + "/blog/" + post.Slug,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if !post.UpdatedAt.IsZero() {
		url.LastMod = post.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddPosts adds multiple blog posts to the sitemap.
func (b *SitemapBuilder) AddPosts(posts []SitemapPost) {
	for _, p := range posts {
		b.AddPost(p)
	}
}

// AddProject adds a project page to the sitemap.
func (b *SitemapBuilder) AddProject(project SitemapProject) {
	url := SitemapURL{
		Loc:        fmt.Sprintf("%s/projects/%d", b.siteURL, project.ID),
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	}
	if !project.CreatedAt.IsZero() {
		url.LastMod = project.CreatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddProjects adds multiple projects to the sitemap.
func (b *SitemapBuilder) AddProjects(projects []SitemapProject) {
	for _, p := range projects {
		b.AddProject(p)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	// Add XML header
	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap is a convenience function to generate a sitemap from content.
func GenerateSitemap(siteURL string, posts []SitemapPost, projects []SitemapProject) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddHomepage()
	builder.AddPosts(posts)
	builder.AddProjects(projects)
	return builder.Build()
}
