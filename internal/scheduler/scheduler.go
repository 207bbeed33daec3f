// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic sitemap regeneration job.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"folio-go/internal/seo"
)

// Scheduler handles scheduled tasks like sitemap regeneration.
type Scheduler struct {
	cron      *cron.Cron
	generator *seo.Generator
	outputDir string
	logger    *slog.Logger
}

// New creates a new scheduler instance.
func New(generator *seo.Generator, outputDir string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		generator: generator,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Start begins the scheduler with the sitemap regeneration job on the given
// cron spec.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.regenerate(); err != nil {
			s.logger.Error("failed to regenerate sitemap", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "spec", spec)
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// regenerate does a full rebuild of sitemap.xml and robots.txt.
func (s *Scheduler) regenerate() error {
	ctx := context.Background()
	if err := s.generator.WriteFiles(ctx, s.outputDir); err != nil {
		return err
	}
	s.logger.Info("sitemap regenerated", "dir", s.outputDir)
	return nil
}
