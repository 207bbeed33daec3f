// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"folio-go/internal/auth"
)

// DefaultAdminUsername is the username created on first start.
const DefaultAdminUsername = "admin"

// Seed creates the initial admin user if no user exists yet. When password
// is empty a random one is generated and logged once so the operator can
// log in and change it.
func Seed(ctx context.Context, s Store, username, password string) error {
	if username == "" {
		username = DefaultAdminUsername
	}

	existing, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("checking for admin user: %w", err)
	}
	if existing != nil {
		slog.Info("admin user already exists, skipping seed", "username", username)
		return nil
	}

	generated := false
	if password == "" {
		password = uuid.NewString()
		generated = true
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.CreateUser(ctx, CreateUserParams{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if generated {
		slog.Info("created admin user with generated password",
			"id", user.ID,
			"username", user.Username,
			"password", password,
		)
	} else {
		slog.Info("created admin user", "id", user.ID, "username", user.Username)
	}

	return nil
}

// SeedContent fills in starter website info rows so a fresh site renders
// something sensible. Any (section, key) that already exists is skipped.
func SeedContent(ctx context.Context, s Store) error {
	defaults := []UpsertWebsiteInfoParams{
		{Section: "hero", Key: "title", Value: "Hi, I build software."},
		{Section: "hero", Key: "subtitle", Value: "Full-stack developer for hire."},
		{Section: "about", Key: "body", Value: "Tell visitors about yourself in the admin console."},
		{Section: "contact", Key: "email", Value: "hello@example.com"},
	}

	existing, err := s.ListWebsiteInfo(ctx)
	if err != nil {
		return fmt.Errorf("listing website info: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, w := range existing {
		present[w.Section+"/"+w.Key] = true
	}

	for _, d := range defaults {
		if present[d.Section+"/"+d.Key] {
			continue
		}
		if _, err := s.UpsertWebsiteInfo(ctx, d); err != nil {
			return fmt.Errorf("seeding website info %s/%s: %w", d.Section, d.Key, err)
		}
	}

	return nil
}
