// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"testing"

	"folio-go/internal/auth"
	"folio-go/internal/store"
)

func TestSeedCreatesAdminOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	if err := store.Seed(ctx, s, "admin", "seed-password-1"); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	user, err := s.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil {
		t.Fatal("admin user was not created")
	}
	ok, err := auth.CheckPassword("seed-password-1", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("seeded password does not verify: ok=%v err=%v", ok, err)
	}

	// A second boot must not replace the credentials
	if err := store.Seed(ctx, s, "admin", "different-password"); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	again, _ := s.GetUserByUsername(ctx, "admin")
	if again.ID != user.ID || again.PasswordHash != user.PasswordHash {
		t.Error("re-seeding replaced the existing admin user")
	}
}

func TestSeedGeneratesPasswordWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	if err := store.Seed(ctx, s, "", ""); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	user, _ := s.GetUserByUsername(ctx, store.DefaultAdminUsername)
	if user == nil {
		t.Fatal("default admin user was not created")
	}
	if user.PasswordHash == "" {
		t.Error("generated password was not hashed and stored")
	}
}

func TestSeedContentSkipsExistingKeys(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	custom, err := s.UpsertWebsiteInfo(ctx, store.UpsertWebsiteInfoParams{
		Section: "hero", Key: "title", Value: "My own headline",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SeedContent(ctx, s); err != nil {
		t.Fatalf("SeedContent: %v", err)
	}

	rows, err := s.ListWebsiteInfo(ctx)
	if err != nil {
		t.Fatalf("ListWebsiteInfo: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("got %d rows, want starter rows added", len(rows))
	}
	for _, row := range rows {
		if row.ID == custom.ID && row.Value != "My own headline" {
			t.Errorf("seeding overwrote an operator-edited row: %+v", row)
		}
	}

	// Idempotent
	if err := store.SeedContent(ctx, s); err != nil {
		t.Fatalf("second SeedContent: %v", err)
	}
	after, _ := s.ListWebsiteInfo(ctx)
	if len(after) != len(rows) {
		t.Errorf("second seed changed row count: %d -> %d", len(rows), len(after))
	}
}
