// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef" // 32 bytes

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FOLIO_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.AdminBase != "/admin" {
		t.Errorf("AdminBase = %q", cfg.AdminBase)
	}
	if cfg.UseRedisCache() {
		t.Error("Redis cache should be off without FOLIO_REDIS_URL")
	}
	if cfg.TelegramEnabled() {
		t.Error("Telegram should be off without token and chat id")
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("CacheTTL = %d, want 300", cfg.CacheTTL)
	}
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("FOLIO_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without a session secret")
	}
}

func TestLoadRejectsShortSessionSecret(t *testing.T) {
	t.Setenv("FOLIO_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load accepted a short session secret")
	}
	if !strings.Contains(err.Error(), "FOLIO_SESSION_SECRET") {
		t.Errorf("error %q does not name the variable", err)
	}
}

func TestLoadNormalizesAdminBase(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"/admin", "/admin"},
		{"admin", "/admin"},
		{"/console/", "/console"},
		{"panel-9f2c", "/panel-9f2c"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("FOLIO_SESSION_SECRET", testSecret)
			t.Setenv("FOLIO_ADMIN_BASE", tt.raw)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.AdminBase != tt.want {
				t.Errorf("AdminBase = %q, want %q", cfg.AdminBase, tt.want)
			}
		})
	}
}

func TestTelegramEnabledNeedsBoth(t *testing.T) {
	t.Setenv("FOLIO_SESSION_SECRET", testSecret)
	t.Setenv("FOLIO_TELEGRAM_BOT_TOKEN", "tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramEnabled() {
		t.Error("token without chat id should not enable Telegram")
	}

	t.Setenv("FOLIO_TELEGRAM_CHAT_ID", "42")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.TelegramEnabled() {
		t.Error("token plus chat id should enable Telegram")
	}
}
