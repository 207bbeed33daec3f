// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	SessionSecret string `env:"FOLIO_SESSION_SECRET,required"`
	ServerHost    string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// SiteURL is the public base URL used in the sitemap and robots.txt.
	SiteURL string `env:"FOLIO_SITE_URL" envDefault:"http://localhost:8080"`

	// AdminBase is the obscured path prefix the admin console is mounted
	// under. Obscurity is not the access control; admin routes also require
	// a session login.
	AdminBase string `env:"FOLIO_ADMIN_BASE" envDefault:"/admin"`

	// Admin seeding
	AdminUsername string `env:"FOLIO_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"FOLIO_ADMIN_PASSWORD"` // generated and logged when empty
	DoSeed        bool   `env:"FOLIO_DO_SEED" envDefault:"false"`

	// Telegram notification configuration. Both values must be set for
	// contact notifications to be delivered.
	TelegramBotToken string `env:"FOLIO_TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"FOLIO_TELEGRAM_CHAT_ID"`

	// Cache configuration
	RedisURL    string `env:"FOLIO_REDIS_URL"`                       // Optional Redis URL for the read cache
	CachePrefix string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio"` // Redis key prefix
	CacheTTL    int    `env:"FOLIO_CACHE_TTL" envDefault:"300"`      // Default cache TTL in seconds

	// Sitemap regeneration
	SitemapDir  string `env:"FOLIO_SITEMAP_DIR" envDefault:"./data"`      // Output dir for sitemap.xml / robots.txt
	SitemapCron string `env:"FOLIO_SITEMAP_CRON" envDefault:"17 3 * * *"` // Regeneration schedule
	RobotsDeny  bool   `env:"FOLIO_ROBOTS_DENY" envDefault:"false"`       // Block all crawlers (staging)
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// TelegramEnabled returns true if Telegram notifications are configured.
func (c Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if !strings.HasPrefix(cfg.AdminBase, "/") {
		cfg.AdminBase = "/" + cfg.AdminBase
	}
	cfg.AdminBase = strings.TrimSuffix(cfg.AdminBase, "/")

	return cfg, nil
}
