// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"folio-go/internal/cache"
	"folio-go/internal/config"
	"folio-go/internal/handler"
	"folio-go/internal/logging"
	"folio-go/internal/middleware"
	"folio-go/internal/notify"
	"folio-go/internal/scheduler"
	"folio-go/internal/seo"
	"folio-go/internal/session"
	"folio-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	useMemory := flag.Bool("memory", false, "Use the in-memory store (no persistence, for development)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - portfolio website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET     Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH            SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SITE_URL           Public base URL for sitemap/robots (default: http://localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_BASE         Admin console path prefix (default: /admin)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_TELEGRAM_BOT_TOKEN Telegram bot token for contact notifications (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_TELEGRAM_CHAT_ID   Telegram chat to notify (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL          Redis URL for the read cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("folio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(*useMemory); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(useMemory bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Initialize the content store
	var (
		contentStore store.Store
		db           *sql.DB
	)
	if useMemory {
		contentStore = store.NewMemoryStore()
		slog.Info("using in-memory store", "persistence", false)
	} else {
		// Ensure data directory exists
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		slog.Info("initializing database", "path", cfg.DBPath)
		db, err = store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("initializing database: %w", err)
		}
		defer func(db *sql.DB) {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		}(db)

		slog.Info("running database migrations")
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database ready")

		contentStore = store.NewSQLiteStore(db)
	}

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, contentStore)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the admin user (created only when missing) and, on request,
	// the starter site text
	ctx := context.Background()
	if err := store.Seed(ctx, contentStore, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if cfg.DoSeed || useMemory {
		if err := store.SeedContent(ctx, contentStore); err != nil {
			return fmt.Errorf("seeding starter content: %w", err)
		}
	}

	// Initialize session manager. The in-memory mode keeps sessions in
	// process memory; persistent mode stores them in SQLite.
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Read cache for the public endpoints
	contentCache := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	}, logger)
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// Chat notifications (best-effort, disabled without a bot token)
	var notifier notify.Notifier = notify.Noop{}
	if cfg.TelegramEnabled() {
		notifier = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
		slog.Info("telegram notifications enabled")
	} else {
		slog.Info("telegram notifications disabled", "reason", "bot token or chat id not set")
	}

	// Sitemap / robots generation
	generator := seo.NewGenerator(contentStore, cfg.SiteURL, cfg.AdminBase, cfg.RobotsDeny)
	sched := scheduler.New(generator, cfg.SitemapDir, logger)
	if err := sched.Start(cfg.SitemapCron); err != nil {
		return fmt.Errorf("starting sitemap scheduler: %w", err)
	}
	defer sched.Stop()

	// Write the initial sitemap/robots files so they exist before the first
	// scheduled run
	if err := generator.WriteFiles(ctx, cfg.SitemapDir); err != nil {
		slog.Warn("initial sitemap generation failed", "error", err)
	}

	// Initialize handlers
	h := handler.New(contentStore, sessionManager, notifier, contentCache, logger)
	seoHandler := handler.NewSEOHandler(generator)
	healthHandler := handler.NewHealthHandler(db)

	// Per-IP rate limiter for the public write endpoints
	contactRateLimiter := middleware.NewIPRateLimiter(0.5, 5)
	slog.Info("contact rate limiter initialized", "rate", "0.5 req/s", "burst", 5)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Health, sitemap and robots
	r.Get("/health", healthHandler.Health)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	// Public API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", h.ListProjects)
		r.Get("/projects/tag/{tag}", h.ListProjectsByTag)
		r.Get("/projects/{id}", h.GetProject)
		r.Get("/skills", h.ListSkills)
		r.Get("/social-links", h.ListActiveSocialLinks)
		r.Get("/website-info", h.ListWebsiteInfo)
		r.Get("/blog", h.ListPublishedBlogPosts)
		r.Get("/blog/tag/{tag}", h.ListBlogPostsByTag)
		r.Get("/blog/{slug}", h.GetBlogPostBySlug)

		// Write endpoints: rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(contactRateLimiter.Middleware())
			r.Post("/contact", h.SubmitContact)
			r.Post("/projects/{id}/interest", h.SubmitProjectInterest)
		})
	})

	// Admin routes behind the configurable path prefix. The prefix is
	// obscurity only; session auth and CSRF are the access control.
	r.Route(cfg.AdminBase, func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, contentStore))

			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
			r.Get("/events", h.ListEvents)

			r.Get("/projects", h.ListProjects)
			r.Post("/projects", h.CreateProject)
			r.Get("/projects/{id}", h.GetProject)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Delete("/projects/{id}", h.DeleteProject)

			r.Get("/skills", h.ListSkills)
			r.Post("/skills", h.CreateSkill)
			r.Put("/skills/{id}", h.UpdateSkill)
			r.Delete("/skills/{id}", h.DeleteSkill)

			r.Get("/social-links", h.ListSocialLinks)
			r.Post("/social-links", h.CreateSocialLink)
			r.Put("/social-links/{id}", h.UpdateSocialLink)
			r.Delete("/social-links/{id}", h.DeleteSocialLink)

			r.Get("/website-info", h.ListWebsiteInfo)
			r.Put("/website-info", h.UpsertWebsiteInfo)
			r.Delete("/website-info/{id}", h.DeleteWebsiteInfo)

			r.Get("/blog", h.ListBlogPosts)
			r.Post("/blog", h.CreateBlogPost)
			r.Get("/blog/{id}", h.GetBlogPost)
			r.Put("/blog/{id}", h.UpdateBlogPost)
			r.Delete("/blog/{id}", h.DeleteBlogPost)

			r.Get("/contact-messages", h.ListContactMessages)
			r.Get("/contact-messages/{id}", h.GetContactMessage)
			r.Delete("/contact-messages/{id}", h.DeleteContactMessage)

			r.Get("/project-interests", h.ListProjectInterests)
			r.Delete("/project-interests/{id}", h.DeleteProjectInterest)
		})
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "admin_base", cfg.AdminBase)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
