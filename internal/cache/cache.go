// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the read cache used by the public API handlers.
// Published content (posts, projects, website info, social links) is served
// from the cache where possible and invalidated on every admin write.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache defines the interface for cache implementations.
// All implementations must be thread-safe. Values are []byte so the same
// interface serves both the in-memory and the Redis backend.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil and ErrCacheMiss if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified TTL.
	// If TTL is 0, uses the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Options configures New.
type Options struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string
	// Prefix is prepended to all keys (Redis backend only).
	Prefix string
	// DefaultTTL is the expiration applied when Set is called with ttl 0.
	DefaultTTL time.Duration
}

// New creates a cache for the given options: Redis when a URL is
// configured, the in-memory cache otherwise. When Redis is configured but
// unreachable, it falls back to memory with a warning rather than failing
// startup.
func New(opts Options, logger *slog.Logger) Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 5 * time.Minute
	}

	if opts.RedisURL != "" {
		c, err := NewRedisCache(opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err == nil {
			logger.Info("cache initialized", "backend", "redis")
			return c
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	logger.Info("cache initialized", "backend", "memory")
	return NewMemoryCache(opts.DefaultTTL)
}
