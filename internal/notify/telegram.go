// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify forwards contact messages and project interests to an
// external chat channel. Delivery is strictly best-effort: the store write
// has already succeeded by the time a notification is attempted, failures
// are logged and dropped, and nothing is ever retried or surfaced to the
// end user.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folio-go/internal/model"
)

// Delivery configuration constants
const (
	RequestTimeout = 10 * time.Second // HTTP request timeout
	MaxResponseLen = 4 * 1024         // Maximum response body to log (4KB)
)

// Notifier delivers content notifications to a chat channel.
type Notifier interface {
	// ContactMessage announces a new contact form submission.
	ContactMessage(ctx context.Context, m *model.ContactMessage)
	// ProjectInterest announces a new project inquiry.
	ProjectInterest(ctx context.Context, pi *model.ProjectInterest, projectTitle string)
}

// httpClient is the shared HTTP client with appropriate timeouts.
var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Telegram sends notifications through the Telegram Bot API.
type Telegram struct {
	botToken string
	chatID   string
	baseURL  string
	logger   *slog.Logger
	client   *http.Client
}

// Option configures a Telegram notifier.
type Option func(*Telegram)

// WithBaseURL overrides the Telegram API base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(t *Telegram) {
		t.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithClient overrides the HTTP client.
func WithClient(c *http.Client) Option {
	return func(t *Telegram) {
		t.client = c
	}
}

// NewTelegram creates a Telegram notifier for the given bot token and chat.
func NewTelegram(botToken, chatID string, logger *slog.Logger, opts ...Option) *Telegram {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Telegram{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  "https://api.telegram.org",
		logger:   logger,
		client:   httpClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ensure Telegram implements Notifier at compile time.
var _ Notifier = (*Telegram)(nil)

// ContactMessage announces a new contact form submission.
func (t *Telegram) ContactMessage(ctx context.Context, m *model.ContactMessage) {
	text := fmt.Sprintf("New contact message #%d\nFrom: %s <%s>\nSubject: %s\n\n%s",
		m.ID, m.Name, m.Email, m.Subject, m.Message)
	t.send(ctx, text)
}

// ProjectInterest announces a new project inquiry.
func (t *Telegram) ProjectInterest(ctx context.Context, pi *model.ProjectInterest, projectTitle string) {
	var b strings.Builder
	fmt.Fprintf(&b, "New project interest #%d\nProject: %s\nFrom: %s <%s>\n", pi.ID, projectTitle, pi.Name, pi.Email)
	if pi.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", pi.Phone)
	}
	fmt.Fprintf(&b, "\n%s", pi.Message)
	t.send(ctx, b.String())
}

// sendMessageRequest is the Telegram sendMessage payload.
type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// send posts one message to the configured chat. Failures are logged, never
// returned: the caller has nothing useful to do with them.
func (t *Telegram) send(ctx context.Context, text string) {
	payload, err := json.Marshal(sendMessageRequest{ChatID: t.chatID, Text: text})
	if err != nil {
		t.logger.Error("failed to marshal notification payload", "error", err)
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.logger.Error("failed to build notification request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("notification delivery failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
		t.logger.Error("notification rejected",
			"status_code", resp.StatusCode,
			"response", string(body))
		return
	}

	t.logger.Debug("notification delivered", "chat_id", t.chatID)
}

// Noop is a Notifier that does nothing. Used when no chat channel is
// configured.
type Noop struct{}

// ContactMessage implements Notifier.
func (Noop) ContactMessage(context.Context, *model.ContactMessage) {}

// ProjectInterest implements Notifier.
func (Noop) ProjectInterest(context.Context, *model.ProjectInterest, string) {}
