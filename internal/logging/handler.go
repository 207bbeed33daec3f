// Package logging provides a custom slog handler that integrates with the event log.
// It forwards logs at WARN level and above to the database-backed event log for auditing.
package logging

import (
	"context"
	"log/slog"
	"strings"

	"folio-go/internal/model"
	"folio-go/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// WARN and ERROR level logs to the event log.
type EventLogHandler struct {
	inner slog.Handler
	store store.Store
	level slog.Level // Minimum level to forward to the event log (default: WARN)
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given handler.
// Logs at WARN level and above will be written to both the wrapped handler and the event log.
func NewEventLogHandler(inner slog.Handler, s store.Store) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: s,
		level: slog.LevelWarn,
	}
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, s store.Store, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		store: s,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Always forward to the inner handler first
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithAttrs(attrs),
		store: h.store,
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithGroup(name),
		store: h.store,
		level: h.level,
	}
}

// writeToEventLog writes a log record to the event log.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	// A background context ensures the event is recorded even if the
	// request context is already cancelled.
	_, _ = h.store.CreateEvent(context.Background(), store.CreateEventParams{
		Level:    slogLevelToEventLevel(r.Level),
		Category: extractCategory(r),
		Message:  r.Message,
		Metadata: extractMetadata(r),
	})
}

// slogLevelToEventLevel converts a slog.Level to an event log level.
func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory attempts to extract a category from the log record attributes.
// It looks for a "category" attribute or infers from common patterns.
func extractCategory(r slog.Record) string {
	var category string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false // Stop iteration
		}
		return true
	})

	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "logout"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "post") || strings.Contains(msg, "project") || strings.Contains(msg, "skill"):
		return model.EventCategoryContent
	case strings.Contains(msg, "contact") || strings.Contains(msg, "interest") || strings.Contains(msg, "notify"):
		return model.EventCategoryContact
	default:
		return model.EventCategorySystem
	}
}

// extractMetadata collects all log attributes into a JSON string.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true // Skip category, already extracted
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})

	sb.WriteString("}")
	return sb.String()
}

// escapeJSON escapes special characters in a string for JSON.
func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
