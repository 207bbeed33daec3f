package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"folio-go/internal/model"
	"folio-go/internal/store"
)

func newTestLogger(s store.Store) *slog.Logger {
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, s))
}

func TestWarnAndErrorReachEventLog(t *testing.T) {
	s := store.NewMemoryStore()
	logger := newTestLogger(s)

	logger.Info("just info")
	logger.Warn("something odd")
	logger.Error("something broke")

	events, err := s.ListEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (info must not be recorded)", len(events))
	}
	// Newest first
	if events[0].Level != model.EventLevelError || events[0].Message != "something broke" {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1].Level != model.EventLevelWarning || events[1].Message != "something odd" {
		t.Errorf("events[1] = %+v", events[1])
	}
}

func TestCategoryFromAttribute(t *testing.T) {
	s := store.NewMemoryStore()
	logger := newTestLogger(s)

	logger.Warn("whatever message", "category", "auth")

	events, _ := s.ListEvents(context.Background(), 1)
	if len(events) != 1 || events[0].Category != model.EventCategoryAuth {
		t.Errorf("events = %+v, want explicit auth category", events)
	}
}

func TestCategoryInferredFromMessage(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"login failed: unknown user", model.EventCategoryAuth},
		{"failed to update project", model.EventCategoryContent},
		{"contact message rejected", model.EventCategoryContact},
		{"disk almost full", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			s := store.NewMemoryStore()
			newTestLogger(s).Warn(tt.message)

			events, _ := s.ListEvents(context.Background(), 1)
			if len(events) != 1 || events[0].Category != tt.want {
				t.Errorf("category = %+v, want %q", events, tt.want)
			}
		})
	}
}

func TestMetadataIsValidJSON(t *testing.T) {
	s := store.NewMemoryStore()
	logger := newTestLogger(s)

	logger.Warn("odd value seen", "category", "system", "key", `has "quotes" and
newline`, "id", 42)

	events, _ := s.ListEvents(context.Background(), 1)
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata %q is not valid JSON: %v", events[0].Metadata, err)
	}
	if _, ok := meta["category"]; ok {
		t.Error("category attribute should be elided from metadata")
	}
	if meta["id"] != "42" {
		t.Errorf("meta[id] = %q", meta["id"])
	}
}

func TestWithAttrsKeepsEventLogging(t *testing.T) {
	s := store.NewMemoryStore()
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewEventLogHandler(inner, s)).With("request_id", "abc123")

	logger.Warn("still recorded")

	events, _ := s.ListEvents(context.Background(), 1)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}
