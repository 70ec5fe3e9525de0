package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"
)

// Entry is the caller-facing shape of one audit event. Only Type is required.
type Entry struct {
	Type       string
	OccurredAt *time.Time
	Message    string
	Context    map[string]any
	Details    map[string]any
	Source     string
}

// Record is the persisted form after normalization.
type Record struct {
	Type       string
	OccurredAt time.Time
	Message    *string
	Context    map[string]any
	Details    map[string]any
	Source     *string
}

// EventRepository appends one immutable row per record. Rows are never
// updated or deleted.
type EventRepository interface {
	Insert(ctx context.Context, rec Record) error
}

type Writer struct {
	events EventRepository
	clock  clock.Clock
}

func NewWriter(events EventRepository, clk clock.Clock) *Writer {
	return &Writer{events: events, clock: clk}
}

// Record validates, normalizes and appends one audit event. Storage failures
// propagate so the caller can choose its policy; business mutations in this
// service treat them as non-fatal via MustRecord.
func (w *Writer) Record(ctx context.Context, e Entry) error {
	eventType := strings.TrimSpace(e.Type)
	if eventType == "" {
		return errs.ErrEventTypeRequired
	}

	occurredAt := w.clock.Now()
	if e.OccurredAt != nil && !e.OccurredAt.IsZero() {
		occurredAt = *e.OccurredAt
	}

	rec := Record{
		Type:       eventType,
		OccurredAt: occurredAt,
		Context:    Sanitize(e.Context),
		Details:    Sanitize(e.Details),
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		rec.Message = &msg
	}
	if src := strings.TrimSpace(e.Source); src != "" {
		rec.Source = &src
	}

	return w.events.Insert(ctx, rec)
}

// MustRecord is the fire-and-forget variant used after a business mutation
// has already committed: an audit failure must never roll back or surface to
// a customer-facing transition, so it is logged and swallowed.
func (w *Writer) MustRecord(ctx context.Context, e Entry) {
	if err := w.Record(ctx, e); err != nil {
		slog.Error("failed to record audit event", "type", e.Type, "error", err)
	}
}
