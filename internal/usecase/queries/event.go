package queries

import (
	"context"
	"time"

	"coupon-wallet-service/internal/pkg/errs"

	"github.com/google/uuid"
)

// EventFilter narrows the audit trail listing. Zero values mean no filter;
// Type matches as a prefix so one value covers a whole event family.
type EventFilter struct {
	Type   string
	Source string
	Since  *time.Time
	Until  *time.Time
}

type EventPage struct {
	Events     []EventView `json:"events"`
	NextCursor *string     `json:"nextCursor,omitempty"`
}

type EventQueries interface {
	ListEvents(ctx context.Context, filter EventFilter, limit int, afterCursor string) (*EventPage, error)
}

type EventReadStore interface {
	// List returns events ordered by (occurred_at, id) descending, strictly
	// before the after-key when one is given, at most limit+1 rows so the
	// caller can detect a next page.
	List(ctx context.Context, filter EventFilter, limit int, afterTime *time.Time, afterID *uuid.UUID) ([]EventView, error)
}

type eventQueriesImpl struct {
	readStore EventReadStore
}

func NewEventQueries(readStore EventReadStore) EventQueries {
	return &eventQueriesImpl{readStore: readStore}
}

func (q *eventQueriesImpl) ListEvents(ctx context.Context, filter EventFilter, limit int, afterCursor string) (*EventPage, error) {
	limit = ValidateLimit(limit)

	var afterTime *time.Time
	var afterID *uuid.UUID
	if afterCursor != "" {
		t, id, err := DecodeAfterCursor(afterCursor)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		afterTime, afterID = &t, &id
	}

	rows, err := q.readStore.List(ctx, filter, limit, afterTime, afterID)
	if err != nil {
		return nil, err
	}

	page := &EventPage{Events: rows}
	if len(rows) > limit {
		page.Events = rows[:limit]
		last := page.Events[limit-1]
		cursor := EncodeAfterCursor(last.OccurredAt, last.ID)
		page.NextCursor = &cursor
	}
	return page, nil
}
