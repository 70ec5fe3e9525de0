package readstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventReadStore struct {
	db *pgxpool.Pool
}

func NewEventReadStore(db *pgxpool.Pool) *EventReadStore {
	return &EventReadStore{db: db}
}

// List pages through the audit trail newest first, keyed on
// (occurred_at, id) so equal timestamps paginate deterministically.
func (r *EventReadStore) List(ctx context.Context, filter queries.EventFilter, limit int, afterTime *time.Time, afterID *uuid.UUID) ([]queries.EventView, error) {
	q := `
		SELECT id, type, occurred_at, message, context, details, source, created_at
		FROM events
		WHERE 1=1`
	args := []any{}

	// Type filters by prefix so "coupon." matches the whole family.
	if filter.Type != "" {
		args = append(args, filter.Type)
		q += fmt.Sprintf(" AND starts_with(type, $%d)", len(args))
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		q += fmt.Sprintf(" AND source = $%d", len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		q += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filter.Until != nil {
		args = append(args, *filter.Until)
		q += fmt.Sprintf(" AND occurred_at < $%d", len(args))
	}
	if afterTime != nil && afterID != nil {
		args = append(args, *afterTime, *afterID)
		q += fmt.Sprintf(" AND (occurred_at, id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// one extra row so the caller can detect a next page
	args = append(args, limit+1)
	q += fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list events", err)
	}
	defer rows.Close()

	var views []queries.EventView
	for rows.Next() {
		var (
			view       queries.EventView
			contextDoc []byte
			detailsDoc []byte
		)
		if err := rows.Scan(
			&view.ID, &view.Type, &view.OccurredAt, &view.Message,
			&contextDoc, &detailsDoc, &view.Source, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan event row", err)
		}
		if view.Context, err = decodeDoc(contextDoc); err != nil {
			return nil, infra.WrapRepoErr("failed to decode event context", err)
		}
		if view.Details, err = decodeDoc(detailsDoc); err != nil {
			return nil, infra.WrapRepoErr("failed to decode event details", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate event rows", err)
	}
	return views, nil
}

func decodeDoc(doc []byte) (map[string]any, error) {
	if len(doc) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, err
	}
	return m, nil
}
