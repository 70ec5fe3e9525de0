package repository

import (
	"context"

	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/usecase/audit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository is the append-only audit sink. Rows are never updated or
// deleted.
type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Insert(ctx context.Context, rec audit.Record) error {
	ctxDoc, err := marshalDoc(rec.Context)
	if err != nil {
		return infra.WrapRepoErr("failed to encode event context", err)
	}
	details, err := marshalDoc(rec.Details)
	if err != nil {
		return infra.WrapRepoErr("failed to encode event details", err)
	}

	const q = `
		INSERT INTO events (type, occurred_at, message, context, details, source)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6)`
	_, err = r.db.Exec(ctx, q, rec.Type, rec.OccurredAt, rec.Message, ctxDoc, details, rec.Source)
	if err != nil {
		return infra.WrapRepoErr("failed to insert event", err)
	}
	return nil
}
