package repository

import (
	"context"

	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*subscription.StoreSubscription, error) {
	const q = `
		SELECT id, store_id, status, plan_id, current_period_start, current_period_end,
		       grace_until, canceled_at
		FROM store_subscriptions
		WHERE store_id = $1`

	var (
		sub         subscription.StoreSubscription
		status      string
		planID      pgtype.UUID
		periodStart pgtype.Timestamptz
		periodEnd   pgtype.Timestamptz
		graceUntil  pgtype.Timestamptz
		canceledAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, storeID).Scan(
		&sub.ID, &sub.StoreID, &status, &planID,
		&periodStart, &periodEnd, &graceUntil, &canceledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("store subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription by store ID", err)
	}

	sub.Status = subscription.Status(status)
	sub.PlanID = pgconv.UUIDPtrFromPgtype(planID)
	sub.CurrentPeriodStart = pgconv.TimePtrFromPgtype(periodStart)
	sub.CurrentPeriodEnd = pgconv.TimePtrFromPgtype(periodEnd)
	sub.GraceUntil = pgconv.TimePtrFromPgtype(graceUntil)
	sub.CanceledAt = pgconv.TimePtrFromPgtype(canceledAt)
	return &sub, nil
}

// Upsert writes the full subscription row keyed by store_id. Metadata keys
// from earlier webhooks survive; the new document is merged over them.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub subscription.StoreSubscription, metadata map[string]any) error {
	meta, err := marshalDoc(metadata)
	if err != nil {
		return infra.WrapRepoErr("failed to encode subscription metadata", err)
	}

	const q = `
		INSERT INTO store_subscriptions
			(id, store_id, status, plan_id, current_period_start, current_period_end,
			 grace_until, canceled_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::jsonb, '{}'::jsonb))
		ON CONFLICT (store_id) DO UPDATE SET
			status               = EXCLUDED.status,
			plan_id              = EXCLUDED.plan_id,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end   = EXCLUDED.current_period_end,
			grace_until          = EXCLUDED.grace_until,
			canceled_at          = EXCLUDED.canceled_at,
			metadata             = store_subscriptions.metadata || EXCLUDED.metadata,
			updated_at           = now()`
	_, err = r.db.Exec(ctx, q,
		sub.ID, sub.StoreID, sub.Status.String(),
		pgconv.UUIDPtrToPgtype(sub.PlanID),
		pgconv.TimePtrToPgtype(sub.CurrentPeriodStart),
		pgconv.TimePtrToPgtype(sub.CurrentPeriodEnd),
		pgconv.TimePtrToPgtype(sub.GraceUntil),
		pgconv.TimePtrToPgtype(sub.CanceledAt),
		meta,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert store subscription", err, classifyWriteErr(err))
	}
	return nil
}
