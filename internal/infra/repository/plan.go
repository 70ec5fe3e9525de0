package repository

import (
	"context"

	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error) {
	const q = `
		SELECT id, name, billing_interval, interval_count
		FROM subscription_plans
		WHERE id = $1`

	var (
		plan     subscription.Plan
		interval string
	)
	err := r.db.QueryRow(ctx, q, id).Scan(&plan.ID, &plan.Name, &interval, &plan.IntervalCount)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription plan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find plan by ID", err)
	}

	plan.Interval, err = subscription.ParseInterval(interval)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid billing interval in plan row", err)
	}
	return &plan, nil
}
