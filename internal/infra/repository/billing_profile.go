package repository

import (
	"context"

	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillingProfileRepository struct {
	db *pgxpool.Pool
}

func NewBillingProfileRepository(db *pgxpool.Pool) *BillingProfileRepository {
	return &BillingProfileRepository{db: db}
}

// FindByKeys resolves a profile by billing key first, then customer key.
// Both keys absent is a non-match, not a failure.
func (r *BillingProfileRepository) FindByKeys(ctx context.Context, billingKey, customerKey *string) (*subscription.BillingProfile, error) {
	if billingKey != nil {
		profile, err := r.findByColumn(ctx, "billing_key", *billingKey)
		if err == nil || !infra.IsKind(err, infra.KindNotFound) {
			return profile, err
		}
	}
	if customerKey != nil {
		return r.findByColumn(ctx, "customer_key", *customerKey)
	}
	return nil, infra.WrapRepoErr("billing profile not found", nil, infra.KindNotFound)
}

func (r *BillingProfileRepository) findByColumn(ctx context.Context, column, key string) (*subscription.BillingProfile, error) {
	q := `
		SELECT id, store_id, billing_key, customer_key, status
		FROM billing_profiles
		WHERE ` + column + ` = $1`

	var (
		profile subscription.BillingProfile
		bKey    *string
		cKey    *string
		status  string
	)
	err := r.db.QueryRow(ctx, q, key).Scan(&profile.ID, &profile.StoreID, &bKey, &cKey, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("billing profile not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find billing profile", err)
	}
	profile.BillingKey = bKey
	profile.CustomerKey = cKey
	profile.Status = subscription.ProfileStatus(status)
	return &profile, nil
}

func (r *BillingProfileRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status subscription.ProfileStatus) error {
	const q = `
		UPDATE billing_profiles
		SET status = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update billing profile status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("billing profile not found", nil, infra.KindNotFound)
	}
	return nil
}
