package repository

import (
	"context"
	"encoding/json"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// couponMetadata is the stored shape of the coupons.metadata document.
type couponMetadata struct {
	Approval *coupon.Approval `json:"approval,omitempty"`
}

type CouponRepository struct {
	db *pgxpool.Pool
}

func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	approval := c.Approval()
	meta, err := json.Marshal(couponMetadata{Approval: &approval})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode coupon metadata", err)
	}

	const q = `
		INSERT INTO coupons (id, store_id, code, discount_type, discount_value,
		                     start_at, end_at, max_redemptions, is_active, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
		RETURNING id`
	var id uuid.UUID
	err = r.db.QueryRow(ctx, q,
		c.ID(), c.StoreID(), c.Code().String(),
		c.Discount().Type().String(), c.Discount().Value(),
		pgconv.TimePtrToPgtype(c.StartAt()), pgconv.TimePtrToPgtype(c.EndAt()),
		pgconv.Int32PtrToPgtype(c.MaxRedemptions()), c.IsActive(), meta,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create coupon", err, classifyWriteErr(err))
	}
	return id, nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.CouponSnapshot, error) {
	const q = `
		SELECT id, store_id, code, discount_type, discount_value, start_at, end_at,
		       max_redemptions, redeemed_count, is_active, metadata, created_at, updated_at
		FROM coupons
		WHERE id = $1`
	snap, err := scanCouponSnapshot(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return snap, nil
}

// UpdateApproval replaces the approval block and the activation flag in one
// row update; the rest of the metadata document is left untouched.
func (r *CouponRepository) UpdateApproval(ctx context.Context, id uuid.UUID, approval coupon.Approval, isActive bool) error {
	doc, err := json.Marshal(approval)
	if err != nil {
		return infra.WrapRepoErr("failed to encode approval", err)
	}

	const q = `
		UPDATE coupons
		SET metadata = jsonb_set(COALESCE(metadata, '{}'::jsonb), '{approval}', $2::jsonb),
		    is_active = $3,
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id, doc, isActive)
	if err != nil {
		return infra.WrapRepoErr("failed to update coupon approval", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

// IncrementRedeemedCount bumps the counter with the redemption limit as the
// update predicate, so the exhaustion check and the increment are one atomic
// step.
func (r *CouponRepository) IncrementRedeemedCount(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `
		UPDATE coupons
		SET redeemed_count = redeemed_count + 1,
		    updated_at = now()
		WHERE id = $1
		  AND (max_redemptions IS NULL OR redeemed_count < max_redemptions)`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment redeemed count", err)
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCouponSnapshot(row rowScanner) (*shared.CouponSnapshot, error) {
	var (
		snap          shared.CouponSnapshot
		discountValue pgtype.Numeric
		startAt       pgtype.Timestamptz
		endAt         pgtype.Timestamptz
		maxRedemption pgtype.Int4
		metadata      []byte
	)
	err := row.Scan(
		&snap.ID, &snap.StoreID, &snap.Code, &snap.DiscountType, &discountValue,
		&startAt, &endAt, &maxRedemption, &snap.RedeemedCount, &snap.IsActive,
		&metadata, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	snap.DiscountValue, err = pgconv.Float64FromNumeric(discountValue)
	if err != nil {
		return nil, err
	}
	snap.StartAt = pgconv.TimePtrFromPgtype(startAt)
	snap.EndAt = pgconv.TimePtrFromPgtype(endAt)
	snap.MaxRedemptions = pgconv.Int32PtrFromPgtype(maxRedemption)

	if len(metadata) > 0 {
		var meta couponMetadata
		if err := json.Unmarshal(metadata, &meta); err != nil {
			return nil, err
		}
		snap.Approval = meta.Approval
	}
	return &snap, nil
}
