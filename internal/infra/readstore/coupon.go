package readstore

import (
	"context"
	"encoding/json"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"
	"coupon-wallet-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponReadStore struct {
	db *pgxpool.Pool
}

func NewCouponReadStore(db *pgxpool.Pool) *CouponReadStore {
	return &CouponReadStore{db: db}
}

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CouponView, error) {
	const q = `
		SELECT id, store_id, code, discount_type, discount_value, start_at, end_at,
		       max_redemptions, redeemed_count, is_active, metadata->'approval',
		       created_at, updated_at
		FROM coupons
		WHERE id = $1`

	var (
		view          queries.CouponView
		discountValue pgtype.Numeric
		startAt       pgtype.Timestamptz
		endAt         pgtype.Timestamptz
		maxRedemption pgtype.Int4
		approvalDoc   []byte
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID, &view.StoreID, &view.Code, &view.DiscountType, &discountValue,
		&startAt, &endAt, &maxRedemption, &view.RedeemedCount, &view.IsActive,
		&approvalDoc, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}

	view.DiscountValue, err = pgconv.Float64FromNumeric(discountValue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert discount value", err)
	}
	view.StartAt = pgconv.TimePtrFromPgtype(startAt)
	view.EndAt = pgconv.TimePtrFromPgtype(endAt)
	view.MaxRedemptions = pgconv.Int32PtrFromPgtype(maxRedemption)
	view.Approval, err = toApprovalView(approvalDoc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode approval", err)
	}
	return &view, nil
}

func toApprovalView(doc []byte) (queries.ApprovalView, error) {
	approval := coupon.DefaultApproval()
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &approval); err != nil {
			return queries.ApprovalView{}, err
		}
	}

	view := queries.ApprovalView{DecisionView: toDecisionView(approval.Decision)}
	for _, d := range approval.History {
		view.History = append(view.History, toDecisionView(d))
	}
	return view, nil
}

func toDecisionView(d coupon.Decision) queries.DecisionView {
	return queries.DecisionView{
		Status:    string(d.Status),
		DecidedAt: d.DecidedAt,
		DecidedBy: d.DecidedBy,
		Reason:    d.Reason,
	}
}
