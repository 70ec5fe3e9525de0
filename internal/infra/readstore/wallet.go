package readstore

import (
	"context"

	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"
	"coupon-wallet-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletReadStore struct {
	db *pgxpool.Pool
}

func NewWalletReadStore(db *pgxpool.Pool) *WalletReadStore {
	return &WalletReadStore{db: db}
}

func (r *WalletReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.WalletView, error) {
	const q = `
		SELECT id, user_id, status, metadata, created_at, updated_at
		FROM wallets
		WHERE id = $1`

	var (
		view     queries.WalletView
		metadata []byte
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID, &view.UserID, &view.Status, &metadata, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet by ID", err)
	}

	meta, err := wallet.DecodeMetadata(metadata)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode wallet metadata", err)
	}
	if cs := meta.CouponState; cs != nil {
		view.CouponState = &queries.CouponStateView{
			CouponID:         cs.CouponID,
			CouponCode:       cs.CouponCode,
			Status:           cs.Status.String(),
			ClaimedAt:        cs.ClaimedAt,
			QrTokenID:        cs.QrTokenID,
			QrTokenExpiresAt: cs.QrTokenExpiresAt,
			RedeemedAt:       cs.RedeemedAt,
			LastUpdatedAt:    cs.LastUpdatedAt,
		}
	}
	return &view, nil
}
