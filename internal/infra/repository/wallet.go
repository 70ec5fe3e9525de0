package repository

import (
	"context"

	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.WalletSnapshot, error) {
	const q = `
		SELECT id, user_id, status, metadata, created_at, updated_at
		FROM wallets
		WHERE id = $1`

	var (
		snap     shared.WalletSnapshot
		status   string
		metadata []byte
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&snap.ID, &snap.UserID, &status, &metadata, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet by ID", err)
	}

	snap.Status = wallet.Status(status)
	snap.Metadata, err = wallet.DecodeMetadata(metadata)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode wallet metadata", err)
	}
	return &snap, nil
}

// UpdateStatusIf writes {status, metadata} guarded by the expected prior
// status. A false return means another request moved the wallet first.
func (r *WalletRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next wallet.Status, meta wallet.Metadata) (bool, error) {
	doc, err := meta.MarshalDocument()
	if err != nil {
		return false, infra.WrapRepoErr("failed to encode wallet metadata", err)
	}

	const q = `
		UPDATE wallets
		SET status = $3,
		    metadata = $4::jsonb,
		    updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.db.Exec(ctx, q, id, expected.String(), next.String(), doc)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update wallet status", err)
	}
	return tag.RowsAffected() > 0, nil
}
