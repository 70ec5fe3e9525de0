package repository

import (
	"context"

	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StoreRepository struct {
	db *pgxpool.Pool
}

func NewStoreRepository(db *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.StoreSnapshot, error) {
	const q = `SELECT id, merchant_id, name FROM stores WHERE id = $1`

	var snap shared.StoreSnapshot
	err := r.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.MerchantID, &snap.Name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("store not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find store by ID", err)
	}
	return &snap, nil
}
