package queries

import (
	"context"

	"coupon-wallet-service/internal/domain/user"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type WalletQueries interface {
	GetWallet(ctx context.Context, walletID, requesterID uuid.UUID, requesterRole user.Role) (*WalletView, error)
}

type WalletReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WalletView, error)
}

type walletQueriesImpl struct {
	readStore WalletReadStore
}

func NewWalletQueries(readStore WalletReadStore) WalletQueries {
	return &walletQueriesImpl{readStore: readStore}
}

// GetWallet returns the wallet projection. Customers see only their own
// wallet; admins see any.
func (q *walletQueriesImpl) GetWallet(ctx context.Context, walletID, requesterID uuid.UUID, requesterRole user.Role) (*WalletView, error) {
	view, err := q.readStore.FindByID(ctx, walletID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrWalletNotFound)
		}
		return nil, err
	}
	if requesterRole != user.RoleAdmin && view.UserID != requesterID {
		return nil, errs.ErrWalletNotOwned
	}
	return view, nil
}
