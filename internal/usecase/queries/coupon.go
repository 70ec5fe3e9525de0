package queries

import (
	"context"

	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type CouponQueries interface {
	GetCoupon(ctx context.Context, id uuid.UUID) (*CouponView, error)
}

type CouponReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
}

type couponQueriesImpl struct {
	readStore CouponReadStore
}

func NewCouponQueries(readStore CouponReadStore) CouponQueries {
	return &couponQueriesImpl{readStore: readStore}
}

func (q *couponQueriesImpl) GetCoupon(ctx context.Context, id uuid.UUID) (*CouponView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCouponNotFound)
		}
		return nil, err
	}
	return view, nil
}
