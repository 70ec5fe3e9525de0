//go:build unit || e2e

package builder

import (
	"time"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID             uuid.UUID
	StoreID        uuid.UUID
	Code           string
	DiscountType   string
	DiscountValue  float64
	StartAt        *time.Time
	EndAt          *time.Time
	MaxRedemptions *int32
	RedeemedCount  int32
	IsActive       bool
	Approval       *coupon.Approval
}

func NewCouponBuilder() *CouponBuilder {
	approved := coupon.DefaultApproval().Decide(coupon.Decision{Status: coupon.ApprovalApproved})
	return &CouponBuilder{
		ID:            uuid.New(),
		StoreID:       uuid.New(),
		Code:          "SAVE500",
		DiscountType:  "fixed",
		DiscountValue: 500,
		IsActive:      true,
		Approval:      &approved,
	}
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithStore(storeID uuid.UUID) *CouponBuilder {
	b.StoreID = storeID
	return b
}

func (b *CouponBuilder) WithWindow(startAt, endAt *time.Time) *CouponBuilder {
	b.StartAt = startAt
	b.EndAt = endAt
	return b
}

func (b *CouponBuilder) WithMaxRedemptions(limit int32, redeemed int32) *CouponBuilder {
	b.MaxRedemptions = &limit
	b.RedeemedCount = redeemed
	return b
}

func (b *CouponBuilder) AsInactive() *CouponBuilder {
	b.IsActive = false
	return b
}

func (b *CouponBuilder) AsPending() *CouponBuilder {
	pending := coupon.DefaultApproval()
	b.Approval = &pending
	b.IsActive = false
	return b
}

func (b *CouponBuilder) AsRejected(reason string) *CouponBuilder {
	rejected := coupon.DefaultApproval().Decide(coupon.Decision{Status: coupon.ApprovalRejected, Reason: &reason})
	b.Approval = &rejected
	b.IsActive = false
	return b
}

func (b *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	now := time.Now()
	return &shared.CouponSnapshot{
		ID:             b.ID,
		StoreID:        b.StoreID,
		Code:           b.Code,
		DiscountType:   b.DiscountType,
		DiscountValue:  b.DiscountValue,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		MaxRedemptions: b.MaxRedemptions,
		RedeemedCount:  b.RedeemedCount,
		IsActive:       b.IsActive,
		Approval:       b.Approval,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
