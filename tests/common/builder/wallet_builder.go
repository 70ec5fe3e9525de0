//go:build unit || e2e

package builder

import (
	"time"

	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type WalletBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Status      wallet.Status
	CouponState *wallet.CouponState
}

func NewWalletBuilder() *WalletBuilder {
	return &WalletBuilder{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: wallet.StatusAvailable,
	}
}

func (b *WalletBuilder) WithUser(userID uuid.UUID) *WalletBuilder {
	b.UserID = userID
	return b
}

func (b *WalletBuilder) AsClaimed(couponID uuid.UUID, code string, claimedAt time.Time) *WalletBuilder {
	b.Status = wallet.StatusClaimed
	b.CouponState = wallet.NewCouponState(couponID, code, claimedAt)
	return b
}

func (b *WalletBuilder) AsQrIssued(couponID uuid.UUID, code string, tokenID uuid.UUID, expiresAt, now time.Time) *WalletBuilder {
	b.Status = wallet.StatusQrIssued
	b.CouponState = wallet.NewCouponState(couponID, code, now).WithTokenIssued(tokenID, expiresAt, now)
	return b
}

func (b *WalletBuilder) AsRedeemed(couponID uuid.UUID, code string, now time.Time) *WalletBuilder {
	b.Status = wallet.StatusRedeemed
	b.CouponState = wallet.NewCouponState(couponID, code, now).WithRedeemed(now)
	return b
}

func (b *WalletBuilder) BuildSnapshot() *shared.WalletSnapshot {
	now := time.Now()
	return &shared.WalletSnapshot{
		ID:        b.ID,
		UserID:    b.UserID,
		Status:    b.Status,
		Metadata:  wallet.Metadata{CouponState: b.CouponState},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
