package shared

import (
	"time"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/domain/wallet"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads. Embedded documents (approval,
// coupon state) are decoded into their typed form by the repository before a
// snapshot is handed out, so invariants are checked once at the boundary.

type CouponSnapshot struct {
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
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type WalletSnapshot struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    wallet.Status
	Metadata  wallet.Metadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StoreSnapshot struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
	Name       string
}
