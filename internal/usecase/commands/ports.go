package commands

import (
	"context"
	"time"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/domain/qrtoken"
	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/usecase/audit"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// Repository ports. The storage layer offers single-row reads/inserts and
// conditional filtered updates only; methods returning a bool report whether
// the guarded update matched a row.

type CouponRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*shared.CouponSnapshot, error)
	UpdateApproval(ctx context.Context, id uuid.UUID, approval coupon.Approval, isActive bool) error
	// IncrementRedeemedCount bumps the counter iff the redemption limit is
	// not yet reached; the limit is a guard predicate of the update itself.
	IncrementRedeemedCount(ctx context.Context, id uuid.UUID) (bool, error)
}

type WalletRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.WalletSnapshot, error)
	// UpdateStatusIf persists {status, metadata} as one row update guarded by
	// the expected prior status; false means the row diverged concurrently.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next wallet.Status, meta wallet.Metadata) (bool, error)
}

type TokenRepository interface {
	Create(ctx context.Context, tok qrtoken.QrToken) error
	FindByDigest(ctx context.Context, digest string) (*qrtoken.QrToken, error)
	// ExpireLive force-expires every live token of the wallet by setting
	// expires_at to now; returns the number of tokens invalidated.
	ExpireLive(ctx context.Context, walletID uuid.UUID, now time.Time) (int64, error)
	// MarkRedeemed stamps redeemed_at iff the token is still live.
	MarkRedeemed(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.StoreSnapshot, error)
}

type SubscriptionRepository interface {
	FindByStoreID(ctx context.Context, storeID uuid.UUID) (*subscription.StoreSubscription, error)
	// Upsert writes the subscription row keyed by store_id; metadata holds
	// the last webhook event and payment reference.
	Upsert(ctx context.Context, sub subscription.StoreSubscription, metadata map[string]any) error
}

type BillingProfileRepository interface {
	// FindByKeys resolves a profile by billing key or customer key; either
	// may be nil.
	FindByKeys(ctx context.Context, billingKey, customerKey *string) (*subscription.BillingProfile, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status subscription.ProfileStatus) error
}

type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*subscription.Plan, error)
}

// AuditRecorder is satisfied by audit.Writer.
type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry) error
	MustRecord(ctx context.Context, e audit.Entry)
}
