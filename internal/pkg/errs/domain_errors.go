package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Coupon errors
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponNotStarted = errors.New("coupon validity window has not started")
	ErrCouponExpired    = errors.New("coupon validity window has ended")
	ErrCouponExhausted  = errors.New("coupon redemption limit reached")
	ErrDuplicateCode    = errors.New("coupon code already exists")

	// Wallet errors
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrWalletNotOwned   = errors.New("wallet does not belong to user")
	ErrWalletConflict   = errors.New("wallet state changed concurrently")
	ErrWalletNotClaimed = errors.New("wallet has no claimed coupon")

	// Token errors
	ErrTokenNotFound = errors.New("redemption token not found")
	ErrTokenExpired  = errors.New("redemption token expired")
	ErrTokenRedeemed = errors.New("redemption token already redeemed")

	// Store / billing errors
	ErrStoreNotFound        = errors.New("store not found")
	ErrStoreNotOwned        = errors.New("store does not belong to merchant")
	ErrSubscriptionNotFound = errors.New("store subscription not found")

	// Approval errors
	ErrReasonRequired = errors.New("rejection reason is required")
	ErrNotRejected    = errors.New("coupon is not in rejected state")

	// Audit errors
	ErrEventTypeRequired = errors.New("event type is required")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
