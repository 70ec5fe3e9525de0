package commands

import (
	"context"
	"log/slog"
	"time"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/domain/qrtoken"
	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	eventCouponClaimed  = "coupon.claimed"
	eventCouponQrIssued = "coupon.qr_issued"

	featureCouponClaim = "coupon.claim"
)

type ClaimResult struct {
	WalletID   uuid.UUID
	CouponID   uuid.UUID
	CouponCode string
	Status     wallet.Status
	ClaimedAt  time.Time
}

// IssueQrResult carries the clear token value. It is returned to the caller
// exactly once and never stored or logged.
type IssueQrResult struct {
	TokenID   uuid.UUID
	Token     string
	ExpiresAt time.Time
}

type WalletCommands interface {
	ClaimCoupon(ctx context.Context, couponID, walletID, userID uuid.UUID) (*ClaimResult, error)
	IssueQr(ctx context.Context, walletID, userID uuid.UUID) (*IssueQrResult, error)
}

type walletUseCaseImpl struct {
	couponRepo   CouponRepository
	walletRepo   WalletRepository
	tokenRepo    TokenRepository
	storeRepo    StoreRepository
	subRepo      SubscriptionRepository
	transitioner *walletTransitioner
	clock        clock.Clock
}

func NewWalletCommands(
	couponRepo CouponRepository,
	walletRepo WalletRepository,
	tokenRepo TokenRepository,
	storeRepo StoreRepository,
	subRepo SubscriptionRepository,
	recorder AuditRecorder,
	clk clock.Clock,
) WalletCommands {
	return &walletUseCaseImpl{
		couponRepo:   couponRepo,
		walletRepo:   walletRepo,
		tokenRepo:    tokenRepo,
		storeRepo:    storeRepo,
		subRepo:      subRepo,
		transitioner: newWalletTransitioner(walletRepo, recorder, clk),
		clock:        clk,
	}
}

// ClaimCoupon binds a coupon to the user's wallet. Eligibility checks run in
// a fixed order so the caller always gets the most specific failure: coupon
// existence, claim validity, store subscription entitlement, then wallet
// ownership. A fresh claim overwrites the previous binding entirely.
func (u *walletUseCaseImpl) ClaimCoupon(ctx context.Context, couponID, walletID, userID uuid.UUID) (*ClaimResult, error) {
	now := u.clock.Now()

	couponSnap, err := u.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCouponNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c, err := rehydrateCoupon(couponSnap)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := c.ValidateClaim(now); err != nil {
		return nil, markClaimError(err)
	}

	store, err := u.storeRepo.FindByID(ctx, couponSnap.StoreID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrStoreNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := u.ensureClaimEntitlement(ctx, store.ID, now); err != nil {
		return nil, err
	}

	walletSnap, err := u.walletRepo.FindByID(ctx, walletID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrWalletNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	w := wallet.Rehydrate(walletSnap.ID, walletSnap.UserID, walletSnap.Status, walletSnap.Metadata, walletSnap.CreatedAt, walletSnap.UpdatedAt)
	if err := w.EnsureOwnedBy(userID); err != nil {
		return nil, errs.Mark(err, errs.ErrWalletNotOwned)
	}

	// Invalidate any live token from a previous claim cycle. Best effort: a
	// failure here leaves an orphan token that cannot redeem anyway, because
	// redemption requires the qr_issued status the new binding resets.
	if _, err := u.tokenRepo.ExpireLive(ctx, walletID, now); err != nil {
		slog.WarnContext(ctx, "failed to invalidate live tokens before claim", "wallet_id", walletID, "error", err)
	}

	updated, err := u.transitioner.transition(ctx, walletID, observedWalletState(walletSnap), wallet.StatusClaimed, eventCouponClaimed,
		map[string]any{
			"couponId":   couponID.String(),
			"couponCode": c.Code().String(),
			"storeId":    store.ID.String(),
		},
		func(_ *wallet.Wallet) (wallet.Metadata, error) {
			return wallet.Metadata{CouponState: wallet.NewCouponState(couponID, c.Code().String(), now)}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return &ClaimResult{
		WalletID:   updated.ID,
		CouponID:   couponID,
		CouponCode: c.Code().String(),
		Status:     updated.Status,
		ClaimedAt:  updated.Metadata.CouponState.ClaimedAt,
	}, nil
}

// IssueQr materializes the claimed coupon as a short-lived redemption token.
// Invalidating previous live tokens is a hard prerequisite here: issuing a
// second live token for one wallet would break single-redemption.
func (u *walletUseCaseImpl) IssueQr(ctx context.Context, walletID, userID uuid.UUID) (*IssueQrResult, error) {
	now := u.clock.Now()

	walletSnap, err := u.walletRepo.FindByID(ctx, walletID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrWalletNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	w := wallet.Rehydrate(walletSnap.ID, walletSnap.UserID, walletSnap.Status, walletSnap.Metadata, walletSnap.CreatedAt, walletSnap.UpdatedAt)
	if err := w.EnsureOwnedBy(userID); err != nil {
		return nil, errs.Mark(err, errs.ErrWalletNotOwned)
	}
	state, err := w.BoundCouponState()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrWalletNotClaimed)
	}
	if err := w.EnsureCanTransition(wallet.StatusQrIssued); err != nil {
		return nil, errs.Mark(err, errs.ErrWalletConflict)
	}

	if _, err := u.tokenRepo.ExpireLive(ctx, walletID, now); err != nil {
		return nil, errs.Wrap(err, "failed to invalidate previous tokens")
	}

	raw, err := qrtoken.Generate(0)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}
	tok := qrtoken.QrToken{
		ID:        uuid.New(),
		WalletID:  walletID,
		CouponID:  state.CouponID,
		TokenHash: qrtoken.Digest(raw),
		ExpiresAt: now.Add(qrtoken.TTL),
	}
	if err := u.tokenRepo.Create(ctx, tok); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	_, err = u.transitioner.transition(ctx, walletID, observedWalletState(walletSnap), wallet.StatusQrIssued, eventCouponQrIssued,
		map[string]any{
			"couponId":  state.CouponID.String(),
			"qrTokenId": tok.ID.String(),
			"expiresAt": tok.ExpiresAt,
		},
		func(fresh *wallet.Wallet) (wallet.Metadata, error) {
			cs, err := fresh.BoundCouponState()
			if err != nil {
				return wallet.Metadata{}, errs.Mark(err, errs.ErrWalletNotClaimed)
			}
			return wallet.Metadata{CouponState: cs.WithTokenIssued(tok.ID, tok.ExpiresAt, now)}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return &IssueQrResult{TokenID: tok.ID, Token: raw, ExpiresAt: tok.ExpiresAt}, nil
}

// ensureClaimEntitlement maps the store's subscription state onto the
// coupon.claim feature. A store with no subscription row is inactive.
func (u *walletUseCaseImpl) ensureClaimEntitlement(ctx context.Context, storeID uuid.UUID, now time.Time) error {
	sub, err := u.subRepo.FindByStoreID(ctx, storeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return NewFeatureDeniedError(featureCouponClaim, subscription.StatusInactive)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !sub.GrantsClaim(now) {
		return NewFeatureDeniedError(featureCouponClaim, sub.Status)
	}
	return nil
}

func rehydrateCoupon(snap *shared.CouponSnapshot) (*coupon.Coupon, error) {
	discount, err := coupon.NewDiscount(snap.DiscountType, snap.DiscountValue)
	if err != nil {
		return nil, err
	}
	return coupon.Rehydrate(
		snap.ID, snap.StoreID, snap.Code, discount,
		snap.StartAt, snap.EndAt, snap.MaxRedemptions, snap.RedeemedCount,
		snap.IsActive, foldApproval(snap), snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func markClaimError(err error) error {
	switch err {
	case coupon.ErrInactive:
		return errs.Mark(err, errs.ErrCouponInactive)
	case coupon.ErrNotYetValid:
		return errs.Mark(err, errs.ErrCouponNotStarted)
	case coupon.ErrExpired:
		return errs.Mark(err, errs.ErrCouponExpired)
	case coupon.ErrExhausted:
		return errs.Mark(err, errs.ErrCouponExhausted)
	default:
		return errs.Mark(err, errs.ErrDomainValidation)
	}
}
