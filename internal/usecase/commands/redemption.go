package commands

import (
	"context"
	"time"

	"coupon-wallet-service/internal/domain/qrtoken"
	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"

	"github.com/google/uuid"
)

const eventCouponRedeemed = "coupon.redeemed"

type RedeemResult struct {
	WalletID   uuid.UUID
	CouponID   uuid.UUID
	RedeemedAt time.Time
}

type RedemptionCommands interface {
	Redeem(ctx context.Context, rawToken string) (*RedeemResult, error)
}

type redemptionUseCaseImpl struct {
	couponRepo   CouponRepository
	tokenRepo    TokenRepository
	transitioner *walletTransitioner
	clock        clock.Clock
}

func NewRedemptionCommands(
	couponRepo CouponRepository,
	walletRepo WalletRepository,
	tokenRepo TokenRepository,
	recorder AuditRecorder,
	clk clock.Clock,
) RedemptionCommands {
	return &redemptionUseCaseImpl{
		couponRepo:   couponRepo,
		tokenRepo:    tokenRepo,
		transitioner: newWalletTransitioner(walletRepo, recorder, clk),
		clock:        clk,
	}
}

// Redeem consumes a presented token. Consuming the token row first makes the
// token the single-winner lock for the whole operation: a double submit of
// the same token loses on the conditional redeemed_at stamp, and only the
// winner proceeds to the counter and the wallet transition.
func (u *redemptionUseCaseImpl) Redeem(ctx context.Context, rawToken string) (*RedeemResult, error) {
	now := u.clock.Now()

	tok, err := u.tokenRepo.FindByDigest(ctx, qrtoken.Digest(rawToken))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrTokenNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if tok.RedeemedAt != nil {
		return nil, errs.ErrTokenRedeemed
	}
	if !tok.ExpiresAt.After(now) {
		return nil, errs.ErrTokenExpired
	}

	ok, err := u.tokenRepo.MarkRedeemed(ctx, tok.ID, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		// Lost the race to a concurrent submit of the same token.
		return nil, errs.ErrTokenRedeemed
	}

	ok, err = u.couponRepo.IncrementRedeemedCount(ctx, tok.CouponID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return nil, errs.ErrCouponExhausted
	}

	// The token itself is the caller's observation: its wallet must still be
	// in qr_issued and still bound to the token's coupon.
	expected := expectedWalletState{status: wallet.StatusQrIssued, couponID: tok.CouponID}
	updated, err := u.transitioner.transition(ctx, tok.WalletID, expected, wallet.StatusRedeemed, eventCouponRedeemed,
		map[string]any{
			"couponId":  tok.CouponID.String(),
			"qrTokenId": tok.ID.String(),
		},
		func(fresh *wallet.Wallet) (wallet.Metadata, error) {
			cs, err := fresh.BoundCouponState()
			if err != nil {
				return wallet.Metadata{}, errs.Mark(err, errs.ErrWalletNotClaimed)
			}
			return wallet.Metadata{CouponState: cs.WithRedeemed(now)}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	return &RedeemResult{WalletID: updated.ID, CouponID: tok.CouponID, RedeemedAt: now}, nil
}
