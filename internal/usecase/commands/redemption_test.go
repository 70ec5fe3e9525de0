//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"coupon-wallet-service/internal/domain/qrtoken"
	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/commands"
	"coupon-wallet-service/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redemptionEnv struct {
	coupons *fakeCouponRepo
	wallets *fakeWalletRepo
	tokens  *fakeTokenRepo
	audit   *recordingAudit
	uc      commands.RedemptionCommands
}

func newRedemptionEnv(now time.Time) *redemptionEnv {
	env := &redemptionEnv{
		coupons: newFakeCouponRepo(),
		wallets: newFakeWalletRepo(),
		tokens:  newFakeTokenRepo(),
		audit:   &recordingAudit{},
	}
	env.uc = commands.NewRedemptionCommands(
		env.coupons, env.wallets, env.tokens, env.audit, clock.NewMockClock(now),
	)
	return env
}

// seedLiveToken wires a qr_issued wallet and its live token, returning the
// clear token value a client would present.
func (env *redemptionEnv) seedLiveToken(now time.Time, couponID uuid.UUID) (raw string, tok *qrtoken.QrToken, walletID uuid.UUID) {
	raw = "presented-token-value"
	tokenID := uuid.New()
	expiresAt := now.Add(qrtoken.TTL)

	w := builder.NewWalletBuilder().
		AsQrIssued(couponID, "SAVE500", tokenID, expiresAt, now.Add(-time.Minute)).
		BuildSnapshot()
	env.wallets.add(w)

	tok = &qrtoken.QrToken{
		ID:        tokenID,
		WalletID:  w.ID,
		CouponID:  couponID,
		TokenHash: qrtoken.Digest(raw),
		ExpiresAt: expiresAt,
	}
	env.tokens.add(tok)
	return raw, tok, w.ID
}

func TestRedeem(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	couponID := uuid.New()

	t.Run("consumes the token and finalizes the wallet", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, tok, walletID := env.seedLiveToken(now, couponID)

		res, err := env.uc.Redeem(ctx, raw)
		require.NoError(t, err)

		assert.Equal(t, walletID, res.WalletID)
		assert.Equal(t, couponID, res.CouponID)
		assert.Equal(t, now, res.RedeemedAt)

		assert.Equal(t, []uuid.UUID{tok.ID}, env.tokens.markCalls)
		assert.Equal(t, []uuid.UUID{couponID}, env.coupons.incrementCalls)

		require.Len(t, env.wallets.updates, 1)
		upd := env.wallets.updates[0]
		assert.Equal(t, wallet.StatusQrIssued, upd.Expected)
		assert.Equal(t, wallet.StatusRedeemed, upd.Next)
		require.NotNil(t, upd.Meta.CouponState)
		// 償還後はトークン参照をクリアする
		assert.Nil(t, upd.Meta.CouponState.QrTokenID)
		require.NotNil(t, upd.Meta.CouponState.RedeemedAt)
		assert.Equal(t, now, *upd.Meta.CouponState.RedeemedAt)

		assert.Equal(t, "coupon.redeemed", env.audit.lastType())
	})

	t.Run("unknown token", func(t *testing.T) {
		env := newRedemptionEnv(now)
		_, err := env.uc.Redeem(ctx, "never-issued")
		assert.ErrorIs(t, err, errs.ErrTokenNotFound)
	})

	t.Run("token already redeemed", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, tok, _ := env.seedLiveToken(now, couponID)
		redeemedAt := now.Add(-time.Minute)
		tok.RedeemedAt = &redeemedAt

		_, err := env.uc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, errs.ErrTokenRedeemed)
		assert.Empty(t, env.tokens.markCalls)
	})

	t.Run("expired token", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, tok, _ := env.seedLiveToken(now, couponID)
		tok.ExpiresAt = now // ちょうど期限時刻は失効扱い

		_, err := env.uc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, errs.ErrTokenExpired)
		assert.Empty(t, env.tokens.markCalls)
	})

	t.Run("losing the conditional stamp means a concurrent redeem won", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, _, _ := env.seedLiveToken(now, couponID)
		env.tokens.markOK = false

		_, err := env.uc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, errs.ErrTokenRedeemed)
		// 敗者はカウンターに触れない
		assert.Empty(t, env.coupons.incrementCalls)
		assert.Empty(t, env.wallets.updates)
	})

	t.Run("guarded counter refuses past the redemption limit", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, _, _ := env.seedLiveToken(now, couponID)
		env.coupons.incrementOK = false

		_, err := env.uc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, errs.ErrCouponExhausted)
		assert.Empty(t, env.wallets.updates)
	})

	t.Run("wallet rebound to another coupon refuses the stale token", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, _, walletID := env.seedLiveToken(now, couponID)

		// 同じステータスのまま別クーポンへ束縛し直されている
		rebound := builder.NewWalletBuilder().
			AsQrIssued(uuid.New(), "OTHER20", uuid.New(), now.Add(qrtoken.TTL), now).
			BuildSnapshot()
		rebound.ID = walletID
		env.wallets.add(rebound)

		_, err := env.uc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, errs.ErrWalletConflict)
		// The other coupon's binding must not be stamped as redeemed.
		assert.Empty(t, env.wallets.updates)
	})

	t.Run("concurrent wallet change surfaces as a conflict", func(t *testing.T) {
		env := newRedemptionEnv(now)
		raw, _, _ := env.seedLiveToken(now, couponID)
		env.wallets.updateOK = false

		_, err := env.uc.Redeem(ctx, raw)
		assert.ErrorIs(t, err, errs.ErrWalletConflict)
		assert.Empty(t, env.audit.entries)
	})
}
