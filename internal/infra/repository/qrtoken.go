package repository

import (
	"context"
	"time"

	"coupon-wallet-service/internal/domain/qrtoken"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QrTokenRepository struct {
	db *pgxpool.Pool
}

func NewQrTokenRepository(db *pgxpool.Pool) *QrTokenRepository {
	return &QrTokenRepository{db: db}
}

func (r *QrTokenRepository) Create(ctx context.Context, tok qrtoken.QrToken) error {
	const q = `
		INSERT INTO qr_tokens (id, wallet_id, coupon_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, q, tok.ID, tok.WalletID, tok.CouponID, tok.TokenHash, tok.ExpiresAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create qr token", err, classifyWriteErr(err))
	}
	return nil
}

func (r *QrTokenRepository) FindByDigest(ctx context.Context, digest string) (*qrtoken.QrToken, error) {
	const q = `
		SELECT id, wallet_id, coupon_id, token_hash, expires_at, redeemed_at, created_at
		FROM qr_tokens
		WHERE token_hash = $1`

	var (
		tok        qrtoken.QrToken
		redeemedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, digest).Scan(
		&tok.ID, &tok.WalletID, &tok.CouponID, &tok.TokenHash,
		&tok.ExpiresAt, &redeemedAt, &tok.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("qr token not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find qr token by digest", err)
	}
	tok.RedeemedAt = pgconv.TimePtrFromPgtype(redeemedAt)
	return &tok, nil
}

// ExpireLive force-expires every live token of the wallet. The partial index
// on (wallet_id) WHERE redeemed_at IS NULL keeps this a point scan.
func (r *QrTokenRepository) ExpireLive(ctx context.Context, walletID uuid.UUID, now time.Time) (int64, error) {
	const q = `
		UPDATE qr_tokens
		SET expires_at = $2
		WHERE wallet_id = $1 AND redeemed_at IS NULL AND expires_at > $2`
	tag, err := r.db.Exec(ctx, q, walletID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire live tokens", err)
	}
	return tag.RowsAffected(), nil
}

// MarkRedeemed stamps redeemed_at with liveness as the update predicate, so
// exactly one of any concurrent submits of the same token wins.
func (r *QrTokenRepository) MarkRedeemed(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const q = `
		UPDATE qr_tokens
		SET redeemed_at = $2
		WHERE id = $1 AND redeemed_at IS NULL AND expires_at > $2`
	tag, err := r.db.Exec(ctx, q, id, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark token redeemed", err)
	}
	return tag.RowsAffected() > 0, nil
}
