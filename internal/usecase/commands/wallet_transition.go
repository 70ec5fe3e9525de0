package commands

import (
	"context"

	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/pkg/clock"
	"coupon-wallet-service/internal/pkg/errs"
	"coupon-wallet-service/internal/usecase/audit"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// walletTransitioner owns wallet status transitions. Every transition
// re-reads the row, validates the move against the fresh state, persists
// {status, metadata} as one conditional row update, and emits exactly one
// audit event after the write has committed.
type walletTransitioner struct {
	wallets WalletRepository
	audit   AuditRecorder
	clock   clock.Clock
}

func newWalletTransitioner(wallets WalletRepository, recorder AuditRecorder, clk clock.Clock) *walletTransitioner {
	return &walletTransitioner{wallets: wallets, audit: recorder, clock: clk}
}

// metadataMutator produces the full replacement metadata document from the
// freshly read wallet. It must overwrite, never merge.
type metadataMutator func(w *wallet.Wallet) (wallet.Metadata, error)

// expectedWalletState pins what the caller observed before deciding to
// transition: the row's status and the identity of the bound coupon. The
// status guard alone cannot detect a concurrent re-claim that lands in the
// same status, so the binding identity is checked too.
type expectedWalletState struct {
	status   wallet.Status
	couponID uuid.UUID // uuid.Nil when no binding was observed
}

func observedWalletState(snap *shared.WalletSnapshot) expectedWalletState {
	e := expectedWalletState{status: snap.Status}
	if snap.Metadata.CouponState != nil {
		e.couponID = snap.Metadata.CouponState.CouponID
	}
	return e
}

func (t *walletTransitioner) transition(
	ctx context.Context,
	walletID uuid.UUID,
	expected expectedWalletState,
	next wallet.Status,
	eventType string,
	eventCtx map[string]any,
	mutate metadataMutator,
) (*shared.WalletSnapshot, error) {
	// Re-read immediately before the write; a caller-supplied snapshot may
	// be stale.
	snap, err := t.wallets.FindByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	boundID := uuid.Nil
	if snap.Metadata.CouponState != nil {
		boundID = snap.Metadata.CouponState.CouponID
	}
	if snap.Status != expected.status || boundID != expected.couponID {
		// Another writer got in between the caller's read and ours.
		return nil, errs.ErrWalletConflict
	}

	w := wallet.Rehydrate(snap.ID, snap.UserID, snap.Status, snap.Metadata, snap.CreatedAt, snap.UpdatedAt)
	if err := w.EnsureCanTransition(next); err != nil {
		return nil, errs.Mark(err, errs.ErrWalletConflict)
	}

	meta, err := mutate(w)
	if err != nil {
		return nil, err
	}

	ok, err := t.wallets.UpdateStatusIf(ctx, walletID, w.Status(), next, meta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrWalletConflict
	}

	auditCtx := map[string]any{
		"walletId":       walletID.String(),
		"userId":         snap.UserID.String(),
		"previousStatus": w.Status().String(),
		"nextStatus":     next.String(),
	}
	for k, v := range eventCtx {
		auditCtx[k] = v
	}
	now := t.clock.Now()
	t.audit.MustRecord(ctx, audit.Entry{
		Type:       eventType,
		OccurredAt: &now,
		Context:    auditCtx,
		Source:     "wallet",
	})

	updated := *snap
	updated.Status = next
	updated.Metadata = meta
	return &updated, nil
}
