//go:build unit

package commands_test

import (
	"context"
	"time"

	"coupon-wallet-service/internal/domain/coupon"
	"coupon-wallet-service/internal/domain/qrtoken"
	"coupon-wallet-service/internal/domain/subscription"
	"coupon-wallet-service/internal/domain/wallet"
	"coupon-wallet-service/internal/infra"
	"coupon-wallet-service/internal/usecase/audit"
	"coupon-wallet-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory port fakes. Each fake records the calls a test wants to assert
// on and fails with the repository's NOT_FOUND kind for unknown keys, so the
// use cases exercise the same error mapping they would against pgx.

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func strPtr(s string) *string { return &s }

type fakeCouponRepo struct {
	snapshots map[uuid.UUID]*shared.CouponSnapshot

	createID  uuid.UUID
	createErr error
	created   []*coupon.Coupon

	approvalUpdates []approvalUpdate
	updateErr       error

	incrementOK    bool
	incrementErr   error
	incrementCalls []uuid.UUID
}

type approvalUpdate struct {
	ID       uuid.UUID
	Approval coupon.Approval
	IsActive bool
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{
		snapshots:   map[uuid.UUID]*shared.CouponSnapshot{},
		createID:    uuid.New(),
		incrementOK: true,
	}
}

func (r *fakeCouponRepo) add(snap *shared.CouponSnapshot) *fakeCouponRepo {
	r.snapshots[snap.ID] = snap
	return r
}

func (r *fakeCouponRepo) Create(_ context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = append(r.created, c)
	return r.createID, nil
}

func (r *fakeCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.CouponSnapshot, error) {
	snap, ok := r.snapshots[id]
	if !ok {
		return nil, notFound("coupon not found")
	}
	return snap, nil
}

func (r *fakeCouponRepo) UpdateApproval(_ context.Context, id uuid.UUID, approval coupon.Approval, isActive bool) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.approvalUpdates = append(r.approvalUpdates, approvalUpdate{ID: id, Approval: approval, IsActive: isActive})
	return nil
}

func (r *fakeCouponRepo) IncrementRedeemedCount(_ context.Context, id uuid.UUID) (bool, error) {
	if r.incrementErr != nil {
		return false, r.incrementErr
	}
	r.incrementCalls = append(r.incrementCalls, id)
	return r.incrementOK, nil
}

type fakeWalletRepo struct {
	snapshots map[uuid.UUID]*shared.WalletSnapshot

	findCalls int
	// afterFirstFind runs once, after the first FindByID has taken its
	// snapshot. Tests use it to emulate a concurrent writer landing between
	// the caller's read and the transitioner's re-read.
	afterFirstFind func()

	updateOK  bool
	updateErr error
	updates   []walletUpdate
}

type walletUpdate struct {
	ID       uuid.UUID
	Expected wallet.Status
	Next     wallet.Status
	Meta     wallet.Metadata
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{snapshots: map[uuid.UUID]*shared.WalletSnapshot{}, updateOK: true}
}

func (r *fakeWalletRepo) add(snap *shared.WalletSnapshot) *fakeWalletRepo {
	r.snapshots[snap.ID] = snap
	return r
}

func (r *fakeWalletRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.WalletSnapshot, error) {
	snap, ok := r.snapshots[id]
	if !ok {
		return nil, notFound("wallet not found")
	}
	r.findCalls++
	if r.findCalls == 1 && r.afterFirstFind != nil {
		r.afterFirstFind()
	}
	return snap, nil
}

func (r *fakeWalletRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, expected, next wallet.Status, meta wallet.Metadata) (bool, error) {
	if r.updateErr != nil {
		return false, r.updateErr
	}
	if !r.updateOK {
		return false, nil
	}
	r.updates = append(r.updates, walletUpdate{ID: id, Expected: expected, Next: next, Meta: meta})
	if snap, ok := r.snapshots[id]; ok {
		snap.Status = next
		snap.Metadata = meta
	}
	return true, nil
}

type fakeTokenRepo struct {
	byDigest map[string]*qrtoken.QrToken

	created   []qrtoken.QrToken
	createErr error

	expireErr   error
	expireCalls []uuid.UUID

	markOK    bool
	markErr   error
	markCalls []uuid.UUID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byDigest: map[string]*qrtoken.QrToken{}, markOK: true}
}

func (r *fakeTokenRepo) add(tok *qrtoken.QrToken) *fakeTokenRepo {
	r.byDigest[tok.TokenHash] = tok
	return r
}

func (r *fakeTokenRepo) Create(_ context.Context, tok qrtoken.QrToken) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, tok)
	return nil
}

func (r *fakeTokenRepo) FindByDigest(_ context.Context, digest string) (*qrtoken.QrToken, error) {
	tok, ok := r.byDigest[digest]
	if !ok {
		return nil, notFound("token not found")
	}
	return tok, nil
}

func (r *fakeTokenRepo) ExpireLive(_ context.Context, walletID uuid.UUID, _ time.Time) (int64, error) {
	if r.expireErr != nil {
		return 0, r.expireErr
	}
	r.expireCalls = append(r.expireCalls, walletID)
	return 1, nil
}

func (r *fakeTokenRepo) MarkRedeemed(_ context.Context, id uuid.UUID, _ time.Time) (bool, error) {
	if r.markErr != nil {
		return false, r.markErr
	}
	if !r.markOK {
		return false, nil
	}
	r.markCalls = append(r.markCalls, id)
	return true, nil
}

type fakeStoreRepo struct {
	stores map[uuid.UUID]*shared.StoreSnapshot
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: map[uuid.UUID]*shared.StoreSnapshot{}}
}

func (r *fakeStoreRepo) add(snap *shared.StoreSnapshot) *fakeStoreRepo {
	r.stores[snap.ID] = snap
	return r
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.StoreSnapshot, error) {
	snap, ok := r.stores[id]
	if !ok {
		return nil, notFound("store not found")
	}
	return snap, nil
}

type fakeSubscriptionRepo struct {
	byStore map[uuid.UUID]*subscription.StoreSubscription

	upserts   []subscriptionUpsert
	upsertErr error
}

type subscriptionUpsert struct {
	Sub      subscription.StoreSubscription
	Metadata map[string]any
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{byStore: map[uuid.UUID]*subscription.StoreSubscription{}}
}

func (r *fakeSubscriptionRepo) add(sub subscription.StoreSubscription) *fakeSubscriptionRepo {
	r.byStore[sub.StoreID] = &sub
	return r
}

func (r *fakeSubscriptionRepo) FindByStoreID(_ context.Context, storeID uuid.UUID) (*subscription.StoreSubscription, error) {
	sub, ok := r.byStore[storeID]
	if !ok {
		return nil, notFound("subscription not found")
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) Upsert(_ context.Context, sub subscription.StoreSubscription, metadata map[string]any) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts = append(r.upserts, subscriptionUpsert{Sub: sub, Metadata: metadata})
	r.byStore[sub.StoreID] = &sub
	return nil
}

type fakeProfileRepo struct {
	profiles []*subscription.BillingProfile

	updateErr     error
	statusUpdates []profileStatusUpdate
}

type profileStatusUpdate struct {
	ID     uuid.UUID
	Status subscription.ProfileStatus
}

func newFakeProfileRepo(profiles ...*subscription.BillingProfile) *fakeProfileRepo {
	return &fakeProfileRepo{profiles: profiles}
}

func (r *fakeProfileRepo) FindByKeys(_ context.Context, billingKey, customerKey *string) (*subscription.BillingProfile, error) {
	for _, p := range r.profiles {
		if billingKey != nil && p.BillingKey != nil && *p.BillingKey == *billingKey {
			return p, nil
		}
		if customerKey != nil && p.CustomerKey != nil && *p.CustomerKey == *customerKey {
			return p, nil
		}
	}
	return nil, notFound("billing profile not found")
}

func (r *fakeProfileRepo) UpdateStatus(_ context.Context, id uuid.UUID, status subscription.ProfileStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.statusUpdates = append(r.statusUpdates, profileStatusUpdate{ID: id, Status: status})
	return nil
}

type fakePlanRepo struct {
	plans map[uuid.UUID]*subscription.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[uuid.UUID]*subscription.Plan{}}
}

func (r *fakePlanRepo) add(p *subscription.Plan) *fakePlanRepo {
	r.plans[p.ID] = p
	return r
}

func (r *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*subscription.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, notFound("plan not found")
	}
	return p, nil
}

// recordingAudit captures entries; MustRecord never fails, mirroring the
// real writer's contract.
type recordingAudit struct {
	entries []audit.Entry
	err     error
}

func (a *recordingAudit) Record(_ context.Context, e audit.Entry) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, e)
	return nil
}

func (a *recordingAudit) MustRecord(_ context.Context, e audit.Entry) {
	a.entries = append(a.entries, e)
}

func (a *recordingAudit) lastType() string {
	if len(a.entries) == 0 {
		return ""
	}
	return a.entries[len(a.entries)-1].Type
}
