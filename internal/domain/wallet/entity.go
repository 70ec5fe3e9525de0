package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotOwned          = errors.New("wallet does not belong to user")
	ErrInvalidTransition = errors.New("invalid wallet status transition")
	ErrNoCouponState     = errors.New("wallet has no coupon binding")
)

type Wallet struct {
	id          uuid.UUID
	userID      uuid.UUID
	status      Status
	couponState *CouponState
	createdAt   time.Time
	updatedAt   time.Time
}

func New(userID uuid.UUID) *Wallet {
	return &Wallet{
		id:     uuid.New(),
		userID: userID,
		status: StatusAvailable,
	}
}

func Rehydrate(id, userID uuid.UUID, status Status, meta Metadata, createdAt, updatedAt time.Time) *Wallet {
	return &Wallet{
		id:          id,
		userID:      userID,
		status:      status,
		couponState: meta.CouponState,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (w *Wallet) EnsureOwnedBy(userID uuid.UUID) error {
	if w.userID != userID {
		return ErrNotOwned
	}
	return nil
}

// EnsureCanTransition validates the next status against the current one.
func (w *Wallet) EnsureCanTransition(next Status) error {
	if !w.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	return nil
}

// BoundCouponState returns the current coupon binding or fails when none.
func (w *Wallet) BoundCouponState() (*CouponState, error) {
	if w.couponState == nil {
		return nil, ErrNoCouponState
	}
	return w.couponState, nil
}

func (w *Wallet) ID() uuid.UUID             { return w.id }
func (w *Wallet) UserID() uuid.UUID         { return w.userID }
func (w *Wallet) Status() Status            { return w.status }
func (w *Wallet) CouponState() *CouponState { return w.couponState }
func (w *Wallet) CreatedAt() time.Time      { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time      { return w.updatedAt }
