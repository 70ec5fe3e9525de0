package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotYetValid = errors.New("coupon is not yet valid")
	ErrExpired     = errors.New("coupon has expired")
	ErrInactive    = errors.New("coupon is not active")
	ErrExhausted   = errors.New("coupon redemption limit reached")
)

type Coupon struct {
	id             uuid.UUID
	storeID        uuid.UUID
	code           Code
	discount       Discount
	startAt        *time.Time
	endAt          *time.Time
	maxRedemptions *int32
	redeemedCount  int32
	isActive       bool
	approval       Approval
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCoupon builds a merchant-submitted coupon. It starts inactive in pending
// approval and becomes claimable only once approved.
func NewCoupon(
	storeID uuid.UUID,
	code string,
	discountType string,
	discountValue float64,
	startAt, endAt *time.Time,
	maxRedemptions *int32,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(discountType, discountValue)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:             uuid.New(),
		storeID:        storeID,
		code:           couponCode,
		discount:       discount,
		startAt:        startAt,
		endAt:          endAt,
		maxRedemptions: maxRedemptions,
		isActive:       false,
		approval:       DefaultApproval(),
	}, nil
}

// Rehydrate rebuilds a coupon from a stored row without re-running creation
// validation; approval decodes from the metadata document at the boundary.
func Rehydrate(
	id, storeID uuid.UUID,
	code string,
	discount Discount,
	startAt, endAt *time.Time,
	maxRedemptions *int32,
	redeemedCount int32,
	isActive bool,
	approval Approval,
	createdAt, updatedAt time.Time,
) *Coupon {
	return &Coupon{
		id:             id,
		storeID:        storeID,
		code:           Code(code),
		discount:       discount,
		startAt:        startAt,
		endAt:          endAt,
		maxRedemptions: maxRedemptions,
		redeemedCount:  redeemedCount,
		isActive:       isActive,
		approval:       approval,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	if c.startAt != nil && t.Before(*c.startAt) {
		return false
	}
	if c.endAt != nil && t.After(*c.endAt) {
		return false
	}
	return true
}

func (c *Coupon) IsExhausted() bool {
	return c.maxRedemptions != nil && c.redeemedCount >= *c.maxRedemptions
}

// ValidateClaim runs the claim eligibility checks in order; the first failing
// check determines the error.
func (c *Coupon) ValidateClaim(now time.Time) error {
	if !c.isActive {
		return ErrInactive
	}
	if c.startAt != nil && now.Before(*c.startAt) {
		return ErrNotYetValid
	}
	if c.endAt != nil && now.After(*c.endAt) {
		return ErrExpired
	}
	if c.IsExhausted() {
		return ErrExhausted
	}
	return nil
}

func (c *Coupon) ID() uuid.UUID          { return c.id }
func (c *Coupon) StoreID() uuid.UUID     { return c.storeID }
func (c *Coupon) Code() Code             { return c.code }
func (c *Coupon) Discount() Discount     { return c.discount }
func (c *Coupon) StartAt() *time.Time    { return c.startAt }
func (c *Coupon) EndAt() *time.Time      { return c.endAt }
func (c *Coupon) MaxRedemptions() *int32 { return c.maxRedemptions }
func (c *Coupon) RedeemedCount() int32   { return c.redeemedCount }
func (c *Coupon) IsActive() bool         { return c.isActive }
func (c *Coupon) Approval() Approval     { return c.approval }
func (c *Coupon) CreatedAt() time.Time   { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time   { return c.updatedAt }
