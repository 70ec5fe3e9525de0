package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type DecisionView struct {
	Status    string     `json:"status"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	DecidedBy *string    `json:"decidedBy,omitempty"`
	Reason    *string    `json:"reason,omitempty"`
}

type ApprovalView struct {
	DecisionView
	History []DecisionView `json:"history,omitempty"`
}

type CouponView struct {
	ID             uuid.UUID    `json:"id"`
	StoreID        uuid.UUID    `json:"storeId"`
	Code           string       `json:"code"`
	DiscountType   string       `json:"discountType"`
	DiscountValue  float64      `json:"discountValue"`
	StartAt        *time.Time   `json:"startAt,omitempty"`
	EndAt          *time.Time   `json:"endAt,omitempty"`
	MaxRedemptions *int32       `json:"maxRedemptions,omitempty"`
	RedeemedCount  int32        `json:"redeemedCount"`
	IsActive       bool         `json:"isActive"`
	Approval       ApprovalView `json:"approval"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type CouponStateView struct {
	CouponID         uuid.UUID  `json:"couponId"`
	CouponCode       string     `json:"couponCode"`
	Status           string     `json:"status"`
	ClaimedAt        time.Time  `json:"claimedAt"`
	QrTokenID        *uuid.UUID `json:"qrTokenId,omitempty"`
	QrTokenExpiresAt *time.Time `json:"qrTokenExpiresAt,omitempty"`
	RedeemedAt       *time.Time `json:"redeemedAt,omitempty"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
}

type WalletView struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Status      string           `json:"status"`
	CouponState *CouponStateView `json:"couponState,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type EventView struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Message    *string        `json:"message,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Source     *string        `json:"source,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
