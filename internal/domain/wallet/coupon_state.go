package wallet

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CouponState is the per-claim coupon binding embedded in wallet metadata.
// Each new claim overwrites it entirely; fields are never merged.
type CouponState struct {
	CouponID         uuid.UUID  `json:"couponId"`
	CouponCode       string     `json:"couponCode"`
	Status           Status     `json:"status"`
	ClaimedAt        time.Time  `json:"claimedAt"`
	QrTokenID        *uuid.UUID `json:"qrTokenId,omitempty"`
	QrTokenExpiresAt *time.Time `json:"qrTokenExpiresAt,omitempty"`
	RedeemedAt       *time.Time `json:"redeemedAt,omitempty"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
}

// NewCouponState is the fresh binding written at claim time: token and
// redemption fields start null.
func NewCouponState(couponID uuid.UUID, couponCode string, now time.Time) *CouponState {
	return &CouponState{
		CouponID:      couponID,
		CouponCode:    couponCode,
		Status:        StatusClaimed,
		ClaimedAt:     now,
		LastUpdatedAt: now,
	}
}

// WithTokenIssued returns the binding after a QR token is issued.
func (cs CouponState) WithTokenIssued(tokenID uuid.UUID, expiresAt, now time.Time) *CouponState {
	cs.Status = StatusQrIssued
	cs.QrTokenID = &tokenID
	cs.QrTokenExpiresAt = &expiresAt
	cs.LastUpdatedAt = now
	return &cs
}

// WithRedeemed returns the binding after redemption: the token reference is
// cleared because no live token may remain for a redeemed wallet.
func (cs CouponState) WithRedeemed(now time.Time) *CouponState {
	cs.Status = StatusRedeemed
	cs.QrTokenID = nil
	cs.QrTokenExpiresAt = nil
	cs.RedeemedAt = &now
	cs.LastUpdatedAt = now
	return &cs
}

// Metadata is the wallet's stored metadata document.
type Metadata struct {
	CouponState *CouponState `json:"couponState,omitempty"`
}

func (m Metadata) MarshalDocument() ([]byte, error) {
	return json.Marshal(m)
}

func DecodeMetadata(doc []byte) (Metadata, error) {
	var m Metadata
	if len(doc) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(doc, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}
