package subscription

import (
	"time"

	"github.com/google/uuid"
)

// GraceFallback applies when a payment fails for a store with no period on
// record yet.
const GraceFallback = 72 * time.Hour

// StoreSubscription tracks one store's billing state. Transitions are pure
// value operations; persistence is the caller's job.
type StoreSubscription struct {
	ID                 uuid.UUID
	StoreID            uuid.UUID
	Status             Status
	PlanID             *uuid.UUID
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	GraceUntil         *time.Time
	CanceledAt         *time.Time
}

// WithSuccessfulPayment opens a new billing period anchored at the settlement
// time. The grace deadline coincides with the period end until a failure
// occurs.
func (s StoreSubscription) WithSuccessfulPayment(approvedAt, periodEnd time.Time) StoreSubscription {
	s.Status = StatusActive
	s.CurrentPeriodStart = &approvedAt
	s.CurrentPeriodEnd = &periodEnd
	s.GraceUntil = &periodEnd
	s.CanceledAt = nil
	return s
}

// WithFailedPayment moves the subscription into grace. The deadline is the
// period end already on record; a store that never completed a period gets
// the fixed fallback window from the failure time.
func (s StoreSubscription) WithFailedPayment(failedAt time.Time) StoreSubscription {
	s.Status = StatusGrace
	if s.CurrentPeriodEnd != nil {
		s.GraceUntil = s.CurrentPeriodEnd
	} else {
		deadline := failedAt.Add(GraceFallback)
		s.GraceUntil = &deadline
	}
	return s
}

// WithCancellation terminates the subscription and clears any grace window.
func (s StoreSubscription) WithCancellation(canceledAt time.Time) StoreSubscription {
	s.Status = StatusCanceled
	s.GraceUntil = nil
	s.CanceledAt = &canceledAt
	return s
}

// GrantsClaim reports whether the subscription entitles the store to the
// coupon.claim feature: active always, grace only until its deadline.
func (s StoreSubscription) GrantsClaim(now time.Time) bool {
	switch s.Status {
	case StatusActive:
		return true
	case StatusGrace:
		return s.GraceUntil != nil && !now.After(*s.GraceUntil)
	default:
		return false
	}
}
